package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/writeup"
)

type WriteupRepository struct {
	mu       sync.RWMutex
	writeups []writeup.Writeup
	nextID   int64
	now      func() time.Time
}

func NewWriteupRepository(writeups []writeup.Writeup) *WriteupRepository {
	repo := &WriteupRepository{nextID: 1, now: time.Now}
	for _, item := range writeups {
		item.ID = repo.nextID
		repo.nextID++
		repo.writeups = append(repo.writeups, item)
	}

	return repo
}

func (r *WriteupRepository) List(_ context.Context) ([]writeup.Writeup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]writeup.Writeup(nil), r.writeups...)
	sortWriteupsNewestFirst(out)

	return out, nil
}

func (r *WriteupRepository) Latest(_ context.Context) (writeup.Writeup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.writeups) == 0 {
		return writeup.Writeup{}, false, nil
	}

	out := append([]writeup.Writeup(nil), r.writeups...)
	sortWriteupsNewestFirst(out)

	return out[0], true, nil
}

func (r *WriteupRepository) Create(_ context.Context, w writeup.Writeup) (writeup.Writeup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w.ID = r.nextID
	r.nextID++
	if w.CreatedAt.IsZero() {
		w.CreatedAt = r.now()
	}
	r.writeups = append(r.writeups, w)

	return w, nil
}

func sortWriteupsNewestFirst(items []writeup.Writeup) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Week != items[j].Week {
			return items[i].Week > items[j].Week
		}
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}
