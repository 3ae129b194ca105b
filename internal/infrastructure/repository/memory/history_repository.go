package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/history"
)

type HistoryRepository struct {
	mu      sync.RWMutex
	records map[int]history.Record
}

func NewHistoryRepository(records []history.Record) *HistoryRepository {
	byYear := make(map[int]history.Record, len(records))
	for _, item := range records {
		byYear[item.Year] = item
	}

	return &HistoryRepository{records: byYear}
}

func (r *HistoryRepository) List(_ context.Context) ([]history.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]history.Record, 0, len(r.records))
	for _, item := range r.records {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Year > out[j].Year
	})

	return out, nil
}

func (r *HistoryRepository) Upsert(_ context.Context, rec history.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[rec.Year] = rec
	return nil
}
