package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/result"
)

type ResultRepository struct {
	mu      sync.RWMutex
	results []result.Result
	nextID  int64
}

func NewResultRepository(results []result.Result) *ResultRepository {
	repo := &ResultRepository{nextID: 1}
	for _, item := range results {
		item.ID = repo.nextID
		repo.nextID++
		repo.results = append(repo.results, item)
	}

	return repo
}

func (r *ResultRepository) List(_ context.Context) ([]result.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshot(func(result.Result) bool { return true }), nil
}

func (r *ResultRepository) ListByTeam(_ context.Context, teamID string) ([]result.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshot(func(item result.Result) bool { return item.TeamID == teamID }), nil
}

func (r *ResultRepository) ListByWeek(_ context.Context, week int) ([]result.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshot(func(item result.Result) bool { return item.Week == week }), nil
}

func (r *ResultRepository) Replace(_ context.Context, res result.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.results[:0]
	for _, item := range r.results {
		if item.TeamID == res.TeamID && item.OpponentID == res.OpponentID && item.Week == res.Week {
			continue
		}
		kept = append(kept, item)
	}
	res.ID = r.nextID
	r.nextID++
	r.results = append(kept, res)

	return nil
}

func (r *ResultRepository) SetTopPoints(_ context.Context, week int, teamIDs []string) error {
	flagged := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		flagged[id] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.results {
		if r.results[idx].Week != week {
			continue
		}
		_, ok := flagged[r.results[idx].TeamID]
		r.results[idx].TopPoints = ok
	}

	return nil
}

func (r *ResultRepository) Weeks(_ context.Context) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[int]struct{})
	weeks := make([]int, 0)
	for _, item := range r.results {
		if _, ok := seen[item.Week]; ok {
			continue
		}
		seen[item.Week] = struct{}{}
		weeks = append(weeks, item.Week)
	}
	sort.Ints(weeks)

	return weeks, nil
}

func (r *ResultRepository) snapshot(keep func(result.Result) bool) []result.Result {
	out := make([]result.Result, 0, len(r.results))
	for _, item := range r.results {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		return out[i].ID < out[j].ID
	})

	return out
}
