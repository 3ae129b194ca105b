package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/result"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/stats"
	"github.com/wolfpack-fantasy/leaguehub/internal/platform/logging"
)

const (
	recomputeStatusSuccess = "success"
	recomputeStatusFailed  = "failed"
)

type RecomputeResult struct {
	WeekCount    int                   `json:"week_count"`
	SuccessCount int                   `json:"success_count"`
	FailedCount  int                   `json:"failed_count"`
	WorkerCount  int                   `json:"worker_count"`
	Weeks        []RecomputeWeekResult `json:"weeks"`
}

type RecomputeWeekResult struct {
	Week       int    `json:"week"`
	TopTeams   int    `json:"top_teams"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// TopScoreService recomputes the weekly top score flags across all recorded
// weeks. Ties are honored, so every team sharing the weekly maximum keeps
// its flag.
type TopScoreService struct {
	resultRepo result.Repository
	logger     *logging.Logger
}

func NewTopScoreService(resultRepo result.Repository, logger *logging.Logger) *TopScoreService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TopScoreService{
		resultRepo: resultRepo,
		logger:     logger,
	}
}

func (s *TopScoreService) RecomputeAll(ctx context.Context, maxWorkers int) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TopScoreService.RecomputeAll")
	defer span.End()

	if s.resultRepo == nil {
		return RecomputeResult{}, fmt.Errorf("%w: result repository is not configured", ErrDependencyUnavailable)
	}

	weeks, err := s.resultRepo.Weeks(ctx)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list recorded weeks: %w", err)
	}

	workerCount := normalizeRecomputeWorkerCount(maxWorkers, len(weeks))
	out := RecomputeResult{
		WeekCount:   len(weeks),
		WorkerCount: workerCount,
		Weeks:       make([]RecomputeWeekResult, 0, len(weeks)),
	}
	if len(weeks) == 0 {
		return out, nil
	}

	results := make(chan RecomputeWeekResult, len(weeks))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, week := range weeks {
		week := week
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RecomputeWeekResult{Week: week}

			topTeams, err := s.recomputeWeek(ctx, week)
			row.TopTeams = topTeams
			row.DurationMs = time.Since(start).Milliseconds()
			if err != nil {
				row.Status = recomputeStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				row.Status = recomputeStatusSuccess
				successCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return RecomputeResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		out.Weeks = append(out.Weeks, row)
	}
	sort.SliceStable(out.Weeks, func(i, j int) bool {
		return out.Weeks[i].Week < out.Weeks[j].Week
	})

	out.SuccessCount = int(successCount.Load())
	out.FailedCount = int(failedCount.Load())
	return out, nil
}

func (s *TopScoreService) recomputeWeek(ctx context.Context, week int) (int, error) {
	rows, err := s.resultRepo.ListByWeek(ctx, week)
	if err != nil {
		return 0, fmt.Errorf("list results week=%d: %w", week, err)
	}

	top := stats.WeeklyTopScorers(rows)[week]
	if err := s.resultRepo.SetTopPoints(ctx, week, top); err != nil {
		return 0, fmt.Errorf("set top points week=%d: %w", week, err)
	}

	return len(top), nil
}

func normalizeRecomputeWorkerCount(value int, weekCount int) int {
	if weekCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > 4 {
		value = 4
	}
	if value > weekCount {
		value = weekCount
	}
	return value
}
