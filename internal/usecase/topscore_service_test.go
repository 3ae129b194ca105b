package usecase

import (
	"context"
	"testing"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/result"
	"github.com/wolfpack-fantasy/leaguehub/internal/platform/logging"
)

func TestTopScoreService_RecomputeAll(t *testing.T) {
	t.Parallel()

	resultRepo := newStubResultRepository(
		result.Result{TeamID: "wlf.t.1", OpponentID: "wlf.t.2", Week: 1, Points: 120, OpponentPoints: 90},
		result.Result{TeamID: "wlf.t.2", OpponentID: "wlf.t.1", Week: 1, Points: 90, OpponentPoints: 120},
		// Week 2 is a scoring tie, both teams keep the flag.
		result.Result{TeamID: "wlf.t.1", OpponentID: "wlf.t.2", Week: 2, Points: 100, OpponentPoints: 100},
		result.Result{TeamID: "wlf.t.2", OpponentID: "wlf.t.1", Week: 2, Points: 100, OpponentPoints: 100},
	)

	service := NewTopScoreService(resultRepo, logging.NewNop())

	got, err := service.RecomputeAll(context.Background(), 2)
	if err != nil {
		t.Fatalf("RecomputeAll error: %v", err)
	}
	if got.WeekCount != 2 || got.SuccessCount != 2 || got.FailedCount != 0 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if len(got.Weeks) != 2 || got.Weeks[0].Week != 1 || got.Weeks[1].Week != 2 {
		t.Fatalf("expected weeks sorted ascending, got %+v", got.Weeks)
	}
	if got.Weeks[0].TopTeams != 1 {
		t.Fatalf("expected single top team for week 1, got %d", got.Weeks[0].TopTeams)
	}
	if got.Weeks[1].TopTeams != 2 {
		t.Fatalf("expected both tied teams flagged for week 2, got %d", got.Weeks[1].TopTeams)
	}

	if top := resultRepo.topCalls[2]; len(top) != 2 {
		t.Fatalf("expected two flagged teams for week 2, got %v", top)
	}
}

func TestTopScoreService_RecomputeAll_NoWeeks(t *testing.T) {
	t.Parallel()

	service := NewTopScoreService(newStubResultRepository(), logging.NewNop())

	got, err := service.RecomputeAll(context.Background(), 4)
	if err != nil {
		t.Fatalf("RecomputeAll error: %v", err)
	}
	if got.WeekCount != 0 || len(got.Weeks) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}
