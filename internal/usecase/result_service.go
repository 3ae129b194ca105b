package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/result"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/stats"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/team"
)

// TopScorer is the highest scoring team of a single week.
type TopScorer struct {
	TeamID   string
	TeamName string
	Week     int
	Points   float64
}

type RecordMatchupInput struct {
	TeamID         string
	OpponentID     string
	Week           int
	Points         float64
	OpponentPoints float64
	TopPlayer      bool
}

type ResultService struct {
	resultRepo result.Repository
	teamRepo   team.Repository
}

func NewResultService(resultRepo result.Repository, teamRepo team.Repository) *ResultService {
	return &ResultService{
		resultRepo: resultRepo,
		teamRepo:   teamRepo,
	}
}

func (s *ResultService) List(ctx context.Context) ([]result.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.List")
	defer span.End()

	rows, err := s.resultRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	return rows, nil
}

func (s *ResultService) ListByWeek(ctx context.Context, week int) ([]result.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.ListByWeek")
	defer span.End()

	if week < 1 {
		return nil, fmt.Errorf("%w: week must be greater than zero", ErrInvalidInput)
	}

	rows, err := s.resultRepo.ListByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("list results week=%d: %w", week, err)
	}

	return rows, nil
}

// TopScorer resolves the highest scoring team for a week. When several teams
// tie on points the first one in week order wins.
func (s *ResultService) TopScorer(ctx context.Context, week int) (TopScorer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.TopScorer")
	defer span.End()

	if week < 1 {
		return TopScorer{}, fmt.Errorf("%w: week must be greater than zero", ErrInvalidInput)
	}

	rows, err := s.resultRepo.ListByWeek(ctx, week)
	if err != nil {
		return TopScorer{}, fmt.Errorf("list results week=%d: %w", week, err)
	}

	teamID, ok := stats.TopScoringTeam(rows, week)
	if !ok {
		return TopScorer{}, fmt.Errorf("%w: no results recorded for week=%d", ErrNotFound, week)
	}

	top := TopScorer{TeamID: teamID, Week: week}
	for _, row := range rows {
		if row.TeamID == teamID {
			top.Points = row.Points
			break
		}
	}

	if item, exists, err := s.teamRepo.GetByID(ctx, teamID); err == nil && exists {
		top.TeamName = item.Name
	}

	return top, nil
}

// Record stores both mirrored rows of a matchup and refreshes the weekly
// top score flags for the touched week.
func (s *ResultService) Record(ctx context.Context, input RecordMatchupInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Record")
	defer span.End()

	row := result.Result{
		TeamID:         strings.TrimSpace(input.TeamID),
		OpponentID:     strings.TrimSpace(input.OpponentID),
		Week:           input.Week,
		Points:         input.Points,
		OpponentPoints: input.OpponentPoints,
		TopPlayer:      input.TopPlayer,
	}
	if err := row.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for _, teamID := range []string{row.TeamID, row.OpponentID} {
		_, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return fmt.Errorf("get team id=%s: %w", teamID, err)
		}
		if !exists {
			return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
	}

	if err := s.resultRepo.Replace(ctx, row); err != nil {
		return fmt.Errorf("replace result team=%s week=%d: %w", row.TeamID, row.Week, err)
	}
	if err := s.resultRepo.Replace(ctx, row.Mirror()); err != nil {
		return fmt.Errorf("replace mirrored result team=%s week=%d: %w", row.OpponentID, row.Week, err)
	}

	if err := s.recomputeWeekTopScores(ctx, row.Week); err != nil {
		return err
	}

	return nil
}

func (s *ResultService) recomputeWeekTopScores(ctx context.Context, week int) error {
	rows, err := s.resultRepo.ListByWeek(ctx, week)
	if err != nil {
		return fmt.Errorf("list results for top score recompute week=%d: %w", week, err)
	}

	top := stats.WeeklyTopScorers(rows)[week]
	if err := s.resultRepo.SetTopPoints(ctx, week, top); err != nil {
		return fmt.Errorf("set top points week=%d: %w", week, err)
	}

	return nil
}
