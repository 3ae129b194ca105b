package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/result"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/stats"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/team"
)

// TeamStanding is a standings row enriched with derived season statistics.
type TeamStanding struct {
	Team           team.Team
	Streak         int
	PointsFor      float64
	PointsAgainst  float64
	TopScoreWeeks  int
	TopPlayerWeeks int
}

type TeamResult struct {
	Result       result.Result
	OpponentName string
}

type TeamDetail struct {
	Standing TeamStanding
	Results  []TeamResult
}

type TeamService struct {
	teamRepo   team.Repository
	resultRepo result.Repository
}

func NewTeamService(teamRepo team.Repository, resultRepo result.Repository) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		resultRepo: resultRepo,
	}
}

func (s *TeamService) List(ctx context.Context) ([]TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	results, err := s.resultRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	byTeam := make(map[string][]result.Result, len(teams))
	for _, row := range results {
		byTeam[row.TeamID] = append(byTeam[row.TeamID], row)
	}

	out := make([]TeamStanding, 0, len(teams))
	for _, item := range teams {
		out = append(out, buildStanding(item, byTeam[item.ID]))
	}

	return out, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamDetail{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return TeamDetail{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	rows, err := s.resultRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("list results for team=%s: %w", teamID, err)
	}

	names, err := s.teamNames(ctx)
	if err != nil {
		return TeamDetail{}, err
	}

	detail := TeamDetail{
		Standing: buildStanding(item, rows),
		Results:  make([]TeamResult, 0, len(rows)),
	}
	for _, row := range rows {
		detail.Results = append(detail.Results, TeamResult{
			Result:       row,
			OpponentName: names[row.OpponentID],
		})
	}

	return detail, nil
}

func (s *TeamService) Upsert(ctx context.Context, t team.Team) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Upsert")
	defer span.End()

	t.ID = strings.TrimSpace(t.ID)
	t.Name = strings.TrimSpace(t.Name)
	t.Manager = strings.TrimSpace(t.Manager)
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Upsert(ctx, t); err != nil {
		return fmt.Errorf("upsert team id=%s: %w", t.ID, err)
	}

	return nil
}

func (s *TeamService) teamNames(ctx context.Context) (map[string]string, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	names := make(map[string]string, len(teams))
	for _, item := range teams {
		names[item.ID] = item.Name
	}
	return names, nil
}

func buildStanding(item team.Team, rows []result.Result) TeamStanding {
	agg := stats.Summarize(rows)
	return TeamStanding{
		Team:           item,
		Streak:         stats.Streak(rows),
		PointsFor:      agg.PointsFor,
		PointsAgainst:  agg.PointsAgainst,
		TopScoreWeeks:  agg.TopScoreWeeks,
		TopPlayerWeeks: agg.TopPlayerWeeks,
	}
}
