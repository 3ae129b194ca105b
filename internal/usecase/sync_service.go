package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/result"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/stats"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/team"
	"github.com/wolfpack-fantasy/leaguehub/internal/platform/logging"
)

// LeagueProvider fetches a point-in-time snapshot of the league from the
// upstream fantasy provider.
type LeagueProvider interface {
	FetchLeague(ctx context.Context, leagueKey string) (ExternalLeagueSnapshot, error)
}

type ExternalLeagueSnapshot struct {
	LeagueKey   string
	LeagueName  string
	CurrentWeek int
	Teams       []ExternalTeam
	Matchups    []ExternalMatchup
}

type ExternalTeam struct {
	Key     string
	Name    string
	Manager string
	Wins    int
	Losses  int
}

type ExternalMatchup struct {
	Week  int
	Sides [2]ExternalMatchupSide
}

type ExternalMatchupSide struct {
	TeamKey string
	Points  float64
}

type SyncConfig struct {
	Enabled   bool
	LeagueKey string
}

type SyncReport struct {
	StartedAt    time.Time `json:"started_at"`
	DurationMs   int64     `json:"duration_ms"`
	Success      bool      `json:"success"`
	TeamCount    int       `json:"team_count"`
	ResultCount  int       `json:"result_count"`
	WeeksTouched []int     `json:"weeks_touched"`
	Message      string    `json:"message,omitempty"`
}

type SyncService struct {
	provider   LeagueProvider
	teamRepo   team.Repository
	resultRepo result.Repository
	cfg        SyncConfig
	logger     *logging.Logger
	now        func() time.Time
}

func NewSyncService(
	provider LeagueProvider,
	teamRepo team.Repository,
	resultRepo result.Repository,
	cfg SyncConfig,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SyncService{
		provider:   provider,
		teamRepo:   teamRepo,
		resultRepo: resultRepo,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// Run performs one full sync pass: fetch the league snapshot, upsert
// standings, replace matchup rows and refresh weekly top score flags.
// Provider and storage failures are reported in the returned record
// instead of propagating, so a failed pass never takes the caller down.
func (s *SyncService) Run(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Run")
	defer span.End()

	if !s.cfg.Enabled {
		return SyncReport{}, fmt.Errorf("%w: league sync is disabled (YAHOO_ENABLED=false)", ErrDependencyUnavailable)
	}
	if s.provider == nil || s.teamRepo == nil || s.resultRepo == nil {
		return SyncReport{}, fmt.Errorf("%w: league sync is not fully configured", ErrDependencyUnavailable)
	}
	if strings.TrimSpace(s.cfg.LeagueKey) == "" {
		return SyncReport{}, fmt.Errorf("%w: YAHOO_LEAGUE_KEY is not set", ErrDependencyUnavailable)
	}

	started := s.now().UTC()
	report := SyncReport{StartedAt: started}

	snapshot, err := s.provider.FetchLeague(ctx, s.cfg.LeagueKey)
	if err != nil {
		return s.fail(ctx, report, started, fmt.Sprintf("fetch league league_key=%s: %v", s.cfg.LeagueKey, err)), nil
	}

	for _, item := range snapshot.Teams {
		row := mapExternalTeamToDomain(item)
		if err := row.Validate(); err != nil {
			return s.fail(ctx, report, started, fmt.Sprintf("validate team id=%s: %v", row.ID, err)), nil
		}
		if err := s.teamRepo.Upsert(ctx, row); err != nil {
			return s.fail(ctx, report, started, fmt.Sprintf("upsert team id=%s: %v", row.ID, err)), nil
		}
		report.TeamCount++
	}

	rows := mapExternalMatchupsToDomain(snapshot.Matchups)
	weeks := make(map[int]struct{}, len(rows))
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			return s.fail(ctx, report, started, fmt.Sprintf("validate result team=%s week=%d: %v", row.TeamID, row.Week, err)), nil
		}
		if err := s.resultRepo.Replace(ctx, row); err != nil {
			return s.fail(ctx, report, started, fmt.Sprintf("replace result team=%s week=%d: %v", row.TeamID, row.Week, err)), nil
		}
		report.ResultCount++
		weeks[row.Week] = struct{}{}
	}

	report.WeeksTouched = sortedWeeks(weeks)
	for _, week := range report.WeeksTouched {
		weekRows, err := s.resultRepo.ListByWeek(ctx, week)
		if err != nil {
			return s.fail(ctx, report, started, fmt.Sprintf("list results week=%d: %v", week, err)), nil
		}
		top := stats.WeeklyTopScorers(weekRows)[week]
		if err := s.resultRepo.SetTopPoints(ctx, week, top); err != nil {
			return s.fail(ctx, report, started, fmt.Sprintf("set top points week=%d: %v", week, err)), nil
		}
	}

	report.Success = true
	report.DurationMs = s.now().UTC().Sub(started).Milliseconds()
	s.logger.InfoContext(ctx, "league sync completed",
		"league_key", s.cfg.LeagueKey,
		"team_count", report.TeamCount,
		"result_count", report.ResultCount,
		"weeks_touched", len(report.WeeksTouched),
		"duration_ms", report.DurationMs,
	)

	return report, nil
}

func (s *SyncService) fail(ctx context.Context, report SyncReport, started time.Time, message string) SyncReport {
	report.Success = false
	report.Message = message
	report.DurationMs = s.now().UTC().Sub(started).Milliseconds()
	s.logger.WarnContext(ctx, "league sync failed",
		"league_key", s.cfg.LeagueKey,
		"error", message,
	)
	return report
}

func mapExternalTeamToDomain(item ExternalTeam) team.Team {
	return team.Team{
		ID:      strings.TrimSpace(item.Key),
		Name:    strings.TrimSpace(item.Name),
		Manager: strings.TrimSpace(item.Manager),
		Wins:    maxInt(item.Wins, 0),
		Losses:  maxInt(item.Losses, 0),
	}
}

// mapExternalMatchupsToDomain expands each matchup into two mirrored rows,
// one per participating team.
func mapExternalMatchupsToDomain(items []ExternalMatchup) []result.Result {
	if len(items) == 0 {
		return nil
	}

	out := make([]result.Result, 0, len(items)*2)
	for _, item := range items {
		if item.Week < 1 {
			continue
		}
		home, away := item.Sides[0], item.Sides[1]
		if strings.TrimSpace(home.TeamKey) == "" || strings.TrimSpace(away.TeamKey) == "" {
			continue
		}

		row := result.Result{
			TeamID:         strings.TrimSpace(home.TeamKey),
			OpponentID:     strings.TrimSpace(away.TeamKey),
			Week:           item.Week,
			Points:         home.Points,
			OpponentPoints: away.Points,
		}
		out = append(out, row, row.Mirror())
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		return out[i].TeamID < out[j].TeamID
	})

	return out
}

func sortedWeeks(weeks map[int]struct{}) []int {
	out := make([]int, 0, len(weeks))
	for week := range weeks {
		out = append(out, week)
	}
	sort.Ints(out)
	return out
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
