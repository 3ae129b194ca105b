package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/result"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/team"
)

func TestTeamService_List_EnrichesStandings(t *testing.T) {
	t.Parallel()

	teamRepo := newStubTeamRepository(
		team.Team{ID: "wlf.t.1", Name: "Moon Howlers", Manager: "Dana", Wins: 2, Losses: 1},
		team.Team{ID: "wlf.t.2", Name: "Gridiron Ghosts", Manager: "Marcus", Wins: 1, Losses: 2},
	)
	resultRepo := newStubResultRepository(
		result.Result{TeamID: "wlf.t.1", OpponentID: "wlf.t.2", Week: 1, Points: 100, OpponentPoints: 90, TopPoints: true},
		result.Result{TeamID: "wlf.t.2", OpponentID: "wlf.t.1", Week: 1, Points: 90, OpponentPoints: 100},
		result.Result{TeamID: "wlf.t.1", OpponentID: "wlf.t.2", Week: 2, Points: 80, OpponentPoints: 85},
		result.Result{TeamID: "wlf.t.2", OpponentID: "wlf.t.1", Week: 2, Points: 85, OpponentPoints: 80, TopPlayer: true},
		result.Result{TeamID: "wlf.t.1", OpponentID: "wlf.t.2", Week: 3, Points: 110, OpponentPoints: 95, TopPoints: true},
		result.Result{TeamID: "wlf.t.2", OpponentID: "wlf.t.1", Week: 3, Points: 95, OpponentPoints: 110},
	)

	service := NewTeamService(teamRepo, resultRepo)

	got, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 standings rows, got %d", len(got))
	}

	first := got[0]
	if first.Team.ID != "wlf.t.1" {
		t.Fatalf("expected wlf.t.1 first, got %s", first.Team.ID)
	}
	if first.Streak != 1 {
		t.Fatalf("expected streak 1 after W,L,W, got %d", first.Streak)
	}
	if first.PointsFor != 290 || first.PointsAgainst != 270 {
		t.Fatalf("unexpected aggregates: for=%v against=%v", first.PointsFor, first.PointsAgainst)
	}
	if first.TopScoreWeeks != 2 || first.TopPlayerWeeks != 0 {
		t.Fatalf("unexpected top counts: %+v", first)
	}

	second := got[1]
	if second.Streak != -1 {
		t.Fatalf("expected streak -1 for wlf.t.2, got %d", second.Streak)
	}
	if second.TopPlayerWeeks != 1 {
		t.Fatalf("expected 1 top player week for wlf.t.2, got %d", second.TopPlayerWeeks)
	}
}

func TestTeamService_Get_ResolvesOpponentNames(t *testing.T) {
	t.Parallel()

	teamRepo := newStubTeamRepository(
		team.Team{ID: "wlf.t.1", Name: "Moon Howlers", Manager: "Dana", Wins: 1, Losses: 0},
		team.Team{ID: "wlf.t.2", Name: "Gridiron Ghosts", Manager: "Marcus", Wins: 0, Losses: 1},
	)
	resultRepo := newStubResultRepository(
		result.Result{TeamID: "wlf.t.1", OpponentID: "wlf.t.2", Week: 1, Points: 100, OpponentPoints: 90},
		result.Result{TeamID: "wlf.t.2", OpponentID: "wlf.t.1", Week: 1, Points: 90, OpponentPoints: 100},
	)

	service := NewTeamService(teamRepo, resultRepo)

	got, err := service.Get(context.Background(), "wlf.t.1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Standing.Team.Name != "Moon Howlers" {
		t.Fatalf("unexpected team: %+v", got.Standing.Team)
	}
	if len(got.Results) != 1 {
		t.Fatalf("expected 1 result row, got %d", len(got.Results))
	}
	if got.Results[0].OpponentName != "Gridiron Ghosts" {
		t.Fatalf("unexpected opponent name: %q", got.Results[0].OpponentName)
	}
}

func TestTeamService_Get_UnknownTeam(t *testing.T) {
	t.Parallel()

	service := NewTeamService(newStubTeamRepository(), newStubResultRepository())

	_, err := service.Get(context.Background(), "wlf.t.404")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_Upsert_RejectsInvalidTeam(t *testing.T) {
	t.Parallel()

	service := NewTeamService(newStubTeamRepository(), newStubResultRepository())

	err := service.Upsert(context.Background(), team.Team{ID: "wlf.t.9"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

type stubTeamRepository struct {
	mu   sync.Mutex
	byID map[string]team.Team
}

func newStubTeamRepository(teams ...team.Team) *stubTeamRepository {
	byID := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		byID[item.ID] = item
	}
	return &stubTeamRepository{byID: byID}
}

func (s *stubTeamRepository) List(_ context.Context) ([]team.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]team.Team, 0, len(s.byID))
	for _, item := range s.byID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *stubTeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.byID[teamID]
	return item, ok, nil
}

func (s *stubTeamRepository) Upsert(_ context.Context, t team.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[t.ID] = t
	return nil
}

type stubResultRepository struct {
	mu       sync.Mutex
	rows     []result.Result
	nextID   int64
	topCalls map[int][]string

	replaceErr error
}

func newStubResultRepository(rows ...result.Result) *stubResultRepository {
	repo := &stubResultRepository{
		nextID:   1,
		topCalls: make(map[int][]string),
	}
	for _, row := range rows {
		row.ID = repo.nextID
		repo.nextID++
		repo.rows = append(repo.rows, row)
	}
	return repo
}

func (s *stubResultRepository) List(_ context.Context) ([]result.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]result.Result(nil), s.rows...), nil
}

func (s *stubResultRepository) ListByTeam(_ context.Context, teamID string) ([]result.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []result.Result
	for _, row := range s.rows {
		if row.TeamID == teamID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *stubResultRepository) ListByWeek(_ context.Context, week int) ([]result.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []result.Result
	for _, row := range s.rows {
		if row.Week == week {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *stubResultRepository) Replace(_ context.Context, r result.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.replaceErr != nil {
		return s.replaceErr
	}

	kept := s.rows[:0]
	for _, row := range s.rows {
		if row.TeamID == r.TeamID && row.OpponentID == r.OpponentID && row.Week == r.Week {
			continue
		}
		kept = append(kept, row)
	}
	s.rows = kept

	r.ID = s.nextID
	s.nextID++
	s.rows = append(s.rows, r)
	return nil
}

func (s *stubResultRepository) SetTopPoints(_ context.Context, week int, teamIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.topCalls[week] = append([]string(nil), teamIDs...)

	flagged := make(map[string]struct{}, len(teamIDs))
	for _, teamID := range teamIDs {
		flagged[teamID] = struct{}{}
	}
	for i, row := range s.rows {
		if row.Week != week {
			continue
		}
		_, ok := flagged[row.TeamID]
		s.rows[i].TopPoints = ok
	}
	return nil
}

func (s *stubResultRepository) Weeks(_ context.Context) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int]struct{})
	var out []int
	for _, row := range s.rows {
		if _, ok := seen[row.Week]; ok {
			continue
		}
		seen[row.Week] = struct{}{}
		out = append(out, row.Week)
	}
	sort.Ints(out)
	return out, nil
}
