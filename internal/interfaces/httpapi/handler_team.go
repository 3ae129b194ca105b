package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/team"
	"github.com/wolfpack-fantasy/leaguehub/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	standings, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamStandingDTO, 0, len(standings))
	for _, s := range standings {
		items = append(items, standingToDTO(ctx, s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := r.PathValue("teamID")
	detail, err := h.teamService.Get(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	results := make([]teamResultDTO, 0, len(detail.Results))
	for _, row := range detail.Results {
		results = append(results, teamResultDTO{
			resultDTO:    resultToDTO(ctx, row.Result),
			OpponentName: row.OpponentName,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, teamDetailDTO{
		teamStandingDTO: standingToDTO(ctx, detail.Standing),
		Results:         results,
	})
}

func (h *Handler) UpsertTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertTeam")
	defer span.End()

	var req upsertTeamRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item := team.Team{
		ID:      req.ID,
		Name:    req.Name,
		Manager: req.Manager,
		Wins:    req.Wins,
		Losses:  req.Losses,
	}
	if err := h.teamService.Upsert(ctx, item); err != nil {
		h.logger.WarnContext(ctx, "upsert team failed", "team_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": item.ID})
}

type upsertTeamRequest struct {
	ID      string `json:"id" validate:"required,max=64"`
	Name    string `json:"name" validate:"required,max=100"`
	Manager string `json:"manager" validate:"max=100"`
	Wins    int    `json:"wins" validate:"gte=0"`
	Losses  int    `json:"losses" validate:"gte=0"`
}

type teamStandingDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Manager        string  `json:"manager"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Streak         int     `json:"streak"`
	PointsFor      float64 `json:"pointsFor"`
	PointsAgainst  float64 `json:"pointsAgainst"`
	TopScoreWeeks  int     `json:"topScoreWeeks"`
	TopPlayerWeeks int     `json:"topPlayerWeeks"`
}

type teamDetailDTO struct {
	teamStandingDTO
	Results []teamResultDTO `json:"results"`
}

type resultDTO struct {
	ID             int64   `json:"id"`
	TeamID         string  `json:"teamId"`
	OpponentID     string  `json:"opponentId"`
	Week           int     `json:"week"`
	Points         float64 `json:"points"`
	OpponentPoints float64 `json:"opponentPoints"`
	TopPlayer      bool    `json:"topPlayer"`
	TopPoints      bool    `json:"topPoints"`
	CreatedAt      string  `json:"createdAt"`
}

type teamResultDTO struct {
	resultDTO
	OpponentName string `json:"opponentName"`
}

func standingToDTO(ctx context.Context, s usecase.TeamStanding) teamStandingDTO {
	ctx, span := startSpan(ctx, "httpapi.standingToDTO")
	defer span.End()

	return teamStandingDTO{
		ID:             s.Team.ID,
		Name:           s.Team.Name,
		Manager:        s.Team.Manager,
		Wins:           s.Team.Wins,
		Losses:         s.Team.Losses,
		Streak:         s.Streak,
		PointsFor:      s.PointsFor,
		PointsAgainst:  s.PointsAgainst,
		TopScoreWeeks:  s.TopScoreWeeks,
		TopPlayerWeeks: s.TopPlayerWeeks,
	}
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}
