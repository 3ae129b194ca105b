package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/result"
	"github.com/wolfpack-fantasy/leaguehub/internal/usecase"
)

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListResults")
	defer span.End()

	var rows []result.Result
	var err error
	if rawWeek := strings.TrimSpace(r.URL.Query().Get("week")); rawWeek != "" {
		week, parseErr := strconv.Atoi(rawWeek)
		if parseErr != nil {
			writeError(ctx, w, fmt.Errorf("%w: week must be a number", usecase.ErrInvalidInput))
			return
		}
		rows, err = h.resultService.ListByWeek(ctx, week)
	} else {
		rows, err = h.resultService.List(ctx)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "list results failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]resultDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, resultToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTopScorer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTopScorer")
	defer span.End()

	week, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("week")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: week query parameter is required", usecase.ErrInvalidInput))
		return
	}

	top, err := h.resultService.TopScorer(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get top scorer failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, topScorerDTO{
		TeamID:   top.TeamID,
		TeamName: top.TeamName,
		Week:     top.Week,
		Points:   top.Points,
	})
}

func (h *Handler) RecordResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordResult")
	defer span.End()

	var req recordResultRequest
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

	err := h.resultService.Record(ctx, usecase.RecordMatchupInput{
		TeamID:         req.TeamID,
		OpponentID:     req.OpponentID,
		Week:           req.Week,
		Points:         req.Points,
		OpponentPoints: req.OpponentPoints,
		TopPlayer:      req.TopPlayer,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record result failed", "team_id", req.TeamID, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "recorded"})
}

type recordResultRequest struct {
	TeamID         string  `json:"teamId" validate:"required,max=64"`
	OpponentID     string  `json:"opponentId" validate:"required,max=64"`
	Week           int     `json:"week" validate:"required,min=1"`
	Points         float64 `json:"points" validate:"gte=0"`
	OpponentPoints float64 `json:"opponentPoints" validate:"gte=0"`
	TopPlayer      bool    `json:"topPlayer"`
}

type topScorerDTO struct {
	TeamID   string  `json:"teamId"`
	TeamName string  `json:"teamName"`
	Week     int     `json:"week"`
	Points   float64 `json:"points"`
}

func resultToDTO(ctx context.Context, row result.Result) resultDTO {
	ctx, span := startSpan(ctx, "httpapi.resultToDTO")
	defer span.End()

	return resultDTO{
		ID:             row.ID,
		TeamID:         row.TeamID,
		OpponentID:     row.OpponentID,
		Week:           row.Week,
		Points:         row.Points,
		OpponentPoints: row.OpponentPoints,
		TopPlayer:      row.TopPlayer,
		TopPoints:      row.TopPoints,
		CreatedAt:      formatTimestamp(row.CreatedAt),
	}
}
