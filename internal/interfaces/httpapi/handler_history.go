package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/history"
	"github.com/wolfpack-fantasy/leaguehub/internal/usecase"
)

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHistory")
	defer span.End()

	items, err := h.historyService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list history failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]historyDTO, 0, len(items))
	for _, item := range items {
		out = append(out, historyToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) UpsertHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertHistory")
	defer span.End()

	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: year must be a number", usecase.ErrInvalidInput))
		return
	}

	var req upsertHistoryRequest
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

	rec := history.Record{
		Year:     year,
		Champion: req.Champion,
		Manager:  req.Manager,
		Note:     req.Note,
	}
	if err := h.historyService.Upsert(ctx, rec); err != nil {
		h.logger.WarnContext(ctx, "upsert history failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, historyToDTO(ctx, rec))
}

type upsertHistoryRequest struct {
	Champion string `json:"champion" validate:"required,max=100"`
	Manager  string `json:"manager" validate:"max=100"`
	Note     string `json:"note" validate:"max=500"`
}

type historyDTO struct {
	Year     int    `json:"year"`
	Champion string `json:"champion"`
	Manager  string `json:"manager"`
	Note     string `json:"note"`
}

func historyToDTO(ctx context.Context, rec history.Record) historyDTO {
	ctx, span := startSpan(ctx, "httpapi.historyToDTO")
	defer span.End()

	return historyDTO{
		Year:     rec.Year,
		Champion: rec.Champion,
		Manager:  rec.Manager,
		Note:     rec.Note,
	}
}
