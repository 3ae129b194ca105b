package httpapi

import (
	"context"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/writeup"
	"github.com/wolfpack-fantasy/leaguehub/internal/usecase"
)

func (h *Handler) ListWriteups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWriteups")
	defer span.End()

	items, err := h.writeupService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list writeups failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]writeupDTO, 0, len(items))
	for _, item := range items {
		out = append(out, writeupToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLatestWriteup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLatestWriteup")
	defer span.End()

	item, err := h.writeupService.Latest(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get latest writeup failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, writeupToDTO(ctx, item))
}

func (h *Handler) CreateWriteup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateWriteup")
	defer span.End()

	var req createWriteupRequest
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

	created, err := h.writeupService.Create(ctx, writeup.Writeup{
		Week:    req.Week,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create writeup failed", "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, writeupToDTO(ctx, created))
}

type createWriteupRequest struct {
	Week    int    `json:"week" validate:"required,min=1"`
	Title   string `json:"title" validate:"max=200"`
	Content string `json:"content" validate:"required"`
}

type writeupDTO struct {
	ID        int64  `json:"id"`
	Week      int    `json:"week"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

func writeupToDTO(ctx context.Context, item writeup.Writeup) writeupDTO {
	ctx, span := startSpan(ctx, "httpapi.writeupToDTO")
	defer span.End()

	return writeupDTO{
		ID:        item.ID,
		Week:      item.Week,
		Title:     item.Title,
		Content:   item.Content,
		CreatedAt: formatTimestamp(item.CreatedAt),
	}
}
