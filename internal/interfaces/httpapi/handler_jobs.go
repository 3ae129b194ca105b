package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/wolfpack-fantasy/leaguehub/internal/usecase"
)

// RunSyncJob executes one provider sync pass. Runtime failures come back as
// a failed report with HTTP 500 so a QStash callback sees a retryable status,
// while a disabled or unconfigured sync maps through the usual error envelope.
func (h *Handler) RunSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncJob")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: sync service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	report, err := h.syncService.Run(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run sync job rejected", "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if !report.Success {
		status = http.StatusInternalServerError
	}
	writeSuccess(ctx, w, status, report)
}

func (h *Handler) RunRecomputeTopScoresJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeTopScoresJob")
	defer span.End()

	if h.topScoreService == nil {
		writeError(ctx, w, fmt.Errorf("%w: top score service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeRecomputeTopScoresRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.topScoreService.RecomputeAll(ctx, req.MaxWorkers)
	if err != nil {
		h.logger.WarnContext(ctx, "recompute top scores job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

type recomputeTopScoresRequest struct {
	MaxWorkers int `json:"max_workers" validate:"gte=0"`
}

// An empty body is valid; QStash publishes these callbacks without a payload.
func decodeRecomputeTopScoresRequest(r *http.Request) (recomputeTopScoresRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req recomputeTopScoresRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return recomputeTopScoresRequest{}, nil
		}
		return recomputeTopScoresRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
