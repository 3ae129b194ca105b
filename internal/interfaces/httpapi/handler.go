package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/wolfpack-fantasy/leaguehub/internal/platform/logging"
	"github.com/wolfpack-fantasy/leaguehub/internal/usecase"
)

type Handler struct {
	teamService     *usecase.TeamService
	resultService   *usecase.ResultService
	writeupService  *usecase.WriteupService
	historyService  *usecase.HistoryService
	authService     *usecase.AuthService
	syncService     *usecase.SyncService
	topScoreService *usecase.TopScoreService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	resultService *usecase.ResultService,
	writeupService *usecase.WriteupService,
	historyService *usecase.HistoryService,
	authService *usecase.AuthService,
	syncService *usecase.SyncService,
	topScoreService *usecase.TopScoreService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamService:     teamService,
		resultService:   resultService,
		writeupService:  writeupService,
		historyService:  historyService,
		authService:     authService,
		syncService:     syncService,
		topScoreService: topScoreService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
