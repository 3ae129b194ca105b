package httpapi

import (
	"fmt"
	"net/http"

	"github.com/wolfpack-fantasy/leaguehub/internal/usecase"
)

func (h *Handler) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OAuthLogin")
	defer span.End()

	if h.authService == nil {
		writeError(ctx, w, fmt.Errorf("%w: oauth is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	loginURL, err := h.authService.LoginURL(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "build oauth login url failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	http.Redirect(w, r.WithContext(ctx), loginURL, http.StatusFound)
}

func (h *Handler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OAuthCallback")
	defer span.End()

	if h.authService == nil {
		writeError(ctx, w, fmt.Errorf("%w: oauth is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	query := r.URL.Query()
	if err := h.authService.CompleteLogin(ctx, query.Get("state"), query.Get("code")); err != nil {
		h.logger.WarnContext(ctx, "oauth callback failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "authorized"})
}
