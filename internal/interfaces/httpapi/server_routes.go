package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/results", handler.ListResults)
	mux.HandleFunc("GET /v1/results/top-scorer", handler.GetTopScorer)
	mux.HandleFunc("GET /v1/writeups", handler.ListWriteups)
	mux.HandleFunc("GET /v1/writeups/latest", handler.GetLatestWriteup)
	mux.HandleFunc("GET /v1/history", handler.ListHistory)
}

func registerOAuthRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/oauth/login", handler.OAuthLogin)
	mux.HandleFunc("GET /v1/oauth/callback", handler.OAuthCallback)
}

func registerCommissionerRoutes(mux *http.ServeMux, handler *Handler, commissionerKey string) {
	mux.Handle("POST /v1/teams", RequireCommissioner(commissionerKey, http.HandlerFunc(handler.UpsertTeam)))
	mux.Handle("POST /v1/results", RequireCommissioner(commissionerKey, http.HandlerFunc(handler.RecordResult)))
	mux.Handle("POST /v1/writeups", RequireCommissioner(commissionerKey, http.HandlerFunc(handler.CreateWriteup)))
	mux.Handle("PUT /v1/history/{year}", RequireCommissioner(commissionerKey, http.HandlerFunc(handler.UpsertHistory)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncJob)))
	mux.Handle("POST /v1/internal/jobs/recompute-top-scores", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeTopScoresJob)))
}
