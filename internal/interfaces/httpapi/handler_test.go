package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/wolfpack-fantasy/leaguehub/internal/infrastructure/repository/memory"
	"github.com/wolfpack-fantasy/leaguehub/internal/platform/logging"
	"github.com/wolfpack-fantasy/leaguehub/internal/usecase"
)

const (
	testCommissionerKey  = "commish-key"
	testInternalJobToken = "job-token"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	resultRepo := memory.NewResultRepository(memory.SeedResults())
	writeupRepo := memory.NewWriteupRepository(memory.SeedWriteups())
	historyRepo := memory.NewHistoryRepository(memory.SeedHistory())

	logger := logging.NewNop()
	handler := NewHandler(
		usecase.NewTeamService(teamRepo, resultRepo),
		usecase.NewResultService(resultRepo, teamRepo),
		usecase.NewWriteupService(writeupRepo),
		usecase.NewHistoryService(historyRepo),
		nil,
		usecase.NewSyncService(nil, teamRepo, resultRepo, usecase.SyncConfig{}, logger),
		usecase.NewTopScoreService(resultRepo, logger),
		logger,
	)

	return NewRouter(handler, logger, false, nil, testCommissionerKey, testInternalJobToken)
}

func doJSON(t *testing.T, router http.Handler, method, target, body string, header map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for key, value := range header {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("unmarshal %s %s response: %v", method, target, err)
		}
	}
	return rec, envelope
}

func commissionerHeader() map[string]string {
	return map[string]string{"X-Commissioner-Key": testCommissionerKey}
}

func TestRouter_ListTeams_ReturnsEnrichedStandings(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, envelope := doJSON(t, router, http.MethodGet, "/v1/teams", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	items, ok := envelope["data"].([]any)
	if !ok || len(items) != 4 {
		t.Fatalf("expected 4 standings rows, got %v", envelope["data"])
	}

	first, _ := items[0].(map[string]any)
	if first["id"] != "wlf.t.1" {
		t.Fatalf("expected standings ordered by wins, first=%v", first)
	}
	if streak, _ := first["streak"].(float64); streak != 3 {
		t.Fatalf("expected win streak 3 for the unbeaten team, got %v", first["streak"])
	}
}

func TestRouter_GetTeam_ResolvesOpponents(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, envelope := doJSON(t, router, http.MethodGet, "/v1/teams/wlf.t.1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	data, _ := envelope["data"].(map[string]any)
	results, _ := data["results"].([]any)
	if len(results) != 3 {
		t.Fatalf("expected 3 results for wlf.t.1, got %d", len(results))
	}
	firstRow, _ := results[0].(map[string]any)
	if name, _ := firstRow["opponentName"].(string); name == "" {
		t.Fatalf("expected opponent name resolved, got %v", firstRow)
	}
}

func TestRouter_GetTeam_UnknownIs404(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, _ := doJSON(t, router, http.MethodGet, "/v1/teams/wlf.t.99", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_ListResults_WeekFilter(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/v1/results?week=2", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	items, _ := envelope["data"].([]any)
	if len(items) != 4 {
		t.Fatalf("expected 4 rows for week 2, got %d", len(items))
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/v1/results?week=zero", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric week, got %d", rec.Code)
	}
}

func TestRouter_TopScorer(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/v1/results/top-scorer?week=3", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	data, _ := envelope["data"].(map[string]any)
	if data["teamId"] != "wlf.t.1" || data["teamName"] != "Moon Howlers" {
		t.Fatalf("unexpected top scorer: %v", data)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/v1/results/top-scorer?week=9", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an empty week, got %d", rec.Code)
	}
}

func TestRouter_CommissionerGate(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	payload := `{"id":"wlf.t.5","name":"Fifth Wheel","manager":"Quinn","wins":0,"losses":0}`

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/teams", payload, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without commissioner key, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/teams", payload, map[string]string{"X-Commissioner-Key": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with a wrong commissioner key, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/teams", payload, commissionerHeader())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with the commissioner key, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRouter_RecordResult_WritesMirroredRows(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	payload := `{"teamId":"wlf.t.1","opponentId":"wlf.t.2","week":4,"points":133.0,"opponentPoints":118.5,"topPlayer":true}`

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/results", payload, commissionerHeader())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	getRec, envelope := doJSON(t, router, http.MethodGet, "/v1/results?week=4", "", nil)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getRec.Code)
	}
	items, _ := envelope["data"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected both mirrored rows for week 4, got %d", len(items))
	}
}

func TestRouter_RecordResult_ValidationFailures(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/results",
		`{"teamId":"wlf.t.1","opponentId":"wlf.t.1","week":4,"points":10,"opponentPoints":10}`, commissionerHeader())
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a self matchup, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/results",
		`{"teamId":"wlf.t.1","opponentId":"wlf.t.9","week":4,"points":10,"opponentPoints":10}`, commissionerHeader())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown opponent, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/results",
		`{"teamId":"wlf.t.1","week":4,"points":10,"unknown":true}`, commissionerHeader())
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown field, got %d", rec.Code)
	}
}

func TestRouter_Writeups(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/v1/writeups/latest", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := envelope["data"].(map[string]any)
	if week, _ := data["week"].(float64); week != 3 {
		t.Fatalf("expected the week 3 writeup, got %v", data)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/writeups",
		`{"week":4,"title":"Week 4","content":"Upset city."}`, commissionerHeader())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec, envelope = doJSON(t, router, http.MethodGet, "/v1/writeups", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	items, _ := envelope["data"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 writeups, got %d", len(items))
	}
}

func TestRouter_History_Upsert(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPut, "/v1/history/2025",
		`{"champion":"Blitz Bandits","manager":"Priya","note":"wire-to-wire"}`, commissionerHeader())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	getRec, envelope := doJSON(t, router, http.MethodGet, "/v1/history", "", nil)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getRec.Code)
	}
	items, _ := envelope["data"].([]any)
	if len(items) != 3 {
		t.Fatalf("expected 3 history records, got %d", len(items))
	}
	first, _ := items[0].(map[string]any)
	if year, _ := first["year"].(float64); year != 2025 {
		t.Fatalf("expected newest season first, got %v", first)
	}
}

func TestRouter_InternalJobGate(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/internal/jobs/recompute-top-scores", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without the job token, got %d", rec.Code)
	}

	rec, envelope := doJSON(t, router, http.MethodPost, "/v1/internal/jobs/recompute-top-scores", "",
		map[string]string{"X-Internal-Job-Token": testInternalJobToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	data, _ := envelope["data"].(map[string]any)
	if weekCount, _ := data["week_count"].(float64); weekCount != 3 {
		t.Fatalf("expected 3 recomputed weeks, got %v", data)
	}
}

func TestRouter_SyncJob_DisabledIs503(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/internal/jobs/sync", "",
		map[string]string{"X-Internal-Job-Token": testInternalJobToken})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when sync is disabled, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	for _, target := range []string{"/healthz", "/v1/healthz"} {
		rec, envelope := doJSON(t, router, http.MethodGet, target, "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", target, rec.Code)
		}
		data, _ := envelope["data"].(map[string]any)
		if data["status"] != "ok" {
			t.Fatalf("unexpected health payload: %v", envelope)
		}
	}
}
