package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/wolfpack-fantasy/leaguehub/internal/platform/logging"
)

const standingsXML = `<?xml version="1.0" encoding="UTF-8"?>
<fantasy_content>
  <league>
    <league_key>nfl.l.431</league_key>
    <name>Wolfpack League</name>
    <current_week>2</current_week>
    <standings>
      <teams>
        <team>
          <team_key>wlf.t.1</team_key>
          <name>Moon Howlers</name>
          <managers><manager><nickname>Dana</nickname></manager></managers>
          <team_standings><outcome_totals><wins>2</wins><losses>0</losses></outcome_totals></team_standings>
        </team>
        <team>
          <team_key>wlf.t.2</team_key>
          <name>Gridiron Ghosts</name>
          <managers><manager><nickname>Marcus</nickname></manager></managers>
          <team_standings><outcome_totals><wins>0</wins><losses>2</losses></outcome_totals></team_standings>
        </team>
      </teams>
    </standings>
  </league>
</fantasy_content>`

func scoreboardXML(week int, pointsA, pointsB float64) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<fantasy_content>
  <league>
    <league_key>nfl.l.431</league_key>
    <scoreboard>
      <week>%d</week>
      <matchups>
        <matchup>
          <teams>
            <team><team_key>wlf.t.1</team_key><team_points><total>%.1f</total></team_points></team>
            <team><team_key>wlf.t.2</team_key><team_points><total>%.1f</total></team_points></team>
          </teams>
        </matchup>
      </matchups>
    </scoreboard>
  </league>
</fantasy_content>`, week, pointsA, pointsB)
}

type staticTokenSource struct {
	token string
	err   error
}

func (s staticTokenSource) AccessToken(_ context.Context) (string, error) {
	return s.token, s.err
}

func newFakeProviderServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-access-token" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `<error>missing or invalid bearer token</error>`)
			return
		}

		switch {
		case strings.HasSuffix(r.URL.Path, "/standings"):
			fmt.Fprint(w, standingsXML)
		case strings.Contains(r.URL.Path, "/scoreboard;week=1"):
			fmt.Fprint(w, scoreboardXML(1, 120.5, 99.2))
		case strings.Contains(r.URL.Path, "/scoreboard;week=2"):
			fmt.Fprint(w, scoreboardXML(2, 101.3, 97.0))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClient_FetchLeague(t *testing.T) {
	t.Parallel()

	server := newFakeProviderServer(t)
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Tokens:  staticTokenSource{token: "test-access-token"},
		Logger:  logging.NewNop(),
	})

	got, err := client.FetchLeague(context.Background(), "nfl.l.431")
	if err != nil {
		t.Fatalf("FetchLeague error: %v", err)
	}

	if got.LeagueKey != "nfl.l.431" || got.LeagueName != "Wolfpack League" || got.CurrentWeek != 2 {
		t.Fatalf("unexpected league header: %+v", got)
	}
	if len(got.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(got.Teams))
	}
	if got.Teams[0].Key != "wlf.t.1" || got.Teams[0].Manager != "Dana" || got.Teams[0].Wins != 2 {
		t.Fatalf("unexpected first team: %+v", got.Teams[0])
	}
	if len(got.Matchups) != 2 {
		t.Fatalf("expected one matchup per week, got %d", len(got.Matchups))
	}
	if got.Matchups[0].Week != 1 || got.Matchups[0].Sides[0].Points != 120.5 {
		t.Fatalf("unexpected week 1 matchup: %+v", got.Matchups[0])
	}
	if got.Matchups[1].Week != 2 || got.Matchups[1].Sides[1].TeamKey != "wlf.t.2" {
		t.Fatalf("unexpected week 2 matchup: %+v", got.Matchups[1])
	}
}

func TestClient_FetchLeague_UnauthorizedIsNotRetried(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Tokens:     staticTokenSource{token: "stale-token"},
		MaxRetries: 2,
		Logger:     logging.NewNop(),
	})

	_, err := client.FetchLeague(context.Background(), "nfl.l.431")
	if err == nil {
		t.Fatal("expected error for unauthorized response")
	}
	if got := requests.Load(); got != 1 {
		t.Fatalf("expected a single request for non-retryable status, got %d", got)
	}
}

func TestClient_FetchLeague_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		switch {
		case strings.HasSuffix(r.URL.Path, "/standings"):
			fmt.Fprint(w, standingsXML)
		case strings.Contains(r.URL.Path, "/scoreboard;week=1"):
			fmt.Fprint(w, scoreboardXML(1, 120.5, 99.2))
		case strings.Contains(r.URL.Path, "/scoreboard;week=2"):
			fmt.Fprint(w, scoreboardXML(2, 101.3, 97.0))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Tokens:     staticTokenSource{token: "test-access-token"},
		MaxRetries: 1,
		Logger:     logging.NewNop(),
	})

	got, err := client.FetchLeague(context.Background(), "nfl.l.431")
	if err != nil {
		t.Fatalf("FetchLeague error after retry: %v", err)
	}
	if got.LeagueName != "Wolfpack League" {
		t.Fatalf("unexpected league: %+v", got)
	}
	if requests.Load() < 2 {
		t.Fatalf("expected the failed request to be retried, saw %d requests", requests.Load())
	}
}

func TestSanitizeSensitiveText(t *testing.T) {
	t.Parallel()

	got := sanitizeSensitiveText(`dial failed Authorization: Bearer secret-token-value`, "secret-token-value")
	if strings.Contains(got, "secret-token-value") {
		t.Fatalf("token leaked into sanitized text: %q", got)
	}
	if !strings.Contains(got, "REDACTED") {
		t.Fatalf("expected redaction marker, got %q", got)
	}
}
