package yahoo

import (
	"context"
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/wolfpack-fantasy/leaguehub/internal/platform/logging"
	"github.com/wolfpack-fantasy/leaguehub/internal/platform/resilience"
	"github.com/wolfpack-fantasy/leaguehub/internal/usecase"
)

const defaultBaseURL = "https://fantasysports.yahooapis.com"

var bearerHeaderRegex = regexp.MustCompile(`(?i)bearer\s+[^\s"']+`)
var errYahooTransient = crerr.New("yahoo transient failure")

// AccessTokenSource supplies a valid provider access token, refreshing the
// stored credential when needed.
type AccessTokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Tokens         AccessTokenSource
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	tokens         AccessTokenSource
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		tokens:         cfg.Tokens,
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchLeague pulls the standings page plus one scoreboard page per played
// week and folds them into a single snapshot.
func (c *Client) FetchLeague(ctx context.Context, leagueKey string) (usecase.ExternalLeagueSnapshot, error) {
	leagueKey = strings.TrimSpace(leagueKey)
	if leagueKey == "" {
		return usecase.ExternalLeagueSnapshot{}, fmt.Errorf("league key is required")
	}

	var content fantasyContent
	path := fmt.Sprintf("/fantasy/v2/league/%s/standings", leagueKey)
	if err := c.doXML(ctx, path, &content); err != nil {
		return usecase.ExternalLeagueSnapshot{}, fmt.Errorf("fetch standings league_key=%s: %w", leagueKey, err)
	}
	if content.League == nil || content.League.Standings == nil || content.League.Standings.Teams == nil {
		return usecase.ExternalLeagueSnapshot{}, fmt.Errorf("league standings payload is missing teams league_key=%s", leagueKey)
	}

	snapshot := usecase.ExternalLeagueSnapshot{
		LeagueKey:   content.League.Key,
		LeagueName:  content.League.Name,
		CurrentWeek: content.League.CurrentWeek,
		Teams:       mapStandingsTeams(content.League.Standings.Teams.Teams),
	}

	for week := 1; week <= snapshot.CurrentWeek; week++ {
		rows, err := c.fetchScoreboard(ctx, leagueKey, week)
		if err != nil {
			return usecase.ExternalLeagueSnapshot{}, fmt.Errorf("fetch scoreboard league_key=%s week=%d: %w", leagueKey, week, err)
		}
		snapshot.Matchups = append(snapshot.Matchups, rows...)
	}

	return snapshot, nil
}

func (c *Client) fetchScoreboard(ctx context.Context, leagueKey string, week int) ([]usecase.ExternalMatchup, error) {
	var content fantasyContent
	path := fmt.Sprintf("/fantasy/v2/league/%s/scoreboard;week=%d", leagueKey, week)
	if err := c.doXML(ctx, path, &content); err != nil {
		return nil, err
	}
	if content.League == nil || content.League.Scoreboard == nil || content.League.Scoreboard.Matchups == nil {
		return nil, fmt.Errorf("scoreboard payload is missing matchups")
	}

	out := make([]usecase.ExternalMatchup, 0, len(content.League.Scoreboard.Matchups.Matchups))
	for _, m := range content.League.Scoreboard.Matchups.Matchups {
		if m.Teams == nil || len(m.Teams.Teams) != 2 {
			return nil, fmt.Errorf("matchup does not have exactly two teams week=%d", week)
		}
		row := usecase.ExternalMatchup{Week: week}
		for i, side := range m.Teams.Teams {
			points := 0.0
			if side.TeamPoints != nil {
				points = side.TeamPoints.Total
			}
			row.Sides[i] = usecase.ExternalMatchupSide{
				TeamKey: strings.TrimSpace(side.Key),
				Points:  points,
			}
		}
		out = append(out, row)
	}

	return out, nil
}

func (c *Client) doXML(ctx context.Context, path string, target any) error {
	if c.tokens == nil {
		return fmt.Errorf("%w: provider token source is not configured", usecase.ErrDependencyUnavailable)
	}
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "yahoo circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: fantasy provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isYahooCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := xml.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	accessToken, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve provider access token: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)
		req.Header.Set("Accept", "application/xml")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errYahooTransient, sanitizeSensitiveText(err.Error(), accessToken))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errYahooTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				if isRetryableStatus(resp.StatusCode) {
					lastErr = fmt.Errorf("%w: provider status=%d body=%s", errYahooTransient, resp.StatusCode, abbreviateBody(raw))
				} else {
					return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
				}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "yahoo request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func mapStandingsTeams(items []team) []usecase.ExternalTeam {
	out := make([]usecase.ExternalTeam, 0, len(items))
	for _, item := range items {
		row := usecase.ExternalTeam{
			Key:  strings.TrimSpace(item.Key),
			Name: strings.TrimSpace(item.Name),
		}
		if item.Managers != nil && len(item.Managers.Managers) > 0 {
			row.Manager = strings.TrimSpace(item.Managers.Managers[0].Nickname)
		}
		if item.TeamStandings != nil && item.TeamStandings.OutcomeTotals != nil {
			row.Wins = item.TeamStandings.OutcomeTotals.Wins
			row.Losses = item.TeamStandings.OutcomeTotals.Losses
		}
		out = append(out, row)
	}
	return out
}

func sanitizeSensitiveText(value, accessToken string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if accessToken != "" {
		value = strings.ReplaceAll(value, accessToken, "REDACTED")
	}
	value = bearerHeaderRegex.ReplaceAllString(value, "Bearer REDACTED")
	return value
}

func isYahooCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errYahooTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
