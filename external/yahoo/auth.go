package yahoo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/token"
	"github.com/wolfpack-fantasy/leaguehub/internal/platform/logging"
)

// expirySkew renews the access token slightly early so in-flight requests
// never race the provider-side expiry.
const expirySkew = 30 * time.Second

type AuthConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	RedirectURL  string
}

// Auth owns the provider OAuth credential: it runs the authorization code
// flow and keeps the stored token pair fresh for API calls.
type Auth struct {
	oauth     *oauth2.Config
	tokenRepo token.Repository
	logger    *logging.Logger
	now       func() time.Time

	mu sync.Mutex
}

func NewAuth(cfg AuthConfig, tokenRepo token.Repository, logger *logging.Logger) *Auth {
	if logger == nil {
		logger = logging.Default()
	}

	return &Auth{
		oauth: &oauth2.Config{
			ClientID:     strings.TrimSpace(cfg.ClientID),
			ClientSecret: strings.TrimSpace(cfg.ClientSecret),
			RedirectURL:  strings.TrimSpace(cfg.RedirectURL),
			Endpoint: oauth2.Endpoint{
				AuthURL:  strings.TrimSpace(cfg.AuthURL),
				TokenURL: strings.TrimSpace(cfg.TokenURL),
			},
		},
		tokenRepo: tokenRepo,
		logger:    logger,
		now:       time.Now,
	}
}

func (a *Auth) AuthCodeURL(state string) string {
	return a.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (a *Auth) Exchange(ctx context.Context, code string) (token.Pair, error) {
	tok, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return token.Pair{}, fmt.Errorf("exchange authorization code: %w", err)
	}

	return pairFromOAuthToken(tok), nil
}

// AccessToken returns the stored access token, refreshing and persisting it
// when past expiry. Refreshes are serialized so only one request hits the
// provider token endpoint at a time.
func (a *Auth) AccessToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	pair, saved, err := a.tokenRepo.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("load provider token: %w", err)
	}
	if !saved {
		return "", fmt.Errorf("no provider token stored, complete the oauth login first")
	}

	if !pair.Expired(a.now().Add(expirySkew)) {
		return pair.AccessToken, nil
	}

	fresh, err := a.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: pair.RefreshToken}).Token()
	if err != nil {
		return "", fmt.Errorf("refresh provider token: %w", err)
	}

	rotated := pairFromOAuthToken(fresh)
	if rotated.RefreshToken == "" {
		rotated.RefreshToken = pair.RefreshToken
	}
	if err := a.tokenRepo.Save(ctx, rotated); err != nil {
		return "", fmt.Errorf("save refreshed provider token: %w", err)
	}
	a.logger.InfoContext(ctx, "provider token refreshed", "expires_at", rotated.ExpiresAt)

	return rotated.AccessToken, nil
}

func pairFromOAuthToken(tok *oauth2.Token) token.Pair {
	return token.Pair{
		ID:           token.CurrentID,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		ExpiresAt:    tok.Expiry,
	}
}
