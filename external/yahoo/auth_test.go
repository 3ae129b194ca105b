package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/token"
	"github.com/wolfpack-fantasy/leaguehub/internal/infrastructure/repository/memory"
	"github.com/wolfpack-fantasy/leaguehub/internal/platform/logging"
)

func TestAuth_AuthCodeURLCarriesState(t *testing.T) {
	t.Parallel()

	auth := NewAuth(AuthConfig{
		ClientID:    "client-1",
		AuthURL:     "https://auth.example.com/request",
		TokenURL:    "https://auth.example.com/token",
		RedirectURL: "oob",
	}, memory.NewTokenRepository(), logging.NewNop())

	raw := auth.AuthCodeURL("state-123")
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse auth url: %v", err)
	}
	query := parsed.Query()
	if query.Get("state") != "state-123" || query.Get("client_id") != "client-1" {
		t.Fatalf("unexpected auth url: %s", raw)
	}
}

func TestAuth_AccessToken_ReturnsStoredTokenWhenFresh(t *testing.T) {
	t.Parallel()

	repo := memory.NewTokenRepository()
	if err := repo.Save(context.Background(), token.Pair{
		AccessToken:  "fresh-access",
		RefreshToken: "refresh-1",
		TokenType:    "bearer",
		ExpiresAt:    time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	auth := NewAuth(AuthConfig{ClientID: "client-1"}, repo, logging.NewNop())

	got, err := auth.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken error: %v", err)
	}
	if got != "fresh-access" {
		t.Fatalf("expected stored token, got %q", got)
	}
}

func TestAuth_AccessToken_RefreshesExpiredToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse token request form: %v", err)
		}
		if r.PostForm.Get("refresh_token") != "refresh-1" {
			t.Errorf("unexpected refresh token: %q", r.PostForm.Get("refresh_token"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"rotated-access","refresh_token":"refresh-2","token_type":"bearer","expires_in":3600}`)
	}))
	defer server.Close()

	repo := memory.NewTokenRepository()
	if err := repo.Save(context.Background(), token.Pair{
		AccessToken:  "expired-access",
		RefreshToken: "refresh-1",
		TokenType:    "bearer",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	auth := NewAuth(AuthConfig{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		TokenURL:     server.URL,
	}, repo, logging.NewNop())

	got, err := auth.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken error: %v", err)
	}
	if got != "rotated-access" {
		t.Fatalf("expected refreshed token, got %q", got)
	}

	pair, saved, err := repo.Get(context.Background())
	if err != nil || !saved {
		t.Fatalf("expected persisted token, saved=%v err=%v", saved, err)
	}
	if pair.AccessToken != "rotated-access" || pair.RefreshToken != "refresh-2" {
		t.Fatalf("rotated pair not persisted: %+v", pair)
	}
}

func TestAuth_AccessToken_MissingToken(t *testing.T) {
	t.Parallel()

	auth := NewAuth(AuthConfig{ClientID: "client-1"}, memory.NewTokenRepository(), logging.NewNop())

	if _, err := auth.AccessToken(context.Background()); err == nil {
		t.Fatal("expected error when no token is stored")
	}
}
