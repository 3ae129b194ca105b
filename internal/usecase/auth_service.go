package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/token"
	"github.com/wolfpack-fantasy/leaguehub/internal/platform/id"
)

const authStateTTL = 5 * time.Minute

// TokenExchanger runs the provider side of the authorization code flow.
type TokenExchanger interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (token.Pair, error)
}

type AuthService struct {
	exchanger TokenExchanger
	tokenRepo token.Repository
	idGen     id.Generator
	now       func() time.Time

	mu     sync.Mutex
	states map[string]time.Time
}

func NewAuthService(exchanger TokenExchanger, tokenRepo token.Repository, idGen id.Generator) *AuthService {
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}

	return &AuthService{
		exchanger: exchanger,
		tokenRepo: tokenRepo,
		idGen:     idGen,
		now:       time.Now,
		states:    make(map[string]time.Time),
	}
}

// LoginURL issues a fresh state value and returns the provider consent URL.
func (s *AuthService) LoginURL(ctx context.Context) (string, error) {
	_, span := startUsecaseSpan(ctx, "usecase.AuthService.LoginURL")
	defer span.End()

	if s.exchanger == nil {
		return "", fmt.Errorf("%w: oauth is not configured", ErrDependencyUnavailable)
	}

	state, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}

	s.mu.Lock()
	s.pruneExpiredLocked()
	s.states[state] = s.now().Add(authStateTTL)
	s.mu.Unlock()

	return s.exchanger.AuthCodeURL(state), nil
}

// CompleteLogin validates the callback state, exchanges the code and persists
// the resulting token pair. Each state is single use.
func (s *AuthService) CompleteLogin(ctx context.Context, state, code string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.CompleteLogin")
	defer span.End()

	if s.exchanger == nil || s.tokenRepo == nil {
		return fmt.Errorf("%w: oauth is not configured", ErrDependencyUnavailable)
	}

	state = strings.TrimSpace(state)
	code = strings.TrimSpace(code)
	if state == "" || code == "" {
		return fmt.Errorf("%w: state and code are required", ErrInvalidInput)
	}

	s.mu.Lock()
	expiresAt, known := s.states[state]
	delete(s.states, state)
	s.pruneExpiredLocked()
	s.mu.Unlock()

	if !known || s.now().After(expiresAt) {
		return fmt.Errorf("%w: unknown or expired oauth state", ErrUnauthorized)
	}

	pair, err := s.exchanger.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("%w: exchange authorization code: %v", ErrDependencyUnavailable, err)
	}

	pair.ID = token.CurrentID
	if err := pair.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.tokenRepo.Save(ctx, pair); err != nil {
		return fmt.Errorf("save provider token: %w", err)
	}

	return nil
}

func (s *AuthService) pruneExpiredLocked() {
	now := s.now()
	for state, expiresAt := range s.states {
		if now.After(expiresAt) {
			delete(s.states, state)
		}
	}
}
