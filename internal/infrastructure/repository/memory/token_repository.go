package memory

import (
	"context"
	"sync"
	"time"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/token"
)

type TokenRepository struct {
	mu    sync.RWMutex
	pair  token.Pair
	saved bool
}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{}
}

func (r *TokenRepository) Get(_ context.Context) (token.Pair, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.pair, r.saved, nil
}

func (r *TokenRepository) Save(_ context.Context, p token.Pair) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = token.CurrentID
	}
	p.UpdatedAt = time.Now()
	r.pair = p
	r.saved = true

	return nil
}
