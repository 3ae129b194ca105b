package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/token"
	qb "github.com/wolfpack-fantasy/leaguehub/internal/platform/querybuilder"
)

type TokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Get(ctx context.Context) (token.Pair, bool, error) {
	query, args, err := qb.Select("*").From("provider_tokens").
		Where(qb.Eq("id", token.CurrentID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return token.Pair{}, false, fmt.Errorf("build get token query: %w", err)
	}

	var row tokenTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return token.Pair{}, false, nil
		}
		return token.Pair{}, false, fmt.Errorf("get provider token: %w", err)
	}

	pair := token.Pair{
		ID:           row.ID,
		AccessToken:  row.AccessToken,
		RefreshToken: row.RefreshToken,
		TokenType:    row.TokenType,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.ExpiresAt.Valid {
		pair.ExpiresAt = row.ExpiresAt.Time
	}

	return pair, true, nil
}

func (r *TokenRepository) Save(ctx context.Context, p token.Pair) error {
	if p.ID == "" {
		p.ID = token.CurrentID
	}
	insertModel := tokenInsertModel{
		ID:           p.ID,
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
	}
	if !p.ExpiresAt.IsZero() {
		expiresAt := p.ExpiresAt
		insertModel.ExpiresAt = &expiresAt
	}
	query, args, err := qb.InsertModel("provider_tokens", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    access_token = EXCLUDED.access_token,
    refresh_token = EXCLUDED.refresh_token,
    token_type = EXCLUDED.token_type,
    expires_at = EXCLUDED.expires_at,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert token query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert provider token: %w", err)
	}

	return nil
}
