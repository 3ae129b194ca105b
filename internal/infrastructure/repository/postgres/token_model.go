package postgres

import (
	"database/sql"
	"time"
)

type tokenTableModel struct {
	ID           string       `db:"id"`
	AccessToken  string       `db:"access_token"`
	RefreshToken string       `db:"refresh_token"`
	TokenType    string       `db:"token_type"`
	ExpiresAt    sql.NullTime `db:"expires_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

type tokenInsertModel struct {
	ID           string     `db:"id"`
	AccessToken  string     `db:"access_token"`
	RefreshToken string     `db:"refresh_token"`
	TokenType    string     `db:"token_type"`
	ExpiresAt    *time.Time `db:"expires_at"`
}
