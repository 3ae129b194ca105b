package postgres

import "time"

type resultTableModel struct {
	ID             int64     `db:"id"`
	TeamID         string    `db:"team_id"`
	OpponentID     string    `db:"opponent_id"`
	Week           int       `db:"week"`
	Points         float64   `db:"points"`
	OpponentPoints float64   `db:"opponent_points"`
	TopPlayer      bool      `db:"top_player"`
	TopPoints      bool      `db:"top_points"`
	CreatedAt      time.Time `db:"created_at"`
}

type resultInsertModel struct {
	TeamID         string  `db:"team_id"`
	OpponentID     string  `db:"opponent_id"`
	Week           int     `db:"week"`
	Points         float64 `db:"points"`
	OpponentPoints float64 `db:"opponent_points"`
	TopPlayer      bool    `db:"top_player"`
	TopPoints      bool    `db:"top_points"`
}
