package postgres

import "time"

type standingsTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Manager   string    `db:"manager"`
	Wins      int       `db:"wins"`
	Losses    int       `db:"losses"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type standingsInsertModel struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Manager string `db:"manager"`
	Wins    int    `db:"wins"`
	Losses  int    `db:"losses"`
}
