package postgres

import "time"

type writeupTableModel struct {
	ID        int64     `db:"id"`
	Week      int       `db:"week"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

type writeupInsertModel struct {
	Week    int    `db:"week"`
	Title   string `db:"title"`
	Content string `db:"content"`
}
