package postgres

import "time"

type historyTableModel struct {
	Year      int       `db:"year"`
	Champion  string    `db:"champion"`
	Manager   string    `db:"manager"`
	Note      string    `db:"note"`
	CreatedAt time.Time `db:"created_at"`
}

type historyInsertModel struct {
	Year     int    `db:"year"`
	Champion string `db:"champion"`
	Manager  string `db:"manager"`
	Note     string `db:"note"`
}
