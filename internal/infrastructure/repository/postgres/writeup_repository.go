package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/writeup"
	qb "github.com/wolfpack-fantasy/leaguehub/internal/platform/querybuilder"
)

type WriteupRepository struct {
	db *sqlx.DB
}

func NewWriteupRepository(db *sqlx.DB) *WriteupRepository {
	return &WriteupRepository{db: db}
}

func (r *WriteupRepository) List(ctx context.Context) ([]writeup.Writeup, error) {
	query, args, err := qb.Select("*").From("weekly_writeups").
		OrderBy("week DESC", "created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list writeups query: %w", err)
	}

	var rows []writeupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list writeups: %w", err)
	}

	out := make([]writeup.Writeup, 0, len(rows))
	for _, row := range rows {
		out = append(out, writeupRowToDomain(row))
	}

	return out, nil
}

// Latest orders by week first and creation time second, the documented
// newest-entry policy.
func (r *WriteupRepository) Latest(ctx context.Context) (writeup.Writeup, bool, error) {
	query, args, err := qb.Select("*").From("weekly_writeups").
		OrderBy("week DESC", "created_at DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return writeup.Writeup{}, false, fmt.Errorf("build latest writeup query: %w", err)
	}

	var row writeupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return writeup.Writeup{}, false, nil
		}
		return writeup.Writeup{}, false, fmt.Errorf("get latest writeup: %w", err)
	}

	return writeupRowToDomain(row), true, nil
}

func (r *WriteupRepository) Create(ctx context.Context, w writeup.Writeup) (writeup.Writeup, error) {
	insertModel := writeupInsertModel{
		Week:    w.Week,
		Title:   w.Title,
		Content: w.Content,
	}
	query, args, err := qb.InsertModel("weekly_writeups", insertModel, "RETURNING id, created_at")
	if err != nil {
		return writeup.Writeup{}, fmt.Errorf("build insert writeup query: %w", err)
	}

	var returned struct {
		ID        int64     `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	if err := r.db.GetContext(ctx, &returned, query, args...); err != nil {
		return writeup.Writeup{}, fmt.Errorf("insert writeup week=%d: %w", w.Week, err)
	}

	w.ID = returned.ID
	w.CreatedAt = returned.CreatedAt
	return w, nil
}

func writeupRowToDomain(row writeupTableModel) writeup.Writeup {
	return writeup.Writeup{
		ID:        row.ID,
		Week:      row.Week,
		Title:     row.Title,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
	}
}
