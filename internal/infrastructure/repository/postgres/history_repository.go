package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/history"
	qb "github.com/wolfpack-fantasy/leaguehub/internal/platform/querybuilder"
)

type HistoryRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) List(ctx context.Context) ([]history.Record, error) {
	query, args, err := qb.Select("*").From("league_history").
		OrderBy("year DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list history query: %w", err)
	}

	var rows []historyTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	out := make([]history.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, history.Record{
			Year:      row.Year,
			Champion:  row.Champion,
			Manager:   row.Manager,
			Note:      row.Note,
			CreatedAt: row.CreatedAt,
		})
	}

	return out, nil
}

func (r *HistoryRepository) Upsert(ctx context.Context, rec history.Record) error {
	insertModel := historyInsertModel{
		Year:     rec.Year,
		Champion: rec.Champion,
		Manager:  rec.Manager,
		Note:     rec.Note,
	}
	query, args, err := qb.InsertModel("league_history", insertModel, `ON CONFLICT (year)
DO UPDATE SET
    champion = EXCLUDED.champion,
    manager = EXCLUDED.manager,
    note = EXCLUDED.note`)
	if err != nil {
		return fmt.Errorf("build upsert history query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert history year=%d: %w", rec.Year, err)
	}

	return nil
}
