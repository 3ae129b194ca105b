package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/result"
	qb "github.com/wolfpack-fantasy/leaguehub/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) List(ctx context.Context) ([]result.Result, error) {
	return r.list(ctx, nil)
}

func (r *ResultRepository) ListByTeam(ctx context.Context, teamID string) ([]result.Result, error) {
	return r.list(ctx, []qb.Condition{qb.Eq("team_id", teamID)})
}

func (r *ResultRepository) ListByWeek(ctx context.Context, week int) ([]result.Result, error) {
	return r.list(ctx, []qb.Condition{qb.Eq("week", week)})
}

func (r *ResultRepository) list(ctx context.Context, conditions []qb.Condition) ([]result.Result, error) {
	builder := qb.Select("*").From("weekly_results").OrderBy("week", "id")
	if len(conditions) > 0 {
		builder = builder.Where(conditions...)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list results query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	out := make([]result.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultRowToDomain(row))
	}

	return out, nil
}

// Replace removes any prior row for (team, opponent, week) and inserts the
// new one inside a single transaction, so concurrent writers cannot
// interleave a delete with a stale insert.
func (r *ResultRepository) Replace(ctx context.Context, res result.Result) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace result: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("weekly_results").
		Where(
			qb.Eq("team_id", res.TeamID),
			qb.Eq("opponent_id", res.OpponentID),
			qb.Eq("week", res.Week),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete result query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete prior result: %w", err)
	}

	insertModel := resultInsertModel{
		TeamID:         res.TeamID,
		OpponentID:     res.OpponentID,
		Week:           res.Week,
		Points:         res.Points,
		OpponentPoints: res.OpponentPoints,
		TopPlayer:      res.TopPlayer,
		TopPoints:      res.TopPoints,
	}
	query, args, err := qb.InsertModel("weekly_results", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert result query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert result team=%s opponent=%s week=%d: %w", res.TeamID, res.OpponentID, res.Week, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace result tx: %w", err)
	}
	return nil
}

// SetTopPoints clears the top_points flag for the week and re-flags the
// given teams in one transaction.
func (r *ResultRepository) SetTopPoints(ctx context.Context, week int, teamIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx set top points: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("weekly_results").
		Set("top_points", false).
		Where(qb.Eq("week", week)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear top points query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear top points week=%d: %w", week, err)
	}

	if len(teamIDs) > 0 {
		ids := make([]any, 0, len(teamIDs))
		for _, id := range teamIDs {
			ids = append(ids, id)
		}
		flagQuery, flagArgs, err := qb.Update("weekly_results").
			Set("top_points", true).
			Where(qb.Eq("week", week), qb.In("team_id", ids)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build flag top points query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, flagQuery, flagArgs...); err != nil {
			return fmt.Errorf("flag top points week=%d: %w", week, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set top points tx: %w", err)
	}
	return nil
}

func (r *ResultRepository) Weeks(ctx context.Context) ([]int, error) {
	query, args, err := qb.Select("DISTINCT week").From("weekly_results").
		OrderBy("week").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weeks query: %w", err)
	}

	var weeks []int
	if err := r.db.SelectContext(ctx, &weeks, query, args...); err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}

	return weeks, nil
}

func resultRowToDomain(row resultTableModel) result.Result {
	return result.Result{
		ID:             row.ID,
		TeamID:         row.TeamID,
		OpponentID:     row.OpponentID,
		Week:           row.Week,
		Points:         row.Points,
		OpponentPoints: row.OpponentPoints,
		TopPlayer:      row.TopPlayer,
		TopPoints:      row.TopPoints,
		CreatedAt:      row.CreatedAt,
	}
}
