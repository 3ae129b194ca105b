package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/team"
	qb "github.com/wolfpack-fantasy/leaguehub/internal/platform/querybuilder"
)

type StandingsRepository struct {
	db *sqlx.DB
}

func NewStandingsRepository(db *sqlx.DB) *StandingsRepository {
	return &StandingsRepository{db: db}
}

func (r *StandingsRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("team_standings").
		OrderBy("wins DESC", "name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingsRowToDomain(row))
	}

	return out, nil
}

func (r *StandingsRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("team_standings").
		Where(qb.Eq("id", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get standings query: %w", err)
	}

	var row standingsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get standings id=%s: %w", teamID, err)
	}

	return standingsRowToDomain(row), true, nil
}

func (r *StandingsRepository) Upsert(ctx context.Context, t team.Team) error {
	insertModel := standingsInsertModel{
		ID:      t.ID,
		Name:    t.Name,
		Manager: t.Manager,
		Wins:    t.Wins,
		Losses:  t.Losses,
	}
	query, args, err := qb.InsertModel("team_standings", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    manager = EXCLUDED.manager,
    wins = EXCLUDED.wins,
    losses = EXCLUDED.losses,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert standings query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert standings id=%s: %w", t.ID, err)
	}

	return nil
}

func standingsRowToDomain(row standingsTableModel) team.Team {
	return team.Team{
		ID:        row.ID,
		Name:      row.Name,
		Manager:   row.Manager,
		Wins:      row.Wins,
		Losses:    row.Losses,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
