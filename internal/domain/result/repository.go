package result

import "context"

// Repository describes weekly result persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Result, error)
	ListByTeam(ctx context.Context, teamID string) ([]Result, error)
	ListByWeek(ctx context.Context, week int) ([]Result, error)
	// Replace removes any row matching r's (team, opponent, week) key and
	// inserts r in its place, inside one transaction.
	Replace(ctx context.Context, r Result) error
	// SetTopPoints marks top_points true for exactly the given teams in the
	// given week and false for everyone else that week.
	SetTopPoints(ctx context.Context, week int, teamIDs []string) error
	Weeks(ctx context.Context) ([]int, error)
}
