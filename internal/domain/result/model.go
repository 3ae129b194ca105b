package result

import (
	"fmt"
	"time"
)

// Result is one side of a weekly head-to-head matchup. Every matchup
// materializes as two mirrored rows, one per team, unique on
// (team, opponent, week).
type Result struct {
	ID             int64
	TeamID         string
	OpponentID     string
	Week           int
	Points         float64
	OpponentPoints float64
	TopPlayer      bool
	TopPoints      bool
	CreatedAt      time.Time
}

func (r Result) Validate() error {
	if r.TeamID == "" {
		return fmt.Errorf("result team id is required")
	}
	if r.OpponentID == "" {
		return fmt.Errorf("result opponent id is required")
	}
	if r.TeamID == r.OpponentID {
		return fmt.Errorf("a team cannot play itself")
	}
	if r.Week < 1 {
		return fmt.Errorf("result week must be positive")
	}
	if r.Points < 0 || r.OpponentPoints < 0 {
		return fmt.Errorf("result points cannot be negative")
	}

	return nil
}

// Mirror returns the opposing side's row for the same matchup.
// Top flags are not carried over; they belong to each side independently.
func (r Result) Mirror() Result {
	return Result{
		TeamID:         r.OpponentID,
		OpponentID:     r.TeamID,
		Week:           r.Week,
		Points:         r.OpponentPoints,
		OpponentPoints: r.Points,
	}
}
