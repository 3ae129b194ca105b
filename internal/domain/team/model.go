package team

import (
	"fmt"
	"time"
)

// Team is one franchise's standings row. Wins and losses are mirrored
// from the provider (or entered by the commissioner), never computed here.
type Team struct {
	ID        string
	Name      string
	Manager   string
	Wins      int
	Losses    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Wins < 0 || t.Losses < 0 {
		return fmt.Errorf("team record cannot be negative")
	}

	return nil
}
