package history

import (
	"fmt"
	"time"
)

// Record is one season's champion entry. Re-entering a year replaces it.
type Record struct {
	Year      int
	Champion  string
	Manager   string
	Note      string
	CreatedAt time.Time
}

func (r Record) Validate() error {
	if r.Year < 1900 || r.Year > 2200 {
		return fmt.Errorf("history year out of range")
	}
	if r.Champion == "" {
		return fmt.Errorf("history champion is required")
	}

	return nil
}
