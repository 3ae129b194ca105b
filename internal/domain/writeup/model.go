package writeup

import (
	"fmt"
	"time"
)

// Writeup is commissioner commentary for one week.
type Writeup struct {
	ID        int64
	Week      int
	Title     string
	Content   string
	CreatedAt time.Time
}

func (w Writeup) Validate() error {
	if w.Week < 1 {
		return fmt.Errorf("writeup week must be positive")
	}
	if w.Content == "" {
		return fmt.Errorf("writeup content is required")
	}

	return nil
}
