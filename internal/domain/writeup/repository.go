package writeup

import "context"

// Repository describes writeup persistence needs from use cases.
// Latest returns the newest entry by week, then creation time.
type Repository interface {
	List(ctx context.Context) ([]Writeup, error)
	Latest(ctx context.Context) (Writeup, bool, error)
	Create(ctx context.Context, w Writeup) (Writeup, error)
}
