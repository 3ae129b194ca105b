package token

import "context"

// Repository stores the singleton provider credential.
type Repository interface {
	Get(ctx context.Context) (Pair, bool, error)
	Save(ctx context.Context, p Pair) error
}
