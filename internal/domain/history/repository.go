package history

import "context"

type Repository interface {
	List(ctx context.Context) ([]Record, error)
	Upsert(ctx context.Context, r Record) error
}
