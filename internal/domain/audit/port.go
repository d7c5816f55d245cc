package audit

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, r *Record) error
	Latest(ctx context.Context, limit int) ([]*Record, error)
	// Stats returns classification counts per category.
	Stats(ctx context.Context) (map[string]int, error)
}
