package table

import "context"

type Repository interface {
	ListByLocal(ctx context.Context, localID string) ([]*Table, error)
	FindByID(ctx context.Context, id, localID string) (*Table, error)
	Save(ctx context.Context, t *Table) error
	ExistsByNumberAndLocal(ctx context.Context, number int, localID string) (bool, error)
	// CountOpenByLocal supports the cash journal closer's precondition
	// without loading every table row.
	CountOpenByLocal(ctx context.Context, localID string) (int, error)
}
