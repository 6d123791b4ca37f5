package promotion

import "context"

type Repository interface {
	FindByIDAndLocal(ctx context.Context, id, localID string) (*Promotion, error)
	ListActiveByLocal(ctx context.Context, localID string) ([]*Promotion, error)
	ExistsByNameAndLocal(ctx context.Context, name, localID string) (bool, error)
	Save(ctx context.Context, p *Promotion) error
}
