package stock

import "context"

type MovementRepository interface {
	Save(ctx context.Context, m Movement) error
	ListByProductAndLocalDesc(ctx context.Context, productID, localID string) ([]Movement, error)
}
