package catalog

import "context"

type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*Product, error)
	FindByIDAndLocal(ctx context.Context, id, localID string) (*Product, error)
	ExistsByNameAndLocal(ctx context.Context, name, localID string) (bool, error)
	ListByLocal(ctx context.Context, localID string) ([]*Product, error)
	ListByGroup(ctx context.Context, variantGroupID, localID string) ([]*Product, error)
	ListStructuralModifierIDs(ctx context.Context, localID string) (map[string]struct{}, error)
	Save(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id, localID string) error
}

type CategoryRepository interface {
	FindByIDAndLocal(ctx context.Context, id, localID string) (*Category, error)
	ExistsByNameAndLocal(ctx context.Context, name, localID string) (bool, error)
	ListByLocal(ctx context.Context, localID string) ([]*Category, error)
	Save(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id, localID string) error
}
