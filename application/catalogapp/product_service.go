// Package catalogapp orchestrates the product and category aggregates:
// uniqueness checks that span the repository, then delegation to the
// aggregate's own validation.
package catalogapp

import (
	"context"
	"fmt"

	"comandas/domain/catalog"
	"comandas/domain/shared"

	"github.com/shopspring/decimal"
)

type ProductService struct {
	products catalog.ProductRepository
	uow      shared.UnitOfWorkFactory
	locals   shared.LocalContextProvider
}

func NewProductService(products catalog.ProductRepository, uow shared.UnitOfWorkFactory, locals shared.LocalContextProvider) *ProductService {
	return &ProductService{products: products, uow: uow, locals: locals}
}

type CreateProductInput struct {
	Name                    string
	Price                   decimal.Decimal
	Color                   string
	CategoryID              *string
	VariantGroupID          *string
	StructuralModifierCount *int
	IsExtra                 bool
	IsStructuralModifier    bool
	AdmitsExtras            bool
	RequiresConfiguration   bool
	StockTracked            bool
}

func (s *ProductService) CreateProduct(ctx context.Context, in CreateProductInput) (*ProductView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}

	var view *ProductView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		exists, err := s.products.ExistsByNameAndLocal(ctx, in.Name, localID)
		if err != nil {
			return fmt.Errorf("check product name: %w", err)
		}
		if exists {
			return shared.NewConflictingNameError("product", in.Name)
		}
		p, err := catalog.NewProduct(catalog.NewProductInput{
			LocalID:                 localID,
			Name:                    in.Name,
			Price:                   shared.NewMoney(in.Price),
			Color:                   in.Color,
			CategoryID:              in.CategoryID,
			VariantGroupID:          in.VariantGroupID,
			StructuralModifierCount: in.StructuralModifierCount,
			IsExtra:                 in.IsExtra,
			IsStructuralModifier:    in.IsStructuralModifier,
			AdmitsExtras:            in.AdmitsExtras,
			RequiresConfiguration:   in.RequiresConfiguration,
			StockTracked:            in.StockTracked,
		})
		if err != nil {
			return err
		}
		uow.RegisterNew(p)
		if err := s.products.Save(ctx, p); err != nil {
			return fmt.Errorf("save product: %w", err)
		}
		view = toProductView(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*ProductView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.products.FindByIDAndLocal(ctx, id, localID)
	if err != nil {
		return nil, err
	}
	return toProductView(p), nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]*ProductView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.ListByLocal(ctx, localID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	views := make([]*ProductView, len(products))
	for i, p := range products {
		views[i] = toProductView(p)
	}
	return views, nil
}

type UpdateProductInput struct {
	Name  *string
	Price *decimal.Decimal
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*ProductView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}

	var view *ProductView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		p, err := s.products.FindByIDAndLocal(ctx, id, localID)
		if err != nil {
			return err
		}
		if in.Name != nil {
			if err := p.Rename(*in.Name); err != nil {
				return err
			}
		}
		if in.Price != nil {
			if err := p.Reprice(shared.NewMoney(*in.Price)); err != nil {
				return err
			}
		}
		uow.RegisterDirty(p)
		if err := s.products.Save(ctx, p); err != nil {
			return fmt.Errorf("save product: %w", err)
		}
		view = toProductView(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *ProductService) SetActive(ctx context.Context, id string, active bool) (*ProductView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}

	var view *ProductView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		p, err := s.products.FindByIDAndLocal(ctx, id, localID)
		if err != nil {
			return err
		}
		if active {
			p.Activate()
		} else {
			p.Deactivate()
		}
		uow.RegisterDirty(p)
		if err := s.products.Save(ctx, p); err != nil {
			return fmt.Errorf("save product: %w", err)
		}
		view = toProductView(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return err
	}
	return s.uow.New().Execute(ctx, func(ctx context.Context) error {
		return s.products.Delete(ctx, id, localID)
	})
}
