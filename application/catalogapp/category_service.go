package catalogapp

import (
	"context"
	"fmt"

	"comandas/domain/catalog"
	"comandas/domain/shared"
)

type CategoryService struct {
	categories catalog.CategoryRepository
	uow        shared.UnitOfWorkFactory
	locals     shared.LocalContextProvider
}

func NewCategoryService(categories catalog.CategoryRepository, uow shared.UnitOfWorkFactory, locals shared.LocalContextProvider) *CategoryService {
	return &CategoryService{categories: categories, uow: uow, locals: locals}
}

type CreateCategoryInput struct {
	Name               string
	Color              string
	AdmitsVariants     bool
	IsExtraCategory    bool
	Ordering           int
	ModifierCategoryID *string
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*CategoryView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}

	var view *CategoryView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		exists, err := s.categories.ExistsByNameAndLocal(ctx, in.Name, localID)
		if err != nil {
			return fmt.Errorf("check category name: %w", err)
		}
		if exists {
			return shared.NewConflictingNameError("category", in.Name)
		}
		c, err := catalog.NewCategory(catalog.NewCategoryInput{
			LocalID:            localID,
			Name:               in.Name,
			Color:              in.Color,
			AdmitsVariants:     in.AdmitsVariants,
			IsExtraCategory:    in.IsExtraCategory,
			Ordering:           in.Ordering,
			ModifierCategoryID: in.ModifierCategoryID,
		})
		if err != nil {
			return err
		}
		uow.RegisterNew(c)
		if err := s.categories.Save(ctx, c); err != nil {
			return fmt.Errorf("save category: %w", err)
		}
		view = toCategoryView(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*CategoryView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListByLocal(ctx, localID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	views := make([]*CategoryView, len(categories))
	for i, c := range categories {
		views[i] = toCategoryView(c)
	}
	return views, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return err
	}
	return s.uow.New().Execute(ctx, func(ctx context.Context) error {
		return s.categories.Delete(ctx, id, localID)
	})
}
