// Package promotionapp orchestrates promotion creation and editing:
// category-scope expansion, name uniqueness, then delegation to the
// aggregate's own invariant checks.
package promotionapp

import (
	"context"
	"fmt"

	"comandas/domain/catalog"
	"comandas/domain/promotion"
	"comandas/domain/shared"
)

type Service struct {
	promotions promotion.Repository
	products   catalog.ProductRepository
	uow        shared.UnitOfWorkFactory
	locals     shared.LocalContextProvider
	clock      shared.Clock
}

func NewService(promotions promotion.Repository, products catalog.ProductRepository, uow shared.UnitOfWorkFactory, locals shared.LocalContextProvider, clock shared.Clock) *Service {
	return &Service{promotions: promotions, products: products, uow: uow, locals: locals, clock: clock}
}

// expandScope replaces each CATEGORY reference with one PRODUCT entry per
// member product of that category, for the given local.
func (s *Service) expandScope(ctx context.Context, localID string, in []ScopeItemInput) (promotion.Scope, error) {
	products, err := s.products.ListByLocal(ctx, localID)
	if err != nil {
		return nil, fmt.Errorf("list products for scope expansion: %w", err)
	}

	scope := make(promotion.Scope, 0, len(in))
	for _, item := range in {
		if item.ReferenceKind == promotion.ReferenceProduct {
			scope = append(scope, promotion.ScopeItem{
				ReferenceID: item.ReferenceID, ReferenceKind: promotion.ReferenceProduct, Role: item.Role,
			})
			continue
		}
		for _, p := range products {
			if p.CategoryID() != nil && *p.CategoryID() == item.ReferenceID {
				scope = append(scope, promotion.ScopeItem{
					ReferenceID: p.ID(), ReferenceKind: promotion.ReferenceProduct, Role: item.Role,
				})
			}
		}
	}
	return scope, nil
}

type CreatePromotionInput struct {
	Name        string
	Description string
	Priority    int
	Strategy    promotion.Strategy
	Criteria    []promotion.ActivationCriterion
	Scope       []ScopeItemInput
}

func (s *Service) CreatePromotion(ctx context.Context, in CreatePromotionInput) (*PromotionView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}

	var view *PromotionView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		exists, err := s.promotions.ExistsByNameAndLocal(ctx, in.Name, localID)
		if err != nil {
			return fmt.Errorf("check promotion name: %w", err)
		}
		if exists {
			return shared.NewConflictingNameError("promotion", in.Name)
		}
		scope, err := s.expandScope(ctx, localID, in.Scope)
		if err != nil {
			return err
		}
		p, err := promotion.NewPromotion(promotion.NewPromotionInput{
			LocalID:     localID,
			Name:        in.Name,
			Description: in.Description,
			Priority:    in.Priority,
			Strategy:    in.Strategy,
			Criteria:    in.Criteria,
			Scope:       scope,
		}, s.clock.Now())
		if err != nil {
			return err
		}
		uow.RegisterNew(p)
		if err := s.promotions.Save(ctx, p); err != nil {
			return fmt.Errorf("save promotion: %w", err)
		}
		view = toPromotionView(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) ListActivePromotions(ctx context.Context) ([]*PromotionView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}
	promotions, err := s.promotions.ListActiveByLocal(ctx, localID)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	views := make([]*PromotionView, len(promotions))
	for i, p := range promotions {
		views[i] = toPromotionView(p)
	}
	return views, nil
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) (*PromotionView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}

	var view *PromotionView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		p, err := s.promotions.FindByIDAndLocal(ctx, id, localID)
		if err != nil {
			return err
		}
		if active {
			p.Activate()
		} else {
			p.Deactivate()
		}
		uow.RegisterDirty(p)
		if err := s.promotions.Save(ctx, p); err != nil {
			return fmt.Errorf("save promotion: %w", err)
		}
		view = toPromotionView(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

type EditPromotionInput struct {
	Name        string
	Description string
	Priority    int
	Strategy    promotion.Strategy
	Criteria    []promotion.ActivationCriterion
}

func (s *Service) EditPromotion(ctx context.Context, id string, in EditPromotionInput) (*PromotionView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}

	var view *PromotionView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		p, err := s.promotions.FindByIDAndLocal(ctx, id, localID)
		if err != nil {
			return err
		}
		if err := p.Edit(promotion.EditPromotionInput{
			Name: in.Name, Description: in.Description, Priority: in.Priority,
			Strategy: in.Strategy, Criteria: in.Criteria,
		}); err != nil {
			return err
		}
		uow.RegisterDirty(p)
		if err := s.promotions.Save(ctx, p); err != nil {
			return fmt.Errorf("save promotion: %w", err)
		}
		view = toPromotionView(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
