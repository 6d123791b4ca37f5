// Package tableapp orchestrates the table aggregate: opening (at first
// order) and freeing (at close) are driven by orderapp, so this service
// only covers the thin administrative surface — listing and registering
// the local's tables.
package tableapp

import (
	"context"
	"fmt"

	"comandas/domain/shared"
	"comandas/domain/table"
)

type Service struct {
	tables table.Repository
	uow    shared.UnitOfWorkFactory
	locals shared.LocalContextProvider
}

func NewService(tables table.Repository, uow shared.UnitOfWorkFactory, locals shared.LocalContextProvider) *Service {
	return &Service{tables: tables, uow: uow, locals: locals}
}

type RegisterTableInput struct {
	Number int
}

func (s *Service) RegisterTable(ctx context.Context, in RegisterTableInput) (*TableView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}

	var view *TableView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		exists, err := s.tables.ExistsByNumberAndLocal(ctx, in.Number, localID)
		if err != nil {
			return fmt.Errorf("check table number: %w", err)
		}
		if exists {
			return shared.NewConflictingNameError("table", fmt.Sprintf("#%d", in.Number))
		}
		t, err := table.NewTable(localID, in.Number)
		if err != nil {
			return err
		}
		uow.RegisterNew(t)
		if err := s.tables.Save(ctx, t); err != nil {
			return fmt.Errorf("save table: %w", err)
		}
		view = toTableView(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) ListTables(ctx context.Context) ([]*TableView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}
	tables, err := s.tables.ListByLocal(ctx, localID)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	views := make([]*TableView, len(tables))
	for i, t := range tables {
		views[i] = toTableView(t)
	}
	return views, nil
}
