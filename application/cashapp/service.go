// Package cashapp orchestrates the cash journal: registering egresses
// during the day, closing the operative day (delegating the precondition
// check and aggregation to the stateless domain/cashjournal.Closer), and
// read-only historical/preview reporting.
package cashapp

import (
	"context"
	"fmt"
	"time"

	"comandas/domain/cashjournal"
	"comandas/domain/order"
	"comandas/domain/shared"
	"comandas/domain/table"

	"github.com/shopspring/decimal"
)

type Service struct {
	journals   cashjournal.Repository
	cashMoves  cashjournal.MovementRepository
	orders     order.Repository
	tables     table.Repository
	closer     *cashjournal.Closer
	uow        shared.UnitOfWorkFactory
	locals     shared.LocalContextProvider
	clock      shared.Clock
}

func NewService(
	journals cashjournal.Repository,
	cashMoves cashjournal.MovementRepository,
	orders order.Repository,
	tables table.Repository,
	uow shared.UnitOfWorkFactory,
	locals shared.LocalContextProvider,
	clock shared.Clock,
) *Service {
	return &Service{
		journals: journals, cashMoves: cashMoves, orders: orders, tables: tables,
		closer: cashjournal.NewCloser(), uow: uow, locals: locals, clock: clock,
	}
}

func (s *Service) RegisterEgress(ctx context.Context, in RegisterEgressInput) (*MovementView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return nil, shared.NewValidationError("cash_movement", "amount", "amount must be a decimal number")
	}

	var view *MovementView
	err = s.uow.New().Execute(ctx, func(ctx context.Context) error {
		receipt, err := s.cashMoves.NextReceiptNumber(ctx, localID)
		if err != nil {
			return fmt.Errorf("allocate receipt number: %w", err)
		}
		m, err := cashjournal.NewMovement(localID, shared.NewMoney(amount), in.Description, s.clock.Now(), receipt)
		if err != nil {
			return err
		}
		if err := s.cashMoves.Save(ctx, m); err != nil {
			return fmt.Errorf("save cash movement: %w", err)
		}
		view = toMovementView(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// CloseDay runs the operative-day close (spec §4.5): preconditions (no
// open tables, day not already closed), then aggregation over the window's
// closed orders and cash movements.
func (s *Service) CloseDay(ctx context.Context) (*JournalView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()

	var view *JournalView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		openCount, err := s.tables.CountOpenByLocal(ctx, localID)
		if err != nil {
			return fmt.Errorf("count open tables: %w", err)
		}
		operativeDate := cashjournal.OperativeDate(now)
		exists, err := s.journals.ExistsForLocalAndDate(ctx, localID, operativeDate)
		if err != nil {
			return fmt.Errorf("check existing journal: %w", err)
		}

		from, to := cashjournal.WindowFor(operativeDate)
		orders, err := s.orders.ListClosedInWindow(ctx, localID, from, to)
		if err != nil {
			return fmt.Errorf("list closed orders: %w", err)
		}
		movements, err := s.cashMoves.ListByLocalInWindow(ctx, localID, from, to)
		if err != nil {
			return fmt.Errorf("list cash movements: %w", err)
		}

		j, err := s.closer.Close(localID, now, openCount, exists, orders, movements)
		if err != nil {
			return err
		}
		uow.RegisterNew(j)
		if err := s.journals.Save(ctx, j); err != nil {
			return fmt.Errorf("save journal: %w", err)
		}
		view = toJournalView(j)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) ListHistoricalJournals(ctx context.Context, from, to time.Time) ([]*JournalView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}
	journals, err := s.journals.ListByLocalInDateRange(ctx, localID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}
	views := make([]*JournalView, len(journals))
	for i, j := range journals {
		views[i] = toJournalView(j)
	}
	return views, nil
}

// DailyCashReport is a read-only preview of what CloseDay would produce for
// the operative date containing `at`, without persisting a journal or
// enforcing the "tables still open" precondition (spec §4.5/§6).
func (s *Service) DailyCashReport(ctx context.Context, at time.Time) (*ReportView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}
	operativeDate := cashjournal.OperativeDate(at)
	from, to := cashjournal.WindowFor(operativeDate)

	orders, err := s.orders.ListClosedInWindow(ctx, localID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list closed orders: %w", err)
	}
	movements, err := s.cashMoves.ListByLocalInWindow(ctx, localID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list cash movements: %w", err)
	}
	return toReportView(cashjournal.Aggregate(orders, movements)), nil
}
