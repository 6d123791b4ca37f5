package shared

import "context"

// UnitOfWork wraps one business operation in one transaction: begins it,
// injects it into ctx, runs fn, pulls events off every registered aggregate,
// writes them to the outbox, then commits or rolls back.
//
//	err := uow.Execute(ctx, func(ctx context.Context) error {
//	    order, err := orders.FindByID(ctx, id, localID)
//	    if err != nil {
//	        return err
//	    }
//	    if err := order.Close(payments, clock.Now()); err != nil {
//	        return err
//	    }
//	    uow.RegisterDirty(order)
//	    return orders.Save(ctx, order)
//	})
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error

	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
	RegisterRemoved(aggregate AggregateRoot)
}

// UnitOfWorkFactory hands out a fresh UnitOfWork per request; the Gin
// middleware or application service calls it once per incoming command.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// OutboxRepository persists a domain event to the outbox table within the
// caller's transaction, for a background worker to publish later.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
