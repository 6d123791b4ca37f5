package order

import (
	"context"
	"time"
)

type Repository interface {
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id, localID string) (*Order, error)
	FindOpenByTable(ctx context.Context, tableID, localID string) (*Order, error)
	FindByTableAndState(ctx context.Context, tableID, localID string, state State) ([]*Order, error)
	// NextOrderNumber allocates the next per-local sequential number
	// atomically within the caller's transaction (spec §5).
	NextOrderNumber(ctx context.Context, localID string) (int, error)
	// ListClosedInWindow returns orders closed in [from, to) for the local,
	// feeding the cash journal closer's aggregation (spec §4.5).
	ListClosedInWindow(ctx context.Context, localID string, from, to time.Time) ([]*Order, error)
}
