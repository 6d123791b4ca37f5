package cashjournal

import (
	"context"
	"time"
)

type MovementRepository interface {
	Save(ctx context.Context, m *Movement) error
	ListByLocalInWindow(ctx context.Context, localID string, from, to time.Time) ([]Movement, error)
	// NextReceiptNumber allocates the next sequential, prefixed receipt
	// number for the local, atomically within the caller's transaction.
	NextReceiptNumber(ctx context.Context, localID string) (string, error)
}

type Repository interface {
	Save(ctx context.Context, j *CashJournal) error
	ExistsForLocalAndDate(ctx context.Context, localID string, date time.Time) (bool, error)
	ListByLocalInDateRange(ctx context.Context, localID string, from, to time.Time) ([]*CashJournal, error)
}
