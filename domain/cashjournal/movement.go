package cashjournal

import (
	"time"

	"comandas/domain/shared"

	"github.com/google/uuid"
)

type MovementKind string

// EGRESS is the only kind today; the type exists for extension (spec §3).
const Egress MovementKind = "EGRESS"

// Movement is a recorded cash outflow with a sequential, locally-prefixed
// receipt number.
type Movement struct {
	ID            string
	LocalID       string
	Amount        shared.Money
	Description   string
	Timestamp     time.Time
	Kind          MovementKind
	ReceiptNumber string
}

func NewMovement(localID string, amount shared.Money, description string, at time.Time, receiptNumber string) (*Movement, error) {
	if localID == "" {
		return nil, shared.NewValidationError("cash_movement", "localId", "localId is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("cash_movement", "amount", "amount must be positive")
	}
	if receiptNumber == "" {
		return nil, shared.NewValidationError("cash_movement", "receiptNumber", "receiptNumber is required")
	}
	return &Movement{
		ID:            uuid.NewString(),
		LocalID:       localID,
		Amount:        amount,
		Description:   description,
		Timestamp:     at,
		Kind:          Egress,
		ReceiptNumber: receiptNumber,
	}, nil
}
