package stock

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	Sale              Kind = "SALE"
	ReopenOrder       Kind = "REOPEN_ORDER"
	ManualAdjustment  Kind = "MANUAL_ADJUSTMENT"
	GoodsReceipt      Kind = "GOODS_RECEIPT"
)

// Movement is an immutable audit-trail entry; SignedQuantity is never zero,
// negative meaning outflow (spec §3).
type Movement struct {
	ID             string
	ProductID      string
	LocalID        string
	SignedQuantity int
	Kind           Kind
	Timestamp      time.Time
	Reason         string
}

func newMovement(productID, localID string, signedQty int, kind Kind, at time.Time, reason string) Movement {
	return Movement{
		ID:             uuid.NewString(),
		ProductID:      productID,
		LocalID:        localID,
		SignedQuantity: signedQty,
		Kind:           kind,
		Timestamp:      at,
		Reason:         reason,
	}
}
