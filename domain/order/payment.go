package order

import (
	"time"

	"comandas/domain/shared"
)

type PaymentMedium string

const (
	PaymentCash      PaymentMedium = "CASH"
	PaymentCard      PaymentMedium = "CARD"
	PaymentTransfer  PaymentMedium = "TRANSFER"
	PaymentQR        PaymentMedium = "QR"
	PaymentOnAccount PaymentMedium = "ON_ACCOUNT"
)

// Payment is recorded at close time. ON_ACCOUNT denotes internal
// consumption and is excluded from "real sales" by the cash journal closer.
type Payment struct {
	Medium    PaymentMedium
	Amount    shared.Money
	Timestamp time.Time
}
