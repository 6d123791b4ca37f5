package po

import (
	"time"

	"comandas/domain/cashjournal"
	"comandas/domain/shared"

	"github.com/shopspring/decimal"
)

type CashMovementPO struct {
	ID            string          `gorm:"primaryKey;size:64"`
	LocalID       string          `gorm:"size:64;index;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description   string          `gorm:"size:500"`
	Timestamp     time.Time       `gorm:"not null;index"`
	Kind          string          `gorm:"size:10;not null"`
	ReceiptNumber string          `gorm:"size:40;not null;uniqueIndex:idx_cash_movement_receipt"`
}

func (CashMovementPO) TableName() string { return "cash_movements" }

func FromCashMovement(m *cashjournal.Movement) *CashMovementPO {
	return &CashMovementPO{
		ID: m.ID, LocalID: m.LocalID, Amount: m.Amount.Decimal(), Description: m.Description,
		Timestamp: m.Timestamp, Kind: string(m.Kind), ReceiptNumber: m.ReceiptNumber,
	}
}

func (p *CashMovementPO) ToDomain() *cashjournal.Movement {
	return &cashjournal.Movement{
		ID: p.ID, LocalID: p.LocalID, Amount: shared.NewMoney(p.Amount), Description: p.Description,
		Timestamp: p.Timestamp, Kind: cashjournal.MovementKind(p.Kind), ReceiptNumber: p.ReceiptNumber,
	}
}
