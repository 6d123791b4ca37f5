package po

import (
	"time"

	"comandas/domain/stock"
)

// StockMovementPO is an append-only audit row; Movement has no reconstruction
// DTO of its own since it is never mutated once recorded.
type StockMovementPO struct {
	ID             string    `gorm:"primaryKey;size:64"`
	ProductID      string    `gorm:"size:64;index;not null"`
	LocalID        string    `gorm:"size:64;index;not null"`
	SignedQuantity int       `gorm:"not null"`
	Kind           string    `gorm:"size:30;not null"`
	Timestamp      time.Time `gorm:"not null;index"`
	Reason         string    `gorm:"size:500"`
}

func (StockMovementPO) TableName() string { return "stock_movements" }

func FromMovement(m stock.Movement) *StockMovementPO {
	return &StockMovementPO{
		ID: m.ID, ProductID: m.ProductID, LocalID: m.LocalID,
		SignedQuantity: m.SignedQuantity, Kind: string(m.Kind), Timestamp: m.Timestamp, Reason: m.Reason,
	}
}

func (p *StockMovementPO) ToDomain() stock.Movement {
	return stock.Movement{
		ID: p.ID, ProductID: p.ProductID, LocalID: p.LocalID,
		SignedQuantity: p.SignedQuantity, Kind: stock.Kind(p.Kind), Timestamp: p.Timestamp, Reason: p.Reason,
	}
}
