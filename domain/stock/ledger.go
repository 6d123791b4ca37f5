// Package stock is the inventory ledger: decrement on sale, restore on
// reopen, manual adjustments with an append-only movement audit trail.
package stock

import (
	"time"

	"comandas/domain/catalog"
	"comandas/domain/order"
	"comandas/domain/shared"
)

// Ledger is a stateless domain service; every operation returns what the
// caller must persist atomically alongside the order mutation that
// triggered it (spec §4.4, §5).
type Ledger struct{}

func NewLedger() *Ledger { return &Ledger{} }

// RecordSale decrements currentStock for every tracked product referenced
// by o's items, emitting one SALE movement per line. Products missing from
// productsByID are skipped (spec §4.4: "historical referential safety").
func (Ledger) RecordSale(o *order.Order, productsByID map[string]*catalog.Product, at time.Time) ([]*catalog.Product, []Movement) {
	return applySigned(o, productsByID, at, -1, Sale)
}

// RevertSale is the inverse of RecordSale, run on reopen.
func (Ledger) RevertSale(o *order.Order, productsByID map[string]*catalog.Product, at time.Time) ([]*catalog.Product, []Movement) {
	return applySigned(o, productsByID, at, 1, ReopenOrder)
}

func applySigned(o *order.Order, productsByID map[string]*catalog.Product, at time.Time, sign int, kind Kind) ([]*catalog.Product, []Movement) {
	var updated []*catalog.Product
	var movements []Movement
	for _, item := range o.Items() {
		p, ok := productsByID[item.ProductID()]
		if !ok || !p.StockTracked() {
			continue
		}
		signedQty := sign * item.Quantity()
		p.AdjustTrackedStock(signedQty)
		updated = append(updated, p)
		movements = append(movements, newMovement(p.ID(), p.LocalID(), signedQty, kind, at, ""))
	}
	return updated, movements
}

// ManualAdjust adds qty (may be negative) to product's currentStock,
// activating tracking if it wasn't already (spec §4.4). kind must be
// MANUAL_ADJUSTMENT or GOODS_RECEIPT.
func (Ledger) ManualAdjust(p *catalog.Product, qty int, kind Kind, reason string, at time.Time) (*catalog.Product, Movement, error) {
	if qty == 0 {
		return nil, Movement{}, shared.NewValidationError("stock_movement", "quantity", "adjustment quantity must not be zero")
	}
	if kind != ManualAdjustment && kind != GoodsReceipt {
		return nil, Movement{}, shared.NewValidationError("stock_movement", "kind", "manual adjustment must be MANUAL_ADJUSTMENT or GOODS_RECEIPT")
	}
	p.ApplyStockDelta(qty)
	return p, newMovement(p.ID(), p.LocalID(), qty, kind, at, reason), nil
}
