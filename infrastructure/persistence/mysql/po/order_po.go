package po

import (
	"encoding/json"
	"fmt"
	"time"

	"comandas/domain/order"
	"comandas/domain/shared"

	"github.com/shopspring/decimal"
)

// OrderPO stores the accounting snapshot inline (nil until Close) and owns
// its items/extras as cascade-saved child tables — mirroring Order's own
// exclusive ownership of OrderItem/ExtraLine (spec §3).
type OrderPO struct {
	ID       string    `gorm:"primaryKey;size:64"`
	LocalID  string    `gorm:"size:64;index;not null"`
	TableID  string    `gorm:"size:64;index;not null"`
	Number   int       `gorm:"not null"`
	State    string    `gorm:"size:10;not null"`
	OpenedAt time.Time `gorm:"not null"`
	ClosedAt *time.Time

	PaymentsJSON string `gorm:"type:json"`

	GlobalDiscountKind   *string          `gorm:"size:10"`
	GlobalDiscountValue  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	GlobalDiscountReason *string          `gorm:"size:500"`
	GlobalDiscountUserID *string          `gorm:"size:64"`
	GlobalDiscountAt     *time.Time

	SnapshotSubtotal      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SnapshotDiscountTotal *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SnapshotFinalTotal    *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Version int `gorm:"not null"`

	Items []OrderItemPO `gorm:"foreignKey:OrderID;references:ID"`
}

func (OrderPO) TableName() string { return "orders" }

type OrderItemPO struct {
	ID                  string          `gorm:"primaryKey;size:64"`
	OrderID             string          `gorm:"size:64;index;not null"`
	ProductID           string          `gorm:"size:64;not null"`
	ProductNameSnapshot string          `gorm:"size:200;not null"`
	Quantity            int             `gorm:"not null"`
	UnitPriceSnapshot   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Observation         *string         `gorm:"size:500"`

	PromoDiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PromoName           *string         `gorm:"size:200"`
	PromoID             *string         `gorm:"size:64"`

	ManualDiscountKind   *string          `gorm:"size:10"`
	ManualDiscountValue  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ManualDiscountReason *string          `gorm:"size:500"`
	ManualDiscountUserID *string          `gorm:"size:64"`
	ManualDiscountAt     *time.Time

	Extras []ExtraLinePO `gorm:"foreignKey:OrderItemID;references:ID"`
}

func (OrderItemPO) TableName() string { return "order_items" }

type ExtraLinePO struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	OrderItemID   string `gorm:"size:64;index;not null"`
	ProductID     string `gorm:"size:64;not null"`
	NameSnapshot  string `gorm:"size:200;not null"`
	PriceSnapshot decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (ExtraLinePO) TableName() string { return "order_item_extras" }

// paymentJSON is the wire shape persisted in Payments column, a denormalized
// JSON array rather than a child table since payments are never queried
// individually — only summed by the cash journal closer.
type paymentJSON struct {
	Medium    string    `json:"medium"`
	Amount    string    `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

func FromOrder(o *order.Order) (*OrderPO, error) {
	dto := o.ToReconstructionDTO()

	po := &OrderPO{
		ID: dto.ID, LocalID: dto.LocalID, TableID: dto.TableID, Number: dto.Number,
		State: string(dto.State), OpenedAt: dto.OpenedAt, ClosedAt: dto.ClosedAt, Version: dto.Version,
	}

	if len(dto.Payments) > 0 {
		wire := make([]paymentJSON, len(dto.Payments))
		for i, p := range dto.Payments {
			wire[i] = paymentJSON{Medium: string(p.Medium), Amount: p.Amount.String(), Timestamp: p.Timestamp}
		}
		raw, err := json.Marshal(wire)
		if err != nil {
			return nil, fmt.Errorf("encode payments: %w", err)
		}
		po.PaymentsJSON = string(raw)
	}

	if dto.Global != nil {
		kind := string(dto.Global.Kind)
		value := dto.Global.Value.Decimal()
		reason := dto.Global.Reason
		userID := dto.Global.UserID
		at := dto.Global.At
		po.GlobalDiscountKind, po.GlobalDiscountValue = &kind, &value
		po.GlobalDiscountReason, po.GlobalDiscountUserID, po.GlobalDiscountAt = &reason, &userID, &at
	}

	if dto.Snapshot != nil {
		sub, disc, final := dto.Snapshot.Subtotal.Decimal(), dto.Snapshot.DiscountTotal.Decimal(), dto.Snapshot.FinalTotal.Decimal()
		po.SnapshotSubtotal, po.SnapshotDiscountTotal, po.SnapshotFinalTotal = &sub, &disc, &final
	}

	po.Items = make([]OrderItemPO, len(o.Items()))
	for i, item := range o.Items() {
		itemDTO := item.ToDTO()
		itemPO := OrderItemPO{
			ID: itemDTO.ID, OrderID: dto.ID, ProductID: itemDTO.ProductID,
			ProductNameSnapshot: itemDTO.ProductNameSnapshot, Quantity: itemDTO.Quantity,
			UnitPriceSnapshot: itemDTO.UnitPriceSnapshot.Decimal(), Observation: itemDTO.Observation,
			PromoDiscountAmount: itemDTO.Promotion.DiscountAmount.Decimal(),
			PromoName:           itemDTO.Promotion.PromotionName, PromoID: itemDTO.Promotion.PromotionID,
		}
		if itemDTO.ManualDiscount != nil {
			kind := string(itemDTO.ManualDiscount.Kind)
			value := itemDTO.ManualDiscount.Value.Decimal()
			reason := itemDTO.ManualDiscount.Reason
			userID := itemDTO.ManualDiscount.UserID
			at := itemDTO.ManualDiscount.At
			itemPO.ManualDiscountKind, itemPO.ManualDiscountValue = &kind, &value
			itemPO.ManualDiscountReason, itemPO.ManualDiscountUserID, itemPO.ManualDiscountAt = &reason, &userID, &at
		}
		itemPO.Extras = make([]ExtraLinePO, len(itemDTO.Extras))
		for j, e := range itemDTO.Extras {
			itemPO.Extras[j] = ExtraLinePO{
				OrderItemID: itemDTO.ID, ProductID: e.ProductID,
				NameSnapshot: e.NameSnapshot, PriceSnapshot: e.PriceSnapshot.Decimal(),
			}
		}
		po.Items[i] = itemPO
	}

	return po, nil
}

func (p *OrderPO) ToDomain() (*order.Order, error) {
	dto := order.ReconstructionDTO{
		ID: p.ID, LocalID: p.LocalID, TableID: p.TableID, Number: p.Number,
		State: order.State(p.State), OpenedAt: p.OpenedAt, ClosedAt: p.ClosedAt, Version: p.Version,
	}

	if p.PaymentsJSON != "" {
		var wire []paymentJSON
		if err := json.Unmarshal([]byte(p.PaymentsJSON), &wire); err != nil {
			return nil, fmt.Errorf("decode payments: %w", err)
		}
		dto.Payments = make([]order.Payment, len(wire))
		for i, w := range wire {
			amount, err := decimal.NewFromString(w.Amount)
			if err != nil {
				return nil, fmt.Errorf("decode payment amount: %w", err)
			}
			dto.Payments[i] = order.Payment{Medium: order.PaymentMedium(w.Medium), Amount: shared.NewMoney(amount), Timestamp: w.Timestamp}
		}
	}

	if p.GlobalDiscountKind != nil {
		dto.Global = &order.ManualDiscount{
			Kind: order.DiscountKind(*p.GlobalDiscountKind), Value: shared.NewMoney(*p.GlobalDiscountValue),
			Reason: derefStr(p.GlobalDiscountReason), UserID: derefStr(p.GlobalDiscountUserID), At: derefTime(p.GlobalDiscountAt),
		}
	}

	if p.SnapshotFinalTotal != nil {
		dto.Snapshot = &order.AccountingSnapshot{
			Subtotal: shared.NewMoney(*p.SnapshotSubtotal), DiscountTotal: shared.NewMoney(*p.SnapshotDiscountTotal),
			FinalTotal: shared.NewMoney(*p.SnapshotFinalTotal),
		}
	}

	o := order.RebuildFromDTO(dto)

	items := make([]*order.OrderItem, len(p.Items))
	for i, itemPO := range p.Items {
		extras := make([]order.ExtraLine, len(itemPO.Extras))
		for j, e := range itemPO.Extras {
			extras[j] = order.ExtraLine{ProductID: e.ProductID, NameSnapshot: e.NameSnapshot, PriceSnapshot: shared.NewMoney(e.PriceSnapshot)}
		}
		itemDTO := order.ItemDTO{
			ID: itemPO.ID, ProductID: itemPO.ProductID, ProductNameSnapshot: itemPO.ProductNameSnapshot,
			Quantity: itemPO.Quantity, UnitPriceSnapshot: shared.NewMoney(itemPO.UnitPriceSnapshot),
			Observation: itemPO.Observation, Extras: extras,
			Promotion: order.PromotionSnapshot{
				DiscountAmount: shared.NewMoney(itemPO.PromoDiscountAmount), PromotionName: itemPO.PromoName, PromotionID: itemPO.PromoID,
			},
		}
		if itemPO.ManualDiscountKind != nil {
			itemDTO.ManualDiscount = &order.ManualDiscount{
				Kind: order.DiscountKind(*itemPO.ManualDiscountKind), Value: shared.NewMoney(*itemPO.ManualDiscountValue),
				Reason: derefStr(itemPO.ManualDiscountReason), UserID: derefStr(itemPO.ManualDiscountUserID), At: derefTime(itemPO.ManualDiscountAt),
			}
		}
		items[i] = order.RebuildItemFromDTO(itemDTO)
	}
	o.SetItems(items)

	return o, nil
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
