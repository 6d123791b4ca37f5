package orderapp

import (
	"time"

	"comandas/domain/order"
)

type ExtraRequestInput struct {
	ProductID string
}

type AddItemInput struct {
	ProductID       string
	Quantity        int
	Observation     *string
	RequestedExtras []ExtraRequestInput
}

type PaymentInput struct {
	Medium order.PaymentMedium
	Amount string
}

type ManualDiscountInput struct {
	Kind   order.DiscountKind
	Value  string
	Reason string
	UserID string
}

type ExtraLineView struct {
	ProductID     string `json:"productId"`
	NameSnapshot  string `json:"name"`
	PriceSnapshot string `json:"price"`
}

type PromotionSnapshotView struct {
	DiscountAmount string  `json:"discountAmount"`
	PromotionName  *string `json:"promotionName,omitempty"`
	PromotionID    *string `json:"promotionId,omitempty"`
}

type ManualDiscountView struct {
	Kind   order.DiscountKind `json:"kind"`
	Value  string             `json:"value"`
	Reason string             `json:"reason"`
	UserID string             `json:"userId"`
}

type OrderItemView struct {
	ID            string                `json:"id"`
	ProductID     string                `json:"productId"`
	ProductName   string                `json:"productName"`
	Quantity      int                   `json:"quantity"`
	UnitPrice     string                `json:"unitPrice"`
	Observation   *string               `json:"observation,omitempty"`
	Extras        []ExtraLineView       `json:"extras"`
	Promotion     PromotionSnapshotView `json:"promotion"`
	ManualDiscount *ManualDiscountView  `json:"manualDiscount,omitempty"`
	LineSubtotal  string                `json:"lineSubtotal"`
	LineTotal     string                `json:"lineTotal"`
}

type PaymentView struct {
	Medium    order.PaymentMedium `json:"medium"`
	Amount    string              `json:"amount"`
	Timestamp time.Time           `json:"timestamp"`
}

type OrderView struct {
	ID            string          `json:"id"`
	TableID       string          `json:"tableId"`
	Number        int             `json:"number"`
	State         string          `json:"state"`
	OpenedAt      time.Time       `json:"openedAt"`
	ClosedAt      *time.Time      `json:"closedAt,omitempty"`
	Items         []OrderItemView `json:"items"`
	Payments      []PaymentView   `json:"payments,omitempty"`
	GlobalDiscount *ManualDiscountView `json:"globalDiscount,omitempty"`
	Subtotal      string          `json:"subtotal"`
	DiscountTotal string          `json:"discountTotal"`
	FinalTotal    string          `json:"finalTotal"`
}

func toOrderView(o *order.Order) *OrderView {
	items := make([]OrderItemView, len(o.Items()))
	for i, it := range o.Items() {
		items[i] = toItemView(it)
	}
	payments := make([]PaymentView, len(o.Payments()))
	for i, p := range o.Payments() {
		payments[i] = PaymentView{Medium: p.Medium, Amount: p.Amount.String(), Timestamp: p.Timestamp}
	}
	return &OrderView{
		ID:             o.ID(),
		TableID:        o.TableID(),
		Number:         o.Number(),
		State:          string(o.State()),
		OpenedAt:       o.OpenedAt(),
		ClosedAt:       o.ClosedAt(),
		Items:          items,
		Payments:       payments,
		GlobalDiscount: toManualDiscountView(o.GlobalDiscount()),
		Subtotal:       o.Subtotal().String(),
		DiscountTotal:  o.DiscountTotal().String(),
		FinalTotal:     o.FinalTotal().String(),
	}
}

func toItemView(it *order.OrderItem) OrderItemView {
	extras := make([]ExtraLineView, len(it.Extras()))
	for i, e := range it.Extras() {
		extras[i] = ExtraLineView{ProductID: e.ProductID, NameSnapshot: e.NameSnapshot, PriceSnapshot: e.PriceSnapshot.String()}
	}
	promo := it.Promotion()
	return OrderItemView{
		ID:          it.ID(),
		ProductID:   it.ProductID(),
		ProductName: it.ProductNameSnapshot(),
		Quantity:    it.Quantity(),
		UnitPrice:   it.UnitPriceSnapshot().String(),
		Observation: it.Observation(),
		Extras:      extras,
		Promotion: PromotionSnapshotView{
			DiscountAmount: promo.DiscountAmount.String(),
			PromotionName:  promo.PromotionName,
			PromotionID:    promo.PromotionID,
		},
		ManualDiscount: toManualDiscountView(it.ManualDiscount()),
		LineSubtotal:   it.LineSubtotal().String(),
		LineTotal:      it.LineAfterManual().String(),
	}
}

func toManualDiscountView(d *order.ManualDiscount) *ManualDiscountView {
	if d == nil {
		return nil
	}
	return &ManualDiscountView{Kind: d.Kind, Value: d.Value.String(), Reason: d.Reason, UserID: d.UserID}
}

// KitchenSlipItemView tells the kitchen what to prepare — no prices, since
// that is never the kitchen's concern.
type KitchenSlipItemView struct {
	ProductName string   `json:"productName"`
	Quantity    int      `json:"quantity"`
	Observation *string  `json:"observation,omitempty"`
	Extras      []string `json:"extras,omitempty"`
}

// KitchenSlipView is the print-ready kitchen projection of an order (spec
// §6, "fetch kitchen slip").
type KitchenSlipView struct {
	OrderID  string                `json:"orderId"`
	TableID  string                `json:"tableId"`
	Number   int                   `json:"number"`
	OpenedAt time.Time             `json:"openedAt"`
	Items    []KitchenSlipItemView `json:"items"`
}

func toKitchenSlipView(o *order.Order) *KitchenSlipView {
	items := make([]KitchenSlipItemView, len(o.Items()))
	for i, it := range o.Items() {
		extras := make([]string, len(it.Extras()))
		for j, e := range it.Extras() {
			extras[j] = e.NameSnapshot
		}
		items[i] = KitchenSlipItemView{
			ProductName: it.ProductNameSnapshot(),
			Quantity:    it.Quantity(),
			Observation: it.Observation(),
			Extras:      extras,
		}
	}
	return &KitchenSlipView{
		OrderID: o.ID(), TableID: o.TableID(), Number: o.Number(), OpenedAt: o.OpenedAt(), Items: items,
	}
}

// CustomerReceiptView is the customer-facing, priced projection of an
// order (spec §6, "fetch customer receipt") — usable both while the order
// is still open (a pre-bill) and once it is closed (the final receipt).
type CustomerReceiptView struct {
	OrderID       string          `json:"orderId"`
	TableID       string          `json:"tableId"`
	Number        int             `json:"number"`
	ClosedAt      *time.Time      `json:"closedAt,omitempty"`
	Items         []OrderItemView `json:"items"`
	Payments      []PaymentView   `json:"payments,omitempty"`
	Subtotal      string          `json:"subtotal"`
	DiscountTotal string          `json:"discountTotal"`
	FinalTotal    string          `json:"finalTotal"`
}

func toCustomerReceiptView(o *order.Order) *CustomerReceiptView {
	items := make([]OrderItemView, len(o.Items()))
	for i, it := range o.Items() {
		items[i] = toItemView(it)
	}
	payments := make([]PaymentView, len(o.Payments()))
	for i, p := range o.Payments() {
		payments[i] = PaymentView{Medium: p.Medium, Amount: p.Amount.String(), Timestamp: p.Timestamp}
	}
	return &CustomerReceiptView{
		OrderID: o.ID(), TableID: o.TableID(), Number: o.Number(), ClosedAt: o.ClosedAt(),
		Items: items, Payments: payments,
		Subtotal: o.Subtotal().String(), DiscountTotal: o.DiscountTotal().String(), FinalTotal: o.FinalTotal().String(),
	}
}
