package order

import (
	"sort"
	"strconv"
	"time"

	"comandas/domain/shared"
)

type DiscountKind string

const (
	DiscountPercent DiscountKind = "PERCENT"
	DiscountFixed   DiscountKind = "FIXED"
)

// ManualDiscount is the shape shared by global and line manual discounts
// (spec §3): a kind, a value, and an audit trail.
type ManualDiscount struct {
	Kind   DiscountKind
	Value  shared.Money
	Reason string
	UserID string
	At     time.Time
}

// amountAgainst resolves the discount amount against a base, honoring the
// PERCENT/FIXED distinction.
func (d ManualDiscount) amountAgainst(base shared.Money) shared.Money {
	if d.Kind == DiscountPercent {
		return base.PercentOf(d.Value.Decimal())
	}
	return shared.Min(d.Value, base)
}

// ExtraLine is an immutable value object captured at add-time.
type ExtraLine struct {
	ProductID     string
	NameSnapshot  string
	PriceSnapshot shared.Money
}

func (e ExtraLine) Equals(other interface{}) bool {
	o, ok := other.(ExtraLine)
	if !ok {
		return false
	}
	return e.ProductID == o.ProductID && e.NameSnapshot == o.NameSnapshot && e.PriceSnapshot.Equals(o.PriceSnapshot)
}

var _ shared.ValueObject = ExtraLine{}

// PromotionSnapshot is written by the promotion engine at add-time or on
// full recomputation; never hand-assigned by a caller.
type PromotionSnapshot struct {
	DiscountAmount shared.Money
	PromotionName  *string
	PromotionID    *string
}

// OrderItem is an entity reachable only through Order's methods (spec §3:
// unitPrice and productName are immutable once set).
type OrderItem struct {
	id                  string
	productID           string
	productNameSnapshot string
	quantity            int
	unitPriceSnapshot   shared.Money
	observation         *string
	extras              []ExtraLine
	promo               PromotionSnapshot
	manualDiscount      *ManualDiscount
}

func (i *OrderItem) ID() string                  { return i.id }
func (i *OrderItem) ProductID() string           { return i.productID }
func (i *OrderItem) ProductNameSnapshot() string  { return i.productNameSnapshot }
func (i *OrderItem) Quantity() int                { return i.quantity }
func (i *OrderItem) UnitPriceSnapshot() shared.Money { return i.unitPriceSnapshot }
func (i *OrderItem) Observation() *string         { return i.observation }
func (i *OrderItem) Extras() []ExtraLine          { return i.extras }
func (i *OrderItem) Promotion() PromotionSnapshot { return i.promo }
func (i *OrderItem) ManualDiscount() *ManualDiscount { return i.manualDiscount }
func (i *OrderItem) HasExtras() bool              { return len(i.extras) > 0 }

// extrasPerUnitTotal sums the extras' snapshot price (extras are priced
// per unit of the line, per spec §4.1's lineSubtotal formula).
func (i *OrderItem) extrasPerUnitTotal() shared.Money {
	total := shared.Zero
	for _, e := range i.extras {
		total = total.Add(e.PriceSnapshot)
	}
	return total
}

// LineSubtotal = unitPriceSnapshot*qty + Σ extra.priceSnapshot*qty.
func (i *OrderItem) LineSubtotal() shared.Money {
	perUnit := i.unitPriceSnapshot.Add(i.extrasPerUnitTotal())
	return perUnit.Mul(int64(i.quantity))
}

// LineAfterPromo = lineSubtotal - promoDiscount.
func (i *OrderItem) LineAfterPromo() shared.Money {
	return i.LineSubtotal().Sub(i.promo.DiscountAmount)
}

// LineAfterManual = lineAfterPromo - manualLineDiscount (PERCENT computed
// against lineAfterPromo).
func (i *OrderItem) LineAfterManual() shared.Money {
	afterPromo := i.LineAfterPromo()
	if i.manualDiscount == nil {
		return afterPromo
	}
	return afterPromo.Sub(i.manualDiscount.amountAgainst(afterPromo))
}

// clearPromotion resets the promotion snapshot, step 1 of the bulk
// recomputation algorithm.
func (i *OrderItem) clearPromotion() {
	i.promo = PromotionSnapshot{}
}

func (i *OrderItem) setPromotion(snap PromotionSnapshot) {
	i.promo = snap
}

// extrasKey produces a stable signature for multiset-equality checks used
// by the add-time merge rule.
func extrasKey(extras []ExtraLine) string {
	counts := make(map[string]int, len(extras))
	for _, e := range extras {
		counts[e.ProductID]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	key := ""
	for _, k := range keys {
		key += k + ":" + strconv.Itoa(counts[k]) + ";"
	}
	return key
}
