package order

import (
	"sort"
	"time"

	"comandas/domain/catalog"
	"comandas/domain/promotion"
	"comandas/domain/shared"
	"comandas/domain/variant"

	"github.com/google/uuid"
)

type State string

const (
	Open   State = "OPEN"
	Closed State = "CLOSED"
)

// AccountingSnapshot is frozen at close and cleared on reopen (spec §3/§4.1).
type AccountingSnapshot struct {
	Subtotal      shared.Money
	DiscountTotal shared.Money
	FinalTotal    shared.Money
}

// Order is the aggregate root of the order-and-pricing engine. It
// exclusively owns its OrderItems and their ExtraLines (spec §3).
type Order struct {
	id        string
	localID   string
	tableID   string
	number    int
	state     State
	openedAt  time.Time
	closedAt  *time.Time
	payments  []Payment
	global    *ManualDiscount
	snapshot  *AccountingSnapshot
	items     []*OrderItem
	version   int

	events []shared.DomainEvent
}

func NewOrder(localID, tableID string, number int, openedAt time.Time) (*Order, error) {
	if localID == "" {
		return nil, shared.NewValidationError("order", "localId", "localId is required")
	}
	if tableID == "" {
		return nil, shared.NewValidationError("order", "tableId", "tableId is required")
	}
	if number <= 0 {
		return nil, shared.NewValidationError("order", "number", "order number must be positive")
	}
	return &Order{
		id:       uuid.NewString(),
		localID:  localID,
		tableID:  tableID,
		number:   number,
		state:    Open,
		openedAt: openedAt,
		items:    nil,
		version:  0,
	}, nil
}

func (o *Order) ID() string        { return o.id }
func (o *Order) Version() int      { return o.version }
func (o *Order) LocalID() string   { return o.localID }
func (o *Order) TableID() string   { return o.tableID }
func (o *Order) Number() int       { return o.number }
func (o *Order) State() State      { return o.state }
func (o *Order) OpenedAt() time.Time { return o.openedAt }
func (o *Order) ClosedAt() *time.Time { return o.closedAt }
func (o *Order) Payments() []Payment  { return o.payments }
func (o *Order) GlobalDiscount() *ManualDiscount { return o.global }
func (o *Order) Snapshot() *AccountingSnapshot   { return o.snapshot }
func (o *Order) Items() []*OrderItem             { return o.items }
func (o *Order) IsOpen() bool                    { return o.state == Open }

func (o *Order) ItemByID(itemID string) *OrderItem {
	for _, it := range o.items {
		if it.id == itemID {
			return it
		}
	}
	return nil
}

// ---- totals, computed from items, never assigned top-down (spec §4.1) ----

func (o *Order) Subtotal() shared.Money {
	total := shared.Zero
	for _, it := range o.items {
		total = total.Add(it.LineSubtotal())
	}
	return total
}

func (o *Order) sumLineAfterManual() shared.Money {
	total := shared.Zero
	for _, it := range o.items {
		total = total.Add(it.LineAfterManual())
	}
	return total
}

func (o *Order) globalDiscountAmount() shared.Money {
	if o.global == nil {
		return shared.Zero
	}
	return o.global.amountAgainst(o.sumLineAfterManual())
}

func (o *Order) DiscountTotal() shared.Money {
	total := shared.Zero
	for _, it := range o.items {
		total = total.Add(it.LineSubtotal().Sub(it.LineAfterManual()))
	}
	return total.Add(o.globalDiscountAmount())
}

func (o *Order) FinalTotal() shared.Money {
	return o.Subtotal().Sub(o.DiscountTotal())
}

// ---- context for the promotion engine ----

func (o *Order) productQtyMap() map[string]int {
	m := make(map[string]int, len(o.items))
	for _, it := range o.items {
		m[it.productID] += it.quantity
	}
	return m
}

func (o *Order) productIDSet() map[string]struct{} {
	m := make(map[string]struct{}, len(o.items))
	for _, it := range o.items {
		m[it.productID] = struct{}{}
	}
	return m
}

func (o *Order) evaluationContext(at time.Time) promotion.EvaluationContext {
	return promotion.NewEvaluationContext(at, o.productIDSet(), o.Subtotal())
}

// ---- addItem ----

// AddItemInput bundles everything AddItem needs to run the variant
// normalizer and the promotion engine without reaching into a repository
// itself (spec §9: lookup is done by the use case, never by navigational
// traversal).
type AddItemInput struct {
	Product               *catalog.Product
	Quantity              int
	Observation           *string
	RequestedExtras       []variant.ExtraRequest
	ExtraProducts         map[string]*catalog.Product
	SiblingVariants       []*catalog.Product
	StructuralModifierIDs map[string]struct{}
	ActivePromotions      []*promotion.Promotion
	At                    time.Time
}

func (o *Order) AddItem(in AddItemInput) (*OrderItem, error) {
	if !o.IsOpen() {
		return nil, ErrImmutable(o.id)
	}
	if !in.Product.Active() {
		return nil, shared.NewValidationError("order_item", "productId", "product is not active")
	}
	if in.Quantity < 1 {
		return nil, shared.NewValidationError("order_item", "quantity", "quantity must be at least 1")
	}

	result, err := variant.Normalize(in.Product, in.RequestedExtras, in.SiblingVariants, in.StructuralModifierIDs)
	if err != nil {
		return nil, err
	}

	extraLines := make([]ExtraLine, 0, len(result.FilteredExtras))
	for _, req := range result.FilteredExtras {
		p, ok := in.ExtraProducts[req.ProductID]
		if !ok {
			return nil, shared.NewNotFoundError("product", req.ProductID)
		}
		extraLines = append(extraLines, ExtraLine{
			ProductID:     p.ID(),
			NameSnapshot:  p.Name(),
			PriceSnapshot: p.Price(),
		})
	}

	item := &OrderItem{
		id:                  uuid.NewString(),
		productID:           result.Product.ID(),
		productNameSnapshot: result.Product.Name(),
		quantity:            in.Quantity,
		unitPriceSnapshot:   result.Product.Price(),
		observation:         in.Observation,
		extras:              extraLines,
	}

	if len(extraLines) == 0 {
		ctx := o.evaluationContext(in.At)
		best, discount := promotion.NewEngine().Best(in.ActivePromotions, item.productID, item.unitPriceSnapshot, item.quantity, ctx, o.productQtyMap())
		item.promo = snapshotFrom(best, discount)
	}

	if merge := o.findMergeCandidate(item); merge != nil {
		merge.quantity += item.quantity
		if err := o.RecomputeAll(in.ActivePromotions, in.At); err != nil {
			return nil, err
		}
		return merge, nil
	}

	o.items = append(o.items, item)
	return item, nil
}

func snapshotFrom(p *promotion.Promotion, discount shared.Money) PromotionSnapshot {
	if p == nil {
		return PromotionSnapshot{DiscountAmount: shared.Zero}
	}
	name := p.Name()
	id := p.ID()
	return PromotionSnapshot{DiscountAmount: discount, PromotionName: &name, PromotionID: &id}
}

// findMergeCandidate implements spec §4.1's add-time merge rule: same
// productId, same extras multiset, same observation, no manual line
// discount on either side.
func (o *Order) findMergeCandidate(candidate *OrderItem) *OrderItem {
	for _, it := range o.items {
		if it.manualDiscount != nil || candidate.manualDiscount != nil {
			continue
		}
		if it.productID != candidate.productID {
			continue
		}
		if !observationEqual(it.observation, candidate.observation) {
			continue
		}
		if extrasKey(it.extras) != extrasKey(candidate.extras) {
			continue
		}
		return it
	}
	return nil
}

func observationEqual(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// ---- modifyQuantity / removeItem ----

func (o *Order) ModifyQuantity(itemID string, newQty int, activePromotions []*promotion.Promotion, at time.Time) error {
	if !o.IsOpen() {
		return ErrImmutable(o.id)
	}
	if newQty < 1 {
		return shared.NewValidationError("order_item", "quantity", "quantity must be at least 1")
	}
	item := o.ItemByID(itemID)
	if item == nil {
		return ErrItemNotFound(itemID)
	}
	item.quantity = newQty
	return o.RecomputeAll(activePromotions, at)
}

func (o *Order) RemoveItem(itemID string, activePromotions []*promotion.Promotion, at time.Time) error {
	if !o.IsOpen() {
		return ErrImmutable(o.id)
	}
	idx := -1
	for i, it := range o.items {
		if it.id == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrItemNotFound(itemID)
	}
	o.items = append(o.items[:idx], o.items[idx+1:]...)
	return o.RecomputeAll(activePromotions, at)
}

// RecomputeAll is the bulk recomputation path (spec §4.2): clear every
// snapshot, group by product id (excluding items with extras), and assign
// each group's winning discount proportionally by cycle-assigned units.
func (o *Order) RecomputeAll(activePromotions []*promotion.Promotion, at time.Time) error {
	for _, it := range o.items {
		it.clearPromotion()
	}

	groups := make(map[string][]*OrderItem)
	var order []string
	for _, it := range o.items {
		if it.HasExtras() {
			continue
		}
		if _, seen := groups[it.productID]; !seen {
			order = append(order, it.productID)
		}
		groups[it.productID] = append(groups[it.productID], it)
	}

	ctx := o.evaluationContext(at)
	productQtys := o.productQtyMap()
	engine := promotion.NewEngine()

	for _, productID := range order {
		group := groups[productID]
		cumulativeQty := 0
		for _, it := range group {
			cumulativeQty += it.quantity
		}
		unitPrice := group[0].unitPriceSnapshot

		best, totalDiscount := engine.Best(activePromotions, productID, unitPrice, cumulativeQty, ctx, productQtys)
		if best == nil || !totalDiscount.IsPositive() {
			continue
		}

		inCycle := best.Strategy().InCycleUnits(cumulativeQty)
		sorted := append([]*OrderItem(nil), group...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].quantity > sorted[j].quantity })

		weights := make([]int, len(sorted))
		remaining := inCycle
		for i, it := range sorted {
			assign := it.quantity
			if assign > remaining {
				assign = remaining
			}
			if assign < 0 {
				assign = 0
			}
			weights[i] = assign
			remaining -= assign
		}

		amounts := promotion.DistributeProportional(totalDiscount, weights)
		name := best.Name()
		id := best.ID()
		for i, it := range sorted {
			if weights[i] == 0 {
				continue
			}
			it.setPromotion(PromotionSnapshot{DiscountAmount: amounts[i], PromotionName: &name, PromotionID: &id})
		}
	}
	return nil
}

// ---- manual discounts ----

func validateManualInput(kind DiscountKind, value shared.Money) error {
	if !value.IsPositive() {
		return shared.NewValidationError("order", "value", "discount value must be positive")
	}
	if kind == DiscountPercent {
		hundred := shared.MoneyFromCents(10000)
		if value.GreaterThan(hundred) {
			return shared.NewValidationError("order", "value", "percent discount must be <= 100")
		}
	}
	return nil
}

func (o *Order) ApplyLineDiscount(itemID string, kind DiscountKind, value shared.Money, reason, userID string, at time.Time) error {
	if !o.IsOpen() {
		return ErrImmutable(o.id)
	}
	if err := validateManualInput(kind, value); err != nil {
		return err
	}
	item := o.ItemByID(itemID)
	if item == nil {
		return ErrItemNotFound(itemID)
	}
	discount := &ManualDiscount{Kind: kind, Value: value, Reason: reason, UserID: userID, At: at}
	base := item.LineAfterPromo()
	if discount.amountAgainst(base).GreaterThan(base) {
		return shared.NewValidationError("order_item", "value", "resulting line total cannot be negative")
	}
	item.manualDiscount = discount
	return nil
}

func (o *Order) ApplyGlobalDiscount(kind DiscountKind, value shared.Money, reason, userID string, at time.Time) error {
	if !o.IsOpen() {
		return ErrImmutable(o.id)
	}
	if err := validateManualInput(kind, value); err != nil {
		return err
	}
	discount := &ManualDiscount{Kind: kind, Value: value, Reason: reason, UserID: userID, At: at}
	base := o.sumLineAfterManual()
	if discount.amountAgainst(base).GreaterThan(base) {
		return shared.NewValidationError("order", "value", "resulting order total cannot be negative")
	}
	o.global = discount
	return nil
}

// ---- close / reopen ----

func (o *Order) Close(payments []Payment, at time.Time) error {
	if !o.IsOpen() {
		return ErrImmutable(o.id)
	}
	if len(payments) == 0 {
		return shared.NewValidationError("order", "payments", "at least one payment is required to close")
	}
	sum := shared.Zero
	for _, p := range payments {
		if !p.Amount.IsPositive() {
			return shared.NewValidationError("order", "payments", "each payment amount must be positive")
		}
		sum = sum.Add(p.Amount)
	}
	final := o.FinalTotal()
	if !sum.Equals(final) {
		return ErrPaymentMismatch(final, sum)
	}

	o.payments = payments
	o.snapshot = &AccountingSnapshot{
		Subtotal:      o.Subtotal(),
		DiscountTotal: o.DiscountTotal(),
		FinalTotal:    final,
	}
	o.closedAt = &at
	o.state = Closed
	o.events = append(o.events, NewOrderClosedEvent(o.id, o.localID, final))
	return nil
}

func (o *Order) Reopen(at time.Time) error {
	if o.state != Closed {
		return shared.NewValidationError("order", "state", "order is not closed")
	}
	o.payments = nil
	o.snapshot = nil
	o.closedAt = nil
	o.state = Open
	o.events = append(o.events, NewOrderReopenedEvent(o.id, o.localID))
	return nil
}

func (o *Order) PullEvents() []shared.DomainEvent {
	events := o.events
	o.events = nil
	return events
}

var _ shared.AggregateRoot = (*Order)(nil)
