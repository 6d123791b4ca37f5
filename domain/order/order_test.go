package order

import (
	"errors"
	"testing"
	"time"

	"comandas/domain/catalog"
	"comandas/domain/promotion"
	"comandas/domain/shared"
)

func mustProduct(t *testing.T, price shared.Money) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.NewProductInput{LocalID: "p1", Name: "Item", Price: price})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	return p
}

func mustOrder(t *testing.T, at time.Time) *Order {
	t.Helper()
	o, err := NewOrder("local-1", "table-1", 1, at)
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	return o
}

func obs(s string) *string { return &s }

// Invariant: Close requires the sum of payment amounts to equal FinalTotal
// exactly, and rejects any mismatch with ErrPaymentMismatch.
func TestOrder_Close_RequiresExactPaymentSum(t *testing.T) {
	at := time.Date(2026, 7, 31, 13, 0, 0, 0, time.UTC)
	product := mustProduct(t, shared.MoneyFromCents(1000))
	o := mustOrder(t, at)
	if _, err := o.AddItem(AddItemInput{Product: product, Quantity: 2, At: at}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	final := o.FinalTotal()
	if !final.Equals(shared.MoneyFromCents(2000)) {
		t.Fatalf("FinalTotal = %s, want 20.00", final)
	}

	mismatched := []Payment{{Medium: PaymentCash, Amount: shared.MoneyFromCents(1999), Timestamp: at}}
	if err := o.Close(mismatched, at); err == nil {
		t.Fatal("expected ErrPaymentMismatch for a short payment")
	} else if !errors.Is(err, shared.ErrPaymentMismatch) {
		t.Fatalf("expected ErrPaymentMismatch, got %v", err)
	}
	if !o.IsOpen() {
		t.Fatal("a failed close must not mutate order state")
	}

	exact := []Payment{
		{Medium: PaymentCash, Amount: shared.MoneyFromCents(1200), Timestamp: at},
		{Medium: PaymentCard, Amount: shared.MoneyFromCents(800), Timestamp: at},
	}
	if err := o.Close(exact, at); err != nil {
		t.Fatalf("Close with exact split payments: %v", err)
	}
	if o.IsOpen() {
		t.Fatal("expected the order to be closed")
	}
	if !o.Snapshot().FinalTotal.Equals(final) {
		t.Fatalf("snapshot FinalTotal = %s, want %s", o.Snapshot().FinalTotal, final)
	}
}

// Seed scenario: a fixed-price pack whose cycle spans two separate order
// lines of the same product must still discount by whole cycles only, with
// the discount distributed proportionally and reconciling to the cent.
func TestOrder_RecomputeAll_FixedPricePackCrossLineAggregation(t *testing.T) {
	at := time.Date(2026, 7, 31, 13, 0, 0, 0, time.UTC)
	product := mustProduct(t, shared.MoneyFromCents(1000))
	pack, err := promotion.NewPromotion(promotion.NewPromotionInput{
		LocalID:  "local-1",
		Name:     "3x1000 Pack",
		Priority: 1,
		Strategy: promotion.Strategy{Kind: promotion.FixedPricePack, ActivateAtK: 3, PackPrice: shared.MoneyFromCents(2500)},
		Scope:    promotion.Scope{{ReferenceID: product.ID(), ReferenceKind: promotion.ReferenceProduct, Role: promotion.RoleTarget}},
	}, at)
	if err != nil {
		t.Fatalf("NewPromotion: %v", err)
	}
	active := []*promotion.Promotion{pack}

	o := mustOrder(t, at)
	// Two distinct lines (different observations so they don't merge) of the
	// same product, quantities 2 and 1, making one full 3-unit cycle across
	// the two lines.
	item1, err := o.AddItem(AddItemInput{Product: product, Quantity: 2, Observation: obs("no ice"), ActivePromotions: active, At: at})
	if err != nil {
		t.Fatalf("AddItem line 1: %v", err)
	}
	item2, err := o.AddItem(AddItemInput{Product: product, Quantity: 1, Observation: obs("extra ice"), ActivePromotions: active, At: at})
	if err != nil {
		t.Fatalf("AddItem line 2: %v", err)
	}

	if err := o.RecomputeAll(active, at); err != nil {
		t.Fatalf("RecomputeAll: %v", err)
	}

	wantTotalDiscount := shared.MoneyFromCents(500) // 3*1000 - 2500
	gotTotalDiscount := item1.Promotion().DiscountAmount.Add(item2.Promotion().DiscountAmount)
	if !gotTotalDiscount.Equals(wantTotalDiscount) {
		t.Fatalf("cross-line discount total = %s, want %s", gotTotalDiscount, wantTotalDiscount)
	}
	// The heavier line (qty 2) should receive the larger share of the cycle discount.
	if !item1.Promotion().DiscountAmount.GreaterThan(item2.Promotion().DiscountAmount) {
		t.Fatalf("expected line 1 (qty 2) to receive a larger share than line 2 (qty 1): %s vs %s",
			item1.Promotion().DiscountAmount, item2.Promotion().DiscountAmount)
	}
}

// Invariant: cent reconciliation — Subtotal - DiscountTotal always equals
// FinalTotal exactly, including once manual line and global discounts are
// layered on top of an already-applied promotion.
func TestOrder_CentReconciliation(t *testing.T) {
	at := time.Date(2026, 7, 31, 13, 0, 0, 0, time.UTC)
	product := mustProduct(t, shared.MoneyFromCents(333)) // an awkward unit price
	promo, err := promotion.NewPromotion(promotion.NewPromotionInput{
		LocalID:  "local-1",
		Name:     "10% off",
		Priority: 1,
		Strategy: promotion.Strategy{Kind: promotion.DirectDiscount, Mode: promotion.ModePercent, PercentValue: shared.MoneyFromCents(1000)},
		Scope:    promotion.Scope{{ReferenceID: product.ID(), ReferenceKind: promotion.ReferenceProduct, Role: promotion.RoleTarget}},
	}, at)
	if err != nil {
		t.Fatalf("NewPromotion: %v", err)
	}
	active := []*promotion.Promotion{promo}

	o := mustOrder(t, at)
	item, err := o.AddItem(AddItemInput{Product: product, Quantity: 7, ActivePromotions: active, At: at})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := o.ApplyLineDiscount(item.ID(), DiscountPercent, shared.MoneyFromCents(1500), "loyalty", "user-1", at); err != nil {
		t.Fatalf("ApplyLineDiscount: %v", err)
	}
	if err := o.ApplyGlobalDiscount(DiscountFixed, shared.MoneyFromCents(100), "rounding adjustment", "user-1", at); err != nil {
		t.Fatalf("ApplyGlobalDiscount: %v", err)
	}

	if got := o.Subtotal().Sub(o.DiscountTotal()); !got.Equals(o.FinalTotal()) {
		t.Fatalf("Subtotal - DiscountTotal = %s, want FinalTotal %s", got, o.FinalTotal())
	}

	payments := []Payment{{Medium: PaymentCash, Amount: o.FinalTotal(), Timestamp: at}}
	if err := o.Close(payments, at); err != nil {
		t.Fatalf("Close with the reconciled final total: %v", err)
	}
}

// Seed scenario: a fixed-price pack applies only once the order holds a
// full cycle's worth of units on a single line.
func TestOrder_AddItem_FixedPricePackAppliesOnlyAtFullCycle(t *testing.T) {
	at := time.Date(2026, 7, 31, 13, 0, 0, 0, time.UTC)
	product := mustProduct(t, shared.MoneyFromCents(1000))
	pack, err := promotion.NewPromotion(promotion.NewPromotionInput{
		LocalID:  "local-1",
		Name:     "3x1000 Pack",
		Priority: 1,
		Strategy: promotion.Strategy{Kind: promotion.FixedPricePack, ActivateAtK: 3, PackPrice: shared.MoneyFromCents(2500)},
		Scope:    promotion.Scope{{ReferenceID: product.ID(), ReferenceKind: promotion.ReferenceProduct, Role: promotion.RoleTarget}},
	}, at)
	if err != nil {
		t.Fatalf("NewPromotion: %v", err)
	}
	active := []*promotion.Promotion{pack}

	o := mustOrder(t, at)
	item, err := o.AddItem(AddItemInput{Product: product, Quantity: 2, ActivePromotions: active, At: at})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item.Promotion().DiscountAmount.IsPositive() {
		t.Fatalf("expected no discount below a full cycle, got %s", item.Promotion().DiscountAmount)
	}

	if err := o.ModifyQuantity(item.ID(), 3, active, at); err != nil {
		t.Fatalf("ModifyQuantity: %v", err)
	}
	if want := shared.MoneyFromCents(500); !item.Promotion().DiscountAmount.Equals(want) {
		t.Fatalf("discount at a full cycle = %s, want %s", item.Promotion().DiscountAmount, want)
	}
}

func TestOrder_Reopen_ClearsPaymentsAndSnapshot(t *testing.T) {
	at := time.Date(2026, 7, 31, 13, 0, 0, 0, time.UTC)
	product := mustProduct(t, shared.MoneyFromCents(1000))
	o := mustOrder(t, at)
	if _, err := o.AddItem(AddItemInput{Product: product, Quantity: 1, At: at}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := o.Close([]Payment{{Medium: PaymentCash, Amount: shared.MoneyFromCents(1000), Timestamp: at}}, at); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := o.Reopen(at); err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	if !o.IsOpen() {
		t.Fatal("expected the order to be open again")
	}
	if o.Snapshot() != nil {
		t.Fatal("expected the accounting snapshot to be cleared")
	}
	if len(o.Payments()) != 0 {
		t.Fatal("expected payments to be cleared")
	}
	if o.ClosedAt() != nil {
		t.Fatal("expected closedAt to be cleared")
	}
}
