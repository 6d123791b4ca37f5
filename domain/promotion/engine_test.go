package promotion

import (
	"testing"
	"time"

	"comandas/domain/shared"
)

func mustPromotion(t *testing.T, in NewPromotionInput, now time.Time) *Promotion {
	t.Helper()
	p, err := NewPromotion(in, now)
	if err != nil {
		t.Fatalf("NewPromotion: %v", err)
	}
	return p
}

func targetScope(productID string) Scope {
	return Scope{{ReferenceID: productID, ReferenceKind: ReferenceProduct, Role: RoleTarget}}
}

// Seed scenario: a percent discount that only applies inside a temporal
// window (e.g. a happy hour).
func TestEngine_HappyHourPercentDiscount(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	promo := mustPromotion(t, NewPromotionInput{
		LocalID:  "local-1",
		Name:     "Happy Hour",
		Priority: 1,
		Strategy: Strategy{Kind: DirectDiscount, Mode: ModePercent, PercentValue: shared.MoneyFromCents(2000)},
		Criteria: []ActivationCriterion{{Kind: CriterionTemporal, FromHour: 17 * 60, ToHour: 19 * 60}},
		Scope:    targetScope("beer"),
	}, createdAt)

	unitPrice := shared.MoneyFromCents(1000)
	engine := NewEngine()

	withinWindow := time.Date(2026, 7, 31, 18, 0, 0, 0, time.UTC)
	ctx := NewEvaluationContext(withinWindow, map[string]struct{}{"beer": {}}, unitPrice.Mul(3))
	best, discount := engine.Best([]*Promotion{promo}, "beer", unitPrice, 3, ctx, map[string]int{"beer": 3})
	if best == nil {
		t.Fatal("expected the happy-hour promotion to apply inside its window")
	}
	if want := shared.MoneyFromCents(600); !discount.Equals(want) {
		t.Fatalf("discount = %s, want %s", discount, want)
	}

	outsideWindow := time.Date(2026, 7, 31, 20, 0, 0, 0, time.UTC)
	ctx2 := NewEvaluationContext(outsideWindow, map[string]struct{}{"beer": {}}, unitPrice.Mul(3))
	best2, discount2 := engine.Best([]*Promotion{promo}, "beer", unitPrice, 3, ctx2, map[string]int{"beer": 3})
	if best2 != nil || discount2.IsPositive() {
		t.Fatalf("expected no discount outside the happy-hour window, got %v / %s", best2, discount2)
	}
}

// Seed scenario: a combo promotion must stay ineligible until its trigger
// product is actually present in the order, regardless of target quantity.
func TestEngine_ComboRequiresTrigger(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	scope := Scope{
		{ReferenceID: "burger", ReferenceKind: ReferenceProduct, Role: RoleTarget},
		{ReferenceID: "fries", ReferenceKind: ReferenceProduct, Role: RoleTrigger},
	}
	promo := mustPromotion(t, NewPromotionInput{
		LocalID:  "local-1",
		Name:     "Combo",
		Priority: 1,
		Strategy: Strategy{Kind: ComboConditional, MinTriggerQty: 1, BenefitPct: shared.MoneyFromCents(1000)},
		Scope:    scope,
	}, createdAt)

	engine := NewEngine()
	unitPrice := shared.MoneyFromCents(2000)
	at := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)

	ctxNoTrigger := NewEvaluationContext(at, map[string]struct{}{"burger": {}}, unitPrice)
	best, discount := engine.Best([]*Promotion{promo}, "burger", unitPrice, 1, ctxNoTrigger, map[string]int{"burger": 1})
	if best != nil || discount.IsPositive() {
		t.Fatalf("expected the combo to be ineligible without its trigger product, got %v / %s", best, discount)
	}

	ctxWithTrigger := NewEvaluationContext(at, map[string]struct{}{"burger": {}, "fries": {}}, unitPrice)
	best2, discount2 := engine.Best([]*Promotion{promo}, "burger", unitPrice, 1, ctxWithTrigger, map[string]int{"burger": 1, "fries": 1})
	if best2 == nil {
		t.Fatal("expected the combo promotion to apply once its trigger product is present")
	}
	if want := shared.MoneyFromCents(200); !discount2.Equals(want) {
		t.Fatalf("discount = %s, want %s", discount2, want)
	}
}

// Seed scenario: equal-priority candidates break ties by earliest CreatedAt,
// and a full tie (priority and CreatedAt both equal) breaks by id.
func TestEngine_PriorityTieResolution(t *testing.T) {
	at := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	scope := targetScope("soda")
	unitPrice := shared.MoneyFromCents(1000)
	engine := NewEngine()
	ctx := NewEvaluationContext(at, map[string]struct{}{"soda": {}}, unitPrice)

	promoA := mustPromotion(t, NewPromotionInput{
		LocalID: "l", Name: "A", Priority: 5,
		Strategy: Strategy{Kind: DirectDiscount, Mode: ModePercent, PercentValue: shared.MoneyFromCents(1000)},
		Scope:    scope,
	}, earlier)
	promoB := mustPromotion(t, NewPromotionInput{
		LocalID: "l", Name: "B", Priority: 5,
		Strategy: Strategy{Kind: DirectDiscount, Mode: ModePercent, PercentValue: shared.MoneyFromCents(2000)},
		Scope:    scope,
	}, later)

	best, _ := engine.Best([]*Promotion{promoA, promoB}, "soda", unitPrice, 1, ctx, map[string]int{"soda": 1})
	if best == nil || best.ID() != promoA.ID() {
		t.Fatalf("expected the earlier-created promotion to win an equal-priority tie, got %v", best)
	}

	promoC := mustPromotion(t, NewPromotionInput{
		LocalID: "l", Name: "C", Priority: 5,
		Strategy: Strategy{Kind: DirectDiscount, Mode: ModePercent, PercentValue: shared.MoneyFromCents(1000)},
		Scope:    scope,
	}, earlier)
	promoD := mustPromotion(t, NewPromotionInput{
		LocalID: "l", Name: "D", Priority: 5,
		Strategy: Strategy{Kind: DirectDiscount, Mode: ModePercent, PercentValue: shared.MoneyFromCents(1000)},
		Scope:    scope,
	}, earlier)
	wantID := promoC.ID()
	if promoD.ID() < wantID {
		wantID = promoD.ID()
	}
	best2, _ := engine.Best([]*Promotion{promoC, promoD}, "soda", unitPrice, 1, ctx, map[string]int{"soda": 1})
	if best2 == nil || best2.ID() != wantID {
		t.Fatalf("expected the lexicographically smaller id to win a full tie, got %v want %s", best2, wantID)
	}
}

// Seed scenario: a fixed-price pack only discounts complete cycles, never
// partial ones.
func TestStrategy_FixedPricePackCycles(t *testing.T) {
	s := Strategy{Kind: FixedPricePack, ActivateAtK: 3, PackPrice: shared.MoneyFromCents(2500)}
	unitPrice := shared.MoneyFromCents(1000)

	cases := []struct {
		qty  int
		want shared.Money
	}{
		{qty: 2, want: shared.Zero},
		{qty: 3, want: shared.MoneyFromCents(500)},
		{qty: 5, want: shared.MoneyFromCents(500)},
		{qty: 6, want: shared.MoneyFromCents(1000)},
	}
	for _, c := range cases {
		got := s.Discount(unitPrice, c.qty)
		if !got.Equals(c.want) {
			t.Errorf("qty=%d: discount = %s, want %s", c.qty, got, c.want)
		}
	}

	if got := s.InCycleUnits(5); got != 3 {
		t.Errorf("InCycleUnits(5) = %d, want 3", got)
	}
	if got := s.InCycleUnits(6); got != 6 {
		t.Errorf("InCycleUnits(6) = %d, want 6", got)
	}
}

// Invariant: DistributeProportional always reconciles exactly to the cent,
// with the residue landing on the last non-zero-weight item.
func TestDistributeProportional_ResidueExactness(t *testing.T) {
	total := shared.MoneyFromCents(1000)

	amounts := DistributeProportional(total, []int{1, 1, 1})
	sum := shared.SumMoney(amounts)
	if !sum.Equals(total) {
		t.Fatalf("amounts sum to %s, want %s", sum, total)
	}
	if amounts[0].Equals(amounts[2]) {
		t.Fatalf("expected the residue to break the even three-way split, got %s and %s", amounts[0], amounts[2])
	}

	amounts2 := DistributeProportional(total, []int{0, 2, 0, 3})
	if !amounts2[0].IsZero() || !amounts2[2].IsZero() {
		t.Fatalf("expected zero-weight items to receive nothing, got %v", amounts2)
	}
	sum2 := shared.SumMoney(amounts2)
	if !sum2.Equals(total) {
		t.Fatalf("amounts2 sum to %s, want %s", sum2, total)
	}
}
