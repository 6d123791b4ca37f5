package promotion

import (
	"github.com/shopspring/decimal"

	"comandas/domain/shared"
)

// Engine is a stateless domain service (spec §9: no global mutable state).
// It never touches a repository; callers pass in the already-loaded active
// promotions for the local.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Eligibility checks items 1-3 of spec §4.2's predicate (state, scope
// target membership, AND-composed criteria) and, for the combo strategy,
// item 4 (combo trigger presence), which reads the order's product
// quantities rather than ctx.
func (Engine) eligible(p *Promotion, productID string, ctx EvaluationContext, productQtysInOrder map[string]int) bool {
	if !p.IsActive() {
		return false
	}
	if !p.Scope().HasTarget(productID) {
		return false
	}
	if !SatisfiesAll(p.Criteria(), ctx) {
		return false
	}
	if p.Strategy().Kind == ComboConditional {
		triggerQty := p.Scope().TriggerQtyInOrder(productQtysInOrder)
		if triggerQty < p.Strategy().MinTriggerQty {
			return false
		}
	}
	return true
}

// candidate pairs a promotion with the discount it would yield.
type candidate struct {
	promotion *Promotion
	discount  shared.Money
}

// Best evaluates every promotion against one product group and returns the
// winner: eligible, strictly positive discount, highest priority; ties
// broken by earliest CreatedAt then by id, for a stable, deterministic
// single-pass result (spec leaves the exact tiebreak unspecified — see
// the corresponding entry in DESIGN.md).
func (e Engine) Best(promotions []*Promotion, productID string, unitPrice shared.Money, qty int, ctx EvaluationContext, productQtysInOrder map[string]int) (*Promotion, shared.Money) {
	var candidates []candidate
	for _, p := range promotions {
		if !e.eligible(p, productID, ctx, productQtysInOrder) {
			continue
		}
		discount := p.Strategy().Discount(unitPrice, qty)
		if !discount.IsPositive() {
			continue
		}
		candidates = append(candidates, candidate{promotion: p, discount: discount})
	}
	if len(candidates) == 0 {
		return nil, shared.Zero
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if betterCandidate(c, best) {
			best = c
		}
	}
	return best.promotion, best.discount
}

func betterCandidate(c, best candidate) bool {
	if c.promotion.Priority() != best.promotion.Priority() {
		return c.promotion.Priority() > best.promotion.Priority()
	}
	if !c.promotion.CreatedAt().Equal(best.promotion.CreatedAt()) {
		return c.promotion.CreatedAt().Before(best.promotion.CreatedAt())
	}
	return c.promotion.ID() < best.promotion.ID()
}

// DistributeProportional splits total across weights (assigned units per
// item) proportionally, rounded half-up to two decimals, assigning the
// residue to the last non-zero-weight item so the sum reconciles to the
// cent exactly (spec §9, "Proportional residue").
func DistributeProportional(total shared.Money, weights []int) []shared.Money {
	result := make([]shared.Money, len(weights))
	sumWeights := 0
	lastNonZero := -1
	for i, w := range weights {
		sumWeights += w
		if w > 0 {
			lastNonZero = i
		}
	}
	if sumWeights == 0 || lastNonZero == -1 {
		return result
	}

	assigned := shared.Zero
	for i, w := range weights {
		if i == lastNonZero || w == 0 {
			continue
		}
		share := shared.NewMoney(total.Decimal().Mul(decimal.NewFromInt(int64(w))).Div(decimal.NewFromInt(int64(sumWeights))))
		result[i] = share
		assigned = assigned.Add(share)
	}
	result[lastNonZero] = total.Sub(assigned)
	return result
}
