package promotion

import (
	"time"

	"comandas/domain/shared"
)

type CriterionKind string

const (
	CriterionTemporal  CriterionKind = "TEMPORAL"
	CriterionContent   CriterionKind = "CONTENT"
	CriterionMinAmount CriterionKind = "MIN_AMOUNT"
)

// ActivationCriterion is a tagged variant (spec §9: sum type with an
// explicit kind discriminator, not an interface hierarchy). Only the
// fields relevant to Kind are populated; persistence may flatten or
// JSON-encode, either is fine as long as round-trip is exact.
type ActivationCriterion struct {
	Kind CriterionKind

	// TEMPORAL
	From    time.Time
	To      time.Time
	Weekdays map[time.Weekday]struct{} // nil/empty = any weekday
	FromHour int                       // minutes since midnight, inclusive; -1 = no bound
	ToHour   int                       // minutes since midnight, exclusive; -1 = no bound

	// CONTENT
	RequiredProductIDs []string

	// MIN_AMOUNT
	Threshold shared.Money
}

// EvaluationContext is built fresh per operation (spec §4.2).
type EvaluationContext struct {
	At               time.Time
	ProductIDsInOrder map[string]struct{}
	Subtotal         shared.Money
}

// NewEvaluationContext mirrors the spec's description: current date, time,
// weekday, product-id set, current pre-discount subtotal.
func NewEvaluationContext(at time.Time, productIDsInOrder map[string]struct{}, subtotal shared.Money) EvaluationContext {
	return EvaluationContext{At: at, ProductIDsInOrder: productIDsInOrder, Subtotal: subtotal}
}

// Satisfied evaluates a single criterion against ctx.
func (c ActivationCriterion) Satisfied(ctx EvaluationContext) bool {
	switch c.Kind {
	case CriterionTemporal:
		return c.temporalSatisfied(ctx.At)
	case CriterionContent:
		for _, id := range c.RequiredProductIDs {
			if _, ok := ctx.ProductIDsInOrder[id]; !ok {
				return false
			}
		}
		return true
	case CriterionMinAmount:
		return ctx.Subtotal.GreaterOrEqual(c.Threshold)
	default:
		return false
	}
}

func (c ActivationCriterion) temporalSatisfied(at time.Time) bool {
	if !c.From.IsZero() && at.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && at.After(c.To) {
		return false
	}
	if len(c.Weekdays) > 0 {
		if _, ok := c.Weekdays[at.Weekday()]; !ok {
			return false
		}
	}
	minutesOfDay := at.Hour()*60 + at.Minute()
	if c.FromHour >= 0 && minutesOfDay < c.FromHour {
		return false
	}
	if c.ToHour >= 0 && minutesOfDay >= c.ToHour {
		return false
	}
	return true
}

// SatisfiesAll is the engine's step 3: every criterion AND-composed.
func SatisfiesAll(criteria []ActivationCriterion, ctx EvaluationContext) bool {
	for _, c := range criteria {
		if !c.Satisfied(ctx) {
			return false
		}
	}
	return true
}
