package promotion

import (
	"github.com/shopspring/decimal"

	"comandas/domain/shared"
)

type StrategyKind string

const (
	DirectDiscount   StrategyKind = "DIRECT_DISCOUNT"
	QuantityBundle   StrategyKind = "QUANTITY_BUNDLE"
	ComboConditional StrategyKind = "COMBO_CONDITIONAL"
	FixedPricePack   StrategyKind = "FIXED_PRICE_PACK"
)

type DiscountMode string

const (
	ModePercent DiscountMode = "PERCENT"
	ModeFixed   DiscountMode = "FIXED"
)

// Strategy is a tagged variant (spec §9); only the fields relevant to Kind
// are populated. Dispatch happens at the single site in Discount below,
// never via an interface-per-variant hierarchy.
type Strategy struct {
	Kind StrategyKind

	// DIRECT_DISCOUNT
	Mode        DiscountMode
	PercentValue shared.Money // used when Mode == PERCENT, 0 < value <= 100
	FixedValue   shared.Money // used when Mode == FIXED, per unit

	// QUANTITY_BUNDLE
	TakeN int
	PayM  int

	// COMBO_CONDITIONAL
	MinTriggerQty int
	BenefitPct    shared.Money

	// FIXED_PRICE_PACK
	ActivateAtK int
	PackPrice   shared.Money
}

// Discount computes the discount for a single product group, given its
// shared unit price and cumulative quantity. lineSubtotal is unitPrice*qty;
// extras are never part of it (spec §4.2).
func (s Strategy) Discount(unitPrice shared.Money, qty int) shared.Money {
	lineSubtotal := unitPrice.Mul(int64(qty))
	switch s.Kind {
	case DirectDiscount:
		if s.Mode == ModePercent {
			return lineSubtotal.PercentOf(s.PercentValue.Decimal())
		}
		return shared.Min(s.FixedValue.Mul(int64(qty)), lineSubtotal)
	case QuantityBundle:
		if s.TakeN <= 0 {
			return shared.Zero
		}
		cycles := qty / s.TakeN
		freeUnits := s.TakeN - s.PayM
		if freeUnits <= 0 || cycles <= 0 {
			return shared.Zero
		}
		return unitPrice.Mul(int64(cycles * freeUnits))
	case ComboConditional:
		return lineSubtotal.PercentOf(s.BenefitPct.Decimal())
	case FixedPricePack:
		if s.ActivateAtK <= 0 {
			return shared.Zero
		}
		cycles := qty / s.ActivateAtK
		if cycles <= 0 {
			return shared.Zero
		}
		perCycle := unitPrice.Mul(int64(s.ActivateAtK)).Sub(s.PackPrice)
		total := perCycle.Mul(int64(cycles))
		if total.IsNegative() {
			return shared.Zero
		}
		return total
	default:
		return shared.Zero
	}
}

// InCycleUnits returns how many of qty units lie inside complete promo
// cycles, used by the bulk-recomputation greedy assignment (spec §4.2).
func (s Strategy) InCycleUnits(qty int) int {
	switch s.Kind {
	case QuantityBundle:
		if s.TakeN <= 0 {
			return 0
		}
		return (qty / s.TakeN) * s.TakeN
	case FixedPricePack:
		if s.ActivateAtK <= 0 {
			return 0
		}
		return (qty / s.ActivateAtK) * s.ActivateAtK
	default:
		return qty
	}
}

func (s Strategy) Validate() error {
	switch s.Kind {
	case DirectDiscount:
		if s.Mode == ModePercent {
			v := s.PercentValue.Decimal()
			if v.Sign() <= 0 || v.GreaterThan(decimal.NewFromInt(100)) {
				return shared.NewValidationError("promotion", "strategy", "percent value must be in (0, 100]")
			}
		} else if s.Mode == ModeFixed {
			if !s.FixedValue.IsPositive() {
				return shared.NewValidationError("promotion", "strategy", "fixed value must be positive")
			}
		} else {
			return shared.NewValidationError("promotion", "strategy", "mode must be PERCENT or FIXED")
		}
	case QuantityBundle:
		if s.TakeN < 1 || s.PayM >= s.TakeN || s.PayM < 0 {
			return shared.NewValidationError("promotion", "strategy", "quantity bundle requires payM < takeN, both >= 0 and takeN >= 1")
		}
	case ComboConditional:
		if s.MinTriggerQty < 1 {
			return shared.NewValidationError("promotion", "strategy", "combo requires minTriggerQty >= 1")
		}
	case FixedPricePack:
		if s.ActivateAtK < 2 {
			return shared.NewValidationError("promotion", "strategy", "fixed price pack requires activateAt >= 2")
		}
		if !s.PackPrice.IsPositive() {
			return shared.NewValidationError("promotion", "strategy", "pack price must be positive")
		}
	default:
		return shared.NewValidationError("promotion", "strategy", "unknown strategy kind")
	}
	return nil
}
