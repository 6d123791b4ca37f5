package shared

import "github.com/shopspring/decimal"

// Money is an exact decimal amount rounded half-up to two fractional
// digits at every construction and every arithmetic result. comandas
// serves a single local's single currency (see spec non-goals: no
// conversion, no multi-currency rounding modes), so there is no currency
// tag to carry — unlike a multi-currency domain, there is nothing for it
// to disagree with.
type Money struct {
	amount decimal.Decimal
}

// Zero is the additive identity.
var Zero = Money{amount: decimal.Zero}

// NewMoney rounds v half-up to two decimals and wraps it.
func NewMoney(v decimal.Decimal) Money {
	return Money{amount: v.Round(2)}
}

// MoneyFromCents builds an exact amount from an integer cent count, useful
// for tests and seed scenarios expressed as integers (e.g. 2500 = $25.00).
func MoneyFromCents(cents int64) Money {
	return Money{amount: decimal.New(cents, -2)}
}

func (m Money) Decimal() decimal.Decimal { return m.amount }

func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

func (m Money) Sub(other Money) Money {
	return NewMoney(m.amount.Sub(other.amount))
}

// Mul multiplies by an integer factor (e.g. line quantity).
func (m Money) Mul(factor int64) Money {
	return NewMoney(m.amount.Mul(decimal.New(factor, 0)))
}

// PercentOf returns m * pct/100, half-up to two decimals.
func (m Money) PercentOf(pct decimal.Decimal) Money {
	return NewMoney(m.amount.Mul(pct).Div(decimal.New(100, 0)))
}

func (m Money) Neg() Money { return Money{amount: m.amount.Neg()} }

func (m Money) IsNegative() bool { return m.amount.IsNegative() }
func (m Money) IsZero() bool     { return m.amount.IsZero() }
func (m Money) IsPositive() bool { return m.amount.IsPositive() }

func (m Money) GreaterThan(other Money) bool      { return m.amount.GreaterThan(other.amount) }
func (m Money) GreaterOrEqual(other Money) bool    { return m.amount.GreaterThanOrEqual(other.amount) }
func (m Money) LessThan(other Money) bool          { return m.amount.LessThan(other.amount) }

func (m Money) Equals(other interface{}) bool {
	o, ok := other.(Money)
	if !ok {
		return false
	}
	return m.amount.Equal(o.amount)
}

func (m Money) String() string { return m.amount.StringFixed(2) }

// MarshalJSON encodes Money as a decimal string, matching the rest of the
// API boundary (order/promotion views already stringify Money fields).
func (m Money) MarshalJSON() ([]byte, error) {
	return m.amount.MarshalJSON()
}

// UnmarshalJSON accepts either a JSON string or number and rounds it
// half-up to two decimals, same as NewMoney.
func (m *Money) UnmarshalJSON(data []byte) error {
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = NewMoney(amount)
	return nil
}

// Min returns the smaller of two amounts.
func Min(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// SumMoney adds a slice of amounts, returning Zero for an empty slice.
func SumMoney(amounts []Money) Money {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
