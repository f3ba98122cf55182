package marketwatch

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a display amount in a given currency, used for market turnover
// figures. The value is kept exact; formatting goes through the currency's
// own convention.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M returns the amount of 'value' in 'currency' (ISO 4217 code).
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// Currency returns the currency code.
func (m Money) Currency() string { return m.cur }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.value.IsZero() }

// Add sums two amounts. The "" currency is weak and takes the other side's.
func (m Money) Add(n Money) Money {
	return Money{value: m.value.Add(n.value), cur: cur(m, n)}
}

func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// String formats the amount with the currency's symbol and grouping.
func (m Money) String() string {
	// The Money constructor is the only way to get a never-nil currency.
	c := *money.New(0, m.cur).Currency()
	dec := m.value.Shift(int32(c.Fraction))
	return c.Formatter().Format(dec.IntPart())
}
