package wallet

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an amount in a given currency, used for display.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns value in currency.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// KnownCurrency reports whether code is an ISO currency code known to the formatter.
func KnownCurrency(code string) bool { return money.GetCurrency(code) != nil }

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the amount formatted in its currency, e.g. "$1,234.50".
//
// Amounts with more decimals than the currency has, or too large for the
// formatter, are printed in full followed by the currency code, e.g.
// "0.004 USD", so that no digit is lost.
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Shift(int32(cur.Fraction))
	if !minor.IsInteger() || minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return m.value.String() + " " + cur.Code
	}
	return cur.Formatter().Format(minor.IntPart())
}

// range of minor units the go-money formatter handles.
var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)
