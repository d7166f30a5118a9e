package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/wallet/date"
	"github.com/shopspring/decimal"
)

// Categories known to the finances summary. Any other category is accepted.
const (
	Income  = "income"
	Expense = "expense"
)

// Record is a single financial entry.
type Record struct {
	Date        date.Date
	Category    string
	Amount      decimal.Decimal
	Description string
}

// NewRecord creates a Record. Amount can be any numeric type or a decimal.Decimal.
func NewRecord[T float64 | int | int64 | decimal.Decimal](on date.Date, category string, amount T, description string) Record {
	return Record{Date: on, Category: category, Amount: newDecimal(amount), Description: description}
}

// Equal reports whether r and x hold the same values. Amounts are compared by value, so 100 equals 100.00.
func (r Record) Equal(x Record) bool {
	return r.Date == x.Date &&
		r.Category == x.Category &&
		r.Amount.Equal(x.Amount) &&
		r.Description == x.Description
}

// IsIncome reports whether the record is in the income category.
func (r Record) IsIncome() bool { return strings.EqualFold(strings.TrimSpace(r.Category), Income) }

// IsExpense reports whether the record is in the expense category.
func (r Record) IsExpense() bool { return strings.EqualFold(strings.TrimSpace(r.Category), Expense) }

// Validate checks that the record can be persisted.
func (r Record) Validate() error {
	var errs error
	if r.Date.IsZero() {
		errs = errors.Join(errs, errors.New("date is required"))
	}
	if strings.ContainsAny(r.Category, "\r\n") {
		errs = errors.Join(errs, errors.New("category cannot span several lines"))
	}
	if strings.ContainsAny(r.Description, "\r\n") {
		errs = errors.Join(errs, errors.New("description cannot span several lines"))
	}
	if len(r.Category) > MaxFieldLength {
		errs = errors.Join(errs, fmt.Errorf("category is longer than %d bytes", MaxFieldLength))
	}
	if len(r.Description) > MaxFieldLength {
		errs = errors.Join(errs, fmt.Errorf("description is longer than %d bytes", MaxFieldLength))
	}
	if len(r.Amount.String()) > MaxFieldLength {
		errs = errors.Join(errs, fmt.Errorf("amount has more than %d digits", MaxFieldLength))
	}
	return errs
}

// MarshalJSON writes the record with a stable key order.
func (r Record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", r.Date)
	w.Append("category", r.Category)
	w.Append("amount", r.Amount)
	w.Optional("description", r.Description)
	return w.MarshalJSON()
}

func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic(fmt.Sprintf("unsupported amount type %T", value))
	}
}
