package wallet

import (
	"testing"

	"github.com/etnz/wallet/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// compareAmounts lets cmp compare decimals by value.
var compareAmounts = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

// compareDates lets cmp compare dates despite their unexported fields.
var compareDates = cmp.Comparer(func(a, b date.Date) bool { return a == b })

// diffRecords returns a human readable diff between two record lists, empty if equal.
func diffRecords(want, got []Record) string {
	return cmp.Diff(want, got, compareAmounts, compareDates)
}

// in is a helper for test to create an income record.
func in(on string, amount float64, description string) Record {
	return NewRecord(date.MustParse(on), Income, amount, description)
}

// out is a helper for test to create an expense record.
func out(on string, amount float64, description string) Record {
	return NewRecord(date.MustParse(on), Expense, amount, description)
}

// openTemp opens a store on a fresh file in a temporary directory.
func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir() + "/wallet.txt")
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	return s
}

// must parses a date, the empty string is the zero date.
func must(s string) date.Date {
	if s == "" {
		return date.Date{}
	}
	return date.MustParse(s)
}
