package wallet

import "github.com/shopspring/decimal"

// Finances are the totals of a list of records.
type Finances struct {
	Income  decimal.Decimal // sum of income records
	Expense decimal.Decimal // sum of expense records
	Count   int             // number of records summarized
}

// Balance returns Income - Expense.
func (f Finances) Balance() decimal.Decimal { return f.Income.Sub(f.Expense) }

// Summarize totals incomes and expenses. Records in other categories are
// counted but do not change the totals.
func Summarize(records []Record) Finances {
	f := Finances{Income: decimal.Zero, Expense: decimal.Zero}
	for _, r := range records {
		switch {
		case r.IsIncome():
			f.Income = f.Income.Add(r.Amount)
		case r.IsExpense():
			f.Expense = f.Expense.Add(r.Amount)
		}
		f.Count++
	}
	return f
}
