package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/date"
	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// periodFilter returns a filter on the period containing 'on', and its title.
// An empty period selects everything.
func periodFilter(period, on string) (func(wallet.Record) bool, string, error) {
	if period == "" {
		return func(wallet.Record) bool { return true }, "", nil
	}
	p, err := date.ParsePeriod(period)
	if err != nil {
		return nil, "", err
	}
	end := date.Today()
	if on != "" {
		if end, err = date.Parse(on); err != nil {
			return nil, "", err
		}
	}
	r := date.NewRange(end, p)
	return func(rec wallet.Record) bool { return r.Contains(rec.Date) }, r.String(), nil
}

// parseAmount parses an optional amount flag.
func parseAmount(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return decimal.NewNullDecimal(d), nil
}

// --- Add Command ---

type addCmd struct {
	date        string
	category    string
	amount      string
	description string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a record" }
func (*addCmd) Usage() string {
	return `wallet add [-d <date>] -c <category> -a <amount> [-m <description>]

  Appends a record to the storage file. Use the categories "income" and
  "expense" for the record to count in the balance.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Record date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.category, "c", "", "Category, income or expense")
	f.StringVar(&c.amount, "a", "", "Amount")
	f.StringVar(&c.description, "m", "", "Description")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	on := date.Today()
	if c.date != "" {
		var err error
		if on, err = date.Parse(c.date); err != nil {
			return fail("%v", err)
		}
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		return fail("%v", err)
	}

	_, store, err := openStore(args)
	if err != nil {
		return fail("%v", err)
	}
	if err := store.Add(wallet.NewRecord(on, c.category, amount.Decimal, c.description)); err != nil {
		return fail("%v", err)
	}
	fmt.Fprintf(stdout, "Record #%d added to %s\n", store.Len(), store.Path())
	return subcommands.ExitSuccess
}

// --- List Command ---

type listCmd struct {
	period string
	on     string
	head   int
	tail   int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list records" }
func (*listCmd) Usage() string {
	return `wallet list [-p <period>] [-on <date>] [-head <n> | -tail <n>]

  Lists records with their number. With -p only the records of the period
  (day, week, month, quarter, year) containing -on (default today) are listed.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Period (day, week, month, quarter, year)")
	f.StringVar(&c.on, "on", "", "Date within the period, defaults to today")
	f.IntVar(&c.head, "head", 0, "Show only the first N records")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N records")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(f.Output(), "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	keep, title, err := periodFilter(c.period, c.on)
	if err != nil {
		return fail("%v", err)
	}
	cfg, store, err := openStore(args)
	if err != nil {
		return fail("%v", err)
	}

	entries := store.Select(keep)
	if c.head > 0 && len(entries) > c.head {
		entries = entries[:c.head]
	}
	if c.tail > 0 && len(entries) > c.tail {
		entries = entries[len(entries)-c.tail:]
	}
	printMarkdown(renderer.Records(entries, renderer.Options{
		Title:    title,
		Empty:    "No records yet.",
		Currency: cfg.Currency,
	}))
	return subcommands.ExitSuccess
}

// --- Edit Command ---

type editCmd struct {
	number      int
	date        string
	category    string
	amount      string
	description string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change a record" }
func (*editCmd) Usage() string {
	return `wallet edit -n <number> [-d <date>] [-c <category>] [-a <amount>] [-m <description>]

  Changes the record numbered -n (as shown by list). Only the given flags are
  changed.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.number, "n", 0, "Number of the record")
	f.StringVar(&c.date, "d", "", "New date (YYYY-MM-DD)")
	f.StringVar(&c.category, "c", "", "New category")
	f.StringVar(&c.amount, "a", "", "New amount")
	f.StringVar(&c.description, "m", "", "New description")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if c.number <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	_, store, err := openStore(args)
	if err != nil {
		return fail("%v", err)
	}
	r, err := store.Record(c.number - 1)
	if err != nil {
		return fail("%v", err)
	}

	var errs []error
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "d":
			on, err := date.Parse(c.date)
			errs = append(errs, err)
			r.Date = on
		case "c":
			r.Category = c.category
		case "a":
			amount, err := parseAmount(c.amount)
			errs = append(errs, err)
			r.Amount = amount.Decimal
		case "m":
			r.Description = c.description
		}
	})
	for _, err := range errs {
		if err != nil {
			return fail("%v", err)
		}
	}

	if err := store.Edit(c.number-1, r); err != nil {
		return fail("%v", err)
	}
	fmt.Fprintf(stdout, "Record #%d updated in %s\n", c.number, store.Path())
	return subcommands.ExitSuccess
}

// --- Delete Command ---

type deleteCmd struct {
	number int
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a record" }
func (*deleteCmd) Usage() string {
	return `wallet delete -n <number>

  Deletes the record numbered -n (as shown by list). Records after it are
  renumbered.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.number, "n", 0, "Number of the record")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if c.number <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	_, store, err := openStore(args)
	if err != nil {
		return fail("%v", err)
	}
	if err := store.Delete(c.number - 1); err != nil {
		return fail("%v", err)
	}
	fmt.Fprintf(stdout, "Record #%d deleted from %s\n", c.number, store.Path())
	return subcommands.ExitSuccess
}

// --- Search Command ---

type searchCmd struct {
	category string
	date     string
	amount   string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "find records by category, date or amount" }
func (*searchCmd) Usage() string {
	return `wallet search [-c <category>] [-d <date>] [-a <amount>]

  Lists the records matching every given criteria. Categories are compared
  ignoring case.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "Category")
	f.StringVar(&c.date, "d", "", "Date (YYYY-MM-DD)")
	f.StringVar(&c.amount, "a", "", "Amount")
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	filter := wallet.Filter{Category: c.category}
	var err error
	if c.date != "" {
		if filter.Date, err = date.Parse(c.date); err != nil {
			return fail("%v", err)
		}
	}
	if filter.Amount, err = parseAmount(c.amount); err != nil {
		return fail("%v", err)
	}

	cfg, store, err := openStore(args)
	if err != nil {
		return fail("%v", err)
	}
	printMarkdown(renderer.Records(store.Search(filter), renderer.Options{
		Empty:    "No records found.",
		Currency: cfg.Currency,
	}))
	return subcommands.ExitSuccess
}

// --- Balance Command ---

type balanceCmd struct {
	period string
	on     string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "show total income, total expense and balance" }
func (*balanceCmd) Usage() string {
	return `wallet balance [-p <period>] [-on <date>]

  Shows the total of income records, the total of expense records and the
  balance (income - expense), for all records or for a period.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Period (day, week, month, quarter, year)")
	f.StringVar(&c.on, "on", "", "Date within the period, defaults to today")
}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	keep, title, err := periodFilter(c.period, c.on)
	if err != nil {
		return fail("%v", err)
	}
	cfg, store, err := openStore(args)
	if err != nil {
		return fail("%v", err)
	}
	var records []wallet.Record
	for _, e := range store.Select(keep) {
		records = append(records, e.Record)
	}
	printMarkdown(renderer.Finances(wallet.Summarize(records), renderer.Options{
		Title:    title,
		Currency: cfg.Currency,
	}))
	return subcommands.ExitSuccess
}
