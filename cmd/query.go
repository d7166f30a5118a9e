package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/etnz/wallet"
	"github.com/google/subcommands"
)

type queryCmd struct {
	compact bool
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on the records" }
func (*queryCmd) Usage() string {
	return `wallet query [-compact] <jsonpath>

  Evaluates a JSONPath expression against the records, seen as a JSON array
  of objects with "date", "category", "amount" and "description" keys, and
  prints the result as JSON.

Usage Examples:
# All amounts.
$ wallet query '$[*].amount'

# Descriptions of the expenses.
$ wallet query '$[?(@.category == "expense")].description'

`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.compact, "compact", false, "Print the result on a single line")
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	_, store, err := openStore(args)
	if err != nil {
		return fail("%v", err)
	}
	val, err := wallet.Query(store.Records(), f.Arg(0))
	if err != nil {
		return fail("%v", err)
	}

	var out []byte
	if c.compact {
		out, err = json.Marshal(val)
	} else {
		out, err = json.MarshalIndent(val, "", "  ")
	}
	if err != nil {
		return fail("could not encode result: %v", err)
	}
	fmt.Fprintln(stdout, string(out))
	return subcommands.ExitSuccess
}
