package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct {
	sort bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the storage file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `wallet fmt [-sort]

  Validates and formats the storage file. This command reads all records and
  writes them back in canonical form: ISO dates and plain decimal amounts.
  Categories and descriptions are kept as they are. With -sort, records are
  also sorted by date, records on the same day keeping their order.

Usage Examples:
# Rewrites the storage file in place.
$ wallet fmt -sort

`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.sort, "sort", false, "Sort records by date")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	_, store, err := openStore(args)
	if err != nil {
		return fail("could not load records: %v", err)
	}
	if c.sort {
		err = store.Sort()
	} else {
		err = store.Save()
	}
	if err != nil {
		return fail("could not format %q: %v", store.Path(), err)
	}
	fmt.Fprintf(os.Stderr, "Formatted %d records in %s.\n", store.Len(), store.Path())
	return subcommands.ExitSuccess
}
