package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

type menuCmd struct{}

func (*menuCmd) Name() string     { return "menu" }
func (*menuCmd) Synopsis() string { return "manage records from an interactive menu (default)" }
func (*menuCmd) Usage() string {
	return `wallet [menu]

  Shows a numbered menu to add, edit, delete, search and list records, and to
  show the balance. Every change is saved to the storage file immediately.
  This is the default command when none is given.
`
}

func (*menuCmd) SetFlags(f *flag.FlagSet) {}

func (*menuCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	cfg, store, err := openStore(args)
	if err != nil {
		return fail("%v", err)
	}
	session := NewSession(store, cfg, os.Stdin, stdout)
	session.Markdown = renderMarkdown
	if err := session.Run(); err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}
