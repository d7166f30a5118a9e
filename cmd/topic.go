package cmd

import (
	"context"
	"flag"

	"github.com/etnz/wallet/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `wallet topic [<topic>...]

Show documentation for the given topics, "*" shows them all.
Without topic, the list of topics is shown.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}

	doc, err := docs.Topics(topics...)
	if err != nil {
		return fail("reading doc: %v", err)
	}
	printMarkdown(doc)

	return subcommands.ExitSuccess
}
