// Package cmd implements the CLI application to manage a wallet.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"golang.org/x/term"
)

// Commands lists every wallet subcommand, with its help group.
var Commands = []struct {
	subcommands.Command
	Group string
}{
	{&menuCmd{}, "records"},
	{&addCmd{}, "records"},
	{&listCmd{}, "records"},
	{&editCmd{}, "records"},
	{&deleteCmd{}, "records"},
	{&searchCmd{}, "records"},
	{&balanceCmd{}, "records"},
	{&queryCmd{}, "records"},
	{&fmtCmd{}, "storage"},
	{&topicCmd{}, "help"},
}

// builtins are the commands provided by the subcommands package itself.
var builtins = []string{"help", "flags", "commands"}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	for _, cmd := range Commands {
		c.Register(cmd.Command, cmd.Group)
	}
}

// IsCommand reports whether name is a registered subcommand.
func IsCommand(name string) bool {
	for _, b := range builtins {
		if b == name {
			return true
		}
	}
	for _, cmd := range Commands {
		if cmd.Name() == name {
			return true
		}
	}
	return false
}

// stdout is where commands write their results.
var stdout io.Writer = os.Stdout

// printMarkdown prints md to stdout, formatted for the terminal when stdout is one.
func printMarkdown(md string) {
	fmt.Fprint(stdout, renderMarkdown(md))
}

// renderMarkdown renders md with glamour when stdout is a terminal. Otherwise
// md is returned unchanged, so that output can be piped or tested.
func renderMarkdown(md string) string {
	f, ok := stdout.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		slog.Debug("cannot create markdown renderer", "error", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		slog.Debug("cannot render markdown", "error", err)
		return md
	}
	return out
}

// fail prints an error to stderr and returns ExitFailure.
func fail(format string, a ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", a...)
	return subcommands.ExitFailure
}
