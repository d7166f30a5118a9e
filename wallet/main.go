package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/wallet/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Completion().Complete("wallet")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	cfg, err := cmd.LoadConfig()
	cmd.SetupLogging(cfg.Level())

	// Without subcommand, the interactive menu is shown.
	if flag.NArg() == 0 {
		flag.CommandLine.Parse(append(os.Args[1:], "menu"))
	}

	if name := flag.Arg(0); !cmd.IsCommand(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:], cfg); found {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background(), cfg, err)))
}
