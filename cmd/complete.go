package cmd

import (
	"flag"

	"github.com/etnz/wallet/date"
	"github.com/etnz/wallet/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the wallet command line, built
// from the global flags and the registered subcommands.
//
// Completion is installed with COMP_INSTALL=1 wallet.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, b := range builtins {
		root.Sub[b] = &complete.Command{}
	}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{Flags: flagPredictors(fs)}
	}
	if topics, err := docs.All(); err == nil {
		root.Sub["topic"].Args = predict.Set(append(topics, "*"))
	}
	return root
}

// flagPredictors predicts the values of the flags in fs.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		flags[f.Name] = predictFlag(f)
	})
	return flags
}

func predictFlag(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch f.Name {
	case "env", "file":
		return predict.Files("*")
	case "currency":
		return predict.Set{"USD", "EUR", "GBP", "JPY", "CHF"}
	case "p":
		return predict.Set(date.Periods)
	case "c":
		return predict.Set{"income", "expense"}
	default:
		return predict.Something
	}
}
