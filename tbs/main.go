package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/grivet/tabs/cmd"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// A .env file can provide TABS_DIR and TABS_LAYOUT; a missing file is
	// not an error.
	godotenv.Load()

	// Shell completion. Returns immediately unless invoked by the shell.
	completion().Complete("tbs")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	tabFlags := map[string]complete.Predictor{"t": predict.Something}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"create": {Flags: map[string]complete.Predictor{
				"t":       predict.Something,
				"reasons": predict.Nothing,
				"changes": predict.Nothing,
			}},
			"add": {Flags: map[string]complete.Predictor{
				"t":   predict.Something,
				"r":   predict.Something,
				"sub": predict.Nothing,
			}},
			"edit":   {Flags: tabFlags},
			"remove": {Flags: tabFlags},
			"delete": {Flags: tabFlags},
			"show": {Flags: map[string]complete.Predictor{
				"t":       predict.Something,
				"changes": predict.Nothing,
			}},
			"list":  {},
			"topic": {Args: predict.Set{"tabs", "storage", "*"}},
		},
		Flags: map[string]complete.Predictor{
			"dir":    predict.Dirs("*"),
			"single": predict.Nothing,
		},
	}
}
