package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list every tab with its total" }
func (*listCmd) Usage() string {
	return `tbs list

  Lists every tab, sorted by name, with its entry count and running total.

`
}

func (*listCmd) SetFlags(*flag.FlagSet) {}

func (*listCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	collection, _ := loadCollection()

	if len(collection) == 0 {
		fmt.Println("No tabs yet. Create one with: tbs create -t <name>")
		return subcommands.ExitSuccess
	}

	var b strings.Builder
	b.WriteString("# Tabs\n\n")
	b.WriteString("| Tab | Entries | Total |\n")
	b.WriteString("|---|---:|---:|\n")
	for _, ledger := range collection {
		fmt.Fprintf(&b, "| %s | %d | %s |\n", ledger.Name(), ledger.Len(), ledger.FormattedTotal())
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
