package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type showCmd struct {
	tab     string
	changes bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show a tab's entries and total" }
func (*showCmd) Usage() string {
	return `tbs show -t <tab> [-changes]

  Shows every entry of a tab in insertion order, with the index used by the
  edit and remove commands, followed by the running total. With -changes the
  tab's change log is shown too, when the tab keeps one.

Usage Examples:
$ tbs show -t Groceries

`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tab, "t", "", "Tab name (required)")
	f.BoolVar(&c.changes, "changes", false, "Also show the change log")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.tab == "" {
		fmt.Fprintln(os.Stderr, "Error: the -t flag is required.")
		return subcommands.ExitUsageError
	}

	collection, _ := loadCollection()
	ledger := collection.Find(c.tab)
	if ledger == nil {
		fmt.Fprintf(os.Stderr, "Error: tab %q does not exist.\n", c.tab)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", ledger.Name())

	if ledger.Len() == 0 {
		b.WriteString("No entries yet.\n")
	} else if ledger.RecordsReasons() {
		b.WriteString("| # | Amount | Reason |\n")
		b.WriteString("|---:|---:|---|\n")
		for i, e := range ledger.Entries() {
			fmt.Fprintf(&b, "| %d | %s | %s |\n", i, e.Amount.Fixed(), e.Reason)
		}
	} else {
		b.WriteString("| # | Amount |\n")
		b.WriteString("|---:|---:|\n")
		for i, e := range ledger.Entries() {
			fmt.Fprintf(&b, "| %d | %s |\n", i, e.Amount.Fixed())
		}
	}

	fmt.Fprintf(&b, "\n**Total: %s**\n", ledger.FormattedTotal())

	if c.changes {
		if !ledger.RecordsChanges() {
			fmt.Fprintf(&b, "\nThis tab keeps no change log.\n")
		} else {
			b.WriteString("\n## Changes\n\n")
			for _, delta := range ledger.Changes() {
				fmt.Fprintf(&b, "- %s\n", delta.Fixed())
			}
		}
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
