package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/grivet/tabs"
)

type addCmd struct {
	tab      string
	reason   string
	subtract bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "append a signed expense entry to a tab" }
func (*addCmd) Usage() string {
	return `tbs add -t <tab> [-r <reason>] [-sub] <amount>

  Appends an entry to the tab and adds it to the running total:
  - t: The tab name (required).
  - r: An optional reason, kept only by tabs created with -reasons.
  - sub: Flip the amount's sign; "subtract" is an addition of a negative amount.

Usage Examples:
# Add an expense.
$ tbs add -t Groceries -r "farmers market" 12.50

# Subtract a refund, the two forms are equivalent.
$ tbs add -t Groceries -sub 2.00
$ tbs add -t Groceries -- -2.00

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tab, "t", "", "Tab name (required)")
	f.StringVar(&c.reason, "r", "", "Reason for the entry")
	f.BoolVar(&c.subtract, "sub", false, "Subtract the amount instead of adding it")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.tab == "" || f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: the -t flag and exactly one amount are required.")
		return subcommands.ExitUsageError
	}

	amount, err := tabs.ParseAmount(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}
	if c.subtract {
		amount = amount.Neg()
	}

	collection, store := loadCollection()
	ledger := collection.Find(c.tab)
	if ledger == nil {
		fmt.Fprintf(os.Stderr, "Error: tab %q does not exist.\n", c.tab)
		return subcommands.ExitFailure
	}

	ledger.Add(amount, c.reason)

	if err := store.SaveAll(collection); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving tabs: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ %s: %s, total is now %s.\n", c.tab, amount.Fixed(), ledger.FormattedTotal())
	return subcommands.ExitSuccess
}
