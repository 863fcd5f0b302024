package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
	"github.com/grivet/tabs"
)

type editCmd struct {
	tab string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "replace an entry's amount by index" }
func (*editCmd) Usage() string {
	return `tbs edit -t <tab> <index> <amount>

  Replaces the entry at the given index (as shown by "tbs show") with a new
  amount. The difference is applied to the running total; a change log, when
  kept, records that difference.

Usage Examples:
# The first entry was 10.00, make it 15.00.
$ tbs edit -t Groceries 0 15.00

`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tab, "t", "", "Tab name (required)")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.tab == "" || f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: the -t flag, an index and an amount are required.")
		return subcommands.ExitUsageError
	}

	index, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing index %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}
	amount, err := tabs.ParseAmount(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", f.Arg(1), err)
		return subcommands.ExitUsageError
	}

	collection, store := loadCollection()
	ledger := collection.Find(c.tab)
	if ledger == nil {
		fmt.Fprintf(os.Stderr, "Error: tab %q does not exist.\n", c.tab)
		return subcommands.ExitFailure
	}

	if err := ledger.Update(index, amount); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := store.SaveAll(collection); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving tabs: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ %s: entry %d is now %s, total is %s.\n", c.tab, index, amount.Fixed(), ledger.FormattedTotal())
	return subcommands.ExitSuccess
}
