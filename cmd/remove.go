package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
)

type removeCmd struct {
	tab string
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove entries from a tab by index" }
func (*removeCmd) Usage() string {
	return `tbs remove -t <tab> <index>...

  Removes the entries at the given indices (as shown by "tbs show"). The
  running total is recomputed from the remaining entries.

Usage Examples:
# Remove the second and fourth entries.
$ tbs remove -t Groceries 1 3

`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tab, "t", "", "Tab name (required)")
}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.tab == "" || f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: the -t flag and at least one index are required.")
		return subcommands.ExitUsageError
	}

	indices := make([]int, 0, f.NArg())
	for _, arg := range f.Args() {
		index, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing index %q: %v\n", arg, err)
			return subcommands.ExitUsageError
		}
		indices = append(indices, index)
	}

	collection, store := loadCollection()
	ledger := collection.Find(c.tab)
	if ledger == nil {
		fmt.Fprintf(os.Stderr, "Error: tab %q does not exist.\n", c.tab)
		return subcommands.ExitFailure
	}

	if err := ledger.Remove(indices...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := store.SaveAll(collection); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving tabs: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ %s: removed %d entries, total is now %s.\n", c.tab, len(indices), ledger.FormattedTotal())
	return subcommands.ExitSuccess
}
