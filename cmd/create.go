package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/grivet/tabs"
)

type createCmd struct {
	name    string
	reasons bool
	changes bool
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create a new empty tab" }
func (*createCmd) Usage() string {
	return `tbs create -t <name> [-reasons] [-changes]

  Creates a new tab with a zero total and no entries:
  - t: The tab name (e.g., "Groceries"). Must be unique, it is also the file name.
  - reasons: Record a free-text reason with every entry.
  - changes: Keep an append-only log of every change to the total.

Usage Examples:
# Create a plain tab.
$ tbs create -t Groceries

# Create a tab that records reasons and a change log.
$ tbs create -t "Road Trip" -reasons -changes

`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "t", "", "Tab name (required)")
	f.BoolVar(&c.reasons, "reasons", false, "Record a reason for each entry")
	f.BoolVar(&c.changes, "changes", false, "Keep a log of every change to the total")
}

func (c *createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: the -t flag is required.")
		return subcommands.ExitUsageError
	}

	var opts []tabs.Option
	if c.reasons {
		opts = append(opts, tabs.WithReasons())
	}
	if c.changes {
		opts = append(opts, tabs.WithChangeLog())
	}

	ledger, err := tabs.New(c.name, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating tab: %v\n", err)
		return subcommands.ExitUsageError
	}

	collection, store := loadCollection()
	if err := collection.Add(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := store.SaveAll(collection); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving tabs: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Successfully created tab %q.\n", c.name)
	return subcommands.ExitSuccess
}
