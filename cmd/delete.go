package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type deleteCmd struct {
	tab string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a whole tab and its file" }
func (*deleteCmd) Usage() string {
	return `tbs delete -t <tab>

  Removes the tab from the collection and reconciles the storage directory so
  the deletion survives a restart.

Usage Examples:
$ tbs delete -t Trip

`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tab, "t", "", "Tab name (required)")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.tab == "" {
		fmt.Fprintln(os.Stderr, "Error: the -t flag is required.")
		return subcommands.ExitUsageError
	}

	collection, store := loadCollection()
	if !collection.Delete(c.tab) {
		fmt.Fprintf(os.Stderr, "Error: tab %q does not exist.\n", c.tab)
		return subcommands.ExitFailure
	}

	if err := store.SaveAll(collection); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving tabs: %v\n", err)
		return subcommands.ExitFailure
	}
	// Removing the tab from memory is not enough: its file must go too.
	if err := store.ReconcileDeleted(collection); err != nil {
		fmt.Fprintf(os.Stderr, "Error reconciling deleted tabs: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Successfully deleted tab %q.\n", c.tab)
	return subcommands.ExitSuccess
}
