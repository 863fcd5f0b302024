// Package cmd implements the CLI application to manage expense tabs.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/grivet/tabs"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&createCmd{}, "tabs")
	c.Register(&deleteCmd{}, "tabs")
	c.Register(&listCmd{}, "tabs")
	c.Register(&showCmd{}, "tabs")

	c.Register(&addCmd{}, "entries")
	c.Register(&editCmd{}, "entries")
	c.Register(&removeCmd{}, "entries")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storageDir = flag.String("dir", "", "Path to the folder holding the tab files (defaults to $TABS_DIR, then .tabs)")
var singleFile = flag.Bool("single", false, "Store the whole collection in one tabs.json file instead of one file per tab")

// resolveDir resolves the storage directory when the store is opened, not
// when the flag is defined: main loads the .env file after package init, so
// a TABS_DIR it provides must be read at use time.
func resolveDir() string {
	if *storageDir != "" {
		return *storageDir
	}
	if dir := os.Getenv("TABS_DIR"); dir != "" {
		return dir
	}
	return ".tabs"
}

// resolveLayout picks the storage layout: the -single flag forces the
// single-file layout, otherwise TABS_LAYOUT selects one by name.
func resolveLayout() tabs.Layout {
	if *singleFile {
		return tabs.SingleFile
	}
	if s := os.Getenv("TABS_LAYOUT"); s != "" {
		layout, err := tabs.ParseLayout(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v, using %s\n", err, tabs.FilePerLedger)
			return tabs.FilePerLedger
		}
		return layout
	}
	return tabs.FilePerLedger
}

// openStore builds the store from the app flags and the environment.
func openStore() *tabs.Store {
	return tabs.NewStore(resolveDir(), resolveLayout())
}

// loadCollection opens the store and loads every tab. Files the store had to
// skip are reported as warnings; the session continues with what loaded.
func loadCollection() (tabs.Collection, *tabs.Store) {
	store := openStore()
	collection, err := store.LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: some tabs could not be loaded: %v\n", err)
	}
	return collection, store
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering is not possible.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
