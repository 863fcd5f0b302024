package tabs

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// seedCollection builds a small collection, deliberately added out of name
// order.
func seedCollection(t *testing.T) Collection {
	t.Helper()
	var c Collection
	for _, name := range []string{"Bob", "Alice"} {
		l, err := New(name, WithReasons())
		if err != nil {
			t.Fatalf("New(%q) returned an unexpected error: %v", name, err)
		}
		l.Add(A(12.50), "groceries")
		l.Add(A(-2.00), "refund")
		if err := c.Add(l); err != nil {
			t.Fatalf("Add(%q) returned an unexpected error: %v", name, err)
		}
	}
	return c
}

func TestStore_SaveAllLoadAll(t *testing.T) {
	for _, layout := range []Layout{FilePerLedger, SingleFile} {
		t.Run(layout.String(), func(t *testing.T) {
			dir := t.TempDir()
			store := NewStore(dir, layout)
			c := seedCollection(t)

			if err := store.SaveAll(c); err != nil {
				t.Fatalf("SaveAll() returned an unexpected error: %v", err)
			}

			loaded, err := store.LoadAll()
			if err != nil {
				t.Fatalf("LoadAll() returned an unexpected error: %v", err)
			}

			if got, want := loaded.Names(), []string{"Alice", "Bob"}; !slices.Equal(got, want) {
				t.Errorf("Names() = %v, want %v", got, want)
			}
			for i := range c {
				if !loaded[i].Equal(c[i]) {
					t.Errorf("ledger %d mismatch.\nGot:  %+v\nWant: %+v", i, loaded[i], c[i])
				}
			}
		})
	}
}

func TestStore_FilePerLedgerNaming(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, FilePerLedger)
	c := seedCollection(t)

	if err := store.SaveAll(c); err != nil {
		t.Fatalf("SaveAll() returned an unexpected error: %v", err)
	}

	for _, name := range []string{"Alice.json", "Bob.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected file %q: %v", name, err)
		}
	}
}

func TestStore_LoadAll_MissingDirIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never-created"), FilePerLedger)

	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() returned an unexpected error: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("loaded %d ledgers from a missing directory, want 0", len(loaded))
	}
}

func TestStore_LoadAll_SkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, FilePerLedger)
	c := seedCollection(t)
	if err := store.SaveAll(c); err != nil {
		t.Fatalf("SaveAll() returned an unexpected error: %v", err)
	}

	// One corrupt file must not fail the whole load.
	if err := os.WriteFile(filepath.Join(dir, "Broken.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Unrelated files are ignored entirely.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadAll()
	if err == nil {
		t.Error("LoadAll() reported no error for the corrupt file")
	}
	if got, want := loaded.Names(), []string{"Alice", "Bob"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestStore_SortedRegardlessOfDiskOrder(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, FilePerLedger)

	// Write the files directly, in an order the directory may or may not
	// preserve; the loaded collection must come back sorted by name.
	for _, name := range []string{"Zoe", "Mia", "Abe"} {
		record := `{"id":"` + name + `","name":"` + name + `","totalAmount":0,"expenses":[]}`
		if err := os.WriteFile(filepath.Join(dir, name+".json"), []byte(record), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() returned an unexpected error: %v", err)
	}
	if got, want := loaded.Names(), []string{"Abe", "Mia", "Zoe"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestStore_ReconcileDeleted(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, FilePerLedger)

	var c Collection
	trip, _ := New("Trip")
	keep, _ := New("Keep")
	c.Add(trip)
	c.Add(keep)
	if err := store.SaveAll(c); err != nil {
		t.Fatalf("SaveAll() returned an unexpected error: %v", err)
	}

	// Deleting in memory alone is not durable.
	c.Delete("Trip")
	if _, err := os.Stat(filepath.Join(dir, "Trip.json")); err != nil {
		t.Fatalf("Trip.json should still exist before reconciliation: %v", err)
	}

	if err := store.ReconcileDeleted(c); err != nil {
		t.Fatalf("ReconcileDeleted() returned an unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "Trip.json")); !os.IsNotExist(err) {
		t.Errorf("Trip.json still exists after reconciliation")
	}

	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() returned an unexpected error: %v", err)
	}
	if loaded.Find("Trip") != nil {
		t.Error("Trip came back after reconciliation")
	}
	if loaded.Find("Keep") == nil {
		t.Error("Keep was lost during reconciliation")
	}
}

func TestStore_ReconcileDeleted_SingleFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, SingleFile)

	var c Collection
	trip, _ := New("Trip")
	c.Add(trip)
	if err := store.SaveAll(c); err != nil {
		t.Fatalf("SaveAll() returned an unexpected error: %v", err)
	}

	c.Delete("Trip")
	if err := store.ReconcileDeleted(c); err != nil {
		t.Fatalf("ReconcileDeleted() returned an unexpected error: %v", err)
	}

	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() returned an unexpected error: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("loaded %d ledgers after reconciliation, want 0", len(loaded))
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, FilePerLedger)

	l, _ := New("Trip")
	l.Add(A(10), "")
	if err := store.Save(l); err != nil {
		t.Fatalf("Save() returned an unexpected error: %v", err)
	}

	l.Add(A(5), "")
	if err := store.Save(l); err != nil {
		t.Fatalf("second Save() returned an unexpected error: %v", err)
	}

	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() returned an unexpected error: %v", err)
	}
	got := loaded.Find("Trip")
	if got == nil {
		t.Fatal("Trip not found after save")
	}
	if want := "15.00"; got.FormattedTotal() != want {
		t.Errorf("total = %q, want %q", got.FormattedTotal(), want)
	}
}

func TestStore_SaveRejectsSingleFileLayout(t *testing.T) {
	store := NewStore(t.TempDir(), SingleFile)
	l, _ := New("Trip")
	if err := store.Save(l); err == nil {
		t.Error("Save() under single-file layout succeeded, want error")
	}
}

func TestParseLayout(t *testing.T) {
	for _, layout := range []Layout{FilePerLedger, SingleFile} {
		parsed, err := ParseLayout(layout.String())
		if err != nil {
			t.Fatalf("ParseLayout(%q) returned an unexpected error: %v", layout, err)
		}
		if parsed != layout {
			t.Errorf("ParseLayout(%q) = %v, want %v", layout, parsed, layout)
		}
	}
	if _, err := ParseLayout("sqlite"); err == nil {
		t.Error("ParseLayout(sqlite) succeeded, want error")
	}
}
