package tabs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Layout selects how a Store maps ledgers to files.
type Layout int

const (
	// FilePerLedger stores each ledger in its own "<name>.json" file.
	FilePerLedger Layout = iota
	// SingleFile stores the whole collection as one JSON array in "tabs.json".
	SingleFile
)

func (l Layout) String() string {
	switch l {
	case FilePerLedger:
		return "file-per-ledger"
	case SingleFile:
		return "single-file"
	default:
		return "unknown"
	}
}

// ParseLayout parses a string into a Layout.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "file-per-ledger":
		return FilePerLedger, nil
	case "single-file":
		return SingleFile, nil
	default:
		return 0, fmt.Errorf("unknown storage layout: %q", s)
	}
}

// collectionFile is the single-file layout's file name.
const collectionFile = "tabs.json"

// ledgerExt is the extension of per-ledger files; the base name is the
// ledger name, which is how load, save and reconcile agree on the key.
const ledgerExt = ".json"

// Store persists a collection of ledgers under one root directory. The root
// is explicit configuration: nothing is resolved from ambient state, so a
// test can point a Store at a temporary directory.
//
// All Store methods are best-effort batch operations: an individual file
// failure never aborts the rest of the batch. Failures are reported joined
// in the returned error and the caller decides whether to log, retry or
// surface them.
type Store struct {
	dir    string
	layout Layout
}

// NewStore creates a store rooted at dir using the given layout. The
// directory is created on the first save.
func NewStore(dir string, layout Layout) *Store {
	return &Store{dir: dir, layout: layout}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

// Layout returns the store's layout.
func (s *Store) Layout() Layout { return s.layout }

// ledgerPath derives the file path for a ledger name.
func (s *Store) ledgerPath(name string) string {
	return filepath.Join(s.dir, name+ledgerExt)
}

// Save writes a single ledger to disk, fully replacing any previous version.
// Under the single-file layout an individual ledger cannot be written alone;
// use SaveAll instead.
func (s *Store) Save(l *Ledger) error {
	if s.layout == SingleFile {
		return fmt.Errorf("cannot save ledger %q alone under the %s layout", l.Name(), s.layout)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("could not create storage directory %q: %w", s.dir, err)
	}
	return writeAtomic(s.ledgerPath(l.Name()), func(f *os.File) error {
		return EncodeLedger(f, l)
	})
}

// SaveAll writes every ledger in the collection. A failed write leaves the
// previous on-disk version of that one ledger intact and does not prevent
// the remaining writes; every failure is reported in the joined error.
func (s *Store) SaveAll(c Collection) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("could not create storage directory %q: %w", s.dir, err)
	}

	if s.layout == SingleFile {
		return writeAtomic(filepath.Join(s.dir, collectionFile), func(f *os.File) error {
			return EncodeCollection(f, c)
		})
	}

	var errs error
	for _, l := range c {
		if err := s.Save(l); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// LoadAll reads every persisted ledger and returns them sorted by name.
//
// LoadAll fails soft: a file that cannot be read or parsed is skipped, and a
// missing or unreadable directory yields an empty collection. The returned
// collection is always usable; the joined error reports everything that was
// skipped so the caller can decide what to do about it.
func (s *Store) LoadAll() (Collection, error) {
	if s.layout == SingleFile {
		return s.loadCollectionFile()
	}

	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: nothing saved yet.
			return Collection{}, nil
		}
		return Collection{}, fmt.Errorf("could not read storage directory %q: %w", s.dir, err)
	}

	var c Collection
	var errs error
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ledgerExt) {
			continue
		}
		l, err := s.loadLedgerFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if err := c.Add(l); err != nil {
			errs = errors.Join(errs, fmt.Errorf("skipping %q: %w", entry.Name(), err))
		}
	}
	return c, errs
}

// loadLedgerFile opens and decodes one per-ledger file.
func (s *Store) loadLedgerFile(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("skipping ledger file %q: %w", path, err)
	}
	defer f.Close()

	l, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("skipping ledger file %q: %w", path, err)
	}
	return l, nil
}

// loadCollectionFile reads the single-file layout.
func (s *Store) loadCollectionFile() (Collection, error) {
	f, err := os.Open(filepath.Join(s.dir, collectionFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Collection{}, nil
		}
		return Collection{}, fmt.Errorf("could not open %q: %w", collectionFile, err)
	}
	defer f.Close()
	return DecodeCollection(f)
}

// ReconcileDeleted makes in-memory deletions durable: it removes every
// on-disk file whose derived name matches no ledger in current. Deleting a
// ledger from the collection alone does not touch the disk; callers must run
// this pass (after SaveAll) for the deletion to survive a restart.
func (s *Store) ReconcileDeleted(current Collection) error {
	if s.layout == SingleFile {
		// The collection file is rewritten whole; saving it is the
		// reconciliation.
		return s.SaveAll(current)
	}

	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("could not read storage directory %q: %w", s.dir, err)
	}

	var errs error
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ledgerExt) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ledgerExt)
		if current.Find(name) != nil {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			errs = errors.Join(errs, fmt.Errorf("could not delete stale ledger file %q: %w", entry.Name(), err))
		}
	}
	return errs
}

// writeAtomic writes a file through a temporary sibling and a rename, so a
// crash mid-write never leaves a truncated file behind.
func writeAtomic(path string, write func(*os.File) error) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", tmp, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not close %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not replace %q: %w", path, err)
	}
	return nil
}
