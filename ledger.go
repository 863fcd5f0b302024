package tabs

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidName is returned when a ledger is created with a name that
// cannot serve as a human label and a file key at the same time.
var ErrInvalidName = errors.New("invalid ledger name")

// ErrDuplicateName is returned when a ledger is added to a collection that
// already holds a ledger with the same name.
var ErrDuplicateName = errors.New("duplicate ledger name")

// IndexError reports an entry index outside the ledger's current range.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("entry index %d out of range [0,%d)", e.Index, e.Len)
}

// Ledger is one named tab: a running total over an ordered list of signed
// amount entries. Entries keep their insertion order and are addressed by
// index. A ledger optionally records a free-text reason per entry and an
// append-only log of every net change applied to its total; both features
// are selected at creation time and preserved across encode/decode.
//
// The total always equals the sum of the entries. Add and Update maintain
// it incrementally; Remove recomputes it from the remaining entries.
type Ledger struct {
	id      string
	name    string
	total   Amount
	entries []Amount
	reasons []string // index-aligned with entries when withReasons
	changes []Amount // chronological, append-only, when withChanges

	withReasons bool
	withChanges bool
}

// Option configures a ledger at creation time.
type Option func(*Ledger)

// WithReasons makes the ledger record a free-text reason for each entry,
// index-aligned with the entries.
func WithReasons() Option {
	return func(l *Ledger) { l.withReasons = true }
}

// WithChangeLog makes the ledger keep an append-only log of every non-zero
// net delta applied to its total.
func WithChangeLog() Option {
	return func(l *Ledger) { l.withChanges = true }
}

// New creates an empty ledger with a fresh identity, a zero total and no
// entries. The name is both the human-facing label and the persistence file
// key, so it must be non-empty and must not contain path elements.
func New(name string, opts ...Option) (*Ledger, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	l := &Ledger{
		id:      uuid.NewString(),
		name:    name,
		entries: make([]Amount, 0),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.withReasons {
		l.reasons = make([]string, 0)
	}
	if l.withChanges {
		l.changes = make([]Amount, 0)
	}
	return l, nil
}

func validateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("name is empty: %w", ErrInvalidName)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("name %q contains a path separator: %w", name, ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("name %q is a path element: %w", name, ErrInvalidName)
	}
	return nil
}

// ID returns the ledger's unique identifier.
func (l *Ledger) ID() string { return l.id }

// Name returns the ledger's name.
func (l *Ledger) Name() string { return l.name }

// Total returns the ledger's running total.
func (l *Ledger) Total() Amount { return l.total }

// FormattedTotal renders the running total with exactly two decimal places.
func (l *Ledger) FormattedTotal() string { return l.total.Fixed() }

// Len returns the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// RecordsReasons reports whether the ledger records a reason per entry.
func (l *Ledger) RecordsReasons() bool { return l.withReasons }

// RecordsChanges reports whether the ledger keeps a change log.
func (l *Ledger) RecordsChanges() bool { return l.withChanges }

// Entry is one signed entry and its reason, as yielded by Entries.
// Reason is empty when the ledger does not record reasons.
type Entry struct {
	Amount Amount
	Reason string
}

// Entry returns the entry at the given index.
func (l *Ledger) Entry(index int) (Entry, error) {
	if index < 0 || index >= len(l.entries) {
		return Entry{}, &IndexError{Index: index, Len: len(l.entries)}
	}
	e := Entry{Amount: l.entries[index]}
	if l.withReasons {
		e.Reason = l.reasons[index]
	}
	return e, nil
}

// Entries returns an iterator over the entries in insertion order.
func (l *Ledger) Entries() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, amount := range l.entries {
			e := Entry{Amount: amount}
			if l.withReasons {
				e.Reason = l.reasons[i]
			}
			if !yield(i, e) {
				return
			}
		}
	}
}

// Changes returns a copy of the change log, oldest first. It is empty when
// the ledger does not keep a change log.
func (l *Ledger) Changes() []Amount {
	return slices.Clone(l.changes)
}

// Add appends a signed entry and adds it to the running total. The reason is
// recorded only when the ledger records reasons. There is no sign check: a
// subtraction is an addition of a negative amount.
func (l *Ledger) Add(amount Amount, reason string) {
	l.entries = append(l.entries, amount)
	if l.withReasons {
		l.reasons = append(l.reasons, reason)
	}
	l.total = l.total.Add(amount)
	l.logChange(amount)
}

// Update replaces the entry at index with a new amount and applies the
// difference to the running total. The change log, when kept, records the
// delta, not the new amount.
func (l *Ledger) Update(index int, amount Amount) error {
	if index < 0 || index >= len(l.entries) {
		return &IndexError{Index: index, Len: len(l.entries)}
	}
	delta := amount.Sub(l.entries[index])
	l.entries[index] = amount
	l.total = l.total.Add(delta)
	l.logChange(delta)
	return nil
}

// Remove deletes the entries at the given indices, shrinking the reasons in
// lock-step to keep them aligned. All indices are checked before anything is
// mutated; on error the ledger is unchanged. The total is recomputed from
// the remaining entries and the net delta is appended to the change log.
func (l *Ledger) Remove(indices ...int) error {
	for _, index := range indices {
		if index < 0 || index >= len(l.entries) {
			return &IndexError{Index: index, Len: len(l.entries)}
		}
	}

	// Delete from highest to lowest so earlier deletions do not shift the
	// remaining indices.
	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	before := l.total
	for i := len(sorted) - 1; i >= 0; i-- {
		index := sorted[i]
		l.entries = slices.Delete(l.entries, index, index+1)
		if l.withReasons {
			l.reasons = slices.Delete(l.reasons, index, index+1)
		}
	}

	var total Amount
	for _, amount := range l.entries {
		total = total.Add(amount)
	}
	l.total = total
	l.logChange(total.Sub(before))
	return nil
}

// logChange appends a non-zero delta to the change log.
func (l *Ledger) logChange(delta Amount) {
	if !l.withChanges || delta.IsZero() {
		return
	}
	l.changes = append(l.changes, delta)
}

// Equal reports whether two ledgers hold the same identity, entries,
// reasons, change log and configuration.
func (l *Ledger) Equal(o *Ledger) bool {
	if l == nil || o == nil {
		return l == o
	}
	return l.id == o.id &&
		l.name == o.name &&
		l.total.Equal(o.total) &&
		l.withReasons == o.withReasons &&
		l.withChanges == o.withChanges &&
		slices.EqualFunc(l.entries, o.entries, Amount.Equal) &&
		slices.Equal(l.reasons, o.reasons) &&
		slices.EqualFunc(l.changes, o.changes, Amount.Equal)
}

// Collection is the in-memory set of ledgers owned by one session. It is
// always sorted by name, byte-wise and case-sensitive, so that its order
// never depends on directory enumeration order.
type Collection []*Ledger

// Sort restores the name ordering invariant in place.
func (c Collection) Sort() {
	slices.SortFunc(c, func(a, b *Ledger) int { return strings.Compare(a.name, b.name) })
}

// Find returns the ledger with the given name, or nil.
func (c Collection) Find(name string) *Ledger {
	for _, l := range c {
		if l.name == name {
			return l
		}
	}
	return nil
}

// Names returns the ledger names in collection order.
func (c Collection) Names() []string {
	names := make([]string, 0, len(c))
	for _, l := range c {
		names = append(names, l.name)
	}
	return names
}

// Add inserts a ledger keeping the collection sorted by name. Two ledgers
// cannot share a name: they would collide on the same file key.
func (c *Collection) Add(l *Ledger) error {
	if c.Find(l.name) != nil {
		return fmt.Errorf("ledger %q: %w", l.name, ErrDuplicateName)
	}
	at, _ := slices.BinarySearchFunc(*c, l, func(a, b *Ledger) int {
		return strings.Compare(a.name, b.name)
	})
	*c = slices.Insert(*c, at, l)
	return nil
}

// Delete removes the ledger with the given name from the collection and
// reports whether it was present. The removal is durable only after the
// caller saves and reconciles the store.
func (c *Collection) Delete(name string) bool {
	for i, l := range *c {
		if l.name == name {
			*c = slices.Delete(*c, i, i+1)
			return true
		}
	}
	return false
}
