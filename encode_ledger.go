package tabs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ledgerRecord mirrors the persisted form of one ledger. The reasons and
// totalChanges fields are pointers so that an absent field (feature off) can
// be told apart from an empty one (feature on, no entries yet).
type ledgerRecord struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Total   Amount    `json:"totalAmount"`
	Entries []Amount  `json:"expenses"`
	Reasons *[]string `json:"reasons"`
	Changes *[]Amount `json:"totalChanges"`
}

// MarshalJSON implements the json.Marshaler interface for Ledger. Keys are
// written in a canonical order so that saved files diff cleanly.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", l.id)
	w.Append("name", l.name)
	w.Append("totalAmount", l.total)
	w.Append("expenses", l.entries)
	if l.withReasons {
		w.Append("reasons", l.reasons)
	}
	if l.withChanges {
		w.Append("totalChanges", l.changes)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Ledger. The
// presence of the optional fields re-enables the matching feature, so a
// decoded ledger behaves exactly like the one that was saved.
//
// The persisted total is taken as-is, not recomputed: files written by
// earlier versions of the application may carry a total that drifted from
// the entry sum, and silently rewriting it would hide that history.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var rec ledgerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	if err := validateName(rec.Name); err != nil {
		return err
	}
	if rec.Reasons != nil && len(*rec.Reasons) != len(rec.Entries) {
		return fmt.Errorf("ledger %q: %d reasons for %d entries", rec.Name, len(*rec.Reasons), len(rec.Entries))
	}

	l.id = rec.ID
	if l.id == "" {
		// Files written before ledgers carried an identity get a fresh one.
		l.id = uuid.NewString()
	}
	l.name = rec.Name
	l.total = rec.Total
	l.entries = rec.Entries
	if l.entries == nil {
		l.entries = make([]Amount, 0)
	}
	l.withReasons = rec.Reasons != nil
	l.reasons = nil
	if l.withReasons {
		l.reasons = *rec.Reasons
	}
	l.withChanges = rec.Changes != nil
	l.changes = nil
	if l.withChanges {
		l.changes = *rec.Changes
	}
	return nil
}

// EncodeLedger writes one ledger to w as a single JSON object followed by a
// newline.
func EncodeLedger(w io.Writer, l *Ledger) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("could not encode ledger %q: %w", l.Name(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("could not write ledger %q: %w", l.Name(), err)
	}
	return nil
}

// DecodeLedger reads one ledger from a single JSON object.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}
	l := new(Ledger)
	if err := json.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("could not decode ledger: %w", err)
	}
	return l, nil
}

// EncodeCollection writes the whole collection to w as one indented JSON
// array, the single-file layout.
func EncodeCollection(w io.Writer, c Collection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("could not encode collection: %w", err)
	}
	return nil
}

// DecodeCollection reads a JSON array of ledger records. A record that fails
// to decode is skipped, not fatal: the returned collection holds everything
// that parsed, sorted by name, and the returned error joins one entry per
// skipped record.
func DecodeCollection(r io.Reader) (Collection, error) {
	var raws []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return Collection{}, fmt.Errorf("could not decode collection: %w", err)
	}

	var c Collection
	var errs error
	for i, raw := range raws {
		l := new(Ledger)
		if err := json.Unmarshal(raw, l); err != nil {
			errs = errors.Join(errs, fmt.Errorf("skipping record %d: %w", i, err))
			continue
		}
		if err := c.Add(l); err != nil {
			errs = errors.Join(errs, fmt.Errorf("skipping record %d: %w", i, err))
		}
	}
	return c, errs
}
