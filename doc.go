// Package tabs provides the data model and persistence for a local-first,
// single-user expense tracker organized as named "tabs": spending categories
// or people, each accumulating a running total from an ordered sequence of
// signed amount entries.
//
// The core functionalities include:
//   - Ledger: one tab's identity, running total and entries, with optional
//     per-entry reasons and an append-only log of total changes. Pure data
//     and arithmetic, no I/O.
//   - Collection: the in-memory set of ledgers, always sorted by name.
//   - Store: file persistence under an explicit root directory, either one
//     JSON file per ledger or one JSON array for the whole collection, with
//     soft-failing batch loads and saves and a reconciliation pass that makes
//     deletions durable.
//
// This package serves as the foundational logic for the `tbs` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package tabs
