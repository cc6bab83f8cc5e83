// Package opcode provides the immutable mnemonic-to-encoding mapping that
// Pass 1 and Pass 2 consult. The table is loaded once before assembly begins
// and is read-only thereafter; how it reached the program (a Go literal or a
// decoded TOML file) is not the core's concern.
package opcode

import "fmt"

// Format identifies one of the instruction formats a mnemonic may use.
type Format int

const (
	Format1 Format = 1
	Format2 Format = 2
	// Format3 covers plain format-3 instructions; an entry whose Formats
	// set contains Format3 is also eligible for Format 4 when the source
	// requests it with a "+" prefix.
	Format3 Format = 3
)

// Entry describes one opcode table row: the mnemonic's byte value and the
// formats it may be assembled in.
type Entry struct {
	Mnemonic string
	Opcode   byte
	Formats  map[Format]bool
}

// Is3Or4 reports whether this entry is eligible for both format 3 and
// format 4 emission, the set spec.md calls "3/4".
func (e Entry) Is3Or4() bool {
	return e.Formats[Format3]
}

// Table is an immutable mnemonic -> Entry mapping.
type Table struct {
	entries map[string]Entry
}

// NewTable builds a Table from a pre-parsed mapping. This is the
// constructor the core actually depends on; DefaultTable and
// LoadTableTOML are two convenience ways of producing that mapping.
func NewTable(entries map[string]Entry) *Table {
	cp := make(map[string]Entry, len(entries))
	for k, v := range entries {
		cp[k] = v
	}
	return &Table{entries: cp}
}

// Lookup returns the entry for a mnemonic, if any.
func (t *Table) Lookup(mnemonic string) (Entry, bool) {
	e, ok := t.entries[mnemonic]
	return e, ok
}

// MustLookup is a convenience for call sites that have already verified
// the mnemonic exists (e.g. after a prior Lookup).
func (t *Table) MustLookup(mnemonic string) Entry {
	e, ok := t.entries[mnemonic]
	if !ok {
		panic(fmt.Sprintf("opcode: mnemonic %q not in table", mnemonic))
	}
	return e
}

// Len returns the number of mnemonics in the table.
func (t *Table) Len() int {
	return len(t.entries)
}
