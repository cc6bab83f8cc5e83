// Package listing renders a Pass 1/Pass 2 result as the classic
// assembler listing: one row per source line, showing its address,
// assembled object code, and original text, plus a row per literal pool
// entry at the address it was placed.
package listing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sicxe-asm/core/assembler"
	"github.com/sicxe-asm/core/object"
)

// Entry is one listing row.
type Entry struct {
	LineNo  int
	Address uint32
	Code    []byte
	Source  string
	Literal bool // true for a synthesized literal-pool row
}

// Listing is the full rendered output for one assembled program: every
// control section's statements and literal pool entries, in address
// order within each section.
type Listing struct {
	Entries []Entry
}

// Build walks prog's control sections and assembles a Listing from their
// statements and placed literals, recovering each row's object code from
// obj's Text records. obj may be nil for a Pass-1-only listing, in which
// case every row's Code is empty.
func Build(prog *assembler.Program, obj *object.Program) *Listing {
	l := &Listing{}
	for i, cs := range prog.Sections {
		var rows []Entry
		for _, stmt := range cs.Stmts {
			rows = append(rows, Entry{
				LineNo:  stmt.LineNo,
				Address: stmt.Address,
				Source:  stmt.Raw,
			})
		}
		for _, lit := range cs.Literals.Placed() {
			rows = append(rows, Entry{
				Address: lit.Address,
				Source:  lit.Text,
				Literal: true,
			})
		}
		sort.SliceStable(rows, func(a, b int) bool { return rows[a].Address < rows[b].Address })

		if obj != nil && i < len(obj.Sections) {
			fillCode(rows, obj.Sections[i])
		}
		l.Entries = append(l.Entries, rows...)
	}
	return l
}

// fillCode recovers each row's object code from one control section's Text
// records. Pass 2 coalesces contiguous instructions into one Text record,
// so a single record commonly spans several listing rows; each row's
// slice runs from its own address to the next row's address (or the
// record's end, for the last row a record covers). Where several rows
// share one address (START or a label-only line before an instruction,
// END before a literal), only the last of them gets the code, so the
// non-emitting rows stay blank. Rows are scoped to a
// single section's own records so two sections both starting at address
// 0 can't be confused with each other.
func fillCode(rows []Entry, sec *object.Section) {
	type run struct {
		start uint32
		bytes []byte
	}
	var runs []run
	for _, tr := range sec.Text {
		runs = append(runs, run{start: tr.StartAddr, bytes: tr.Bytes})
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].start < runs[j].start })

	for i := range rows {
		e := &rows[i]
		if i+1 < len(rows) && rows[i+1].Address == e.Address {
			continue // a later row at the same address owns the code
		}
		for _, r := range runs {
			end := r.start + uint32(len(r.bytes))
			if e.Address < r.start || e.Address >= end {
				continue
			}
			sliceEnd := end
			if i+1 < len(rows) && rows[i+1].Address > e.Address && rows[i+1].Address < end {
				sliceEnd = rows[i+1].Address
			}
			e.Code = r.bytes[e.Address-r.start : sliceEnd-r.start]
			break
		}
	}
}

// Options controls the column layout Render uses.
type Options struct {
	LineColumn    int
	AddressColumn int
	CodeColumn    int
	SourceColumn  int
}

// DefaultOptions mirrors the column widths a classic two-pass assembler
// listing uses: a line number, a 4-digit hex address, then object code,
// then source.
func DefaultOptions() *Options {
	return &Options{
		LineColumn:    0,
		AddressColumn: 6,
		CodeColumn:    14,
		SourceColumn:  26,
	}
}

// Render formats the listing as text, one line per entry.
func (l *Listing) Render(opts *Options) string {
	if opts == nil || *opts == (Options{}) {
		opts = DefaultOptions()
	}
	var sb strings.Builder
	for _, e := range l.Entries {
		line := strings.Builder{}
		if e.Literal {
			line.WriteString(strings.Repeat(" ", 4))
		} else {
			fmt.Fprintf(&line, "%4d", e.LineNo)
		}
		padToColumn(&line, opts.AddressColumn)
		fmt.Fprintf(&line, "%04X", e.Address)
		padToColumn(&line, opts.CodeColumn)
		if e.Literal {
			line.WriteString("*")
		}
		line.WriteString(hexCode(e.Code))
		padToColumn(&line, opts.SourceColumn)
		line.WriteString(e.Source)
		sb.WriteString(line.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func hexCode(code []byte) string {
	var sb strings.Builder
	for _, b := range code {
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}

func padToColumn(sb *strings.Builder, column int) {
	current := sb.Len()
	if current < column {
		sb.WriteString(strings.Repeat(" ", column-current))
	} else {
		sb.WriteString(" ")
	}
}
