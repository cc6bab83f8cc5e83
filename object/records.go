// Package object models the SIC/XE object program that Pass 2 emits: the
// Header/Define/Refer/Text/Modification/End records per control section,
// and the fixed-column text encoding a linker reads them back from.
package object

// SymbolValue pairs an externally visible symbol with its value, the
// payload of a Define (D) record entry.
type SymbolValue struct {
	Name  string
	Value uint32
}

// Header is the H record: control section name, start address, length.
type Header struct {
	Name      string
	StartAddr uint32
	Length    uint32
}

// Define is the D record: every EXTDEF name this section exports, with
// its resolved value.
type Define struct {
	Symbols []SymbolValue
}

// Refer is the R record: every EXTREF name this section imports.
type Refer struct {
	Names []string
}

// Text is one T record: a contiguous run of object code no longer than
// MaxTextRecordBytes, starting at StartAddr.
type Text struct {
	StartAddr uint32
	Bytes     []byte
}

// Modification is one M record: a half-byte-granular fixup at Addr,
// adding (Sign '+') or subtracting (Sign '-') the value of Symbol — an
// external reference or a control section's load address — once the
// linker knows it.
type Modification struct {
	Addr      uint32
	HalfBytes int
	Sign      byte
	Symbol    string
}

// End is the E record: the first executable address, present only in
// the control section containing the program's entry point.
type End struct {
	FirstExecAddr uint32
	HasEntry      bool
}

// Section collects one control section's complete set of records, in
// the order a linker expects to see them.
type Section struct {
	Header Header
	Define Define
	Refer  Refer
	Text   []Text
	Mods   []Modification
	End    End
}

// Program is the full object program: one Section per CSECT, in source
// order.
type Program struct {
	Sections []*Section
}
