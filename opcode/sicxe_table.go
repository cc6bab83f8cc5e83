package opcode

// f1, f2 and f34 are shorthands for the format sets used throughout the
// default table below.
var (
	f1  = map[Format]bool{Format1: true}
	f2  = map[Format]bool{Format2: true}
	f34 = map[Format]bool{Format3: true}
)

// DefaultTable returns the standard SIC/XE mnemonic table: every opcode
// documented for the architecture, with its permitted format set. Programs
// that don't supply their own TOML table use this one.
func DefaultTable() *Table {
	entries := map[string]Entry{
		// Load/store
		"LDA":  {Opcode: 0x00, Formats: f34},
		"LDX":  {Opcode: 0x04, Formats: f34},
		"LDL":  {Opcode: 0x08, Formats: f34},
		"LDB":  {Opcode: 0x68, Formats: f34},
		"LDS":  {Opcode: 0x6C, Formats: f34},
		"LDT":  {Opcode: 0x74, Formats: f34},
		"LDF":  {Opcode: 0x70, Formats: f34},
		"LDCH": {Opcode: 0x50, Formats: f34},
		"STA":  {Opcode: 0x0C, Formats: f34},
		"STX":  {Opcode: 0x10, Formats: f34},
		"STL":  {Opcode: 0x14, Formats: f34},
		"STB":  {Opcode: 0x78, Formats: f34},
		"STS":  {Opcode: 0x7C, Formats: f34},
		"STT":  {Opcode: 0x84, Formats: f34},
		"STF":  {Opcode: 0x80, Formats: f34},
		"STCH": {Opcode: 0x54, Formats: f34},
		"STSW": {Opcode: 0xE8, Formats: f34},

		// Fixed-point arithmetic
		"ADD":  {Opcode: 0x18, Formats: f34},
		"SUB":  {Opcode: 0x1C, Formats: f34},
		"MUL":  {Opcode: 0x20, Formats: f34},
		"DIV":  {Opcode: 0x24, Formats: f34},
		"COMP": {Opcode: 0x28, Formats: f34},
		"TIX":  {Opcode: 0x2C, Formats: f34},
		"AND":  {Opcode: 0x40, Formats: f34},
		"OR":   {Opcode: 0x44, Formats: f34},

		// Floating-point arithmetic
		"ADDF":  {Opcode: 0x58, Formats: f34},
		"SUBF":  {Opcode: 0x5C, Formats: f34},
		"MULF":  {Opcode: 0x60, Formats: f34},
		"DIVF":  {Opcode: 0x64, Formats: f34},
		"COMPF": {Opcode: 0x88, Formats: f34},

		// Jump / branch
		"J":    {Opcode: 0x3C, Formats: f34},
		"JEQ":  {Opcode: 0x30, Formats: f34},
		"JGT":  {Opcode: 0x34, Formats: f34},
		"JLT":  {Opcode: 0x38, Formats: f34},
		"JSUB": {Opcode: 0x48, Formats: f34},
		"RSUB": {Opcode: 0x4C, Formats: f34},

		// Register-to-register (format 2 only)
		"ADDR":  {Opcode: 0x90, Formats: f2},
		"SUBR":  {Opcode: 0x94, Formats: f2},
		"MULR":  {Opcode: 0x98, Formats: f2},
		"DIVR":  {Opcode: 0x9C, Formats: f2},
		"COMPR": {Opcode: 0xA0, Formats: f2},
		"SHIFTL": {Opcode: 0xA4, Formats: f2},
		"SHIFTR": {Opcode: 0xA8, Formats: f2},
		"RMO":    {Opcode: 0xAC, Formats: f2},
		"TIXR":   {Opcode: 0xB8, Formats: f2},
		"CLEAR":  {Opcode: 0xB4, Formats: f2},

		// SVC / device I/O
		"SVC": {Opcode: 0xB0, Formats: f2},
		"TD":  {Opcode: 0xE0, Formats: f34},
		"RD":  {Opcode: 0xD8, Formats: f34},
		"WD":  {Opcode: 0xDC, Formats: f34},

		// Privileged / format 1
		"FIX":  {Opcode: 0xC4, Formats: f1},
		"FLOAT": {Opcode: 0xC0, Formats: f1},
		"HIO":  {Opcode: 0xF4, Formats: f1},
		"NORM": {Opcode: 0xC8, Formats: f1},
		"SIO":  {Opcode: 0xF0, Formats: f1},
		"SSK":  {Opcode: 0xEC, Formats: f34},
		"LPS":  {Opcode: 0xD0, Formats: f34},
		"STI":  {Opcode: 0xD4, Formats: f34},
		"TIO":  {Opcode: 0xF8, Formats: f1},
	}
	return NewTable(entries)
}
