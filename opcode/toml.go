package opcode

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// tomlEntry mirrors Entry but uses TOML-friendly field types: the opcode
// byte as a two-digit hex string and the format set as a list of ints.
type tomlEntry struct {
	Opcode  string `toml:"opcode"`
	Formats []int  `toml:"formats"`
}

type tomlTable struct {
	Mnemonic map[string]tomlEntry `toml:"mnemonic"`
}

// LoadTableTOML decodes an opcode table from TOML of the form:
//
//	[mnemonic.LDA]
//	opcode = "00"
//	formats = [3]
//
//	[mnemonic.CLEAR]
//	opcode = "B4"
//	formats = [2]
//
// The on-disk shape is a convenience for tests and tooling; the core only
// ever consumes the resulting *Table.
func LoadTableTOML(r io.Reader) (*Table, error) {
	var doc tomlTable
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("opcode: decode toml: %w", err)
	}

	entries := make(map[string]Entry, len(doc.Mnemonic))
	for mnemonic, te := range doc.Mnemonic {
		var b byte
		if _, err := fmt.Sscanf(te.Opcode, "%02X", &b); err != nil {
			return nil, fmt.Errorf("opcode: mnemonic %q: invalid opcode %q: %w", mnemonic, te.Opcode, err)
		}
		formats := make(map[Format]bool, len(te.Formats))
		for _, f := range te.Formats {
			formats[Format(f)] = true
		}
		entries[mnemonic] = Entry{Mnemonic: mnemonic, Opcode: b, Formats: formats}
	}
	return NewTable(entries), nil
}
