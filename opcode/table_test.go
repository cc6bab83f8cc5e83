package opcode

import (
	"strings"
	"testing"
)

func TestDefaultTable_LookupKnownMnemonics(t *testing.T) {
	tbl := DefaultTable()

	tests := []struct {
		mnemonic string
		opcode   byte
		format   Format
	}{
		{"LDA", 0x00, Format3},
		{"STA", 0x0C, Format3},
		{"COMP", 0x28, Format3},
		{"J", 0x3C, Format3},
		{"CLEAR", 0xB4, Format2},
		{"TIXR", 0xB8, Format2},
		{"RD", 0xD8, Format3},
	}

	for _, tt := range tests {
		e, ok := tbl.Lookup(tt.mnemonic)
		if !ok {
			t.Fatalf("mnemonic %q not found", tt.mnemonic)
		}
		if e.Opcode != tt.opcode {
			t.Errorf("%s: opcode = %#02x, want %#02x", tt.mnemonic, e.Opcode, tt.opcode)
		}
		if !e.Formats[tt.format] {
			t.Errorf("%s: format %d not permitted", tt.mnemonic, tt.format)
		}
	}
}

func TestDefaultTable_Is3Or4(t *testing.T) {
	tbl := DefaultTable()

	lda, _ := tbl.Lookup("LDA")
	if !lda.Is3Or4() {
		t.Error("LDA should be eligible for format 3/4")
	}

	clear, _ := tbl.Lookup("CLEAR")
	if clear.Is3Or4() {
		t.Error("CLEAR (format 2 only) should not be 3/4-eligible")
	}
}

func TestTable_LookupUnknown(t *testing.T) {
	tbl := DefaultTable()
	if _, ok := tbl.Lookup("NOSUCH"); ok {
		t.Error("expected NOSUCH to be absent from the table")
	}
}

func TestLoadTableTOML(t *testing.T) {
	doc := `
[mnemonic.LDA]
opcode = "00"
formats = [3]

[mnemonic.CLEAR]
opcode = "B4"
formats = [2]
`
	tbl, err := LoadTableTOML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadTableTOML: %v", err)
	}

	lda, ok := tbl.Lookup("LDA")
	if !ok || lda.Opcode != 0x00 || !lda.Formats[Format3] {
		t.Errorf("unexpected LDA entry: %+v", lda)
	}

	clear, ok := tbl.Lookup("CLEAR")
	if !ok || clear.Opcode != 0xB4 || !clear.Formats[Format2] {
		t.Errorf("unexpected CLEAR entry: %+v", clear)
	}
}

func TestLoadTableTOML_BadOpcode(t *testing.T) {
	doc := `
[mnemonic.BAD]
opcode = "ZZ"
formats = [3]
`
	if _, err := LoadTableTOML(strings.NewReader(doc)); err == nil {
		t.Error("expected error for invalid hex opcode")
	}
}

func TestIsDirective(t *testing.T) {
	for _, d := range []string{"START", "END", "CSECT", "EXTREF", "LTORG"} {
		if !IsDirective(d) {
			t.Errorf("expected %s to be a directive", d)
		}
	}
	if IsDirective("LDA") {
		t.Error("LDA is an opcode, not a directive")
	}
}
