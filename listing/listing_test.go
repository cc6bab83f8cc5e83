package listing

import (
	"strings"
	"testing"

	"github.com/sicxe-asm/core/assembler"
	"github.com/sicxe-asm/core/encoder"
	"github.com/sicxe-asm/core/object"
	"github.com/sicxe-asm/core/opcode"
	"github.com/sicxe-asm/core/parser"
)

func assembleFor(t *testing.T, src string) (*assembler.Program, *object.Program) {
	t.Helper()
	lines, errs := parser.ParseProgram(strings.NewReader(src))
	if errs.HasErrors() {
		t.Fatalf("parse errors: %v", errs.Error())
	}
	prog, errs := assembler.Assemble1(lines, opcode.DefaultTable(), "t.asm")
	if errs.HasErrors() {
		t.Fatalf("pass1 errors: %v", errs.Error())
	}
	obj, errs := encoder.NewEncoder(prog, opcode.DefaultTable()).Encode()
	if errs.HasErrors() {
		t.Fatalf("pass2 errors: %v", errs.Error())
	}
	return prog, obj
}

func TestBuild_OneRowPerStatementAndLiteral(t *testing.T) {
	src := `COPY    START   0
FIRST   LDA     FIVE
        RSUB
FIVE    WORD    5
        END     FIRST
`
	prog, obj := assembleFor(t, src)
	l := Build(prog, obj)
	if len(l.Entries) == 0 {
		t.Fatal("expected listing entries")
	}
	var sawLDA bool
	for _, e := range l.Entries {
		if strings.Contains(e.Source, "LDA") {
			sawLDA = true
			if e.Address != 0 {
				t.Errorf("LDA row address = %d, want 0", e.Address)
			}
			want := []byte{0x03, 0x20, 0x03}
			if string(e.Code) != string(want) {
				t.Errorf("LDA row code = % X, want % X", e.Code, want)
			}
		}
	}
	if !sawLDA {
		t.Error("expected a listing row for the LDA statement")
	}
}

func TestBuild_LiteralRowAtPlacedAddress(t *testing.T) {
	src := `P       START   0
        LDA     =C'EOF'
        RSUB
        END
`
	prog, obj := assembleFor(t, src)
	l := Build(prog, obj)
	var litRows int
	for _, e := range l.Entries {
		if e.Literal {
			litRows++
			if e.Address != 6 {
				t.Errorf("literal row address = %d, want 6", e.Address)
			}
			if string(e.Code) != "EOF" {
				t.Errorf("literal row code = %q, want \"EOF\"", e.Code)
			}
		}
	}
	if litRows != 1 {
		t.Fatalf("expected 1 literal row, got %d", litRows)
	}
}

func TestBuild_MultiSectionAddressesDontCollide(t *testing.T) {
	src := `FIRST   START   0
        LDA     #1
        RSUB
        END     FIRST
SECOND  CSECT
        LDA     #2
        RSUB
`
	prog, obj := assembleFor(t, src)
	l := Build(prog, obj)
	var zeros int
	for _, e := range l.Entries {
		if e.Address == 0 && len(e.Code) > 0 {
			zeros++
		}
	}
	if zeros != 2 {
		t.Fatalf("expected one row at address 0 per section (2 total), got %d", zeros)
	}
}

func TestRender_ProducesOneLinePerEntry(t *testing.T) {
	src := `P       START   0
        RSUB
        END
`
	prog, obj := assembleFor(t, src)
	l := Build(prog, obj)
	out := l.Render(nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != len(l.Entries) {
		t.Errorf("rendered %d lines, want %d", len(lines), len(l.Entries))
	}
}

func TestRender_NilOptionsUsesDefaults(t *testing.T) {
	l := &Listing{Entries: []Entry{{Address: 0, Code: []byte{0x4C}, Source: "RSUB"}}}
	out := l.Render(nil)
	if !strings.Contains(out, "4C") {
		t.Errorf("expected hex code in output, got %q", out)
	}
	if !strings.Contains(out, "RSUB") {
		t.Errorf("expected source text in output, got %q", out)
	}
}

func TestRender_IncludesSourceLineNumber(t *testing.T) {
	l := &Listing{Entries: []Entry{{LineNo: 42, Address: 0, Code: []byte{0x4C}, Source: "RSUB"}}}
	out := l.Render(nil)
	if !strings.Contains(out, "42") {
		t.Errorf("expected line number 42 in rendered output, got %q", out)
	}
}
