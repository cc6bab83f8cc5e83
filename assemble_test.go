package sicxe

import (
	"strings"
	"testing"

	"github.com/sicxe-asm/core/opcode"
)

func TestAssemble_FullPipelineProducesObjectAndListing(t *testing.T) {
	src := `COPY    START   0
FIRST   LDA     FIVE
        STA     ALPHA
        RSUB
FIVE    WORD    5
ALPHA   RESW    1
        END     FIRST
`
	obj, lst, errs := Assemble(strings.NewReader(src), "copy.asm", opcode.DefaultTable())
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Error())
	}
	if obj == nil || lst == nil {
		t.Fatal("expected a non-nil object program and listing")
	}
	if len(obj.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(obj.Sections))
	}
	sec := obj.Sections[0]
	if sec.Header.Name != "COPY" || sec.Header.Length != 15 {
		t.Errorf("header = %+v, want name COPY length 15", sec.Header)
	}
	if !sec.End.HasEntry || sec.End.FirstExecAddr != 0 {
		t.Errorf("end record = %+v, want entry at 0", sec.End)
	}
	if len(lst.Entries) == 0 {
		t.Error("expected listing entries")
	}
}

func TestAssemble_UnterminatedMacroShortCircuitsBeforePass1(t *testing.T) {
	src := `RDBUFF  MACRO   &DEVICE
        CLEAR   X
        TD      &DEVICE
`
	obj, lst, errs := Assemble(strings.NewReader(src), "bad.asm", opcode.DefaultTable())
	if !errs.HasErrors() {
		t.Fatal("expected an error for the unterminated macro definition")
	}
	if obj != nil || lst != nil {
		t.Error("expected nil object and listing when macro expansion reports an error")
	}
}

func TestAssemble_UnknownMnemonicStopsBeforePass2(t *testing.T) {
	src := `P       START   0
        FROB    1
        END
`
	obj, lst, errs := Assemble(strings.NewReader(src), "u.asm", opcode.DefaultTable())
	if !errs.HasErrors() {
		t.Fatal("expected an error for the unknown mnemonic")
	}
	if obj != nil || lst != nil {
		t.Error("expected nil object and listing when pass1 reports an error")
	}
}
