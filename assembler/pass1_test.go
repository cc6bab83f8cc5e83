package assembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sicxe-asm/core/opcode"
	"github.com/sicxe-asm/core/parser"
)

func parseAndExpand(t *testing.T, src string) []*parser.Line {
	t.Helper()
	lines, errs := parser.ParseProgram(strings.NewReader(src))
	require.False(t, errs.HasErrors(), "unexpected parse errors: %v", errs.Error())
	return lines
}

func stmtAt(t *testing.T, cs *ControlSection, mnemonic string) *Stmt {
	t.Helper()
	for _, s := range cs.Stmts {
		if strings.EqualFold(s.Mnemonic, mnemonic) {
			return s
		}
	}
	t.Fatalf("no statement found for mnemonic %q", mnemonic)
	return nil
}

func TestAssemble1_BasicAddressAssignment(t *testing.T) {
	src := `COPY    START   0
FIRST   LDA     FIVE
        STA     ALPHA
        RSUB
FIVE    WORD    5
ALPHA   RESW    1
        END     FIRST
`
	lines := parseAndExpand(t, src)
	prog, errs := Assemble1(lines, opcode.DefaultTable(), "copy.asm")
	require.False(t, errs.HasErrors(), "unexpected errors: %v", errs.Error())
	require.Len(t, prog.Sections, 1)
	cs := prog.Sections[0]

	assert.Equal(t, uint32(0), stmtAt(t, cs, "LDA").Address)
	assert.Equal(t, uint32(3), stmtAt(t, cs, "STA").Address)
	assert.Equal(t, uint32(6), stmtAt(t, cs, "RSUB").Address)
	assert.Equal(t, uint32(9), stmtAt(t, cs, "WORD").Address)

	five, ok := prog.Symbols.Lookup("COPY", "FIVE")
	require.True(t, ok, "FIVE not defined")
	assert.Equal(t, uint32(9), five.Value)

	alpha, ok := prog.Symbols.Lookup("COPY", "ALPHA")
	require.True(t, ok, "ALPHA not defined")
	assert.Equal(t, uint32(12), alpha.Value)

	assert.Equal(t, uint32(15), cs.Length)
}

func TestAssemble1_ExtendedFormatFourBytes(t *testing.T) {
	src := `PROG    START   0
        +LDT     #4096
        RSUB
        END
`
	lines := parseAndExpand(t, src)
	prog, errs := Assemble1(lines, opcode.DefaultTable(), "t.asm")
	require.False(t, errs.HasErrors(), "unexpected errors: %v", errs.Error())
	cs := prog.Sections[0]
	rsub := stmtAt(t, cs, "RSUB")
	assert.Equal(t, uint32(4), rsub.Address, "LDT should occupy 4 bytes")
}

func TestAssemble1_DuplicateLabelError(t *testing.T) {
	src := `P       START   0
A       LDA     A
A       STA     A
        END
`
	lines := parseAndExpand(t, src)
	_, errs := Assemble1(lines, opcode.DefaultTable(), "d.asm")
	assert.True(t, errs.HasErrors(), "expected a duplicate-symbol error")
}

func TestAssemble1_ExtendedPrefixOnFormat2MnemonicIsAnError(t *testing.T) {
	src := `P       START   0
        +CLEAR  X
        END
`
	lines := parseAndExpand(t, src)
	_, errs := Assemble1(lines, opcode.DefaultTable(), "p.asm")
	require.True(t, errs.HasErrors(), "expected an error for '+' on a format-2-only mnemonic")
	assert.Equal(t, parser.ErrorFormat, errs.Errors[0].Kind)
}

func TestAssemble1_EquWithCurrentLocctr(t *testing.T) {
	src := `P       START   0
        LDA     FIVE
HERE    EQU     *
FIVE    WORD    5
        END
`
	lines := parseAndExpand(t, src)
	prog, errs := Assemble1(lines, opcode.DefaultTable(), "e.asm")
	require.False(t, errs.HasErrors(), "unexpected errors: %v", errs.Error())
	here, ok := prog.Symbols.Lookup("P", "HERE")
	require.True(t, ok, "HERE not defined")
	assert.Equal(t, uint32(3), here.Value)
}

func TestAssemble1_UseBlockLayout(t *testing.T) {
	src := `P       START   0
        LDA     FIVE
        USE     CDATA
FIVE    WORD    5
        USE
        STA     FIVE
        END
`
	lines := parseAndExpand(t, src)
	prog, errs := Assemble1(lines, opcode.DefaultTable(), "u.asm")
	require.False(t, errs.HasErrors(), "unexpected errors: %v", errs.Error())
	cs := prog.Sections[0]
	// Default block: LDA (3 bytes) + STA (3 bytes) = 6 bytes.
	// CDATA block: FIVE WORD (3 bytes), laid out after the default block.
	five, ok := prog.Symbols.Lookup("P", "FIVE")
	require.True(t, ok, "FIVE not defined")
	assert.Equal(t, uint32(6), five.Value, "FIVE (in USE CDATA, after default block)")

	sta := stmtAt(t, cs, "STA")
	assert.Equal(t, uint32(3), sta.Address)
}

func TestAssemble1_LiteralFlushOnLargeReserve(t *testing.T) {
	src := `P       START   0
        LDA     =C'EOF'
BUF     RESB    200
        END
`
	lines := parseAndExpand(t, src)
	prog, errs := Assemble1(lines, opcode.DefaultTable(), "l.asm")
	require.False(t, errs.HasErrors(), "unexpected errors: %v", errs.Error())
	cs := prog.Sections[0]
	placed := cs.Literals.Placed()
	require.Len(t, placed, 1)
	// LDA =C'EOF' at 0 (3 bytes) -> literal flushed at 3 before the
	// 200-byte RESB.
	assert.Equal(t, uint32(3), placed[0].Address)

	buf, ok := prog.Symbols.Lookup("P", "BUF")
	require.True(t, ok, "BUF not defined")
	assert.Equal(t, uint32(6), buf.Value)
}
