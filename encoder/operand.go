package encoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sicxe-asm/core/parser"
)

// operand is a resolved format-3/4 operand: its addressing-mode bits, an
// absolute or section-relative value, and (for an unresolved external
// reference) the symbol name a linker must later fix up.
type operand struct {
	n, i        byte
	indexed     bool
	value       uint32
	relocatable bool
	external    string
}

// resolveOperand strips the addressing-mode prefix and indexing suffix
// off text and resolves what remains against the current control
// section's literal pool, then as a plain integer constant, then
// against its symbol table.
func (e *Encoder) resolveOperand(st *sectionState, text string) (operand, error) {
	text = strings.TrimSpace(text)
	op := operand{n: 1, i: 1}

	switch {
	case strings.HasPrefix(text, "#"):
		op.n, op.i = 0, 1
		text = text[1:]
	case strings.HasPrefix(text, "@"):
		op.n, op.i = 1, 0
		text = text[1:]
	}

	if idx := strings.LastIndex(text, ","); idx >= 0 && strings.EqualFold(strings.TrimSpace(text[idx+1:]), "X") {
		op.indexed = true
		text = text[:idx]
	}
	text = strings.TrimSpace(text)

	if parser.IsLiteralOperand(text) {
		lit, err := st.cs.Literals.Register(text)
		if err != nil {
			return op, err
		}
		op.value = lit.Address
		op.relocatable = true
		return op, nil
	}

	if n, err := parseOperandInt(text); err == nil {
		op.value = n
		return op, nil
	}

	if sym, ok := e.prog.Symbols.Lookup(st.cs.Name, text); ok {
		if !sym.Defined {
			op.external = text
			return op, nil
		}
		op.value = sym.Value
		op.relocatable = sym.Relocatable
		return op, nil
	}

	return op, fmt.Errorf("undefined symbol %q", text)
}

func parseOperandInt(s string) (uint32, error) {
	if s == "" {
		return 0, fmt.Errorf("empty operand")
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		return uint32(v), err
	}
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}
