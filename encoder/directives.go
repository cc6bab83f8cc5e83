package encoder

import (
	"strings"

	"github.com/sicxe-asm/core/assembler"
	"github.com/sicxe-asm/core/object"
	"github.com/sicxe-asm/core/parser"
)

// encodeByte decodes a BYTE directive's C'...'/X'...' operand into its
// raw bytes.
func (e *Encoder) encodeByte(stmt *assembler.Stmt) ([]byte, error) {
	_, bytes, err := parser.DecodeConstant(strings.TrimSpace(stmt.Operand))
	return bytes, err
}

// encodeWord assembles a WORD directive's 3-byte value. The operand may
// be a plain constant, a single symbol, or a two-term +/- expression;
// every relocatable or external term gets a 6-half-byte Modification
// record so a linker can fix it up after it knows every section's load
// address.
func (e *Encoder) encodeWord(st *sectionState, stmt *assembler.Stmt) ([]byte, []object.Modification) {
	value, mods, err := e.resolveWordExpr(st.cs.Name, strings.TrimSpace(stmt.Operand))
	if err != nil {
		e.errs.AddError(parser.NewError(e.pos(stmt), parser.ErrorExpression, err.Error()))
		return []byte{0, 0, 0}, nil
	}

	code := []byte{byte(value >> 16), byte(value >> 8), byte(value)}
	for i := range mods {
		mods[i].Addr = stmt.Address
		mods[i].HalfBytes = 6
	}
	return code, mods
}
