package encoder

import (
	"fmt"
	"strings"

	"github.com/sicxe-asm/core/assembler"
	"github.com/sicxe-asm/core/object"
	"github.com/sicxe-asm/core/opcode"
	"github.com/sicxe-asm/core/parser"
)

// encodeFormat34 assembles a format-3 or format-4 instruction: it
// resolves the operand, then picks an addressing strategy. A '+' prefix
// goes straight to format 4. Otherwise it tries PC-relative first, then
// the declared BASE, then a "smart BASE" candidate, and promotes the
// instruction to format 4 when none of those reach. An external
// reference without a '+' prefix is an error.
func (e *Encoder) encodeFormat34(st *sectionState, stmt *assembler.Stmt, entry opcode.Entry) ([]byte, *object.Modification, error) {
	opText := strings.TrimSpace(stmt.Operand)
	byte1 := entry.Opcode &^ 0x03

	if opText == "" {
		// No-operand format-3 instruction (RSUB): simple addressing,
		// zero displacement.
		return []byte{byte1 | 0x03, 0x00, 0x00}, nil, nil
	}

	op, err := e.resolveOperand(st, opText)
	if err != nil {
		return nil, nil, err
	}
	byte1 |= (op.n << 1) | op.i

	extended := stmt.Extended
	if op.external != "" && !extended {
		return nil, nil, fmt.Errorf("external reference %q requires format 4", op.external)
	}

	if extended {
		return e.encodeFormat4(stmt, byte1, op)
	}

	return e.encodeFormat3(st, stmt, byte1, op)
}

func (e *Encoder) encodeFormat4(stmt *assembler.Stmt, byte1 byte, op operand) ([]byte, *object.Modification, error) {
	addr := op.value & 0xFFFFF
	xbpe := byte(0x01) // e bit
	if op.indexed {
		xbpe |= 0x8
	}
	code := []byte{
		byte1,
		(xbpe << 4) | byte((addr>>16)&0xF),
		byte((addr >> 8) & 0xFF),
		byte(addr & 0xFF),
	}

	if op.external != "" {
		mod := &object.Modification{Addr: stmt.Address + 1, HalfBytes: 5, Sign: '+', Symbol: op.external}
		return code, mod, nil
	}
	if op.relocatable {
		mod := &object.Modification{Addr: stmt.Address + 1, HalfBytes: 5, Sign: '+', Symbol: stmt.Section}
		return code, mod, nil
	}
	return code, nil, nil
}

func (e *Encoder) encodeFormat3(st *sectionState, stmt *assembler.Stmt, byte1 byte, op operand) ([]byte, *object.Modification, error) {
	// A pure immediate constant (not an address at all) is embedded
	// directly when it fits the 12-bit field; PC/BASE-relative framing
	// doesn't apply to it.
	if op.n == 0 && op.i == 1 && !op.relocatable {
		if op.value <= parser.MaxBaseRelativeDisplacement {
			return format3Bytes(byte1, 0, 0, op.indexed, uint16(op.value)), nil, nil
		}
		return nil, nil, fmt.Errorf("immediate value %d does not fit format 3; use format 4", op.value)
	}

	nextAddr := int64(stmt.Address) + 3
	disp := int64(op.value) - nextAddr
	if disp >= parser.MinPCRelativeDisplacement && disp <= parser.MaxPCRelativeDisplacement {
		return format3Bytes(byte1, 1, 0, op.indexed, uint16(disp&0xFFF)), nil, nil
	}

	if st.baseActive {
		bdisp := int64(op.value) - int64(st.baseValue)
		if bdisp >= 0 && bdisp <= parser.MaxBaseRelativeDisplacement {
			return format3Bytes(byte1, 0, 1, op.indexed, uint16(bdisp)), nil, nil
		}
	}

	// Smart BASE: neither PC-relative nor a declared BASE reaches the
	// target. Install a candidate base transiently — the nearest already-
	// defined label at or below the target — without touching st's
	// BASE/NOBASE state, and retry base-relative addressing against it.
	if candidate, ok := e.smartBaseCandidate(st.cs, op.value); ok {
		bdisp := int64(op.value) - int64(candidate)
		if bdisp >= 0 && bdisp <= parser.MaxBaseRelativeDisplacement {
			return format3Bytes(byte1, 0, 1, op.indexed, uint16(bdisp)), nil, nil
		}
	}

	// Still out of reach: promote silently to format 4, which every
	// format-3-eligible mnemonic also supports.
	return e.encodeFormat4(stmt, byte1, op)
}

// smartBaseCandidate finds the nearest label already defined in cs whose
// value is at or below target, for use as a one-off BASE-relative anchor
// when the source declared no BASE (or the declared one doesn't reach).
// Ties are broken toward the higher address, which falls out of always
// keeping the running maximum.
func (e *Encoder) smartBaseCandidate(cs *assembler.ControlSection, target uint32) (uint32, bool) {
	var best uint32
	found := false
	for _, sym := range e.prog.Symbols.All(cs.Name) {
		if !sym.Defined || !sym.Relocatable || sym.Value > target {
			continue
		}
		if !found || sym.Value > best {
			best = sym.Value
			found = true
		}
	}
	return best, found
}

func format3Bytes(byte1, p, b byte, indexed bool, disp12 uint16) []byte {
	xbpe := (p << 1) | b
	if indexed {
		xbpe |= 0x8
	}
	return []byte{
		byte1,
		(xbpe << 4) | byte((disp12>>8)&0xF),
		byte(disp12 & 0xFF),
	}
}
