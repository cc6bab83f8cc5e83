package encoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sicxe-asm/core/opcode"
)

// encodeFormat2 assembles a format-2 instruction: an opcode byte
// followed by one byte packing two 4-bit register (or register/count)
// fields. A one-operand mnemonic (CLEAR, TIXR) leaves the second field
// zero; SHIFTL/SHIFTR take a numeric shift count, not a register name,
// in the second position.
func (e *Encoder) encodeFormat2(entry opcode.Entry, operandText string) ([]byte, error) {
	parts := strings.Split(operandText, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	r1, err := format2Field(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", entry.Mnemonic, err)
	}

	var r2 byte
	if len(parts) > 1 && parts[1] != "" {
		r2, err = format2Field(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Mnemonic, err)
		}
	}

	return []byte{entry.Opcode, (r1 << 4) | r2}, nil
}

// format2Field resolves one format-2 operand field: a register name, or
// (for SHIFTL/SHIFTR's count operand) a small decimal number.
func format2Field(text string) (byte, error) {
	if n, ok := opcode.RegisterNumber(text); ok {
		return byte(n), nil
	}
	v, err := strconv.ParseUint(text, 10, 8)
	if err != nil || v > 15 {
		return 0, fmt.Errorf("invalid register or count %q", text)
	}
	return byte(v), nil
}
