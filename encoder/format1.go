package encoder

import "github.com/sicxe-asm/core/opcode"

// encodeFormat1 assembles a format-1 instruction: its opcode byte, with
// no operand field at all (FIX, FLOAT, HIO, NORM, SIO, TIO).
func (e *Encoder) encodeFormat1(entry opcode.Entry) []byte {
	return []byte{entry.Opcode}
}
