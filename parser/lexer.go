package parser

import "strings"

// ParseLine splits one raw source line into a Line record. It never
// returns an error: a line that can't be sensibly decomposed is still
// returned, usually as a Blank marker or with an empty Mnemonic, and bad
// mnemonics are surfaced later, in Pass 1, per spec: "The parser is total:
// no parse errors at this stage; bad mnemonics are surfaced in Pass 1."
//
// Column 0 of the original (untrimmed) text marks the presence of a label:
// a line beginning with whitespace has no label, a line beginning with
// anything else does. This is a stateless, line-local decision; the lexer
// never consults the opcode table.
func ParseLine(raw string, lineNo int) *Line {
	line := &Line{Raw: raw, LineNo: lineNo}

	noCR := strings.TrimRight(raw, "\r\n")
	trimmed := strings.TrimSpace(noCR)
	if trimmed == "" || trimmed[0] == '.' {
		line.Blank = true
		return line
	}

	hasLabel := len(noCR) > 0 && !isLineWhitespace(noCR[0])

	leftTrimmed := strings.TrimLeft(noCR, " \t")
	first, rest := splitFirstField(leftTrimmed)

	var mnemonic, operand string
	if hasLabel {
		line.Label = first
		rest = strings.TrimLeft(rest, " \t")
		mnemonic, operand = splitFirstField(rest)
	} else {
		mnemonic = first
		operand = rest
	}

	operand = strings.TrimLeft(operand, " \t")

	if strings.HasPrefix(mnemonic, "+") {
		line.Extended = true
		mnemonic = mnemonic[1:]
	}

	line.Mnemonic = mnemonic
	line.Operand = operand
	return line
}

// isLineWhitespace reports whether b is a whitespace byte that can precede
// the opcode field (space or tab; not treated as starting a label).
func isLineWhitespace(b byte) bool {
	return b == ' ' || b == '\t'
}

// splitFirstField returns the first whitespace-delimited token of s and
// everything after it (including the separating whitespace, for the
// caller to trim). Labels and mnemonics never contain embedded whitespace
// or quoted literals, so this plain split is sufficient for them; operand
// text is never tokenized further here, which is exactly what preserves
// embedded whitespace inside C'...'/X'...' quotes.
func splitFirstField(s string) (field, rest string) {
	i := 0
	for i < len(s) && !isLineWhitespace(s[i]) {
		i++
	}
	return s[:i], s[i:]
}
