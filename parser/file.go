package parser

import (
	"bufio"
	"io"
)

// ParseProgram reads src line by line, parses each line, and runs macro
// expansion over the resulting stream. The returned []Line has no MACRO
// or MEND lines remaining and every macro invocation replaced by its
// expanded body, ready for Pass 1. This is the recommended entry point for
// turning raw source text into the line stream both passes walk.
func ParseProgram(src io.Reader) ([]*Line, *ErrorList) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []*Line
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		lines = append(lines, ParseLine(scanner.Text(), lineNo))
	}

	pp := NewPreprocessor()
	return pp.Expand(lines)
}
