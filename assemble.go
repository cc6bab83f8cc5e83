// Package sicxe ties the pipeline together: source text in, an object
// program and listing out. Everything below this package is a library
// with no side effects of its own; a CLI or test harness is the only
// caller that needs to exist above it.
package sicxe

import (
	"io"

	"github.com/sicxe-asm/core/assembler"
	"github.com/sicxe-asm/core/encoder"
	"github.com/sicxe-asm/core/listing"
	"github.com/sicxe-asm/core/object"
	"github.com/sicxe-asm/core/opcode"
	"github.com/sicxe-asm/core/parser"
)

// Assemble runs the full pipeline over src: line parsing and macro
// expansion, Pass 1 address assignment, Pass 2 code generation, and
// listing rendering. It stops at the first stage that reports an error
// and returns a nil object program and listing alongside that stage's
// ErrorList; a caller that only wants warnings should still check
// ErrorList.HasErrors() before trusting a non-nil result, since Pass 1
// and Pass 2 both continue past recoverable errors to report as many as
// possible in one pass.
func Assemble(src io.Reader, filename string, opcodes *opcode.Table) (*object.Program, *listing.Listing, *parser.ErrorList) {
	lines, errs := parser.ParseProgram(src)
	if errs.HasErrors() {
		return nil, nil, errs
	}

	prog, errs := assembler.Assemble1(lines, opcodes, filename)
	if errs.HasErrors() {
		return nil, nil, errs
	}

	obj, encErrs := encoder.NewEncoder(prog, opcodes).Encode()
	// Keep Pass 1's warnings alongside whatever Pass 2 reports.
	errs.Errors = append(errs.Errors, encErrs.Errors...)
	errs.Warnings = append(errs.Warnings, encErrs.Warnings...)
	if errs.HasErrors() {
		return nil, nil, errs
	}

	lst := listing.Build(prog, obj)
	return obj, lst, errs
}
