package assembler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sicxe-asm/core/parser"
)

// Evaluator resolves the small expression grammar EQU and ORG operands use:
// a bare term, or two terms joined by a single '+' or '-'. A term is either
// '*' (the current LOCCTR), a decimal or 0x-prefixed hex integer, or a
// symbol already defined in the current section.
type Evaluator struct {
	symtab  *parser.SymbolTable
	section string
	locctr  func() uint32
}

// NewEvaluator builds an evaluator scoped to section, using locctr to
// resolve '*' references.
func NewEvaluator(symtab *parser.SymbolTable, section string, locctr func() uint32) *Evaluator {
	return &Evaluator{symtab: symtab, section: section, locctr: locctr}
}

// Eval evaluates expr and reports whether the result is relocatable
// (depends on the eventual load address of the section).
func (ev *Evaluator) Eval(expr string) (value uint32, relocatable bool, err error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, false, fmt.Errorf("empty expression")
	}

	// Scan for a binary operator, skipping index 0 so a leading sign is
	// never mistaken for one.
	for i := 1; i < len(expr); i++ {
		if expr[i] == '+' || expr[i] == '-' {
			leftVal, leftReloc, err := ev.evalTerm(strings.TrimSpace(expr[:i]))
			if err != nil {
				return 0, false, err
			}
			rightVal, rightReloc, err := ev.evalTerm(strings.TrimSpace(expr[i+1:]))
			if err != nil {
				return 0, false, err
			}
			if expr[i] == '+' {
				if leftReloc && rightReloc {
					return 0, false, fmt.Errorf("relocatable + relocatable in expression %q", expr)
				}
				return leftVal + rightVal, leftReloc || rightReloc, nil
			}
			// Subtraction: relocatable - relocatable is absolute (a
			// byte count between two addresses in the same section).
			if leftReloc && rightReloc {
				return leftVal - rightVal, false, nil
			}
			if !leftReloc && rightReloc {
				return 0, false, fmt.Errorf("absolute - relocatable in expression %q", expr)
			}
			return leftVal - rightVal, leftReloc, nil
		}
	}

	return ev.evalTerm(expr)
}

func (ev *Evaluator) evalTerm(term string) (uint32, bool, error) {
	if term == "" {
		return 0, false, fmt.Errorf("empty term in expression")
	}
	if term == "*" {
		return ev.locctr(), true, nil
	}
	if sym, ok := ev.symtab.Lookup(ev.section, term); ok && sym.Defined {
		return sym.Value, sym.Relocatable, nil
	}

	n, err := parseIntLiteral(term)
	if err != nil {
		return 0, false, fmt.Errorf("undefined symbol or invalid constant %q", term)
	}
	return n, false, nil
}

func parseIntLiteral(s string) (uint32, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		return uint32(v), err
	}
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}
