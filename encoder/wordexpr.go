package encoder

import (
	"fmt"
	"strings"

	"github.com/sicxe-asm/core/object"
)

// resolveWordExpr evaluates a WORD directive's operand: a constant, a
// single symbol, or a two-term +/- expression. Unlike instruction
// operands, a WORD expression's terms may name symbols in other control
// sections entirely (WORD BUFEND-BUFFER, where BUFEND and BUFFER are
// EXTREF'd from elsewhere), so resolution isn't scoped to one section's
// symbol table the way resolveOperand's is.
func (e *Encoder) resolveWordExpr(section, expr string) (uint32, []object.Modification, error) {
	if expr == "" {
		return 0, nil, fmt.Errorf("empty WORD operand")
	}
	if v, err := parseOperandInt(expr); err == nil {
		return v, nil, nil
	}

	for i := 1; i < len(expr); i++ {
		if expr[i] != '+' && expr[i] != '-' {
			continue
		}
		leftVal, leftSym, err := e.resolveWordTerm(section, strings.TrimSpace(expr[:i]))
		if err != nil {
			return 0, nil, err
		}
		rightVal, rightSym, err := e.resolveWordTerm(section, strings.TrimSpace(expr[i+1:]))
		if err != nil {
			return 0, nil, err
		}

		var mods []object.Modification
		if leftSym != "" {
			mods = append(mods, object.Modification{Sign: '+', Symbol: leftSym})
		}
		if expr[i] == '+' {
			if rightSym != "" {
				mods = append(mods, object.Modification{Sign: '+', Symbol: rightSym})
			}
			return leftVal + rightVal, mods, nil
		}
		if rightSym != "" {
			mods = append(mods, object.Modification{Sign: '-', Symbol: rightSym})
		}
		return leftVal - rightVal, mods, nil
	}

	val, sym, err := e.resolveWordTerm(section, expr)
	if err != nil {
		return 0, nil, err
	}
	var mods []object.Modification
	if sym != "" {
		mods = append(mods, object.Modification{Sign: '+', Symbol: sym})
	}
	return val, mods, nil
}

// resolveWordTerm resolves one term to its value and, if the result
// depends on a load address, the symbol a Modification record should
// name: the owning section's own name for a same-section label (moving
// that section at load time is what changes the value), or the term
// itself for an external reference.
func (e *Encoder) resolveWordTerm(section, term string) (uint32, string, error) {
	if v, err := parseOperandInt(term); err == nil {
		return v, "", nil
	}

	if sym, ok := e.prog.Symbols.Lookup(section, term); ok {
		if !sym.Defined {
			return 0, term, nil
		}
		if sym.Relocatable {
			return sym.Value, section, nil
		}
		return sym.Value, "", nil
	}

	for _, cs := range e.prog.Sections {
		if cs.Name == section {
			continue
		}
		if sym, ok := e.prog.Symbols.Lookup(cs.Name, term); ok && sym.Defined {
			if sym.Relocatable {
				return sym.Value, cs.Name, nil
			}
			return sym.Value, "", nil
		}
	}

	return 0, "", fmt.Errorf("undefined symbol %q", term)
}
