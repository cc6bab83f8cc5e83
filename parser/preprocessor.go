package parser

import "fmt"

// Preprocessor implements the macro expansion contract of spec §4.2: given
// a sequence of parsed lines, it produces a sequence in which no line has
// mnemonic MACRO or MEND, and every invocation of a previously-defined
// macro is replaced by its parameter-substituted body.
//
// It runs as a two-state machine over the input, Scanning and Defining,
// mirroring the ARM preprocessor's conditional-assembly skip loop but
// driving macro collection instead of #if-style skipping.
type Preprocessor struct {
	table *MacroTable
	errs  *ErrorList
}

// NewPreprocessor creates a preprocessor with an empty macro table.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{table: NewMacroTable(), errs: &ErrorList{}}
}

type ppState int

const (
	ppScanning ppState = iota
	ppDefining
)

// Expand runs the Scanning/Defining state machine over lines and returns
// the fully macro-expanded stream. Errors (unterminated MACRO, MEND
// outside a definition, nested MACRO, recursive invocation, argument
// count mismatch) are collected in the returned ErrorList; the caller
// should treat a non-empty list as fatal for this translation unit.
func (p *Preprocessor) Expand(lines []*Line) ([]*Line, *ErrorList) {
	var out []*Line
	state := ppScanning
	var current *Macro

	for _, line := range lines {
		if line.Blank {
			if state == ppDefining {
				current.Body = append(current.Body, line)
			} else {
				out = append(out, line)
			}
			continue
		}

		switch state {
		case ppDefining:
			switch line.Mnemonic {
			case "MEND":
				p.table.Define(current)
				current = nil
				state = ppScanning
			case "MACRO":
				p.errs.AddError(NewError(Position{Line: line.LineNo}, ErrorMacro,
					"nested macro definition is not supported"))
			default:
				current.Body = append(current.Body, line)
			}

		case ppScanning:
			switch line.Mnemonic {
			case "MACRO":
				current = &Macro{Name: line.Label, Params: splitArgs(line.Operand)}
				state = ppDefining
			case "MEND":
				p.errs.AddError(NewError(Position{Line: line.LineNo}, ErrorMacro,
					"MEND outside a macro definition"))
			default:
				if _, isMacro := p.table.Lookup(line.Mnemonic); isMacro {
					expanded, err := p.expandCall(line, nil, 0)
					if err != nil {
						p.errs.AddError(NewError(Position{Line: line.LineNo}, ErrorMacro, err.Error()))
						continue
					}
					out = append(out, expanded...)
				} else {
					out = append(out, line)
				}
			}
		}
	}

	if state == ppDefining {
		p.errs.AddError(NewError(Position{}, ErrorMacro,
			fmt.Sprintf("unterminated MACRO definition %q: no MEND before end of input", current.Name)))
	}

	return out, p.errs
}

// expandCall recursively expands one macro invocation, substituting actual
// arguments for formals in every body line and, when a body line itself
// invokes an already-defined macro, expanding that call too. callStack
// tracks the chain of macro names currently being expanded so a macro
// invoking itself (directly or indirectly) is rejected rather than looping.
func (p *Preprocessor) expandCall(line *Line, callStack []string, depth int) ([]*Line, error) {
	if depth >= MaxMacroNestingDepth {
		return nil, fmt.Errorf("macro expansion too deep (possible recursion): %s", line.Mnemonic)
	}

	m, ok := p.table.Lookup(line.Mnemonic)
	if !ok {
		return []*Line{line}, nil
	}

	for _, caller := range callStack {
		if caller == m.Name {
			return nil, fmt.Errorf("recursive macro invocation: %s", m.Name)
		}
	}

	args := splitArgs(line.Operand)
	if len(args) != len(m.Params) {
		return nil, fmt.Errorf("macro %q expects %d argument(s), got %d", m.Name, len(m.Params), len(args))
	}

	subst := make(map[string]string, len(m.Params))
	for i, param := range m.Params {
		subst[param] = args[i]
	}

	newStack := append(append([]string{}, callStack...), m.Name)

	var out []*Line
	for _, bodyLine := range m.Body {
		if bodyLine.Blank {
			out = append(out, bodyLine)
			continue
		}
		substituted := substituteLine(bodyLine, subst)
		if _, isMacro := p.table.Lookup(substituted.Mnemonic); isMacro {
			expanded, err := p.expandCall(substituted, newStack, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
			continue
		}
		out = append(out, substituted)
	}
	return out, nil
}
