// Package encoder implements Pass 2: given a Program already laid out by
// Pass 1, it resolves every operand, chooses an addressing mode, and
// assembles the resulting object code and modification records.
package encoder

import (
	"sort"
	"strings"

	"github.com/sicxe-asm/core/assembler"
	"github.com/sicxe-asm/core/object"
	"github.com/sicxe-asm/core/opcode"
	"github.com/sicxe-asm/core/parser"
)

// Encoder walks a Pass 1 Program's statements in source order and
// produces the object program Pass 2 is responsible for.
type Encoder struct {
	prog    *assembler.Program
	opcodes *opcode.Table
	errs    *parser.ErrorList
}

// NewEncoder builds an Encoder for prog, resolving operands against
// opcodes.
func NewEncoder(prog *assembler.Program, opcodes *opcode.Table) *Encoder {
	return &Encoder{prog: prog, opcodes: opcodes, errs: &parser.ErrorList{}}
}

// sectionState tracks the BASE-relative addressing state as the encoder
// walks one control section's statements in order: BASE and NOBASE
// directives flip it as they're encountered, mirroring how an assembler
// reading top to bottom would.
type sectionState struct {
	cs         *assembler.ControlSection
	baseActive bool
	baseValue  uint32
}

type chunk struct {
	addr uint32
	code []byte
}

// Encode runs Pass 2 over every control section and returns the
// assembled object program together with any errors encountered.
func (e *Encoder) Encode() (*object.Program, *parser.ErrorList) {
	out := &object.Program{}
	for i, cs := range e.prog.Sections {
		out.Sections = append(out.Sections, e.encodeSection(cs, i == 0))
	}
	return out, e.errs
}

func (e *Encoder) encodeSection(cs *assembler.ControlSection, isEntrySection bool) *object.Section {
	sec := &object.Section{
		Header: object.Header{Name: cs.Name, StartAddr: cs.StartAddr, Length: cs.Length},
	}

	for _, name := range cs.ExternDefs {
		if sym, ok := e.prog.Symbols.Lookup(cs.Name, name); ok && sym.Defined {
			sec.Define.Symbols = append(sec.Define.Symbols, object.SymbolValue{Name: name, Value: sym.Value})
		}
	}
	sec.Refer.Names = append(sec.Refer.Names, cs.ExternRefs...)

	st := &sectionState{cs: cs}
	var chunks []chunk
	for _, stmt := range cs.Stmts {
		code, mods := e.encodeStmt(st, stmt)
		if len(code) > 0 {
			chunks = append(chunks, chunk{addr: stmt.Address, code: code})
		}
		sec.Mods = append(sec.Mods, mods...)
	}
	for _, lit := range cs.Literals.Placed() {
		chunks = append(chunks, chunk{addr: lit.Address, code: lit.Bytes})
	}

	sort.Slice(chunks, func(i, j int) bool { return chunks[i].addr < chunks[j].addr })

	var tb object.TextBuilder
	for _, c := range chunks {
		tb.Append(c.addr, c.code)
	}
	sec.Text = tb.Records()

	if isEntrySection {
		sec.End = object.End{FirstExecAddr: cs.StartAddr, HasEntry: true}
	}
	return sec
}

// encodeStmt dispatches one statement to its format's encoder. Directives
// that carry no object code (EQU, ORG, USE, LTORG, EXTDEF, EXTREF, START,
// CSECT, END) return nil, nil; BASE/NOBASE update st and also return nil.
func (e *Encoder) encodeStmt(st *sectionState, stmt *assembler.Stmt) ([]byte, []object.Modification) {
	mnemonic := strings.ToUpper(stmt.Mnemonic)

	switch mnemonic {
	case "BASE":
		e.setBase(st, stmt)
		return nil, nil
	case "NOBASE":
		st.baseActive = false
		return nil, nil
	case "START", "CSECT", "END", "EQU", "ORG", "USE", "LTORG", "EXTDEF", "EXTREF", "":
		return nil, nil
	case "BYTE":
		code, err := e.encodeByte(stmt)
		if err != nil {
			e.errs.AddError(parser.NewError(e.pos(stmt), parser.ErrorExpression, WrapEncodingError(stmt, err).Error()))
			return nil, nil
		}
		return code, nil
	case "WORD":
		return e.encodeWord(st, stmt)
	case "RESB", "RESW":
		return nil, nil
	}

	entry, ok := e.opcodes.Lookup(mnemonic)
	if !ok {
		e.errs.AddError(parser.NewStatementError(e.pos(stmt), parser.ErrorUnknownMnemonic, stmt.Mnemonic, stmt.Operand,
			"unknown mnemonic "+stmt.Mnemonic))
		return nil, nil
	}

	if stmt.Extended && !entry.Formats[opcode.Format3] {
		e.errs.AddError(parser.NewStatementError(e.pos(stmt), parser.ErrorFormat, stmt.Mnemonic, stmt.Operand,
			"'+' extended format is not valid on "+stmt.Mnemonic))
		return nil, nil
	}

	switch {
	case entry.Formats[opcode.Format1]:
		return e.encodeFormat1(entry), nil
	case entry.Formats[opcode.Format2]:
		code, err := e.encodeFormat2(entry, stmt.Operand)
		if err != nil {
			e.errs.AddError(parser.NewError(e.pos(stmt), parser.ErrorFormat, WrapEncodingError(stmt, err).Error()))
			return nil, nil
		}
		return code, nil
	case entry.Formats[opcode.Format3]:
		code, mod, err := e.encodeFormat34(st, stmt, entry)
		if err != nil {
			e.errs.AddError(parser.NewError(e.pos(stmt), parser.ErrorDisplacementOutOfRange, WrapEncodingError(stmt, err).Error()))
			return nil, nil
		}
		if mod != nil {
			return code, []object.Modification{*mod}
		}
		return code, nil
	default:
		e.errs.AddError(parser.NewError(e.pos(stmt), parser.ErrorFormat, "mnemonic "+stmt.Mnemonic+" has no usable format"))
		return nil, nil
	}
}

func (e *Encoder) setBase(st *sectionState, stmt *assembler.Stmt) {
	operand := strings.TrimSpace(stmt.Operand)
	if sym, ok := e.prog.Symbols.Lookup(st.cs.Name, operand); ok && sym.Defined {
		st.baseActive = true
		st.baseValue = sym.Value
		return
	}
	e.errs.AddError(parser.NewError(e.pos(stmt), parser.ErrorUndefinedSymbol, "BASE operand "+operand+" is undefined"))
}

func (e *Encoder) pos(stmt *assembler.Stmt) parser.Position {
	return parser.Position{Filename: stmt.Section, Line: stmt.LineNo, Column: 1}
}
