package assembler

import (
	"strconv"
	"strings"

	"github.com/sicxe-asm/core/opcode"
	"github.com/sicxe-asm/core/parser"
)

// pass1 walks the expanded line stream once, in source order, assigning
// every label and literal an address and sizing every directive and
// instruction. It never emits object code; that's Pass 2's job once every
// forward reference in this Program has a known value.
type pass1 struct {
	filename string
	opcodes  *opcode.Table
	errs     *parser.ErrorList
	prog     *Program

	cs      *ControlSection
	block   string
	locctrs map[string]uint32 // per-block LOCCTR, keyed by block name
}

// Assemble1 runs Pass 1 over an already macro-expanded line stream and
// returns the resulting Program, along with any errors encountered.
// Processing continues past an error where it safely can, so a single
// Program may carry both a partial layout and a non-empty ErrorList.
func Assemble1(lines []*parser.Line, opcodes *opcode.Table, filename string) (*Program, *parser.ErrorList) {
	p := &pass1{
		filename: filename,
		opcodes:  opcodes,
		errs:     &parser.ErrorList{},
		prog:     &Program{Symbols: parser.NewSymbolTable()},
		locctrs:  make(map[string]uint32),
	}

	for _, line := range lines {
		if line.Blank {
			continue
		}
		p.step(line)
	}

	// A program missing a trailing END still needs its last section's
	// block layout and addresses finalized.
	p.closeSection()

	return p.prog, p.errs
}

func (p *pass1) pos(line *parser.Line) parser.Position {
	return parser.Position{Filename: p.filename, Line: line.LineNo, Column: 1}
}

func (p *pass1) locctr() uint32 {
	return p.locctrs[p.block]
}

func (p *pass1) setLocctr(v uint32) {
	p.locctrs[p.block] = v
}

func (p *pass1) advance(n uint32) {
	p.locctrs[p.block] += n
}

// record appends stmt to the current section with its address holding,
// for now, the LOCCTR relative to the start of its own USE block: block
// offsets within the section aren't known until every block's length has
// been seen, so finalizeAddresses converts every within-block value
// recorded here to a true section address once the section closes.
func (p *pass1) record(line *parser.Line) {
	if p.cs == nil {
		return
	}
	p.cs.Stmts = append(p.cs.Stmts, &Stmt{
		Line:    line,
		Address: p.locctr(),
		Section: p.cs.Name,
		Block:   p.block,
	})
}

func (p *pass1) step(line *parser.Line) {
	mnemonic := strings.ToUpper(line.Mnemonic)

	switch mnemonic {
	case "START":
		p.startSection(line)
		return
	case "CSECT":
		p.closeSection()
		p.openSection(line.Label, 0)
		p.record(line)
		return
	case "END":
		p.record(line)
		p.closeSection()
		p.cs = nil
		return
	case "USE":
		p.record(line)
		p.block = strings.TrimSpace(line.Operand)
		p.cs.block(p.block) // ensure it's registered even if empty
		return
	case "EQU":
		p.doEQU(line)
		return
	case "ORG":
		p.doORG(line)
		return
	case "BASE", "NOBASE":
		p.record(line)
		return
	case "LTORG":
		p.record(line)
		p.flushLiterals()
		return
	case "EXTDEF":
		p.record(line)
		if p.cs != nil {
			p.cs.ExternDefs = append(p.cs.ExternDefs, splitNames(line.Operand)...)
		}
		return
	case "EXTREF":
		p.record(line)
		if p.cs != nil {
			names := splitNames(line.Operand)
			p.cs.ExternRefs = append(p.cs.ExternRefs, names...)
			for _, n := range names {
				p.prog.Symbols.DefineExternRef(p.cs.Name, n)
			}
		}
		return
	case "BYTE":
		p.doStorage(line, p.byteLength(line))
		return
	case "WORD":
		p.doStorage(line, 3)
		return
	case "RESB":
		p.doReserve(line, 1)
		return
	case "RESW":
		p.doReserve(line, 3)
		return
	}

	if mnemonic == "" {
		// A label-only line (no mnemonic): define the label at the
		// current LOCCTR with no code generated.
		if line.HasLabel() {
			p.defineLabel(line)
		}
		p.record(line)
		return
	}

	entry, ok := p.opcodes.Lookup(mnemonic)
	if !ok {
		p.errs.AddError(parser.NewStatementError(p.pos(line), parser.ErrorUnknownMnemonic, line.Mnemonic, line.Operand,
			"unknown mnemonic "+line.Mnemonic))
		return
	}

	if line.Extended && !entry.Formats[opcode.Format3] {
		p.errs.AddError(parser.NewStatementError(p.pos(line), parser.ErrorFormat, line.Mnemonic, line.Operand,
			"'+' extended format is not valid on "+line.Mnemonic))
		return
	}

	if line.HasLabel() {
		p.defineLabel(line)
	}

	if parser.IsLiteralOperand(line.Operand) {
		if lit, err := p.cs.Literals.Register(line.Operand); err != nil {
			p.errs.AddError(parser.NewError(p.pos(line), parser.ErrorLiteral, err.Error()))
		} else {
			_ = lit
		}
	}

	p.record(line)
	p.advance(p.instructionLength(line, entry))
}

func (p *pass1) startSection(line *parser.Line) {
	p.closeSection()
	start := uint32(0)
	if op := strings.TrimSpace(line.Operand); op != "" {
		if v, err := strconv.ParseUint(op, 16, 32); err == nil {
			start = uint32(v)
		}
	}
	p.openSection(line.Label, start)
	p.record(line)
}

func (p *pass1) openSection(name string, start uint32) {
	cs := p.prog.section(name)
	cs.StartAddr = start
	p.cs = cs
	p.block = ""
	p.locctrs = map[string]uint32{"": 0}
}

func (p *pass1) closeSection() {
	if p.cs == nil {
		return
	}
	if p.cs.Literals.PendingBytes() > 0 {
		p.flushLiterals()
	}
	for name, v := range p.locctrs {
		p.cs.block(name).Length = v
	}
	p.cs.Length = p.cs.layout()
	p.finalizeAddresses()
	p.warnUnreferencedExterns()
}

// warnUnreferencedExterns flags an EXTREF name that the section declared
// but never used in an operand. It is an advisory warning only: it never
// blocks assembly.
func (p *pass1) warnUnreferencedExterns() {
	cs := p.cs
	if len(cs.ExternRefs) == 0 {
		return
	}
	used := make(map[string]bool)
	for _, stmt := range cs.Stmts {
		if strings.EqualFold(stmt.Mnemonic, "EXTREF") {
			continue
		}
		for _, tok := range operandTokens(stmt.Operand) {
			used[tok] = true
		}
	}
	for _, name := range cs.ExternRefs {
		if !used[name] {
			p.errs.AddWarning(&parser.Warning{
				Pos:     parser.Position{Filename: p.filename, Column: 1},
				Message: "EXTREF symbol " + name + " is never referenced in section " + cs.Name,
			})
		}
	}
}

// operandTokens splits an operand string into its symbol-like tokens,
// treating anything that isn't a SIC/XE identifier character as a
// separator (commas, arithmetic operators, literal/indexing syntax).
func operandTokens(operand string) []string {
	return strings.FieldsFunc(operand, func(r rune) bool {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '$':
			return false
		default:
			return true
		}
	})
}

// finalizeAddresses converts every within-block LOCCTR value recorded
// while walking this section — statement addresses, relocatable symbol
// values, and placed literal addresses — into a true section address,
// now that layout has assigned each USE block its final offset.
func (p *pass1) finalizeAddresses() {
	cs := p.cs
	for name, block := range cs.symbolBlocks {
		if sym, ok := p.prog.Symbols.Lookup(cs.Name, name); ok && sym.Relocatable {
			sym.Value += cs.StartAddr + cs.BlockOffset(block)
		}
	}
	for _, stmt := range cs.Stmts {
		stmt.Address += cs.StartAddr + cs.BlockOffset(stmt.Block)
	}
	for _, lit := range cs.Literals.Placed() {
		block := cs.literalBlocks[lit]
		lit.Address += cs.StartAddr + cs.BlockOffset(block)
	}
}

func (p *pass1) defineLabel(line *parser.Line) {
	if p.cs == nil {
		return
	}
	if err := p.prog.Symbols.Define(p.cs.Name, line.Label, parser.SymbolLabel, p.locctr(), true); err != nil {
		p.errs.AddError(parser.NewError(p.pos(line), parser.ErrorDuplicateSymbol, err.Error()))
		return
	}
	p.cs.symbolBlocks[line.Label] = p.block
}

func (p *pass1) doEQU(line *parser.Line) {
	if p.cs == nil {
		return
	}
	ev := NewEvaluator(p.prog.Symbols, p.cs.Name, p.locctr)
	value, relocatable, err := ev.Eval(strings.TrimSpace(line.Operand))
	if err != nil {
		p.errs.AddError(parser.NewError(p.pos(line), parser.ErrorExpression, err.Error()))
		p.record(line)
		return
	}
	if line.HasLabel() {
		if existing, ok := p.prog.Symbols.Lookup(p.cs.Name, line.Label); ok && existing.Defined {
			p.errs.AddWarning(&parser.Warning{Pos: p.pos(line), Message: "EQU redefines already-placed label " + line.Label})
		}
		if err := p.prog.Symbols.Define(p.cs.Name, line.Label, parser.SymbolEquate, value, relocatable); err != nil {
			p.errs.AddError(parser.NewError(p.pos(line), parser.ErrorDuplicateSymbol, err.Error()))
		} else if relocatable {
			p.cs.symbolBlocks[line.Label] = p.block
		}
	}
	p.record(line)
}

func (p *pass1) doORG(line *parser.Line) {
	if p.cs == nil {
		return
	}
	op := strings.TrimSpace(line.Operand)
	p.record(line)
	if op == "" {
		return
	}
	ev := NewEvaluator(p.prog.Symbols, p.cs.Name, p.locctr)
	value, _, err := ev.Eval(op)
	if err != nil {
		p.errs.AddError(parser.NewError(p.pos(line), parser.ErrorExpression, err.Error()))
		return
	}
	// ORG operates on the block-local LOCCTR: block offsets within the
	// section aren't resolved until Pass 1 finishes walking it, so the
	// operand is taken as relative to the current USE block's start.
	p.setLocctr(value)
}

func (p *pass1) doStorage(line *parser.Line, size uint32) {
	if line.HasLabel() {
		p.defineLabel(line)
	}
	p.record(line)
	p.advance(size)
}

func (p *pass1) doReserve(line *parser.Line, unit uint32) {
	n, err := strconv.ParseUint(strings.TrimSpace(line.Operand), 10, 32)
	if err != nil {
		p.errs.AddError(parser.NewError(p.pos(line), parser.ErrorExpression, "invalid reserve count "+line.Operand))
		n = 0
	}
	reserved := uint32(n) * unit

	if p.cs != nil && reserved > parser.AutoPoolFlushBytes && p.cs.Literals.PendingBytes() > 0 {
		p.flushLiterals()
	}
	if line.HasLabel() {
		p.defineLabel(line)
	}
	p.record(line)
	p.advance(reserved)
}

func (p *pass1) byteLength(line *parser.Line) uint32 {
	_, bytes, err := parser.DecodeConstant(strings.TrimSpace(line.Operand))
	if err != nil {
		p.errs.AddError(parser.NewError(p.pos(line), parser.ErrorLiteral, err.Error()))
		return 0
	}
	return uint32(len(bytes))
}

// instructionLength sizes an opcode-table entry's encoding: format 2 is
// always 2 bytes, format 1 is always 1, and format 3 is 3 bytes unless the
// line carries the '+' extended-format flag, which promotes it to 4.
func (p *pass1) instructionLength(line *parser.Line, entry opcode.Entry) uint32 {
	if line.Extended && entry.Formats[opcode.Format3] {
		return 4
	}
	if entry.Formats[opcode.Format2] {
		return 2
	}
	if entry.Formats[opcode.Format1] {
		return 1
	}
	return 3
}

func (p *pass1) flushLiterals() {
	if p.cs == nil {
		return
	}
	next := p.cs.Literals.Flush(p.locctr())
	for _, lit := range p.cs.Literals.Placed() {
		if _, tagged := p.cs.literalBlocks[lit]; !tagged {
			p.cs.literalBlocks[lit] = p.block
		}
	}
	p.setLocctr(next)
}

func splitNames(operand string) []string {
	var names []string
	for _, part := range strings.Split(operand, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}
