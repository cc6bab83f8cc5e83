package assembler

import "github.com/sicxe-asm/core/parser"

// Stmt is one source line annotated with the address Pass 1 assigned it.
// Directives that don't generate code (EQU, BASE, USE, ...) still carry the
// LOCCTR value in effect when they were processed, for listing purposes.
type Stmt struct {
	*parser.Line
	Address uint32
	Section string
	Block   string
}

// Block is one USE program block within a control section: its total
// length after Pass 1, and the byte offset it's relocated to once every
// block in the section has been concatenated in first-use order.
type Block struct {
	Name   string
	Length uint32
	Offset uint32
}

// ControlSection is one CSECT's worth of Pass 1 output: its statement
// stream with addresses, its blocks, its literal pool, and the external
// names it declares.
type ControlSection struct {
	Name       string
	Stmts      []*Stmt
	Blocks     []*Block
	Literals   *parser.LiteralTable
	ExternDefs []string
	ExternRefs []string
	StartAddr  uint32
	Length     uint32

	blockIndex    map[string]int
	symbolBlocks  map[string]string
	literalBlocks map[*parser.Literal]string
}

func newControlSection(name string) *ControlSection {
	return &ControlSection{
		Name:          name,
		Literals:      parser.NewLiteralTable(),
		blockIndex:    make(map[string]int),
		symbolBlocks:  make(map[string]string),
		literalBlocks: make(map[*parser.Literal]string),
	}
}

func (cs *ControlSection) block(name string) *Block {
	if i, ok := cs.blockIndex[name]; ok {
		return cs.Blocks[i]
	}
	b := &Block{Name: name}
	cs.blockIndex[name] = len(cs.Blocks)
	cs.Blocks = append(cs.Blocks, b)
	return b
}

// layout concatenates blocks in first-use order, assigning each a byte
// offset from the section's start, and returns the section's total
// length. The default (unnamed) block, if present, is always laid out
// first since code preceding any USE directive belongs to it.
func (cs *ControlSection) layout() uint32 {
	var offset uint32
	order := make([]*Block, 0, len(cs.Blocks))
	if i, ok := cs.blockIndex[""]; ok {
		order = append(order, cs.Blocks[i])
	}
	for _, b := range cs.Blocks {
		if b.Name != "" {
			order = append(order, b)
		}
	}
	for _, b := range order {
		b.Offset = offset
		offset += b.Length
	}
	return offset
}

// BlockOffset returns the laid-out byte offset of the named block, or 0
// for the default block or an unknown name.
func (cs *ControlSection) BlockOffset(name string) uint32 {
	if i, ok := cs.blockIndex[name]; ok {
		return cs.Blocks[i].Offset
	}
	return 0
}

// Program is the full Pass 1 result: every control section in source
// order, sharing one symbol table scoped per section name.
type Program struct {
	Sections []*ControlSection
	Symbols  *parser.SymbolTable
}

func (p *Program) section(name string) *ControlSection {
	for _, cs := range p.Sections {
		if cs.Name == name {
			return cs
		}
	}
	cs := newControlSection(name)
	p.Sections = append(p.Sections, cs)
	return cs
}
