package parser

// Literal is one entry in a control section's literal pool: its textual
// form as written in the operand (=C'EOF', =X'05', =W'5'), its decoded
// bytes, and the address Pass 1 assigns it when the pool is flushed.
// Two literals with identical textual form in the same section share one
// Literal and one address.
type Literal struct {
	Text    string
	Bytes   []byte
	Address uint32
	Placed  bool
}

func (l *Literal) Length() int {
	return len(l.Bytes)
}

// LiteralTable tracks a control section's literal pool: literals seen but
// not yet placed (pending), and literals already assigned an address
// (placed). This mirrors the pending/placed split an encoder's literal
// pool bookkeeping needs, adapted to run during Pass 1 rather than during
// code generation.
type LiteralTable struct {
	byText  map[string]*Literal
	pending []*Literal
	placed  []*Literal
}

// NewLiteralTable creates an empty literal table.
func NewLiteralTable() *LiteralTable {
	return &LiteralTable{byText: make(map[string]*Literal)}
}

// Register records a reference to a literal by its textual form, decoding
// it if this is the first time it's been seen in this section. It returns
// the (possibly shared) Literal.
func (lt *LiteralTable) Register(text string) (*Literal, error) {
	if lit, ok := lt.byText[text]; ok {
		return lit, nil
	}
	_, bytes, err := DecodeConstant(text[1:]) // strip leading '='
	if err != nil {
		return nil, err
	}
	lit := &Literal{Text: text, Bytes: bytes}
	lt.byText[text] = lit
	lt.pending = append(lt.pending, lit)
	return lit, nil
}

// Pending returns the literals awaiting placement, in first-seen order.
func (lt *LiteralTable) Pending() []*Literal {
	return lt.pending
}

// PendingBytes returns the total size, in bytes, of every pending
// literal — used to decide whether an upcoming RESB/RESW must trigger an
// automatic pool flush first.
func (lt *LiteralTable) PendingBytes() int {
	n := 0
	for _, lit := range lt.pending {
		n += lit.Length()
	}
	return n
}

// Flush assigns consecutive addresses, starting at locctr, to every
// pending literal and moves them to placed. It returns the LOCCTR
// advanced past the pool.
func (lt *LiteralTable) Flush(locctr uint32) uint32 {
	for _, lit := range lt.pending {
		lit.Address = locctr
		lit.Placed = true
		locctr += uint32(lit.Length())
		lt.placed = append(lt.placed, lit)
	}
	lt.pending = nil
	return locctr
}

// Placed returns every literal that has been assigned an address, in
// placement order — used by the listing emitter to show pool entries.
func (lt *LiteralTable) Placed() []*Literal {
	return lt.placed
}
