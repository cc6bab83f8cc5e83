package object

import "github.com/sicxe-asm/core/parser"

// TextBuilder accumulates object code bytes into Text records, splitting
// whenever a record would exceed MaxTextRecordBytes or the next chunk
// isn't contiguous with the one being built.
type TextBuilder struct {
	records []Text
	cur     *Text
}

// Append adds code, generated for an instruction or directive starting
// at addr, to the builder.
func (b *TextBuilder) Append(addr uint32, code []byte) {
	if len(code) == 0 {
		return
	}
	if b.cur != nil {
		curEnd := b.cur.StartAddr + uint32(len(b.cur.Bytes))
		if curEnd != addr || len(b.cur.Bytes)+len(code) > parser.MaxTextRecordBytes {
			b.flush()
		}
	}
	if b.cur == nil {
		b.cur = &Text{StartAddr: addr}
	}
	next := addr
	for len(code) > 0 {
		if b.cur == nil {
			b.cur = &Text{StartAddr: next}
		}
		room := parser.MaxTextRecordBytes - len(b.cur.Bytes)
		n := len(code)
		if n > room {
			n = room
		}
		b.cur.Bytes = append(b.cur.Bytes, code[:n]...)
		code = code[n:]
		next += uint32(n)
		if len(code) > 0 {
			b.flush()
		}
	}
}

func (b *TextBuilder) flush() {
	if b.cur != nil && len(b.cur.Bytes) > 0 {
		b.records = append(b.records, *b.cur)
	}
	b.cur = nil
}

// Records returns every Text record built so far, flushing any
// in-progress one first.
func (b *TextBuilder) Records() []Text {
	b.flush()
	return b.records
}
