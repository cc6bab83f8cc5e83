package object

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTo_HeaderTextEnd(t *testing.T) {
	prog := &Program{Sections: []*Section{
		{
			Header: Header{Name: "COPY", StartAddr: 0x1000, Length: 0x2},
			Text:   []Text{{StartAddr: 0x1000, Bytes: []byte{0x14, 0x10, 0x33}}},
			End:    End{FirstExecAddr: 0x1000, HasEntry: true},
		},
	}}

	var sb strings.Builder
	require.NoError(t, prog.WriteTo(&sb))
	out := sb.String()

	assert.Contains(t, out, "HCOPY  001000000002\n", "missing expected H record")
	assert.Contains(t, out, "T00100003141033\n", "missing expected T record")
	assert.Contains(t, out, "E001000\n", "missing expected E record")
}

func TestWriteTo_DefineReferModification(t *testing.T) {
	prog := &Program{Sections: []*Section{
		{
			Header: Header{Name: "COPY", StartAddr: 0, Length: 0x10},
			Define: Define{Symbols: []SymbolValue{{Name: "LIST", Value: 0x36}}},
			Refer:  Refer{Names: []string{"RDREC", "WRREC"}},
			Mods:   []Modification{{Addr: 0x6, HalfBytes: 5, Sign: '+', Symbol: "RDREC"}},
			End:    End{},
		},
	}}

	var sb strings.Builder
	require.NoError(t, prog.WriteTo(&sb))
	out := sb.String()

	assert.Contains(t, out, "DLIST  000036\n", "missing D record")
	assert.Contains(t, out, "RRDREC WRREC \n", "missing R record")
	assert.Contains(t, out, "M00000605+RDREC\n", "missing M record")
	if !strings.Contains(out, "\nE\n") && !strings.HasSuffix(out, "E\n") {
		t.Errorf("missing entry-less E record, got:\n%s", out)
	}
}

func TestTextBuilder_SplitsAtMaxLength(t *testing.T) {
	var b TextBuilder
	code := make([]byte, 35)
	for i := range code {
		code[i] = byte(i)
	}
	b.Append(0x1000, code)
	recs := b.Records()
	require.Len(t, recs, 2)
	assert.Len(t, recs[0].Bytes, 30)
	assert.Len(t, recs[1].Bytes, 5)
	assert.Equal(t, uint32(0x1000+30), recs[1].StartAddr)
}

func TestTextBuilder_NonContiguousFlush(t *testing.T) {
	var b TextBuilder
	b.Append(0x1000, []byte{0x01, 0x02})
	b.Append(0x2000, []byte{0x03})
	recs := b.Records()
	assert.Len(t, recs, 2, "expected 2 records for non-contiguous appends")
}
