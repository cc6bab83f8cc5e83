package object

import (
	"fmt"
	"io"
	"strings"
)

// WriteTo renders prog as the classic SIC/XE object text format, one
// record per line: H, then D and R if present, then every T record, then
// every M record, then E.
func (p *Program) WriteTo(w io.Writer) error {
	for _, sec := range p.Sections {
		if err := writeSection(w, sec); err != nil {
			return err
		}
	}
	return nil
}

func writeSection(w io.Writer, sec *Section) error {
	if _, err := fmt.Fprintf(w, "H%-6s%06X%06X\n", truncName(sec.Header.Name), sec.Header.StartAddr, sec.Header.Length); err != nil {
		return err
	}

	if len(sec.Define.Symbols) > 0 {
		var sb strings.Builder
		sb.WriteString("D")
		for _, d := range sec.Define.Symbols {
			fmt.Fprintf(&sb, "%-6s%06X", truncName(d.Name), d.Value)
		}
		sb.WriteString("\n")
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}

	if len(sec.Refer.Names) > 0 {
		var sb strings.Builder
		sb.WriteString("R")
		for _, n := range sec.Refer.Names {
			fmt.Fprintf(&sb, "%-6s", truncName(n))
		}
		sb.WriteString("\n")
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}

	for _, t := range sec.Text {
		hexCode := hexBytes(t.Bytes)
		if _, err := fmt.Fprintf(w, "T%06X%02X%s\n", t.StartAddr, len(t.Bytes), hexCode); err != nil {
			return err
		}
	}

	for _, m := range sec.Mods {
		if _, err := fmt.Fprintf(w, "M%06X%02X%c%s\n", m.Addr, m.HalfBytes, m.Sign, truncName(m.Symbol)); err != nil {
			return err
		}
	}

	if sec.End.HasEntry {
		if _, err := fmt.Fprintf(w, "E%06X\n", sec.End.FirstExecAddr); err != nil {
			return err
		}
	} else {
		if _, err := io.WriteString(w, "E\n"); err != nil {
			return err
		}
	}

	return nil
}

func hexBytes(b []byte) string {
	var sb strings.Builder
	for _, v := range b {
		fmt.Fprintf(&sb, "%02X", v)
	}
	return sb.String()
}

// truncName clips a symbol or section name to the 6-character field the
// classic record format allots it.
func truncName(name string) string {
	if len(name) > 6 {
		return name[:6]
	}
	return name
}
