package parser

import "fmt"

// SymbolKind classifies what a Symbol represents.
type SymbolKind int

const (
	SymbolLabel SymbolKind = iota
	SymbolEquate
	SymbolExternDef
	SymbolExternRef
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolLabel:
		return "label"
	case SymbolEquate:
		return "equate"
	case SymbolExternDef:
		return "extdef"
	case SymbolExternRef:
		return "extref"
	default:
		return "unknown"
	}
}

// Symbol is one row of a control section's symbol table: a name, its
// owning section, its value (an address or an EQU constant), its kind, and
// whether that value is subject to relocation at link time.
type Symbol struct {
	Name        string
	Section     string
	Value       uint32
	Kind        SymbolKind
	Relocatable bool
	Defined     bool // false only for a registered-but-unresolved EXTREF
}

// SymbolTable holds every symbol, scoped by owning control section: within
// one section names are unique, but the same name may recur across
// sections (two CSECTs may each define LOOP). Lookup is always scoped by
// the caller's current section.
type SymbolTable struct {
	sections map[string]map[string]*Symbol
}

// NewSymbolTable creates an empty, multi-section symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{sections: make(map[string]map[string]*Symbol)}
}

// Define adds a new symbol to section. It returns an error
// (ErrorDuplicateSymbol in spirit) if the name is already defined in that
// section. An EXTREF placeholder (Defined=false) does not count as a
// definition, so Define may replace it.
func (st *SymbolTable) Define(section, name string, kind SymbolKind, value uint32, relocatable bool) error {
	tbl := st.sectionTable(section)
	if existing, ok := tbl[name]; ok && existing.Defined {
		return fmt.Errorf("duplicate symbol %q in section %q", name, section)
	}
	tbl[name] = &Symbol{
		Name:        name,
		Section:     section,
		Value:       value,
		Kind:        kind,
		Relocatable: relocatable,
		Defined:     true,
	}
	return nil
}

// DefineExternRef registers name as an external reference in section: its
// value is undefined (a link-time fixup, not a numeric value) until the
// object program is linked, so it's entered with Defined=false.
func (st *SymbolTable) DefineExternRef(section, name string) {
	tbl := st.sectionTable(section)
	if _, ok := tbl[name]; ok {
		return
	}
	tbl[name] = &Symbol{Name: name, Section: section, Kind: SymbolExternRef}
}

// Lookup finds name within section.
func (st *SymbolTable) Lookup(section, name string) (*Symbol, bool) {
	tbl, ok := st.sections[section]
	if !ok {
		return nil, false
	}
	sym, ok := tbl[name]
	return sym, ok
}

// SetValue overwrites the value of an existing symbol in section; an
// unknown section or name is ignored.
func (st *SymbolTable) SetValue(section, name string, value uint32) {
	if tbl, ok := st.sections[section]; ok {
		if sym, ok := tbl[name]; ok {
			sym.Value = value
		}
	}
}

// All returns every symbol registered in section, EXTREF placeholders
// (Defined=false) included, for listing or cross-reference use.
func (st *SymbolTable) All(section string) map[string]*Symbol {
	return st.sectionTable(section)
}

func (st *SymbolTable) sectionTable(section string) map[string]*Symbol {
	tbl, ok := st.sections[section]
	if !ok {
		tbl = make(map[string]*Symbol)
		st.sections[section] = tbl
	}
	return tbl
}
