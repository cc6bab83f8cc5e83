package parser

import "testing"

func TestSymbolTable_DefineAndLookup(t *testing.T) {
	st := NewSymbolTable()
	if err := st.Define("COPY", "FIRST", SymbolLabel, 0x1000, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym, ok := st.Lookup("COPY", "FIRST")
	if !ok {
		t.Fatal("expected to find FIRST")
	}
	if sym.Value != 0x1000 || sym.Kind != SymbolLabel || !sym.Relocatable {
		t.Errorf("sym = %+v", sym)
	}
}

func TestSymbolTable_DuplicateDefinition(t *testing.T) {
	st := NewSymbolTable()
	if err := st.Define("COPY", "FIRST", SymbolLabel, 0x1000, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := st.Define("COPY", "FIRST", SymbolLabel, 0x2000, true); err == nil {
		t.Fatal("expected duplicate-symbol error")
	}
}

func TestSymbolTable_SameNameDifferentSections(t *testing.T) {
	st := NewSymbolTable()
	if err := st.Define("COPY", "LOOP", SymbolLabel, 0x100, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := st.Define("OTHER", "LOOP", SymbolLabel, 0x200, true); err != nil {
		t.Fatalf("expected no collision across sections: %v", err)
	}
	a, _ := st.Lookup("COPY", "LOOP")
	b, _ := st.Lookup("OTHER", "LOOP")
	if a.Value == b.Value {
		t.Error("expected distinct values per section")
	}
}

func TestSymbolTable_ExternRefPlaceholder(t *testing.T) {
	st := NewSymbolTable()
	st.DefineExternRef("COPY", "RDREC")
	sym, ok := st.Lookup("COPY", "RDREC")
	if !ok {
		t.Fatal("expected RDREC placeholder present")
	}
	if sym.Defined {
		t.Error("expected extref placeholder to be undefined")
	}
	if sym.Kind != SymbolExternRef {
		t.Errorf("kind = %v, want SymbolExternRef", sym.Kind)
	}

	// A later Define for the same name must succeed since the placeholder
	// was never Defined.
	if err := st.Define("COPY", "RDREC", SymbolExternRef, 0, false); err != nil {
		t.Errorf("expected extref placeholder fill-in to succeed: %v", err)
	}
}

func TestSymbolTable_ExternRefIdempotent(t *testing.T) {
	st := NewSymbolTable()
	st.DefineExternRef("COPY", "RDREC")
	st.DefineExternRef("COPY", "RDREC")
	if len(st.All("COPY")) != 1 {
		t.Errorf("expected one entry, got %d", len(st.All("COPY")))
	}
}

func TestSymbolTable_SetValue(t *testing.T) {
	st := NewSymbolTable()
	st.Define("COPY", "FIRST", SymbolLabel, 0, true)
	st.SetValue("COPY", "FIRST", 0x2050)
	sym, _ := st.Lookup("COPY", "FIRST")
	if sym.Value != 0x2050 {
		t.Errorf("value = %x, want 0x2050", sym.Value)
	}
}

func TestSymbolTable_LookupMissingSection(t *testing.T) {
	st := NewSymbolTable()
	if _, ok := st.Lookup("NOPE", "X"); ok {
		t.Error("expected lookup in unknown section to fail")
	}
}
