package symbols

import (
	"testing"

	"lume/internal/ast"
)

func TestFunctionLookup(t *testing.T) {
	table := NewTable()
	table.DefineFunction("main", &ast.NamedType{Name: "u64"})

	sym, ok := table.Function("main")
	if !ok {
		t.Fatalf("main should be defined")
	}
	if sym.Output.String() != "u64" {
		t.Fatalf("output=%q, want u64", sym.Output)
	}
	if _, ok := table.Function("ghost"); ok {
		t.Fatalf("ghost should not be defined")
	}
}

func TestCompositeLookup(t *testing.T) {
	table := NewTable()
	table.DefineComposite("Token", true, "private")
	table.DefineComposite("Point", false, "")

	record, ok := table.Composite("Token")
	if !ok || !record.IsRecord || record.Visibility != "private" {
		t.Fatalf("unexpected record symbol: %+v ok=%v", record, ok)
	}
	strct, ok := table.Composite("Point")
	if !ok || strct.IsRecord {
		t.Fatalf("unexpected struct symbol: %+v ok=%v", strct, ok)
	}
	if _, ok := table.Composite("Mystery"); ok {
		t.Fatalf("Mystery should not be defined")
	}
}
