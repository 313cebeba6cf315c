// Package symbols holds the read-only symbol table the back-end passes
// consume. Earlier passes (the checker and SSA builder) populate it; code
// generation only ever looks names up.
package symbols

import "lume/internal/ast"

// FunctionSymbol records what code generation needs to know about a callee.
type FunctionSymbol struct {
	Name   string
	Output ast.Type
}

// CompositeSymbol records a struct or record type. Records carry a
// visibility tag that suffixes the type name in cast instructions.
type CompositeSymbol struct {
	Name       string
	IsRecord   bool
	Visibility string
}

// Table maps names to the declarations earlier passes resolved them to.
type Table struct {
	functions  map[string]FunctionSymbol
	composites map[string]CompositeSymbol
}

// NewTable returns an empty symbol table.
func NewTable() *Table {
	return &Table{
		functions:  make(map[string]FunctionSymbol),
		composites: make(map[string]CompositeSymbol),
	}
}

// DefineFunction records a function's declared output type.
func (t *Table) DefineFunction(name string, output ast.Type) {
	t.functions[name] = FunctionSymbol{Name: name, Output: output}
}

// DefineComposite records a struct or record type.
func (t *Table) DefineComposite(name string, isRecord bool, visibility string) {
	t.composites[name] = CompositeSymbol{Name: name, IsRecord: isRecord, Visibility: visibility}
}

// Function looks up a function by name.
func (t *Table) Function(name string) (FunctionSymbol, bool) {
	sym, ok := t.functions[name]
	return sym, ok
}

// Composite looks up a struct or record type by name.
func (t *Table) Composite(name string) (CompositeSymbol, bool) {
	sym, ok := t.composites[name]
	return sym, ok
}
