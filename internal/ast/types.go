package ast

import "strings"

// Type describes a function output type. Full type information lives in the
// upstream checker; code generation only needs the unit / scalar / tuple split.
type Type interface {
	typeNode()
	String() string
}

// UnitType is the empty output type.
type UnitType struct{}

func (t *UnitType) typeNode()      {}
func (t *UnitType) String() string { return "()" }

// NamedType is any scalar or composite type referenced by name, e.g. "u64".
type NamedType struct {
	Name string
}

func (t *NamedType) typeNode()      {}
func (t *NamedType) String() string { return t.Name }

// TupleType is an N-element tuple type; parsing guarantees N >= 2.
type TupleType struct {
	Elements []Type
}

func (t *TupleType) typeNode() {}
func (t *TupleType) String() string {
	parts := make([]string, 0, len(t.Elements))
	for _, el := range t.Elements {
		parts = append(parts, el.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
