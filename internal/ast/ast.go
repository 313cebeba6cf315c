package ast

import (
	"bytes"
	"strconv"
	"strings"
)

// Node is the base interface for all AST nodes.
// Every node must provide a String (for printing and diagnostics).
type Node interface {
	String() string
}

// Statement nodes don't produce values.
// Examples: x = 5u8; return x;
type Statement interface {
	Node
	statementNode() // Dummy method to distinguish statements from expressions
}

// Expression nodes produce values.
// Examples: 5u8, x, f(2u8, 3u8), a + b
type Expression interface {
	Node
	expressionNode() // Dummy method to distinguish expressions from statements
}

// Program is the root node: one compilation unit with its functions.
type Program struct {
	Name      string
	Functions []*Function
}

func (p *Program) String() string {
	var out bytes.Buffer
	for i, fn := range p.Functions {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(fn.String())
	}
	return out.String()
}

// Function is one function after flattening: straight-line statements only.
type Function struct {
	Name       string
	Parameters []*Parameter
	Output     Type
	Body       *Block
}

func (f *Function) String() string {
	var out bytes.Buffer
	params := make([]string, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		params = append(params, p.String())
	}
	out.WriteString("function " + f.Name + "(" + strings.Join(params, ", ") + ")")
	if f.Output != nil {
		if _, unit := f.Output.(*UnitType); !unit {
			out.WriteString(" -> " + f.Output.String())
		}
	}
	out.WriteString(" ")
	out.WriteString(f.Body.String())
	return out.String()
}

// Parameter is a function input binding.
type Parameter struct {
	Name     string
	TypeName string
}

func (p *Parameter) String() string {
	if p.TypeName == "" {
		return p.Name
	}
	return p.Name + ": " + p.TypeName
}

// Identifier represents a variable name.
type Identifier struct {
	Name string
}

func (i *Identifier) expressionNode() {}
func (i *Identifier) String() string  { return i.Name }

// Literal represents a value in its textual source form,
// e.g. "1u8", "true", "0field". Lowering never reinterprets it.
type Literal struct {
	Value string
}

func (l *Literal) expressionNode() {}
func (l *Literal) String() string  { return l.Value }

// BinaryExpression represents left op right.
type BinaryExpression struct {
	Left  Expression
	Op    BinaryOperator
	Right Expression
}

func (b *BinaryExpression) expressionNode() {}
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

// UnaryExpression represents op applied to one operand.
type UnaryExpression struct {
	Op      UnaryOperator
	Operand Expression
}

func (u *UnaryExpression) expressionNode() {}
func (u *UnaryExpression) String() string {
	return u.Op.String() + "(" + u.Operand.String() + ")"
}

// TernaryExpression represents condition ? ifTrue : ifFalse.
// After flattening all three operands are evaluated unconditionally.
type TernaryExpression struct {
	Condition Expression
	IfTrue    Expression
	IfFalse   Expression
}

func (t *TernaryExpression) expressionNode() {}
func (t *TernaryExpression) String() string {
	return "(" + t.Condition.String() + " ? " + t.IfTrue.String() + " : " + t.IfFalse.String() + ")"
}

// TupleExpression represents (expr1, expr2, ...).
type TupleExpression struct {
	Elements []Expression
}

func (t *TupleExpression) expressionNode() {}
func (t *TupleExpression) String() string {
	parts := make([]string, 0, len(t.Elements))
	for _, el := range t.Elements {
		parts = append(parts, el.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// StructExpression represents Name { member: value, shorthand, ... }.
type StructExpression struct {
	Name    string
	Members []*StructMember
}

func (s *StructExpression) expressionNode() {}
func (s *StructExpression) String() string {
	parts := make([]string, 0, len(s.Members))
	for _, m := range s.Members {
		parts = append(parts, m.String())
	}
	return s.Name + " { " + strings.Join(parts, ", ") + " }"
}

// StructMember is one member initializer; a nil Value is the shorthand
// form where the member name doubles as the initializing identifier.
type StructMember struct {
	Name  string
	Value Expression
}

func (m *StructMember) String() string {
	if m.Value == nil {
		return m.Name
	}
	return m.Name + ": " + m.Value.String()
}

// MemberAccess represents inner.name.
type MemberAccess struct {
	Inner Expression
	Name  string
}

func (m *MemberAccess) expressionNode() {}
func (m *MemberAccess) String() string  { return m.Inner.String() + "." + m.Name }

// AssociatedFunction represents TypeName::name(args...), e.g. BHP256::hash(v).
// The receiver type is one of the closed set of hash intrinsics.
type AssociatedFunction struct {
	TypeName string
	Name     string
	Args     []Expression
}

func (a *AssociatedFunction) expressionNode() {}
func (a *AssociatedFunction) String() string {
	args := make([]string, 0, len(a.Args))
	for _, arg := range a.Args {
		args = append(args, arg.String())
	}
	return a.TypeName + "::" + a.Name + "(" + strings.Join(args, ", ") + ")"
}

// AssociatedConstant represents TypeName::NAME. Not lowered by the target ISA.
type AssociatedConstant struct {
	TypeName string
	Name     string
}

func (a *AssociatedConstant) expressionNode() {}
func (a *AssociatedConstant) String() string  { return a.TypeName + "::" + a.Name }

// TupleAccess represents tuple.index. Not lowered by the target ISA.
type TupleAccess struct {
	Tuple Expression
	Index int
}

func (t *TupleAccess) expressionNode() {}
func (t *TupleAccess) String() string  { return t.Tuple.String() + "." + strconv.Itoa(t.Index) }

// CallExpression represents a user function call. A non-empty External is
// the qualified path of the program that defines the callee.
type CallExpression struct {
	Function  string
	External  string
	Arguments []Expression
}

func (c *CallExpression) expressionNode() {}
func (c *CallExpression) String() string {
	args := make([]string, 0, len(c.Arguments))
	for _, arg := range c.Arguments {
		args = append(args, arg.String())
	}
	name := c.Function
	if c.External != "" {
		name = c.External + "/" + name
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}

// UnitExpression is the empty value (). Eliminated before this phase.
type UnitExpression struct{}

func (u *UnitExpression) expressionNode() {}
func (u *UnitExpression) String() string  { return "()" }

// ErrExpression is the parser's error placeholder. Eliminated before this phase.
type ErrExpression struct{}

func (e *ErrExpression) expressionNode() {}
func (e *ErrExpression) String() string  { return "<err>" }
