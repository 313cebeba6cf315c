package ast

import (
	"bytes"
	"strings"
)

// Block is a straight-line statement list; flattening has already removed
// every nested control-flow construct.
type Block struct {
	Statements []Statement
}

func (b *Block) statementNode() {}
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Statements {
		out.WriteString("    " + s.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// AssignStatement represents place = value; SSA construction guarantees the
// place is an identifier or a tuple of identifiers, each assigned exactly once.
type AssignStatement struct {
	Place Expression
	Value Expression
}

func (a *AssignStatement) statementNode() {}
func (a *AssignStatement) String() string {
	return a.Place.String() + " = " + a.Value.String() + ";"
}

// ReturnStatement represents return expr; FinalizeArguments, when present,
// are the auxiliary arguments forwarded to the function's finalize block.
type ReturnStatement struct {
	Expression        Expression
	FinalizeArguments []Expression
}

func (r *ReturnStatement) statementNode() {}
func (r *ReturnStatement) String() string {
	var out bytes.Buffer
	out.WriteString("return " + r.Expression.String())
	if r.FinalizeArguments != nil {
		parts := make([]string, 0, len(r.FinalizeArguments))
		for _, arg := range r.FinalizeArguments {
			parts = append(parts, arg.String())
		}
		out.WriteString(" then finalize(" + strings.Join(parts, ", ") + ")")
	}
	out.WriteString(";")
	return out.String()
}

// AssertVariant distinguishes the three assertion forms.
type AssertVariant int

const (
	AssertPlain AssertVariant = iota // assert(expr)
	AssertEq                         // assert_eq(left, right)
	AssertNeq                        // assert_neq(left, right)
)

// AssertStatement represents an assertion. The plain variant uses Left only.
type AssertStatement struct {
	Variant AssertVariant
	Left    Expression
	Right   Expression
}

func (a *AssertStatement) statementNode() {}
func (a *AssertStatement) String() string {
	switch a.Variant {
	case AssertEq:
		return "assert_eq(" + a.Left.String() + ", " + a.Right.String() + ");"
	case AssertNeq:
		return "assert_neq(" + a.Left.String() + ", " + a.Right.String() + ");"
	default:
		return "assert(" + a.Left.String() + ");"
	}
}

// IncrementStatement adds Amount to the Mapping entry at Index.
// State-mapping updates are always side-effecting.
type IncrementStatement struct {
	Mapping string
	Index   Expression
	Amount  Expression
}

func (i *IncrementStatement) statementNode() {}
func (i *IncrementStatement) String() string {
	return "increment(" + i.Mapping + ", " + i.Index.String() + ", " + i.Amount.String() + ");"
}

// DecrementStatement subtracts Amount from the Mapping entry at Index.
type DecrementStatement struct {
	Mapping string
	Index   Expression
	Amount  Expression
}

func (d *DecrementStatement) statementNode() {}
func (d *DecrementStatement) String() string {
	return "decrement(" + d.Mapping + ", " + d.Index.String() + ", " + d.Amount.String() + ");"
}

// ExpressionStatement is an expression evaluated for its effect.
// Type checking guarantees the expression is always a function call.
type ExpressionStatement struct {
	Expression Expression
}

func (e *ExpressionStatement) statementNode() {}
func (e *ExpressionStatement) String() string { return e.Expression.String() + ";" }

// EmptyStatement is the no-op placeholder left behind by dead code
// elimination; it carries no instructions forward.
type EmptyStatement struct{}

func (e *EmptyStatement) statementNode() {}
func (e *EmptyStatement) String() string { return ";" }

// ConditionalStatement is a branch. Flattening removes these; one reaching
// a back-end pass is an upstream bug.
type ConditionalStatement struct {
	Condition Expression
	Then      *Block
	Otherwise Statement
}

func (c *ConditionalStatement) statementNode() {}
func (c *ConditionalStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if " + c.Condition.String() + " " + c.Then.String())
	if c.Otherwise != nil {
		out.WriteString(" else " + c.Otherwise.String())
	}
	return out.String()
}

// IterationStatement is a bounded loop. Loop unrolling removes these.
type IterationStatement struct {
	Variable string
	Start    Expression
	Stop     Expression
	Body     *Block
}

func (i *IterationStatement) statementNode() {}
func (i *IterationStatement) String() string {
	return "for " + i.Variable + " in " + i.Start.String() + ".." + i.Stop.String() + " " + i.Body.String()
}

// ConsoleStatement is a debug print. Parsing rejects these in programs
// destined for the target ISA.
type ConsoleStatement struct {
	Expression Expression
}

func (c *ConsoleStatement) statementNode() {}
func (c *ConsoleStatement) String() string {
	return "console.log(" + c.Expression.String() + ");"
}

// DefinitionStatement is a pre-SSA let binding. SSA construction replaces
// these with assignment statements.
type DefinitionStatement struct {
	Name  string
	Value Expression
}

func (d *DefinitionStatement) statementNode() {}
func (d *DefinitionStatement) String() string {
	return "let " + d.Name + " = " + d.Value.String() + ";"
}
