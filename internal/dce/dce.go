// Package dce removes assignments whose results are never consumed.
//
// The input is in flattened SSA form: every variable has exactly one
// definition site and no branches or loops remain. That makes a single
// backward sweep per block sufficient: a variable's liveness, once
// established by a later use, can never be invalidated by an earlier
// statement.
package dce

import (
	"lume/internal/ast"
	"lume/internal/diag"
)

// Eliminator carries the per-traversal state of one dead code elimination
// run. State is rebuilt per function so independent compilations never
// interfere.
type Eliminator struct {
	// used holds the names considered live: referenced by a later-kept
	// statement or by a side-effecting statement.
	used map[string]struct{}
	// necessary is set only while reconstructing the sub-expressions of a
	// statement that is unconditionally kept; it governs whether visited
	// identifiers are recorded into the liveness set.
	necessary bool
}

// New returns an eliminator with empty traversal state.
func New() *Eliminator {
	return &Eliminator{used: make(map[string]struct{})}
}

// Program eliminates dead code in every function of the program, returning
// a new tree. The input tree is left untouched.
func (e *Eliminator) Program(p *ast.Program) (*ast.Program, error) {
	out := &ast.Program{Name: p.Name, Functions: make([]*ast.Function, 0, len(p.Functions))}
	for _, fn := range p.Functions {
		eliminated, err := e.Function(fn)
		if err != nil {
			return nil, err
		}
		out.Functions = append(out.Functions, eliminated)
	}
	return out, nil
}

// Function eliminates dead code in one function body with fresh state.
func (e *Eliminator) Function(fn *ast.Function) (*ast.Function, error) {
	e.used = make(map[string]struct{})
	e.necessary = false

	body, err := e.block(fn.Body)
	if err != nil {
		return nil, err
	}
	parameters := make([]*ast.Parameter, 0, len(fn.Parameters))
	for _, p := range fn.Parameters {
		parameters = append(parameters, &ast.Parameter{Name: p.Name, TypeName: p.TypeName})
	}
	return &ast.Function{
		Name:       fn.Name,
		Parameters: parameters,
		Output:     copyType(fn.Output),
		Body:       body,
	}, nil
}

func copyType(t ast.Type) ast.Type {
	switch t := t.(type) {
	case nil:
		return nil
	case *ast.UnitType:
		return &ast.UnitType{}
	case *ast.NamedType:
		return &ast.NamedType{Name: t.Name}
	case *ast.TupleType:
		elements := make([]ast.Type, 0, len(t.Elements))
		for _, el := range t.Elements {
			elements = append(elements, copyType(el))
		}
		return &ast.TupleType{Elements: elements}
	default:
		return t
	}
}

// block rewrites the statements of a block in reverse textual order, then
// restores the original order. Liveness is a backward dataflow fact: a
// variable is live at a point if some later statement uses it.
func (e *Eliminator) block(b *ast.Block) (*ast.Block, error) {
	statements := make([]ast.Statement, 0, len(b.Statements))
	for i := len(b.Statements) - 1; i >= 0; i-- {
		stmt, err := e.statement(b.Statements[i])
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	// Reverse back to original order.
	for i, j := 0, len(statements)-1; i < j; i, j = i+1, j-1 {
		statements[i], statements[j] = statements[j], statements[i]
	}
	return &ast.Block{Statements: statements}, nil
}

func (e *Eliminator) statement(s ast.Statement) (ast.Statement, error) {
	switch s := s.(type) {
	case *ast.AssignStatement:
		return e.assign(s)
	case *ast.ReturnStatement:
		return e.returnStatement(s)
	case *ast.AssertStatement:
		return e.assert(s)
	case *ast.IncrementStatement:
		return e.increment(s)
	case *ast.DecrementStatement:
		return e.decrement(s)
	case *ast.ExpressionStatement:
		return e.expressionStatement(s)
	case *ast.EmptyStatement:
		return &ast.EmptyStatement{}, nil
	case *ast.ConditionalStatement:
		return nil, diag.Bugf("conditional statements should not be in the AST at this phase of compilation")
	case *ast.IterationStatement:
		return nil, diag.Bugf("iteration statements should not be in the AST at this phase of compilation")
	case *ast.ConsoleStatement:
		return nil, diag.Bugf("console statements should not be in the AST at this phase of compilation")
	case *ast.DefinitionStatement:
		return nil, diag.Bugf("definition statements should not be in the AST at this phase of compilation")
	default:
		return nil, diag.Bugf("unrecognized statement %T", s)
	}
}

// assign keeps an assignment only if some later-kept statement uses one of
// the assigned names; otherwise it becomes a no-op placeholder.
func (e *Eliminator) assign(s *ast.AssignStatement) (ast.Statement, error) {
	used, err := e.placeIsUsed(s.Place)
	if err != nil {
		return nil, err
	}
	if !used {
		return &ast.EmptyStatement{}, nil
	}

	e.necessary = true
	value, err := e.expression(s.Value)
	e.necessary = false
	if err != nil {
		return nil, err
	}
	// The place is rebuilt with the necessity flag clear: assigned names
	// are definitions, not uses.
	place, err := e.expression(s.Place)
	if err != nil {
		return nil, err
	}
	return &ast.AssignStatement{Place: place, Value: value}, nil
}

func (e *Eliminator) placeIsUsed(place ast.Expression) (bool, error) {
	switch place := place.(type) {
	case *ast.Identifier:
		_, ok := e.used[place.Name]
		return ok, nil
	case *ast.TupleExpression:
		for _, el := range place.Elements {
			ident, ok := el.(*ast.Identifier)
			if !ok {
				return false, diag.Bugf("previous passes guarantee tuple assignment targets are identifiers, found %T", el)
			}
			if _, live := e.used[ident.Name]; live {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, diag.Bugf("previous passes guarantee an assignment target is an identifier or tuple of identifiers, found %T", place)
	}
}

func (e *Eliminator) returnStatement(s *ast.ReturnStatement) (ast.Statement, error) {
	e.necessary = true
	defer func() { e.necessary = false }()

	expr, err := e.expression(s.Expression)
	if err != nil {
		return nil, err
	}
	var finalize []ast.Expression
	if s.FinalizeArguments != nil {
		finalize = make([]ast.Expression, 0, len(s.FinalizeArguments))
		for _, arg := range s.FinalizeArguments {
			rebuilt, err := e.expression(arg)
			if err != nil {
				return nil, err
			}
			finalize = append(finalize, rebuilt)
		}
	}
	return &ast.ReturnStatement{Expression: expr, FinalizeArguments: finalize}, nil
}

func (e *Eliminator) assert(s *ast.AssertStatement) (ast.Statement, error) {
	e.necessary = true
	defer func() { e.necessary = false }()

	left, err := e.expression(s.Left)
	if err != nil {
		return nil, err
	}
	out := &ast.AssertStatement{Variant: s.Variant, Left: left}
	if s.Variant != ast.AssertPlain {
		right, err := e.expression(s.Right)
		if err != nil {
			return nil, err
		}
		out.Right = right
	}
	return out, nil
}

func (e *Eliminator) increment(s *ast.IncrementStatement) (ast.Statement, error) {
	e.necessary = true
	defer func() { e.necessary = false }()

	index, err := e.expression(s.Index)
	if err != nil {
		return nil, err
	}
	amount, err := e.expression(s.Amount)
	if err != nil {
		return nil, err
	}
	return &ast.IncrementStatement{Mapping: s.Mapping, Index: index, Amount: amount}, nil
}

func (e *Eliminator) decrement(s *ast.DecrementStatement) (ast.Statement, error) {
	e.necessary = true
	defer func() { e.necessary = false }()

	index, err := e.expression(s.Index)
	if err != nil {
		return nil, err
	}
	amount, err := e.expression(s.Amount)
	if err != nil {
		return nil, err
	}
	return &ast.DecrementStatement{Mapping: s.Mapping, Index: index, Amount: amount}, nil
}

// expressionStatement keeps call statements for their effects. Type
// checking guarantees expression statements are always function calls.
func (e *Eliminator) expressionStatement(s *ast.ExpressionStatement) (ast.Statement, error) {
	if _, ok := s.Expression.(*ast.CallExpression); !ok {
		return nil, diag.Bugf("type checking guarantees expression statements are function calls, found %T", s.Expression)
	}
	e.necessary = true
	defer func() { e.necessary = false }()

	expr, err := e.expression(s.Expression)
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expression: expr}, nil
}
