package dce

import (
	"lume/internal/ast"
	"lume/internal/diag"
)

// expression reconstructs an expression, recording identifier uses into the
// liveness set while the necessity flag is set. The returned tree shares no
// nodes with the input.
func (e *Eliminator) expression(x ast.Expression) (ast.Expression, error) {
	switch x := x.(type) {
	case *ast.Identifier:
		if e.necessary {
			e.used[x.Name] = struct{}{}
		}
		return &ast.Identifier{Name: x.Name}, nil

	case *ast.Literal:
		return &ast.Literal{Value: x.Value}, nil

	case *ast.BinaryExpression:
		left, err := e.expression(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.expression(x.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpression{Left: left, Op: x.Op, Right: right}, nil

	case *ast.UnaryExpression:
		operand, err := e.expression(x.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Op: x.Op, Operand: operand}, nil

	case *ast.TernaryExpression:
		condition, err := e.expression(x.Condition)
		if err != nil {
			return nil, err
		}
		ifTrue, err := e.expression(x.IfTrue)
		if err != nil {
			return nil, err
		}
		ifFalse, err := e.expression(x.IfFalse)
		if err != nil {
			return nil, err
		}
		return &ast.TernaryExpression{Condition: condition, IfTrue: ifTrue, IfFalse: ifFalse}, nil

	case *ast.TupleExpression:
		elements, err := e.expressions(x.Elements)
		if err != nil {
			return nil, err
		}
		return &ast.TupleExpression{Elements: elements}, nil

	case *ast.StructExpression:
		return e.structInit(x)

	case *ast.MemberAccess:
		inner, err := e.expression(x.Inner)
		if err != nil {
			return nil, err
		}
		return &ast.MemberAccess{Inner: inner, Name: x.Name}, nil

	case *ast.AssociatedFunction:
		args, err := e.expressions(x.Args)
		if err != nil {
			return nil, err
		}
		return &ast.AssociatedFunction{TypeName: x.TypeName, Name: x.Name, Args: args}, nil

	case *ast.AssociatedConstant:
		return &ast.AssociatedConstant{TypeName: x.TypeName, Name: x.Name}, nil

	case *ast.TupleAccess:
		tuple, err := e.expression(x.Tuple)
		if err != nil {
			return nil, err
		}
		return &ast.TupleAccess{Tuple: tuple, Index: x.Index}, nil

	case *ast.CallExpression:
		args, err := e.expressions(x.Arguments)
		if err != nil {
			return nil, err
		}
		return &ast.CallExpression{Function: x.Function, External: x.External, Arguments: args}, nil

	case *ast.UnitExpression:
		return &ast.UnitExpression{}, nil

	case *ast.ErrExpression:
		return nil, diag.Bugf("error expressions should not be in the AST at this phase of compilation")

	default:
		return nil, diag.Bugf("unrecognized expression %T", x)
	}
}

// structInit always recurses into every member's initializer: struct
// construction is only reachable from a kept statement, so its uses count.
func (e *Eliminator) structInit(x *ast.StructExpression) (ast.Expression, error) {
	members := make([]*ast.StructMember, 0, len(x.Members))
	for _, m := range x.Members {
		if m.Value == nil {
			return nil, diag.Bugf("static single assignment ensures struct member initializers always exist")
		}
		value, err := e.expression(m.Value)
		if err != nil {
			return nil, err
		}
		members = append(members, &ast.StructMember{Name: m.Name, Value: value})
	}
	return &ast.StructExpression{Name: x.Name, Members: members}, nil
}

func (e *Eliminator) expressions(in []ast.Expression) ([]ast.Expression, error) {
	out := make([]ast.Expression, 0, len(in))
	for _, x := range in {
		rebuilt, err := e.expression(x)
		if err != nil {
			return nil, err
		}
		out = append(out, rebuilt)
	}
	return out, nil
}
