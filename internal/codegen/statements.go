package codegen

import (
	"fmt"

	"lume/internal/ast"
	"lume/internal/diag"
)

// visitStatement lowers one statement, returning its instruction text.
func (g *Generator) visitStatement(s ast.Statement) (string, error) {
	switch s := s.(type) {
	case *ast.AssignStatement:
		return g.visitAssign(s)
	case *ast.ReturnStatement:
		return g.visitReturn(s)
	case *ast.AssertStatement:
		return g.visitAssert(s)
	case *ast.IncrementStatement:
		index, amount, instructions, err := g.visitMappingOperands(s.Index, s.Amount)
		if err != nil {
			return "", err
		}
		return instructions + fmt.Sprintf("    increment %s[%s] by %s;\n", s.Mapping, index, amount), nil
	case *ast.DecrementStatement:
		index, amount, instructions, err := g.visitMappingOperands(s.Index, s.Amount)
		if err != nil {
			return "", err
		}
		return instructions + fmt.Sprintf("    decrement %s[%s] by %s;\n", s.Mapping, index, amount), nil
	case *ast.ExpressionStatement:
		_, instructions, err := g.visitExpression(s.Expression)
		return instructions, err
	case *ast.EmptyStatement:
		return "", nil
	case *ast.ConditionalStatement:
		return "", diag.Bugf("conditional statements should not be in the AST at this phase of compilation")
	case *ast.IterationStatement:
		return "", diag.Bugf("iteration statements should not be in the AST at this phase of compilation")
	case *ast.ConsoleStatement:
		return "", diag.Bugf("console statements should not be in the AST at this phase of compilation")
	case *ast.DefinitionStatement:
		return "", diag.Bugf("definition statements should not be in the AST at this phase of compilation")
	default:
		return "", diag.Bugf("unrecognized statement %T", s)
	}
}

// visitAssign binds the assigned names to the right-hand side's value
// references. A tuple place consumes one reference per element.
func (g *Generator) visitAssign(s *ast.AssignStatement) (string, error) {
	value, instructions, err := g.visitExpression(s.Value)
	if err != nil {
		return "", err
	}

	switch place := s.Place.(type) {
	case *ast.Identifier:
		if len(value) != 1 {
			return "", diag.Bugf("assignment to %q expects one value reference, got %d", place.Name, len(value))
		}
		g.variables[place.Name] = value[0]
		return instructions, nil

	case *ast.TupleExpression:
		if len(value) != len(place.Elements) {
			return "", diag.Bugf("tuple assignment expects %d value references, got %d", len(place.Elements), len(value))
		}
		for i, el := range place.Elements {
			ident, ok := el.(*ast.Identifier)
			if !ok {
				return "", diag.Bugf("previous passes guarantee tuple assignment targets are identifiers, found %T", el)
			}
			g.variables[ident.Name] = value[i]
		}
		return instructions, nil

	default:
		return "", diag.Bugf("previous passes guarantee an assignment target is an identifier or tuple of identifiers, found %T", place)
	}
}

// visitReturn emits one output per value reference. Finalize arguments are
// lowered for their preludes only; the downstream finalize block consumes
// the references.
func (g *Generator) visitReturn(s *ast.ReturnStatement) (string, error) {
	value, instructions, err := g.visitExpression(s.Expression)
	if err != nil {
		return "", err
	}
	// Finalize arguments are evaluated before the outputs are declared, so
	// every instruction they need precedes the output block.
	for _, arg := range s.FinalizeArguments {
		_, argInstructions, err := g.visitExpression(arg)
		if err != nil {
			return "", err
		}
		instructions += argInstructions
	}
	for _, operand := range value {
		instructions += fmt.Sprintf("    output %s;\n", operand)
	}
	return instructions, nil
}

func (g *Generator) visitAssert(s *ast.AssertStatement) (string, error) {
	left, instructions, err := g.visitExpression(s.Left)
	if err != nil {
		return "", err
	}
	switch s.Variant {
	case ast.AssertPlain:
		return instructions + fmt.Sprintf("    assert %s;\n", left), nil
	case ast.AssertEq, ast.AssertNeq:
		right, rightInstructions, err := g.visitExpression(s.Right)
		if err != nil {
			return "", err
		}
		opcode := "assert.eq"
		if s.Variant == ast.AssertNeq {
			opcode = "assert.neq"
		}
		return instructions + rightInstructions + fmt.Sprintf("    %s %s %s;\n", opcode, left, right), nil
	default:
		return "", diag.Bugf("unrecognized assert variant %d", s.Variant)
	}
}

func (g *Generator) visitMappingOperands(index, amount ast.Expression) (Value, Value, string, error) {
	indexValue, instructions, err := g.visitExpression(index)
	if err != nil {
		return nil, nil, "", err
	}
	amountValue, amountInstructions, err := g.visitExpression(amount)
	if err != nil {
		return nil, nil, "", err
	}
	return indexValue, amountValue, instructions + amountInstructions, nil
}
