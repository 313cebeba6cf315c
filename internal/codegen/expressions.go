package codegen

import (
	"fmt"
	"strings"

	"lume/internal/ast"
	"lume/internal/diag"
)

// visitExpression lowers one expression post-order. It returns the value
// reference denoting where the result lives and the ordered text of every
// instruction that must execute before that reference is valid.
func (g *Generator) visitExpression(x ast.Expression) (Value, string, error) {
	switch x := x.(type) {
	case *ast.Identifier:
		return g.visitIdentifier(x)
	case *ast.Literal:
		return Value{x.Value}, "", nil
	case *ast.BinaryExpression:
		return g.visitBinary(x)
	case *ast.UnaryExpression:
		return g.visitUnary(x)
	case *ast.TernaryExpression:
		return g.visitTernary(x)
	case *ast.TupleExpression:
		return g.visitTuple(x)
	case *ast.StructExpression:
		return g.visitStructInit(x)
	case *ast.MemberAccess:
		return g.visitMemberAccess(x)
	case *ast.AssociatedFunction:
		return g.visitAssociatedFunction(x)
	case *ast.AssociatedConstant:
		return nil, "", diag.Unimplementedf("associated constants are not yet supported by the target ISA")
	case *ast.TupleAccess:
		return nil, "", diag.Unimplementedf("tuple member access is not yet supported by the target ISA")
	case *ast.CallExpression:
		return g.visitCall(x)
	case *ast.UnitExpression:
		return nil, "", diag.Bugf("unit expressions should not be visited during code generation")
	case *ast.ErrExpression:
		return nil, "", diag.Bugf("error expressions should not be in the AST at this phase of compilation")
	default:
		return nil, "", diag.Bugf("unrecognized expression %T", x)
	}
}

func (g *Generator) visitIdentifier(x *ast.Identifier) (Value, string, error) {
	storage, ok := g.variables[x.Name]
	if !ok {
		return nil, "", diag.Bugf("previous passes guarantee every referenced name is bound, %q is not", x.Name)
	}
	return Value{storage}, "", nil
}

func (g *Generator) visitBinary(x *ast.BinaryExpression) (Value, string, error) {
	left, leftInstructions, err := g.visitExpression(x.Left)
	if err != nil {
		return nil, "", err
	}
	right, rightInstructions, err := g.visitExpression(x.Right)
	if err != nil {
		return nil, "", err
	}
	opcode, err := binaryOpcode(x.Op)
	if err != nil {
		return nil, "", err
	}

	destination := g.nextDestination()
	instruction := fmt.Sprintf("    %s %s %s into %s;\n", opcode, left, right, destination)

	return Value{destination}, leftInstructions + rightInstructions + instruction, nil
}

func (g *Generator) visitUnary(x *ast.UnaryExpression) (Value, string, error) {
	operand, operandInstructions, err := g.visitExpression(x.Operand)
	if err != nil {
		return nil, "", err
	}
	opcode, err := unaryOpcode(x.Op)
	if err != nil {
		return nil, "", err
	}

	destination := g.nextDestination()
	instruction := fmt.Sprintf("    %s %s into %s;\n", opcode, operand, destination)

	return Value{destination}, operandInstructions + instruction, nil
}

// visitTernary evaluates all three operands unconditionally: the target ISA
// has no control flow, so both branches' instructions are emitted and the
// ternary instruction selects between their results.
func (g *Generator) visitTernary(x *ast.TernaryExpression) (Value, string, error) {
	condition, conditionInstructions, err := g.visitExpression(x.Condition)
	if err != nil {
		return nil, "", err
	}
	ifTrue, ifTrueInstructions, err := g.visitExpression(x.IfTrue)
	if err != nil {
		return nil, "", err
	}
	ifFalse, ifFalseInstructions, err := g.visitExpression(x.IfFalse)
	if err != nil {
		return nil, "", err
	}

	destination := g.nextDestination()
	instruction := fmt.Sprintf("    ternary %s %s %s into %s;\n", condition, ifTrue, ifFalse, destination)

	return Value{destination}, conditionInstructions + ifTrueInstructions + ifFalseInstructions + instruction, nil
}

// visitTuple returns the joined element references rather than a register;
// callers that need per-element storage split the value themselves.
func (g *Generator) visitTuple(x *ast.TupleExpression) (Value, string, error) {
	elements := make(Value, 0, len(x.Elements))
	var instructions strings.Builder
	for _, element := range x.Elements {
		value, elementInstructions, err := g.visitExpression(element)
		if err != nil {
			return nil, "", err
		}
		elements = append(elements, value...)
		instructions.WriteString(elementInstructions)
	}
	return elements, instructions.String(), nil
}

func (g *Generator) visitStructInit(x *ast.StructExpression) (Value, string, error) {
	composite, ok := g.symbols.Composite(x.Name)
	if !ok {
		return nil, "", diag.Bugf("all composite types should be known at this phase of compilation, %q is not", x.Name)
	}
	name := x.Name
	if composite.IsRecord {
		// record.private; structs carry no visibility
		name = x.Name + "." + composite.Visibility
	}

	var instructions strings.Builder
	var castInstruction strings.Builder
	castInstruction.WriteString("    cast ")

	for _, member := range x.Members {
		var operand Value
		if member.Value != nil {
			value, memberInstructions, err := g.visitExpression(member.Value)
			if err != nil {
				return nil, "", err
			}
			instructions.WriteString(memberInstructions)
			operand = value
		} else {
			// Shorthand member: the name is the initializing identifier.
			value, _, err := g.visitIdentifier(&ast.Identifier{Name: member.Name})
			if err != nil {
				return nil, "", err
			}
			operand = value
		}
		castInstruction.WriteString(operand.String() + " ")
	}

	destination := g.nextDestination()
	fmt.Fprintf(&castInstruction, "into %s as %s;\n", destination, name)
	instructions.WriteString(castInstruction.String())

	return Value{destination}, instructions.String(), nil
}

// visitMemberAccess is a naming operation at this IR level, not a computed
// instruction: the reference is the base reference dotted with the field.
func (g *Generator) visitMemberAccess(x *ast.MemberAccess) (Value, string, error) {
	inner, _, err := g.visitExpression(x.Inner)
	if err != nil {
		return nil, "", err
	}
	return Value{inner.String() + "." + x.Name}, "", nil
}

// BHP256::hash() -> hash.bhp256
func (g *Generator) visitAssociatedFunction(x *ast.AssociatedFunction) (Value, string, error) {
	symbol, err := intrinsicSymbol(x.TypeName)
	if err != nil {
		return nil, "", err
	}

	var instructions strings.Builder
	var call strings.Builder
	fmt.Fprintf(&call, "    %s.%s ", x.Name, symbol)

	for _, arg := range x.Args {
		value, argInstructions, err := g.visitExpression(arg)
		if err != nil {
			return nil, "", err
		}
		instructions.WriteString(argInstructions)
		call.WriteString(value.String() + " ")
	}

	destination := g.nextDestination()
	fmt.Fprintf(&call, "into %s;\n", destination)
	instructions.WriteString(call.String())

	return Value{destination}, instructions.String(), nil
}

func (g *Generator) visitCall(x *ast.CallExpression) (Value, string, error) {
	var call strings.Builder
	if x.External != "" {
		fmt.Fprintf(&call, "    call %s/%s", x.External, x.Function)
	} else {
		fmt.Fprintf(&call, "    call %s", x.Function)
	}

	var instructions strings.Builder
	for _, argument := range x.Arguments {
		value, argumentInstructions, err := g.visitExpression(argument)
		if err != nil {
			return nil, "", err
		}
		call.WriteString(" " + value.String())
		instructions.WriteString(argumentInstructions)
	}

	callee, ok := g.symbols.Function(x.Function)
	if !ok {
		return nil, "", diag.Bugf("previous passes guarantee the callee is a known function, %q is not", x.Function)
	}

	switch output := callee.Output.(type) {
	case *ast.UnitType:
		// No destination and an empty value reference.
		call.WriteString(";\n")
		instructions.WriteString(call.String())
		return Value{}, instructions.String(), nil

	case *ast.TupleType:
		if len(output.Elements) < 2 {
			return nil, "", diag.Bugf("parsing guarantees a tuple type has at least two elements, %q has %d", x.Function, len(output.Elements))
		}
		destinations := make(Value, 0, len(output.Elements))
		for range output.Elements {
			destinations = append(destinations, g.nextDestination())
		}
		fmt.Fprintf(&call, " into %s;\n", destinations)
		instructions.WriteString(call.String())
		return destinations, instructions.String(), nil

	default:
		destination := g.nextDestination()
		fmt.Fprintf(&call, " into %s;\n", destination)
		instructions.WriteString(call.String())
		return Value{destination}, instructions.String(), nil
	}
}
