package main

import (
	"fmt"

	"lume/internal/ast"
	"lume/internal/codegen"
	"lume/internal/dce"
	"lume/internal/diag"
	"lume/internal/symbols"
)

func main() {
	// Run a few sample function bodies through the back-end pipeline.
	table := symbols.NewTable()
	table.DefineFunction("main", &ast.NamedType{Name: "u64"})
	table.DefineFunction("log_transfer", &ast.UnitType{})
	table.DefineComposite("Token", true, "private")

	samples := []*ast.Program{
		sumWithDeadCode(),
		mintToken(),
		unsupportedAccess(),
	}

	for _, program := range samples {
		fmt.Printf("Program: %s\n", program.Name)

		lowered, diagnostics := diag.Run(func(h *diag.Handler) (string, error) {
			eliminated, err := dce.New().Program(program)
			if err != nil {
				return "", report(h, err)
			}
			lowered, err := codegen.New(table).Program(eliminated)
			if err != nil {
				return "", report(h, err)
			}
			return lowered, nil
		})
		if diagnostics != nil {
			for _, d := range diagnostics {
				fmt.Printf("  %s\n", d.Error())
			}
			continue
		}

		fmt.Println(lowered)
	}
}

// report records a pass failure on the session handler. The session treats
// recorded diagnostics as failure even though the closure returns no error.
func report(h *diag.Handler, err error) error {
	d, ok := err.(diag.Diagnostic)
	if !ok {
		d = diag.Errorf("%s", err)
	}
	h.Emit(d)
	return nil
}

// sumWithDeadCode computes a + b and defines an unused square on the side.
func sumWithDeadCode() *ast.Program {
	return &ast.Program{
		Name: "sum",
		Functions: []*ast.Function{{
			Name: "main",
			Parameters: []*ast.Parameter{
				{Name: "a", TypeName: "u64"},
				{Name: "b", TypeName: "u64"},
			},
			Output: &ast.NamedType{Name: "u64"},
			Body: &ast.Block{Statements: []ast.Statement{
				&ast.AssignStatement{
					Place: &ast.Identifier{Name: "x"},
					Value: &ast.BinaryExpression{
						Left:  &ast.Identifier{Name: "a"},
						Op:    ast.Add,
						Right: &ast.Identifier{Name: "b"},
					},
				},
				&ast.AssignStatement{
					Place: &ast.Identifier{Name: "unused"},
					Value: &ast.BinaryExpression{
						Left:  &ast.Identifier{Name: "x"},
						Op:    ast.Mul,
						Right: &ast.Identifier{Name: "x"},
					},
				},
				&ast.ReturnStatement{Expression: &ast.Identifier{Name: "x"}},
			}},
		}},
	}
}

// mintToken builds a record and logs the transfer through a unit call.
func mintToken() *ast.Program {
	return &ast.Program{
		Name: "mint",
		Functions: []*ast.Function{{
			Name: "mint",
			Parameters: []*ast.Parameter{
				{Name: "owner", TypeName: "address"},
				{Name: "amount", TypeName: "u64"},
			},
			Output: &ast.NamedType{Name: "Token"},
			Body: &ast.Block{Statements: []ast.Statement{
				&ast.AssignStatement{
					Place: &ast.Identifier{Name: "token"},
					Value: &ast.StructExpression{
						Name: "Token",
						Members: []*ast.StructMember{
							{Name: "owner", Value: &ast.Identifier{Name: "owner"}},
							{Name: "amount", Value: &ast.Identifier{Name: "amount"}},
						},
					},
				},
				&ast.ExpressionStatement{
					Expression: &ast.CallExpression{
						Function:  "log_transfer",
						Arguments: []ast.Expression{&ast.Identifier{Name: "owner"}},
					},
				},
				&ast.ReturnStatement{Expression: &ast.Identifier{Name: "token"}},
			}},
		}},
	}
}

// unsupportedAccess exercises the diagnostics path: associated constants
// cannot be lowered yet.
func unsupportedAccess() *ast.Program {
	return &ast.Program{
		Name: "unsupported",
		Functions: []*ast.Function{{
			Name:   "main",
			Output: &ast.NamedType{Name: "group"},
			Body: &ast.Block{Statements: []ast.Statement{
				&ast.ReturnStatement{
					Expression: &ast.AssociatedConstant{TypeName: "group", Name: "GEN"},
				},
			}},
		}},
	}
}
