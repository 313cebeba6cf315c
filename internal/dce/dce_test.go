package dce

import (
	"testing"

	"lume/internal/ast"
	"lume/internal/diag"
)

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func assign(name string, value ast.Expression) *ast.AssignStatement {
	return &ast.AssignStatement{Place: ident(name), Value: value}
}

func binary(left string, op ast.BinaryOperator, right string) *ast.BinaryExpression {
	return &ast.BinaryExpression{Left: ident(left), Op: op, Right: ident(right)}
}

func body(statements ...ast.Statement) *ast.Block {
	return &ast.Block{Statements: statements}
}

func fn(block *ast.Block) *ast.Function {
	return &ast.Function{Name: "main", Body: block}
}

func eliminate(t *testing.T, block *ast.Block) *ast.Block {
	t.Helper()
	out, err := New().Function(fn(block))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out.Body
}

func TestUnusedChainIsEliminated(t *testing.T) {
	// x = a + b; y = x * x; return a;
	// y is dead, and with y gone x has no remaining use either.
	out := eliminate(t, body(
		assign("x", binary("a", ast.Add, "b")),
		assign("y", binary("x", ast.Mul, "x")),
		&ast.ReturnStatement{Expression: ident("a")},
	))

	if len(out.Statements) != 3 {
		t.Fatalf("statement count changed: %d", len(out.Statements))
	}
	if _, ok := out.Statements[0].(*ast.EmptyStatement); !ok {
		t.Errorf("x = a + b should be a no-op, got %s", out.Statements[0])
	}
	if _, ok := out.Statements[1].(*ast.EmptyStatement); !ok {
		t.Errorf("y = x * x should be a no-op, got %s", out.Statements[1])
	}
	if _, ok := out.Statements[2].(*ast.ReturnStatement); !ok {
		t.Errorf("return a must be kept, got %s", out.Statements[2])
	}
}

func TestLivenessChainsBackward(t *testing.T) {
	// x = a + b; y = x * x; return y;  everything is live.
	out := eliminate(t, body(
		assign("x", binary("a", ast.Add, "b")),
		assign("y", binary("x", ast.Mul, "x")),
		&ast.ReturnStatement{Expression: ident("y")},
	))

	if _, ok := out.Statements[0].(*ast.AssignStatement); !ok {
		t.Errorf("x = a + b must be kept, got %s", out.Statements[0])
	}
	if _, ok := out.Statements[1].(*ast.AssignStatement); !ok {
		t.Errorf("y = x * x must be kept, got %s", out.Statements[1])
	}
}

func TestTupleAssignmentKeptIfAnyElementUsed(t *testing.T) {
	out := eliminate(t, body(
		&ast.AssignStatement{
			Place: &ast.TupleExpression{Elements: []ast.Expression{ident("a"), ident("b")}},
			Value: &ast.CallExpression{Function: "split", Arguments: []ast.Expression{ident("v")}},
		},
		&ast.ReturnStatement{Expression: ident("a")},
	))

	if _, ok := out.Statements[0].(*ast.AssignStatement); !ok {
		t.Fatalf("tuple assignment with one used element must be kept, got %s", out.Statements[0])
	}
}

func TestTupleAssignmentEliminatedIfNoElementUsed(t *testing.T) {
	out := eliminate(t, body(
		&ast.AssignStatement{
			Place: &ast.TupleExpression{Elements: []ast.Expression{ident("a"), ident("b")}},
			Value: &ast.CallExpression{Function: "split", Arguments: []ast.Expression{ident("v")}},
		},
		&ast.ReturnStatement{Expression: ident("v")},
	))

	if _, ok := out.Statements[0].(*ast.EmptyStatement); !ok {
		t.Fatalf("fully-unused tuple assignment should be a no-op, got %s", out.Statements[0])
	}
}

func TestSideEffectingStatementsAreAlwaysKept(t *testing.T) {
	tests := []struct {
		name string
		stmt ast.Statement
	}{
		{"assert", &ast.AssertStatement{Variant: ast.AssertPlain, Left: ident("c")}},
		{"assert_eq", &ast.AssertStatement{Variant: ast.AssertEq, Left: ident("c"), Right: ident("d")}},
		{"increment", &ast.IncrementStatement{Mapping: "balances", Index: ident("c"), Amount: ident("d")}},
		{"decrement", &ast.DecrementStatement{Mapping: "balances", Index: ident("c"), Amount: ident("d")}},
		{"call statement", &ast.ExpressionStatement{
			Expression: &ast.CallExpression{Function: "log", Arguments: []ast.Expression{ident("c")}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// c is only used by the side-effecting statement; the assignment
			// feeding it must survive.
			out := eliminate(t, body(
				assign("c", binary("a", ast.Add, "b")),
				tt.stmt,
			))
			if _, ok := out.Statements[0].(*ast.AssignStatement); !ok {
				t.Fatalf("assignment feeding %s must be kept, got %s", tt.name, out.Statements[0])
			}
			if _, ok := out.Statements[1].(*ast.EmptyStatement); ok {
				t.Fatalf("%s must never be eliminated", tt.name)
			}
		})
	}
}

func TestReturnFinalizeArgumentsKeepUsesLive(t *testing.T) {
	out := eliminate(t, body(
		assign("f", binary("a", ast.Add, "b")),
		&ast.ReturnStatement{
			Expression:        ident("a"),
			FinalizeArguments: []ast.Expression{ident("f")},
		},
	))
	if _, ok := out.Statements[0].(*ast.AssignStatement); !ok {
		t.Fatalf("assignment used by finalize arguments must be kept, got %s", out.Statements[0])
	}
}

func TestStructMembersKeepUsesLive(t *testing.T) {
	out := eliminate(t, body(
		assign("amt", binary("a", ast.Add, "b")),
		assign("token", &ast.StructExpression{
			Name: "Token",
			Members: []*ast.StructMember{
				{Name: "owner", Value: ident("owner")},
				{Name: "amount", Value: ident("amt")},
			},
		}),
		&ast.ReturnStatement{Expression: ident("token")},
	))
	if _, ok := out.Statements[0].(*ast.AssignStatement); !ok {
		t.Fatalf("assignment used by a struct member must be kept, got %s", out.Statements[0])
	}
}

func TestEliminationIsIdempotent(t *testing.T) {
	input := body(
		assign("x", binary("a", ast.Add, "b")),
		assign("y", binary("x", ast.Mul, "x")),
		assign("z", binary("y", ast.Sub, "a")),
		&ast.AssertStatement{Variant: ast.AssertEq, Left: ident("z"), Right: ident("a")},
		&ast.ReturnStatement{Expression: ident("a")},
	)

	once, err := New().Function(fn(input))
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	twice, err := New().Function(once)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if once.Body.String() != twice.Body.String() {
		t.Fatalf("second pass changed output:\nfirst:\n%s\nsecond:\n%s", once.Body, twice.Body)
	}
}

func TestNoKeptReferenceToEliminatedVariable(t *testing.T) {
	// Liveness soundness: after elimination, every identifier referenced by
	// a kept statement traces to a parameter or a kept assignment.
	out := eliminate(t, body(
		assign("x", binary("a", ast.Add, "b")),
		assign("dead", binary("x", ast.Mul, "x")),
		assign("y", binary("x", ast.Sub, "a")),
		&ast.ReturnStatement{Expression: ident("y")},
	))

	defined := map[string]bool{"a": true, "b": true}
	for _, stmt := range out.Statements {
		if as, ok := stmt.(*ast.AssignStatement); ok {
			collectIdentifiers(t, as.Value, defined)
			defined[as.Place.(*ast.Identifier).Name] = true
		}
		if ret, ok := stmt.(*ast.ReturnStatement); ok {
			collectIdentifiers(t, ret.Expression, defined)
		}
	}
}

func collectIdentifiers(t *testing.T, x ast.Expression, defined map[string]bool) {
	t.Helper()
	switch x := x.(type) {
	case *ast.Identifier:
		if !defined[x.Name] {
			t.Errorf("kept statement references eliminated variable %q", x.Name)
		}
	case *ast.BinaryExpression:
		collectIdentifiers(t, x.Left, defined)
		collectIdentifiers(t, x.Right, defined)
	case *ast.UnaryExpression:
		collectIdentifiers(t, x.Operand, defined)
	}
}

func TestOutputTreeSharesNoNodesWithInput(t *testing.T) {
	input := &ast.Function{
		Name: "main",
		Parameters: []*ast.Parameter{
			{Name: "a", TypeName: "u64"},
			{Name: "b", TypeName: "u64"},
		},
		Output: &ast.NamedType{Name: "u64"},
		Body: body(
			assign("x", binary("a", ast.Add, "b")),
			&ast.AssignStatement{
				Place: &ast.TupleExpression{Elements: []ast.Expression{ident("y"), ident("z")}},
				Value: &ast.CallExpression{Function: "split", Arguments: []ast.Expression{ident("x")}},
			},
			&ast.ReturnStatement{Expression: ident("y")},
		),
	}
	out, err := New().Function(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range input.Body.Statements {
		if input.Body.Statements[i] == out.Body.Statements[i] {
			t.Errorf("statement %d is aliased between input and output", i)
		}
	}
	for i := range input.Parameters {
		if input.Parameters[i] == out.Parameters[i] {
			t.Errorf("parameter %d is aliased between input and output", i)
		}
	}
	if input.Output == out.Output {
		t.Errorf("output type is aliased between input and output")
	}

	in := input.Body.Statements[0].(*ast.AssignStatement)
	kept := out.Body.Statements[0].(*ast.AssignStatement)
	if in.Value == kept.Value {
		t.Errorf("reconstructed expression aliases the input expression")
	}
	if in.Place == kept.Place {
		t.Errorf("reconstructed place aliases the input place")
	}

	inTuple := input.Body.Statements[1].(*ast.AssignStatement)
	keptTuple := out.Body.Statements[1].(*ast.AssignStatement)
	if inTuple.Place == keptTuple.Place {
		t.Errorf("reconstructed tuple place aliases the input place")
	}
	inElements := inTuple.Place.(*ast.TupleExpression).Elements
	keptElements := keptTuple.Place.(*ast.TupleExpression).Elements
	for i := range inElements {
		if inElements[i] == keptElements[i] {
			t.Errorf("tuple place element %d is aliased between input and output", i)
		}
	}
}

func TestPreFlatteningStatementsAreRejected(t *testing.T) {
	tests := []struct {
		name string
		stmt ast.Statement
	}{
		{"conditional", &ast.ConditionalStatement{Condition: ident("c"), Then: body()}},
		{"iteration", &ast.IterationStatement{Variable: "i", Start: ident("a"), Stop: ident("b"), Body: body()}},
		{"console", &ast.ConsoleStatement{Expression: ident("x")}},
		{"definition", &ast.DefinitionStatement{Name: "x", Value: ident("y")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Function(fn(body(tt.stmt)))
			if err == nil {
				t.Fatalf("%s statement should be rejected at this phase", tt.name)
			}
			d, ok := err.(diag.Diagnostic)
			if !ok || d.Kind != diag.KindBug {
				t.Fatalf("expected a bug diagnostic, got %v", err)
			}
		})
	}
}

func TestErrExpressionIsRejected(t *testing.T) {
	_, err := New().Function(fn(body(
		&ast.ReturnStatement{Expression: &ast.ErrExpression{}},
	)))
	if err == nil {
		t.Fatalf("error expressions should be rejected at this phase")
	}
}

func TestProgramRunsEachFunctionWithFreshState(t *testing.T) {
	// The second function's dead assignment must not be kept alive by a
	// liveness fact recorded while processing the first function.
	program := &ast.Program{
		Name: "p",
		Functions: []*ast.Function{
			fn(body(
				assign("shared", binary("a", ast.Add, "b")),
				&ast.ReturnStatement{Expression: ident("shared")},
			)),
			fn(body(
				assign("shared", binary("a", ast.Add, "b")),
				&ast.ReturnStatement{Expression: ident("a")},
			)),
		},
	}

	out, err := New().Program(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := out.Functions[1].Body
	if _, ok := second.Statements[0].(*ast.EmptyStatement); !ok {
		t.Fatalf("stale liveness leaked across functions: %s", second.Statements[0])
	}
}
