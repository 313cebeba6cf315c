// Package codegen lowers flattened SSA function bodies into target-ISA
// instruction text. Instructions accumulate in strict evaluation order;
// the downstream assembler owns real register liveness.
package codegen

import (
	"fmt"
	"strings"

	"lume/internal/ast"
	"lume/internal/symbols"
)

// Value is where an expression's result lives: an ordered sequence of
// operand references. A single reference for most expressions, several for
// tuples, none for unit-returning calls.
type Value []string

// String renders the value as instruction-text operands.
func (v Value) String() string {
	return strings.Join(v, " ")
}

// Generator holds the state for lowering one program. Register numbering
// restarts at zero for every function.
type Generator struct {
	symbols *symbols.Table
	// variables maps a source name to its storage reference: a previously
	// generated register or a raw literal/parameter name.
	variables    map[string]string
	nextRegister int
}

// New creates a generator over the given symbol table.
func New(table *symbols.Table) *Generator {
	return &Generator{symbols: table}
}

// nextDestination mints a fresh register. The counter strictly increases
// across the whole function, including across nested sub-expressions.
func (g *Generator) nextDestination() string {
	destination := fmt.Sprintf("r%d", g.nextRegister)
	g.nextRegister++
	return destination
}

// Program lowers every function and concatenates their instruction bodies.
func (g *Generator) Program(p *ast.Program) (string, error) {
	var out strings.Builder
	for i, fn := range p.Functions {
		if i > 0 {
			out.WriteString("\n")
		}
		body, err := g.Function(fn)
		if err != nil {
			return "", err
		}
		out.WriteString(fmt.Sprintf("function %s:\n", fn.Name))
		out.WriteString(body)
	}
	return out.String(), nil
}

// Function lowers one function body to instruction text. The name mapping
// is seeded from the parameters; registers restart at r0.
func (g *Generator) Function(fn *ast.Function) (string, error) {
	g.variables = make(map[string]string, len(fn.Parameters))
	g.nextRegister = 0
	for _, param := range fn.Parameters {
		g.variables[param.Name] = param.Name
	}

	var out strings.Builder
	for _, stmt := range fn.Body.Statements {
		instructions, err := g.visitStatement(stmt)
		if err != nil {
			return "", err
		}
		out.WriteString(instructions)
	}
	return out.String(), nil
}

// RegisterCount reports the number of registers issued for the most
// recently lowered function.
func (g *Generator) RegisterCount() int {
	return g.nextRegister
}
