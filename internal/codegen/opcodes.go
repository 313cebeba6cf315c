package codegen

import (
	"lume/internal/ast"
	"lume/internal/diag"
)

// binaryOpcode maps a binary operator to its target-ISA opcode. A trailing
// .w suffix denotes the wrapping-arithmetic variant of the base opcode.
func binaryOpcode(op ast.BinaryOperator) (string, error) {
	switch op {
	case ast.Add:
		return "add", nil
	case ast.AddWrapped:
		return "add.w", nil
	case ast.And:
		return "and", nil
	case ast.BitwiseAnd:
		return "and", nil
	case ast.Div:
		return "div", nil
	case ast.DivWrapped:
		return "div.w", nil
	case ast.Eq:
		return "is.eq", nil
	case ast.Gte:
		return "gte", nil
	case ast.Gt:
		return "gt", nil
	case ast.Lte:
		return "lte", nil
	case ast.Lt:
		return "lt", nil
	case ast.Mod:
		return "mod", nil
	case ast.Mul:
		return "mul", nil
	case ast.MulWrapped:
		return "mul.w", nil
	case ast.Nand:
		return "nand", nil
	case ast.Neq:
		return "is.neq", nil
	case ast.Nor:
		return "nor", nil
	case ast.Or:
		return "or", nil
	case ast.BitwiseOr:
		return "or", nil
	case ast.Pow:
		return "pow", nil
	case ast.PowWrapped:
		return "pow.w", nil
	case ast.Rem:
		return "rem", nil
	case ast.RemWrapped:
		return "rem.w", nil
	case ast.Shl:
		return "shl", nil
	case ast.ShlWrapped:
		return "shl.w", nil
	case ast.Shr:
		return "shr", nil
	case ast.ShrWrapped:
		return "shr.w", nil
	case ast.Sub:
		return "sub", nil
	case ast.SubWrapped:
		return "sub.w", nil
	case ast.Xor:
		return "xor", nil
	default:
		return "", diag.Bugf("unrecognized binary operator %d", op)
	}
}

func unaryOpcode(op ast.UnaryOperator) (string, error) {
	switch op {
	case ast.Abs:
		return "abs", nil
	case ast.AbsWrapped:
		return "abs.w", nil
	case ast.Double:
		return "double", nil
	case ast.Inverse:
		return "inv", nil
	case ast.Not:
		return "not", nil
	case ast.Negate:
		return "neg", nil
	case ast.Square:
		return "square", nil
	case ast.SquareRoot:
		return "sqrt", nil
	default:
		return "", diag.Bugf("unrecognized unary operator %d", op)
	}
}

// intrinsicSymbol maps a recognized intrinsic type name to its opcode
// suffix, e.g. Pedersen64 -> ped64. The set is closed; type checking
// guarantees membership.
func intrinsicSymbol(typeName string) (string, error) {
	switch typeName {
	case "BHP256":
		return "bhp256", nil
	case "BHP512":
		return "bhp512", nil
	case "BHP768":
		return "bhp768", nil
	case "BHP1024":
		return "bhp1024", nil
	case "Pedersen64":
		return "ped64", nil
	case "Pedersen128":
		return "ped128", nil
	case "Poseidon2":
		return "psd2", nil
	case "Poseidon4":
		return "psd4", nil
	case "Poseidon8":
		return "psd8", nil
	default:
		return "", diag.Bugf("all intrinsic calls should be known at this time, %q is not", typeName)
	}
}
