package ast

// BinaryOperator enumerates every binary operation the language supports.
// Wrapping variants saturate at the scalar width instead of halting.
type BinaryOperator int

const (
	Add BinaryOperator = iota
	AddWrapped
	And
	BitwiseAnd
	Div
	DivWrapped
	Eq
	Gte
	Gt
	Lte
	Lt
	Mod
	Mul
	MulWrapped
	Nand
	Neq
	Nor
	Or
	BitwiseOr
	Pow
	PowWrapped
	Rem
	RemWrapped
	Shl
	ShlWrapped
	Shr
	ShrWrapped
	Sub
	SubWrapped
	Xor
)

func (op BinaryOperator) String() string {
	switch op {
	case Add:
		return "+"
	case AddWrapped:
		return "add_wrapped"
	case And:
		return "&&"
	case BitwiseAnd:
		return "&"
	case Div:
		return "/"
	case DivWrapped:
		return "div_wrapped"
	case Eq:
		return "=="
	case Gte:
		return ">="
	case Gt:
		return ">"
	case Lte:
		return "<="
	case Lt:
		return "<"
	case Mod:
		return "mod"
	case Mul:
		return "*"
	case MulWrapped:
		return "mul_wrapped"
	case Nand:
		return "nand"
	case Neq:
		return "!="
	case Nor:
		return "nor"
	case Or:
		return "||"
	case BitwiseOr:
		return "|"
	case Pow:
		return "**"
	case PowWrapped:
		return "pow_wrapped"
	case Rem:
		return "%"
	case RemWrapped:
		return "rem_wrapped"
	case Shl:
		return "<<"
	case ShlWrapped:
		return "shl_wrapped"
	case Shr:
		return ">>"
	case ShrWrapped:
		return "shr_wrapped"
	case Sub:
		return "-"
	case SubWrapped:
		return "sub_wrapped"
	case Xor:
		return "^"
	default:
		return "<binop>"
	}
}

// UnaryOperator enumerates every unary operation the language supports.
type UnaryOperator int

const (
	Abs UnaryOperator = iota
	AbsWrapped
	Double
	Inverse
	Not
	Negate
	Square
	SquareRoot
)

func (op UnaryOperator) String() string {
	switch op {
	case Abs:
		return "abs"
	case AbsWrapped:
		return "abs_wrapped"
	case Double:
		return "double"
	case Inverse:
		return "inv"
	case Not:
		return "!"
	case Negate:
		return "-"
	case Square:
		return "square"
	case SquareRoot:
		return "sqrt"
	default:
		return "<unop>"
	}
}
