package ast

import (
	"sling/internal/source"
)

// ExprLitKind distinguishes literal payloads.
type ExprLitKind uint8

const (
	LitNumber ExprLitKind = iota
	LitBool
	LitString
)

// BinaryOp enumerates binary operators the parser produces. The backend
// decides which of them it can lower; everything else fails there.
type BinaryOp uint8

const (
	BinInvalid BinaryOp = iota
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinMod
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinLt
	BinLtEq
	BinGt
	BinGtEq
	BinEq
	BinNotEq
	BinStrictEq
	BinStrictNotEq
	BinLogAnd
	BinLogOr
)

func (op BinaryOp) String() string {
	switch op {
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinMod:
		return "%"
	case BinBitAnd:
		return "&"
	case BinBitOr:
		return "|"
	case BinBitXor:
		return "^"
	case BinShl:
		return "<<"
	case BinShr:
		return ">>"
	case BinLt:
		return "<"
	case BinLtEq:
		return "<="
	case BinGt:
		return ">"
	case BinGtEq:
		return ">="
	case BinEq:
		return "=="
	case BinNotEq:
		return "!="
	case BinStrictEq:
		return "==="
	case BinStrictNotEq:
		return "!=="
	case BinLogAnd:
		return "&&"
	case BinLogOr:
		return "||"
	default:
		return "?"
	}
}

// AssignOp enumerates assignment operators.
type AssignOp uint8

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
)

func (op AssignOp) String() string {
	switch op {
	case AssignPlain:
		return "="
	case AssignAdd:
		return "+="
	case AssignSub:
		return "-="
	case AssignMul:
		return "*="
	case AssignDiv:
		return "/="
	case AssignMod:
		return "%="
	default:
		return "?"
	}
}

// UnaryOp enumerates unary operators.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota // -
	UnaryNot                // !
)

func (op UnaryOp) String() string {
	if op == UnaryNot {
		return "!"
	}
	return "-"
}

// UpdateOp enumerates ++/--.
type UpdateOp uint8

const (
	UpdateInc UpdateOp = iota
	UpdateDec
)

type ExprIdentData struct {
	Name source.StringID
}

type ExprLiteralData struct {
	Kind  ExprLitKind
	Value source.StringID // текст числа либо раскодированная строка
	Bool  bool            // только для LitBool
}

// ObjectProp — одно свойство объектного литерала.
// Key задан для именованного ключа, Computed — для вычисляемого ([expr]).
type ObjectProp struct {
	Key      source.StringID
	Computed ExprID
	Value    ExprID
}

type ExprObjectData struct {
	Props []ObjectProp
}

type ExprArrayData struct {
	Elems []ExprID
}

// ExprMemberData: Name для obj.name, Key для obj[expr] (ровно одно задано).
type ExprMemberData struct {
	Object ExprID
	Name   source.StringID
	Key    ExprID
}

func (d *ExprMemberData) IsComputed() bool { return d.Key.IsValid() }

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprAssignData struct {
	Op     AssignOp
	Target ExprID
	Value  ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprUpdateData struct {
	Op      UpdateOp
	Prefix  bool
	Operand ExprID
}

// FnParam — формальный параметр функции.
type FnParam struct {
	Name source.StringID
	Span source.Span
}

// ExprFunctionData: Name != NoStringID для именованной функции
// (function f(){}), Body — блок-стейтмент тела.
type ExprFunctionData struct {
	Name   source.StringID
	Params []FnParam
	Body   StmtID
}
