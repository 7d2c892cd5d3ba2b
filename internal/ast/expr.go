package ast

import (
	"sling/internal/source"
)

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprLit
	ExprObject
	ExprArray
	ExprMember
	ExprCall
	ExprAssign
	ExprBinary
	ExprUnary
	ExprUpdate
	ExprFunction
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "identifier"
	case ExprLit:
		return "literal"
	case ExprObject:
		return "object literal"
	case ExprArray:
		return "array literal"
	case ExprMember:
		return "member access"
	case ExprCall:
		return "call"
	case ExprAssign:
		return "assignment"
	case ExprBinary:
		return "binary operator"
	case ExprUnary:
		return "unary operator"
	case ExprUpdate:
		return "update operator"
	case ExprFunction:
		return "function expression"
	default:
		return "invalid"
	}
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}
