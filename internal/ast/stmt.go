package ast

import (
	"sling/internal/source"
)

type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtExpr
	StmtVar
	StmtBlock
	StmtIf
	StmtWhile
	StmtFor
	StmtTry
	StmtReturn
	StmtThrow
	StmtFnDecl
	StmtEmpty
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "expression statement"
	case StmtVar:
		return "variable declaration"
	case StmtBlock:
		return "block"
	case StmtIf:
		return "if"
	case StmtWhile:
		return "while"
	case StmtFor:
		return "for"
	case StmtTry:
		return "try"
	case StmtReturn:
		return "return"
	case StmtThrow:
		return "throw"
	case StmtFnDecl:
		return "function declaration"
	case StmtEmpty:
		return "empty statement"
	default:
		return "invalid"
	}
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtExprData struct {
	Expr ExprID
}

// VarDeclarator — один объявитель в var-стейтменте. Init == NoExprID,
// если инициализатора нет (слот и так Undefined).
type VarDeclarator struct {
	Name source.StringID
	Span source.Span
	Init ExprID
}

type StmtVarData struct {
	Decls []VarDeclarator
}

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID // NoStmtID, если else нет
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

// StmtForData: любая из трёх секций заголовка может отсутствовать.
// Init — либо var-стейтмент, либо expression-стейтмент.
type StmtForData struct {
	Init StmtID
	Cond ExprID
	Post ExprID
	Body StmtID
}

// StmtTryData: Param — имя параметра catch (NoStringID, если параметр опущен).
type StmtTryData struct {
	Body      StmtID
	Param     source.StringID
	ParamSpan source.Span
	Handler   StmtID
}

type StmtReturnData struct {
	Expr ExprID // NoExprID для "return;"
}

type StmtThrowData struct {
	Expr ExprID
}

// StmtFnDeclData оборачивает именованное function-выражение в стейтмент.
type StmtFnDeclData struct {
	Fn ExprID
}
