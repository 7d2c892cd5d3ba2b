package ast

import (
	"sling/internal/source"
)

// Stmts manages allocation of statements.
type Stmts struct {
	Arena   *Arena[Stmt]
	Exprs   *Arena[StmtExprData]
	Vars    *Arena[StmtVarData]
	Blocks  *Arena[StmtBlockData]
	Ifs     *Arena[StmtIfData]
	Whiles  *Arena[StmtWhileData]
	Fors    *Arena[StmtForData]
	Tries   *Arena[StmtTryData]
	Returns *Arena[StmtReturnData]
	Throws  *Arena[StmtThrowData]
	FnDecls *Arena[StmtFnDeclData]
}

// NewStmts creates a new Stmts with per-kind arenas preallocated to capHint.
func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Exprs:   NewArena[StmtExprData](capHint),
		Vars:    NewArena[StmtVarData](capHint),
		Blocks:  NewArena[StmtBlockData](capHint),
		Ifs:     NewArena[StmtIfData](capHint),
		Whiles:  NewArena[StmtWhileData](capHint),
		Fors:    NewArena[StmtForData](capHint),
		Tries:   NewArena[StmtTryData](capHint),
		Returns: NewArena[StmtReturnData](capHint),
		Throws:  NewArena[StmtThrowData](capHint),
		FnDecls: NewArena[StmtFnDeclData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the statement with the given ID.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewExpr creates an expression statement.
func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	payload := s.Exprs.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

// Expr returns the expression statement data.
func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(stmt.Payload)), true
}

// NewVar creates a variable declaration statement.
func (s *Stmts) NewVar(span source.Span, decls []VarDeclarator) StmtID {
	payload := s.Vars.Allocate(StmtVarData{Decls: decls})
	return s.new(StmtVar, span, PayloadID(payload))
}

// Var returns the variable declaration data.
func (s *Stmts) Var(id StmtID) (*StmtVarData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtVar {
		return nil, false
	}
	return s.Vars.Get(uint32(stmt.Payload)), true
}

// NewBlock creates a block statement.
func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	payload := s.Blocks.Allocate(StmtBlockData{Stmts: stmts})
	return s.new(StmtBlock, span, PayloadID(payload))
}

// Block returns the block data.
func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtBlock {
		return nil, false
	}
	return s.Blocks.Get(uint32(stmt.Payload)), true
}

// NewIf creates an if statement.
func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	payload := s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, PayloadID(payload))
}

// If returns the if data.
func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(stmt.Payload)), true
}

// NewWhile creates a while statement.
func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(payload))
}

// While returns the while data.
func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtWhile {
		return nil, false
	}
	return s.Whiles.Get(uint32(stmt.Payload)), true
}

// NewFor creates a for statement.
func (s *Stmts) NewFor(span source.Span, init StmtID, cond, post ExprID, body StmtID) StmtID {
	payload := s.Fors.Allocate(StmtForData{Init: init, Cond: cond, Post: post, Body: body})
	return s.new(StmtFor, span, PayloadID(payload))
}

// For returns the for data.
func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtFor {
		return nil, false
	}
	return s.Fors.Get(uint32(stmt.Payload)), true
}

// NewTry creates a try/catch statement.
func (s *Stmts) NewTry(span source.Span, body StmtID, param source.StringID, paramSpan source.Span, handler StmtID) StmtID {
	payload := s.Tries.Allocate(StmtTryData{Body: body, Param: param, ParamSpan: paramSpan, Handler: handler})
	return s.new(StmtTry, span, PayloadID(payload))
}

// Try returns the try data.
func (s *Stmts) Try(id StmtID) (*StmtTryData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtTry {
		return nil, false
	}
	return s.Tries.Get(uint32(stmt.Payload)), true
}

// NewReturn creates a return statement.
func (s *Stmts) NewReturn(span source.Span, expr ExprID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Expr: expr})
	return s.new(StmtReturn, span, PayloadID(payload))
}

// Return returns the return data.
func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(stmt.Payload)), true
}

// NewThrow creates a throw statement.
func (s *Stmts) NewThrow(span source.Span, expr ExprID) StmtID {
	payload := s.Throws.Allocate(StmtThrowData{Expr: expr})
	return s.new(StmtThrow, span, PayloadID(payload))
}

// Throw returns the throw data.
func (s *Stmts) Throw(id StmtID) (*StmtThrowData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtThrow {
		return nil, false
	}
	return s.Throws.Get(uint32(stmt.Payload)), true
}

// NewFnDecl creates a function declaration statement.
func (s *Stmts) NewFnDecl(span source.Span, fn ExprID) StmtID {
	payload := s.FnDecls.Allocate(StmtFnDeclData{Fn: fn})
	return s.new(StmtFnDecl, span, PayloadID(payload))
}

// FnDecl returns the function declaration data.
func (s *Stmts) FnDecl(id StmtID) (*StmtFnDeclData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtFnDecl {
		return nil, false
	}
	return s.FnDecls.Get(uint32(stmt.Payload)), true
}

// NewEmpty creates an empty statement.
func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return s.new(StmtEmpty, span, NoPayloadID)
}
