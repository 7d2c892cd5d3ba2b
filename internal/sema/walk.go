package sema

import (
	"sling/internal/ast"
	"sling/internal/diag"
	"sling/internal/source"
)

// Политика хойстинга: декларации поднимаются к ближайшему владеющему
// скоупу. Первый проход (declareStmts) собирает имена до резолюции тел,
// поэтому использование до var в том же скоупе резолвится в тот же слот.
func (r *resolver) declareStmts(stmts []ast.StmtID) {
	for _, id := range stmts {
		r.declareStmt(id)
	}
}

// declareStmt объявляет имена стейтмента в текущем скоупе. В блоки не
// спускаемся: блок со своими декларациями владеет отдельным скоупом.
// for и try тоже пропускаем — их декларации принадлежат их скоупам.
func (r *resolver) declareStmt(id ast.StmtID) {
	stmt := r.builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtVar:
		data, _ := r.builder.Stmts.Var(id)
		for _, decl := range data.Decls {
			r.declareVar(decl.Name, decl.Span)
		}
	case ast.StmtFnDecl:
		data, _ := r.builder.Stmts.FnDecl(id)
		if fn, ok := r.builder.Exprs.Function(data.Fn); ok && fn.Name != source.NoStringID {
			r.declare(fn.Name, r.declKindFor(), stmt.Span, false)
		}
	case ast.StmtIf:
		data, _ := r.builder.Stmts.If(id)
		r.declareNonBlock(data.Then)
		r.declareNonBlock(data.Else)
	case ast.StmtWhile:
		data, _ := r.builder.Stmts.While(id)
		r.declareNonBlock(data.Body)
	}
}

func (r *resolver) declareNonBlock(id ast.StmtID) {
	if !id.IsValid() || r.isBlock(id) {
		return
	}
	r.declareStmt(id)
}

func (r *resolver) isBlock(id ast.StmtID) bool {
	stmt := r.builder.Stmts.Get(id)
	return stmt != nil && stmt.Kind == ast.StmtBlock
}

// hasOwnDecls сообщает, владеет ли последовательность стейтментов
// декларациями — по тем же правилам обхода, что и declareStmts.
func (r *resolver) hasOwnDecls(stmts []ast.StmtID) bool {
	for _, id := range stmts {
		if r.stmtDeclares(id) {
			return true
		}
	}
	return false
}

func (r *resolver) stmtDeclares(id ast.StmtID) bool {
	stmt := r.builder.Stmts.Get(id)
	if stmt == nil {
		return false
	}
	switch stmt.Kind {
	case ast.StmtVar, ast.StmtFnDecl:
		return true
	case ast.StmtIf:
		data, _ := r.builder.Stmts.If(id)
		return r.nonBlockDeclares(data.Then) || r.nonBlockDeclares(data.Else)
	case ast.StmtWhile:
		data, _ := r.builder.Stmts.While(id)
		return r.nonBlockDeclares(data.Body)
	default:
		return false
	}
}

func (r *resolver) nonBlockDeclares(id ast.StmtID) bool {
	if !id.IsValid() || r.isBlock(id) {
		return false
	}
	return r.stmtDeclares(id)
}

func (r *resolver) resolveStmt(id ast.StmtID) {
	stmt := r.builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtExpr:
		data, _ := r.builder.Stmts.Expr(id)
		r.resolveExpr(data.Expr)

	case ast.StmtVar:
		data, _ := r.builder.Stmts.Var(id)
		for _, decl := range data.Decls {
			if decl.Init.IsValid() {
				r.resolveExpr(decl.Init)
			}
		}

	case ast.StmtBlock:
		data, _ := r.builder.Stmts.Block(id)
		if r.hasOwnDecls(data.Stmts) {
			_, prev := r.enter(ScopeBlock, stmt.Span)
			r.res.ScopeOf[id] = r.current
			r.declareStmts(data.Stmts)
			for _, child := range data.Stmts {
				r.resolveStmt(child)
			}
			r.current = prev
			return
		}
		for _, child := range data.Stmts {
			r.resolveStmt(child)
		}

	case ast.StmtIf:
		data, _ := r.builder.Stmts.If(id)
		r.resolveExpr(data.Cond)
		r.resolveStmt(data.Then)
		if data.Else.IsValid() {
			r.resolveStmt(data.Else)
		}

	case ast.StmtWhile:
		data, _ := r.builder.Stmts.While(id)
		r.resolveExpr(data.Cond)
		r.resolveStmt(data.Body)

	case ast.StmtFor:
		r.resolveFor(id)

	case ast.StmtTry:
		r.resolveTry(id)

	case ast.StmtReturn:
		data, _ := r.builder.Stmts.Return(id)
		if data.Expr.IsValid() {
			r.resolveExpr(data.Expr)
		}

	case ast.StmtThrow:
		data, _ := r.builder.Stmts.Throw(id)
		r.resolveExpr(data.Expr)

	case ast.StmtFnDecl:
		data, _ := r.builder.Stmts.FnDecl(id)
		r.resolveFunction(data.Fn, true)
	}
}

// resolveFor: заголовок for с var-инициализатором владеет собственным
// скоупом; скоуп входится один раз до цикла, а не на каждой итерации.
func (r *resolver) resolveFor(id ast.StmtID) {
	stmt := r.builder.Stmts.Get(id)
	data, _ := r.builder.Stmts.For(id)

	entered := false
	var prev ScopeID
	if data.Init.IsValid() {
		if initStmt := r.builder.Stmts.Get(data.Init); initStmt.Kind == ast.StmtVar {
			_, prev = r.enter(ScopeForHeader, stmt.Span)
			r.res.ScopeOf[id] = r.current
			entered = true
			r.declareStmt(data.Init)
		}
	}

	if data.Init.IsValid() {
		r.resolveStmt(data.Init)
	}
	if data.Cond.IsValid() {
		r.resolveExpr(data.Cond)
	}
	if data.Post.IsValid() {
		r.resolveExpr(data.Post)
	}

	if data.Body.IsValid() {
		if !r.isBlock(data.Body) {
			r.declareStmt(data.Body)
		}
		r.resolveStmt(data.Body)
	}

	if entered {
		r.current = prev
	}
}

// resolveTry: catch всегда получает собственный скоуп — даже без
// параметра и деклараций, чтобы у хендлера была стабильная запись.
func (r *resolver) resolveTry(id ast.StmtID) {
	stmt := r.builder.Stmts.Get(id)
	data, _ := r.builder.Stmts.Try(id)

	r.resolveStmt(data.Body)

	_, prev := r.enter(ScopeCatch, stmt.Span)
	r.res.ScopeOf[id] = r.current
	if data.Param != source.NoStringID {
		r.declare(data.Param, DeclLocal, data.ParamSpan, false)
	}
	if handler, ok := r.builder.Stmts.Block(data.Handler); ok {
		r.declareStmts(handler.Stmts)
		for _, child := range handler.Stmts {
			r.resolveStmt(child)
		}
	}
	r.current = prev
}

// resolveFunction: у функции один скоуп на параметры и тело; блок тела
// отдельного скоупа не получает. declaredOutside — имя уже объявлено
// в объемлющем скоупе (function declaration); иначе именованное
// function expression связывает своё имя внутри себя.
func (r *resolver) resolveFunction(id ast.ExprID, declaredOutside bool) {
	expr := r.builder.Exprs.Get(id)
	data, ok := r.builder.Exprs.Function(id)
	if !ok {
		return
	}

	_, prev := r.enter(ScopeFunction, expr.Span)
	r.res.FnScopeOf[id] = r.current

	if !declaredOutside && data.Name != source.NoStringID {
		r.declare(data.Name, DeclLocal, expr.Span, false)
	}
	for _, param := range data.Params {
		r.declare(param.Name, DeclLocal, param.Span, false)
	}

	if body, ok := r.builder.Stmts.Block(data.Body); ok {
		r.declareStmts(body.Stmts)
		for _, child := range body.Stmts {
			r.resolveStmt(child)
		}
	}
	r.current = prev
}

func (r *resolver) resolveExpr(id ast.ExprID) {
	if !id.IsValid() {
		return
	}
	expr := r.builder.Exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := r.builder.Exprs.Ident(id)
		r.resolveIdent(id, data.Name, expr.Span)

	case ast.ExprObject:
		data, _ := r.builder.Exprs.Object(id)
		for _, prop := range data.Props {
			if prop.Computed.IsValid() {
				r.resolveExpr(prop.Computed)
			}
			r.resolveExpr(prop.Value)
		}

	case ast.ExprArray:
		data, _ := r.builder.Exprs.Array(id)
		for _, elem := range data.Elems {
			r.resolveExpr(elem)
		}

	case ast.ExprMember:
		data, _ := r.builder.Exprs.Member(id)
		r.resolveExpr(data.Object)
		if data.Key.IsValid() {
			r.resolveExpr(data.Key)
		}

	case ast.ExprCall:
		data, _ := r.builder.Exprs.Call(id)
		r.resolveExpr(data.Callee)
		for _, arg := range data.Args {
			r.resolveExpr(arg)
		}

	case ast.ExprAssign:
		data, _ := r.builder.Exprs.Assign(id)
		r.resolveExpr(data.Target)
		r.resolveExpr(data.Value)

	case ast.ExprBinary:
		data, _ := r.builder.Exprs.Binary(id)
		r.resolveExpr(data.Left)
		r.resolveExpr(data.Right)

	case ast.ExprUnary:
		data, _ := r.builder.Exprs.Unary(id)
		r.resolveExpr(data.Operand)

	case ast.ExprUpdate:
		data, _ := r.builder.Exprs.Update(id)
		r.resolveExpr(data.Operand)

	case ast.ExprFunction:
		r.resolveFunction(id, false)
	}
}

func (r *resolver) resolveIdent(id ast.ExprID, name source.StringID, span source.Span) {
	if declID := r.lookup(name); declID.IsValid() {
		r.res.ResolutionOf[id] = declID
		return
	}

	text, _ := r.builder.StringsInterner.Lookup(name)
	if !r.opts.AllowUndeclaredGlobals {
		r.report(diag.SemaUnresolvedSymbol, span, "'"+text+"' is not declared", nil)
		return
	}

	// легализуем как свойство глобального объекта
	root := r.res.Scopes.Get(r.res.Root)
	if existing, ok := root.NameIndex[name]; ok {
		r.res.ResolutionOf[id] = existing
		return
	}
	declID := r.res.Decls.New(Decl{
		Scope: r.res.Root,
		Name:  name,
		Kind:  DeclImplicitGlobal,
		Span:  span,
	})
	root.Decls = append(root.Decls, declID)
	root.NameIndex[name] = declID
	r.res.ResolutionOf[id] = declID
}

// LookupFrom идёт по цепочке parent от заданного скоупа. Бэкенд
// использует это для var-деклараторов, у которых нет ident-узла.
func (res *Result) LookupFrom(scope ScopeID, name source.StringID) DeclID {
	for id := scope; id.IsValid(); {
		s := res.Scopes.Get(id)
		if s == nil {
			return NoDeclID
		}
		if declID, ok := s.NameIndex[name]; ok {
			return declID
		}
		id = s.Parent
	}
	return NoDeclID
}
