package cgen

import (
	"fmt"
	"strings"

	"sling/internal/ast"
	"sling/internal/sema"
	"sling/internal/source"
)

// lowerStmt — машина состояний по видам control-flow узлов (§ машины:
// block / var / if / while / for / try-catch / return / throw /
// expression / function declaration / empty). Непокрытый вид — фатально.
func (e *Emitter) lowerStmt(w *blockWriter, id ast.StmtID) error {
	stmt := e.builder.Stmts.Get(id)
	if stmt == nil {
		return malformedErr(sourceSpanNone, "dangling statement id")
	}

	switch stmt.Kind {
	case ast.StmtExpr:
		data, _ := e.builder.Stmts.Expr(id)
		lowered, err := e.lowerExpr(data.Expr)
		if err != nil {
			return err
		}
		w.line(lowered + ";")
		return nil

	case ast.StmtVar:
		return e.lowerVar(w, id)

	case ast.StmtBlock:
		w.line("{")
		w.indent++
		err := e.lowerBlockContents(w, id)
		w.indent--
		w.line("}")
		return err

	case ast.StmtIf:
		return e.lowerIf(w, id)

	case ast.StmtWhile:
		data, _ := e.builder.Stmts.While(id)
		cond, err := e.lowerExpr(data.Cond)
		if err != nil {
			return err
		}
		w.linef("while (sl_get_boolean(%s)) {", cond)
		w.indent++
		err = e.lowerBranch(w, data.Body)
		w.indent--
		w.line("}")
		return err

	case ast.StmtFor:
		return e.lowerForStmt(w, id)

	case ast.StmtTry:
		return e.lowerTry(w, id)

	case ast.StmtReturn:
		if e.fnDepth == 0 {
			return unsupportedErr(stmt.Span, "return outside a function")
		}
		data, _ := e.builder.Stmts.Return(id)
		if !data.Expr.IsValid() {
			w.line("return sl_undefined();")
			return nil
		}
		lowered, err := e.lowerExpr(data.Expr)
		if err != nil {
			return err
		}
		w.line("return " + lowered + ";")
		return nil

	case ast.StmtThrow:
		data, _ := e.builder.Stmts.Throw(id)
		lowered, err := e.lowerExpr(data.Expr)
		if err != nil {
			return err
		}
		w.line("throw " + lowered + ";")
		return nil

	case ast.StmtFnDecl:
		return e.lowerFnDecl(w, id)

	case ast.StmtEmpty:
		w.line(";")
		return nil

	default:
		return unsupportedErr(stmt.Span, "statement kind "+stmt.Kind.String())
	}
}

// lowerBlockContents лоуэрит содержимое блока, входя в привязанный скоуп,
// если резолвер его назначил; иначе текущий скоуп протягивается как есть.
func (e *Emitter) lowerBlockContents(w *blockWriter, id ast.StmtID) error {
	data, ok := e.builder.Stmts.Block(id)
	if !ok {
		return malformedErr(e.builder.Stmts.Get(id).Span, "expected a block")
	}

	if scopeID, attached := e.sem.ScopeOf[id]; attached {
		e.emitScopeAlloc(w, scopeID, scopeVarName(uint32(e.current)))
		prev := e.current
		e.current = scopeID
		for _, child := range data.Stmts {
			if err := e.lowerStmt(w, child); err != nil {
				e.current = prev
				return err
			}
		}
		e.current = prev
		return nil
	}

	for _, child := range data.Stmts {
		if err := e.lowerStmt(w, child); err != nil {
			return err
		}
	}
	return nil
}

// lowerBranch кладёт ветку внутрь уже открытых скобок: блок раскрывается
// на месте, одиночный стейтмент лоуэрится как есть.
func (e *Emitter) lowerBranch(w *blockWriter, id ast.StmtID) error {
	if !id.IsValid() {
		return nil
	}
	if stmt := e.builder.Stmts.Get(id); stmt != nil && stmt.Kind == ast.StmtBlock {
		return e.lowerBlockContents(w, id)
	}
	return e.lowerStmt(w, id)
}

func (e *Emitter) lowerVar(w *blockWriter, id ast.StmtID) error {
	data, _ := e.builder.Stmts.Var(id)
	for _, decl := range data.Decls {
		if !decl.Init.IsValid() {
			continue // слот уже Undefined
		}
		storage, err := e.declaratorStorage(decl)
		if err != nil {
			return err
		}
		value, err := e.lowerExpr(decl.Init)
		if err != nil {
			return err
		}
		w.linef("%s = %s;", storage, value)
	}
	return nil
}

// declaratorStorage: у var-декларатора нет ident-узла, поэтому место
// хранения ищется по имени от текущего скоупа.
func (e *Emitter) declaratorStorage(decl ast.VarDeclarator) (string, error) {
	name := e.builder.StringsInterner.MustLookup(decl.Name)
	declID := e.sem.LookupFrom(e.current, decl.Name)
	if !declID.IsValid() {
		return "", unresolvedErr(decl.Span, name)
	}
	d := e.sem.Decls.Get(declID)
	switch d.Kind {
	case sema.DeclGlobal, sema.DeclImplicitGlobal:
		return "(*sl_global_slot(\"" + escapeCString(name) + "\"))", nil
	default:
		return e.slotPath(e.current, d, name)
	}
}

func (e *Emitter) lowerIf(w *blockWriter, id ast.StmtID) error {
	data, _ := e.builder.Stmts.If(id)
	cond, err := e.lowerExpr(data.Cond)
	if err != nil {
		return err
	}
	w.linef("if (sl_get_boolean(%s)) {", cond)
	w.indent++
	if err := e.lowerBranch(w, data.Then); err != nil {
		w.indent--
		return err
	}
	w.indent--
	// пустая else-ветка выводится всегда
	w.line("} else {")
	w.indent++
	if err := e.lowerBranch(w, data.Else); err != nil {
		w.indent--
		return err
	}
	w.indent--
	w.line("}")
	return nil
}

// lowerForStmt: скоуп заголовка (если назначен) входится один раз, до
// цикла — объявленная в заголовке переменная переживает итерации.
func (e *Emitter) lowerForStmt(w *blockWriter, id ast.StmtID) error {
	data, _ := e.builder.Stmts.For(id)

	entered := false
	var prev sema.ScopeID
	if scopeID, attached := e.sem.ScopeOf[id]; attached {
		w.line("{")
		w.indent++
		e.emitScopeAlloc(w, scopeID, scopeVarName(uint32(e.current)))
		prev = e.current
		e.current = scopeID
		entered = true
	}

	restore := func() {
		if entered {
			e.current = prev
			w.indent--
			w.line("}")
		}
	}

	init, err := e.forInitClause(data.Init)
	if err != nil {
		restore()
		return err
	}
	cond := ""
	if data.Cond.IsValid() {
		lowered, err := e.lowerExpr(data.Cond)
		if err != nil {
			restore()
			return err
		}
		cond = "sl_get_boolean(" + lowered + ")"
	}
	post := ""
	if data.Post.IsValid() {
		post, err = e.lowerExpr(data.Post)
		if err != nil {
			restore()
			return err
		}
	}

	w.line("for (" + init + "; " + cond + "; " + post + ") {")
	w.indent++
	if err := e.lowerBranch(w, data.Body); err != nil {
		w.indent--
		restore()
		return err
	}
	w.indent--
	w.line("}")
	restore()
	return nil
}

// forInitClause сплющивает init-секцию в одно выражение заголовка for.
func (e *Emitter) forInitClause(id ast.StmtID) (string, error) {
	if !id.IsValid() {
		return "", nil
	}
	stmt := e.builder.Stmts.Get(id)
	switch stmt.Kind {
	case ast.StmtVar:
		data, _ := e.builder.Stmts.Var(id)
		var parts []string
		for _, decl := range data.Decls {
			if !decl.Init.IsValid() {
				continue
			}
			storage, err := e.declaratorStorage(decl)
			if err != nil {
				return "", err
			}
			value, err := e.lowerExpr(decl.Init)
			if err != nil {
				return "", err
			}
			parts = append(parts, storage+" = "+value)
		}
		return strings.Join(parts, ", "), nil
	case ast.StmtExpr:
		data, _ := e.builder.Stmts.Expr(id)
		return e.lowerExpr(data.Expr)
	default:
		return "", malformedErr(stmt.Span, "for initializer must be a var or expression statement")
	}
}

// lowerTry: catch ловит теговое значение рантайма по значению; скоуп
// catch — дитя скоупа, объемлющего try, а не скоупа тела try.
func (e *Emitter) lowerTry(w *blockWriter, id ast.StmtID) error {
	stmt := e.builder.Stmts.Get(id)
	data, _ := e.builder.Stmts.Try(id)

	catchScope, attached := e.sem.ScopeOf[id]
	if !attached {
		return malformedErr(stmt.Span, "try statement without a catch scope")
	}

	w.line("try {")
	w.indent++
	if err := e.lowerBranch(w, data.Body); err != nil {
		w.indent--
		return err
	}
	w.indent--

	excVar := fmt.Sprintf("sl_exc%d", catchScope)
	w.linef("} catch (SlValue %s) {", excVar)
	w.indent++
	e.emitScopeAlloc(w, catchScope, scopeVarName(uint32(e.current)))

	prev := e.current
	e.current = catchScope
	if data.Param != source.NoStringID {
		scope := e.sem.Scopes.Get(catchScope)
		declID, bound := scope.NameIndex[data.Param]
		if !bound {
			e.current = prev
			return malformedErr(data.ParamSpan, "catch parameter has no declaration slot")
		}
		name := e.builder.StringsInterner.MustLookup(e.sem.Decls.Get(declID).Name)
		w.linef("%s->%s = %s;", scopeVarName(uint32(catchScope)), slotFieldName(name), excVar)
	}

	handler, ok := e.builder.Stmts.Block(data.Handler)
	if !ok {
		e.current = prev
		return malformedErr(stmt.Span, "catch handler must be a block")
	}
	for _, child := range handler.Stmts {
		if err := e.lowerStmt(w, child); err != nil {
			e.current = prev
			return err
		}
	}
	e.current = prev
	w.indent--
	w.line("}")
	return nil
}

func (e *Emitter) lowerFnDecl(w *blockWriter, id ast.StmtID) error {
	stmt := e.builder.Stmts.Get(id)
	data, _ := e.builder.Stmts.FnDecl(id)
	fn, ok := e.builder.Exprs.Function(data.Fn)
	if !ok {
		return malformedErr(stmt.Span, "function declaration without a function payload")
	}

	declID := e.sem.LookupFrom(e.current, fn.Name)
	if !declID.IsValid() {
		name := e.builder.StringsInterner.MustLookup(fn.Name)
		return unresolvedErr(stmt.Span, name)
	}

	closure, err := e.lowerFunction(data.Fn)
	if err != nil {
		return err
	}

	d := e.sem.Decls.Get(declID)
	name := e.builder.StringsInterner.MustLookup(fn.Name)
	switch d.Kind {
	case sema.DeclGlobal, sema.DeclImplicitGlobal:
		w.linef("(*sl_global_slot(\"%s\")) = %s;", escapeCString(name), closure)
	default:
		storage, err := e.slotPath(e.current, d, name)
		if err != nil {
			return err
		}
		w.linef("%s = %s;", storage, closure)
	}
	return nil
}
