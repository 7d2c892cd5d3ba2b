package cgen

import (
	"fmt"
	"strings"

	"sling/internal/ast"
	"sling/internal/sema"
	"sling/internal/source"
)

// lowerFunction поднимает function expression в C++-функцию файлового
// уровня (вложенных функций в C++ нет) и возвращает выражение-замыкание:
// пара из указателя на функцию и указателя текущего скоупа, захваченного
// по значению в момент создания.
func (e *Emitter) lowerFunction(id ast.ExprID) (string, error) {
	expr := e.builder.Exprs.Get(id)
	data, ok := e.builder.Exprs.Function(id)
	if !ok {
		return "", malformedErr(expr.Span, "function payload is missing")
	}
	fnScope, ok := e.sem.FnScopeOf[id]
	if !ok {
		return "", malformedErr(expr.Span, "function expression has no attached scope")
	}
	scope := e.sem.Scopes.Get(fnScope)
	if scope == nil || !scope.Parent.IsValid() {
		return "", malformedErr(expr.Span, "function scope must have a parent")
	}

	captureVar := scopeVarName(uint32(e.current))

	index := e.fnCount
	e.fnCount++

	params := "void *sl_env"
	for i := range data.Params {
		params += fmt.Sprintf(", SlValue p%d", i)
	}
	header := fmt.Sprintf("SlValue %s(%s)", fnName(index), params)

	w := &blockWriter{indent: 1}
	sv := scopeVarName(uint32(fnScope))
	parentType := scopeTypeName(uint32(scope.Parent))

	// скоуп функции — дитя окружения, пришедшего первым аргументом
	typ := scopeTypeName(uint32(fnScope))
	w.linef("%s *%s = (%s *)sl_alloc(sizeof(%s));", typ, sv, typ, typ)
	w.linef("%s->parent = (%s *)sl_env;", sv, parentType)
	for _, declID := range scope.Decls {
		decl := e.sem.Decls.Get(declID)
		if decl.Kind != sema.DeclLocal {
			continue
		}
		name := e.builder.StringsInterner.MustLookup(decl.Name)
		w.linef("%s->%s = sl_undefined();", sv, slotFieldName(name))
	}

	// именованное function expression связывает своё имя в собственном
	// скоупе — замыкание с тем же окружением, что и у создателя
	if data.Name != source.NoStringID {
		if declID, bound := scope.NameIndex[data.Name]; bound {
			decl := e.sem.Decls.Get(declID)
			if decl.Scope == fnScope {
				name := e.builder.StringsInterner.MustLookup(data.Name)
				w.linef("%s->%s = sl_encode_closure(sl_closure_new((void *)%s, (void *)%s->parent));",
					sv, slotFieldName(name), fnName(index), sv)
			}
		}
	}

	// формальные параметры копируются в слоты своих деклараций
	for i, param := range data.Params {
		declID, bound := scope.NameIndex[param.Name]
		if !bound {
			return "", malformedErr(param.Span, "formal parameter has no declaration slot")
		}
		name := e.builder.StringsInterner.MustLookup(e.sem.Decls.Get(declID).Name)
		w.linef("%s->%s = p%d;", sv, slotFieldName(name), i)
	}

	body, ok := e.builder.Stmts.Block(data.Body)
	if !ok {
		return "", malformedErr(expr.Span, "function body must be a block")
	}

	prev := e.current
	e.current = fnScope
	e.fnDepth++
	for _, stmtID := range body.Stmts {
		if err := e.lowerStmt(w, stmtID); err != nil {
			e.current = prev
			e.fnDepth--
			return "", err
		}
	}
	e.current = prev
	e.fnDepth--

	w.line("return sl_undefined();")

	var def strings.Builder
	def.WriteString(header)
	def.WriteString(" {\n")
	def.WriteString(w.buf.String())
	def.WriteString("}\n")

	e.fnProtos = append(e.fnProtos, header+";")
	e.fnDefs = append(e.fnDefs, def.String())

	return fmt.Sprintf("sl_encode_closure(sl_closure_new((void *)%s, (void *)%s))", fnName(index), captureVar), nil
}
