package cgen

import (
	"fmt"
	"strings"

	"sling/internal/sema"
)

// emitScopeTypes выводит сперва forward-декларации всех записей скоупов,
// затем их определения — в порядке id. Forward-декларации обязательны:
// замыкание, созданное внутри скоупа, может ссылаться на запись,
// определённую позже по исходнику. Скоупы не сливаются и не выкидываются,
// даже пустые: через пустую запись всё ещё протягивается parent-цепочка.
func (e *Emitter) emitScopeTypes(out *strings.Builder) {
	data := e.sem.Scopes.Data()

	for idx := range data {
		fmt.Fprintf(out, "struct %s;\n", scopeTypeName(uint32(idx+1)))
	}
	if len(data) > 0 {
		out.WriteString("\n")
	}

	for idx := range data {
		scope := &data[idx]
		fmt.Fprintf(out, "struct %s {\n", scopeTypeName(uint32(idx+1)))
		if scope.Parent.IsValid() {
			fmt.Fprintf(out, "\t%s *parent;\n", scopeTypeName(uint32(scope.Parent)))
		}
		for _, declID := range scope.Decls {
			decl := e.sem.Decls.Get(declID)
			if decl.Kind != sema.DeclLocal {
				continue // глобалы живут в глобальном объекте, не в записи
			}
			name := e.builder.StringsInterner.MustLookup(decl.Name)
			fmt.Fprintf(out, "\tSlValue %s;\n", slotFieldName(name))
		}
		out.WriteString("};\n\n")
	}
}

// emitScopeAlloc выводит аллокацию экземпляра скоупа: запись берётся у
// рантайма, parent подключается к текущему скоупу вызывающей стороны,
// слоты инициализируются Undefined.
func (e *Emitter) emitScopeAlloc(w *blockWriter, scopeID sema.ScopeID, parentExpr string) {
	scope := e.sem.Scopes.Get(scopeID)
	typ := scopeTypeName(uint32(scopeID))
	varName := scopeVarName(uint32(scopeID))

	w.linef("%s *%s = (%s *)sl_alloc(sizeof(%s));", typ, varName, typ, typ)
	if scope.Parent.IsValid() {
		w.linef("%s->parent = %s;", varName, parentExpr)
	}
	for _, declID := range scope.Decls {
		decl := e.sem.Decls.Get(declID)
		if decl.Kind != sema.DeclLocal {
			continue
		}
		name := e.builder.StringsInterner.MustLookup(decl.Name)
		w.linef("%s->%s = sl_undefined();", varName, slotFieldName(name))
	}
}

// slotPath строит путь к слоту декларации от скоупа точки использования:
// ровно depth(site) - depth(owner) разыменований parent. Число шагов
// вычисляется статически и в рантайме не перевыводится.
func (e *Emitter) slotPath(site sema.ScopeID, decl *sema.Decl, name string) (string, error) {
	siteScope := e.sem.Scopes.Get(site)
	ownerScope := e.sem.Scopes.Get(decl.Scope)
	if siteScope == nil || ownerScope == nil {
		return "", malformedErr(decl.Span, "slot access outside the scope forest")
	}
	if siteScope.Depth < ownerScope.Depth {
		return "", malformedErr(decl.Span,
			fmt.Sprintf("site depth %d is shallower than declaration depth %d", siteScope.Depth, ownerScope.Depth))
	}
	steps := siteScope.Depth - ownerScope.Depth

	var sb strings.Builder
	sb.WriteString(scopeVarName(uint32(site)))
	for i := uint32(0); i < steps; i++ {
		sb.WriteString("->parent")
	}
	sb.WriteString("->")
	sb.WriteString(slotFieldName(name))
	return sb.String(), nil
}
