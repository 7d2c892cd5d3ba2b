package sema

import (
	"fmt"

	"sling/internal/diag"
)

// Validate проверяет согласованность леса скоупов: глубина каждого
// скоупа на единицу больше родительской, каждая декларация привязана
// к существующему скоупу. Возвращает false, если нашлись нарушения.
func (res *Result) Validate(reporter diag.Reporter) bool {
	ok := true
	for idx, scope := range res.Scopes.Data() {
		id := ScopeID(idx + 1)
		if id == res.Root {
			if scope.Parent.IsValid() || scope.Depth != 0 {
				diag.ReportError(reporter, diag.SemaScopeMismatch, scope.Span, "root scope must have no parent and depth 0")
				ok = false
			}
			continue
		}
		parent := res.Scopes.Get(scope.Parent)
		if parent == nil {
			diag.ReportError(reporter, diag.SemaScopeMismatch, scope.Span,
				fmt.Sprintf("scope %d has dangling parent %d", id, scope.Parent))
			ok = false
			continue
		}
		if scope.Depth != parent.Depth+1 {
			diag.ReportError(reporter, diag.SemaScopeMismatch, scope.Span,
				fmt.Sprintf("scope %d depth %d does not follow parent depth %d", id, scope.Depth, parent.Depth))
			ok = false
		}
	}
	for idx, decl := range res.Decls.Data() {
		if res.Scopes.Get(decl.Scope) == nil {
			diag.ReportError(reporter, diag.SemaScopeMismatch, decl.Span,
				fmt.Sprintf("declaration %d is bound to missing scope %d", idx+1, decl.Scope))
			ok = false
		}
	}
	return ok
}
