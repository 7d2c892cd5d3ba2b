package sema

import (
	"sling/internal/ast"
	"sling/internal/diag"
	"sling/internal/source"
)

// Options configure a resolve pass over a file.
type Options struct {
	Reporter diag.Reporter
	// AllowUndeclaredGlobals легализует необъявленные идентификаторы как
	// свойства глобального объекта. По умолчанию включено; выключение
	// оставляет такие идентификаторы без резолюции, и бэкенд падает на них.
	AllowUndeclaredGlobals bool
}

// DefaultOptions возвращает опции с политикой по умолчанию.
func DefaultOptions(reporter diag.Reporter) Options {
	return Options{
		Reporter:               reporter,
		AllowUndeclaredGlobals: true,
	}
}

// Result stores the scope forest and the resolution maps the backend consumes.
type Result struct {
	Scopes *Scopes
	Decls  *Decls
	Root   ScopeID

	// ScopeOf: стейтмент, владеющий скоупом → его скоуп. Ключи: блоки с
	// собственными декларациями, for со скоупом заголовка, try (скоуп catch).
	ScopeOf map[ast.StmtID]ScopeID
	// FnScopeOf: function expression → скоуп функции.
	FnScopeOf map[ast.ExprID]ScopeID
	// ResolutionOf: идентификатор-выражение → декларация.
	ResolutionOf map[ast.ExprID]DeclID
}

// BuiltinPrint — имя предобъявленного глобала печати.
const BuiltinPrint = "print"

// Resolve строит лес скоупов и резолюции имён для одного файла.
func Resolve(builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	res := Result{
		Scopes:       NewScopes(0),
		Decls:        NewDecls(0),
		ScopeOf:      make(map[ast.StmtID]ScopeID),
		FnScopeOf:    make(map[ast.ExprID]ScopeID),
		ResolutionOf: make(map[ast.ExprID]DeclID),
	}
	if builder == nil || fileID == ast.NoFileID {
		return res
	}
	file := builder.Files.Get(fileID)
	if file == nil {
		return res
	}

	r := resolver{
		builder: builder,
		opts:    opts,
		res:     &res,
	}

	res.Root = res.Scopes.New(ScopeGlobal, NoScopeID, file.Span)
	r.current = res.Root
	r.declare(builder.StringsInterner.Intern(BuiltinPrint), DeclGlobal, source.Span{}, true)

	r.declareStmts(file.Stmts)
	for _, stmtID := range file.Stmts {
		r.resolveStmt(stmtID)
	}
	return res
}

type resolver struct {
	builder *ast.Builder
	opts    Options
	res     *Result
	current ScopeID
}

func (r *resolver) scope() *Scope {
	return r.res.Scopes.Get(r.current)
}

// declKindFor: декларации в глобальном скоупе — свойства глобального
// объекта, остальные — слоты.
func (r *resolver) declKindFor() DeclKind {
	if r.scope().Kind == ScopeGlobal {
		return DeclGlobal
	}
	return DeclLocal
}

// declareVar: повторный var того же имени в одном скоупе сливается с
// уже существующей декларацией — слот один, диагностики нет.
func (r *resolver) declareVar(name source.StringID, span source.Span) DeclID {
	if existing, ok := r.scope().NameIndex[name]; ok {
		return existing
	}
	return r.declare(name, r.declKindFor(), span, false)
}

func (r *resolver) declare(name source.StringID, kind DeclKind, span source.Span, builtin bool) DeclID {
	scope := r.scope()
	if existing, ok := scope.NameIndex[name]; ok {
		prev := r.res.Decls.Get(existing)
		text, _ := r.builder.StringsInterner.Lookup(name)
		r.report(diag.SemaDuplicateSymbol, span, "duplicate declaration of '"+text+"'", []diag.Note{
			{Span: prev.Span, Msg: "previously declared here"},
		})
		return existing
	}
	id := r.res.Decls.New(Decl{
		Scope:   r.current,
		Name:    name,
		Kind:    kind,
		Span:    span,
		Builtin: builtin,
	})
	scope.Decls = append(scope.Decls, id)
	scope.NameIndex[name] = id
	return id
}

func (r *resolver) report(code diag.Code, span source.Span, msg string, notes []diag.Note) {
	if r.opts.Reporter == nil {
		return
	}
	sev := diag.SevError
	if code == diag.SemaUnresolvedSymbol {
		// нерезолвленный идентификатор не фатален на этой фазе:
		// бэкенд решает, падать ли на нём
		sev = diag.SevWarning
	}
	r.opts.Reporter.Report(code, sev, span, msg, notes)
}

// lookup идёт по цепочке parent от текущего скоупа к корню.
func (r *resolver) lookup(name source.StringID) DeclID {
	for id := r.current; id.IsValid(); {
		scope := r.res.Scopes.Get(id)
		if declID, ok := scope.NameIndex[name]; ok {
			return declID
		}
		id = scope.Parent
	}
	return NoDeclID
}

// enter создаёт скоуп и делает его текущим; возвращает прежний текущий.
func (r *resolver) enter(kind ScopeKind, span source.Span) (ScopeID, ScopeID) {
	prev := r.current
	id := r.res.Scopes.New(kind, prev, span)
	r.current = id
	return id, prev
}
