package sema

import (
	"fmt"

	"fortio.org/safecast"

	"sling/internal/source"
)

// DeclKind splits declarations into the storage classes the backend
// understands.
type DeclKind uint8

const (
	// DeclLocal — обычный локал: слот в записи своего скоупа.
	DeclLocal DeclKind = iota
	// DeclGlobal — объявленный глобал: свойство глобального объекта.
	DeclGlobal
	// DeclImplicitGlobal — необъявленный идентификатор, легализованный
	// опцией AllowUndeclaredGlobals. Тоже свойство глобального объекта.
	DeclImplicitGlobal
)

func (k DeclKind) String() string {
	switch k {
	case DeclLocal:
		return "local"
	case DeclGlobal:
		return "global"
	case DeclImplicitGlobal:
		return "implicit-global"
	default:
		return "unknown"
	}
}

// Decl — одна именованная сущность: var-декларатор, параметр функции,
// имя функции или catch-параметр.
type Decl struct {
	Scope   ScopeID
	Name    source.StringID
	Kind    DeclKind
	Span    source.Span
	Builtin bool // предобъявлено рантаймом (print)
}

// Decls stores declarations in a compact arena.
type Decls struct {
	data []Decl
}

// NewDecls creates a declaration arena with optional capacity hint.
func NewDecls(capacity uint32) *Decls {
	if capacity == 0 {
		capacity = 64
	}
	return &Decls{
		data: make([]Decl, 1, capacity+1), // index 0 reserved for NoDeclID
	}
}

// New allocates a declaration in the arena and returns its ID.
func (d *Decls) New(decl Decl) DeclID {
	value, err := safecast.Conv[uint32](len(d.data))
	if err != nil {
		panic(fmt.Errorf("decls arena overflow: %w", err))
	}
	id := DeclID(value)
	d.data = append(d.data, decl)
	return id
}

// Get returns a declaration pointer or nil for invalid ID.
func (d *Decls) Get(id DeclID) *Decl {
	if !id.IsValid() || int(id) >= len(d.data) {
		return nil
	}
	return &d.data[id]
}

// Len reports total number of declarations excluding the sentinel.
func (d *Decls) Len() int { return len(d.data) - 1 }

// Data exposes the underlying slice without the sentinel.
func (d *Decls) Data() []Decl {
	if len(d.data) <= 1 {
		return nil
	}
	return d.data[1:]
}
