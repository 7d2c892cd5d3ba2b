package sema

import (
	"fmt"

	"fortio.org/safecast"

	"sling/internal/source"
)

// ScopeKind describes what construct owns a scope.
type ScopeKind uint8

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeBlock
	ScopeForHeader
	ScopeCatch
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeForHeader:
		return "for-header"
	case ScopeCatch:
		return "catch"
	default:
		return "unknown"
	}
}

// Scope — одна запись в лесе скоупов. Depth растёт от корня (0 у глобального);
// бэкенд выводит число разыменований parent из разницы глубин.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Depth     uint32
	Span      source.Span
	Children  []ScopeID
	Decls     []DeclID // в порядке объявления; порядок фиксирует слоты
	NameIndex map[source.StringID]DeclID
}

// Scopes stores all allocated scopes in a compact slice-based arena.
type Scopes struct {
	data []Scope
}

// NewScopes creates an arena with optional capacity hint.
func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 32
	}
	return &Scopes{
		data: make([]Scope, 1, capacity+1), // index 0 reserved for NoScopeID
	}
}

// New allocates a new scope and returns its ID.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, span source.Span) ScopeID {
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("scopes arena overflow: %w", err))
	}
	id := ScopeID(value)
	depth := uint32(0)
	if parent.IsValid() {
		if parentScope := s.Get(parent); parentScope != nil {
			depth = parentScope.Depth + 1
		}
	}
	s.data = append(s.data, Scope{
		Kind:      kind,
		Parent:    parent,
		Depth:     depth,
		Span:      span,
		NameIndex: make(map[source.StringID]DeclID),
	})
	if parent.IsValid() {
		if parentScope := s.Get(parent); parentScope != nil {
			parentScope.Children = append(parentScope.Children, id)
		}
	}
	return id
}

// Get returns the scope pointer or nil if ID is invalid.
func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Len reports total number of scopes excluding the sentinel.
func (s *Scopes) Len() int { return len(s.data) - 1 }

// Data exposes the underlying slice without the sentinel.
func (s *Scopes) Data() []Scope {
	if len(s.data) <= 1 {
		return nil
	}
	return s.data[1:]
}
