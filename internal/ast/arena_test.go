package ast

import (
	"testing"

	"sling/internal/source"
)

func TestArenaIDsAreOneBased(t *testing.T) {
	a := NewArena[int](4)
	if a.Get(0) != nil {
		t.Error("индекс 0 зарезервирован за \"нет элемента\"")
	}

	id1 := a.Allocate(10)
	id2 := a.Allocate(20)
	if id1 != 1 || id2 != 2 {
		t.Errorf("ID должны расти с единицы: %d, %d", id1, id2)
	}
	if *a.Get(id1) != 10 || *a.Get(id2) != 20 {
		t.Error("Get вернул не те значения")
	}
	if a.Len() != 2 {
		t.Errorf("Len = %d", a.Len())
	}
}

func TestExprsRoundTrip(t *testing.T) {
	exprs := NewExprs(0)
	interner := source.NewInterner()

	name := interner.Intern("x")
	id := exprs.NewIdent(source.Span{Start: 0, End: 1}, name)

	data, ok := exprs.Ident(id)
	if !ok {
		t.Fatal("Ident не нашёл данные")
	}
	if data.Name != name {
		t.Errorf("Name = %d", data.Name)
	}

	// доступ с неправильным kind должен вернуть false
	if _, ok := exprs.Binary(id); ok {
		t.Error("Binary по ident ID должен вернуть false")
	}
}

func TestStmtsRoundTrip(t *testing.T) {
	stmts := NewStmts(0)
	exprs := NewExprs(0)
	interner := source.NewInterner()

	cond := exprs.NewLiteral(source.Span{}, LitBool, source.NoStringID, true)
	then := stmts.NewBlock(source.Span{}, nil)
	id := stmts.NewIf(source.Span{}, cond, then, NoStmtID)

	data, ok := stmts.If(id)
	if !ok {
		t.Fatal("If не нашёл данные")
	}
	if data.Cond != cond || data.Then != then || data.Else != NoStmtID {
		t.Errorf("данные if: %+v", data)
	}

	v := stmts.NewVar(source.Span{}, []VarDeclarator{{Name: interner.Intern("a")}})
	if vd, ok := stmts.Var(v); !ok || len(vd.Decls) != 1 {
		t.Error("Var round-trip")
	}
}

func TestBuilderPushStmt(t *testing.T) {
	b := NewBuilder(Hints{})
	fid := b.NewFile(source.Span{})

	s1 := b.Stmts.NewEmpty(source.Span{})
	s2 := b.Stmts.NewEmpty(source.Span{})
	b.PushStmt(fid, s1)
	b.PushStmt(fid, s2)

	f := b.Files.Get(fid)
	if len(f.Stmts) != 2 || f.Stmts[0] != s1 || f.Stmts[1] != s2 {
		t.Errorf("Stmts = %v", f.Stmts)
	}
}

func TestMemberComputedFlag(t *testing.T) {
	exprs := NewExprs(0)
	interner := source.NewInterner()

	obj := exprs.NewIdent(source.Span{}, interner.Intern("o"))
	named := exprs.NewMember(source.Span{}, obj, interner.Intern("f"), NoExprID)
	key := exprs.NewLiteral(source.Span{}, LitNumber, interner.Intern("0"), false)
	computed := exprs.NewMember(source.Span{}, obj, source.NoStringID, key)

	if d, _ := exprs.Member(named); d.IsComputed() {
		t.Error("именованный доступ не должен быть computed")
	}
	if d, _ := exprs.Member(computed); !d.IsComputed() {
		t.Error("доступ по ключу должен быть computed")
	}
}
