package parser

import (
	"fmt"
	"strings"
	"testing"

	"sling/internal/ast"
	"sling/internal/diag"
	"sling/internal/lexer"
	"sling/internal/source"
)

func parseSource(t *testing.T, src string) (Result, *ast.Builder, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sl", []byte(src))
	file := fs.Get(fileID)

	bag := diag.NewBag(64)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	arenas := ast.NewBuilder(ast.Hints{})
	res := ParseFile(fs, lx, arenas, Options{Reporter: reporter})
	return res, arenas, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func mustClean(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.HasErrors() {
		t.Fatalf("неожиданные диагностики: %s", diagnosticsSummary(bag))
	}
}

func topStmts(res Result, arenas *ast.Builder) []ast.StmtID {
	return arenas.Files.Get(res.File).Stmts
}

func TestParseVarStmt(t *testing.T) {
	res, arenas, bag := parseSource(t, "var a = 1, b, c = a + 2;")
	mustClean(t, bag)

	stmts := topStmts(res, arenas)
	if len(stmts) != 1 {
		t.Fatalf("стейтментов = %d", len(stmts))
	}
	vd, ok := arenas.Stmts.Var(stmts[0])
	if !ok {
		t.Fatal("ожидали var-стейтмент")
	}
	if len(vd.Decls) != 3 {
		t.Fatalf("деклараторов = %d", len(vd.Decls))
	}
	if vd.Decls[1].Init != ast.NoExprID {
		t.Error("у 'b' не должно быть инициализатора")
	}
	if _, ok := arenas.Exprs.Binary(vd.Decls[2].Init); !ok {
		t.Error("инициализатор 'c' должен быть бинарным выражением")
	}
}

func TestParseFunctionDecl(t *testing.T) {
	res, arenas, bag := parseSource(t, "function add(a, b) { return a + b; }")
	mustClean(t, bag)

	stmts := topStmts(res, arenas)
	fd, ok := arenas.Stmts.FnDecl(stmts[0])
	if !ok {
		t.Fatal("ожидали function declaration")
	}
	fn, ok := arenas.Exprs.Function(fd.Fn)
	if !ok {
		t.Fatal("payload должен быть function expression")
	}
	if fn.Name == source.NoStringID {
		t.Error("имя декларации обязано быть задано")
	}
	if len(fn.Params) != 2 {
		t.Errorf("параметров = %d", len(fn.Params))
	}
	body, ok := arenas.Stmts.Block(fn.Body)
	if !ok || len(body.Stmts) != 1 {
		t.Fatal("тело должно быть блоком с return")
	}
	if _, ok := arenas.Stmts.Return(body.Stmts[0]); !ok {
		t.Error("в теле ожидали return")
	}
}

func TestParseIfElseChain(t *testing.T) {
	res, arenas, bag := parseSource(t, "if (a < 1) { x = 1; } else if (a < 2) { x = 2; } else { x = 3; }")
	mustClean(t, bag)

	stmts := topStmts(res, arenas)
	ifd, ok := arenas.Stmts.If(stmts[0])
	if !ok {
		t.Fatal("ожидали if")
	}
	inner, ok := arenas.Stmts.If(ifd.Else)
	if !ok {
		t.Fatal("else if должен парситься как вложенный if")
	}
	if inner.Else == ast.NoStmtID {
		t.Error("у вложенного if должен быть else")
	}
}

func TestParseForHeaderVariants(t *testing.T) {
	cases := []struct {
		src              string
		init, cond, post bool
	}{
		{"for (var i = 0; i < 10; i++) {}", true, true, true},
		{"for (;;) {}", false, false, false},
		{"for (i = 0; ; i = i + 1) {}", true, false, true},
		{"for (; i < 3;) {}", false, true, false},
	}
	for _, tc := range cases {
		res, arenas, bag := parseSource(t, tc.src)
		mustClean(t, bag)

		fd, ok := arenas.Stmts.For(topStmts(res, arenas)[0])
		if !ok {
			t.Fatalf("%q: ожидали for", tc.src)
		}
		if (fd.Init != ast.NoStmtID) != tc.init {
			t.Errorf("%q: init присутствие = %v", tc.src, fd.Init != ast.NoStmtID)
		}
		if (fd.Cond != ast.NoExprID) != tc.cond {
			t.Errorf("%q: cond присутствие = %v", tc.src, fd.Cond != ast.NoExprID)
		}
		if (fd.Post != ast.NoExprID) != tc.post {
			t.Errorf("%q: post присутствие = %v", tc.src, fd.Post != ast.NoExprID)
		}
	}
}

func TestParseTryCatch(t *testing.T) {
	res, arenas, bag := parseSource(t, "try { risky(); } catch (e) { print(e); }")
	mustClean(t, bag)

	td, ok := arenas.Stmts.Try(topStmts(res, arenas)[0])
	if !ok {
		t.Fatal("ожидали try")
	}
	if td.Param == source.NoStringID {
		t.Error("параметр catch должен быть задан")
	}
	if _, ok := arenas.Stmts.Block(td.Handler); !ok {
		t.Error("handler должен быть блоком")
	}
}

func TestParseTryCatchWithoutParam(t *testing.T) {
	res, arenas, bag := parseSource(t, "try { risky(); } catch { cleanup(); }")
	mustClean(t, bag)

	td, ok := arenas.Stmts.Try(topStmts(res, arenas)[0])
	if !ok {
		t.Fatal("ожидали try")
	}
	if td.Param != source.NoStringID {
		t.Error("параметр catch должен отсутствовать")
	}
}

func TestParseTryWithoutCatchFails(t *testing.T) {
	_, _, bag := parseSource(t, "try { risky(); } print(1);")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectCatch {
			found = true
		}
	}
	if !found {
		t.Errorf("ожидали SynExpectCatch, получили: %s", diagnosticsSummary(bag))
	}
}

func TestParsePrecedence(t *testing.T) {
	res, arenas, bag := parseSource(t, "x = 1 + 2 * 3;")
	mustClean(t, bag)

	ed, ok := arenas.Stmts.Expr(topStmts(res, arenas)[0])
	if !ok {
		t.Fatal("ожидали expression statement")
	}
	ad, ok := arenas.Exprs.Assign(ed.Expr)
	if !ok {
		t.Fatal("ожидали присваивание")
	}
	add, ok := arenas.Exprs.Binary(ad.Value)
	if !ok || add.Op != ast.BinAdd {
		t.Fatal("корень значения должен быть '+'")
	}
	mul, ok := arenas.Exprs.Binary(add.Right)
	if !ok || mul.Op != ast.BinMul {
		t.Error("правое поддерево должно быть '*'")
	}
}

func TestParseAssignRightAssociative(t *testing.T) {
	res, arenas, bag := parseSource(t, "a = b = 1;")
	mustClean(t, bag)

	ed, _ := arenas.Stmts.Expr(topStmts(res, arenas)[0])
	outer, ok := arenas.Exprs.Assign(ed.Expr)
	if !ok {
		t.Fatal("ожидали присваивание")
	}
	if _, ok := arenas.Exprs.Assign(outer.Value); !ok {
		t.Error("значение внешнего присваивания должно быть присваиванием")
	}
}

func TestParseCompoundAssign(t *testing.T) {
	res, arenas, bag := parseSource(t, "o.count += 1;")
	mustClean(t, bag)

	ed, _ := arenas.Stmts.Expr(topStmts(res, arenas)[0])
	ad, ok := arenas.Exprs.Assign(ed.Expr)
	if !ok || ad.Op != ast.AssignAdd {
		t.Fatal("ожидали '+='")
	}
	if _, ok := arenas.Exprs.Member(ad.Target); !ok {
		t.Error("target должен быть member-доступом")
	}
}

func TestParseBadAssignTarget(t *testing.T) {
	_, _, bag := parseSource(t, "1 + 2 = 3;")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynBadAssignTarget {
			found = true
		}
	}
	if !found {
		t.Errorf("ожидали SynBadAssignTarget, получили: %s", diagnosticsSummary(bag))
	}
}

func TestParseMemberAndCallChain(t *testing.T) {
	res, arenas, bag := parseSource(t, "a.b[c](1, 2).d;")
	mustClean(t, bag)

	ed, _ := arenas.Stmts.Expr(topStmts(res, arenas)[0])
	outer, ok := arenas.Exprs.Member(ed.Expr)
	if !ok || outer.IsComputed() {
		t.Fatal("корень должен быть именованным member-доступом")
	}
	call, ok := arenas.Exprs.Call(outer.Object)
	if !ok || len(call.Args) != 2 {
		t.Fatal("под .d должен быть вызов с двумя аргументами")
	}
	idx, ok := arenas.Exprs.Member(call.Callee)
	if !ok || !idx.IsComputed() {
		t.Fatal("callee должен быть индексным доступом")
	}
	if _, ok := arenas.Exprs.Member(idx.Object); !ok {
		t.Error("ниже должен быть a.b")
	}
}

func TestParseUpdateExprs(t *testing.T) {
	res, arenas, bag := parseSource(t, "i++; --j;")
	mustClean(t, bag)

	stmts := topStmts(res, arenas)
	ed0, _ := arenas.Stmts.Expr(stmts[0])
	post, ok := arenas.Exprs.Update(ed0.Expr)
	if !ok || post.Prefix || post.Op != ast.UpdateInc {
		t.Error("i++ должен быть постфиксным инкрементом")
	}
	ed1, _ := arenas.Stmts.Expr(stmts[1])
	pre, ok := arenas.Exprs.Update(ed1.Expr)
	if !ok || !pre.Prefix || pre.Op != ast.UpdateDec {
		t.Error("--j должен быть префиксным декрементом")
	}
}

func TestParseObjectLiteral(t *testing.T) {
	res, arenas, bag := parseSource(t, `var o = { a: 1, "b c": 2, [k]: 3, };`)
	mustClean(t, bag)

	vd, _ := arenas.Stmts.Var(topStmts(res, arenas)[0])
	od, ok := arenas.Exprs.Object(vd.Decls[0].Init)
	if !ok {
		t.Fatal("ожидали объектный литерал")
	}
	if len(od.Props) != 3 {
		t.Fatalf("свойств = %d", len(od.Props))
	}
	if od.Props[0].Key == source.NoStringID || od.Props[1].Key == source.NoStringID {
		t.Error("первые два ключа должны быть именованными")
	}
	if od.Props[2].Computed == ast.NoExprID {
		t.Error("третий ключ должен быть вычисляемым")
	}
}

func TestParseArrayLiteralAndFnExpr(t *testing.T) {
	res, arenas, bag := parseSource(t, "var xs = [1, f, function () { return 0; }];")
	mustClean(t, bag)

	vd, _ := arenas.Stmts.Var(topStmts(res, arenas)[0])
	arr, ok := arenas.Exprs.Array(vd.Decls[0].Init)
	if !ok || len(arr.Elems) != 3 {
		t.Fatal("ожидали массив из трёх элементов")
	}
	fn, ok := arenas.Exprs.Function(arr.Elems[2])
	if !ok {
		t.Fatal("третий элемент должен быть function expression")
	}
	if fn.Name != source.NoStringID {
		t.Error("анонимная функция не должна иметь имени")
	}
}

func TestParseRecoversAfterBadStatement(t *testing.T) {
	res, arenas, bag := parseSource(t, "var = 1; var ok = 2;")
	if !bag.HasErrors() {
		t.Fatal("ожидали диагностику на первом стейтменте")
	}
	stmts := topStmts(res, arenas)
	if len(stmts) != 1 {
		t.Fatalf("после ресинка должен остаться один стейтмент, есть %d", len(stmts))
	}
	if _, ok := arenas.Stmts.Var(stmts[0]); !ok {
		t.Error("выживший стейтмент должен быть var")
	}
}

func TestParseMissingSemicolon(t *testing.T) {
	_, _, bag := parseSource(t, "var a = 1\nvar b = 2;")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectSemicolon {
			found = true
		}
	}
	if !found {
		t.Errorf("ожидали SynExpectSemicolon, получили: %s", diagnosticsSummary(bag))
	}
}

func TestParseMaxErrorsStopsReporting(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sl", []byte("@ @ @ @ @ @;"))
	file := fs.Get(fileID)

	bag := diag.NewBag(64)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	arenas := ast.NewBuilder(ast.Hints{})
	ParseFile(fs, lx, arenas, Options{Reporter: reporter, MaxErrors: 2})

	// лексер репортит свои ошибки сам, парсер ограничивает только свои
	parserErrors := 0
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectExpression {
			parserErrors++
		}
	}
	if parserErrors > 2 {
		t.Errorf("парсер превысил MaxErrors: %d", parserErrors)
	}
}
