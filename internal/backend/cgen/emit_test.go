package cgen

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"sling/internal/ast"
	"sling/internal/diag"
	"sling/internal/lexer"
	"sling/internal/parser"
	"sling/internal/sema"
	"sling/internal/source"
)

func lowerSource(t *testing.T, src string, allowUndeclared bool) (string, error) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sl", []byte(src))
	file := fs.Get(fileID)

	bag := diag.NewBag(64)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	arenas := ast.NewBuilder(ast.Hints{})
	parseRes := parser.ParseFile(fs, lx, arenas, parser.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("фронтенд не должен падать: %+v", bag.Items())
	}

	opts := sema.DefaultOptions(reporter)
	opts.AllowUndeclaredGlobals = allowUndeclared
	semRes := sema.Resolve(arenas, parseRes.File, opts)
	return EmitModule(arenas, parseRes.File, &semRes)
}

func mustLower(t *testing.T, src string) string {
	t.Helper()
	text, err := lowerSource(t, src, true)
	if err != nil {
		t.Fatalf("лоуэринг упал: %v", err)
	}
	return text
}

func mustContain(t *testing.T, text, needle string) {
	t.Helper()
	if !strings.Contains(text, needle) {
		t.Errorf("в выводе нет %q\n--- вывод ---\n%s", needle, text)
	}
}

func mustNotContain(t *testing.T, text, needle string) {
	t.Helper()
	if strings.Contains(text, needle) {
		t.Errorf("в выводе не должно быть %q\n--- вывод ---\n%s", needle, text)
	}
}

func TestModuleSkeleton(t *testing.T) {
	text := mustLower(t, "var x = 1;")

	mustContain(t, text, "#include \"sling_rt.h\"")
	mustContain(t, text, "int main() {")
	mustContain(t, text, "sl_runtime_init();")
	mustContain(t, text, "return 0;")

	// корневая запись аллоцируется в main
	mustContain(t, text, "SlScope1 *sc1 = (SlScope1 *)sl_alloc(sizeof(SlScope1));")
}

func TestScopeTypesForwardDeclaredBeforeDefined(t *testing.T) {
	text := mustLower(t, `
function f() {
	var a = 1;
	return a;
}
`)
	fwd := strings.Index(text, "struct SlScope2;")
	def := strings.Index(text, "struct SlScope2 {")
	if fwd < 0 || def < 0 {
		t.Fatalf("нет forward-декларации или определения SlScope2:\n%s", text)
	}
	if fwd > def {
		t.Error("forward-декларация должна идти раньше определения")
	}
	// у не-корневой записи есть parent-ссылка конкретного типа
	mustContain(t, text, "SlScope1 *parent;")
}

func TestOneRecordPerScope(t *testing.T) {
	text := mustLower(t, `
function f() { var a = 1; }
try {} catch (e) {}
`)
	// скоупы: корень, функция f, catch — по одной записи на каждый
	for _, n := range []int{1, 2, 3} {
		mustContain(t, text, fmt.Sprintf("struct SlScope%d {", n))
	}
	mustNotContain(t, text, "struct SlScope4")
}

func TestGlobalVsLocalDichotomy(t *testing.T) {
	text := mustLower(t, `
var g = 1;
function f() {
	var l = 2;
	g = l;
}
`)
	// глобал — только через глобальный объект, по literal-имени
	mustContain(t, text, `(*sl_global_slot("g"))`)
	mustNotContain(t, text, "v_g")
	// локал — только слот записи скоупа, без глобального объекта
	mustContain(t, text, "->v_l")
	mustNotContain(t, text, `sl_global_slot("l")`)
}

func TestDepthConsistentDereferences(t *testing.T) {
	text := mustLower(t, `
function outer() {
	var captured = 1;
	function inner() {
		return captured;
	}
}
`)
	// inner (глубина 2) читает слот outer (глубина 1): ровно один ->parent
	mustContain(t, text, "->parent->v_captured")
	mustNotContain(t, text, "->parent->parent->v_captured")
}

func TestClosureCapturesCurrentScope(t *testing.T) {
	text := mustLower(t, `
function make() {
	var state = 0;
	return function () { return state; };
}
var c = make();
`)
	// внутреннее замыкание захватывает запись скоупа make (sc2)
	mustContain(t, text, "sl_closure_new((void *)sl_fn_1, (void *)sc2)")
	// make создаётся на верхнем уровне с корневым окружением
	mustContain(t, text, "sl_closure_new((void *)sl_fn_0, (void *)sc1)")
}

func TestCallHelpersOnlyForUsedArities(t *testing.T) {
	text := mustLower(t, `
function f(a, b) { return a; }
f(1, 2);
`)
	mustContain(t, text, "static inline SlValue sl_call2(SlValue fn, SlValue a0, SlValue a1) {")
	mustContain(t, text, "(SlValue (*)(void *, SlValue, SlValue))c->fn")
	mustNotContain(t, text, "sl_call0")
	mustNotContain(t, text, "sl_call1")
	mustNotContain(t, text, "sl_call3")
}

func TestFunctionLowering(t *testing.T) {
	text := mustLower(t, `
function f(a) { return a + 1; }
var y = f(41);
`)
	// сигнатура: окружение первым аргументом, затем по SlValue на формал
	mustContain(t, text, "SlValue sl_fn_0(void *sl_env, SlValue p0)")
	// окружение перевязывается как объемлющий скоуп
	mustContain(t, text, "sc2->parent = (SlScope1 *)sl_env;")
	// формал копируется в слот своей декларации
	mustContain(t, text, "sc2->v_a = p0;")
	// неявный return undefined в конце тела
	mustContain(t, text, "return sl_undefined();")
	// вызов через хелпер арности 1
	mustContain(t, text, "sl_call1(")
}

func TestLiteralLowering(t *testing.T) {
	text := mustLower(t, `var a = 1.5; var b = true; var s = "hi";`)
	mustContain(t, text, "sl_encode_number(1.5)")
	mustContain(t, text, "sl_encode_boolean(true)")
	mustContain(t, text, `sl_encode_string("hi")`)
}

func TestStringEscapingStaysASCII(t *testing.T) {
	text := mustLower(t, `var s = "приве\tт \"q\"";`)
	if !isPureASCII(text) {
		t.Fatal("вывод обязан быть чистым ASCII")
	}
	// не-ASCII байты — октальные эскейпы, управляющие — мнемоники
	mustContain(t, text, `\320`)
	mustContain(t, text, `\t`)
	mustContain(t, text, `\"q\"`)
}

func TestObjectAndArrayLiterals(t *testing.T) {
	text := mustLower(t, `
var o = { a: 1, [k]: 2 };
var xs = [1, 2];
var first = xs[0];
var m = o.a;
`)
	// несколько операндов: каждый уходит во временную отдельным
	// statement, порядок вычислений фиксирован
	mustContain(t, text, `sl_encode_object([&] { SlValue sl_t0 = sl_encode_number(1); SlValue sl_t1 = (*sl_global_slot("k")); SlValue sl_t2 = sl_encode_number(2); return sl_object_put_key(sl_object_put(sl_object_new(), "a", sl_t0), sl_t1, sl_t2); }())`)
	mustContain(t, text, "sl_encode_array([&] { SlValue sl_t0 = sl_encode_number(1); SlValue sl_t1 = sl_encode_number(2); return sl_array_of(2, sl_t0, sl_t1); }())")
	// вычисляемый доступ — теговый контейнер, именованный — развёрнутый объект
	mustContain(t, text, "sl_index_slot(")
	mustContain(t, text, `sl_object_slot(sl_get_object(`)
}

func TestSingleOperandLiteralsStayNested(t *testing.T) {
	text := mustLower(t, `
var o = { a: 1 };
var e = {};
var xs = [1];
var none = [];
`)
	mustContain(t, text, `sl_encode_object(sl_object_put(sl_object_new(), "a", sl_encode_number(1)))`)
	mustContain(t, text, "sl_encode_object(sl_object_new())")
	mustContain(t, text, "sl_encode_array(sl_array_of(1, sl_encode_number(1)))")
	mustContain(t, text, "sl_encode_array(sl_array_of(0))")
}

func TestLiteralOperandsEvaluateLeftToRight(t *testing.T) {
	text := mustLower(t, `
var o = { a: f(), b: g() };
var xs = [f(), g()];
`)
	// вызовы попадают во временные в порядке исходника: f раньше g
	mustContain(t, text, `SlValue sl_t0 = sl_call0((*sl_global_slot("f"))); SlValue sl_t1 = sl_call0((*sl_global_slot("g")));`)
	objAt := strings.Index(text, `sl_object_put(sl_object_put(sl_object_new(), "a", sl_t0), "b", sl_t1)`)
	if objAt < 0 {
		t.Error("цепочка put должна ссылаться на временные, а не на сами вызовы")
	}
	mustContain(t, text, "return sl_array_of(2, sl_t0, sl_t1); }())")
}

func TestAssignmentForms(t *testing.T) {
	text := mustLower(t, `
var x = 1;
x = 2;
x += 3;
x++;
--x;
`)
	mustContain(t, text, `((*sl_global_slot("x")) = sl_encode_number(2));`)
	mustContain(t, text, `sl_encode_number(*sl_number_ref(&((*sl_global_slot("x")))) += sl_get_number(sl_encode_number(3)));`)
	mustContain(t, text, `sl_encode_number((*sl_number_ref(&((*sl_global_slot("x")))))++);`)
	mustContain(t, text, `sl_encode_number(--(*sl_number_ref(&((*sl_global_slot("x"))))));`)
}

func TestBinaryOperators(t *testing.T) {
	text := mustLower(t, `
var a = 1 + 2;
var b = 1 < 2;
var c = 1 === 2;
var d = 5 % 2;
`)
	mustContain(t, text, "sl_encode_number(sl_get_number(sl_encode_number(1)) + sl_get_number(sl_encode_number(2)))")
	mustContain(t, text, "sl_encode_boolean(sl_get_number(sl_encode_number(1)) < sl_get_number(sl_encode_number(2)))")
	// строгое равенство отображается в нативное ==
	mustContain(t, text, "sl_encode_boolean(sl_get_number(sl_encode_number(1)) == sl_get_number(sl_encode_number(2)))")
	// целочисленные операторы идут через каст
	mustContain(t, text, "(long long)sl_get_number(sl_encode_number(5)) % (long long)sl_get_number(sl_encode_number(2))")
}

func TestLogicalOperatorsUnsupported(t *testing.T) {
	_, err := lowerSource(t, "var a = true && false;", true)
	var le *LowerError
	if !errors.As(err, &le) || le.Code != diag.GenUnsupportedConstruct {
		t.Fatalf("&& должен падать как unsupported, получили %v", err)
	}
}

func TestIfEmitsEmptyElse(t *testing.T) {
	text := mustLower(t, "if (true) { print(1); }")
	mustContain(t, text, "if (sl_get_boolean(sl_encode_boolean(true))) {")
	mustContain(t, text, "} else {")
}

func TestWhileLowering(t *testing.T) {
	text := mustLower(t, "var i = 0; while (i < 3) { i++; }")
	mustContain(t, text, "while (sl_get_boolean(")
}

func TestForHeaderScopeEnteredOnce(t *testing.T) {
	text := mustLower(t, "for (var i = 0; i < 3; i++) { print(i); }")

	// аллокация скоупа заголовка стоит до for, не внутри тела
	alloc := strings.Index(text, "SlScope2 *sc2 = (SlScope2 *)sl_alloc(sizeof(SlScope2));")
	loop := strings.Index(text, "for (sc2->v_i = sl_encode_number(0); ")
	if alloc < 0 || loop < 0 {
		t.Fatalf("нет аллокации скоупа заголовка или заголовка for:\n%s", text)
	}
	if alloc > loop {
		t.Error("скоуп заголовка должен входиться один раз, до цикла")
	}
	mustContain(t, text, "sl_encode_number((*sl_number_ref(&(sc2->v_i)))++)")
}

func TestEmptyForHeader(t *testing.T) {
	text := mustLower(t, "for (;;) { break_me = 1; }")
	mustContain(t, text, "for (; ; ) {")
}

func TestTryCatchScenario(t *testing.T) {
	text := mustLower(t, "try { throw 1; } catch (e) { var y = e; }")

	mustContain(t, text, "try {")
	mustContain(t, text, "throw sl_encode_number(1);")
	// теговое значение ловится по значению
	mustContain(t, text, "} catch (SlValue sl_exc2) {")
	// параметр catch связывается с пойманным значением
	mustContain(t, text, "sc2->v_e = sl_exc2;")
	// скоуп catch — дитя скоупа, объемлющего try, не тела try
	mustContain(t, text, "sc2->parent = sc1;")
	// y объявлен внутри catch — слот catch-скоупа, читающий слот параметра
	mustContain(t, text, "sc2->v_y = sc2->v_e;")
}

func TestScenarioVarIncrement(t *testing.T) {
	text := mustLower(t, "var x = 1; x = x + 1;")
	mustContain(t, text, `(*sl_global_slot("x")) = sl_encode_number(1);`)
	mustContain(t, text, `((*sl_global_slot("x")) = sl_encode_number(sl_get_number((*sl_global_slot("x"))) + sl_get_number(sl_encode_number(1))));`)
}

func TestUnresolvedAbortsWithoutOutput(t *testing.T) {
	text, err := lowerSource(t, "missing = 1;", false)
	if err == nil {
		t.Fatal("нерезолвленный идентификатор обязан обрывать проход")
	}
	if text != "" {
		t.Error("частичного вывода быть не должно")
	}
	var le *LowerError
	if !errors.As(err, &le) || le.Code != diag.GenUnresolvedRef {
		t.Errorf("ожидали GenUnresolvedRef, получили %v", err)
	}
}

func TestReturnOutsideFunctionUnsupported(t *testing.T) {
	_, err := lowerSource(t, "return 1;", true)
	var le *LowerError
	if !errors.As(err, &le) || le.Code != diag.GenUnsupportedConstruct {
		t.Fatalf("return на верхнем уровне должен падать как unsupported, получили %v", err)
	}
}

func TestNamedFunctionExpressionSelfBinding(t *testing.T) {
	text := mustLower(t, `
var f = function fact(n) {
	if (n < 2) { return 1; }
	return n * fact(n - 1);
};
`)
	// имя связывается в собственном скоупе с окружением создателя
	mustContain(t, text, "sc2->v_fact = sl_encode_closure(sl_closure_new((void *)sl_fn_0, (void *)sc2->parent));")
}

func TestFunctionDeclarationBindsSlot(t *testing.T) {
	text := mustLower(t, `
function top() { return 0; }
function outer() {
	function local() { return 1; }
	return local();
}
`)
	// верхнеуровневая декларация — глобальное свойство
	mustContain(t, text, `(*sl_global_slot("top")) = sl_encode_closure(`)
	// вложенная — слот скоупа функции
	mustContain(t, text, "->v_local = sl_encode_closure(")
}

func TestBlockScopeAllocatedOnEntry(t *testing.T) {
	text := mustLower(t, `
function f() {
	{ var inner = 1; print(inner); }
}
`)
	// блок с декларацией аллоцирует запись и подвешивает её к скоупу функции
	mustContain(t, text, "sc3->parent = sc2;")
	mustContain(t, text, "sc3->v_inner = sl_undefined();")
	mustContain(t, text, "sc3->v_inner = sl_encode_number(1);")
}

func TestVarWithoutInitEmitsNothing(t *testing.T) {
	text := mustLower(t, `
function f() {
	var a;
	return a;
}
`)
	// один store Undefined при аллокации записи — и никакого второго
	if n := strings.Count(text, "sc2->v_a = "); n != 1 {
		t.Errorf("слот без инициализатора должен писаться ровно один раз (аллокация), а пишется %d", n)
	}
}
