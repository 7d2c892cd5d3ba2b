package lexer

import (
	"testing"

	"sling/internal/diag"
	"sling/internal/source"
	"sling/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sl", []byte(src))
	bag := diag.NewBag(50)
	lx := New(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})

	var out []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		out = append(out, tok)
		if len(out) > 1000 {
			t.Fatal("лексер не продвигается")
		}
	}
	return out, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexSimpleStatement(t *testing.T) {
	toks, bag := lexAll(t, "var x = 1;")
	if bag.HasErrors() {
		t.Fatalf("неожиданные ошибки: %v", bag.Items())
	}
	want := []token.Kind{token.KwVar, token.Ident, token.Assign, token.NumberLit, token.Semicolon}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("токены: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("токен %d: %v, ожидали %v", i, got[i], want[i])
		}
	}
}

func TestLexOperators(t *testing.T) {
	toks, bag := lexAll(t, "a === b !== c <= >> ++ -- += && ||")
	if bag.HasErrors() {
		t.Fatalf("неожиданные ошибки: %v", bag.Items())
	}
	want := []token.Kind{
		token.Ident, token.EqEqEq, token.Ident, token.BangEqEq, token.Ident,
		token.LtEq, token.Shr, token.PlusPlus, token.MinusMinus,
		token.PlusAssign, token.AndAnd, token.OrOr,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("токены: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("токен %d: %v, ожидали %v", i, got[i], want[i])
		}
	}
}

func TestLexNumbers(t *testing.T) {
	toks, bag := lexAll(t, "0 42 3.14 1e9 2.5E-3")
	if bag.HasErrors() {
		t.Fatalf("неожиданные ошибки: %v", bag.Items())
	}
	if len(toks) != 5 {
		t.Fatalf("ожидали 5 чисел, получили %v", kinds(toks))
	}
	for _, tok := range toks {
		if tok.Kind != token.NumberLit {
			t.Errorf("не число: %v %q", tok.Kind, tok.Text)
		}
	}
	if toks[4].Text != "2.5E-3" {
		t.Errorf("текст экспоненты: %q", toks[4].Text)
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks, bag := lexAll(t, `"a\nb" "\x41" "é" 'q'`)
	if bag.HasErrors() {
		t.Fatalf("неожиданные ошибки: %v", bag.Items())
	}
	if len(toks) != 4 {
		t.Fatalf("токены: %v", kinds(toks))
	}
	if toks[0].Text != "a\nb" {
		t.Errorf("\\n: %q", toks[0].Text)
	}
	if toks[1].Text != "A" {
		t.Errorf("\\x41: %q", toks[1].Text)
	}
	if toks[2].Text != "é" {
		t.Errorf("\\u00e9: %q", toks[2].Text)
	}
	if toks[3].Text != "q" {
		t.Errorf("одинарные кавычки: %q", toks[3].Text)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, bag := lexAll(t, `"abc`)
	if !bag.HasErrors() {
		t.Fatal("ожидали ошибку незакрытой строки")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Errorf("код = %v", bag.Items()[0].Code)
	}
}

func TestLexComments(t *testing.T) {
	toks, bag := lexAll(t, "var // line comment\n/* block\ncomment */ x;")
	if bag.HasErrors() {
		t.Fatalf("неожиданные ошибки: %v", bag.Items())
	}
	want := []token.Kind{token.KwVar, token.Ident, token.Semicolon}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("токены: %v", got)
	}
}

func TestLexUnknownChar(t *testing.T) {
	_, bag := lexAll(t, "var x = @;")
	if !bag.HasErrors() {
		t.Fatal("ожидали ошибку LexUnknownChar")
	}
	if bag.Items()[0].Code != diag.LexUnknownChar {
		t.Errorf("код = %v", bag.Items()[0].Code)
	}
}

func TestLexPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sl", []byte("if else"))
	lx := New(fs.Get(id), Options{})

	if lx.Peek().Kind != token.KwIf {
		t.Fatal("Peek должен вернуть if")
	}
	if lx.Next().Kind != token.KwIf {
		t.Fatal("Next после Peek должен вернуть тот же токен")
	}
	if lx.Next().Kind != token.KwElse {
		t.Fatal("затем else")
	}
	if lx.Next().Kind != token.EOF {
		t.Fatal("затем EOF")
	}
}

func TestLexSpans(t *testing.T) {
	toks, _ := lexAll(t, "ab cd")
	if toks[0].Span.Start != 0 || toks[0].Span.End != 2 {
		t.Errorf("span ab = %v", toks[0].Span)
	}
	if toks[1].Span.Start != 3 || toks[1].Span.End != 5 {
		t.Errorf("span cd = %v", toks[1].Span)
	}
}
