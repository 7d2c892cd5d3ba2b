package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := map[string]Kind{
		"var":      KwVar,
		"function": KwFunction,
		"catch":    KwCatch,
		"true":     KwTrue,
		"scope":    Ident,
		"Var":      Ident, // ключевые слова чувствительны к регистру
	}
	for text, want := range cases {
		if got := LookupKeyword(text); got != want {
			t.Errorf("LookupKeyword(%q) = %v, ожидали %v", text, got, want)
		}
	}
}

func TestTokenClassification(t *testing.T) {
	if !(Token{Kind: NumberLit}).IsLiteral() {
		t.Error("NumberLit должен быть литералом")
	}
	if !(Token{Kind: KwTrue}).IsLiteral() {
		t.Error("KwTrue должен быть литералом")
	}
	if (Token{Kind: Ident}).IsLiteral() {
		t.Error("Ident не литерал")
	}
	if !(Token{Kind: KwThrow}).IsKeyword() {
		t.Error("KwThrow должен быть ключевым словом")
	}
	if !(Token{Kind: Ident}).IsIdent() {
		t.Error("IsIdent")
	}
}

func TestKindString(t *testing.T) {
	if EqEqEq.String() != "===" {
		t.Errorf("EqEqEq.String() = %q", EqEqEq.String())
	}
	if Kind(255).String() != "unknown" {
		t.Errorf("неизвестный Kind должен печататься как unknown")
	}
}
