package token

// keywords отображает написание ключевого слова в его Kind.
var keywords = map[string]Kind{
	"var":      KwVar,
	"function": KwFunction,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"try":      KwTry,
	"catch":    KwCatch,
	"finally":  KwFinally,
	"return":   KwReturn,
	"throw":    KwThrow,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword returns the keyword kind for the spelling, or Ident.
func LookupKeyword(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Ident
}
