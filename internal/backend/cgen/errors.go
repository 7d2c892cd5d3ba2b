package cgen

import (
	"fmt"

	"sling/internal/diag"
	"sling/internal/source"
)

// sourceSpanNone — пустой span для ошибок без привязки к исходнику.
var sourceSpanNone = source.Span{}

// LowerError — первая же ошибка обрывает весь проход; частичного
// вывода не бывает.
type LowerError struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *LowerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

func unresolvedErr(span source.Span, name string) error {
	return &LowerError{
		Code: diag.GenUnresolvedRef,
		Span: span,
		Msg:  fmt.Sprintf("identifier '%s' has no resolution", name),
	}
}

func unsupportedErr(span source.Span, what string) error {
	return &LowerError{
		Code: diag.GenUnsupportedConstruct,
		Span: span,
		Msg:  fmt.Sprintf("unsupported construct: %s", what),
	}
}

func malformedErr(span source.Span, what string) error {
	return &LowerError{
		Code: diag.GenMalformedTree,
		Span: span,
		Msg:  fmt.Sprintf("malformed tree: %s", what),
	}
}

func nonASCIIErr(what string) error {
	return &LowerError{
		Code: diag.GenNonASCIIOutput,
		Msg:  fmt.Sprintf("non-ASCII byte leaked into output: %s", what),
	}
}
