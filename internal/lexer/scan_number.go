package lexer

import (
	"sling/internal/diag"
	"sling/internal/token"
)

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

// scanNumber читает числовой литерал: целая часть, опциональные дробная
// часть и экспонента. Всегда Number (double в рантайме).
func (lx *Lexer) scanNumber() token.Token {
	mark := lx.cursor.Mark()

	for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	// дробная часть
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump() // '.'
		for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	// экспонента
	if ch := lx.cursor.Peek(); ch == 'e' || ch == 'E' {
		save := lx.cursor.Mark()
		lx.cursor.Bump()
		if ch := lx.cursor.Peek(); ch == '+' || ch == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			// "1e" без цифр — откатываемся, 'e' уйдёт в следующий токен
			lx.cursor.Off = uint32(save)
			diag.ReportError(lx.opts.Reporter, diag.LexBadNumber, lx.cursor.SpanFrom(mark), "exponent has no digits")
		} else {
			for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	// "1abc" — число, слипшееся с идентификатором
	if !lx.cursor.EOF() && isIdentStartByte(lx.cursor.Peek()) {
		for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(mark)
		diag.ReportError(lx.opts.Reporter, diag.LexBadNumber, sp, "identifier starts immediately after number")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(mark)}
	}

	return token.Token{
		Kind: token.NumberLit,
		Span: lx.cursor.SpanFrom(mark),
		Text: lx.cursor.TextFrom(mark),
	}
}
