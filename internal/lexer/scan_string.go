package lexer

import (
	"strings"
	"unicode/utf8"

	"sling/internal/diag"
	"sling/internal/token"
)

// scanString читает строковый литерал в кавычках '"' или '\''.
// Text токена — уже раскодированное значение (без кавычек и escape-ов);
// обратное экранирование в ASCII делает backend при выводе.
func (lx *Lexer) scanString() token.Token {
	mark := lx.cursor.Mark()
	quote := lx.cursor.Bump()

	var sb strings.Builder
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(mark)
			diag.ReportError(lx.opts.Reporter, diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: sb.String()}
		}

		ch := lx.cursor.Bump()
		if ch == quote {
			break
		}
		if ch != '\\' {
			sb.WriteByte(ch)
			continue
		}

		// escape-последовательность
		if lx.cursor.EOF() {
			continue
		}
		esc := lx.cursor.Bump()
		switch esc {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case '\\', '"', '\'':
			sb.WriteByte(esc)
		case 'x':
			if hi, ok1 := lx.hexDigit(); ok1 {
				if lo, ok2 := lx.hexDigit(); ok2 {
					sb.WriteByte(hi<<4 | lo)
					continue
				}
			}
			diag.ReportError(lx.opts.Reporter, diag.LexBadEscape, lx.cursor.SpanFrom(mark), "\\x expects two hex digits")
		case 'u':
			r := rune(0)
			ok := true
			for i := 0; i < 4; i++ {
				d, dok := lx.hexDigit()
				if !dok {
					ok = false
					break
				}
				r = r<<4 | rune(d)
			}
			if ok && utf8.ValidRune(r) {
				sb.WriteRune(r)
			} else {
				diag.ReportError(lx.opts.Reporter, diag.LexBadEscape, lx.cursor.SpanFrom(mark), "\\u expects four hex digits")
			}
		default:
			diag.ReportError(lx.opts.Reporter, diag.LexBadEscape, lx.cursor.SpanFrom(mark), "unknown escape sequence")
			sb.WriteByte(esc)
		}
	}

	return token.Token{
		Kind: token.StringLit,
		Span: lx.cursor.SpanFrom(mark),
		Text: sb.String(),
	}
}

func (lx *Lexer) hexDigit() (byte, bool) {
	if lx.cursor.EOF() {
		return 0, false
	}
	b := lx.cursor.Peek()
	switch {
	case b >= '0' && b <= '9':
		lx.cursor.Bump()
		return b - '0', true
	case b >= 'a' && b <= 'f':
		lx.cursor.Bump()
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		lx.cursor.Bump()
		return b - 'A' + 10, true
	}
	return 0, false
}
