package lexer

import (
	"fmt"

	"sling/internal/diag"
	"sling/internal/token"
)

// scanOperatorOrPunct читает оператор или знак пунктуации (максимальный жор).
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	mark := lx.cursor.Mark()
	ch := lx.cursor.Bump()

	kind := token.Invalid
	switch ch {
	case '+':
		switch {
		case lx.cursor.Eat('+'):
			kind = token.PlusPlus
		case lx.cursor.Eat('='):
			kind = token.PlusAssign
		default:
			kind = token.Plus
		}
	case '-':
		switch {
		case lx.cursor.Eat('-'):
			kind = token.MinusMinus
		case lx.cursor.Eat('='):
			kind = token.MinusAssign
		default:
			kind = token.Minus
		}
	case '*':
		if lx.cursor.Eat('=') {
			kind = token.StarAssign
		} else {
			kind = token.Star
		}
	case '/':
		if lx.cursor.Eat('=') {
			kind = token.SlashAssign
		} else {
			kind = token.Slash
		}
	case '%':
		if lx.cursor.Eat('=') {
			kind = token.PercentAssign
		} else {
			kind = token.Percent
		}
	case '=':
		if lx.cursor.Eat('=') {
			if lx.cursor.Eat('=') {
				kind = token.EqEqEq
			} else {
				kind = token.EqEq
			}
		} else {
			kind = token.Assign
		}
	case '!':
		if lx.cursor.Eat('=') {
			if lx.cursor.Eat('=') {
				kind = token.BangEqEq
			} else {
				kind = token.BangEq
			}
		} else {
			kind = token.Bang
		}
	case '<':
		switch {
		case lx.cursor.Eat('='):
			kind = token.LtEq
		case lx.cursor.Eat('<'):
			kind = token.Shl
		default:
			kind = token.Lt
		}
	case '>':
		switch {
		case lx.cursor.Eat('='):
			kind = token.GtEq
		case lx.cursor.Eat('>'):
			kind = token.Shr
		default:
			kind = token.Gt
		}
	case '&':
		if lx.cursor.Eat('&') {
			kind = token.AndAnd
		} else {
			kind = token.Amp
		}
	case '|':
		if lx.cursor.Eat('|') {
			kind = token.OrOr
		} else {
			kind = token.Pipe
		}
	case '^':
		kind = token.Caret
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case ':':
		kind = token.Colon
	case '.':
		kind = token.Dot
	}

	sp := lx.cursor.SpanFrom(mark)
	text := lx.cursor.TextFrom(mark)
	if kind == token.Invalid {
		diag.ReportError(lx.opts.Reporter, diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", ch))
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
