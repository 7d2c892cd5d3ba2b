package parser

import (
	"sling/internal/ast"
	"sling/internal/diag"
	"sling/internal/source"
	"sling/internal/token"
)

// parseExpr — входная точка выражений. Оператора запятой нет,
// так что это просто присваивание.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseAssignExpr()
}

// parseAssignExpr: target (= | += | -= | *= | /= | %=) value — правоассоциативно.
func (p *Parser) parseAssignExpr() (ast.ExprID, bool) {
	left, ok := p.parseBinaryExpr(0)
	if !ok {
		return ast.NoExprID, false
	}

	op, isAssign := p.tokenKindToAssignOp(p.lx.Peek().Kind)
	if !isAssign {
		return left, true
	}

	if !p.isAssignTarget(left) {
		p.report(diag.SynBadAssignTarget, diag.SevError, p.arenas.Exprs.Get(left).Span, "invalid assignment target")
		return ast.NoExprID, false
	}
	p.advance()

	value, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}

	span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(value).Span)
	return p.arenas.Exprs.NewAssign(span, op, left, value), true
}

// isAssignTarget: присваивать можно только в идентификатор и member-доступ.
func (p *Parser) isAssignTarget(id ast.ExprID) bool {
	expr := p.arenas.Exprs.Get(id)
	if expr == nil {
		return false
	}
	return expr.Kind == ast.ExprIdent || expr.Kind == ast.ExprMember
}

// parseBinaryExpr — precedence climbing по таблице из op_table.go.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		prec := p.getBinaryOperatorPrec(p.lx.Peek().Kind)
		if prec < 0 || prec < minPrec {
			return left, true
		}
		opTok := p.advance()

		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}

		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, p.tokenKindToBinaryOp(opTok.Kind), left, right)
	}
}

// parseUnaryExpr: префиксные -, !, ++, --.
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	switch p.lx.Peek().Kind {
	case token.Minus, token.Bang:
		opTok := p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		op := ast.UnaryNeg
		if opTok.Kind == token.Bang {
			op = ast.UnaryNot
		}
		span := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
		return p.arenas.Exprs.NewUnary(span, op, operand), true

	case token.PlusPlus, token.MinusMinus:
		opTok := p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if !p.isAssignTarget(operand) {
			p.report(diag.SynBadAssignTarget, diag.SevError, p.arenas.Exprs.Get(operand).Span, "invalid increment target")
			return ast.NoExprID, false
		}
		op := ast.UpdateInc
		if opTok.Kind == token.MinusMinus {
			op = ast.UpdateDec
		}
		span := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
		return p.arenas.Exprs.NewUpdate(span, op, true, operand), true

	default:
		return p.parsePostfixExpr()
	}
}

// parsePostfixExpr: primary, затем цепочка .name / [key] / (args) / ++ / --.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		switch p.lx.Peek().Kind {
		case token.Dot:
			p.advance()
			nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected property name after '.'")
			if !ok {
				return ast.NoExprID, false
			}
			span := p.arenas.Exprs.Get(expr).Span.Cover(nameTok.Span)
			expr = p.arenas.Exprs.NewMember(span, expr, p.arenas.StringsInterner.Intern(nameTok.Text), ast.NoExprID)

		case token.LBracket:
			p.advance()
			key, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			closeTok, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after index expression")
			if !ok {
				return ast.NoExprID, false
			}
			span := p.arenas.Exprs.Get(expr).Span.Cover(closeTok.Span)
			expr = p.arenas.Exprs.NewMember(span, expr, source.NoStringID, key)

		case token.LParen:
			p.advance()
			var args []ast.ExprID
			for !p.at(token.RParen) && !p.at(token.EOF) {
				arg, ok := p.parseAssignExpr()
				if !ok {
					return ast.NoExprID, false
				}
				args = append(args, arg)
				if !p.at(token.Comma) {
					break
				}
				p.advance()
			}
			closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after call arguments")
			if !ok {
				return ast.NoExprID, false
			}
			span := p.arenas.Exprs.Get(expr).Span.Cover(closeTok.Span)
			expr = p.arenas.Exprs.NewCall(span, expr, args)

		case token.PlusPlus, token.MinusMinus:
			if !p.isAssignTarget(expr) {
				p.report(diag.SynBadAssignTarget, diag.SevError, p.arenas.Exprs.Get(expr).Span, "invalid increment target")
				return ast.NoExprID, false
			}
			opTok := p.advance()
			op := ast.UpdateInc
			if opTok.Kind == token.MinusMinus {
				op = ast.UpdateDec
			}
			span := p.arenas.Exprs.Get(expr).Span.Cover(opTok.Span)
			expr = p.arenas.Exprs.NewUpdate(span, op, false, expr)
			return expr, true // постфиксный ++ дальше не цепляется

		default:
			return expr, true
		}
	}
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	switch p.lx.Peek().Kind {
	case token.Ident:
		tok := p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.StringsInterner.Intern(tok.Text)), true

	case token.NumberLit:
		tok := p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitNumber, p.arenas.StringsInterner.Intern(tok.Text), false), true

	case token.StringLit:
		tok := p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitString, p.arenas.StringsInterner.Intern(tok.Text), false), true

	case token.KwTrue:
		tok := p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitBool, source.NoStringID, true), true

	case token.KwFalse:
		tok := p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitBool, source.NoStringID, false), true

	case token.LParen:
		return p.parseParenExpr()

	case token.LBrace:
		return p.parseObjectLiteral()

	case token.LBracket:
		return p.parseArrayLiteral()

	case token.KwFunction:
		fnTok := p.advance()
		name := source.NoStringID
		if p.at(token.Ident) {
			nameTok := p.advance()
			name = p.arenas.StringsInterner.Intern(nameTok.Text)
		}
		return p.parseFunctionRest(fnTok.Span, name)

	default:
		p.err(diag.SynExpectExpression, "expected expression")
		return ast.NoExprID, false
	}
}

// parseObjectLiteral: { key: value, "key": value, [expr]: value }
func (p *Parser) parseObjectLiteral() (ast.ExprID, bool) {
	openTok := p.advance()

	var props []ast.ObjectProp
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		prop := ast.ObjectProp{Key: source.NoStringID, Computed: ast.NoExprID}

		switch p.lx.Peek().Kind {
		case token.Ident, token.StringLit:
			keyTok := p.advance()
			prop.Key = p.arenas.StringsInterner.Intern(keyTok.Text)
		case token.NumberLit:
			// числовой ключ — тот же property-доступ по его тексту
			keyTok := p.advance()
			prop.Key = p.arenas.StringsInterner.Intern(keyTok.Text)
		case token.LBracket:
			p.advance()
			key, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after computed key"); !ok {
				return ast.NoExprID, false
			}
			prop.Computed = key
		default:
			p.err(diag.SynExpectPropertyKey, "expected property key")
			return ast.NoExprID, false
		}

		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after property key"); !ok {
			return ast.NoExprID, false
		}
		value, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoExprID, false
		}
		prop.Value = value
		props = append(props, prop)

		if !p.at(token.Comma) {
			break
		}
		p.advance() // висячая запятая разрешена
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close object literal")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewObject(openTok.Span.Cover(closeTok.Span), props), true
}

// parseArrayLiteral: [a, b, c]
func (p *Parser) parseArrayLiteral() (ast.ExprID, bool) {
	openTok := p.advance()

	var elems []ast.ExprID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elem, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, elem)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}

	closeTok, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array literal")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArray(openTok.Span.Cover(closeTok.Span), elems), true
}
