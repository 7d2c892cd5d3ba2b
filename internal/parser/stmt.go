package parser

import (
	"sling/internal/ast"
	"sling/internal/diag"
	"sling/internal/source"
	"sling/internal/token"
)

// parseStmt выбирает по первому токену нужный распознаватель стейтмента.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwVar:
		return p.parseVarStmt()
	case token.KwFunction:
		return p.parseFnDeclStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwTry:
		return p.parseTryStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwThrow:
		return p.parseThrowStmt()
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		tok := p.advance()
		return p.arenas.Stmts.NewEmpty(tok.Span), true
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseBlock() (ast.StmtID, bool) {
	openTok, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return ast.NoStmtID, false
	}

	var stmtIDs []ast.StmtID
	for !p.at(token.EOF) && !p.at(token.RBrace) {
		stmtID, ok := p.parseStmt()
		if ok {
			stmtIDs = append(stmtIDs, stmtID)
			continue
		}

		// ошибка при парсинге statement — восстанавливаемся до следующего statement
		p.resyncStatement()
		if p.at(token.RBrace) || p.at(token.EOF) {
			break
		}
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block")
	if !ok {
		return ast.NoStmtID, false
	}

	blockSpan := openTok.Span.Cover(closeTok.Span)
	return p.arenas.Stmts.NewBlock(blockSpan, stmtIDs), true
}

// parseVarStmt: var a = 1, b, c = f();
func (p *Parser) parseVarStmt() (ast.StmtID, bool) {
	varTok := p.advance()

	var decls []ast.VarDeclarator
	for {
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier after 'var'")
		if !ok {
			return ast.NoStmtID, false
		}
		decl := ast.VarDeclarator{
			Name: p.arenas.StringsInterner.Intern(nameTok.Text),
			Span: nameTok.Span,
			Init: ast.NoExprID,
		}
		if p.at(token.Assign) {
			p.advance()
			init, ok := p.parseAssignExpr()
			if !ok {
				return ast.NoStmtID, false
			}
			decl.Init = init
		}
		decls = append(decls, decl)

		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}

	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after variable declaration"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewVar(varTok.Span.Cover(p.lastSpan), decls), true
}

// parseFnDeclStmt: function name(params) { body }
// На уровне стейтмента имя обязательно.
func (p *Parser) parseFnDeclStmt() (ast.StmtID, bool) {
	fnTok := p.advance()

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name")
	if !ok {
		return ast.NoStmtID, false
	}
	nameID := p.arenas.StringsInterner.Intern(nameTok.Text)

	fnID, ok := p.parseFunctionRest(fnTok.Span, nameID)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFnDecl(fnTok.Span.Cover(p.lastSpan), fnID), true
}

// parseFunctionRest разбирает "(params) { body }" после имени (или его отсутствия).
func (p *Parser) parseFunctionRest(startSpan source.Span, name source.StringID) (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after function name"); !ok {
		return ast.NoExprID, false
	}

	var params []ast.FnParam
	for !p.at(token.RParen) && !p.at(token.EOF) {
		paramTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
		if !ok {
			return ast.NoExprID, false
		}
		params = append(params, ast.FnParam{
			Name: p.arenas.StringsInterner.Intern(paramTok.Text),
			Span: paramTok.Span,
		})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters"); !ok {
		return ast.NoExprID, false
	}

	body, ok := p.parseBlock()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewFunction(startSpan.Cover(p.lastSpan), name, params, body), true
}

func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	ifTok := p.advance()

	cond, ok := p.parseParenExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	then, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}

	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		els, ok = p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(ifTok.Span.Cover(p.lastSpan), cond, then, els), true
}

func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	whileTok := p.advance()

	cond, ok := p.parseParenExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(whileTok.Span.Cover(p.lastSpan), cond, body), true
}

// parseForStmt: for (init; cond; post) body — любая секция может быть пустой.
// for-in/for-of не поддерживаются.
func (p *Parser) parseForStmt() (ast.StmtID, bool) {
	forTok := p.advance()

	if _, ok := p.expect(token.LParen, diag.SynForBadHeader, "expected '(' after 'for'"); !ok {
		return ast.NoStmtID, false
	}

	// init: var-стейтмент, expression-стейтмент или пусто.
	// Обе непустые формы сами съедают ';'.
	init := ast.NoStmtID
	switch p.lx.Peek().Kind {
	case token.Semicolon:
		p.advance()
	case token.KwVar:
		var ok bool
		init, ok = p.parseVarStmt()
		if !ok {
			return ast.NoStmtID, false
		}
	default:
		expr, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		init = p.arenas.Stmts.NewExpr(p.arenas.Exprs.Get(expr).Span, expr)
		if _, ok := p.expect(token.Semicolon, diag.SynForBadHeader, "expected ';' after for initializer"); !ok {
			return ast.NoStmtID, false
		}
	}

	cond := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		cond, ok = p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynForBadHeader, "expected ';' after for condition"); !ok {
		return ast.NoStmtID, false
	}

	post := ast.NoExprID
	if !p.at(token.RParen) {
		var ok bool
		post, ok = p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynForBadHeader, "expected ')' to close for header"); !ok {
		return ast.NoStmtID, false
	}

	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(forTok.Span.Cover(p.lastSpan), init, cond, post, body), true
}

// parseTryStmt: try Block catch (ident)? Block.
// finally распознаётся, но не поддерживается.
func (p *Parser) parseTryStmt() (ast.StmtID, bool) {
	tryTok := p.advance()

	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}

	if !p.at(token.KwCatch) {
		p.err(diag.SynExpectCatch, "expected 'catch' after try block")
		return ast.NoStmtID, false
	}
	p.advance()

	param := source.NoStringID
	var paramSpan source.Span
	if p.at(token.LParen) {
		p.advance()
		paramTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected catch parameter name")
		if !ok {
			return ast.NoStmtID, false
		}
		param = p.arenas.StringsInterner.Intern(paramTok.Text)
		paramSpan = paramTok.Span
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after catch parameter"); !ok {
			return ast.NoStmtID, false
		}
	}

	handler, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}

	if p.at(token.KwFinally) {
		p.err(diag.SynUnexpectedToken, "'finally' clauses are not supported")
		p.advance()
		if p.at(token.LBrace) {
			p.parseBlock() // съедаем блок, чтобы не рассыпать последующие стейтменты
		}
		return ast.NoStmtID, false
	}

	return p.arenas.Stmts.NewTry(tryTok.Span.Cover(p.lastSpan), body, param, paramSpan, handler), true
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	retTok := p.advance()

	expr := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		expr, ok = p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after return"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(retTok.Span.Cover(p.lastSpan), expr), true
}

func (p *Parser) parseThrowStmt() (ast.StmtID, bool) {
	throwTok := p.advance()

	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after throw"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewThrow(throwTok.Span.Cover(p.lastSpan), expr), true
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	exprSpan := p.arenas.Exprs.Get(expr).Span
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(exprSpan.Cover(p.lastSpan), expr), true
}

// parseParenExpr: '(' expr ')'
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '('"); !ok {
		return ast.NoExprID, false
	}
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return ast.NoExprID, false
	}
	return expr, true
}
