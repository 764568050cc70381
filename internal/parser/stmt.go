package parser

import (
	"shaderx/internal/ast"
	"shaderx/internal/diag"
	"shaderx/internal/symbols"
	"shaderx/internal/token"
)

// parseBlock разбирает { stmt* } и по выходу откатывает область
// видимости к mark. Вызывающий берёт mark до того, как объявит то,
// что должно жить ровно до конца блока (параметры, init цикла for).
func (p *Parser) parseBlock(mark symbols.ScopeMark) ast.StmtID {
	start := p.tok().Span
	if !p.at(token.LBrace) {
		p.fail(diag.SynExpectLBrace, p.errorSpan(), "block must start with '{'")
	}
	p.next()

	var stmts []ast.StmtID
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.fail(diag.SynUnexpectedEOF, p.errorSpan(), "unexpected end of file, expected '}'")
		}
		stmts = append(stmts, p.parseStatement())
	}
	p.next()
	p.syms.ScopeReset(mark)
	return p.b.Stmts.NewBlock(start.Cover(p.lastSpan), stmts)
}

func (p *Parser) parseStatement() ast.StmtID {
	start := p.tok().Span
	switch p.tok().Kind {
	case token.LBrace:
		return p.parseBlock(p.syms.ScopeMark())
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwCase, token.KwDefault:
		p.fail(diag.SynCaseOutsideSwitch, start, "'%s' keyword used outside of switch statement", p.tok().Text)
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak:
		p.next()
		p.expectSemicolon()
		return p.b.Stmts.NewSimple(ast.StmtBreak, start.Cover(p.lastSpan))
	case token.KwDiscard:
		p.next()
		p.expectSemicolon()
		return p.b.Stmts.NewSimple(ast.StmtDiscard, start.Cover(p.lastSpan))
	}

	if p.atDeclStart() {
		id := p.parseLocalDecl()
		p.expectSemicolon()
		p.b.Stmts.Get(id).Span = start.Cover(p.lastSpan)
		return id
	}
	expr := p.parseExpr()
	p.expectSemicolon()
	return p.b.Stmts.NewExpr(start.Cover(p.lastSpan), expr)
}

func (p *Parser) expectSemicolon() {
	if !p.at(token.Semicolon) {
		p.fail(diag.SynExpectSemicolon, p.lastSpan, "missing semicolon")
	}
	p.next()
}

// atDeclStart: квалификатор или имя типа, за которым не идёт '('
// (иначе это приведение типа float4( ... )).
func (p *Parser) atDeclStart() bool {
	tok := p.tok()
	switch tok.Kind {
	case token.KwConst, token.KwIn, token.KwOut, token.KwInout:
		return true
	case token.Ident:
		if _, ok := p.syms.LookupType(tok.Text); !ok {
			return false
		}
		return p.lx.Peek().Kind != token.LParen
	}
	return false
}

func (p *Parser) parseLocalDecl() ast.StmtID {
	start := p.tok().Span
	switch p.tok().Kind {
	case token.KwIn, token.KwOut, token.KwInout:
		p.fail(diag.SemaLocalQualifier, start, "cannot declare a variable with 'in' or 'out' in a function body")
	}
	id, init := p.parseVarDecl()
	v := p.syms.Variable(id)
	if p.syms.Type(v.Type).Global {
		p.fail(diag.SemaLocalQualifier, start.Cover(v.Span),
			"cannot declare a variable of constant structure type in a function body")
	}
	return p.b.Stmts.NewVarDecl(start.Cover(p.lastSpan), id, init)
}

// parseCondition разбирает ( expr ) после if/while/switch.
func (p *Parser) parseCondition(what string) ast.ExprID {
	p.expect(token.LParen, diag.SynExpectLParen, "'%s' condition requires '('", what)
	cond := p.parseExpr()
	p.expect(token.RParen, diag.SynExpectRParen, "'%s' condition missing ')'", what)
	return cond
}

func (p *Parser) parseBody(what string) ast.StmtID {
	if !p.at(token.LBrace) {
		p.fail(diag.SynExpectLBrace, p.errorSpan(), "'%s' condition body requires '{'", what)
	}
	return p.parseBlock(p.syms.ScopeMark())
}

func (p *Parser) parseIf() ast.StmtID {
	start := p.tok().Span
	p.next()
	cond := p.parseCondition("if")
	then := p.parseBody("if")

	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.next()
		switch p.tok().Kind {
		case token.KwIf:
			els = p.parseIf()
		case token.LBrace:
			els = p.parseBlock(p.syms.ScopeMark())
		default:
			p.fail(diag.SynElseWithoutBody, p.errorSpan(), "else must be followed by '{ ... }' or 'if'")
		}
	}
	return p.b.Stmts.NewIf(start.Cover(p.lastSpan), cond, then, els)
}

func (p *Parser) parseWhile() ast.StmtID {
	start := p.tok().Span
	p.next()
	cond := p.parseCondition("while")
	body := p.parseBody("while")
	return p.b.Stmts.NewLoop(start.Cover(p.lastSpan), false, cond, body)
}

// do { ... } while ( cond );
func (p *Parser) parseDoWhile() ast.StmtID {
	start := p.tok().Span
	p.next()
	if !p.at(token.LBrace) {
		p.fail(diag.SynExpectLBrace, p.errorSpan(), "'do' body requires '{'")
	}
	body := p.parseBlock(p.syms.ScopeMark())
	p.expect(token.KwWhile, diag.SynUnexpectedToken, "'do' body must be followed by 'while'")
	cond := p.parseCondition("while")
	p.expectSemicolon()
	return p.b.Stmts.NewLoop(start.Cover(p.lastSpan), true, cond, body)
}

// for ( init; cond; post ) { ... }: init живёт до конца тела.
func (p *Parser) parseFor() ast.StmtID {
	start := p.tok().Span
	p.next()
	mark := p.syms.ScopeMark()
	p.expect(token.LParen, diag.SynExpectLParen, "'for' loop requires '('")

	init := ast.NoStmtID
	if !p.at(token.Semicolon) {
		initStart := p.tok().Span
		if p.atDeclStart() {
			init = p.parseLocalDecl()
		} else {
			init = p.b.Stmts.NewExpr(initStart, p.parseExpr())
		}
		p.b.Stmts.Get(init).Span = initStart.Cover(p.lastSpan)
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "missing ';' after initialization expression")

	cond := ast.NoExprID
	if !p.at(token.Semicolon) {
		cond = p.parseExpr()
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "missing ';' after condition expression")

	post := ast.NoExprID
	if !p.at(token.RParen) {
		post = p.parseExpr()
	}
	p.expect(token.RParen, diag.SynExpectRParen, "missing ')' after increment expression")

	if !p.at(token.LBrace) {
		p.fail(diag.SynExpectLBrace, p.errorSpan(), "'for' loop body requires '{'")
	}
	body := p.parseBlock(mark)
	return p.b.Stmts.NewFor(start.Cover(p.lastSpan), init, cond, post, body)
}

// switch ( expr ) { case ...: ... default: ... }
// Внутри тела разрешены только case, default, return и break.
func (p *Parser) parseSwitch() ast.StmtID {
	start := p.tok().Span
	p.next()
	p.expect(token.LParen, diag.SynExpectLParen, "'switch' statement requires '('")
	tag := p.parseExpr()
	p.expect(token.RParen, diag.SynExpectRParen, "'switch' statement requires ')'")

	bodyStart := p.tok().Span
	mark := p.syms.ScopeMark()
	p.expect(token.LBrace, diag.SynExpectLBrace, "'switch' statement requires '{'")
	var labels []ast.StmtID
	for !p.at(token.RBrace) {
		switch p.tok().Kind {
		case token.KwCase, token.KwDefault:
			labels = append(labels, p.parseCase())
		case token.KwReturn:
			labels = append(labels, p.parseReturn())
		case token.KwBreak:
			s := p.tok().Span
			p.next()
			p.expectSemicolon()
			labels = append(labels, p.b.Stmts.NewSimple(ast.StmtBreak, s.Cover(p.lastSpan)))
		case token.EOF:
			p.fail(diag.SynUnexpectedEOF, p.errorSpan(), "unexpected end of file, expected '}'")
		default:
			p.fail(diag.SynUnexpectedInSwitch, p.tok().Span, "unexpected statement/expression in switch statement")
		}
	}
	p.next()
	p.syms.ScopeReset(mark)
	body := p.b.Stmts.NewBlock(bodyStart.Cover(p.lastSpan), labels)
	return p.b.Stmts.NewSwitch(start.Cover(p.lastSpan), tag, body)
}

// parseCase: тело — блок, один оператор или ничего (проваливание
// к следующей метке).
func (p *Parser) parseCase() ast.StmtID {
	start := p.tok().Span
	isDefault := p.at(token.KwDefault)
	p.next()

	value := ast.NoExprID
	what := "default"
	if !isDefault {
		what = "case"
		value = p.parseExpr()
	}
	p.expect(token.Colon, diag.SynExpectColon, "'%s' requires ':' after expression", what)

	body := ast.NoStmtID
	switch p.tok().Kind {
	case token.KwCase, token.KwDefault, token.KwBreak, token.KwReturn, token.RBrace:
	case token.LBrace:
		body = p.parseBlock(p.syms.ScopeMark())
	default:
		body = p.parseStatement()
	}
	return p.b.Stmts.NewCase(start.Cover(p.lastSpan), value, body)
}

func (p *Parser) parseReturn() ast.StmtID {
	start := p.tok().Span
	p.next()
	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		value = p.parseExpr()
	}
	p.expectSemicolon()
	return p.b.Stmts.NewReturn(start.Cover(p.lastSpan), value)
}
