package parser

import (
	"strconv"

	"shaderx/internal/ast"
	"shaderx/internal/diag"
	"shaderx/internal/symbols"
	"shaderx/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() ast.ExprID {
	return p.parseAssignment()
}

// parseAssignment: присваивание правоассоциативно, LHS должен быть изменяемым.
func (p *Parser) parseAssignment() ast.ExprID {
	left := p.parseTernary()
	op, ok := assignOps[p.tok().Kind]
	if !ok {
		return left
	}
	leftSpan := p.b.Exprs.Get(left).Span
	if p.b.IsConstExpr(p.syms, left) {
		p.fail(diag.SemaNotAssignable, leftSpan, "LHS must be a modifiable expression")
	}
	p.next()
	right := p.parseAssignment()
	return p.b.Exprs.NewBinary(leftSpan.Cover(p.lastSpan), op, left, right)
}

func (p *Parser) parseTernary() ast.ExprID {
	cond := p.parseBinary(precLogicalOr)
	if !p.at(token.Question) {
		return cond
	}
	p.next()
	then := p.parseAssignment()
	p.expect(token.Colon, diag.SynExpectColon, "Expected ':' in ternary statement")
	els := p.parseTernary()
	return p.b.Exprs.NewTernary(p.b.Exprs.Get(cond).Span.Cover(p.lastSpan), cond, then, els)
}

// parseBinary реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinary(minPrec int) ast.ExprID {
	left := p.parseUnary()
	for {
		kind := p.tok().Kind
		prec := binaryPrec(kind)
		if prec < minPrec {
			return left
		}
		p.next()
		// левоассоциативно: справа только более сильные операторы
		right := p.parseBinary(prec + 1)
		span := p.b.Exprs.Get(left).Span.Cover(p.b.Exprs.Get(right).Span)
		left = p.b.Exprs.NewBinary(span, binaryOps[kind], left, right)
	}
}

// parseUnary обрабатывает префиксные операторы
func (p *Parser) parseUnary() ast.ExprID {
	opTok := p.tok()
	op, ok := prefixOps[opTok.Kind]
	if !ok {
		return p.parsePostfix()
	}
	p.next()
	operand := p.parseUnary()
	if op.Mutates() {
		p.checkModifiable(operand)
	}
	return p.b.Exprs.NewUnary(opTok.Span.Cover(p.lastSpan), op, operand)
}

func (p *Parser) parsePostfix() ast.ExprID {
	expr := p.parseAccess(p.parsePrimary())
	for {
		var op ast.ExprUnaryOp
		switch p.tok().Kind {
		case token.PlusPlus:
			op = ast.ExprUnaryPostInc
		case token.MinusMinus:
			op = ast.ExprUnaryPostDec
		default:
			return expr
		}
		p.checkModifiable(expr)
		p.next()
		expr = p.b.Exprs.NewUnary(p.b.Exprs.Get(expr).Span.Cover(p.lastSpan), op, expr)
	}
}

func (p *Parser) checkModifiable(id ast.ExprID) {
	if p.b.IsConstExpr(p.syms, id) {
		p.fail(diag.SemaNotAssignable, p.b.Exprs.Get(id).Span, "LHS must be a modifiable expression")
	}
}

// parseAccess обрабатывает цепочки '.' и '[' ... ']' в любом порядке.
func (p *Parser) parseAccess(expr ast.ExprID) ast.ExprID {
	for {
		switch p.tok().Kind {
		case token.Dot:
			expr = p.parseMember(expr)
		case token.LBracket:
			p.next()
			index := p.parseExpr()
			p.expect(token.RBracket, diag.SynExpectRBracket, "Expected ']' after array indexing")
			expr = p.b.Exprs.NewIndex(p.b.Exprs.Get(expr).Span.Cover(p.lastSpan), expr, index)
		default:
			return expr
		}
	}
}

// parseMember: поле структуры или swizzle встроенного вектора.
func (p *Parser) parseMember(target ast.ExprID) ast.ExprID {
	p.next()
	nameTok := p.tok()
	if nameTok.Kind != token.Ident {
		p.fail(diag.SynExpectIdentifier, p.errorSpan(), "RHS for '.' operator must be an identifier")
	}
	targetSpan := p.b.Exprs.Get(target).Span
	typ := p.b.TypeOf(p.syms, target)
	if !typ.IsValid() {
		p.fail(diag.SemaInvalidDotLHS, targetSpan, "invalid LHS for '.' operator")
	}

	var field ast.ExprID
	t := p.syms.Type(typ)
	switch {
	case !t.Builtin:
		member, ok := p.findMember(typ, nameTok.Text)
		if !ok {
			p.fail(diag.SemaNotAMember, nameTok.Span, "'%s' is not a member of LHS type '%s'", nameTok.Text, t.Name)
		}
		field = p.b.Exprs.NewVariable(nameTok.Span, member)
	case symbols.IsVector(typ):
		n, ok := p.syms.LookupSwizzle(nameTok.Text)
		if !ok || n > 4 {
			p.fail(diag.SemaInvalidSwizzle, nameTok.Span, "invalid swizzle on built-in type '%s'", t.Name)
		}
		field = p.b.Exprs.NewSwizzle(nameTok.Span, nameTok.Text, symbols.VectorOf(symbols.Scalar(typ), n))
	default:
		p.fail(diag.SemaInvalidDotLHS, targetSpan, "invalid LHS for '.' operator")
	}
	p.next()
	return p.b.Exprs.NewMember(targetSpan.Cover(nameTok.Span), target, field)
}

func (p *Parser) findMember(typ symbols.TypeID, name string) (symbols.VariableID, bool) {
	for _, id := range p.syms.Members(typ) {
		if p.syms.Variable(id).Name == name {
			return id, true
		}
	}
	return symbols.NoVariableID, false
}

// parsePrimary парсит основные (атомарные) выражения.
// Идентификатор ищется по очереди: переменная, функция, тип (приведение).
func (p *Parser) parsePrimary() ast.ExprID {
	tok := p.tok()
	switch tok.Kind {
	case token.IntLit:
		v := p.intValue(tok)
		p.next()
		return p.b.Exprs.NewInt(tok.Span, v)
	case token.FloatLit:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			p.fail(diag.LexBadNumber, tok.Span, "float literal '%s' out of range", tok.Text)
		}
		p.next()
		return p.b.Exprs.NewFloat(tok.Span, v, tok.Text)
	case token.KwTrue, token.KwFalse:
		p.next()
		return p.b.Exprs.NewBool(tok.Span, tok.Kind == token.KwTrue)
	case token.LParen:
		p.next()
		inner := p.parseExpr()
		if !p.at(token.RParen) {
			p.fail(diag.SynExpectRParen, p.errorSpan(), "missing closing ')' on group")
		}
		p.next()
		return p.b.Exprs.NewGroup(tok.Span.Cover(p.lastSpan), inner)
	case token.Ident:
		if v, ok := p.syms.FindVariable(tok.Text); ok {
			p.next()
			return p.b.Exprs.NewVariable(tok.Span, v)
		}
		if fn, ok := p.syms.LookupFunction(tok.Text); ok {
			p.next()
			p.expect(token.LParen, diag.SynExpectLParen, "function call requires '('")
			args := p.parseArgs("function parameters require ',' separation")
			return p.b.Exprs.NewCall(tok.Span.Cover(p.lastSpan), fn, args)
		}
		if typ, ok := p.syms.LookupType(tok.Text); ok {
			p.next()
			p.expect(token.LParen, diag.SynExpectLParen, "type cast requires '('")
			args := p.parseArgs("type cast parameters require ',' separation")
			return p.b.Exprs.NewCast(tok.Span.Cover(p.lastSpan), typ, args)
		}
		p.fail(diag.SemaUndeclaredIdent, tok.Span, "undeclared identifier '%s'", tok.Text)
	case token.EOF:
		p.fail(diag.SynUnexpectedEOF, p.errorSpan(), "unexpected end of file, expected an expression")
	}
	p.fail(diag.SynUnexpectedToken, tok.Span, "unexpected symbol")
	return ast.NoExprID
}

// parseArgs читает аргументы до ')' включительно; '(' уже съеден.
func (p *Parser) parseArgs(sepMsg string) []ast.ExprID {
	var args []ast.ExprID
	for !p.at(token.RParen) {
		args = append(args, p.parseExpr())
		if p.at(token.RParen) {
			break
		}
		p.expect(token.Comma, diag.SynExpectComma, "%s", sepMsg)
	}
	p.next()
	return args
}
