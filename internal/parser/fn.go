package parser

import (
	"shaderx/internal/ast"
	"shaderx/internal/diag"
	"shaderx/internal/source"
	"shaderx/internal/symbols"
	"shaderx/internal/token"
)

// parseFunction разбирает объявление функции. Имена vertex_main,
// fragment_main и compute_main объявляют точки входа стадий и
// подчиняются контракту параметров (in, out, cbuffer...).
func (p *Parser) parseFunction() ast.ItemID {
	retTok := p.tok()
	ret, ok := p.syms.LookupType(retTok.Text)
	if !ok {
		p.fail(diag.SemaUnknownType, retTok.Span, "function declaration: unknown type '%s'", retTok.Text)
	}
	p.next()

	nameTok := p.tok()
	if nameTok.Kind != token.Ident {
		p.fail(diag.SynExpectIdentifier, p.errorSpan(), "function declaration: expected a name")
	}
	p.checkNamespace(nameTok)
	name := nameTok.Text
	stage, isEntry := symbols.StageForEntry(name)
	if isEntry && ret != symbols.TypeVoid {
		p.fail(diag.SemaEntryReturnType, retTok.Span, "%s() must have a 'void' return type", name)
	}
	p.next()

	// Параметры: живут в области видимости до конца тела
	mark := p.syms.ScopeMark()
	p.expect(token.LParen, diag.SynExpectLParen, "function declaration: '(' before parameter list")
	paramFirst := symbols.VariableID(len(p.syms.Variables)) // #nosec G115
	count := 0
	for !p.at(token.RParen) {
		declSpan := p.tok().Span
		id, init := p.parseVarDecl()
		if init.IsValid() {
			p.fail(diag.SemaParamAssignment, p.b.Exprs.Get(init).Span, "function parameters cannot have assignment")
		}
		declSpan = declSpan.Cover(p.syms.Variable(id).Span)
		if isEntry {
			p.checkEntryParam(stage, name, count, id, declSpan)
		} else {
			p.checkParam(id, declSpan)
		}
		count++

		if p.at(token.RParen) {
			break
		}
		p.expect(token.Comma, diag.SynExpectComma, "function declaration: expected ',' between parameters")
	}
	closeSpan := p.tok().Span
	p.next()

	if isEntry && count < 1 {
		p.fail(diag.SemaEntryParams, closeSpan, "%s() requires a first parameter of type '%s'", name, stage.Input())
	}
	if isEntry && count < 2 {
		p.fail(diag.SemaEntryParams, closeSpan, "%s() requires a second parameter of type '%s'", name, stage.Output())
	}

	body := p.parseBlock(mark)

	fnID := p.syms.RegisterFunction(symbols.Function{
		Name:       name,
		Return:     ret,
		ParamFirst: paramFirst,
		ParamCount: uint32(count), // #nosec G115 -- count ограничен числом переменных
		Span:       nameTok.Span,
	})
	item := p.b.Items.NewFunc(retTok.Span.Cover(p.lastSpan), fnID, body)
	if isEntry {
		p.entries[stage] = fnID
		p.entryItems[stage] = item
	}
	return item
}

func (p *Parser) checkParam(id symbols.VariableID, span source.Span) {
	typ := p.syms.Type(p.syms.Variable(id).Type)
	if typ.Builtin || typ.Kind == symbols.StructPlain || typ.Kind == symbols.StructCBuffer {
		return
	}
	p.fail(diag.SemaTypeNotAllowed, span, "function parameter types can only be primitives, 'struct', or 'cbuffer'")
}

func (p *Parser) checkEntryParam(stage symbols.Stage, name string, index int, id symbols.VariableID, span source.Span) {
	v := p.syms.Variable(id)
	typ := p.syms.Type(v.Type)
	switch index {
	case 0:
		if typ.Builtin || typ.Kind != stage.Input() {
			p.fail(diag.SemaEntryParams, span, "%s() first parameter must be type '%s'", name, stage.Input())
		}
		// вход стадии только читается
		v.Const = true
	case 1:
		if typ.Builtin || typ.Kind != stage.Output() {
			p.fail(diag.SemaEntryParams, span, "%s() second parameter must be type '%s'", name, stage.Output())
		}
	default:
		if typ.Builtin || typ.Kind != symbols.StructCBuffer {
			p.fail(diag.SemaEntryParams, span, "%s() can only take additional parameters of type 'cbuffer'", name)
		}
	}
}

// parseVarDecl разбирает [in|out|inout] [const] type name[X][Y] [= expr].
// Переменная регистрируется после инициализатора: `float x = x;` — ошибка.
func (p *Parser) parseVarDecl() (symbols.VariableID, ast.ExprID) {
	v := symbols.Variable{
		Slot:     symbols.NoSlot,
		Semantic: symbols.SemanticTexcoord,
		Texture:  symbols.NoTextureID,
	}

	switch p.tok().Kind {
	case token.KwIn:
		v.In = true
		p.next()
	case token.KwOut:
		v.Out = true
		p.next()
	case token.KwInout:
		v.In, v.Out = true, true
		p.next()
	}
	if p.at(token.KwConst) {
		if v.Out {
			p.fail(diag.SemaConstQualifier, p.tok().Span, "const variable cannot be tagged 'out' or 'inout'")
		}
		v.Const = true
		p.next()
	}

	typeTok := p.tok()
	if typeTok.Kind != token.Ident {
		p.fail(diag.SynExpectType, p.errorSpan(), "variable declaration: expected a type")
	}
	typ, ok := p.syms.LookupType(typeTok.Text)
	if !ok {
		p.fail(diag.SemaUnknownType, typeTok.Span, "variable declaration: unknown type '%s'", typeTok.Text)
	}
	v.Type = typ
	p.next()

	nameTok := p.tok()
	if nameTok.Kind != token.Ident {
		p.fail(diag.SynExpectIdentifier, p.errorSpan(), "variable declaration: expected identifier after type")
	}
	p.checkNamespace(nameTok)
	v.Name = nameTok.Text
	v.Span = nameTok.Span
	p.next()

	// Массивы: до двух измерений
	for dim := 0; dim < 2 && p.at(token.LBracket); dim++ {
		p.next()
		lenTok := p.tok()
		if lenTok.Kind != token.IntLit {
			p.fail(diag.SemaArrayLength, p.errorSpan(), "variable declaration: array length must be a constant integer")
		}
		n := p.intValue(lenTok)
		if n == 0 {
			p.fail(diag.SemaArrayLength, lenTok.Span, "variable declaration: array length cannot be zero")
		}
		if n > uint64(^uint32(0)) {
			p.fail(diag.SemaArrayLength, lenTok.Span, "variable declaration: array length %d is too large", n)
		}
		if dim == 0 {
			v.ArrayX = uint32(n)
		} else {
			v.ArrayY = uint32(n)
		}
		p.next()
		p.expect(token.RBracket, diag.SynExpectRBracket, "variable declaration: expected ']' after array length")
	}

	init := ast.NoExprID
	if p.at(token.Assign) {
		if v.IsArray() {
			p.fail(diag.SemaArrayInit, p.tok().Span, "arrays do not support initialization assignment")
		}
		p.next()
		init = p.parseExpr()
	}
	return p.syms.RegisterVariable(v), init
}
