package parser

import (
	"shaderx/internal/ast"
	"shaderx/internal/diag"
	"shaderx/internal/symbols"
	"shaderx/internal/token"
)

// parseStructure разбирает struct, cbuffer и все stage-IO блоки:
//
//	cbuffer( 0 ) Name { float4x4 mvp; };
//	vertex_input VSIn { float3 position semantic( POSITION ) format( FLOAT32 ); };
func (p *Parser) parseStructure() ast.ItemID {
	kwTok := p.tok()
	kind := symbols.StructKind(kwTok.Kind.StructIndex()) // #nosec G115 -- IsStruct проверен вызывающим
	what := kind.String()
	p.next()

	// 1) слот: обязателен для cbuffer, необязательная базовая location для stage-IO
	slot := symbols.NoSlot
	switch {
	case kind == symbols.StructCBuffer:
		p.expect(token.LParen, diag.SynExpectLParen, "%s: expected '(' before slot id", what)
		slot = p.parseBufferSlot(what)
	case kind.IsStageIO() && p.at(token.LParen):
		p.next()
		tok := p.tok()
		if tok.Kind != token.IntLit {
			p.fail(diag.ResSlotInvalid, tok.Span, "%s: slot id must be a positive, constant integer", what)
		}
		slot = p.slotValue(tok, p.opts.Limits.BufferSlots, diag.ResSlotExceeded, "%s: slot id exceeded maximum: %d", what)
		p.next()
		p.expect(token.RParen, diag.SynExpectRParen, "%s: expected ')' after slot id", what)
	}

	// 2) имя
	nameTok := p.tok()
	if nameTok.Kind != token.Ident {
		p.fail(diag.SynExpectIdentifier, p.errorSpan(), "%s: expected name after struct keyword", what)
	}
	p.checkNamespace(nameTok)
	p.next()
	p.expect(token.LBrace, diag.SynExpectLBrace, "%s: expected '{' after name", what)

	// 3) члены: регистрируются подряд, диапазон фиксируется на '}'
	mark := p.syms.ScopeMark()
	memberFirst := symbols.VariableID(len(p.syms.Variables)) // #nosec G115
	for !p.at(token.RBrace) {
		p.parseStructMember(kind, what)
	}
	p.next()
	if !p.at(token.Semicolon) {
		p.fail(diag.SynExpectSemicolon, p.lastSpan, "%s: expected semicolon after final closing '}'", what)
	}
	end := p.tok().Span
	p.next()
	p.syms.ScopeReset(mark)

	typeID := p.syms.RegisterType(symbols.Type{
		Name:        nameTok.Text,
		Global:      kind != symbols.StructPlain,
		Kind:        kind,
		Struct:      symbols.NoStructID,
		MemberFirst: memberFirst,
		MemberCount: uint32(symbols.VariableID(len(p.syms.Variables)) - memberFirst), // #nosec G115
		Span:        nameTok.Span,
	})
	structID := p.syms.RegisterStruct(symbols.Structure{Type: typeID, Kind: kind, Slot: slot})
	p.syms.Type(typeID).Struct = structID

	return p.b.Items.NewStruct(kwTok.Span.Cover(end), structID)
}

func (p *Parser) parseBufferSlot(what string) int {
	tok := p.tok()
	if tok.Kind != token.IntLit {
		p.fail(diag.ResSlotInvalid, p.errorSpan(), "%s: slot id must be a positive, constant integer", what)
	}
	slot := p.slotValue(tok, p.opts.Limits.BufferSlots, diag.ResSlotExceeded, "%s: slot id exceeded maximum: %d", what)
	if p.bufferSlots[slot] {
		p.fail(diag.ResSlotBound, tok.Span, "%s: slot id '%d' is already bound!", what, slot)
	}
	p.bufferSlots[slot] = true
	p.next()
	p.expect(token.RParen, diag.SynExpectRParen, "%s: expected ')' after slot id", what)
	return slot
}

func (p *Parser) parseStructMember(kind symbols.StructKind, what string) {
	declSpan := p.tok().Span
	id, init := p.parseVarDecl()
	if init.IsValid() {
		p.fail(diag.SemaMemberRestriction, p.b.Exprs.Get(init).Span, "%s: member variable assignment not allowed", what)
	}
	v := p.syms.Variable(id)
	v.Member = true
	declSpan = declSpan.Cover(v.Span)

	// Ограничения
	switch {
	case p.syms.Type(v.Type).Global:
		p.fail(diag.SemaMemberRestriction, declSpan, "%s: member variables cannot be of constant structure type", what)
	case v.Const:
		p.fail(diag.SemaMemberRestriction, declSpan, "%s: member variables cannot be const", what)
	case v.In || v.Out:
		p.fail(diag.SemaMemberRestriction, declSpan, "%s: member variables cannot be declared with 'in', 'out', or 'inout'", what)
	case kind == symbols.StructVertexInput && !symbols.VertexInputAllowed(v.Type):
		p.fail(diag.SemaTypeNotAllowed, declSpan, "Type not allowed in vertex_input! Must be a primitive, non-matrix type")
	case kind == symbols.StructCBuffer && !symbols.CBufferAllowed(v.Type):
		p.fail(diag.SemaTypeNotAllowed, declSpan, "Type not allowed in cbuffer! Must be a primitive type")
	}

	if kind.HasTags() {
		p.parseMemberTags(kind, what, v)
	}

	if !p.at(token.Semicolon) {
		p.fail(diag.SynExpectSemicolon, p.lastSpan, "%s member: expected semicolon after variable declaration", what)
	}
	p.next()
}

// parseMemberTags читает теги в фиксированном порядке:
// semantic( SEM ), затем format( FMT ) для vertex_input, затем target( N ) для COLOR.
func (p *Parser) parseMemberTags(kind symbols.StructKind, what string, v *symbols.Variable) {
	v.Semantic = symbols.SemanticTexcoord
	if p.at(token.KwSemantic) {
		p.next()
		p.expect(token.LParen, diag.SynExpectLParen, "%s: expected '(' before semantic type", what)
		tok := p.tok()
		if !tok.Kind.IsSemantic() {
			p.fail(diag.SemaInvalidSemantic, p.errorSpan(), "%s: unknown semantic", what)
		}
		v.Semantic = symbols.Semantic(tok.Kind.SemanticIndex()) // #nosec G115
		if v.Semantic == symbols.SemanticDepth && kind != symbols.StructFragmentOutput {
			p.fail(diag.SemaInvalidSemantic, tok.Span, "%s: semantic 'DEPTH' is only allowed in fragment_output", what)
		}
		p.next()
		p.expect(token.RParen, diag.SynExpectRParen, "%s: expected ')' after semantic type", what)
	} else if kind == symbols.StructFragmentOutput {
		p.fail(diag.SemaMissingSemantic, p.errorSpan(), "%s members require a semantic() of 'COLOR' or 'DEPTH'", what)
	}

	if kind == symbols.StructVertexInput {
		if !p.at(token.KwFormat) {
			p.fail(diag.SemaMissingFormat, p.errorSpan(), "vertex_input members require a format()")
		}
		p.next()
		p.expect(token.LParen, diag.SynExpectLParen, "%s: expected '(' before format type", what)
		tok := p.tok()
		if !tok.Kind.IsFormat() {
			p.fail(diag.SemaInvalidFormat, p.errorSpan(), "%s: invalid format() type", what)
		}
		v.Format = symbols.Format(tok.Kind.FormatIndex()) // #nosec G115
		p.next()
		p.expect(token.RParen, diag.SynExpectRParen, "%s: expected ')' after format type", what)
	}

	if kind != symbols.StructFragmentOutput {
		return
	}
	if v.Semantic != symbols.SemanticColor && v.Semantic != symbols.SemanticDepth {
		p.fail(diag.SemaInvalidSemantic, p.lastSpan, "%s must only be semantic 'COLOR' or 'DEPTH'", what)
	}
	if v.Semantic != symbols.SemanticColor {
		return
	}
	if !p.at(token.KwTarget) {
		p.fail(diag.SemaMissingTarget, p.errorSpan(), "%s semantic 'COLOR' requires a target() slot", what)
	}
	p.next()
	p.expect(token.LParen, diag.SynExpectLParen, "%s: expected '(' before target type", what)
	tok := p.tok()
	if tok.Kind != token.IntLit {
		p.fail(diag.ResTargetInvalid, p.errorSpan(), "%s: target() must be a positive, constant integer", what)
	}
	slot := p.slotValue(tok, p.opts.Limits.TargetSlots, diag.ResTargetExceeded, "%s: target() exceeded maximum: %d", what)
	if p.targetSlots[slot] {
		p.fail(diag.ResTargetBound, tok.Span, "%s: target( '%d' ) is already bound!", what, slot)
	}
	p.targetSlots[slot] = true
	v.Slot = slot
	p.next()
	p.expect(token.RParen, diag.SynExpectRParen, "%s: expected ')' after target", what)
}

// parseTexture: texture2D( 0 ) diffuse;
func (p *Parser) parseTexture() ast.ItemID {
	kwTok := p.tok()
	kind := symbols.TextureKind(kwTok.Kind.TextureIndex()) // #nosec G115 -- IsTexture проверен вызывающим
	what := kwTok.Text
	p.next()

	p.expect(token.LParen, diag.SynExpectLParen, "%s: expected '(' before slot", what)
	slotTok := p.tok()
	if slotTok.Kind != token.IntLit {
		p.fail(diag.ResSlotInvalid, p.errorSpan(), "%s: slot must be a positive, constant integer", what)
	}
	slot := p.slotValue(slotTok, p.opts.Limits.TextureSlots, diag.ResSlotExceeded, "%s: slot exceeded maximum: %d", what)
	if p.textureSlots[slot] {
		p.fail(diag.ResSlotBound, slotTok.Span, "%s: slot '%d' is already bound!", what, slot)
	}
	p.textureSlots[slot] = true
	p.next()
	p.expect(token.RParen, diag.SynExpectRParen, "%s: expected ')' after slot", what)

	nameTok := p.tok()
	if nameTok.Kind != token.Ident {
		p.fail(diag.SynExpectIdentifier, p.errorSpan(), "%s: expected name after %s(slot) keyword", what, what)
	}
	p.checkNamespace(nameTok)
	p.next()
	if !p.at(token.Semicolon) {
		p.fail(diag.SynExpectSemicolon, p.lastSpan, "%s: expected semicolon", what)
	}
	end := p.tok().Span
	p.next()

	// переменная текстуры остаётся в глобальной области видимости
	varID := p.syms.RegisterVariable(symbols.Variable{
		Name:     nameTok.Text,
		Type:     kind.Type(),
		Semantic: symbols.SemanticTexcoord,
		Slot:     slot,
		Texture:  symbols.NoTextureID,
		Span:     nameTok.Span,
	})
	texID := p.syms.RegisterTexture(symbols.Texture{Kind: kind, Variable: varID, Slot: slot})
	return p.b.Items.NewTexture(kwTok.Span.Cover(end), texID)
}
