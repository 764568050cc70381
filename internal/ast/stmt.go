package ast

import (
	"shaderx/internal/source"
	"shaderx/internal/symbols"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtExpr
	StmtVarDecl
	StmtIf
	StmtWhile
	StmtDoWhile
	StmtFor
	StmtSwitch
	StmtCase
	StmtDefault
	StmtReturn
	StmtBreak
	StmtDiscard
)

var stmtKindNames = [...]string{
	"Block", "Expr", "VarDecl", "If", "While", "DoWhile", "For",
	"Switch", "Case", "Default", "Return", "Break", "Discard",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type BlockStmt struct {
	Stmts []StmtID
}

type ExprStmt struct {
	Expr ExprID
}

type VarDeclStmt struct {
	Var  symbols.VariableID
	Init ExprID
}

type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID // блок или вложенный if
}

// LoopStmt serves while and do-while.
type LoopStmt struct {
	Cond ExprID
	Body StmtID
}

type ForStmt struct {
	Init StmtID // VarDecl, Expr или NoStmtID
	Cond ExprID
	Post ExprID
	Body StmtID
}

type SwitchStmt struct {
	Tag  ExprID
	Body StmtID
}

// CaseStmt serves case and default labels; Body may be NoStmtID for fallthrough.
type CaseStmt struct {
	Value ExprID
	Body  StmtID
}

type ReturnStmt struct {
	Value ExprID
}

type Stmts struct {
	Arena    *Arena[Stmt]
	Blocks   *Arena[BlockStmt]
	Exprs    *Arena[ExprStmt]
	VarDecls *Arena[VarDeclStmt]
	Ifs      *Arena[IfStmt]
	Loops    *Arena[LoopStmt]
	Fors     *Arena[ForStmt]
	Switches *Arena[SwitchStmt]
	Cases    *Arena[CaseStmt]
	Returns  *Arena[ReturnStmt]
}

func NewStmts(capHint uint) *Stmts {
	small := capHint/8 + 1
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Blocks:   NewArena[BlockStmt](capHint / 2),
		Exprs:    NewArena[ExprStmt](capHint / 2),
		VarDecls: NewArena[VarDeclStmt](capHint / 4),
		Ifs:      NewArena[IfStmt](small),
		Loops:    NewArena[LoopStmt](small),
		Fors:     NewArena[ForStmt](small),
		Switches: NewArena[SwitchStmt](small),
		Cases:    NewArena[CaseStmt](small),
		Returns:  NewArena[ReturnStmt](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kinds ...StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil {
		return 0, false
	}
	for _, k := range kinds {
		if st.Kind == k {
			return uint32(st.Payload), true
		}
	}
	return 0, false
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(BlockStmt{Stmts: stmts}))
}

func (s *Stmts) Block(id StmtID) (*BlockStmt, bool) {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(p), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(ExprStmt{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewVarDecl(span source.Span, v symbols.VariableID, init ExprID) StmtID {
	return s.new(StmtVarDecl, span, s.VarDecls.Allocate(VarDeclStmt{Var: v, Init: init}))
}

func (s *Stmts) VarDecl(id StmtID) (*VarDeclStmt, bool) {
	p, ok := s.payload(id, StmtVarDecl)
	if !ok {
		return nil, false
	}
	return s.VarDecls.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(IfStmt{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) If(id StmtID) (*IfStmt, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

// NewLoop creates a while (doWhile=false) or do-while statement.
func (s *Stmts) NewLoop(span source.Span, doWhile bool, cond ExprID, body StmtID) StmtID {
	kind := StmtWhile
	if doWhile {
		kind = StmtDoWhile
	}
	return s.new(kind, span, s.Loops.Allocate(LoopStmt{Cond: cond, Body: body}))
}

func (s *Stmts) Loop(id StmtID) (*LoopStmt, bool) {
	p, ok := s.payload(id, StmtWhile, StmtDoWhile)
	if !ok {
		return nil, false
	}
	return s.Loops.Get(p), true
}

func (s *Stmts) NewFor(span source.Span, init StmtID, cond, post ExprID, body StmtID) StmtID {
	return s.new(StmtFor, span, s.Fors.Allocate(ForStmt{Init: init, Cond: cond, Post: post, Body: body}))
}

func (s *Stmts) For(id StmtID) (*ForStmt, bool) {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(p), true
}

func (s *Stmts) NewSwitch(span source.Span, tag ExprID, body StmtID) StmtID {
	return s.new(StmtSwitch, span, s.Switches.Allocate(SwitchStmt{Tag: tag, Body: body}))
}

func (s *Stmts) Switch(id StmtID) (*SwitchStmt, bool) {
	p, ok := s.payload(id, StmtSwitch)
	if !ok {
		return nil, false
	}
	return s.Switches.Get(p), true
}

// NewCase creates a case label; value == NoExprID makes it a default label.
func (s *Stmts) NewCase(span source.Span, value ExprID, body StmtID) StmtID {
	kind := StmtCase
	if !value.IsValid() {
		kind = StmtDefault
	}
	return s.new(kind, span, s.Cases.Allocate(CaseStmt{Value: value, Body: body}))
}

func (s *Stmts) Case(id StmtID) (*CaseStmt, bool) {
	p, ok := s.payload(id, StmtCase, StmtDefault)
	if !ok {
		return nil, false
	}
	return s.Cases.Get(p), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(ReturnStmt{Value: value}))
}

func (s *Stmts) Return(id StmtID) (*ReturnStmt, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

// NewSimple creates payload-free statements (break, discard).
func (s *Stmts) NewSimple(kind StmtKind, span source.Span) StmtID {
	return s.new(kind, span, 0)
}
