package ast

import (
	"shaderx/internal/source"
	"shaderx/internal/symbols"
)

type ExprVariableData struct {
	Var symbols.VariableID
}

type ExprSwizzleData struct {
	Name string
	Type symbols.TypeID // тип результата: вектор нужной ширины
}

type ExprIntData struct {
	Value uint64
}

type ExprFloatData struct {
	Value float64
	Text  string // исходное написание
}

type ExprBoolData struct {
	Value bool
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprTernaryData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

type ExprCallData struct {
	Func symbols.FunctionID
	Args []ExprID
}

type ExprCastData struct {
	Type symbols.TypeID
	Args []ExprID
}

type ExprGroupData struct {
	Inner ExprID
}

type ExprMemberData struct {
	Target ExprID
	Field  ExprID
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Variables *Arena[ExprVariableData]
	Swizzles  *Arena[ExprSwizzleData]
	Ints      *Arena[ExprIntData]
	Floats    *Arena[ExprFloatData]
	Bools     *Arena[ExprBoolData]
	Binaries  *Arena[ExprBinaryData]
	Unaries   *Arena[ExprUnaryData]
	Ternaries *Arena[ExprTernaryData]
	Calls     *Arena[ExprCallData]
	Casts     *Arena[ExprCastData]
	Groups    *Arena[ExprGroupData]
	Members   *Arena[ExprMemberData]
	Indices   *Arena[ExprIndexData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Variables: NewArena[ExprVariableData](capHint / 2),
		Swizzles:  NewArena[ExprSwizzleData](small),
		Ints:      NewArena[ExprIntData](small),
		Floats:    NewArena[ExprFloatData](small),
		Bools:     NewArena[ExprBoolData](small),
		Binaries:  NewArena[ExprBinaryData](capHint / 4),
		Unaries:   NewArena[ExprUnaryData](small),
		Ternaries: NewArena[ExprTernaryData](small),
		Calls:     NewArena[ExprCallData](small),
		Casts:     NewArena[ExprCastData](small),
		Groups:    NewArena[ExprGroupData](small),
		Members:   NewArena[ExprMemberData](capHint / 4),
		Indices:   NewArena[ExprIndexData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

func (e *Exprs) NewVariable(span source.Span, v symbols.VariableID) ExprID {
	return e.new(ExprVariable, span, e.Variables.Allocate(ExprVariableData{Var: v}))
}

func (e *Exprs) Variable(id ExprID) (*ExprVariableData, bool) {
	p, ok := e.payload(id, ExprVariable)
	if !ok {
		return nil, false
	}
	return e.Variables.Get(p), true
}

func (e *Exprs) NewSwizzle(span source.Span, name string, typ symbols.TypeID) ExprID {
	return e.new(ExprSwizzle, span, e.Swizzles.Allocate(ExprSwizzleData{Name: name, Type: typ}))
}

func (e *Exprs) Swizzle(id ExprID) (*ExprSwizzleData, bool) {
	p, ok := e.payload(id, ExprSwizzle)
	if !ok {
		return nil, false
	}
	return e.Swizzles.Get(p), true
}

func (e *Exprs) NewInt(span source.Span, v uint64) ExprID {
	return e.new(ExprInt, span, e.Ints.Allocate(ExprIntData{Value: v}))
}

func (e *Exprs) Int(id ExprID) (*ExprIntData, bool) {
	p, ok := e.payload(id, ExprInt)
	if !ok {
		return nil, false
	}
	return e.Ints.Get(p), true
}

func (e *Exprs) NewFloat(span source.Span, v float64, text string) ExprID {
	return e.new(ExprFloat, span, e.Floats.Allocate(ExprFloatData{Value: v, Text: text}))
}

func (e *Exprs) Float(id ExprID) (*ExprFloatData, bool) {
	p, ok := e.payload(id, ExprFloat)
	if !ok {
		return nil, false
	}
	return e.Floats.Get(p), true
}

func (e *Exprs) NewBool(span source.Span, v bool) ExprID {
	return e.new(ExprBool, span, e.Bools.Allocate(ExprBoolData{Value: v}))
}

func (e *Exprs) Bool(id ExprID) (*ExprBoolData, bool) {
	p, ok := e.payload(id, ExprBool)
	if !ok {
		return nil, false
	}
	return e.Bools.Get(p), true
}

func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

func (e *Exprs) NewTernary(span source.Span, cond, then, els ExprID) ExprID {
	return e.new(ExprTernary, span, e.Ternaries.Allocate(ExprTernaryData{Cond: cond, Then: then, Else: els}))
}

func (e *Exprs) Ternary(id ExprID) (*ExprTernaryData, bool) {
	p, ok := e.payload(id, ExprTernary)
	if !ok {
		return nil, false
	}
	return e.Ternaries.Get(p), true
}

func (e *Exprs) NewCall(span source.Span, fn symbols.FunctionID, args []ExprID) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Func: fn, Args: args}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewCast(span source.Span, typ symbols.TypeID, args []ExprID) ExprID {
	return e.new(ExprCast, span, e.Casts.Allocate(ExprCastData{Type: typ, Args: args}))
}

func (e *Exprs) Cast(id ExprID) (*ExprCastData, bool) {
	p, ok := e.payload(id, ExprCast)
	if !ok {
		return nil, false
	}
	return e.Casts.Get(p), true
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	return e.new(ExprGroup, span, e.Groups.Allocate(ExprGroupData{Inner: inner}))
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	p, ok := e.payload(id, ExprGroup)
	if !ok {
		return nil, false
	}
	return e.Groups.Get(p), true
}

func (e *Exprs) NewMember(span source.Span, target, field ExprID) ExprID {
	return e.new(ExprMember, span, e.Members.Allocate(ExprMemberData{Target: target, Field: field}))
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	p, ok := e.payload(id, ExprMember)
	if !ok {
		return nil, false
	}
	return e.Members.Get(p), true
}

func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	return e.new(ExprIndex, span, e.Indices.Allocate(ExprIndexData{Target: target, Index: index}))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	p, ok := e.payload(id, ExprIndex)
	if !ok {
		return nil, false
	}
	return e.Indices.Get(p), true
}
