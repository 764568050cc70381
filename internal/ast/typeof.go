package ast

import (
	"shaderx/internal/symbols"
)

// TypeOf returns the static type of an expression, or symbols.NoTypeID
// when the expression has none the parser can rely on.
func (b *Builder) TypeOf(syms *symbols.Table, id ExprID) symbols.TypeID {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return symbols.NoTypeID
	}
	switch expr.Kind {
	case ExprVariable:
		data, _ := b.Exprs.Variable(id)
		return syms.Variable(data.Var).Type
	case ExprSwizzle:
		data, _ := b.Exprs.Swizzle(id)
		return data.Type
	case ExprInt:
		return symbols.TypeInt
	case ExprFloat:
		return symbols.TypeFloat
	case ExprBool:
		return symbols.TypeBool
	case ExprBinary:
		data, _ := b.Exprs.Binary(id)
		return b.TypeOf(syms, data.Left)
	case ExprUnary:
		data, _ := b.Exprs.Unary(id)
		return b.TypeOf(syms, data.Operand)
	case ExprTernary:
		data, _ := b.Exprs.Ternary(id)
		return b.TypeOf(syms, data.Then)
	case ExprCall:
		data, _ := b.Exprs.Call(id)
		if data.Func == symbols.IntrinsicMul {
			return b.mulType(syms, data.Args)
		}
		return syms.Function(data.Func).Return
	case ExprCast:
		data, _ := b.Exprs.Cast(id)
		return data.Type
	case ExprGroup:
		data, _ := b.Exprs.Group(id)
		return b.TypeOf(syms, data.Inner)
	case ExprMember:
		data, _ := b.Exprs.Member(id)
		return b.TypeOf(syms, data.Field)
	case ExprIndex:
		return b.indexType(syms, id)
	}
	return symbols.NoTypeID
}

// mul( m, v ) даёт вектор, mul( m, m ) — матрицу первого аргумента.
func (b *Builder) mulType(syms *symbols.Table, args []ExprID) symbols.TypeID {
	if len(args) != 2 {
		return symbols.NoTypeID
	}
	rhs := b.TypeOf(syms, args[1])
	if symbols.IsVector(rhs) {
		return rhs
	}
	return b.TypeOf(syms, args[0])
}

// indexType peels a chain of subscripts: the first ones consume declared
// array dimensions, the rest step from matrix to row vector to scalar.
func (b *Builder) indexType(syms *symbols.Table, id ExprID) symbols.TypeID {
	depth := 0
	base := id
	for {
		data, ok := b.Exprs.Index(base)
		if !ok {
			break
		}
		depth++
		base = data.Target
	}
	typ := b.TypeOf(syms, base)
	if !typ.IsValid() {
		return typ
	}
	if v, ok := b.baseVariable(syms, base); ok {
		dims := 0
		if v.ArrayX != 0 {
			dims++
		}
		if v.ArrayY != 0 {
			dims++
		}
		depth -= min(depth, dims)
	}
	for ; depth > 0; depth-- {
		switch {
		case symbols.IsMatrix(typ):
			typ = symbols.VectorOf(symbols.Scalar(typ), int(symbols.Width(typ)))
		case symbols.IsVector(typ):
			typ = symbols.Scalar(typ)
		default:
			return symbols.NoTypeID
		}
	}
	return typ
}

func (b *Builder) baseVariable(syms *symbols.Table, id ExprID) (*symbols.Variable, bool) {
	switch b.Exprs.Get(id).Kind {
	case ExprVariable:
		data, _ := b.Exprs.Variable(id)
		return syms.Variable(data.Var), true
	case ExprMember:
		data, _ := b.Exprs.Member(id)
		return b.baseVariable(syms, data.Field)
	case ExprGroup:
		data, _ := b.Exprs.Group(id)
		return b.baseVariable(syms, data.Inner)
	}
	return nil, false
}

// IsConstExpr reports whether the expression cannot be assigned to.
// Only a path ending in a non-const variable or a swizzle is writable.
func (b *Builder) IsConstExpr(syms *symbols.Table, id ExprID) bool {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return true
	}
	switch expr.Kind {
	case ExprVariable:
		data, _ := b.Exprs.Variable(id)
		return syms.Variable(data.Var).Const
	case ExprSwizzle:
		return false
	case ExprMember:
		data, _ := b.Exprs.Member(id)
		return b.IsConstExpr(syms, data.Target) || b.IsConstExpr(syms, data.Field)
	case ExprIndex:
		data, _ := b.Exprs.Index(id)
		return b.IsConstExpr(syms, data.Target)
	case ExprBinary:
		data, _ := b.Exprs.Binary(id)
		return b.IsConstExpr(syms, data.Left)
	case ExprUnary:
		data, _ := b.Exprs.Unary(id)
		return b.IsConstExpr(syms, data.Operand)
	case ExprGroup:
		data, _ := b.Exprs.Group(id)
		return b.IsConstExpr(syms, data.Inner)
	}
	return true
}
