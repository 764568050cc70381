package gen

import (
	"strconv"

	"shaderx/internal/ast"
)

// Expr writes one expression.
func (g *Generator) Expr(id ast.ExprID) {
	ex := g.B.Exprs
	e := ex.Get(id)
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprVariable:
		data, _ := ex.Variable(id)
		g.Write(g.VariableName(data.Var))

	case ast.ExprSwizzle:
		data, _ := ex.Swizzle(id)
		g.Write(data.Name)

	case ast.ExprInt:
		data, _ := ex.Int(id)
		g.Write(strconv.FormatUint(data.Value, 10))

	case ast.ExprFloat:
		data, _ := ex.Float(id)
		if data.Text != "" {
			g.Write(data.Text)
		} else {
			g.Write(strconv.FormatFloat(data.Value, 'f', -1, 64))
		}

	case ast.ExprBool:
		data, _ := ex.Bool(id)
		g.Write(strconv.FormatBool(data.Value))

	case ast.ExprBinary:
		data, _ := ex.Binary(id)
		g.Expr(data.Left)
		g.Write(" ", data.Op.String(), " ")
		g.Expr(data.Right)

	case ast.ExprUnary:
		data, _ := ex.Unary(id)
		switch {
		case data.Op == ast.ExprUnaryPlus:
			g.Expr(data.Operand)
		case data.Op.IsPostfix():
			g.Expr(data.Operand)
			g.Write(data.Op.String())
		default:
			g.Write(data.Op.String())
			g.Expr(data.Operand)
		}

	case ast.ExprTernary:
		data, _ := ex.Ternary(id)
		g.Write("( ( ")
		g.Expr(data.Cond)
		g.Write(" ) ? ( ")
		g.Expr(data.Then)
		g.Write(" ) : ( ")
		g.Expr(data.Else)
		g.Write(" ) )")

	case ast.ExprCall:
		data, _ := ex.Call(id)
		if g.Syms.Function(data.Func).Builtin {
			g.backend.Intrinsic(g, data)
			return
		}
		g.DefaultCall(data, g.backend.Target() != TargetShdr)

	case ast.ExprCast:
		data, _ := ex.Cast(id)
		g.Write(g.TypeName(data.Type))
		g.Args(data.Args, false)

	case ast.ExprGroup:
		data, _ := ex.Group(id)
		inner := ex.Get(data.Inner)
		if inner == nil {
			return
		}
		switch inner.Kind {
		case ast.ExprVariable, ast.ExprInt, ast.ExprFloat, ast.ExprBool, ast.ExprCall, ast.ExprCast:
			g.Expr(data.Inner)
		default:
			g.Write("( ")
			g.Expr(data.Inner)
			g.Write(" )")
		}

	case ast.ExprMember:
		data, _ := ex.Member(id)
		g.backend.Dot(g, data)

	case ast.ExprIndex:
		data, _ := ex.Index(id)
		g.Expr(data.Target)
		g.Write("[")
		g.Expr(data.Index)
		g.Write("]")
	}
}

// DefaultDot writes `lhs.field`.
func (g *Generator) DefaultDot(data *ast.ExprMemberData) {
	g.Expr(data.Target)
	g.Write(".")
	g.Expr(data.Field)
}

// DefaultCall writes `name( a, b )`.
func (g *Generator) DefaultCall(data *ast.ExprCallData, skipCBuffer bool) {
	g.Write(g.FunctionName(data.Func))
	g.Args(data.Args, skipCBuffer)
}

// Args writes a parenthesised argument list. With skipCBuffer, arguments
// that are plain references to cbuffer variables are dropped.
func (g *Generator) Args(args []ast.ExprID, skipCBuffer bool) {
	if len(args) == 0 {
		g.Write("()")
		return
	}
	g.Write("(")
	count := 0
	for _, a := range args {
		if skipCBuffer && g.isCBufferRef(a) {
			continue
		}
		if count == 0 {
			g.Write(" ")
		} else {
			g.Write(", ")
		}
		g.Expr(a)
		count++
	}
	if count > 0 {
		g.Write(" )")
	} else {
		g.Write(")")
	}
}

func (g *Generator) isCBufferRef(id ast.ExprID) bool {
	v, ok := g.B.Exprs.Variable(id)
	return ok && g.IsCBuffer(g.Syms.Variable(v.Var).Type)
}

// Arg returns argument i of a call, or NoExprID.
func Arg(data *ast.ExprCallData, i int) ast.ExprID {
	if i < len(data.Args) {
		return data.Args[i]
	}
	return ast.NoExprID
}
