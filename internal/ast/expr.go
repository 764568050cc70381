package ast

import (
	"shaderx/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprVariable references a visible variable (local, parameter, member, texture).
	ExprVariable ExprKind = iota
	// ExprSwizzle is the right-hand side of '.' on a built-in vector.
	ExprSwizzle
	ExprInt
	ExprFloat
	ExprBool
	ExprBinary
	ExprUnary
	ExprTernary
	ExprCall
	ExprCast
	ExprGroup
	// ExprMember is 'a.b'; the field is an ExprVariable or ExprSwizzle.
	ExprMember
	ExprIndex
)

var exprKindNames = [...]string{
	"Variable", "Swizzle", "Int", "Float", "Bool", "Binary", "Unary",
	"Ternary", "Call", "Cast", "Group", "Member", "Index",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	// Присваивания
	ExprBinaryAssign ExprBinaryOp = iota
	ExprBinaryAddAssign
	ExprBinarySubAssign
	ExprBinaryMulAssign
	ExprBinaryDivAssign
	ExprBinaryModAssign
	ExprBinaryXorAssign
	ExprBinaryOrAssign
	ExprBinaryAndAssign
	ExprBinaryShlAssign
	ExprBinaryShrAssign

	// Логические
	ExprBinaryLogicalOr
	ExprBinaryLogicalAnd

	// Битовые
	ExprBinaryBitOr
	ExprBinaryBitXor
	ExprBinaryBitAnd

	// Сравнения
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryGreater
	ExprBinaryGreaterEq
	ExprBinaryLess
	ExprBinaryLessEq

	ExprBinaryShl
	ExprBinaryShr

	// Арифметические
	ExprBinaryAdd
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod
)

var binaryOpText = [...]string{
	"=", "+=", "-=", "*=", "/=", "%=", "^=", "|=", "&=", "<<=", ">>=",
	"||", "&&",
	"|", "^", "&",
	"==", "!=", ">", ">=", "<", "<=",
	"<<", ">>",
	"+", "-", "*", "/", "%",
}

func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsAssign reports whether op stores into its left operand.
func (op ExprBinaryOp) IsAssign() bool { return op <= ExprBinaryShrAssign }

// ExprUnaryOp enumerates unary operator kinds.
type ExprUnaryOp uint8

const (
	ExprUnaryPreInc ExprUnaryOp = iota
	ExprUnaryPreDec
	ExprUnaryPlus
	ExprUnaryMinus
	ExprUnaryNot
	ExprUnaryBitNot
	ExprUnaryPostInc
	ExprUnaryPostDec
)

var unaryOpText = [...]string{"++", "--", "+", "-", "!", "~", "++", "--"}

func (op ExprUnaryOp) String() string {
	if int(op) < len(unaryOpText) {
		return unaryOpText[op]
	}
	return "?"
}

// IsPostfix reports whether the operator follows its operand.
func (op ExprUnaryOp) IsPostfix() bool {
	return op == ExprUnaryPostInc || op == ExprUnaryPostDec
}

// Mutates reports whether the operator writes to its operand.
func (op ExprUnaryOp) Mutates() bool {
	switch op {
	case ExprUnaryPreInc, ExprUnaryPreDec, ExprUnaryPostInc, ExprUnaryPostDec:
		return true
	}
	return false
}
