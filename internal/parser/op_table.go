package parser

import (
	"shaderx/internal/ast"
	"shaderx/internal/token"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет. Порядок совпадает с C,
// потому что генераторы печатают дерево без лишних скобок.
const (
	precLogicalOr      = 1  // ||
	precLogicalAnd     = 2  // &&
	precBitwiseOr      = 3  // |
	precBitwiseXor     = 4  // ^
	precBitwiseAnd     = 5  // &
	precEquality       = 6  // == !=
	precComparison     = 7  // < <= > >=
	precShift          = 8  // << >>
	precAdditive       = 9  // + -
	precMultiplicative = 10 // * / %
)

// binaryPrec возвращает приоритет бинарного оператора или -1.
// Все бинарные операторы левоассоциативны.
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.Pipe:
		return precBitwiseOr
	case token.Caret:
		return precBitwiseXor
	case token.Amp:
		return precBitwiseAnd
	case token.EqEq, token.BangEq:
		return precEquality
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison
	case token.Shl, token.Shr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	default:
		return -1
	}
}

var binaryOps = map[token.Kind]ast.ExprBinaryOp{
	token.OrOr:    ast.ExprBinaryLogicalOr,
	token.AndAnd:  ast.ExprBinaryLogicalAnd,
	token.Pipe:    ast.ExprBinaryBitOr,
	token.Caret:   ast.ExprBinaryBitXor,
	token.Amp:     ast.ExprBinaryBitAnd,
	token.EqEq:    ast.ExprBinaryEq,
	token.BangEq:  ast.ExprBinaryNotEq,
	token.Gt:      ast.ExprBinaryGreater,
	token.GtEq:    ast.ExprBinaryGreaterEq,
	token.Lt:      ast.ExprBinaryLess,
	token.LtEq:    ast.ExprBinaryLessEq,
	token.Shl:     ast.ExprBinaryShl,
	token.Shr:     ast.ExprBinaryShr,
	token.Plus:    ast.ExprBinaryAdd,
	token.Minus:   ast.ExprBinarySub,
	token.Star:    ast.ExprBinaryMul,
	token.Slash:   ast.ExprBinaryDiv,
	token.Percent: ast.ExprBinaryMod,
}

// Присваивания (правоассоциативны)
var assignOps = map[token.Kind]ast.ExprBinaryOp{
	token.Assign:        ast.ExprBinaryAssign,
	token.PlusAssign:    ast.ExprBinaryAddAssign,
	token.MinusAssign:   ast.ExprBinarySubAssign,
	token.StarAssign:    ast.ExprBinaryMulAssign,
	token.SlashAssign:   ast.ExprBinaryDivAssign,
	token.PercentAssign: ast.ExprBinaryModAssign,
	token.CaretAssign:   ast.ExprBinaryXorAssign,
	token.PipeAssign:    ast.ExprBinaryOrAssign,
	token.AmpAssign:     ast.ExprBinaryAndAssign,
	token.ShlAssign:     ast.ExprBinaryShlAssign,
	token.ShrAssign:     ast.ExprBinaryShrAssign,
}

var prefixOps = map[token.Kind]ast.ExprUnaryOp{
	token.PlusPlus:   ast.ExprUnaryPreInc,
	token.MinusMinus: ast.ExprUnaryPreDec,
	token.Plus:       ast.ExprUnaryPlus,
	token.Minus:      ast.ExprUnaryMinus,
	token.Bang:       ast.ExprUnaryNot,
	token.Tilde:      ast.ExprUnaryBitNot,
}
