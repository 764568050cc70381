package lexer

import (
	"shaderx/internal/token"
)

// scanNumber читает цифры и не более одной точки.
// "1" -> IntLit, "1.5" / "1." -> FloatLit, "1.2.3" -> Invalid.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	dots := 0
	for {
		b := lx.cursor.Peek()
		if b == '.' {
			dots++
		} else if !isDec(b) {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	switch {
	case dots > 1:
		lx.report(KindBadNumber, sp, "numeric literal has more than one decimal point")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	case sp.Len() > MaxNumberLen:
		lx.report(KindTokenTooLong, sp, "numeric literal is too long")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	case dots == 1:
		return token.Token{Kind: token.FloatLit, Span: sp, Text: text}
	default:
		return token.Token{Kind: token.IntLit, Span: sp, Text: text}
	}
}
