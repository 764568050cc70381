package parser

import (
	"strconv"

	"fortio.org/safecast"

	"shaderx/internal/diag"
	"shaderx/internal/source"
	"shaderx/internal/token"
)

// bailout несёт первую ошибку наверх до ParseFile через panic/recover.
type bailout struct{ err *diag.Error }

// tok — текущий (последний выданный лексером) токен.
func (p *Parser) tok() token.Token {
	return p.lx.Current()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Current().Kind == k
}

// next съедает текущий токен и делает текущим следующий.
// Лексическая ошибка останавливает разбор в месте, где её нашёл лексер.
func (p *Parser) next() token.Token {
	if cur := p.lx.Current(); cur.Kind != token.Invalid && cur.Kind != token.EOF {
		p.lastSpan = cur.Span
	}
	tok := p.lx.Next()
	if first := p.lexErrs.First; first != nil {
		p.fail(first.Code, first.Primary, "%s", first.Message)
	}
	if tok.Kind == token.Invalid {
		p.fail(diag.LexUnknownChar, tok.Span, "unknown token")
	}
	return tok
}

// expect требует токен kind и съедает его.
func (p *Parser) expect(kind token.Kind, code diag.Code, format string, args ...any) token.Token {
	tok := p.tok()
	if tok.Kind != kind {
		p.fail(code, p.errorSpan(), format, args...)
	}
	p.next()
	return tok
}

// errorSpan — лучший span для "ожидали X": текущий токен,
// а на EOF — точка сразу после последнего съеденного.
func (p *Parser) errorSpan() source.Span {
	tok := p.tok()
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

// fail репортит ошибку и прерывает разбор файла.
func (p *Parser) fail(code diag.Code, sp source.Span, format string, args ...any) {
	err := diag.Errorf(code, sp, format, args...)
	err.Path = p.file.Path
	if p.opts.Reporter != nil {
		d := err.Diagnostic
		p.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
	panic(bailout{err: err})
}

// checkNamespace: имена верхнего уровня уникальны во всех трёх пространствах.
func (p *Parser) checkNamespace(tok token.Token) {
	if ns, ok := p.syms.Conflict(tok.Text); ok {
		p.fail(diag.SemaNameConflict, tok.Span, "namespace: '%s' conflicts with existing %s", tok.Text, ns)
	}
}

func (p *Parser) intValue(tok token.Token) uint64 {
	v, err := strconv.ParseUint(tok.Text, 10, 64)
	if err != nil {
		p.fail(diag.LexBadNumber, tok.Span, "integer literal '%s' out of range", tok.Text)
	}
	return v
}

// slotValue читает целочисленный слот и проверяет верхнюю границу.
func (p *Parser) slotValue(tok token.Token, limit int, code diag.Code, format string, args ...any) int {
	v := p.intValue(tok)
	n, err := safecast.Conv[int](v)
	if err != nil || n >= limit {
		p.fail(code, tok.Span, format, append(args, limit)...)
	}
	return n
}

func describe(tok token.Token) string {
	if tok.Text != "" {
		return tok.Text
	}
	return tok.Kind.String()
}
