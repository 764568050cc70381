package lexer

import (
	"shaderx/internal/source"
)

// Reporter — тонкий интерфейс, чтобы не тянуть diag сюда.
// Лексер **только вызывает** его с параметрами; форматирует diag внешний слой.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

// Kinds passed to Reporter.
const (
	KindUnknownChar         = "UnknownChar"
	KindBadNumber           = "BadNumber"
	KindTokenTooLong        = "TokenTooLong"
	KindUnterminatedComment = "UnterminatedBlockComment"
)

// MaxNumberLen bounds numeric literal length.
const MaxNumberLen = 63

type Options struct {
	Reporter Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
}

// report отправляет ошибку один раз: после Back() тот же участок
// сканируется повторно и не должен дублировать диагностику.
func (lx *Lexer) report(kind string, sp source.Span, msg string) {
	if sp.End <= lx.reported && lx.reported != 0 {
		return
	}
	lx.reported = sp.End
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}
