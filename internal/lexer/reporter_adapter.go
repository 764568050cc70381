package lexer

import (
	"shaderx/internal/diag"
	"shaderx/internal/source"
)

// ReporterAdapter переводит строковые kind лексера в коды diag.
type ReporterAdapter struct {
	Reporter diag.Reporter
}

var kindCodes = map[string]diag.Code{
	KindUnknownChar:         diag.LexUnknownChar,
	KindBadNumber:           diag.LexBadNumber,
	KindTokenTooLong:        diag.LexTokenTooLong,
	KindUnterminatedComment: diag.LexUnterminatedBlockComment,
}

// Report implements Reporter.
func (r ReporterAdapter) Report(kind string, span source.Span, msg string) {
	if r.Reporter == nil {
		return
	}
	code, ok := kindCodes[kind]
	if !ok {
		code = diag.LexInfo
	}
	r.Reporter.Report(code, diag.SevError, span, msg, nil)
}
