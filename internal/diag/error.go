package diag

import (
	"errors"
	"fmt"

	"shaderx/internal/source"
)

// Error carries the fatal diagnostic that stopped a compilation.
// Compilation halts at the first error, so there is exactly one.
type Error struct {
	Diagnostic Diagnostic
	Path       string // путь файла на момент ошибки, может быть пустым
}

// Errorf builds an *Error with a formatted message.
func Errorf(code Code, primary source.Span, format string, args ...any) *Error {
	return &Error{Diagnostic: NewError(code, primary, fmt.Sprintf(format, args...))}
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Diagnostic.Code.ID(), e.Diagnostic.Message)
	}
	return fmt.Sprintf("%s: %s", e.Diagnostic.Code.ID(), e.Diagnostic.Message)
}

// AsError unwraps err to a compile error if it is one.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
