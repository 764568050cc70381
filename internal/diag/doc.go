// Package diag defines the diagnostic model shared by the lexer, parser and
// code generators.
//
// A Diagnostic carries a Severity, a stable numeric Code (see codes.go), a
// short message and the primary source.Span. Codes are grouped by phase:
//
//   - LEX1000+ lexical errors (unknown character, malformed number)
//   - SYN2000+ syntax errors (missing delimiter, unexpected token)
//   - SEM3000+ semantic errors (unknown type, name conflicts, entry contracts)
//   - RES3500+ binding slot errors (duplicate or out-of-range slots)
//   - IO4000+, PRJ5000+ driver and manifest errors
//   - GEN6000+ back-end errors (semantic unsupported by a target, layout conflicts)
//
// Compilation of a shader stops at the first error. Phases report it through a
// Reporter and also return it as *Error so callers can use errors.As without
// inspecting a Bag. Rendering lives in internal/diagfmt.
package diag
