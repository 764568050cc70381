// Package token defines lexical token kinds for the shader language.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Semantic names (POSITION, COLOR, ...) and vertex formats (UNORM8, FLOAT32, ...)
//     are keywords; they keep their declaration order so that ordinal helpers
//     (SemanticIndex, FormatIndex) can map them to dense tables.
//   - Built-in type names (float3, int, Texture2D, ...) are identifiers.
//     They are recognised by the symbol table, not the lexer.
package token
