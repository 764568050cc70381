package lexer

// skipTrivia пропускает пробелы, '//' и '/* */' комментарии.
// Незакрытый блочный комментарий репортится и обрезается по EOF.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isSpace(b):
			lx.cursor.Bump()
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			start := lx.cursor.Mark()
			lx.cursor.Off += 2
			closed := false
			for !lx.cursor.EOF() {
				if lx.try2('*', '/') {
					closed = true
					break
				}
				lx.cursor.Bump()
			}
			if !closed {
				lx.report(KindUnterminatedComment, lx.cursor.SpanFrom(start), "unterminated block comment")
			}
		default:
			return
		}
	}
}
