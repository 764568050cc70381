package lexer

import (
	"shaderx/internal/source"
	"shaderx/internal/token"
)

// Lexer выдаёт токены по требованию и хранит историю выданных токенов,
// чтобы парсер мог откатиться назад (Back) на любое число шагов.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	opts     Options
	history  []token.Token
	reported uint32 // конец последнего отрепорченного участка
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:    file,
		cursor:  NewCursor(file),
		opts:    opts,
		history: make([]token.Token, 0, len(file.Content)/4+1),
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Next возвращает следующий токен и кладёт его в историю.
// После конца файла всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	tok := lx.scan()
	lx.history = append(lx.history, tok)
	return tok
}

// Back снимает последний токен с истории, откатывает курсор на конец
// предыдущего токена и возвращает его (Invalid, если история пуста).
func (lx *Lexer) Back() token.Token {
	if len(lx.history) == 0 {
		return lx.invalid()
	}
	lx.history = lx.history[:len(lx.history)-1]
	if len(lx.history) == 0 {
		lx.cursor.Reset(0)
		return lx.invalid()
	}
	top := lx.history[len(lx.history)-1]
	lx.cursor.Reset(Mark(top.Span.End))
	return top
}

// Current возвращает последний выданный токен, не продвигаясь.
func (lx *Lexer) Current() token.Token {
	if len(lx.history) == 0 {
		return lx.invalid()
	}
	return lx.history[len(lx.history)-1]
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	tok := lx.Next()
	lx.Back()
	return tok
}

// Depth returns the number of tokens in the history.
func (lx *Lexer) Depth() int { return len(lx.history) }

func (lx *Lexer) scan() token.Token {
	// 1) пропускаем пробелы и комментарии
	lx.skipTrivia()

	// 2) EOF
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	// 3) выбираем сканер по первому байту
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) invalid() token.Token {
	return token.Token{Kind: token.Invalid, Span: source.Span{File: lx.file.ID}}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
