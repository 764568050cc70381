package driver

import (
	"context"

	"shaderx/internal/diag"
	"shaderx/internal/lexer"
	"shaderx/internal/parser"
	"shaderx/internal/source"
	"shaderx/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Reporter: lexer.ReporterAdapter{Reporter: diag.BagReporter{Bag: bag}},
	})

	// Токенизация: собираем все токены до EOF
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Parse   parser.Result
	Bag     *diag.Bag
	Err     error // первая фатальная ошибка разбора, если была
}

// Parse runs the parser without generating code. A parse error is kept in
// ParseResult.Err so callers can still dump what was built.
func Parse(ctx context.Context, path string, maxDiagnostics int, limits parser.Limits) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	res, perr := parser.ParseFile(ctx, fs, fileID, parser.Options{
		Limits:   limits,
		Reporter: diag.BagReporter{Bag: bag},
	})
	return &ParseResult{
		FileSet: fs,
		File:    fs.Get(fileID),
		Parse:   res,
		Bag:     bag,
		Err:     perr,
	}, nil
}
