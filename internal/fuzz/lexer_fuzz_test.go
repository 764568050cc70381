package fuzztests

import (
	"testing"

	"shaderx/internal/diag"
	"shaderx/internal/lexer"
	"shaderx/internal/source"
	"shaderx/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.shader", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: lexer.ReporterAdapter{Reporter: diag.BagReporter{Bag: bag}}})
		size := uint32(len(file.Content))
		for n := 0; ; n++ {
			tok := lx.Next()
			if tok.Span.End > size || tok.Span.Start > tok.Span.End {
				t.Fatalf("token %s has span %v outside of %d bytes", tok.Kind, tok.Span, size)
			}
			if tok.Kind == token.EOF {
				break
			}
			// лексер обязан продвигаться
			if n > len(input)+1 {
				t.Fatalf("lexer does not advance on %q", truncateForLog(input, 200))
			}
		}
	})
}
