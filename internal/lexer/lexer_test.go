package lexer_test

import (
	"testing"

	"shaderx/internal/lexer"
	"shaderx/internal/source"
	"shaderx/internal/token"
)

type report struct {
	kind string
	span source.Span
}

// testReporter собирает все ошибки лексера
type testReporter struct {
	reports []report
}

func (r *testReporter) Report(kind string, span source.Span, _ string) {
	r.reports = append(r.reports, report{kind: kind, span: span})
}

func makeTestLexer(t *testing.T, input string) (*lexer.Lexer, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.shader", []byte(input))
	rep := &testReporter{}
	return lexer.New(fs.Get(id), lexer.Options{Reporter: rep}), rep
}

func kinds(lx *lexer.Lexer) []token.Kind {
	var out []token.Kind
	for {
		tok := lx.Next()
		out = append(out, tok.Kind)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func expectKinds(t *testing.T, got, want []token.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestOperatorsGreedy(t *testing.T) {
	lx, rep := makeTestLexer(t, "<<= >>= << >> <= >= < > == = != ! ++ += + -- -= - *= * /= / %= % ^= ^ |= || | &= && & ~ ?")
	expectKinds(t, kinds(lx), []token.Kind{
		token.ShlAssign, token.ShrAssign, token.Shl, token.Shr, token.LtEq, token.GtEq, token.Lt, token.Gt,
		token.EqEq, token.Assign, token.BangEq, token.Bang, token.PlusPlus, token.PlusAssign, token.Plus,
		token.MinusMinus, token.MinusAssign, token.Minus, token.StarAssign, token.Star, token.SlashAssign,
		token.Slash, token.PercentAssign, token.Percent, token.CaretAssign, token.Caret, token.PipeAssign,
		token.OrOr, token.Pipe, token.AmpAssign, token.AndAnd, token.Amp, token.Tilde, token.Question,
		token.EOF,
	})
	if len(rep.reports) != 0 {
		t.Fatalf("unexpected reports: %v", rep.reports)
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	lx, _ := makeTestLexer(t, "vertex_input VSIn { float3 position semantic(POSITION) format(FLOAT32); };")
	expectKinds(t, kinds(lx), []token.Kind{
		token.KwVertexInput, token.Ident, token.LBrace, token.Ident, token.Ident,
		token.KwSemantic, token.LParen, token.SemPosition, token.RParen,
		token.KwFormat, token.LParen, token.FmtFLOAT32, token.RParen, token.Semicolon,
		token.RBrace, token.Semicolon, token.EOF,
	})
}

func TestNumbers(t *testing.T) {
	lx, rep := makeTestLexer(t, "42 1.5 3. 1.2.3 7")
	want := []struct {
		kind token.Kind
		text string
	}{
		{token.IntLit, "42"},
		{token.FloatLit, "1.5"},
		{token.FloatLit, "3."},
		{token.Invalid, "1.2.3"},
		{token.IntLit, "7"},
	}
	for _, w := range want {
		tok := lx.Next()
		if tok.Kind != w.kind || tok.Text != w.text {
			t.Fatalf("got %v %q, want %v %q", tok.Kind, tok.Text, w.kind, w.text)
		}
	}
	if len(rep.reports) != 1 || rep.reports[0].kind != lexer.KindBadNumber {
		t.Fatalf("reports = %v", rep.reports)
	}
}

func TestComments(t *testing.T) {
	lx, rep := makeTestLexer(t, "a // line\n/* block\n * more */ b /* open")
	expectKinds(t, kinds(lx), []token.Kind{token.Ident, token.Ident, token.EOF})
	if len(rep.reports) != 1 || rep.reports[0].kind != lexer.KindUnterminatedComment {
		t.Fatalf("reports = %v", rep.reports)
	}
}

func TestUnknownChar(t *testing.T) {
	lx, rep := makeTestLexer(t, "a @ b")
	expectKinds(t, kinds(lx), []token.Kind{token.Ident, token.Invalid, token.Ident, token.EOF})
	if len(rep.reports) != 1 || rep.reports[0].kind != lexer.KindUnknownChar {
		t.Fatalf("reports = %v", rep.reports)
	}
}

func TestBackAndCurrent(t *testing.T) {
	lx, _ := makeTestLexer(t, "float4 color = x;")

	if cur := lx.Current(); cur.Kind != token.Invalid {
		t.Fatalf("Current on empty history = %v", cur.Kind)
	}
	lx.Next() // float4
	lx.Next() // color
	third := lx.Next()
	if third.Kind != token.Assign {
		t.Fatalf("third = %v", third.Kind)
	}

	prev := lx.Back()
	if prev.Text != "color" || lx.Current().Text != "color" {
		t.Fatalf("Back returned %q, Current %q", prev.Text, lx.Current().Text)
	}
	// повторное чтение даёт тот же токен с тем же span
	again := lx.Next()
	if again != third {
		t.Fatalf("rescanned %v, want %v", again, third)
	}

	lx.Back()
	lx.Back()
	if first := lx.Back(); first.Kind != token.Invalid {
		t.Fatalf("Back past start = %v", first.Kind)
	}
	if tok := lx.Next(); tok.Text != "float4" {
		t.Fatalf("after full rewind got %q", tok.Text)
	}
}

func TestBackDoesNotDuplicateReports(t *testing.T) {
	lx, rep := makeTestLexer(t, "a $")
	lx.Next()
	lx.Next()
	lx.Back()
	lx.Next()
	if len(rep.reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(rep.reports))
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer(t, "x y")
	lx.Next()
	if p := lx.Peek(); p.Text != "y" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if cur := lx.Current(); cur.Text != "x" {
		t.Fatalf("Current after Peek = %q", cur.Text)
	}
	if depth := lx.Depth(); depth != 1 {
		t.Fatalf("Depth = %d", depth)
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer(t, "  ")
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("got %v", tok.Kind)
		}
	}
}
