package diagfmt_test

import (
	"bytes"
	"strings"
	"testing"

	"shaderx/internal/diag"
	"shaderx/internal/diagfmt"
	"shaderx/internal/source"
)

func fileWithError(t *testing.T) (*source.FileSet, source.Span) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("sprite.shader", []byte("struct A\n{\n\tfloat4 x;\n};\n"))
	// "x" в третьей строке
	off := uint32(strings.Index(string(fs.Get(id).Content), "x;"))
	return fs, source.Span{File: id, Start: off, End: off + 1}
}

func TestPrettyCaretSkipsTabs(t *testing.T) {
	fs, span := fileWithError(t)
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span, "unexpected identifier"))

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})

	want := "SHADER COMPILE ERROR:\n" +
		"File: sprite.shader:3\n\n" +
		"unexpected identifier (SYN2001)\n" +
		"Line 3:\n" +
		"    float4 x;\n" +
		"~~~~~~~~~~~^\n"
	if got := buf.String(); got != want {
		t.Fatalf("pretty output mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyErrorWithoutLocation(t *testing.T) {
	fs, _ := fileWithError(t)
	err := diag.Errorf(diag.GenLayoutConflict, source.Span{}, "vertex format %q redeclared", "Vertex")
	err.Path = "sprite.shader"

	var buf bytes.Buffer
	diagfmt.PrettyError(&buf, err, fs, diagfmt.PrettyOpts{})

	got := buf.String()
	if !strings.HasPrefix(got, "SHADER COMPILE ERROR:\nFile: sprite.shader\n\n") {
		t.Fatalf("unexpected header:\n%s", got)
	}
	if strings.Contains(got, "Line ") {
		t.Fatalf("location-less error must not print a source line:\n%s", got)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs, span := fileWithError(t)
	bag := diag.NewBag(4)
	d := diag.New(diag.SevWarning, diag.IOCacheError, span, "cache write failed").
		WithNote(span, "declared here").
		WithNote(source.Span{File: 99}, "detached")
	bag.Add(d)

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})

	got := buf.String()
	for _, want := range []string{"SHADER COMPILE WARNING:", "note: sprite.shader:3: declared here", "note: detached"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output lacks %q:\n%s", want, got)
		}
	}
}
