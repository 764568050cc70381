package lexer

import (
	"testing"

	"shaderx/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.shader", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	c := NewCursor(createFile("ab"))
	if c.Peek() != 'a' || c.PeekAt(1) != 'b' || c.PeekAt(2) != 0 {
		t.Fatal("peek mismatch")
	}
	m := c.Mark()
	c.Bump()
	c.Bump()
	if !c.EOF() || c.Bump() != 0 {
		t.Fatal("expected EOF")
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	c.Reset(m)
	if !c.Eat('a') || c.Eat('a') {
		t.Fatal("Eat mismatch")
	}
}
