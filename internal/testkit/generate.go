package testkit

import (
	"context"
	"testing"

	"shaderx/internal/gen"
	"shaderx/internal/parser"
	"shaderx/internal/reach"
	"shaderx/internal/source"
	"shaderx/internal/symbols"
)

// Parse parses src as a virtual file and fails the test on error.
func Parse(t testing.TB, name, src string) parser.Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	res, err := parser.ParseFile(context.Background(), fs, id, parser.Options{})
	if err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	return res
}

// Generate runs one stage of res through backend.
func Generate(res parser.Result, backend gen.Backend, stage symbols.Stage) (*gen.Output, error) {
	seen := reach.Analyze(res.Builder, res.Symbols, res.EntryItems[stage])
	g := gen.New(res.Builder, res.Symbols, backend, gen.Options{})
	return g.Generate(stage, &seen)
}

// MustGenerate is Generate that fails the test on error.
func MustGenerate(t testing.TB, res parser.Result, backend gen.Backend, stage symbols.Stage) *gen.Output {
	t.Helper()
	out, err := Generate(res, backend, stage)
	if err != nil {
		t.Fatalf("generate %s: %v", stage, err)
	}
	return out
}
