package fuzztests

import (
	"context"
	"strings"
	"testing"
	"time"

	"shaderx/internal/compiler"
	"shaderx/internal/diag"
	"shaderx/internal/gen"
	"shaderx/internal/source"
)

// compileTimeout is the maximum time allowed for one input. Longer runs
// point at a loop in error recovery.
const compileTimeout = 5 * time.Second

// FuzzCompile runs every target over arbitrary input. Compilation must end
// with a result or a *diag.Error, never a panic or a bare error.
func FuzzCompile(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), compileTimeout)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			fs := source.NewFileSet()
			id := fs.AddVirtual("fuzz.shader", input)
			for target := range gen.TargetCount {
				bag := diag.NewBag(128)
				_, err := compiler.Compile(ctx, fs, id, compiler.Options{
					Target:   target,
					Reporter: diag.BagReporter{Bag: bag},
				})
				if err != nil {
					if _, ok := diag.AsError(err); !ok && ctx.Err() == nil {
						done <- err
						return
					}
				}
			}
			done <- nil
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("compile returned a non-diagnostic error %v for %q", err, truncateForLog(input, 200))
			}
		case <-ctx.Done():
			t.Fatalf("compile hang detected after %v\ninput (%d bytes): %q",
				compileTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzPragmaSplit checks that region splitting never loses or invents text.
func FuzzPragmaSplit(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		text := string(clampInput(input))
		for stage, r := range compiler.SplitPragmaRegions(text) {
			if r == "" {
				continue
			}
			body, ok := strings.CutPrefix(r, compiler.GLSLHeader)
			if !ok || !strings.Contains(text, body) {
				t.Fatalf("region %d is not taken from the input: %q", stage, truncateForLog([]byte(r), 200))
			}
		}
	})
}
