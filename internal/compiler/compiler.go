// Package compiler runs one shader file through parsing, per-stage
// reachability and code generation, and turns a set of compiled files
// into the packed shader blob and its C++ tables.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"shaderx/internal/diag"
	"shaderx/internal/gen"
	"shaderx/internal/gen/glsl"
	"shaderx/internal/gen/hlsl"
	"shaderx/internal/gen/shdr"
	"shaderx/internal/layout"
	"shaderx/internal/observ"
	"shaderx/internal/parser"
	"shaderx/internal/reach"
	"shaderx/internal/source"
	"shaderx/internal/symbols"
)

// Options configure a single compilation.
type Options struct {
	Target   gen.Target
	Names    *gen.NameOptions
	Limits   parser.Limits
	Reporter diag.Reporter
	Timer    *observ.Timer // optional
}

// CBufferBinding is one cbuffer a stage binds.
type CBufferBinding struct {
	ID   uint32
	Slot int
	Name string
}

// Result is one compiled shader file.
type Result struct {
	Name   string
	Path   string
	Target gen.Target
	Stages [symbols.StageCount]*gen.Output

	// Filled by RegisterLayouts.
	VertexFormat uint32
	CBuffers     [symbols.StageCount][]CBufferBinding
}

// HasStage reports whether the file produced code for stage.
func (r *Result) HasStage(stage symbols.Stage) bool {
	return !r.Stages[stage].Empty()
}

// ShaderName derives the shader identifier from a file path.
func ShaderName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// NewBackend returns a fresh back end for target. Back ends keep
// per-stage state, so each stage needs its own.
func NewBackend(target gen.Target) (gen.Backend, error) {
	switch target {
	case gen.TargetShdr:
		return shdr.New(), nil
	case gen.TargetGLSL:
		return glsl.New(), nil
	case gen.TargetHLSL:
		return hlsl.New(), nil
	default:
		return nil, fmt.Errorf("compiler: unsupported target %s", target)
	}
}

// Compile parses the file once and generates every stage it declares.
// The first error stops compilation; compile errors are *diag.Error
// carrying the file path.
func Compile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (*Result, error) {
	file := fs.Get(id)
	if file == nil {
		return nil, fmt.Errorf("compiler: unknown file id %d", id)
	}

	phase := beginPhase(opts.Timer, "parse")
	res, err := parser.ParseFile(ctx, fs, id, parser.Options{Limits: opts.Limits, Reporter: opts.Reporter})
	endPhase(opts.Timer, phase, file.Path)
	if err != nil {
		return nil, withPath(err, file.Path)
	}

	out := &Result{
		Name:         ShaderName(file.Path),
		Path:         file.Path,
		Target:       opts.Target,
		VertexFormat: 0,
	}
	for stage := range symbols.StageCount {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		backend, err := NewBackend(opts.Target)
		if err != nil {
			return nil, err
		}
		phase := beginPhase(opts.Timer, "generate "+stage.String())
		seen := reach.Analyze(res.Builder, res.Symbols, res.EntryItems[stage])
		g := gen.New(res.Builder, res.Symbols, backend, gen.Options{Names: opts.Names})
		o, err := g.Generate(stage, &seen)
		endPhase(opts.Timer, phase, "")
		if err != nil {
			return nil, withPath(err, file.Path)
		}
		out.Stages[stage] = o
	}
	return out, nil
}

// RegisterLayouts adds the vertex formats and cbuffers of r to reg in
// stage and file order, and records the IDs on r. Registering results in
// a fixed order makes IDs independent of compile scheduling.
func RegisterLayouts(reg *layout.Registry, r *Result) error {
	for stage := range symbols.StageCount {
		r.CBuffers[stage] = r.CBuffers[stage][:0]
		o := r.Stages[stage]
		if o == nil {
			continue
		}
		for _, d := range o.Decls {
			id, err := reg.Register(d)
			if err != nil {
				return layoutError(err, r.Path)
			}
			switch d.Kind {
			case layout.DeclVertexFormat:
				r.VertexFormat = id
			case layout.DeclConstantBuffer:
				r.CBuffers[stage] = append(r.CBuffers[stage], CBufferBinding{ID: id, Slot: d.Slot, Name: d.Name})
			}
		}
	}
	return nil
}

func layoutError(err error, path string) error {
	var le *layout.LayoutError
	if errors.As(err, &le) && le.Kind == layout.LayoutErrConflict {
		de := diag.Errorf(diag.GenLayoutConflict, source.Span{}, "%s", le.Error())
		de.Path = path
		return de
	}
	return fmt.Errorf("%s: %w", path, err)
}

func withPath(err error, path string) error {
	if de, ok := diag.AsError(err); ok && de.Path == "" {
		de.Path = path
	}
	return err
}

func beginPhase(t *observ.Timer, name string) int {
	if t == nil {
		return -1
	}
	return t.Begin(name)
}

func endPhase(t *observ.Timer, idx int, note string) {
	if t != nil {
		t.End(idx, note)
	}
}
