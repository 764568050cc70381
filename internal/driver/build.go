// Package driver builds a set of shader files: it compiles them in
// parallel, assigns layout IDs in a fixed order, packs the stage text and
// writes the generated files.
package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"shaderx/internal/compiler"
	"shaderx/internal/diag"
	"shaderx/internal/gen"
	"shaderx/internal/layout"
	"shaderx/internal/observ"
	"shaderx/internal/parser"
	"shaderx/internal/source"
)

// Options configure Build.
type Options struct {
	Target         gen.Target
	Names          *gen.NameOptions
	Limits         parser.Limits
	Jobs           int // <= 0 means GOMAXPROCS
	MaxDiagnostics int
	Cache          *DiskCache // nil disables caching
	Sink           ProgressSink
	Timer          *observ.Timer
}

// FileResult is the outcome of one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Result *compiler.Result
	Bag    *diag.Bag
	Err    error
	Cached bool
}

// BuildResult holds everything a build produced. Files keep the order of
// the input paths.
type BuildResult struct {
	FileSet  *source.FileSet
	Files    []FileResult
	Registry *layout.Registry
	Blob     *compiler.Blob
	Gfx      compiler.GfxFiles
	Target   gen.Target
}

// ErrBuildFailed is returned when at least one file failed to compile.
// The per-file errors are in BuildResult.Files.
var ErrBuildFailed = errors.New("build failed")

// Results returns the compiled results in input order.
func (b *BuildResult) Results() []*compiler.Result {
	out := make([]*compiler.Result, 0, len(b.Files))
	for _, f := range b.Files {
		if f.Result != nil {
			out = append(out, f.Result)
		}
	}
	return out
}

// FirstError returns the first failed file in input order.
func (b *BuildResult) FirstError() (FileResult, bool) {
	for _, f := range b.Files {
		if f.Err != nil {
			return f, true
		}
	}
	return FileResult{}, false
}

// Build compiles paths concurrently. Every file gets its own compiler
// instance; only the layout registry is shared, and layouts are registered
// after all files finish, in input order, so IDs do not depend on
// scheduling. A compile error in one file does not stop the others.
func Build(ctx context.Context, paths []string, opts Options) (*BuildResult, error) {
	fileSet := source.NewFileSet()
	out := &BuildResult{
		FileSet:  fileSet,
		Files:    make([]FileResult, len(paths)),
		Registry: layout.NewRegistry(),
		Target:   opts.Target,
	}
	if len(paths) == 0 {
		return out, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		emit(opts.Sink, Event{File: path, Status: StatusQueued})
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out.Files[i] = compileFile(gctx, fileSet, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	if _, failed := out.FirstError(); failed {
		return out, ErrBuildFailed
	}

	emit(opts.Sink, Event{Stage: "layouts", Status: StatusWorking})
	phase := beginPhase(opts.Timer, "layouts")
	for i := range out.Files {
		f := &out.Files[i]
		if err := compiler.RegisterLayouts(out.Registry, f.Result); err != nil {
			f.Err = err
			endPhase(opts.Timer, phase, "")
			emit(opts.Sink, Event{File: f.Path, Stage: "layouts", Status: StatusError, Err: err})
			return out, ErrBuildFailed
		}
	}
	endPhase(opts.Timer, phase, "")

	emit(opts.Sink, Event{Stage: "pack", Status: StatusWorking})
	phase = beginPhase(opts.Timer, "pack")
	results := out.Results()
	blob, err := compiler.Pack(results)
	endPhase(opts.Timer, phase, "")
	if err != nil {
		return out, err
	}
	out.Blob = blob
	out.Gfx = compiler.WriteGfx(blob, results, out.Registry, opts.Target)
	return out, nil
}

func compileFile(ctx context.Context, fileSet *source.FileSet, path string, opts Options) FileResult {
	start := time.Now()
	res := FileResult{Path: path, Bag: diag.NewBag(maxDiagnostics(opts.MaxDiagnostics))}
	emit(opts.Sink, Event{File: path, Status: StatusWorking})

	fail := func(err error) FileResult {
		res.Err = err
		emit(opts.Sink, Event{File: path, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		return res
	}

	fileID, err := fileSet.Load(path)
	if err != nil {
		de := diag.Errorf(diag.IOLoadFileError, source.Span{}, "failed to load file: %v", err)
		de.Path = path
		return fail(de)
	}
	res.FileID = fileID
	file := fileSet.Get(fileID)

	key := CacheKey(file, opts.Target, opts.Names, opts.Limits)
	if cached, ok, err := opts.Cache.Get(key, path, opts.Target); err == nil && ok {
		res.Result = cached
		res.Cached = true
		emit(opts.Sink, Event{File: path, Status: StatusCached, Elapsed: time.Since(start)})
		return res
	}

	var r *compiler.Result
	if compiler.IsPragmaSource(path) {
		if opts.Target != gen.TargetGLSL {
			de := diag.Errorf(diag.GenInfo, source.Span{}, "hand-written GLSL cannot be compiled for %s", opts.Target)
			de.Path = path
			return fail(de)
		}
		r, err = compiler.CompilePragma(fileSet, fileID)
	} else {
		r, err = compiler.Compile(ctx, fileSet, fileID, compiler.Options{
			Target:   opts.Target,
			Names:    opts.Names,
			Limits:   opts.Limits,
			Reporter: diag.BagReporter{Bag: res.Bag},
			Timer:    opts.Timer,
		})
	}
	if err != nil {
		return fail(err)
	}
	res.Result = r

	if err := opts.Cache.Put(key, r); err != nil {
		de := diag.Errorf(diag.IOCacheError, source.Span{}, "failed to write cache entry: %v", err)
		de.Diagnostic.Severity = diag.SevWarning
		res.Bag.Add(de.Diagnostic)
	}
	emit(opts.Sink, Event{File: path, Status: StatusDone, Elapsed: time.Since(start)})
	return res
}

func maxDiagnostics(n int) int {
	if n <= 0 {
		return 100
	}
	return n
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

// Describe formats a FileResult error for logs.
func (f FileResult) Describe() string {
	if f.Err == nil {
		return f.Path + ": ok"
	}
	if de, ok := diag.AsError(f.Err); ok && de.Path != "" {
		return de.Error()
	}
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}
