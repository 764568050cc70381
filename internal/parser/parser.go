package parser

import (
	"context"
	"fmt"
	"io"

	"shaderx/internal/ast"
	"shaderx/internal/diag"
	"shaderx/internal/lexer"
	"shaderx/internal/source"
	"shaderx/internal/symbols"
	"shaderx/internal/token"
)

// Limits bounds the binding slot namespaces.
type Limits struct {
	BufferSlots  int
	TextureSlots int
	TargetSlots  int
}

// DefaultLimits mirrors the runtime's slot tables.
var DefaultLimits = Limits{BufferSlots: 255, TextureSlots: 255, TargetSlots: 8}

func (l Limits) withDefaults() Limits {
	if l.BufferSlots <= 0 {
		l.BufferSlots = DefaultLimits.BufferSlots
	}
	if l.TextureSlots <= 0 {
		l.TextureSlots = DefaultLimits.TextureSlots
	}
	if l.TargetSlots <= 0 {
		l.TargetSlots = DefaultLimits.TargetSlots
	}
	return l
}

type Options struct {
	Limits   Limits
	Reporter diag.Reporter
	Trace    io.Writer // если не nil — печатаем каждый top-level item
}

type Result struct {
	Builder    *ast.Builder
	Symbols    *symbols.Table
	Entries    [symbols.StageCount]symbols.FunctionID
	EntryItems [symbols.StageCount]ast.ItemID
	Bag        *diag.Bag
}

// HasStage reports whether the file declares the entry of stage.
func (r *Result) HasStage(stage symbols.Stage) bool {
	return r.Entries[stage].IsValid()
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	b        *ast.Builder
	syms     *symbols.Table
	opts     Options
	lastSpan source.Span // span последнего съеденного токена

	lexErrs diag.FirstErrorReporter // первая лексическая ошибка, ждёт своего токена

	bufferSlots  []bool
	textureSlots []bool
	targetSlots  []bool

	entries    [symbols.StageCount]symbols.FunctionID
	entryItems [symbols.StageCount]ast.ItemID
}

// ParseFile parses one shader file. Parsing halts at the first error,
// which is returned as *diag.Error and also sent to opts.Reporter.
// The partially built Result is returned either way.
func ParseFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (Result, error) {
	file := fs.Get(id)
	if file == nil {
		return Result{}, fmt.Errorf("parse: unknown file id %d", id)
	}
	opts.Limits = opts.Limits.withDefaults()

	p := &Parser{
		file:         file,
		b:            ast.NewBuilder(ast.Hints{}),
		syms:         symbols.NewTable(),
		opts:         opts,
		bufferSlots:  make([]bool, opts.Limits.BufferSlots),
		textureSlots: make([]bool, opts.Limits.TextureSlots),
		targetSlots:  make([]bool, opts.Limits.TargetSlots),
	}
	p.lx = lexer.New(file, lexer.Options{Reporter: lexer.ReporterAdapter{Reporter: &p.lexErrs}})
	for i := range p.entries {
		p.entries[i] = symbols.NoFunctionID
	}

	err := p.run(ctx)

	var bag *diag.Bag
	switch br := opts.Reporter.(type) {
	case diag.BagReporter:
		bag = br.Bag
	case *diag.BagReporter:
		bag = br.Bag
	}
	return Result{
		Builder:    p.b,
		Symbols:    p.syms,
		Entries:    p.entries,
		EntryItems: p.entryItems,
		Bag:        bag,
	}, err
}

func (p *Parser) run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if b, ok := r.(bailout); ok {
				err = b.err
				return
			}
			panic(r)
		}
	}()

	p.next()
	for !p.at(token.EOF) {
		if err := ctx.Err(); err != nil {
			return err
		}
		item := p.parseItem()
		p.b.PushItem(item)
		p.trace(item)
	}

	for _, fn := range p.entries {
		if fn.IsValid() {
			return nil
		}
	}
	p.fail(diag.SemaNoEntryPoint, p.lastSpan,
		"shader does not implement a main function!\n\nmust implement vertex_main(), fragment_main(), or compute_main()")
	return nil
}

// parseItem выбирает распознаватель top-level конструкции по первому токену.
func (p *Parser) parseItem() ast.ItemID {
	switch k := p.tok().Kind; {
	case k.IsStruct():
		return p.parseStructure()
	case k.IsTexture():
		return p.parseTexture()
	case k == token.Ident:
		return p.parseFunction()
	default:
		p.fail(diag.SynUnexpectedTopLevel, p.tok().Span, "unexpected program-level token '%s'", describe(p.tok()))
		return ast.NoItemID
	}
}

func (p *Parser) trace(id ast.ItemID) {
	if p.opts.Trace == nil {
		return
	}
	item := p.b.Items.Get(id)
	pos := p.file.Position(item.Span.Start)
	name := ""
	switch item.Kind {
	case ast.ItemStruct:
		name = p.syms.TypeName(p.syms.Struct(item.Struct).Type)
	case ast.ItemTexture:
		name = p.syms.Variable(p.syms.Texture(item.Texture).Variable).Name
	case ast.ItemFunc:
		name = p.syms.Function(item.Func).Name
	}
	fmt.Fprintf(p.opts.Trace, "%s:%d: %s %s\n", p.file.Path, pos.Line, item.Kind, name)
}
