// Package gen turns a parsed shader into per-stage source text.
//
// The Generator walks the items a reach.Seen set marks and prints
// statements and expressions in a target-neutral C-like form. A Backend
// supplies everything that differs between output languages: names,
// structure and texture declarations, entry points, member access and
// intrinsics. One Generator and one Backend serve exactly one stage.
package gen

import (
	"fmt"
	"strings"

	"shaderx/internal/ast"
	"shaderx/internal/diag"
	"shaderx/internal/layout"
	"shaderx/internal/reach"
	"shaderx/internal/source"
	"shaderx/internal/symbols"
)

// NameOptions are the prefixes applied to user identifiers.
// Built-ins and structure members are never prefixed.
type NameOptions struct {
	TypePrefix     string
	FunctionPrefix string
	VariablePrefix string
}

// Options configure one Generator.
type Options struct {
	// Names overrides the back end's default prefixes when non-nil.
	Names *NameOptions
}

// Backend is the per-language part of code generation.
type Backend interface {
	Target() Target
	DefaultNames() NameOptions

	// Header is written before the first item; ProcessNames may rewrite
	// the name tables filled from NameOptions.
	Header(g *Generator)
	ProcessNames(g *Generator)

	FunctionDecl(g *Generator, item *ast.Item)
	EntryPoint(g *Generator, item *ast.Item)
	Dot(g *Generator, data *ast.ExprMemberData)
	Intrinsic(g *Generator, data *ast.ExprCallData)
	Structure(g *Generator, s *symbols.Structure)
	Texture(g *Generator, tex *symbols.Texture)

	// VertexFormat returns side text for a vertex_input layout, or "".
	VertexFormat(g *Generator, typ symbols.TypeID) string

	Finish(g *Generator)
}

// Output is the generated text of one stage.
type Output struct {
	Stage  symbols.Stage
	Target Target
	Text   string

	// Decls lists the vertex formats and cbuffers the stage uses, in file order.
	Decls []layout.Decl
}

// Empty reports whether the stage is absent from the file.
func (o *Output) Empty() bool { return o == nil || o.Text == "" }

// Generator holds the output buffer and name tables of one stage.
type Generator struct {
	B     *ast.Builder
	Syms  *symbols.Table
	Stage symbols.Stage
	Seen  *reach.Seen
	Names NameOptions

	TypeNames     []string
	FunctionNames []string
	VariableNames []string

	backend Backend
	out     strings.Builder
	indent  int
	decls   []layout.Decl
	err     error
}

// New creates a generator for one stage of a parsed file.
func New(b *ast.Builder, syms *symbols.Table, backend Backend, opts Options) *Generator {
	names := backend.DefaultNames()
	if opts.Names != nil {
		names = *opts.Names
	}
	return &Generator{
		B:       b,
		Syms:    syms,
		Names:   names,
		backend: backend,
	}
}

// Backend returns the back end the generator was created with.
func (g *Generator) Backend() Backend { return g.backend }

// Generate emits every seen item of the stage. A Seen without an entry
// yields an empty Output and no error.
func (g *Generator) Generate(stage symbols.Stage, seen *reach.Seen) (*Output, error) {
	out := &Output{Stage: stage, Target: g.backend.Target()}
	if seen == nil || !seen.HasEntry {
		return out, nil
	}
	g.Stage = stage
	g.Seen = seen
	g.out.Reset()
	g.indent = 0
	g.decls = nil
	g.err = nil

	g.defaultNames()
	g.backend.ProcessNames(g)
	g.backend.Header(g)

	for _, id := range g.B.Program {
		if g.err != nil {
			break
		}
		if !seen.Item(g.B, g.Syms, id) {
			continue
		}
		item := g.B.Items.Get(id)
		switch item.Kind {
		case ast.ItemStruct:
			g.structure(g.Syms.Struct(item.Struct))
		case ast.ItemTexture:
			g.backend.Texture(g, g.Syms.Texture(item.Texture))
		case ast.ItemFunc:
			if item.Func == seen.Entry {
				g.backend.EntryPoint(g, item)
			} else {
				g.backend.FunctionDecl(g, item)
			}
		}
	}
	if g.err == nil {
		g.backend.Finish(g)
	}
	if g.err != nil {
		return nil, g.err
	}
	out.Text = g.out.String()
	out.Decls = g.decls
	return out, nil
}

func (g *Generator) structure(s *symbols.Structure) {
	switch s.Kind {
	case symbols.StructVertexInput:
		g.decls = append(g.decls, layout.Decl{
			Kind:   layout.DeclVertexFormat,
			Name:   g.Syms.Type(s.Type).Name,
			Stage:  g.Stage,
			Slot:   s.Slot,
			Fields: g.Fields(s.Type),
			Target: g.backend.Target().String(),
			Side:   g.backend.VertexFormat(g, s.Type),
		})
	case symbols.StructCBuffer:
		g.decls = append(g.decls, layout.Decl{
			Kind:   layout.DeclConstantBuffer,
			Name:   g.Syms.Type(s.Type).Name,
			Stage:  g.Stage,
			Slot:   s.Slot,
			Fields: g.Fields(s.Type),
		})
	}
	g.backend.Structure(g, s)
}

// Fields converts structure members to layout fields.
func (g *Generator) Fields(typ symbols.TypeID) []layout.Field {
	members := g.Syms.Members(typ)
	fields := make([]layout.Field, 0, len(members))
	for _, m := range members {
		v := g.Syms.Variable(m)
		fields = append(fields, layout.Field{
			Name:   v.Name,
			Type:   v.Type,
			ArrayX: v.ArrayX,
			ArrayY: v.ArrayY,
			Format: v.Format,
		})
	}
	return fields
}

// Fail records the first error; later output is discarded.
func (g *Generator) Fail(err error) {
	if g.err == nil && err != nil {
		g.err = err
	}
}

// Failf records a generator diagnostic at span.
func (g *Generator) Failf(code diag.Code, span source.Span, format string, args ...any) {
	g.Fail(diag.Errorf(code, span, format, args...))
}

// Err returns the recorded error, if any.
func (g *Generator) Err() error { return g.err }

// Write appends text verbatim.
func (g *Generator) Write(parts ...string) {
	for _, s := range parts {
		g.out.WriteString(s)
	}
}

// Printf appends formatted text.
func (g *Generator) Printf(format string, args ...any) {
	fmt.Fprintf(&g.out, format, args...)
}

// Indent writes the current indentation.
func (g *Generator) Indent() {
	for range g.indent {
		g.out.WriteByte('\t')
	}
}

func (g *Generator) IndentAdd() { g.indent++ }

func (g *Generator) IndentSub() {
	if g.indent > 0 {
		g.indent--
	}
}

// LeadingNewline separates a compound statement from preceding code.
func (g *Generator) LeadingNewline() {
	n := g.out.Len()
	if n >= 2 && g.out.String()[n-2] != '\n' {
		g.out.WriteByte('\n')
	}
}

// Len returns the number of bytes written so far.
func (g *Generator) Len() int { return g.out.Len() }

// defaultNames fills the name tables from Names.
func (g *Generator) defaultNames() {
	g.TypeNames = make([]string, len(g.Syms.Types))
	for i := range g.Syms.Types {
		t := &g.Syms.Types[i]
		if t.Builtin {
			g.TypeNames[i] = t.Name
			continue
		}
		g.TypeNames[i] = g.Names.TypePrefix + t.Name
	}

	g.FunctionNames = make([]string, len(g.Syms.Functions))
	for i := range g.Syms.Functions {
		fn := &g.Syms.Functions[i]
		if fn.Builtin {
			g.FunctionNames[i] = fn.Name
			continue
		}
		g.FunctionNames[i] = g.Names.FunctionPrefix + fn.Name
	}

	g.VariableNames = make([]string, len(g.Syms.Variables))
	for i := range g.Syms.Variables {
		v := &g.Syms.Variables[i]
		if v.Member {
			g.VariableNames[i] = v.Name
			continue
		}
		g.VariableNames[i] = g.Names.VariablePrefix + v.Name
	}
}

func (g *Generator) TypeName(id symbols.TypeID) string {
	if int(id) < len(g.TypeNames) {
		return g.TypeNames[id]
	}
	return g.Syms.TypeName(id)
}

func (g *Generator) FunctionName(id symbols.FunctionID) string {
	if int(id) < len(g.FunctionNames) {
		return g.FunctionNames[id]
	}
	return g.Syms.Function(id).Name
}

func (g *Generator) VariableName(id symbols.VariableID) string {
	if int(id) < len(g.VariableNames) {
		return g.VariableNames[id]
	}
	return g.Syms.Variable(id).Name
}

// IsCBuffer reports whether typ is a cbuffer structure type.
func (g *Generator) IsCBuffer(typ symbols.TypeID) bool {
	if !typ.IsValid() || int(typ) >= len(g.Syms.Types) {
		return false
	}
	t := g.Syms.Type(typ)
	return !t.Builtin && t.Kind == symbols.StructCBuffer
}

// TargetVariable returns the variable a member access reads from when
// its left-hand side is a plain variable reference.
func (g *Generator) TargetVariable(data *ast.ExprMemberData) (symbols.VariableID, bool) {
	v, ok := g.B.Exprs.Variable(data.Target)
	if !ok {
		return symbols.NoVariableID, false
	}
	return v.Var, true
}

// FieldVariable returns the member a member access selects, if it is not a swizzle.
func (g *Generator) FieldVariable(data *ast.ExprMemberData) (symbols.VariableID, bool) {
	v, ok := g.B.Exprs.Variable(data.Field)
	if !ok {
		return symbols.NoVariableID, false
	}
	return v.Var, true
}
