// Package shdr re-prints the input shader language. The output of one
// stage is itself a valid source file holding only what the stage uses.
package shdr

import (
	"shaderx/internal/ast"
	"shaderx/internal/gen"
	"shaderx/internal/symbols"
)

type Backend struct{}

func New() *Backend { return &Backend{} }

func (b *Backend) Target() gen.Target { return gen.TargetShdr }

func (b *Backend) DefaultNames() gen.NameOptions { return gen.NameOptions{} }

func (b *Backend) Header(g *gen.Generator) {}

func (b *Backend) ProcessNames(g *gen.Generator) {}

func (b *Backend) FunctionDecl(g *gen.Generator, item *ast.Item) {
	g.FunctionDecl(item, false)
}

// EntryPoint prints the entry like any function; the implicit const of
// the stage input is dropped.
func (b *Backend) EntryPoint(g *gen.Generator, item *ast.Item) {
	fn := g.Syms.Function(item.Func)
	g.Indent()
	g.Write(g.TypeName(fn.Return), " ", g.FunctionName(item.Func), "(")
	for i, p := range g.Syms.Params(item.Func) {
		v := g.Syms.Variable(p)
		if i == 0 {
			g.Write(" ")
		} else {
			g.Write(", ")
		}
		g.Qualifiers(v, i != 0)
		g.Write(g.TypeName(v.Type), " ", g.VariableName(p))
		g.Dims(v)
	}
	g.Write(" )\n")
	g.Block(item.Body)
	g.Write("\n")
}

func (b *Backend) Dot(g *gen.Generator, data *ast.ExprMemberData) {
	g.DefaultDot(data)
}

func (b *Backend) Intrinsic(g *gen.Generator, data *ast.ExprCallData) {
	g.DefaultCall(data, false)
}

func (b *Backend) Structure(g *gen.Generator, s *symbols.Structure) {
	g.Write(s.Kind.String())
	if s.Kind == symbols.StructCBuffer || (s.Kind.IsStageIO() && s.Slot != symbols.NoSlot) {
		g.Printf("( %d )", s.Slot)
	}
	g.Write(" ", g.TypeName(s.Type), "\n{\n")
	g.IndentAdd()
	for _, m := range g.Syms.Members(s.Type) {
		v := g.Syms.Variable(m)
		g.Indent()
		g.Write(g.TypeName(v.Type), " ", g.VariableName(m))
		g.Dims(v)
		if s.Kind.HasTags() {
			g.Write(" semantic( ", v.Semantic.String(), " )")
		}
		if s.Kind == symbols.StructVertexInput {
			g.Write(" format( ", v.Format.String(), " )")
		}
		if s.Kind == symbols.StructFragmentOutput && v.Semantic == symbols.SemanticColor {
			g.Printf(" target( %d )", v.Slot)
		}
		g.Write(";\n")
	}
	g.IndentSub()
	g.Write("};\n\n")
}

func (b *Backend) Texture(g *gen.Generator, tex *symbols.Texture) {
	g.Indent()
	g.Printf("%s( %d ) %s;\n\n", tex.Kind, tex.Slot, g.VariableName(tex.Variable))
}

func (b *Backend) VertexFormat(g *gen.Generator, typ symbols.TypeID) string { return "" }

func (b *Backend) Finish(g *gen.Generator) {}
