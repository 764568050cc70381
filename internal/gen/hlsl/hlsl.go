// Package hlsl emits HLSL (shader model 5) source and the D3D11 input
// layout descriptions of vertex formats.
package hlsl

import (
	"fmt"
	"strings"

	"shaderx/internal/ast"
	"shaderx/internal/diag"
	"shaderx/internal/gen"
	"shaderx/internal/symbols"
)

// Backend implements gen.Backend for HLSL. cbuffer members live in the
// global namespace as <Name>_<member>; stage structures keep their
// shape and gain semantics.
type Backend struct {
	sampler bool // GlobalSampler already declared for this stage
}

func New() *Backend { return &Backend{} }

func (b *Backend) Target() gen.Target { return gen.TargetHLSL }

func (b *Backend) DefaultNames() gen.NameOptions { return gen.NameOptions{} }

func (b *Backend) Header(g *gen.Generator) {
	b.sampler = false
}

func (b *Backend) ProcessNames(g *gen.Generator) {}

func (b *Backend) FunctionDecl(g *gen.Generator, item *ast.Item) {
	g.FunctionDecl(item, true)
}

var entryNames = [symbols.StageCount]string{"vs_main", "ps_main", "cs_main"}

func (b *Backend) EntryPoint(g *gen.Generator, item *ast.Item) {
	params := g.Syms.Params(item.Func)
	if len(params) < 2 {
		fn := g.Syms.Function(item.Func)
		g.Failf(diag.GenInfo, fn.Span, "HLSL: %s: entry point needs input and output parameters", fn.Name)
		return
	}
	in, out := params[0], params[1]
	g.Indent()
	g.Printf("void %s( in %s %s, out %s %s )\n",
		entryNames[g.Stage],
		g.TypeName(g.Syms.Variable(in).Type), g.VariableName(in),
		g.TypeName(g.Syms.Variable(out).Type), g.VariableName(out))
	g.Block(item.Body)
	g.Write("\n")
}

func (b *Backend) Dot(g *gen.Generator, data *ast.ExprMemberData) {
	if v, ok := g.TargetVariable(data); ok {
		if typ := g.Syms.Variable(v).Type; g.IsCBuffer(typ) {
			g.Write(g.TypeName(typ), "_")
			g.Expr(data.Field)
			return
		}
	}
	g.DefaultDot(data)
}

func (b *Backend) Intrinsic(g *gen.Generator, data *ast.ExprCallData) {
	switch {
	case data.Func == symbols.IntrinsicSampleTexture2DLevel:
		g.Expr(gen.Arg(data, 0))
		g.Write(".SampleLevel( GlobalSampler, ")
		g.Expr(gen.Arg(data, 1))
		g.Write(", 0 )")
	case symbols.IsSampleIntrinsic(data.Func):
		g.Expr(gen.Arg(data, 0))
		g.Write(".Sample( GlobalSampler, ")
		g.Expr(gen.Arg(data, 1))
		g.Write(" )")
	default:
		g.DefaultCall(data, true)
	}
}

func (b *Backend) Structure(g *gen.Generator, s *symbols.Structure) {
	name := g.TypeName(s.Type)
	if s.Kind == symbols.StructCBuffer {
		g.Printf("cbuffer %s : register( b%d )\n{\n", name, s.Slot)
	} else {
		g.Write("struct ", name, "\n{\n")
	}

	tagged := s.Kind.HasTags() && s.Kind != symbols.StructComputeInput && s.Kind != symbols.StructComputeOutput
	var counters [symbols.SemanticCount]int

	g.IndentAdd()
	for _, m := range g.Syms.Members(s.Type) {
		v := g.Syms.Variable(m)
		g.Indent()
		g.Write(g.TypeName(v.Type), " ")
		if s.Kind == symbols.StructCBuffer {
			g.Write(name, "_")
		}
		g.Write(g.VariableName(m))
		g.Dims(v)
		if tagged {
			sem, ok := semanticName(s.Kind, v, &counters)
			if !ok {
				g.Failf(diag.GenUnsupportedSemantic, v.Span, "HLSL: %s: unsupported semantic %s", s.Kind, v.Semantic)
				return
			}
			g.Write(" : ", sem)
		}
		g.Write(";\n")
	}
	g.IndentSub()
	g.Write("};\n\n")
}

// semanticName resolves the HLSL semantic of a stage member. Indexed
// semantics count per structure; an explicit member slot wins.
func semanticName(kind symbols.StructKind, v *symbols.Variable, counters *[symbols.SemanticCount]int) (string, bool) {
	var base string
	switch kind {
	case symbols.StructVertexInput:
		switch v.Semantic {
		case symbols.SemanticPosition:
			base = "POSITION"
		case symbols.SemanticTexcoord:
			base = "TEXCOORD"
		case symbols.SemanticNormal:
			base = "NORMAL"
		case symbols.SemanticColor:
			base = "COLOR"
		default:
			return "", false
		}
	case symbols.StructVertexOutput, symbols.StructFragmentInput:
		switch v.Semantic {
		case symbols.SemanticPosition:
			return "SV_POSITION", true
		case symbols.SemanticTexcoord:
			base = "TEXCOORD"
		case symbols.SemanticNormal:
			base = "NORMAL"
		case symbols.SemanticColor:
			base = "COLOR"
		default:
			return "", false
		}
	case symbols.StructFragmentOutput:
		switch v.Semantic {
		case symbols.SemanticDepth:
			return "SV_DEPTH", true
		case symbols.SemanticColor:
			base = "SV_TARGET"
		default:
			return "", false
		}
	default:
		return "", false
	}

	idx := counters[v.Semantic]
	if v.Slot != symbols.NoSlot {
		idx = v.Slot
	}
	counters[v.Semantic]++
	return fmt.Sprintf("%s%d", base, idx), true
}

func (b *Backend) Texture(g *gen.Generator, tex *symbols.Texture) {
	v := g.Syms.Variable(tex.Variable)
	g.Indent()
	g.Printf("%s %s : register( t%d );\n", g.TypeName(v.Type), g.VariableName(tex.Variable), tex.Slot)
	if !b.sampler {
		g.Indent()
		g.Write("SamplerState GlobalSampler : register( s0 );\n\n")
		b.sampler = true
	}
}

func (b *Backend) Finish(g *gen.Generator) {}

// dxgiFormat returns the DXGI element format and its byte size for a
// vertex member of the given width. Three 8/16-bit components are
// padded to four because DXGI has no such formats.
func dxgiFormat(f symbols.Format, width uint32) (string, uint32) {
	bits := f.Size() * 8
	var suffix string
	switch f {
	case symbols.FormatUNORM8, symbols.FormatUNORM16, symbols.FormatUNORM32:
		suffix = "UNORM"
	case symbols.FormatSNORM8, symbols.FormatSNORM16, symbols.FormatSNORM32:
		suffix = "SNORM"
	case symbols.FormatUINT8, symbols.FormatUINT16, symbols.FormatUINT32:
		suffix = "UINT"
	case symbols.FormatSINT8, symbols.FormatSINT16, symbols.FormatSINT32:
		suffix = "SINT"
	default:
		suffix = "FLOAT"
	}

	channels := width
	if channels == 3 && bits < 32 {
		channels = 4
	}
	if bits == 32 && channels >= 3 && (f == symbols.FormatUNORM32 || f == symbols.FormatSNORM32) {
		suffix = "TYPELESS"
	}

	var sb strings.Builder
	sb.WriteString("DXGI_FORMAT_")
	for i := range channels {
		fmt.Fprintf(&sb, "%c%d", "RGBA"[i], bits)
	}
	sb.WriteString("_")
	sb.WriteString(suffix)
	return sb.String(), bits / 8 * channels
}

// VertexFormat renders the D3D11 input element table of a vertex_input layout.
func (b *Backend) VertexFormat(g *gen.Generator, typ symbols.TypeID) string {
	raw := g.Syms.Type(typ).Name
	members := g.Syms.Members(typ)

	var sb strings.Builder
	fmt.Fprintf(&sb, "static void d3d11_vertex_input_layout_desc_%s( D3D11VertexInputLayoutDescription &desc )\n{\n", raw)
	sb.WriteString("\tstatic D3D11_INPUT_ELEMENT_DESC inputDescription[] = \n\t{\n")

	var counters [symbols.SemanticCount]int
	offset := uint32(0)
	for _, m := range members {
		v := g.Syms.Variable(m)
		format, size := dxgiFormat(v.Format, symbols.Width(v.Type))
		fmt.Fprintf(&sb, "\t\t{ \"%s\", %d, %s, 0, %d, D3D11_INPUT_PER_VERTEX_DATA, 0 },\n",
			v.Semantic, counters[v.Semantic], format, offset)
		counters[v.Semantic]++
		offset += size
	}
	sb.WriteString("\t};\n\n")
	sb.WriteString("\tdesc.desc = inputDescription;\n")
	fmt.Fprintf(&sb, "\tdesc.count = %d;\n", len(members))
	sb.WriteString("}\n\n")
	return sb.String()
}
