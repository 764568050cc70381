// Package glsl emits GLSL 4.10 core shaders.
package glsl

import (
	"fmt"
	"strings"

	"shaderx/internal/ast"
	"shaderx/internal/gen"
	"shaderx/internal/symbols"
)

var primitives = [symbols.PrimitiveCount]string{
	"void",
	"bool", "bvec2", "bvec3", "bvec4",
	"int", "ivec2", "ivec3", "ivec4",
	"uint", "uvec2", "uvec3", "uvec4",
	"float", "vec2", "vec3", "vec4",
	"mat2", "mat3", "mat4",
	"double", "dvec2", "dvec3", "dvec4",
	"dmat2", "dmat3", "dmat4",
	"sampler1D", "sampler1DArray", "sampler2D", "sampler2DArray",
	"sampler3D", "samplerCube", "samplerCubeArray",
}

// Backend implements gen.Backend for GLSL. Stage inputs and outputs
// become global in/out variables named <Struct>_<member>; members bound
// to pipeline built-ins are read and written as gl_* variables.
type Backend struct {
	builtins map[symbols.VariableID]string
}

func New() *Backend {
	return &Backend{builtins: make(map[symbols.VariableID]string)}
}

func (b *Backend) Target() gen.Target { return gen.TargetGLSL }

func (b *Backend) DefaultNames() gen.NameOptions {
	return gen.NameOptions{TypePrefix: "t_", FunctionPrefix: "f_", VariablePrefix: "v_"}
}

func (b *Backend) Header(g *gen.Generator) {
	g.Write("#version 410 core\n\n")
}

func (b *Backend) ProcessNames(g *gen.Generator) {
	copy(g.TypeNames, primitives[:])

	for i := range g.Syms.Variables {
		v := &g.Syms.Variables[i]
		if v.Texture.IsValid() {
			g.VariableNames[i] = fmt.Sprintf("u_texture%d", g.Syms.Texture(v.Texture).Slot)
		}
	}

	clear(b.builtins)
	for i := range g.Syms.Structs {
		s := &g.Syms.Structs[i]
		for _, m := range g.Syms.Members(s.Type) {
			if name, ok := builtin(s.Kind, g.Syms.Variable(m).Semantic); ok {
				b.builtins[m] = name
			}
		}
	}
}

// builtin maps a stage member to the GLSL variable that replaces it.
func builtin(kind symbols.StructKind, sem symbols.Semantic) (string, bool) {
	switch {
	case kind == symbols.StructVertexOutput && sem == symbols.SemanticPosition:
		return "gl_Position", true
	case kind == symbols.StructFragmentInput && sem == symbols.SemanticPosition:
		return "gl_FragCoord", true
	case kind == symbols.StructFragmentOutput && sem == symbols.SemanticDepth:
		return "gl_FragDepth", true
	}
	return "", false
}

// Builtin returns the gl_* name bound to a member, if any.
func (b *Backend) Builtin(id symbols.VariableID) (string, bool) {
	name, ok := b.builtins[id]
	return name, ok
}

func (b *Backend) FunctionDecl(g *gen.Generator, item *ast.Item) {
	g.FunctionDecl(item, true)
}

func (b *Backend) EntryPoint(g *gen.Generator, item *ast.Item) {
	g.Indent()
	g.Write("void main()\n")
	g.Block(item.Body)
	g.Write("\n")
}

func (b *Backend) Dot(g *gen.Generator, data *ast.ExprMemberData) {
	if v, ok := g.TargetVariable(data); ok {
		typ := g.Syms.Variable(v).Type
		if t := g.Syms.Type(typ); !t.Builtin && t.Global {
			if m, ok := g.FieldVariable(data); ok {
				if name, ok := b.builtins[m]; ok {
					g.Write(name)
					return
				}
				g.Write(g.TypeName(typ), "_", g.VariableName(m))
				return
			}
		}
	}
	g.DefaultDot(data)
}

func (b *Backend) Intrinsic(g *gen.Generator, data *ast.ExprCallData) {
	switch {
	case data.Func == symbols.IntrinsicMul:
		g.Write("( ( ")
		g.Expr(gen.Arg(data, 0))
		g.Write(" ) * ( ")
		g.Expr(gen.Arg(data, 1))
		g.Write(" ) )")
	case data.Func == symbols.IntrinsicSampleTexture2DLevel:
		g.Write("textureLod( ")
		g.Expr(gen.Arg(data, 0))
		g.Write(", ")
		g.Expr(gen.Arg(data, 1))
		g.Write(", 0.0 )")
	case symbols.IsSampleIntrinsic(data.Func):
		g.Write("texture( ")
		g.Expr(gen.Arg(data, 0))
		g.Write(", ")
		g.Expr(gen.Arg(data, 1))
		g.Write(" )")
	default:
		g.DefaultCall(data, true)
	}
}

func (b *Backend) Structure(g *gen.Generator, s *symbols.Structure) {
	name := g.TypeName(s.Type)
	members := g.Syms.Members(s.Type)

	switch s.Kind {
	case symbols.StructPlain, symbols.StructCBuffer:
		if s.Kind == symbols.StructCBuffer {
			g.Write("layout(std140) uniform ", name, "\n{\n")
		} else {
			g.Write("struct ", name, "\n{\n")
		}
		g.IndentAdd()
		for _, m := range members {
			v := g.Syms.Variable(m)
			g.Indent()
			g.Write(g.TypeName(v.Type), " ")
			if s.Kind == symbols.StructCBuffer {
				g.Write(name, "_")
			}
			g.Write(g.VariableName(m))
			g.Dims(v)
			g.Write(";\n")
		}
		g.IndentSub()
		g.Write("};\n\n")
		return
	}

	dir := "in"
	if s.Kind.IsOutput() {
		dir = "out"
	}
	located := s.Kind != symbols.StructComputeInput && s.Kind != symbols.StructComputeOutput
	base := 0
	if s.Slot != symbols.NoSlot {
		base = s.Slot
	}
	for i, m := range members {
		v := g.Syms.Variable(m)
		g.Indent()
		if name, ok := b.builtins[m]; ok {
			g.Write("// builtin: ", name, "\n")
			continue
		}
		if located {
			loc := base + i
			if v.Slot != symbols.NoSlot {
				loc = v.Slot
			}
			g.Printf("layout(location=%d) ", loc)
		}
		g.Write(dir, " ", g.TypeName(v.Type), " ", name, "_", g.VariableName(m))
		g.Dims(v)
		g.Write(";\n")
	}
	g.Write("\n")
}

func (b *Backend) Texture(g *gen.Generator, tex *symbols.Texture) {
	v := g.Syms.Variable(tex.Variable)
	g.Indent()
	g.Write("uniform ", g.TypeName(v.Type), " ", g.VariableName(tex.Variable), ";\n\n")
}

func (b *Backend) Finish(g *gen.Generator) {}

// attribFormat describes one vertex storage format for glVertexAttrib*Pointer.
type attribFormat struct {
	glType     string
	normalized bool
	size       uint32
}

var attribFormats = [symbols.FormatCount]attribFormat{
	symbols.FormatUNORM8:  {"GL_UNSIGNED_BYTE", true, 1},
	symbols.FormatSNORM8:  {"GL_BYTE", true, 1},
	symbols.FormatUINT8:   {"GL_UNSIGNED_BYTE", false, 1},
	symbols.FormatSINT8:   {"GL_BYTE", false, 1},
	symbols.FormatUNORM16: {"GL_UNSIGNED_SHORT", true, 2},
	symbols.FormatSNORM16: {"GL_SHORT", true, 2},
	symbols.FormatUINT16:  {"GL_UNSIGNED_SHORT", false, 2},
	symbols.FormatSINT16:  {"GL_SHORT", false, 2},
	symbols.FormatFLOAT16: {"GL_HALF_FLOAT", false, 2},
	symbols.FormatUNORM32: {"GL_UNSIGNED_INT", true, 4},
	symbols.FormatSNORM32: {"GL_INT", true, 4},
	symbols.FormatUINT32:  {"GL_UNSIGNED_INT", false, 4},
	symbols.FormatSINT32:  {"GL_INT", false, 4},
	symbols.FormatFLOAT32: {"GL_FLOAT", false, 4},
}

// VertexFormat renders the attribute binding functions of a vertex_input layout.
func (b *Backend) VertexFormat(g *gen.Generator, typ symbols.TypeID) string {
	raw := g.Syms.Type(typ).Name
	name := g.TypeName(typ)

	var link, bind strings.Builder
	offset := uint32(0)
	for i, m := range g.Syms.Members(typ) {
		v := g.Syms.Variable(m)
		fmt.Fprintf(&link, "\tnglBindAttribLocation( program, %d, \"%s_%s\" );\n", i, name, g.VariableName(m))

		fn, hasNorm := "nglVertexAttribPointer", true
		switch symbols.Scalar(v.Type) {
		case symbols.TypeInt, symbols.TypeUint:
			fn, hasNorm = "nglVertexAttribIPointer", false
		case symbols.TypeDouble:
			fn, hasNorm = "nglVertexAttribLPointer", false
		}
		f := attribFormats[v.Format]
		dims := symbols.Width(v.Type)
		fmt.Fprintf(&bind, "\t%s( %d, %d, %s, ", fn, i, dims, f.glType)
		if hasNorm {
			fmt.Fprintf(&bind, "%t, ", f.normalized)
		}
		fmt.Fprintf(&bind, "sizeof( GfxVertex::%s ), reinterpret_cast<void *>( %d ) );\n", raw, offset)
		fmt.Fprintf(&bind, "\tnglEnableVertexAttribArray( %d );\n", i)
		offset += f.size * dims
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "static void opengl_vertex_input_layout_init_%s( GLuint program )\n{\n", raw)
	sb.WriteString(link.String())
	sb.WriteString("}\n\n")
	fmt.Fprintf(&sb, "static void opengl_vertex_input_layout_bind_%s()\n{\n", raw)
	sb.WriteString(bind.String())
	sb.WriteString("}\n\n")
	return sb.String()
}
