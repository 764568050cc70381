package compiler

import (
	"fmt"
	"strings"

	"shaderx/internal/gen"
	"shaderx/internal/layout"
	"shaderx/internal/symbols"
)

const commentBreak = "////////////////////////////////////////////////////////////////////////////////////////////////////////////////////////"

// GfxFiles is the C++ side of a build: runtime tables and the
// graphics-API glue for vertex formats.
type GfxFiles struct {
	Header    string // gfx.generated.hpp
	Source    string // gfx.generated.cpp
	APIHeader string // gfx.api.generated.hpp
	APISource string // gfx.api.generated.cpp
}

// WriteGfx renders the C++ tables for a packed build. results must be in
// the same order as blob.Shaders.
func WriteGfx(blob *Blob, results []*Result, reg *layout.Registry, target gen.Target) GfxFiles {
	formats := reg.VertexFormats()
	cbuffers := reg.ConstantBuffers()
	return GfxFiles{
		Header:    gfxHeader(blob, formats, cbuffers),
		Source:    gfxSource(blob, results, cbuffers),
		APIHeader: apiHeader(target),
		APISource: apiSource(target, formats),
	}
}

func section(sb *strings.Builder) {
	sb.WriteString(commentBreak)
	sb.WriteString("\n\n")
}

func writeStruct(sb *strings.Builder, name string, fields ...string) {
	fmt.Fprintf(sb, "struct %s\n{\n", name)
	for _, f := range fields {
		fmt.Fprintf(sb, "\t%s\n", f)
	}
	sb.WriteString("};\n\n")
}

func gfxHeader(blob *Blob, formats []layout.VertexFormat, cbuffers []layout.ConstantBuffer) string {
	var sb strings.Builder
	sb.WriteString("#pragma once\n\n")
	sb.WriteString("#include <types.hpp>\n\n")
	sb.WriteString("#include <manta/math.hpp>\n")
	sb.WriteString("#include <manta/memory.hpp>\n\n")

	section(&sb)
	writeStruct(&sb, "DiskShader",
		"u32 offsetVertex;",
		"u32 sizeVertex;",
		"u32 offsetFragment;",
		"u32 sizeFragment;",
		"u32 offsetCompute;",
		"u32 sizeCompute;",
		"u32 vertexFormat;")
	sb.WriteString("enum\n{\n")
	for _, ds := range blob.Shaders {
		fmt.Fprintf(&sb, "\t%s,\n", ds.Name)
	}
	sb.WriteString("};\n\n")
	sb.WriteString("namespace Gfx\n{\n")
	fmt.Fprintf(&sb, "\tconstexpr u32 shadersCount = %d;\n", len(blob.Shaders))
	sb.WriteString("\textern const DiskShader diskShaders[];\n")
	sb.WriteString("}\n\n")

	section(&sb)
	sb.WriteString("namespace GfxVertex\n{\n")
	for _, vf := range formats {
		sb.WriteString(vf.Header)
	}
	sb.WriteString("}\n\n")

	section(&sb)
	sb.WriteString("namespace bGfxVertex\n{\n")
	sb.WriteString("\ttemplate <typename T> consteval u32 vertex_format_id() { return 0; }\n")
	for _, vf := range formats {
		fmt.Fprintf(&sb, "\ttemplate <> consteval u32 vertex_format_id<GfxVertex::%s>() { return %d; }\n", vf.Name, vf.ID)
	}
	sb.WriteString("}\n\n")

	section(&sb)
	sb.WriteString("namespace bGfxCBuffer\n{\n")
	for _, cb := range cbuffers {
		sb.WriteString(cb.Header)
	}
	sb.WriteString("}\n\n")

	section(&sb)
	sb.WriteString("namespace GfxCBuffer\n{\n")
	for _, cb := range cbuffers {
		fmt.Fprintf(&sb, "\textern bGfxCBuffer::%s_t %s;\n", cb.Name, cb.Name)
	}
	sb.WriteString("}\n\n")

	section(&sb)
	sb.WriteString("namespace bGfx\n{\n")
	fmt.Fprintf(&sb, "\tconstexpr u32 constantBufferCount = %d;\n\n", len(cbuffers))
	sb.WriteString("}\n\n")
	return sb.String()
}

func gfxSource(blob *Blob, results []*Result, cbuffers []layout.ConstantBuffer) string {
	var sb strings.Builder
	sb.WriteString("#include <gfx.generated.hpp>\n\n")
	sb.WriteString("#include <manta/gfx.hpp>\n")
	sb.WriteString("#include <manta/memory.hpp>\n\n")

	section(&sb)
	sb.WriteString("namespace Gfx\n{\n")
	sb.WriteString("\tconst DiskShader diskShaders[shadersCount] =\n\t{\n")
	for _, ds := range blob.Shaders {
		fmt.Fprintf(&sb, "\t\t{ %d, %d, %d, %d, %d, %d, %d }, // %s\n",
			ds.Offset[symbols.StageVertex], ds.Size[symbols.StageVertex],
			ds.Offset[symbols.StageFragment], ds.Size[symbols.StageFragment],
			ds.Offset[symbols.StageCompute], ds.Size[symbols.StageCompute],
			ds.VertexFormat, ds.Name)
	}
	sb.WriteString("\t};\n")
	sb.WriteString("}\n\n")

	section(&sb)
	sb.WriteString("namespace GfxCBuffer\n{\n")
	for _, cb := range cbuffers {
		fmt.Fprintf(&sb, "\tbGfxCBuffer::%s_t %s;\n", cb.Name, cb.Name)
	}
	sb.WriteString("}\n\n")

	section(&sb)
	sb.WriteString("namespace bGfx\n{\n")
	sb.WriteString("\tGfxConstantBufferResource *gfxCBufferResources[bGfx::constantBufferCount];\n\n")

	sb.WriteString("\tbool rb_init_cbuffers()\n\t{\n")
	for _, cb := range cbuffers {
		fmt.Fprintf(&sb, "\t\tgfxCBufferResources[%d] = nullptr;\n", cb.ID)
		fmt.Fprintf(&sb, "\t\tGfxCBuffer::%s.zero();\n", cb.Name)
		fmt.Fprintf(&sb, "\t\tif( !bGfx::rb_constant_buffer_init( gfxCBufferResources[%d], \"t_%s\", %d, sizeof( bGfxCBuffer::%s_t ) ) ) { return false; }\n\n",
			cb.ID, cb.Name, cb.ID, cb.Name)
	}
	sb.WriteString("\t\t// Success!\n")
	sb.WriteString("\t\treturn true;\n")
	sb.WriteString("\t}\n\n")

	sb.WriteString("\tbool rb_free_cbuffers()\n\t{\n")
	sb.WriteString("\t\tfor( u32 i = 0; i < constantBufferCount; i++ )\n")
	sb.WriteString("\t\t{\n")
	sb.WriteString("\t\t\tif( !bGfx::rb_constant_buffer_free( gfxCBufferResources[i] ) ) { return false; }\n")
	sb.WriteString("\t\t}\n")
	sb.WriteString("\n\t\t// Success!\n")
	sb.WriteString("\t\treturn true;\n")
	sb.WriteString("\t}\n\n")

	for _, r := range results {
		for stage := range symbols.StageCount {
			fmt.Fprintf(&sb, "\tstatic bool rb_shader_bind_constant_buffers_%s_%s()\n\t{\n", stage, r.Name)
			for _, b := range r.CBuffers[stage] {
				fmt.Fprintf(&sb, "\t\tif( !bGfx::rb_constant_buffer_bind_%s( bGfx::gfxCBufferResources[%d], %d ) ) { return false; } // %s\n",
					stage, b.ID, b.Slot, b.Name)
			}
			sb.WriteString("\t\treturn true;\n")
			sb.WriteString("\t}\n\n")
		}
	}

	for stage := range symbols.StageCount {
		if stage != 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "\tFUNCTION_POINTER_ARRAY( bool, rb_shader_bind_constant_buffers_%s ) =\n\t{\n", stage)
		for _, r := range results {
			fmt.Fprintf(&sb, "\t\trb_shader_bind_constant_buffers_%s_%s,\n", stage, r.Name)
		}
		sb.WriteString("\t};\n")
	}
	sb.WriteString("}\n\n")

	section(&sb)
	sb.WriteString("namespace bGfxCBuffer\n{\n")
	for _, cb := range cbuffers {
		sb.WriteString(cb.Source)
	}
	sb.WriteString("}\n\n")
	return sb.String()
}

func apiHeader(target gen.Target) string {
	var sb strings.Builder
	sb.WriteString("#pragma once\n\n")
	sb.WriteString("#include <types.hpp>\n\n")
	switch target {
	case gen.TargetHLSL:
		sb.WriteString("#include <vendor/d3d11.hpp>\n\n")
		sb.WriteString("namespace bGfx\n{\n")
		section(&sb)
		writeStruct(&sb, "D3D11VertexInputLayoutDescription",
			"D3D11_INPUT_ELEMENT_DESC *desc;",
			"int count;")
		sb.WriteString("extern FUNCTION_POINTER_ARRAY( void, d3d11_vertex_input_layout_desc, D3D11VertexInputLayoutDescription & );\n\n")
		sb.WriteString(commentBreak + "\n")
		sb.WriteString("}")
	case gen.TargetGLSL:
		sb.WriteString("#include <manta/backend/gfx/opengl/opengl.hpp>\n\n")
		sb.WriteString("namespace bGfx\n{\n")
		section(&sb)
		sb.WriteString("extern FUNCTION_POINTER_ARRAY( void, opengl_vertex_input_layout_init, GLuint );\n\n")
		sb.WriteString("extern FUNCTION_POINTER_ARRAY( void, opengl_vertex_input_layout_bind );\n\n")
		sb.WriteString(commentBreak + "\n")
		sb.WriteString("}")
	}
	return sb.String()
}

func apiSource(target gen.Target, formats []layout.VertexFormat) string {
	var sb strings.Builder
	sb.WriteString("#include <gfx.api.generated.hpp>\n")
	sb.WriteString("#include <gfx.generated.hpp>\n\n")

	var tables []string
	var sig []string
	switch target {
	case gen.TargetHLSL:
		tables = []string{"d3d11_vertex_input_layout_desc"}
		sig = []string{"void, d3d11_vertex_input_layout_desc, D3D11VertexInputLayoutDescription &"}
	case gen.TargetGLSL:
		tables = []string{"opengl_vertex_input_layout_init", "opengl_vertex_input_layout_bind"}
		sig = []string{"void, opengl_vertex_input_layout_init, GLuint", "void, opengl_vertex_input_layout_bind"}
	default:
		return sb.String()
	}

	sb.WriteString("namespace bGfx\n{\n")
	section(&sb)
	for _, vf := range formats {
		sb.WriteString(vf.Side(target.String()))
	}
	for i, table := range tables {
		fmt.Fprintf(&sb, "FUNCTION_POINTER_ARRAY( %s ) =\n{\n", sig[i])
		for _, vf := range formats {
			fmt.Fprintf(&sb, "\t%s_%s,\n", table, vf.Name)
		}
		sb.WriteString("};\n\n")
	}
	sb.WriteString(commentBreak + "\n")
	sb.WriteString("}")
	return sb.String()
}
