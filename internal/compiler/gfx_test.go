package compiler_test

import (
	"fmt"
	"strings"
	"testing"

	"shaderx/internal/compiler"
	"shaderx/internal/gen"
	"shaderx/internal/layout"
	"shaderx/internal/symbols"
)

func buildGfx(t *testing.T, target gen.Target) (*compiler.Blob, compiler.GfxFiles) {
	t.Helper()
	reg := layout.NewRegistry()
	res := compile(t, "sprite.shader", sprite, target)
	if err := compiler.RegisterLayouts(reg, res); err != nil {
		t.Fatal(err)
	}
	results := []*compiler.Result{res}
	blob, err := compiler.Pack(results)
	if err != nil {
		t.Fatal(err)
	}
	return blob, compiler.WriteGfx(blob, results, reg, target)
}

func TestGfxTables(t *testing.T) {
	blob, files := buildGfx(t, gen.TargetGLSL)
	ds := blob.Shaders[0]
	line := fmt.Sprintf("\t\t{ 0, %d, %d, %d, 0, 0, 0 }, // sprite\n",
		ds.Size[symbols.StageVertex], ds.Offset[symbols.StageFragment], ds.Size[symbols.StageFragment])

	checks := []struct {
		name string
		text string
		want string
	}{
		{"disk shader row", files.Source, line},
		{"shader enum", files.Header, "enum\n{\n\tsprite,\n};"},
		{"shader count", files.Header, "constexpr u32 shadersCount = 1;"},
		{"cbuffer count", files.Header, "constexpr u32 constantBufferCount = 2;"},
		{"vertex format id", files.Header, "vertex_format_id<GfxVertex::Vertex>() { return 0; }"},
		{"cbuffer extern", files.Header, "extern bGfxCBuffer::Material_t Material;"},
		{"cbuffer init", files.Source, "\"t_Camera\", 0, sizeof( bGfxCBuffer::Camera_t )"},
		{"vertex bind", files.Source, "rb_constant_buffer_bind_vertex( bGfx::gfxCBufferResources[0], 0 ) ) { return false; } // Camera"},
		{"fragment bind", files.Source, "rb_constant_buffer_bind_fragment( bGfx::gfxCBufferResources[1], 1 ) ) { return false; } // Material"},
		{"compute table", files.Source, "FUNCTION_POINTER_ARRAY( bool, rb_shader_bind_constant_buffers_compute ) =\n\t{\n\t\trb_shader_bind_constant_buffers_compute_sprite,\n\t};"},
		{"api include", files.APIHeader, "opengl.hpp"},
		{"api init table", files.APISource, "\topengl_vertex_input_layout_init_Vertex,\n"},
		{"api bind table", files.APISource, "\topengl_vertex_input_layout_bind_Vertex,\n"},
	}
	for _, c := range checks {
		if !strings.Contains(c.text, c.want) {
			t.Errorf("%s: missing %q", c.name, c.want)
		}
	}
}

func TestGfxHLSLTables(t *testing.T) {
	_, files := buildGfx(t, gen.TargetHLSL)
	if !strings.Contains(files.APIHeader, "struct D3D11VertexInputLayoutDescription") {
		t.Fatalf("d3d11 header missing description struct:\n%s", files.APIHeader)
	}
	if !strings.Contains(files.APISource, "\td3d11_vertex_input_layout_desc_Vertex,\n") {
		t.Fatalf("d3d11 table missing entry:\n%s", files.APISource)
	}
	if strings.Contains(files.APISource, "opengl") {
		t.Fatalf("opengl glue leaked into the d3d11 build")
	}
}

func TestGfxShdrHasNoAPIGlue(t *testing.T) {
	_, files := buildGfx(t, gen.TargetShdr)
	if strings.Contains(files.APISource, "FUNCTION_POINTER_ARRAY") {
		t.Fatalf("shdr build must not emit api tables:\n%s", files.APISource)
	}
	if !strings.Contains(files.Source, "// sprite") {
		t.Fatalf("runtime tables are emitted for every target")
	}
}
