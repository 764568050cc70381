package compiler_test

import (
	"context"
	"strings"
	"testing"

	"shaderx/internal/compiler"
	"shaderx/internal/diag"
	"shaderx/internal/gen"
	"shaderx/internal/layout"
	"shaderx/internal/source"
	"shaderx/internal/symbols"
)

const sprite = `
vertex_input Vertex
{
	float3 position semantic( POSITION ) format( FLOAT32 );
	float2 uv format( UNORM16 );
};

vertex_output VSOut
{
	float4 position semantic( POSITION );
	float2 uv;
};

fragment_input PSIn
{
	float4 position semantic( POSITION );
	float2 uv;
};

fragment_output PSOut
{
	float4 color semantic( COLOR ) target( 0 );
};

cbuffer( 0 ) Camera
{
	float4x4 view;
};

cbuffer( 1 ) Material
{
	float4 tint;
};

texture2D( 0 ) albedo;

void vertex_main( Vertex input, VSOut output, Camera camera )
{
	output.position = mul( camera.view, float4( input.position, 1.0 ) );
	output.uv = input.uv;
}

void fragment_main( PSIn input, PSOut output, Material material )
{
	output.color = sample_texture2D( albedo, input.uv ) * material.tint;
}
`

func compile(t *testing.T, name, src string, target gen.Target) *compiler.Result {
	t.Helper()
	res, err := compileErr(name, src, target)
	if err != nil {
		t.Fatalf("compile %s: %v", name, err)
	}
	return res
}

func compileErr(name, src string, target gen.Target) (*compiler.Result, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	return compiler.Compile(context.Background(), fs, id, compiler.Options{Target: target})
}

func TestCompileStages(t *testing.T) {
	for _, target := range []gen.Target{gen.TargetShdr, gen.TargetGLSL, gen.TargetHLSL} {
		t.Run(target.String(), func(t *testing.T) {
			res := compile(t, "sprite.shader", sprite, target)
			if res.Name != "sprite" {
				t.Fatalf("name = %q", res.Name)
			}
			if !res.HasStage(symbols.StageVertex) || !res.HasStage(symbols.StageFragment) {
				t.Fatalf("vertex and fragment stages expected")
			}
			if res.HasStage(symbols.StageCompute) {
				t.Fatalf("compute stage must be absent")
			}
		})
	}
}

func TestRegisterLayouts(t *testing.T) {
	reg := layout.NewRegistry()
	res := compile(t, "sprite.shader", sprite, gen.TargetGLSL)
	if err := compiler.RegisterLayouts(reg, res); err != nil {
		t.Fatal(err)
	}
	if res.VertexFormat != 0 {
		t.Fatalf("vertex format id = %d", res.VertexFormat)
	}
	vb := res.CBuffers[symbols.StageVertex]
	fb := res.CBuffers[symbols.StageFragment]
	if len(vb) != 1 || vb[0].Name != "Camera" || vb[0].Slot != 0 {
		t.Fatalf("vertex cbuffers = %+v", vb)
	}
	if len(fb) != 1 || fb[0].Name != "Material" || fb[0].Slot != 1 || fb[0].ID != 1 {
		t.Fatalf("fragment cbuffers = %+v", fb)
	}

	formats := reg.VertexFormats()
	if len(formats) != 1 || formats[0].Name != "Vertex" {
		t.Fatalf("formats = %+v", formats)
	}
	if !strings.Contains(formats[0].Side("glsl"), "opengl_vertex_input_layout_bind_Vertex") {
		t.Fatalf("glsl side text not attached")
	}

	// повторная регистрация того же файла не создаёт новых записей
	if err := compiler.RegisterLayouts(reg, res); err != nil {
		t.Fatal(err)
	}
	if n := len(reg.ConstantBuffers()); n != 2 {
		t.Fatalf("cbuffers = %d, want 2", n)
	}
}

func TestLayoutConflict(t *testing.T) {
	reg := layout.NewRegistry()
	first := compile(t, "a.shader", sprite, gen.TargetHLSL)
	if err := compiler.RegisterLayouts(reg, first); err != nil {
		t.Fatal(err)
	}
	other := strings.Replace(sprite, "float4 tint;", "float3 tint;", 1)
	second := compile(t, "b.shader", other, gen.TargetHLSL)
	err := compiler.RegisterLayouts(reg, second)
	de, ok := diag.AsError(err)
	if !ok {
		t.Fatalf("expected diag error, got %v", err)
	}
	if de.Diagnostic.Code != diag.GenLayoutConflict || de.Path != "b.shader" {
		t.Fatalf("unexpected error %v", de)
	}
	if !strings.Contains(de.Diagnostic.Message, "CBuffer with name 'Material' already declared with a different layout") {
		t.Fatalf("message = %q", de.Diagnostic.Message)
	}
}

func TestCompileErrorCarriesPath(t *testing.T) {
	_, err := compileErr("broken.shader", "struct { float x; };", gen.TargetGLSL)
	de, ok := diag.AsError(err)
	if !ok {
		t.Fatalf("expected diag error, got %v", err)
	}
	if de.Path != "broken.shader" {
		t.Fatalf("path = %q", de.Path)
	}
}

func TestPack(t *testing.T) {
	a := compile(t, "a.shader", sprite, gen.TargetGLSL)
	b := compile(t, "b.shader", sprite, gen.TargetGLSL)
	blob, err := compiler.Pack([]*compiler.Result{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if len(blob.Shaders) != 2 {
		t.Fatalf("shaders = %d", len(blob.Shaders))
	}
	sa, sb := blob.Shaders[0], blob.Shaders[1]
	if sa.Offset[symbols.StageVertex] != 0 {
		t.Fatalf("first vertex offset = %d", sa.Offset[symbols.StageVertex])
	}
	if sa.Offset[symbols.StageFragment] != sa.Size[symbols.StageVertex] {
		t.Fatalf("fragment must follow vertex")
	}
	if sa.Size[symbols.StageCompute] != 0 || sa.Offset[symbols.StageCompute] != 0 {
		t.Fatalf("absent compute stage must be zero")
	}
	if sb.Offset[symbols.StageVertex] != sa.Offset[symbols.StageFragment]+sa.Size[symbols.StageFragment] {
		t.Fatalf("second shader must follow the first")
	}
	if got := string(blob.Stage(1, symbols.StageFragment)); got != b.Stages[symbols.StageFragment].Text {
		t.Fatalf("blob slice mismatch")
	}
	if len(blob.Data) != int(sb.Offset[symbols.StageFragment]+sb.Size[symbols.StageFragment]) {
		t.Fatalf("blob size = %d", len(blob.Data))
	}
}

func TestSplitPragmaRegions(t *testing.T) {
	text := "// shared\n#pragma vertex\nvoid main() { gl_Position = vec4( 0.0 ); }\n#pragma fragment\nout vec4 c;\nvoid main() { c = vec4( 1.0 ); }\n"
	regions := compiler.SplitPragmaRegions(text)
	want := [symbols.StageCount]string{
		compiler.GLSLHeader + "\nvoid main() { gl_Position = vec4( 0.0 ); }\n",
		compiler.GLSLHeader + "\nout vec4 c;\nvoid main() { c = vec4( 1.0 ); }\n",
		"",
	}
	if regions != want {
		t.Fatalf("regions = %q, want %q", regions, want)
	}
}

func TestCompilePragma(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("legacy.glsl", []byte("#pragma fragment\nvoid main() {}\n"))
	res, err := compiler.CompilePragma(fs, id)
	if err != nil {
		t.Fatal(err)
	}
	if !compiler.IsPragmaSource("legacy.glsl") || compiler.IsPragmaSource("sprite.shader") {
		t.Fatalf("pragma path detection is wrong")
	}
	if res.HasStage(symbols.StageVertex) || !res.HasStage(symbols.StageFragment) {
		t.Fatalf("only the fragment stage is present")
	}
}
