package glsl_test

import (
	"strings"
	"testing"

	"shaderx/internal/gen"
	"shaderx/internal/gen/glsl"
	"shaderx/internal/layout"
	"shaderx/internal/reach"
	"shaderx/internal/symbols"
	"shaderx/internal/testkit"
)

const src = `
vertex_input VSIn
{
	float3 position semantic( POSITION ) format( FLOAT32 );
	float4 color semantic( COLOR ) format( UNORM8 );
	int2 bone format( SINT16 );
};

vertex_output VSOut
{
	float4 position semantic( POSITION );
	float4 color semantic( COLOR );
};

fragment_input PSIn
{
	float4 position semantic( POSITION );
	float4 color semantic( COLOR );
};

fragment_output PSOut
{
	float4 color semantic( COLOR ) target( 0 );
	float depth semantic( DEPTH );
};

cbuffer( 0 ) Globals
{
	float4x4 mvp;
};

struct Unused
{
	float x;
};

texture2D( 3 ) albedo;

float4 tint( float4 c )
{
	return c * 0.5;
}

void vertex_main( VSIn input, VSOut output, Globals globals )
{
	output.position = mul( globals.mvp, float4( input.position, 1.0 ) );
	output.color = input.color;
}

void fragment_main( PSIn input, PSOut output )
{
	output.color = tint( sample_texture2D( albedo, input.position.xy ) ) * input.color;
	output.depth = input.position.z;
}
`

func generate(t *testing.T, stage symbols.Stage) *gen.Output {
	t.Helper()
	res := testkit.Parse(t, "glsl.shader", src)
	return testkit.MustGenerate(t, res, glsl.New(), stage)
}

func TestVertexStage(t *testing.T) {
	out := generate(t, symbols.StageVertex)
	if !strings.HasPrefix(out.Text, "#version 410 core\n\n") {
		t.Fatalf("missing version header:\n%s", out.Text)
	}
	want := []string{
		"layout(location=0) in vec3 t_VSIn_position;\n",
		"layout(location=1) in vec4 t_VSIn_color;\n",
		"layout(location=2) in ivec2 t_VSIn_bone;\n",
		"// builtin: gl_Position\n",
		"layout(location=1) out vec4 t_VSOut_color;\n",
		"layout(std140) uniform t_Globals\n{\n\tmat4 t_Globals_mvp;\n};\n\n",
		"void main()\n{\n",
		"\tgl_Position = ( ( t_Globals_mvp ) * ( vec4( t_VSIn_position, 1.0 ) ) );\n",
		"\tt_VSOut_color = t_VSIn_color;\n",
	}
	for _, w := range want {
		if !strings.Contains(out.Text, w) {
			t.Fatalf("vertex output lacks %q:\n%s", w, out.Text)
		}
	}
	// позиция объявлена только комментарием
	if strings.Contains(out.Text, "t_VSOut_position") {
		t.Fatalf("builtin member leaked into output:\n%s", out.Text)
	}
	for _, dead := range []string{"f_tint", "t_Unused", "u_texture3", "t_PSIn"} {
		if strings.Contains(out.Text, dead) {
			t.Fatalf("unreachable %s emitted in vertex stage:\n%s", dead, out.Text)
		}
	}
}

func TestFragmentStage(t *testing.T) {
	out := generate(t, symbols.StageFragment)
	want := []string{
		"// builtin: gl_FragCoord\n",
		"layout(location=1) in vec4 t_PSIn_color;\n",
		"layout(location=0) out vec4 t_PSOut_color;\n",
		"// builtin: gl_FragDepth\n",
		"uniform sampler2D u_texture3;\n\n",
		"vec4 f_tint( vec4 v_c )\n{\n\treturn v_c * 0.5;\n}\n\n",
		"\tt_PSOut_color = f_tint( texture( u_texture3, gl_FragCoord.xy ) ) * t_PSIn_color;\n",
		"\tgl_FragDepth = gl_FragCoord.z;\n",
	}
	for _, w := range want {
		if !strings.Contains(out.Text, w) {
			t.Fatalf("fragment output lacks %q:\n%s", w, out.Text)
		}
	}
	if strings.Contains(out.Text, "t_Globals") {
		t.Fatalf("cbuffer not used by fragment stage:\n%s", out.Text)
	}
}

func TestDecls(t *testing.T) {
	out := generate(t, symbols.StageVertex)
	if len(out.Decls) != 2 {
		t.Fatalf("decls = %d, want 2", len(out.Decls))
	}
	vf, cb := out.Decls[0], out.Decls[1]
	if vf.Kind != layout.DeclVertexFormat || vf.Name != "VSIn" || len(vf.Fields) != 3 {
		t.Fatalf("unexpected vertex decl: %+v", vf)
	}
	if cb.Kind != layout.DeclConstantBuffer || cb.Name != "Globals" || cb.Slot != 0 {
		t.Fatalf("unexpected cbuffer decl: %+v", cb)
	}
	want := []string{
		"static void opengl_vertex_input_layout_init_VSIn( GLuint program )\n{\n",
		"\tnglBindAttribLocation( program, 0, \"t_VSIn_position\" );\n",
		"\tnglBindAttribLocation( program, 2, \"t_VSIn_bone\" );\n",
		"static void opengl_vertex_input_layout_bind_VSIn()\n{\n",
		"\tnglVertexAttribPointer( 0, 3, GL_FLOAT, false, sizeof( GfxVertex::VSIn ), reinterpret_cast<void *>( 0 ) );\n",
		"\tnglVertexAttribPointer( 1, 4, GL_UNSIGNED_BYTE, true, sizeof( GfxVertex::VSIn ), reinterpret_cast<void *>( 12 ) );\n",
		"\tnglVertexAttribIPointer( 2, 2, GL_SHORT, sizeof( GfxVertex::VSIn ), reinterpret_cast<void *>( 16 ) );\n",
		"\tnglEnableVertexAttribArray( 2 );\n",
	}
	for _, w := range want {
		if !strings.Contains(vf.Side, w) {
			t.Fatalf("side text lacks %q:\n%s", w, vf.Side)
		}
	}
}

func TestMissingStageIsEmpty(t *testing.T) {
	out := generate(t, symbols.StageCompute)
	if !out.Empty() || len(out.Decls) != 0 {
		t.Fatalf("compute stage must be empty, got %q", out.Text)
	}
}

func TestDeterministic(t *testing.T) {
	first := generate(t, symbols.StageFragment).Text
	for range 3 {
		if got := generate(t, symbols.StageFragment).Text; got != first {
			t.Fatalf("output differs between runs")
		}
	}
}

func TestCustomNames(t *testing.T) {
	res := testkit.Parse(t, "glsl.shader", src)
	seen := reach.Analyze(res.Builder, res.Symbols, res.EntryItems[symbols.StageFragment])
	g := gen.New(res.Builder, res.Symbols, glsl.New(), gen.Options{
		Names: &gen.NameOptions{TypePrefix: "T", FunctionPrefix: "F", VariablePrefix: "V"},
	})
	out, err := g.Generate(symbols.StageFragment, &seen)
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range []string{"TPSIn_color", "vec4 Ftint( vec4 Vc )", "u_texture3"} {
		if !strings.Contains(out.Text, w) {
			t.Fatalf("output lacks %q:\n%s", w, out.Text)
		}
	}
}
