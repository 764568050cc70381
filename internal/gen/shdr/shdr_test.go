package shdr_test

import (
	"strings"
	"testing"

	"shaderx/internal/gen/shdr"
	"shaderx/internal/symbols"
	"shaderx/internal/testkit"
)

const src = `
vertex_input( 2 ) VSIn
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

cbuffer( 1 ) Globals
{
	float4x4 mvp;
	float4 weights[4];
};

struct Light
{
	float3 dir;
	float4 color;
};

texture2D( 0 ) albedo;

float dot3( float3 a, float3 b )
{
	return a.x * b.x + a.y * b.y + a.z * b.z;
}

float4 lit( Light l, float3 n )
{
	float k = dot3( l.dir, n );
	if( k > 0.0 )
	{
		return l.color * k;
	}
	else
	{
		return float4( 0.0, 0.0, 0.0, 1.0 );
	}
}

void vertex_main( VSIn input, VSOut output, Globals globals )
{
	float4 acc = float4( 0.0, 0.0, 0.0, 0.0 );
	for( int i = 0; i < 4; i++ )
	{
		acc += globals.weights[i];
	}
	output.position = mul( globals.mvp, float4( input.position, 1.0 ) ) + acc;
	output.uv = input.uv;
}

void fragment_main( PSIn input, PSOut output )
{
	Light l;
	l.dir = float3( 0.0, 1.0, 0.0 );
	l.color = sample_texture2D( albedo, input.uv );
	output.color = l.color;
	if( input.uv.x > 0.5 )
	{
		output.color = lit( l, float3( 0.0, 1.0, 0.0 ) );
	}
}
`

func TestStructures(t *testing.T) {
	res := testkit.Parse(t, "shdr.shader", src)
	out := testkit.MustGenerate(t, res, shdr.New(), symbols.StageVertex)
	want := []string{
		"vertex_input( 2 ) VSIn\n{\n\tfloat3 position semantic( POSITION ) format( FLOAT32 );\n\tfloat2 uv semantic( TEXCOORD ) format( UNORM16 );\n};\n\n",
		"vertex_output VSOut\n{\n",
		"cbuffer( 1 ) Globals\n{\n\tfloat4x4 mvp;\n\tfloat4 weights[4];\n};\n\n",
		"void vertex_main( VSIn input, VSOut output, Globals globals )\n",
		"\tfor( int i = 0; i < 4; i++ )\n",
		"\t\tacc += globals.weights[i];\n",
		"mul( globals.mvp, float4( input.position, 1.0 ) )",
	}
	for _, w := range want {
		if !strings.Contains(out.Text, w) {
			t.Fatalf("output lacks %q:\n%s", w, out.Text)
		}
	}
}

func TestFragmentTargets(t *testing.T) {
	res := testkit.Parse(t, "shdr.shader", src)
	out := testkit.MustGenerate(t, res, shdr.New(), symbols.StageFragment)
	want := []string{
		"float4 color semantic( COLOR ) target( 0 );\n",
		"texture2D( 0 ) albedo;\n\n",
		"struct Light\n{\n\tfloat3 dir;\n\tfloat4 color;\n};\n\n",
		"sample_texture2D( albedo, input.uv )",
	}
	for _, w := range want {
		if !strings.Contains(out.Text, w) {
			t.Fatalf("output lacks %q:\n%s", w, out.Text)
		}
	}
}

// Вывод shdr должен снова разбираться и печататься в тот же текст.
func TestRoundTrip(t *testing.T) {
	res := testkit.Parse(t, "shdr.shader", src)
	for _, stage := range []symbols.Stage{symbols.StageVertex, symbols.StageFragment} {
		t.Run(stage.String(), func(t *testing.T) {
			first := testkit.MustGenerate(t, res, shdr.New(), stage)
			again := testkit.Parse(t, "again.shader", first.Text)
			second := testkit.MustGenerate(t, again, shdr.New(), stage)
			if first.Text != second.Text {
				t.Fatalf("round trip changed output:\n--- first\n%s\n--- second\n%s", first.Text, second.Text)
			}
		})
	}
}
