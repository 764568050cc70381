package hlsl_test

import (
	"strings"
	"testing"

	"shaderx/internal/diag"
	"shaderx/internal/gen/hlsl"
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
	float2 uv;
	float2 uv2;
};

fragment_input PSIn
{
	float4 position semantic( POSITION );
	float4 color semantic( COLOR );
	float2 uv;
	float2 uv2;
};

fragment_output PSOut
{
	float4 color semantic( COLOR ) target( 1 );
	float depth semantic( DEPTH );
};

cbuffer( 2 ) Globals
{
	float4x4 mvp;
	float4 tint;
};

texture2D( 3 ) albedo;
texture2D( 4 ) detail;

float4 shade( float4 c, Globals g )
{
	return c * g.tint;
}

void vertex_main( VSIn input, VSOut output, Globals globals )
{
	output.position = mul( globals.mvp, float4( input.position, 1.0 ) );
	output.color = shade( input.color, globals );
	output.uv = input.position.xy;
	output.uv2 = input.position.yz;
}

void fragment_main( PSIn input, PSOut output )
{
	output.color = sample_texture2D( albedo, input.uv ) * sample_texture2DLevel( detail, input.uv2 );
	output.depth = input.position.z;
}
`

func TestVertexStage(t *testing.T) {
	res := testkit.Parse(t, "hlsl.shader", src)
	out := testkit.MustGenerate(t, res, hlsl.New(), symbols.StageVertex)
	want := []string{
		"struct VSIn\n{\n\tfloat3 position : POSITION0;\n\tfloat4 color : COLOR0;\n\tint2 bone : TEXCOORD0;\n};\n\n",
		"struct VSOut\n{\n\tfloat4 position : SV_POSITION;\n\tfloat4 color : COLOR0;\n\tfloat2 uv : TEXCOORD0;\n\tfloat2 uv2 : TEXCOORD1;\n};\n\n",
		"cbuffer Globals : register( b2 )\n{\n\tfloat4x4 Globals_mvp;\n\tfloat4 Globals_tint;\n};\n\n",
		"float4 shade( float4 c )\n{\n\treturn c * Globals_tint;\n}\n\n",
		"void vs_main( in VSIn input, out VSOut output )\n{\n",
		"\toutput.position = mul( Globals_mvp, float4( input.position, 1.0 ) );\n",
		"\toutput.color = shade( input.color );\n",
	}
	for _, w := range want {
		if !strings.Contains(out.Text, w) {
			t.Fatalf("vertex output lacks %q:\n%s", w, out.Text)
		}
	}
	if strings.Contains(out.Text, "Texture2D") || strings.Contains(out.Text, "SamplerState") {
		t.Fatalf("textures are fragment-only:\n%s", out.Text)
	}
}

func TestFragmentStage(t *testing.T) {
	res := testkit.Parse(t, "hlsl.shader", src)
	out := testkit.MustGenerate(t, res, hlsl.New(), symbols.StageFragment)
	want := []string{
		"struct PSOut\n{\n\tfloat4 color : SV_TARGET1;\n\tfloat depth : SV_DEPTH;\n};\n\n",
		"Texture2D albedo : register( t3 );\nSamplerState GlobalSampler : register( s0 );\n\n",
		"Texture2D detail : register( t4 );\n",
		"void ps_main( in PSIn input, out PSOut output )\n",
		"\toutput.color = albedo.Sample( GlobalSampler, input.uv ) * detail.SampleLevel( GlobalSampler, input.uv2, 0 );\n",
	}
	for _, w := range want {
		if !strings.Contains(out.Text, w) {
			t.Fatalf("fragment output lacks %q:\n%s", w, out.Text)
		}
	}
	if n := strings.Count(out.Text, "SamplerState"); n != 1 {
		t.Fatalf("GlobalSampler declared %d times", n)
	}
	if strings.Contains(out.Text, "cbuffer") {
		t.Fatalf("cbuffer unused by fragment stage:\n%s", out.Text)
	}
}

func TestSamplerPerStage(t *testing.T) {
	res := testkit.Parse(t, "hlsl.shader", src)
	b := hlsl.New()
	for range 2 {
		out := testkit.MustGenerate(t, res, b, symbols.StageFragment)
		if n := strings.Count(out.Text, "SamplerState"); n != 1 {
			t.Fatalf("GlobalSampler declared %d times on reuse", n)
		}
	}
}

func TestInputLayoutDesc(t *testing.T) {
	res := testkit.Parse(t, "hlsl.shader", src)
	out := testkit.MustGenerate(t, res, hlsl.New(), symbols.StageVertex)
	if len(out.Decls) == 0 {
		t.Fatalf("no decls")
	}
	side := out.Decls[0].Side
	want := []string{
		"static void d3d11_vertex_input_layout_desc_VSIn( D3D11VertexInputLayoutDescription &desc )\n{\n",
		"\t\t{ \"POSITION\", 0, DXGI_FORMAT_R32G32B32_FLOAT, 0, 0, D3D11_INPUT_PER_VERTEX_DATA, 0 },\n",
		"\t\t{ \"COLOR\", 0, DXGI_FORMAT_R8G8B8A8_UNORM, 0, 12, D3D11_INPUT_PER_VERTEX_DATA, 0 },\n",
		"\t\t{ \"TEXCOORD\", 0, DXGI_FORMAT_R16G16_SINT, 0, 16, D3D11_INPUT_PER_VERTEX_DATA, 0 },\n",
		"\tdesc.desc = inputDescription;\n\tdesc.count = 3;\n}\n\n",
	}
	for _, w := range want {
		if !strings.Contains(side, w) {
			t.Fatalf("desc lacks %q:\n%s", w, side)
		}
	}
}

func TestDXGIFormats(t *testing.T) {
	const formats = `
vertex_input V
{
	float3 a format( UNORM8 );
	float3 b format( FLOAT16 );
	float4 c format( UNORM32 );
	float3 d format( SNORM32 );
	float e format( UINT8 );
};
vertex_output O { float4 p semantic( POSITION ); };
void vertex_main( V v, O o ) { o.p = float4( v.a, 1.0 ); }
`
	res := testkit.Parse(t, "formats.shader", formats)
	out := testkit.MustGenerate(t, res, hlsl.New(), symbols.StageVertex)
	side := out.Decls[0].Side
	want := []string{
		"{ \"TEXCOORD\", 0, DXGI_FORMAT_R8G8B8A8_UNORM, 0, 0,",
		"{ \"TEXCOORD\", 1, DXGI_FORMAT_R16G16B16A16_FLOAT, 0, 4,",
		"{ \"TEXCOORD\", 2, DXGI_FORMAT_R32G32B32A32_TYPELESS, 0, 12,",
		"{ \"TEXCOORD\", 3, DXGI_FORMAT_R32G32B32_TYPELESS, 0, 28,",
		"{ \"TEXCOORD\", 4, DXGI_FORMAT_R8_UINT, 0, 40,",
	}
	for _, w := range want {
		if !strings.Contains(side, w) {
			t.Fatalf("desc lacks %q:\n%s", w, side)
		}
	}
}

// Член vertex_input без semantic() получает TEXCOORD, а не POSITION.
func TestUntaggedVertexInputMember(t *testing.T) {
	const untagged = `
vertex_input V
{
	float3 position format( FLOAT32 );
	float3 normal semantic( NORMAL ) format( FLOAT32 );
	float2 uv format( FLOAT32 );
};
vertex_output O { float4 p semantic( POSITION ); };
void vertex_main( V v, O o ) { o.p = float4( v.position, v.uv.x ); }
`
	res := testkit.Parse(t, "untagged.shader", untagged)
	out := testkit.MustGenerate(t, res, hlsl.New(), symbols.StageVertex)
	if want := "struct V\n{\n\tfloat3 position : TEXCOORD0;\n\tfloat3 normal : NORMAL0;\n\tfloat2 uv : TEXCOORD1;\n};\n\n"; !strings.Contains(out.Text, want) {
		t.Fatalf("vertex output lacks %q:\n%s", want, out.Text)
	}
	side := out.Decls[0].Side
	if !strings.Contains(side, "{ \"TEXCOORD\", 0, DXGI_FORMAT_R32G32B32_FLOAT, 0, 0,") {
		t.Fatalf("desc:\n%s", side)
	}
	if strings.Contains(out.Text, "POSITION0") {
		t.Fatalf("untagged member must not become POSITION0:\n%s", out.Text)
	}
}

// Парсер такие комбинации не пропускает, поэтому семантика подменяется в таблице.
func TestUnsupportedSemantic(t *testing.T) {
	tests := []struct {
		name  string
		stage symbols.Stage
		typ   string
		src   string
	}{
		{
			name:  "vertex_input depth",
			stage: symbols.StageVertex,
			typ:   "V",
			src: `
vertex_input V { float depth format( FLOAT32 ); };
vertex_output O { float4 p semantic( POSITION ); };
void vertex_main( V v, O o ) { o.p = float4( v.depth, 0.0, 0.0, 1.0 ); }
`,
		},
		{
			name:  "fragment_input depth",
			stage: symbols.StageFragment,
			typ:   "I",
			src: `
fragment_input I { float d; };
fragment_output O { float4 c semantic( COLOR ) target( 0 ); };
void fragment_main( I i, O o ) { o.c = float4( i.d, 0.0, 0.0, 1.0 ); }
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testkit.Parse(t, "bad.shader", tt.src)
			typ, ok := res.Symbols.LookupType(tt.typ)
			if !ok {
				t.Fatalf("type %s not registered", tt.typ)
			}
			res.Symbols.Variable(res.Symbols.Members(typ)[0]).Semantic = symbols.SemanticDepth
			_, err := testkit.Generate(res, hlsl.New(), tt.stage)
			de, ok := diag.AsError(err)
			if !ok {
				t.Fatalf("expected diag error, got %v", err)
			}
			if de.Diagnostic.Code != diag.GenUnsupportedSemantic {
				t.Fatalf("code = %s, want %s", de.Diagnostic.Code.ID(), diag.GenUnsupportedSemantic.ID())
			}
			if !strings.Contains(de.Diagnostic.Message, "unsupported semantic DEPTH") {
				t.Fatalf("message = %q", de.Diagnostic.Message)
			}
		})
	}
}
