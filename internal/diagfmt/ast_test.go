package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"shaderx/internal/diagfmt"
	"shaderx/internal/testkit"
)

const astShader = `
vertex_input VSIn
{
	float3 position semantic( POSITION ) format( FLOAT32 );
};

vertex_output VSOut
{
	float4 position semantic( POSITION );
};

cbuffer( 1 ) Camera
{
	float4x4 view[2];
};

texture2D( 3 ) albedo;

void vertex_main( VSIn input, VSOut output, Camera camera )
{
	if ( input.position.x > 0.0 )
	{
		output.position = float4( input.position, 1.0 );
	}
	return;
}
`

func TestFormatASTPretty(t *testing.T) {
	res := testkit.Parse(t, "ast.shader", astShader)

	var buf bytes.Buffer
	if err := diagfmt.FormatASTPretty(&buf, res, nil); err != nil {
		t.Fatalf("FormatASTPretty: %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		"├─ Struct vertex_input: VSIn",
		"float3 position semantic( POSITION ) format( FLOAT32 )",
		"Struct cbuffer: Camera ( 1 )",
		"float4x4 view[2]",
		"Texture: texture2D( 3 ) albedo",
		"└─ Func vertex entry: void vertex_main( VSIn input, VSOut output, Camera camera )",
		"   └─ Block",
		"If",
		"Return",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("dump lacks %q:\n%s", want, got)
		}
	}
}

func TestFormatASTJSON(t *testing.T) {
	res := testkit.Parse(t, "ast.shader", astShader)

	var buf bytes.Buffer
	if err := diagfmt.FormatASTJSON(&buf, res); err != nil {
		t.Fatalf("FormatASTJSON: %v", err)
	}
	var root diagfmt.ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if root.Type != "File" || len(root.Children) != 5 {
		t.Fatalf("expected 5 items, got %+v", root)
	}
	fn := root.Children[4]
	if fn.Kind != "vertex entry" || len(fn.Children) != 1 || fn.Children[0].Type != "Block" {
		t.Fatalf("unexpected function node %+v", fn)
	}
}
