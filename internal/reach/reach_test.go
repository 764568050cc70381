package reach_test

import (
	"context"
	"testing"

	"shaderx/internal/ast"
	"shaderx/internal/parser"
	"shaderx/internal/reach"
	"shaderx/internal/source"
	"shaderx/internal/symbols"
)

const src = `
vertex_input VSIn { float3 position semantic( POSITION ) format( FLOAT32 ); };
vertex_output VSOut { float4 position semantic( POSITION ); };
fragment_input PSIn { float4 position semantic( POSITION ); };
fragment_output PSOut { float4 color semantic( COLOR ) target( 0 ); };

struct Light { float3 dir; float4 color; };
struct Unused { float x; };
cbuffer( 0 ) Globals { float4x4 mvp; };

texture2D( 0 ) albedo;
texture2D( 1 ) never;

float4 shade( Light l ) { return l.color; }
float4 helper( float4 c ) { Light l; l.color = c; return shade( l ); }
float4 dead() { return float4( 0.0, 0.0, 0.0, 0.0 ); }

void vertex_main( VSIn input, VSOut output, Globals globals )
{
	output.position = mul( globals.mvp, float4( input.position, 1.0 ) );
}

void fragment_main( PSIn input, PSOut output )
{
	output.color = helper( sample_texture2D( albedo, input.position.xy ) );
}
`

func parse(t *testing.T) parser.Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("reach.shader", []byte(src))
	res, err := parser.ParseFile(context.Background(), fs, id, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return res
}

func emitted(res parser.Result, seen *reach.Seen) []string {
	var names []string
	for _, id := range res.Builder.Program {
		if !seen.Item(res.Builder, res.Symbols, id) {
			continue
		}
		item := res.Builder.Items.Get(id)
		switch item.Kind {
		case ast.ItemStruct:
			names = append(names, res.Symbols.TypeName(res.Symbols.Struct(item.Struct).Type))
		case ast.ItemTexture:
			names = append(names, res.Symbols.Variable(res.Symbols.Texture(item.Texture).Variable).Name)
		case ast.ItemFunc:
			names = append(names, res.Symbols.Function(item.Func).Name)
		}
	}
	return names
}

func TestAnalyzePerStage(t *testing.T) {
	res := parse(t)
	tests := []struct {
		stage symbols.Stage
		want  []string
	}{
		{symbols.StageVertex, []string{"VSIn", "VSOut", "Globals", "vertex_main"}},
		{symbols.StageFragment, []string{"PSIn", "PSOut", "Light", "albedo", "shade", "helper", "fragment_main"}},
	}
	for _, tt := range tests {
		t.Run(tt.stage.String(), func(t *testing.T) {
			seen := reach.Analyze(res.Builder, res.Symbols, res.EntryItems[tt.stage])
			if !seen.HasEntry || seen.Entry != res.Entries[tt.stage] {
				t.Fatalf("entry = %v/%d, want %d", seen.HasEntry, seen.Entry, res.Entries[tt.stage])
			}
			got := emitted(res, &seen)
			if len(got) != len(tt.want) {
				t.Fatalf("emitted %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("emitted %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestAnalyzeMarksBuiltins(t *testing.T) {
	res := parse(t)
	seen := reach.Analyze(res.Builder, res.Symbols, res.EntryItems[symbols.StageFragment])
	if !seen.Function(symbols.IntrinsicSampleTexture2D) {
		t.Fatalf("sample intrinsic must be seen")
	}
	if seen.Function(symbols.IntrinsicMul) {
		t.Fatalf("mul is only used by the vertex stage")
	}
	for _, typ := range []symbols.TypeID{symbols.TypeFloat4, symbols.TypeFloat3, symbols.TypeTexture2D} {
		if !seen.Type(typ) {
			t.Fatalf("type %s must be seen", symbols.PrimitiveName(typ))
		}
	}
	never, _ := res.Symbols.LookupTexture("never")
	if seen.Texture(never) {
		t.Fatalf("unused texture marked as seen")
	}
}

func TestAnalyzeMissingStage(t *testing.T) {
	res := parse(t)
	seen := reach.Analyze(res.Builder, res.Symbols, res.EntryItems[symbols.StageCompute])
	if seen.HasEntry {
		t.Fatalf("compute stage is absent")
	}
	for _, id := range res.Builder.Program {
		if seen.Item(res.Builder, res.Symbols, id) {
			t.Fatalf("absent stage must not emit items")
		}
	}
}
