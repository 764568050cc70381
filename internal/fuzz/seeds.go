package fuzztests

import (
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// languageSeeds cover every declaration kind and statement form.
var languageSeeds = []string{
	`vertex_input V { float3 p semantic( POSITION ) format( FLOAT32 ); float4 c format( UNORM8 ); };
vertex_output O { float4 p semantic( POSITION ); float4 c; };
cbuffer( 0 ) Camera { float4x4 mvp; float4 tint[4]; };
void vertex_main( V input, O output, Camera camera )
{
	output.p = mul( camera.mvp, float4( input.p, 1.0 ) );
	output.c = input.c * camera.tint[0];
}
`,
	`fragment_input I { float4 p semantic( POSITION ); float2 uv; };
fragment_output F { float4 c semantic( COLOR ) target( 0 ); float d semantic( DEPTH ); };
texture2D( 0 ) albedo;
textureCube( 1 ) sky;
float4 shade( float2 uv ) { return sample_texture2D( albedo, uv ); }
void fragment_main( I input, F output )
{
	if ( input.uv.x > 0.5 ) { output.c = shade( input.uv ); } else { discard; }
	output.d = 0.0;
}
`,
	`compute_input CI { uint3 id semantic( POSITION ); };
compute_output CO { float v; };
void compute_main( CI input, CO output )
{
	float acc = 0.0;
	for ( int i = 0; i < 4; i++ ) { acc += float( i ); }
	while ( acc > 1.0 ) { acc = acc * 0.5; }
	do { acc -= 0.1; } while ( acc > 0.0 );
	switch ( int( acc ) ) { case 0: acc = 1.0; break; default: break; }
	output.v = acc;
}
`,
	"#pragma vertex\nvoid main() {}\n#pragma fragment\nvoid main() {}\n",
	"struct S { float a; }; /* unterminated",
	"void f( out const float x ) {}",
	"cbuffer( 999 ) Big { float a; };",
	"float x = 1e99999;",
	"\"string\" 'c' @ $",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add(clampSeed([]byte(s)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
