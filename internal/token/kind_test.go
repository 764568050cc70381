package token_test

import (
	"testing"

	"shaderx/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		text string
		want token.Kind
		ok   bool
	}{
		{"cbuffer", token.KwCBuffer, true},
		{"vertex_input", token.KwVertexInput, true},
		{"textureCubeArray", token.KwTextureCubeArray, true},
		{"POSITION", token.SemPosition, true},
		{"FLOAT32", token.FmtFLOAT32, true},
		{"discard", token.KwDiscard, true},
		{"position", token.Invalid, false},
		{"float3", token.Invalid, false},
		{"vertex_main", token.Invalid, false},
	}
	for _, tt := range tests {
		got, ok := token.LookupKeyword(tt.text)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("LookupKeyword(%q) = %v,%v; want %v,%v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKindGroups(t *testing.T) {
	if !token.KwStruct.IsStruct() || !token.KwComputeOutput.IsStruct() || token.KwTexture1D.IsStruct() {
		t.Fatal("struct range is wrong")
	}
	if token.KwTexture2DArray.TextureIndex() != 3 {
		t.Fatalf("texture2DArray index = %d", token.KwTexture2DArray.TextureIndex())
	}
	if token.SemColor.SemanticIndex() != 4 || !token.SemDepth.IsSemantic() {
		t.Fatal("semantic range is wrong")
	}
	if token.FmtFLOAT16.FormatIndex() != 12 || token.KwFormat.IsFormat() {
		t.Fatal("format range is wrong")
	}
	if token.KwFragmentOutput.StructIndex() != 5 {
		t.Fatalf("fragment_output index = %d", token.KwFragmentOutput.StructIndex())
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[token.Kind]string{
		token.ShlAssign:   "<<=",
		token.KwCBuffer:   "cbuffer",
		token.SemTexcoord: "TEXCOORD",
		token.IntLit:      "IntLit",
		token.EOF:         "EOF",
	} {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}

func TestTokenClassifiers(t *testing.T) {
	if !(token.Token{Kind: token.KwTrue}).IsLiteral() {
		t.Fatal("true must be a literal")
	}
	if !(token.Token{Kind: token.Question}).IsPunctOrOp() || (token.Token{Kind: token.KwIf}).IsPunctOrOp() {
		t.Fatal("punct range is wrong")
	}
	if !(token.Token{Kind: token.FmtUNORM8}).IsKeyword() || (token.Token{Kind: token.Ident}).IsKeyword() {
		t.Fatal("keyword range is wrong")
	}
}
