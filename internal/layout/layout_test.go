package layout_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"shaderx/internal/layout"
	"shaderx/internal/symbols"
)

func TestStd140Primitives(t *testing.T) {
	e := layout.New(layout.Std140())
	tests := []struct {
		typ   symbols.TypeID
		size  int
		align int
	}{
		{symbols.TypeFloat, 4, 4},
		{symbols.TypeFloat2, 8, 8},
		{symbols.TypeFloat3, 12, 16},
		{symbols.TypeFloat4, 16, 16},
		{symbols.TypeInt3, 12, 16},
		{symbols.TypeBool, 4, 4},
		{symbols.TypeDouble, 8, 8},
		{symbols.TypeDouble2, 16, 16},
		{symbols.TypeDouble3, 24, 32},
		{symbols.TypeFloat2x2, 32, 16},
		{symbols.TypeFloat3x3, 48, 16},
		{symbols.TypeFloat4x4, 64, 16},
		{symbols.TypeDouble3x3, 96, 32},
		{symbols.TypeDouble4x4, 128, 32},
	}
	for _, tt := range tests {
		l, err := e.LayoutOf(tt.typ)
		if err != nil {
			t.Fatalf("%s: %v", symbols.PrimitiveName(tt.typ), err)
		}
		if l.Size != tt.size || l.Align != tt.align {
			t.Errorf("%s: size=%d align=%d, want %d/%d", symbols.PrimitiveName(tt.typ), l.Size, l.Align, tt.size, tt.align)
		}
	}
	// повторный запрос берётся из кэша
	if size, _ := e.SizeOf(symbols.TypeFloat4x4); size != 64 {
		t.Fatalf("cached float4x4 size = %d", size)
	}
	if _, err := e.LayoutOf(symbols.TypeTexture2D); err == nil {
		t.Fatal("textures have no std140 layout")
	}
}

func TestStd140Block(t *testing.T) {
	e := layout.New(layout.Std140())
	l, err := e.StructLayout([]layout.Field{
		{Name: "mvp", Type: symbols.TypeFloat4x4},
		{Name: "eye", Type: symbols.TypeFloat3},
		{Name: "time", Type: symbols.TypeFloat},
		{Name: "uv", Type: symbols.TypeFloat2},
		{Name: "colors", Type: symbols.TypeFloat, ArrayX: 2},
	})
	if err != nil {
		t.Fatalf("StructLayout: %v", err)
	}
	want := []int{0, 64, 76, 80, 96}
	for i, off := range want {
		if l.FieldOffsets[i] != off {
			t.Fatalf("offsets = %v, want %v", l.FieldOffsets, want)
		}
	}
	// float[2] — шаг массива округляется до 16
	if l.FieldSizes[4] != 32 || l.Size != 128 || l.Align != 16 {
		t.Fatalf("size=%d align=%d array=%d", l.Size, l.Align, l.FieldSizes[4])
	}
}

func TestPackedVertexLayout(t *testing.T) {
	e := layout.New(layout.PackedVertex())
	l, err := e.StructLayout([]layout.Field{
		{Name: "position", Type: symbols.TypeFloat3, Format: symbols.FormatFLOAT32},
		{Name: "uv", Type: symbols.TypeFloat2, Format: symbols.FormatUNORM16},
		{Name: "color", Type: symbols.TypeFloat4, Format: symbols.FormatUNORM8},
	})
	if err != nil {
		t.Fatalf("StructLayout: %v", err)
	}
	if l.FieldOffsets[1] != 12 || l.FieldOffsets[2] != 16 || l.Size != 20 {
		t.Fatalf("offsets=%v size=%d", l.FieldOffsets, l.Size)
	}
	_, err = e.StructLayout([]layout.Field{{Name: "m", Type: symbols.TypeFloat4x4}})
	var le *layout.LayoutError
	if !errors.As(err, &le) || le.Kind != layout.LayoutErrUnsupportedType || le.Field != "m" {
		t.Fatalf("matrix vertex member: %v", err)
	}
}

func vertexFields() []layout.Field {
	return []layout.Field{
		{Name: "position", Type: symbols.TypeFloat3, Format: symbols.FormatFLOAT32},
		{Name: "color", Type: symbols.TypeFloat4, Format: symbols.FormatUNORM8},
	}
}

func TestRegistryVertexFormats(t *testing.T) {
	reg := layout.NewRegistry()

	vf, created, err := reg.RegisterVertexFormat("Vertex", vertexFields())
	if err != nil || !created || vf.ID != 0 {
		t.Fatalf("first register: %+v %v %v", vf, created, err)
	}
	again, created, err := reg.RegisterVertexFormat("Vertex", vertexFields())
	if err != nil || created || again.ID != vf.ID {
		t.Fatalf("identical register: %v %v", created, err)
	}

	other := []layout.Field{{Name: "position", Type: symbols.TypeFloat2, Format: symbols.FormatFLOAT32}}
	_, _, err = reg.RegisterVertexFormat("Vertex", other)
	if err == nil || err.Error() != "Vertex format with name 'Vertex' already declared with a different layout" {
		t.Fatalf("conflict error = %v", err)
	}

	second, created, err := reg.RegisterVertexFormat("Sprite", other)
	if err != nil || !created || second.ID != 1 {
		t.Fatalf("second format: %v %v", created, err)
	}
	if !strings.HasPrefix(second.Header, "\n\tstruct Sprite\n") {
		t.Fatalf("header of a non-first format must start with a blank line:\n%s", second.Header)
	}

	wantHeader := "\tstruct Vertex\n\t{\n\t\tfloatv3 position;\n\t\tu8v4 color;\n\t};\n"
	if vf.Header != wantHeader {
		t.Fatalf("header:\n%q\nwant:\n%q", vf.Header, wantHeader)
	}
}

func TestRegistryConstantBuffers(t *testing.T) {
	reg := layout.NewRegistry()
	fields := []layout.Field{
		{Name: "mvp", Type: symbols.TypeFloat4x4},
		{Name: "tint", Type: symbols.TypeFloat4},
	}
	cb, created, err := reg.RegisterConstantBuffer("Globals", fields)
	if err != nil || !created {
		t.Fatalf("register: %v %v", created, err)
	}
	if cb.Layout.Size != 80 || cb.Layout.FieldOffsets[1] != 64 {
		t.Fatalf("layout = %+v", cb.Layout)
	}
	for _, want := range []string{
		"\tstruct alignas( 16 ) Globals_t\n",
		"\t\tMatrix mvp;\n",
		"\t\tfloatv4 tint;\n",
		"bool operator==( const Globals_t &other )",
	} {
		if !strings.Contains(cb.Header, want) {
			t.Fatalf("header misses %q:\n%s", want, cb.Header)
		}
	}
	if !strings.Contains(cb.Source, "bGfx::gfxCBufferResources[0]") {
		t.Fatalf("source:\n%s", cb.Source)
	}

	_, _, err = reg.RegisterConstantBuffer("Globals", fields[:1])
	var le *layout.LayoutError
	if !errors.As(err, &le) || le.Kind != layout.LayoutErrConflict {
		t.Fatalf("conflict = %v", err)
	}
	if !strings.HasPrefix(err.Error(), "CBuffer with name 'Globals'") {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestRegistryAttachOnce(t *testing.T) {
	reg := layout.NewRegistry()
	id, err := reg.Register(layout.Decl{
		Kind: layout.DeclVertexFormat, Name: "Vertex", Fields: vertexFields(),
		Target: "glsl", Side: "first",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	reg.AttachVertexSource(id, "glsl", "second")
	reg.AttachVertexSource(id, "hlsl", "desc")

	formats := reg.VertexFormats()
	if len(formats) != 1 || formats[0].Side("glsl") != "first" || formats[0].Side("hlsl") != "desc" {
		t.Fatalf("side text = %q/%q", formats[0].Side("glsl"), formats[0].Side("hlsl"))
	}
}

func TestRegistryConcurrentRegister(t *testing.T) {
	reg := layout.NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := reg.Register(layout.Decl{Kind: layout.DeclVertexFormat, Name: "Vertex", Fields: vertexFields()}); err != nil {
				t.Errorf("Register: %v", err)
			}
		}()
	}
	wg.Wait()
	if n := len(reg.VertexFormats()); n != 1 {
		t.Fatalf("formats = %d, want 1", n)
	}
}
