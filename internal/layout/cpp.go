package layout

import (
	"fmt"
	"strings"

	"shaderx/internal/symbols"
)

// CPU-side element types of vertex formats, by storage format.
var vertexCPUTypes = [symbols.FormatCount]string{
	symbols.FormatUNORM8:  "u8",
	symbols.FormatUNORM16: "u16",
	symbols.FormatUNORM32: "u32",
	symbols.FormatSNORM8:  "i8",
	symbols.FormatSNORM16: "i16",
	symbols.FormatSNORM32: "i32",
	symbols.FormatUINT8:   "u8",
	symbols.FormatUINT16:  "u16",
	symbols.FormatUINT32:  "u32",
	symbols.FormatSINT8:   "i8",
	symbols.FormatSINT16:  "i16",
	symbols.FormatSINT32:  "i32",
	symbols.FormatFLOAT16: "float",
	symbols.FormatFLOAT32: "float",
}

// CPU-side types of cbuffer members.
var cbufferCPUTypes = map[symbols.TypeID]string{
	symbols.TypeVoid:      "void",
	symbols.TypeBool:      "bool",
	symbols.TypeBool2:     "boolv2",
	symbols.TypeBool3:     "boolv3",
	symbols.TypeBool4:     "boolv4",
	symbols.TypeInt:       "i32",
	symbols.TypeInt2:      "i32v2",
	symbols.TypeInt3:      "i32v3",
	symbols.TypeInt4:      "i32v4",
	symbols.TypeUint:      "u32",
	symbols.TypeUint2:     "u32v2",
	symbols.TypeUint3:     "u32v3",
	symbols.TypeUint4:     "u32v4",
	symbols.TypeFloat:     "float",
	symbols.TypeFloat2:    "floatv2",
	symbols.TypeFloat3:    "floatv3",
	symbols.TypeFloat4:    "floatv4",
	symbols.TypeFloat2x2:  "Matrix",
	symbols.TypeFloat3x3:  "Matrix",
	symbols.TypeFloat4x4:  "Matrix",
	symbols.TypeDouble:    "double",
	symbols.TypeDouble2:   "doublev2",
	symbols.TypeDouble3:   "doublev3",
	symbols.TypeDouble4:   "doublev4",
	symbols.TypeDouble2x2: "Matrix",
	symbols.TypeDouble3x3: "Matrix",
	symbols.TypeDouble4x4: "Matrix",
}

func writeDims(sb *strings.Builder, f Field) {
	if f.ArrayX > 0 {
		fmt.Fprintf(sb, "[%d]", f.ArrayX)
	}
	if f.ArrayY > 0 {
		fmt.Fprintf(sb, "[%d]", f.ArrayY)
	}
}

// vertexFormatHeader renders the GfxVertex struct of a format.
func vertexFormatHeader(vf *VertexFormat) string {
	var sb strings.Builder
	if vf.ID != 0 {
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\tstruct %s\n\t{\n", vf.Name)
	for _, f := range vf.Fields {
		sb.WriteString("\t\t")
		if f.Format < symbols.FormatCount {
			sb.WriteString(vertexCPUTypes[f.Format])
		}
		if n := symbols.Width(f.Type); n > 1 {
			fmt.Fprintf(&sb, "v%d", n)
		}
		sb.WriteString(" ")
		sb.WriteString(f.Name)
		writeDims(&sb, f)
		sb.WriteString(";\n")
	}
	sb.WriteString("\t};\n")
	return sb.String()
}

// constantBufferHeader renders the bGfxCBuffer struct of a cbuffer.
func constantBufferHeader(cb *ConstantBuffer) string {
	var sb strings.Builder
	if cb.ID != 0 {
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\tstruct alignas( 16 ) %s_t\n\t{\n", cb.Name)
	for _, f := range cb.Fields {
		typeName, ok := cbufferCPUTypes[f.Type]
		if !ok {
			typeName = symbols.PrimitiveName(f.Type)
		}
		fmt.Fprintf(&sb, "\t\t%s %s", typeName, f.Name)
		writeDims(&sb, f)
		sb.WriteString(";\n")
	}
	sb.WriteString("\n")
	sb.WriteString("\t\tvoid zero();\n")
	sb.WriteString("\t\tvoid upload() const;\n")
	fmt.Fprintf(&sb, "\t\tbool operator==( const %[1]s_t &other ) { return ( memory_compare( this, &other, sizeof( %[1]s_t ) ) == 0 ); }\n", cb.Name)
	fmt.Fprintf(&sb, "\t\tbool operator!=( const %[1]s_t &other ) { return ( memory_compare( this, &other, sizeof( %[1]s_t ) ) != 0 ); }\n", cb.Name)
	sb.WriteString("\t};\n")
	return sb.String()
}

// constantBufferSource renders zero() and upload() of a cbuffer.
func constantBufferSource(cb *ConstantBuffer) string {
	var sb strings.Builder
	if cb.ID != 0 {
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\tvoid %[1]s_t::zero()\n\t{\n\t\tmemory_set( this, 0, sizeof( %[1]s_t ) );\n\t}\n", cb.Name)
	fmt.Fprintf(&sb, "\n\tvoid %s_t::upload() const\n\t{\n", cb.Name)
	fmt.Fprintf(&sb, "\t\tauto *&resource = bGfx::gfxCBufferResources[%d];\n", cb.ID)
	sb.WriteString("\t\tbGfx::rb_constant_buffer_write_begin( resource );\n")
	sb.WriteString("\t\tbGfx::rb_constant_buffer_write( resource, this );\n")
	sb.WriteString("\t\tbGfx::rb_constant_buffer_write_end( resource );\n")
	sb.WriteString("\t}\n")
	return sb.String()
}
