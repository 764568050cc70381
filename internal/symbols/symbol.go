package symbols

import (
	"shaderx/internal/source"
)

// Type is a built-in primitive or a user structure type.
type Type struct {
	Name        string
	Builtin     bool
	Global      bool // true для всех структур кроме обычного struct
	Kind        StructKind
	Struct      StructID
	MemberFirst VariableID
	MemberCount uint32
	Span        source.Span
}

// Variable covers parameters, locals, structure members and texture bindings.
type Variable struct {
	Name     string
	Type     TypeID
	Format   Format
	Semantic Semantic
	ArrayX   uint32 // 0 — не массив
	ArrayY   uint32
	Slot     int
	Const    bool
	In       bool
	Out      bool
	Member   bool
	Texture  TextureID
	Span     source.Span
}

// IsArray reports whether the variable was declared with array dimensions.
func (v *Variable) IsArray() bool { return v.ArrayX != 0 }

// Function is a user function or an intrinsic.
type Function struct {
	Name       string
	Builtin    bool
	Return     TypeID
	ParamFirst VariableID
	ParamCount uint32
	Span       source.Span
}

// Structure records a declared structure and its binding slot.
type Structure struct {
	Type TypeID
	Kind StructKind
	Slot int
}

// Texture records a texture binding.
type Texture struct {
	Kind     TextureKind
	Variable VariableID
	Slot     int
}
