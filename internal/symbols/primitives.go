package symbols

// Built-in types occupy TypeID 0..PrimitiveCount-1 in this order.
const (
	TypeVoid TypeID = iota
	TypeBool
	TypeBool2
	TypeBool3
	TypeBool4
	TypeInt
	TypeInt2
	TypeInt3
	TypeInt4
	TypeUint
	TypeUint2
	TypeUint3
	TypeUint4
	TypeFloat
	TypeFloat2
	TypeFloat3
	TypeFloat4
	TypeFloat2x2
	TypeFloat3x3
	TypeFloat4x4
	TypeDouble
	TypeDouble2
	TypeDouble3
	TypeDouble4
	TypeDouble2x2
	TypeDouble3x3
	TypeDouble4x4
	TypeTexture1D
	TypeTexture1DArray
	TypeTexture2D
	TypeTexture2DArray
	TypeTexture3D
	TypeTextureCube
	TypeTextureCubeArray
	PrimitiveCount
)

var primitiveNames = [PrimitiveCount]string{
	"void",
	"bool", "bool2", "bool3", "bool4",
	"int", "int2", "int3", "int4",
	"uint", "uint2", "uint3", "uint4",
	"float", "float2", "float3", "float4",
	"float2x2", "float3x3", "float4x4",
	"double", "double2", "double3", "double4",
	"double2x2", "double3x3", "double4x4",
	"Texture1D", "Texture1DArray", "Texture2D", "Texture2DArray",
	"Texture3D", "TextureCube", "TextureCubeArray",
}

// PrimitiveName returns the canonical spelling of a built-in type.
func PrimitiveName(id TypeID) string {
	if id < PrimitiveCount {
		return primitiveNames[id]
	}
	return ""
}

// Intrinsic functions occupy FunctionID 0..IntrinsicCount-1.
const (
	IntrinsicMul FunctionID = iota
	IntrinsicSampleTexture1D
	IntrinsicSampleTexture1DArray
	IntrinsicSampleTexture2D
	IntrinsicSampleTexture2DArray
	IntrinsicSampleTexture3D
	IntrinsicSampleTextureCube
	IntrinsicSampleTextureCubeArray
	IntrinsicSampleTexture2DLevel
	IntrinsicCount
)

var intrinsicNames = [IntrinsicCount]string{
	"mul",
	"sample_texture1D", "sample_texture1DArray",
	"sample_texture2D", "sample_texture2DArray",
	"sample_texture3D",
	"sample_textureCube", "sample_textureCubeArray",
	"sample_texture2DLevel",
}

// IsSampleIntrinsic reports whether fn is one of the texture sampling intrinsics.
func IsSampleIntrinsic(fn FunctionID) bool {
	return fn >= IntrinsicSampleTexture1D && fn <= IntrinsicSampleTexture2DLevel
}

// swizzleNames is the closed set of accepted swizzles on built-in vectors.
var swizzleNames = [...]string{
	"x", "y", "z", "w", "xy", "yz", "zw", "xyz", "yzw", "xyzw",
	"r", "g", "b", "a", "rg", "gb", "ba", "rgb", "gba", "rgba",
	"u", "v", "uv",
}

// IsPrimitive reports whether id is a built-in type.
func IsPrimitive(id TypeID) bool { return id < PrimitiveCount }

// IsTexture reports whether id is one of the texture types.
func IsTexture(id TypeID) bool { return id >= TypeTexture1D && id <= TypeTextureCubeArray }

// IsMatrix reports whether id is a square float/double matrix.
func IsMatrix(id TypeID) bool {
	return (id >= TypeFloat2x2 && id <= TypeFloat4x4) || (id >= TypeDouble2x2 && id <= TypeDouble4x4)
}

// IsVector reports whether id is a scalar or vector of bool/int/uint/float/double.
func IsVector(id TypeID) bool {
	return (id >= TypeBool && id <= TypeFloat4) || (id >= TypeDouble && id <= TypeDouble4)
}

// Width returns the component count of a scalar/vector (1..4) or the
// row count of a matrix; 0 for everything else.
func Width(id TypeID) uint32 {
	switch {
	case id >= TypeBool && id <= TypeFloat4:
		return uint32(id-TypeBool)%4 + 1
	case id >= TypeDouble && id <= TypeDouble4:
		return uint32(id-TypeDouble) + 1
	case id >= TypeFloat2x2 && id <= TypeFloat4x4:
		return uint32(id-TypeFloat2x2) + 2
	case id >= TypeDouble2x2 && id <= TypeDouble4x4:
		return uint32(id-TypeDouble2x2) + 2
	}
	return 0
}

// Scalar returns the scalar base type of a vector or matrix.
func Scalar(id TypeID) TypeID {
	switch {
	case id >= TypeBool && id <= TypeBool4:
		return TypeBool
	case id >= TypeInt && id <= TypeInt4:
		return TypeInt
	case id >= TypeUint && id <= TypeUint4:
		return TypeUint
	case id >= TypeFloat && id <= TypeFloat4x4:
		return TypeFloat
	case id >= TypeDouble && id <= TypeDouble4x4:
		return TypeDouble
	}
	return NoTypeID
}

// VectorOf returns the n-component vector of a scalar base (n in 1..4).
func VectorOf(scalar TypeID, n int) TypeID {
	if n < 1 || n > 4 {
		return NoTypeID
	}
	switch scalar {
	case TypeBool, TypeInt, TypeUint, TypeFloat, TypeDouble:
		return scalar + TypeID(n-1) // #nosec G115 -- n in 1..4
	}
	return NoTypeID
}

// VertexInputAllowed reports whether a vertex_input member may have type id.
func VertexInputAllowed(id TypeID) bool { return IsVector(id) }

// CBufferAllowed reports whether a cbuffer member may have type id.
func CBufferAllowed(id TypeID) bool { return id > TypeVoid && id <= TypeDouble4x4 }
