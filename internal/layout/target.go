package layout

// Target describes the packing rules a layout is computed for.
type Target struct {
	Name string // "std140" или "packed"

	// Packed lays members back to back using their storage format sizes.
	Packed bool
	// MinArrayStride rounds array and matrix column strides up to at least this many bytes.
	MinArrayStride int
	// BlockAlign is the minimum alignment of a whole block.
	BlockAlign int
}

// Std140 is the uniform block layout shared by GLSL and the C++ cbuffer structs.
func Std140() Target {
	return Target{
		Name:           "std140",
		MinArrayStride: 16,
		BlockAlign:     16,
	}
}

// PackedVertex is the tightly packed vertex buffer layout.
func PackedVertex() Target {
	return Target{
		Name:       "packed",
		Packed:     true,
		BlockAlign: 1,
	}
}
