package layout

import (
	"shaderx/internal/symbols"
)

func scalarBytes(id symbols.TypeID) int {
	if symbols.Scalar(id) == symbols.TypeDouble {
		return 8
	}
	return 4
}

// computeLayout applies the std140 base alignment rules to a built-in type.
func (e *LayoutEngine) computeLayout(id symbols.TypeID) (TypeLayout, error) {
	switch {
	case symbols.IsVector(id):
		n := int(symbols.Width(id))
		scalar := scalarBytes(id)
		align := scalar
		switch n {
		case 2:
			align = 2 * scalar
		case 3, 4:
			align = 4 * scalar
		}
		return TypeLayout{Size: n * scalar, Align: align}, nil

	case symbols.IsMatrix(id):
		// матрица = массив столбцов
		width := symbols.Width(id)
		col, err := e.LayoutOf(symbols.VectorOf(symbols.Scalar(id), int(width)))
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		l := e.arrayLayout(col, int(width))
		return l, nil

	default:
		return TypeLayout{Size: 0, Align: 1}, &LayoutError{
			Kind:   LayoutErrUnsupportedType,
			Type:   id,
			Target: e.Target.Name,
		}
	}
}

// packedLayout sizes a vertex member by its storage format.
func (e *LayoutEngine) packedLayout(f Field) (TypeLayout, error) {
	if !symbols.IsVector(f.Type) {
		return TypeLayout{Size: 0, Align: 1}, &LayoutError{
			Kind:   LayoutErrUnsupportedType,
			Type:   f.Type,
			Field:  f.Name,
			Target: e.Target.Name,
		}
	}
	size := int(f.Format.Size() * symbols.Width(f.Type))
	return TypeLayout{Size: size, Align: 1}, nil
}

func (e *LayoutEngine) arrayLayout(elem TypeLayout, n int) TypeLayout {
	elemAlign := elem.Align
	if elemAlign <= 0 {
		elemAlign = 1
	}
	if !e.Target.Packed {
		elemAlign = maxInt(elemAlign, e.Target.MinArrayStride)
	}
	stride := roundUp(elem.Size, elemAlign)
	if n < 0 {
		n = 0
	}
	return TypeLayout{
		Size:   stride * n,
		Align:  elemAlign,
		Stride: stride,
	}
}

func roundUp(n, align int) int {
	if align <= 1 {
		return n
	}
	r := n % align
	if r == 0 {
		return n
	}
	return n + (align - r)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
