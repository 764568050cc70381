package layout

import (
	"fortio.org/safecast"

	"shaderx/internal/symbols"
)

// TypeLayout is the byte layout of a type or member list for a specific Target.
type TypeLayout struct {
	Size  int
	Align int

	// Arrays and matrices: distance between elements (columns).
	Stride int

	// Struct-only:
	FieldOffsets []int
	FieldAligns  []int
	FieldSizes   []int
}

// Field is one member of a vertex format or constant buffer.
type Field struct {
	Name   string
	Type   symbols.TypeID
	ArrayX uint32
	ArrayY uint32
	Format symbols.Format // только для vertex_input
}

func (f Field) elements() (int, error) {
	if f.ArrayX == 0 {
		return 1, nil
	}
	n := uint64(f.ArrayX)
	if f.ArrayY != 0 {
		n *= uint64(f.ArrayY)
	}
	return safecast.Conv[int](n)
}

// LayoutEngine computes member offsets for one Target.
// It is not safe for concurrent use; Registry serialises access.
type LayoutEngine struct {
	Target Target

	cache *cache
}

// New creates a new LayoutEngine for the specified target.
func New(target Target) *LayoutEngine {
	return &LayoutEngine{
		Target: target,
		cache:  newCache(),
	}
}

// LayoutOf computes and caches the layout of a built-in type.
func (e *LayoutEngine) LayoutOf(t symbols.TypeID) (TypeLayout, error) {
	if e == nil {
		return TypeLayout{Size: 0, Align: 1}, nil
	}
	if e.cache == nil {
		e.cache = newCache()
	}
	if cached, ok := e.cache.get(t); ok {
		return cached, nil
	}
	l, err := e.computeLayout(t)
	if err != nil {
		return l, err
	}
	e.cache.put(t, &l)
	return l, nil
}

// SizeOf returns the size of a type in bytes.
func (e *LayoutEngine) SizeOf(t symbols.TypeID) (int, error) {
	l, err := e.LayoutOf(t)
	return l.Size, err
}

// AlignOf returns the alignment requirement of a type in bytes.
func (e *LayoutEngine) AlignOf(t symbols.TypeID) (int, error) {
	l, err := e.LayoutOf(t)
	return l.Align, err
}

// FieldLayout returns the layout of a single member, arrays included.
func (e *LayoutEngine) FieldLayout(f Field) (TypeLayout, error) {
	var (
		base TypeLayout
		err  error
	)
	if e.Target.Packed {
		base, err = e.packedLayout(f)
	} else {
		base, err = e.LayoutOf(f.Type)
	}
	if err != nil {
		if le, ok := err.(*LayoutError); ok && le.Field == "" {
			le.Field = f.Name
		}
		return base, err
	}
	n, convErr := f.elements()
	if convErr != nil {
		return base, &LayoutError{Kind: LayoutErrLengthConversion, Type: f.Type, Field: f.Name, Err: convErr}
	}
	if f.ArrayX == 0 {
		return base, nil
	}
	return e.arrayLayout(base, n), nil
}

// StructLayout lays members out in declaration order.
func (e *LayoutEngine) StructLayout(fields []Field) (TypeLayout, error) {
	offsets := make([]int, len(fields))
	aligns := make([]int, len(fields))
	sizes := make([]int, len(fields))

	size := 0
	align := 1
	for i := range fields {
		fl, err := e.FieldLayout(fields[i])
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		fAlign := fl.Align
		if fAlign <= 0 {
			fAlign = 1
		}
		size = roundUp(size, fAlign)
		offsets[i] = size
		aligns[i] = fAlign
		sizes[i] = fl.Size
		size += fl.Size
		align = maxInt(align, fAlign)
	}
	align = maxInt(align, e.Target.BlockAlign)
	size = roundUp(size, align)
	return TypeLayout{
		Size:         size,
		Align:        align,
		FieldOffsets: offsets,
		FieldAligns:  aligns,
		FieldSizes:   sizes,
	}, nil
}
