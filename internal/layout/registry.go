package layout

import (
	"hash/crc32"
	"maps"
	"strings"
	"sync"

	"fortio.org/safecast"

	"shaderx/internal/symbols"
)

// DeclKind selects the registry namespace of a Decl.
type DeclKind uint8

const (
	DeclVertexFormat DeclKind = iota
	DeclConstantBuffer
)

func (k DeclKind) String() string {
	switch k {
	case DeclVertexFormat:
		return "vertex_format"
	case DeclConstantBuffer:
		return "cbuffer"
	default:
		return "decl(?)"
	}
}

// Decl is a layout a generator found while emitting one stage.
// Decls are registered after generation, in file order.
type Decl struct {
	Kind   DeclKind
	Name   string
	Stage  symbols.Stage
	Slot   int
	Fields []Field

	// Target and Side carry back-end text attached to a vertex format
	// the first time it is seen for that target.
	Target string
	Side   string
}

// VertexFormat is a registered vertex_input layout.
type VertexFormat struct {
	ID       uint32
	Name     string
	Checksum uint32
	Fields   []Field
	Layout   TypeLayout
	Header   string

	side map[string]string
}

// Side returns the back-end text attached for target.
func (v *VertexFormat) Side(target string) string {
	return v.side[target]
}

// ConstantBuffer is a registered cbuffer layout.
type ConstantBuffer struct {
	ID       uint32
	Name     string
	Checksum uint32
	Fields   []Field
	Layout   TypeLayout
	Header   string
	Source   string
}

// Registry is the process-wide set of vertex formats and constant buffers.
// A name maps to one layout; redeclaring it with other member types is an error.
type Registry struct {
	mu sync.Mutex

	std140 *LayoutEngine
	packed *LayoutEngine

	vertexFormats []*VertexFormat
	vertexIndex   map[uint32]uint32
	cbuffers      []*ConstantBuffer
	cbufferIndex  map[uint32]uint32
}

func NewRegistry() *Registry {
	return &Registry{
		std140:       New(Std140()),
		packed:       New(PackedVertex()),
		vertexIndex:  make(map[uint32]uint32),
		cbufferIndex: make(map[uint32]uint32),
	}
}

// checksums returns the name key and the member-type checksum.
func checksums(name string, fields []Field) (key, sum uint32) {
	var sb strings.Builder
	for _, f := range fields {
		sb.WriteString(symbols.PrimitiveName(f.Type))
	}
	return crc32.ChecksumIEEE([]byte(name)), crc32.ChecksumIEEE([]byte(sb.String()))
}

// RegisterVertexFormat returns the format registered under name, creating it
// if absent. created is false when an identical format already existed.
func (r *Registry) RegisterVertexFormat(name string, fields []Field) (*VertexFormat, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerVertexFormat(name, fields)
}

func (r *Registry) registerVertexFormat(name string, fields []Field) (*VertexFormat, bool, error) {
	key, sum := checksums(name, fields)
	if idx, ok := r.vertexIndex[key]; ok {
		vf := r.vertexFormats[idx]
		if vf.Checksum != sum {
			return vf, false, &LayoutError{Kind: LayoutErrConflict, Name: name, Decl: DeclVertexFormat}
		}
		return vf, false, nil
	}
	l, err := r.packed.StructLayout(fields)
	if err != nil {
		return nil, false, err
	}
	id, err := safecast.Conv[uint32](len(r.vertexFormats))
	if err != nil {
		return nil, false, &LayoutError{Kind: LayoutErrLengthConversion, Field: name, Err: err}
	}
	vf := &VertexFormat{
		ID:       id,
		Name:     name,
		Checksum: sum,
		Fields:   fields,
		Layout:   l,
		side:     make(map[string]string, 2),
	}
	vf.Header = vertexFormatHeader(vf)
	r.vertexFormats = append(r.vertexFormats, vf)
	r.vertexIndex[key] = id
	return vf, true, nil
}

// RegisterConstantBuffer is RegisterVertexFormat for cbuffers.
func (r *Registry) RegisterConstantBuffer(name string, fields []Field) (*ConstantBuffer, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerConstantBuffer(name, fields)
}

func (r *Registry) registerConstantBuffer(name string, fields []Field) (*ConstantBuffer, bool, error) {
	key, sum := checksums(name, fields)
	if idx, ok := r.cbufferIndex[key]; ok {
		cb := r.cbuffers[idx]
		if cb.Checksum != sum {
			return cb, false, &LayoutError{Kind: LayoutErrConflict, Name: name, Decl: DeclConstantBuffer}
		}
		return cb, false, nil
	}
	l, err := r.std140.StructLayout(fields)
	if err != nil {
		return nil, false, err
	}
	id, err := safecast.Conv[uint32](len(r.cbuffers))
	if err != nil {
		return nil, false, &LayoutError{Kind: LayoutErrLengthConversion, Field: name, Err: err}
	}
	cb := &ConstantBuffer{
		ID:       id,
		Name:     name,
		Checksum: sum,
		Fields:   fields,
		Layout:   l,
	}
	cb.Header = constantBufferHeader(cb)
	cb.Source = constantBufferSource(cb)
	r.cbuffers = append(r.cbuffers, cb)
	r.cbufferIndex[key] = id
	return cb, true, nil
}

// AttachVertexSource records back-end text for a vertex format unless the
// target already has some.
func (r *Registry) AttachVertexSource(id uint32, target, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attach(id, target, text)
}

func (r *Registry) attach(id uint32, target, text string) {
	if int(id) >= len(r.vertexFormats) || text == "" {
		return
	}
	vf := r.vertexFormats[id]
	if _, ok := vf.side[target]; !ok {
		vf.side[target] = text
	}
}

// Register applies one generator Decl and returns the registry ID.
func (r *Registry) Register(d Decl) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch d.Kind {
	case DeclVertexFormat:
		vf, _, err := r.registerVertexFormat(d.Name, d.Fields)
		if err != nil {
			return 0, err
		}
		r.attach(vf.ID, d.Target, d.Side)
		return vf.ID, nil
	default:
		cb, _, err := r.registerConstantBuffer(d.Name, d.Fields)
		if err != nil {
			return 0, err
		}
		return cb.ID, nil
	}
}

// VertexFormats returns a snapshot of the registered formats in ID order.
func (r *Registry) VertexFormats() []VertexFormat {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]VertexFormat, len(r.vertexFormats))
	for i, vf := range r.vertexFormats {
		out[i] = *vf
		out[i].side = maps.Clone(vf.side)
	}
	return out
}

// ConstantBuffers returns a snapshot of the registered cbuffers in ID order.
func (r *Registry) ConstantBuffers() []ConstantBuffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ConstantBuffer, len(r.cbuffers))
	for i, cb := range r.cbuffers {
		out[i] = *cb
	}
	return out
}
