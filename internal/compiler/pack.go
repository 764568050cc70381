package compiler

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"shaderx/internal/symbols"
)

// DiskShader locates the stages of one shader inside the blob.
// Absent stages have offset and size zero.
type DiskShader struct {
	Name         string
	Offset       [symbols.StageCount]uint32
	Size         [symbols.StageCount]uint32
	VertexFormat uint32
}

// Blob is the concatenated stage text of every shader.
type Blob struct {
	Data    []byte
	Shaders []DiskShader
}

// Pack appends the stages of each result to one buffer in result order.
func Pack(results []*Result) (*Blob, error) {
	var buf bytes.Buffer
	blob := &Blob{Shaders: make([]DiskShader, 0, len(results))}
	for _, r := range results {
		ds := DiskShader{Name: r.Name, VertexFormat: r.VertexFormat}
		for stage, o := range r.Stages {
			if o.Empty() {
				continue
			}
			offset, err := safecast.Conv[uint32](buf.Len())
			if err != nil {
				return nil, fmt.Errorf("pack %s: binary is too large for %s shader: %w", r.Name, symbols.Stage(stage), err) // #nosec G115
			}
			size, err := safecast.Conv[uint32](len(o.Text))
			if err != nil {
				return nil, fmt.Errorf("pack %s: %s shader is too large: %w", r.Name, symbols.Stage(stage), err) // #nosec G115
			}
			ds.Offset[stage] = offset
			ds.Size[stage] = size
			buf.WriteString(o.Text)
		}
		blob.Shaders = append(blob.Shaders, ds)
	}
	blob.Data = buf.Bytes()
	return blob, nil
}

// Stage returns the text of one stage of shader i.
func (b *Blob) Stage(i int, stage symbols.Stage) []byte {
	ds := b.Shaders[i]
	return b.Data[ds.Offset[stage] : ds.Offset[stage]+ds.Size[stage]]
}
