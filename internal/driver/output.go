package driver

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"shaderx/internal/compiler"
	"shaderx/internal/symbols"
)

// Output file names of a build.
const (
	GfxHeaderName    = "gfx.generated.hpp"
	GfxSourceName    = "gfx.generated.cpp"
	GfxAPIHeaderName = "gfx.api.generated.hpp"
	GfxAPISourceName = "gfx.api.generated.cpp"
	BlobName         = "shaders.bin"
)

// StageFileName is the file a stage of r is written to.
func StageFileName(r *compiler.Result, stage symbols.Stage) string {
	return fmt.Sprintf("%s.%s.generated.%s", r.Name, stage, r.Target.Ext())
}

// WrittenFile is one file of WriteOutputs.
type WrittenFile struct {
	Path    string
	Changed bool
}

// WriteOutputs writes stage sources, the packed blob and the C++ tables
// into dir. Files whose content did not change are left untouched.
func WriteOutputs(dir string, br *BuildResult) ([]WrittenFile, error) {
	if br.Blob == nil {
		return nil, errors.New("write outputs: build has no packed blob")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	type entry struct {
		name string
		data []byte
	}
	var entries []entry
	for _, r := range br.Results() {
		for stage := range symbols.StageCount {
			if !r.HasStage(stage) {
				continue
			}
			entries = append(entries, entry{StageFileName(r, stage), []byte(r.Stages[stage].Text)})
		}
	}
	entries = append(entries,
		entry{BlobName, br.Blob.Data},
		entry{GfxHeaderName, []byte(br.Gfx.Header)},
		entry{GfxSourceName, []byte(br.Gfx.Source)},
		entry{GfxAPIHeaderName, []byte(br.Gfx.APIHeader)},
		entry{GfxAPISourceName, []byte(br.Gfx.APISource)},
	)

	written := make([]WrittenFile, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(dir, e.name)
		changed, err := writeIfChanged(path, e.data)
		if err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, WrittenFile{Path: path, Changed: changed})
	}
	return written, nil
}

func writeIfChanged(path string, data []byte) (bool, error) {
	if old, err := os.ReadFile(path); err == nil && bytes.Equal(old, data) {
		return false, nil
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return false, err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return false, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return false, err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, err
	}
	return true, nil
}
