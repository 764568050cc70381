package compiler

import (
	"fmt"
	"path/filepath"
	"strings"

	"shaderx/internal/gen"
	"shaderx/internal/source"
	"shaderx/internal/symbols"
)

// GLSLHeader opens every hand-written GLSL stage.
const GLSLHeader = "#version 410 core\n"

var pragmaMarkers = [symbols.StageCount]string{"#pragma vertex", "#pragma fragment", "#pragma compute"}

// SplitPragmaRegions cuts a hand-written GLSL file into stages. A region
// starts after its `#pragma <stage>` marker and runs to the next
// `#pragma` or the end of the file. Absent stages stay empty.
func SplitPragmaRegions(text string) [symbols.StageCount]string {
	var regions [symbols.StageCount]string
	for stage, marker := range pragmaMarkers {
		start := strings.Index(text, marker)
		if start < 0 {
			continue
		}
		body := text[start+len(marker):]
		if end := strings.Index(body, "#pragma"); end >= 0 {
			body = body[:end]
		}
		regions[stage] = GLSLHeader + body
	}
	return regions
}

// CompilePragma wraps the regions of a .glsl file as a GLSL result.
// The text passes through untouched; no layouts are declared.
func CompilePragma(fs *source.FileSet, id source.FileID) (*Result, error) {
	file := fs.Get(id)
	if file == nil {
		return nil, fmt.Errorf("compiler: unknown file id %d", id)
	}
	out := &Result{
		Name:   ShaderName(file.Path),
		Path:   file.Path,
		Target: gen.TargetGLSL,
	}
	for stage, text := range SplitPragmaRegions(string(file.Content)) {
		out.Stages[stage] = &gen.Output{Stage: symbols.Stage(stage), Target: gen.TargetGLSL, Text: text} // #nosec G115 -- stage < StageCount
	}
	return out, nil
}

// IsPragmaSource reports whether path takes the hand-written GLSL path.
func IsPragmaSource(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".glsl")
}
