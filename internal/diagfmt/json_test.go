package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"shaderx/internal/diag"
	"shaderx/internal/diagfmt"
	"shaderx/internal/driver"
	"shaderx/internal/observ"
	"shaderx/internal/source"
)

func TestJSONPositionsAndMax(t *testing.T) {
	fs, span := fileWithError(t)
	entries := []diagfmt.Entry{
		{Diagnostic: diag.NewError(diag.SynUnexpectedToken, span, "first")},
		{Diagnostic: diag.NewError(diag.SynUnexpectedToken, span, "second")},
	}

	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, entries, fs, diagfmt.JSONOpts{IncludePositions: true, Max: 1}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SYN2001" || d.Message != "first" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Location == nil || d.Location.File != "sprite.shader" || d.Location.StartLine != 3 || d.Location.StartCol != 9 {
		t.Fatalf("unexpected location %+v", d.Location)
	}
}

func TestJSONPathOverride(t *testing.T) {
	entries := []diagfmt.Entry{{
		Diagnostic: diag.NewError(diag.ProjManifestInvalid, source.Span{}, "missing [package]"),
		Path:       "shaderx.toml",
	}}
	out := diagfmt.BuildDiagnosticsOutput(entries, source.NewFileSet(), diagfmt.JSONOpts{})
	loc := out.Diagnostics[0].Location
	if loc == nil || loc.File != "shaderx.toml" || loc.StartByte != 0 {
		t.Fatalf("unexpected location %+v", loc)
	}
}

func TestJSONTimingsKeepNote(t *testing.T) {
	timer := observ.NewTimer()
	idx := timer.Begin("parse")
	time.Sleep(time.Millisecond)
	timer.End(idx, "")

	d, err := driver.TimingDiagnostic(timer.Report(), 2)
	if err != nil {
		t.Fatalf("TimingDiagnostic: %v", err)
	}
	out := diagfmt.BuildDiagnosticsOutput([]diagfmt.Entry{{Diagnostic: d}}, nil, diagfmt.JSONOpts{})
	notes := out.Diagnostics[0].Notes
	if len(notes) != 1 {
		t.Fatalf("timings diagnostic must keep its note, got %+v", out.Diagnostics[0])
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(notes[0].Message), &payload); err != nil {
		t.Fatalf("note is not JSON: %v", err)
	}
	if payload["files"] != float64(2) {
		t.Fatalf("unexpected payload %v", payload)
	}
}
