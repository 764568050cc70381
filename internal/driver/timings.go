package driver

import (
	"encoding/json"
	"fmt"

	"shaderx/internal/diag"
	"shaderx/internal/observ"
	"shaderx/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Files   int                  `json:"files"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// TimingDiagnostic packs a timer report into an ObsTimings diagnostic.
// The JSON payload travels in the first note so JSON output carries it.
func TimingDiagnostic(report observ.Report, files int) (diag.Diagnostic, error) {
	payload := timingPayload{Kind: "build", Files: files, TotalMS: report.TotalMS, Phases: report.Phases}
	data, err := json.Marshal(payload)
	if err != nil {
		return diag.Diagnostic{}, err
	}
	d := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{},
		fmt.Sprintf("timings (%s): total %.2f ms, %d files", payload.Kind, payload.TotalMS, files))
	return d.WithNote(source.Span{}, string(data)), nil
}
