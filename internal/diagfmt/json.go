package diagfmt

import (
	"encoding/json"
	"io"

	"shaderx/internal/diag"
	"shaderx/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// makeLocation создаёт LocationJSON из Span; nil, если у span нет файла.
func makeLocation(span source.Span, path string, fs *source.FileSet, opts JSONOpts) *LocationJSON {
	f := lookupFile(fs, span, path)
	if f == nil {
		if path == "" {
			return nil
		}
		return &LocationJSON{File: path}
	}
	loc := &LocationJSON{
		File:      formatPath(f, fs, opts.PathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if path != "" {
		loc.File = path
	}

	// Добавляем позиции строк/колонок если требуется
	if opts.IncludePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

func diagnosticJSON(d diag.Diagnostic, path string, fs *source.FileSet, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: makeLocation(d.Primary, path, fs, opts),
	}
	includeNotes := opts.IncludeNotes || d.Code == diag.ObsTimings
	if includeNotes && len(d.Notes) > 0 {
		out.Notes = make([]NoteJSON, len(d.Notes))
		for j, note := range d.Notes {
			out.Notes[j] = NoteJSON{
				Message:  note.Msg,
				Location: makeLocation(note.Span, path, fs, opts),
			}
		}
	}
	return out
}

// Entry is one diagnostic to render; Path overrides the span's file.
type Entry struct {
	Diagnostic diag.Diagnostic
	Path       string
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(entries []Entry, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	n := len(entries)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	diagnostics := make([]DiagnosticJSON, 0, n)
	for _, e := range entries[:n] {
		diagnostics = append(diagnostics, diagnosticJSON(e.Diagnostic, e.Path, fs, opts))
	}
	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// BagEntries lists the items of bag without a path override.
func BagEntries(bag *diag.Bag) []Entry {
	items := bag.Items()
	out := make([]Entry, len(items))
	for i, d := range items {
		out[i] = Entry{Diagnostic: d}
	}
	return out
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, entries []Entry, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(entries, fs, opts))
}
