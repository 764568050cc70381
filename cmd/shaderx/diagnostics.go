package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"shaderx/internal/diag"
	"shaderx/internal/diagfmt"
	"shaderx/internal/driver"
	"shaderx/internal/source"
)

// errReported marks a failure whose diagnostics were already printed.
var errReported = errors.New("compilation failed")

func alreadyReported(err error) bool {
	return errors.Is(err, errReported)
}

// diagEntries collects warnings from every file and the fatal errors, in
// input order.
func diagEntries(br *driver.BuildResult) []diagfmt.Entry {
	var entries []diagfmt.Entry
	for _, f := range br.Files {
		if f.Bag != nil {
			for _, d := range f.Bag.Items() {
				e := diagfmt.Entry{Diagnostic: d}
				if d.Primary == (source.Span{}) {
					e.Path = displayPath(f.Path)
				}
				entries = append(entries, e)
			}
		}
		if f.Err == nil {
			continue
		}
		if de, ok := diag.AsError(f.Err); ok {
			path := de.Path
			if path == "" && de.Diagnostic.Primary == (source.Span{}) {
				path = displayPath(f.Path)
			}
			entries = append(entries, diagfmt.Entry{Diagnostic: de.Diagnostic, Path: path})
			continue
		}
		entries = append(entries, diagfmt.Entry{
			Diagnostic: diag.NewError(diag.UnknownCode, source.Span{}, f.Err.Error()),
			Path:       displayPath(f.Path),
		})
	}
	return entries
}

// printEntries writes diagnostics in the chosen format. In pretty mode
// at most max entries are printed.
func printEntries(w io.Writer, entries []diagfmt.Entry, fs *source.FileSet, format string, g globalFlags) error {
	switch format {
	case "json":
		return diagfmt.JSON(w, entries, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			Max:              g.maxDiagnostics,
			IncludeNotes:     true,
		})
	case "pretty", "":
		opts := diagfmt.PrettyOpts{Color: g.color, PathMode: diagfmt.PathModeRelative, ShowNotes: true}
		for i, e := range entries {
			if g.maxDiagnostics > 0 && i == g.maxDiagnostics {
				fmt.Fprintf(w, "... %d more\n", len(entries)-i)
				break
			}
			if i > 0 {
				fmt.Fprintln(w)
			}
			diagfmt.PrettyError(w, &diag.Error{Diagnostic: e.Diagnostic, Path: e.Path}, fs, opts)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// reportError prints a single error; compile errors get the full layout.
func reportError(err error, fs *source.FileSet, g globalFlags) error {
	de, ok := diag.AsError(err)
	if !ok {
		return err
	}
	diagfmt.PrettyError(os.Stderr, de, fs, diagfmt.PrettyOpts{Color: g.color, PathMode: diagfmt.PathModeRelative, ShowNotes: true})
	return errReported
}

// displayPath matches the normalisation source.FileSet applies on load.
func displayPath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
