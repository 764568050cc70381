package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"shaderx/internal/diag"
	"shaderx/internal/source"
)

// caretIndent matches the "~~~~" lead of the caret line.
const caretIndent = "    "

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	SHADER COMPILE ERROR:
//	File: <path>:<line>
//
//	<Message> (<CODE>)
//	Line <line>:
//	    <строка без табуляций>
//	~~~~<по тильде на каждый не-таб символ до колонки>^
//
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, "", fs, opts)
	}
}

// PrettyError prints a fatal compile error. err.Path wins over the path
// of the span's file; a span whose file does not match err.Path is not
// shown, since layout and manifest errors carry no source location.
func PrettyError(w io.Writer, err *diag.Error, fs *source.FileSet, opts PrettyOpts) {
	prettyOne(w, err.Diagnostic, err.Path, fs, opts)
}

func prettyOne(w io.Writer, d diag.Diagnostic, path string, fs *source.FileSet, opts PrettyOpts) {
	c := severityColor(d.Severity)
	if opts.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	file := lookupFile(fs, d.Primary, path)
	display := path
	if file != nil && display == "" {
		display = formatPath(file, fs, opts.PathMode)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SHADER COMPILE %s:\n", d.Severity)
	var pos source.LineCol
	switch {
	case file != nil:
		pos = file.Position(d.Primary.Start)
		fmt.Fprintf(&sb, "File: %s:%d\n\n", display, pos.Line)
	case display != "":
		fmt.Fprintf(&sb, "File: %s\n\n", display)
	default:
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "%s (%s)\n", d.Message, d.Code.ID())
	if file != nil {
		line := file.GetLine(pos.Line)
		fmt.Fprintf(&sb, "Line %d:\n", pos.Line)
		fmt.Fprintf(&sb, "%s%s\n", caretIndent, strings.ReplaceAll(line, "\t", ""))
		fmt.Fprintf(&sb, "~~~~%s^\n", caretPad(line, pos.Col))
	}
	if opts.ShowNotes {
		for _, note := range d.Notes {
			if nf := lookupFile(fs, note.Span, path); nf != nil {
				np := nf.Position(note.Span.Start)
				fmt.Fprintf(&sb, "note: %s:%d: %s\n", formatPath(nf, fs, opts.PathMode), np.Line, note.Msg)
				continue
			}
			fmt.Fprintf(&sb, "note: %s\n", note.Msg)
		}
	}
	c.Fprint(w, sb.String())
}

// caretPad returns one '~' per display column before col, skipping tabs
// because the printed line has them removed.
func caretPad(line string, col uint32) string {
	end := min(int(col)-1, len(line))
	if end <= 0 {
		return ""
	}
	n := 0
	for _, r := range line[:end] {
		if r == '\t' {
			continue
		}
		n += runewidth.RuneWidth(r)
	}
	return strings.Repeat("~", n)
}

func lookupFile(fs *source.FileSet, span source.Span, path string) *source.File {
	if fs == nil || int(span.File) >= fs.Len() {
		return nil
	}
	f := fs.Get(span.File)
	if f == nil {
		return nil
	}
	if path != "" && f.Path != path {
		return nil
	}
	if span == (source.Span{}) && path != "" && len(f.Content) > 0 {
		// нулевой span у ошибок без позиции (раскладки, манифест)
		return nil
	}
	return f
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed)
	case diag.SevWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}
