package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("a.shader", []byte("struct A {};"), 0)
	id2 := fs.Add("a.shader", []byte("struct B {};"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("unexpected ids %d %d", id1, id2)
	}

	latest, ok := fs.GetLatest("a.shader")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "struct A {};" {
		t.Fatalf("first version content changed: %q", got)
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("v.shader", []byte("\xEF\xBB\xBFa\r\nb\r\n"))
	f := fs.Get(id)

	if string(f.Content) != "a\nb\n" {
		t.Fatalf("content = %q", f.Content)
	}
	for _, flag := range []FileFlags{FileVirtual, FileHadBOM, FileNormalizedCRLF} {
		if f.Flags&flag == 0 {
			t.Errorf("flag %b not set (flags=%b)", flag, f.Flags)
		}
	}
	want := []uint32{1, 3}
	if len(f.LineIdx) != len(want) || f.LineIdx[0] != want[0] || f.LineIdx[1] != want[1] {
		t.Fatalf("LineIdx = %v, want %v", f.LineIdx, want)
	}
}

func TestNormalizeNFC(t *testing.T) {
	// "e" + combining acute -> U+00E9
	content, flags := Normalize([]byte("// caf\x65\xcc\x81\n"))
	if flags&FileNormalizedNFC == 0 {
		t.Fatal("expected NFC flag")
	}
	if string(content) != "// café\n" {
		t.Fatalf("content = %q", content)
	}

	if _, flags := Normalize([]byte("float4 x;\n")); flags != 0 {
		t.Fatalf("ascii input should not be flagged, got %b", flags)
	}
}

func TestResolveAndGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.shader", []byte("line one\n\tline two\nthree"))
	f := fs.Get(id)

	tests := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{8, 1, 9}, // сам '\n' принадлежит первой строке
		{9, 2, 1},
		{10, 2, 2},
		{19, 3, 1},
	}
	for _, tt := range tests {
		lc := f.Position(tt.off)
		if lc.Line != tt.line || lc.Col != tt.col {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.off, lc.Line, lc.Col, tt.line, tt.col)
		}
	}

	start, _ := fs.Resolve(Span{File: id, Start: 10, End: 14})
	if start.Line != 2 || start.Col != 2 {
		t.Fatalf("Resolve start = %+v", start)
	}
	if got := f.GetLine(2); got != "\tline two" {
		t.Fatalf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(3); got != "three" {
		t.Fatalf("GetLine(3) = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("GetLine(4) = %q", got)
	}
	if got := f.LineStart(12); got != 9 {
		t.Fatalf("LineStart(12) = %d", got)
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "disk.shader")
	if err := os.WriteFile(path, []byte("a\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if f.Flags&FileVirtual != 0 {
		t.Fatal("disk file must not be virtual")
	}
	if got := f.FormatPath("relative", dir); got != "disk.shader" {
		t.Fatalf("relative path = %q", got)
	}
	if got := f.FormatPath("basename", ""); got != "disk.shader" {
		t.Fatalf("basename = %q", got)
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "file.shader")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}
