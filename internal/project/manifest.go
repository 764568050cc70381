// Package project loads the shaderx.toml manifest and resolves the
// shader sources it names.
package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"shaderx/internal/diag"
	"shaderx/internal/gen"
	"shaderx/internal/parser"
	"shaderx/internal/source"
)

// Manifest is a loaded shaderx.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest tables.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
	Limits  LimitsConfig  `toml:"limits"`
	Naming  NamingConfig  `toml:"naming"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	Targets []string `toml:"targets"`
	Out     string   `toml:"out"`
	Sources []string `toml:"sources"`
	Jobs    int      `toml:"jobs"`
}

type LimitsConfig struct {
	BufferSlots  int `toml:"buffer_slots"`
	TextureSlots int `toml:"texture_slots"`
	TargetSlots  int `toml:"target_slots"`
}

type NamingConfig struct {
	// PrefixIdentifiers keeps the back end's default t_/f_/v_ prefixes.
	// When false, user identifiers are emitted unchanged.
	PrefixIdentifiers bool `toml:"prefix_identifiers"`
}

// SourceExts are the extensions picked up from source directories.
var SourceExts = []string{".shader", ".glsl"}

// Load finds shaderx.toml above startDir and decodes it. ok is false when
// there is no manifest.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadFile(path)
	return m, true, err
}

// LoadFile decodes the manifest at path. Problems with its contents are
// reported as *diag.Error with ProjManifestInvalid or ProjUnknownTarget.
func LoadFile(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, invalid(path, "failed to parse TOML: %v", err)
	}
	if !meta.IsDefined("package") {
		return nil, invalid(path, "missing [package]")
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, invalid(path, "missing [package].name")
	}
	if !meta.IsDefined("build", "sources") || len(cfg.Build.Sources) == 0 {
		return nil, invalid(path, "missing [build].sources")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, invalid(path, "unknown key %s", undecoded[0].String())
	}
	if cfg.Build.Jobs < 0 {
		return nil, invalid(path, "[build].jobs must not be negative")
	}
	if !meta.IsDefined("naming", "prefix_identifiers") {
		cfg.Naming.PrefixIdentifiers = true
	}
	m := &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}
	if _, err := m.Targets(); err != nil {
		return nil, err
	}
	return m, nil
}

func invalid(path, format string, args ...any) error {
	de := diag.Errorf(diag.ProjManifestInvalid, source.Span{}, format, args...)
	de.Path = path
	return de
}

// Targets returns the configured targets, glsl when none are listed.
func (m *Manifest) Targets() ([]gen.Target, error) {
	if len(m.Config.Build.Targets) == 0 {
		return []gen.Target{gen.TargetGLSL}, nil
	}
	out := make([]gen.Target, 0, len(m.Config.Build.Targets))
	for _, name := range m.Config.Build.Targets {
		t, err := gen.ParseTarget(name)
		if err != nil {
			de := diag.Errorf(diag.ProjUnknownTarget, source.Span{}, "[build].targets: %v", err)
			de.Path = m.Path
			return nil, de
		}
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// OutDir is the output directory, relative paths resolved against Root.
func (m *Manifest) OutDir() string {
	out := m.Config.Build.Out
	if out == "" {
		out = "generated"
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(m.Root, filepath.FromSlash(out))
}

// Limits returns the parser limits; zero fields fall back to the defaults.
func (m *Manifest) Limits() parser.Limits {
	return parser.Limits{
		BufferSlots:  m.Config.Limits.BufferSlots,
		TextureSlots: m.Config.Limits.TextureSlots,
		TargetSlots:  m.Config.Limits.TargetSlots,
	}
}

// Names returns identifier prefixes, or nil to keep the back end defaults.
func (m *Manifest) Names() *gen.NameOptions {
	if m.Config.Naming.PrefixIdentifiers {
		return nil
	}
	return &gen.NameOptions{}
}

// Sources expands [build].sources into a sorted, de-duplicated file list.
// Entries are files, directories (walked for SourceExts) or glob patterns.
func (m *Manifest) Sources() ([]string, error) {
	files, err := ExpandSources(m.Root, m.Config.Build.Sources)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		de := diag.Errorf(diag.ProjNoSources, source.Span{}, "[build].sources matched no shader files")
		de.Path = m.Path
		return nil, de
	}
	return files, nil
}

// ExpandSources resolves entries against root.
func ExpandSources(root string, entries []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, entry := range entries {
		pattern := filepath.FromSlash(entry)
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(root, pattern)
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, err
			}
			if !info.IsDir() {
				add(match)
				continue
			}
			err = filepath.WalkDir(match, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && IsSourceFile(p) {
					add(p)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}
	slices.Sort(out)
	return out, nil
}

// IsSourceFile reports whether path has one of SourceExts.
func IsSourceFile(path string) bool {
	return slices.Contains(SourceExts, strings.ToLower(filepath.Ext(path)))
}

// Template is the manifest written by `shaderx init`.
func Template(name string) string {
	return `[package]
name = "` + name + `"

[build]
targets = ["glsl"]
out = "generated"
sources = ["shaders"]
jobs = 0

[limits]
buffer_slots = 255
texture_slots = 255
target_slots = 8

[naming]
prefix_identifiers = true
`
}
