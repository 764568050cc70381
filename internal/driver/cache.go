package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"shaderx/internal/compiler"
	"shaderx/internal/gen"
	"shaderx/internal/parser"
	"shaderx/internal/project"
	"shaderx/internal/source"
	"shaderx/internal/symbols"
)

// Current schema version - increment when CachedShader format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит сгенерированные стадии шейдеров на диске по ключу
// из содержимого файла и параметров сборки.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedShader is the on-disk form of a compiled file. Layout IDs are not
// stored: they depend on the whole build and are assigned again on load.
type CachedShader struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Name   string
	Target uint8
	Stages [symbols.StageCount]*gen.Output
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

// CacheKey identifies one compiled file: its content hash plus every
// option that changes the generated text.
func CacheKey(file *source.File, target gen.Target, names *gen.NameOptions, limits parser.Limits) project.Digest {
	parts := []string{
		"schema=" + strconv.Itoa(int(diskCacheSchemaVersion)),
		"target=" + target.String(),
		"pragma=" + strconv.FormatBool(compiler.IsPragmaSource(file.Path)),
		fmt.Sprintf("limits=%d/%d/%d", limits.BufferSlots, limits.TextureSlots, limits.TargetSlots),
	}
	if names != nil {
		parts = append(parts, "names="+names.TypePrefix+"/"+names.FunctionPrefix+"/"+names.VariablePrefix)
	}
	return project.Combine(project.Digest(file.Hash), parts...)
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог по первым двум символам, чтобы не складывать всё в одну папку.
	return filepath.Join(c.dir, "shaders", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a compiled file to the disk cache.
func (c *DiskCache) Put(key project.Digest, r *compiler.Result) error {
	if c == nil {
		return nil
	}
	payload := CachedShader{
		Schema: diskCacheSchemaVersion,
		Name:   r.Name,
		Target: uint8(r.Target),
		Stages: r.Stages,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads a cached file into a fresh Result. A payload with another
// schema or target is treated as a miss.
func (c *DiskCache) Get(key project.Digest, path string, target gen.Target) (*compiler.Result, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload CachedShader
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", f.Name(), err)
	}
	if payload.Schema != diskCacheSchemaVersion || gen.Target(payload.Target) != target {
		return nil, false, nil
	}
	r := &compiler.Result{Name: payload.Name, Path: path, Target: target, Stages: payload.Stages}
	for stage, o := range r.Stages {
		if o != nil {
			o.Stage = symbols.Stage(stage) // #nosec G115 -- stage < StageCount
			o.Target = target
		}
	}
	return r, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(filepath.Join(c.dir, "shaders")); err != nil {
		return err
	}
	return nil
}
