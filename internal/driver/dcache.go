package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sling/internal/diag"
	"sling/internal/project"
	"sling/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит сгенерированный C++ по ключу (хеш исходника, опции).
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores a cached lowering artifact for fast rebuilds.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Provenance
	Path        string
	SourceHash  project.Digest
	OptionsHash project.Digest

	// The generated translation unit
	Output string
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
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OptionsDigest формирует стабильный отпечаток опций для ключа кеша.
func OptionsDigest(opts LowerOptions) project.Digest {
	return project.DigestOf(fmt.Appendf(nil, "v%d;undeclared=%t",
		diskCacheSchemaVersion, opts.AllowUndeclaredGlobals))
}

// CacheKey строит ключ кеша для файла и опций.
func CacheKey(file *source.File, opts LowerOptions) project.Digest {
	return project.Combine(project.Digest(file.Hash), OptionsDigest(opts))
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "units".
	return filepath.Join(c.dir, "units", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
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
	defer func() {
		if err = os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Printf("failed to remove temp file: %v", err)
		}
	}()

	enc := msgpack.NewEncoder(f)
	err = enc.Encode(payload)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
// Записи с чужой схемой считаются промахом.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим в фоне
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// LowerCached сначала пробует диск, при промахе опускает файл и кладёт
// успешный результат обратно. Ошибочные прогоны не кешируются.
func LowerCached(path string, opts LowerOptions, cache *DiskCache) (*LowerResult, bool, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, false, err
	}
	file := fs.Get(fileID)
	key := CacheKey(file, opts)

	var payload DiskPayload
	hit, err := cache.Get(key, &payload)
	if err == nil && hit {
		return &LowerResult{
			FileSet: fs,
			File:    file,
			Bag:     diag.NewBag(opts.MaxDiagnostics),
			Output:  payload.Output,
		}, true, nil
	}

	res, err := lowerLoaded(fs, fileID, opts)
	if err != nil {
		return nil, false, err
	}
	if res.Ok() {
		_ = cache.Put(key, &DiskPayload{
			Schema:      diskCacheSchemaVersion,
			Path:        file.Path,
			SourceHash:  project.Digest(file.Hash),
			OptionsHash: OptionsDigest(opts),
			Output:      res.Output,
		})
	}
	return res, false, nil
}
