package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest describes a resolved sling.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config — содержимое sling.toml. CLI-флаги перекрывают значения отсюда.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

type PackageConfig struct {
	Name  string `toml:"name"`
	Entry string `toml:"entry"` // главный .sl файл
}

type BuildConfig struct {
	Output  string `toml:"output"`  // путь генерируемого .cpp
	Include string `toml:"include"` // каталог, куда кладётся sling_rt.h
}

// ErrPackageSectionMissing indicates that [package] is missing in a manifest.
var ErrPackageSectionMissing = errors.New("missing [package]")

// FindSlingToml walks up from startDir to locate sling.toml.
func FindSlingToml(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "sling.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest parses a sling.toml at the given path.
func LoadManifest(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if cfg.Package.Entry == "" {
		cfg.Package.Entry = "main.sl"
	}
	root := filepath.Dir(path)
	if cfg.Build.Output == "" {
		cfg.Build.Output = cfg.Package.Name + ".cpp"
	}
	return &Manifest{
		Path:   path,
		Root:   root,
		Config: cfg,
	}, nil
}

// FindManifest ищет sling.toml вверх от startDir и загружает его.
func FindManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindSlingToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// EntryPath возвращает абсолютный путь главного файла.
func (m *Manifest) EntryPath() string {
	return filepath.Join(m.Root, m.Config.Package.Entry)
}

// OutputPath возвращает абсолютный путь генерируемого файла.
func (m *Manifest) OutputPath() string {
	out := m.Config.Build.Output
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(m.Root, out)
}
