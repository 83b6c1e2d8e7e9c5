// Package project holds everything about the consuming dotnet project:
// the bindgen.toml manifest, the platform RID table and the generated
// csproj file that packages the native binaries next to the bindings.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"bindgen/internal/names"
)

const manifestName = "bindgen.toml"

const (
	defaultClass     = "Imports"
	defaultFramework = "net8.0"
)

// Manifest is a located and validated bindgen.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package  PackageConfig  `toml:"package"`
	Output   OutputConfig   `toml:"output"`
	Binaries []BinaryConfig `toml:"binary"`
}

type PackageConfig struct {
	Name      string `toml:"name"`
	Namespace string `toml:"namespace"`
	Class     string `toml:"class"`
}

type OutputConfig struct {
	Framework   string `toml:"framework"`
	AllowUnsafe bool   `toml:"allow_unsafe"`
	Format      bool   `toml:"format"`
}

type BinaryConfig struct {
	Platform string `toml:"platform"`
	Path     string `toml:"path"`
}

// FindManifest walks from startDir towards the filesystem root looking
// for a bindgen.toml, mirroring how build tools locate their project file.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
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

// LoadManifest finds and parses the nearest bindgen.toml above startDir.
// The second return is false when no manifest exists, which is not an
// error: the CLI can run entirely from flags.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses and validates one manifest file, filling defaults
// for everything the file leaves unset.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if cfg.Package.Namespace == "" {
		cfg.Package.Namespace = names.ToPascal(cfg.Package.Name)
	}
	if cfg.Package.Class == "" {
		cfg.Package.Class = defaultClass
	}
	if cfg.Output.Framework == "" {
		cfg.Output.Framework = defaultFramework
	}
	if !meta.IsDefined("output", "allow_unsafe") {
		cfg.Output.AllowUnsafe = true
	}
	if !meta.IsDefined("output", "format") {
		cfg.Output.Format = true
	}
	for i, bin := range cfg.Binaries {
		if _, err := ParsePlatform(bin.Platform); err != nil {
			return Config{}, fmt.Errorf("%s: [[binary]] %d: %w", path, i, err)
		}
		if strings.TrimSpace(bin.Path) == "" {
			return Config{}, fmt.Errorf("%s: [[binary]] %d: missing path", path, i)
		}
	}
	return cfg, nil
}
