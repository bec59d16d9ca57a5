package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// FileName is the optional project configuration file.
const FileName = "bridge.yaml"

// Config represents the optional bridge.yaml configuration.
type Config struct {
	Definitions DefinitionsConfig `yaml:"definitions"`
}

// DefinitionsConfig locates definition catalogs.
type DefinitionsConfig struct {
	// Dir holds catalogs, relative to the project root.
	Dir string `yaml:"dir,omitempty"`
	// Files lists catalogs explicitly, relative to the project root. When set,
	// Dir is not scanned.
	Files []string `yaml:"files,omitempty"`
}

// Env holds environment overrides.
type Env struct {
	Dir     string `env:"BRIDGECTL_DIR"`
	Verbose bool   `env:"BRIDGECTL_VERBOSE"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root           string
	ModulePath     string
	ModuleName     string
	DefinitionsDir string
	Files          []string
	Verbose        bool
}

// LoadOptional reads bridge.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// LoadEnv parses BRIDGECTL_* environment variables.
func LoadEnv() (Env, error) {
	e, err := env.ParseAs[Env]()
	if err != nil {
		return Env{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return e, nil
}

// Resolve loads bridge.yaml (if present), applies environment overrides and
// resolves defaults. The environment wins over the file.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	e, err := LoadEnv()
	if err != nil {
		return nil, err
	}

	defsDir := strings.TrimSpace(cfg.Definitions.Dir)
	if e.Dir != "" {
		defsDir = e.Dir
	}
	if defsDir == "" {
		defsDir = "definitions"
	}
	if !filepath.IsAbs(defsDir) {
		defsDir = filepath.Join(dir, defsDir)
	}

	var files []string
	for _, f := range cfg.Definitions.Files {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if !filepath.IsAbs(f) {
			f = filepath.Join(dir, f)
		}
		files = append(files, f)
	}

	return &Resolved{
		Root:           dir,
		ModulePath:     modulePath,
		ModuleName:     moduleName(modulePath, dir),
		DefinitionsDir: defsDir,
		Files:          files,
		Verbose:        e.Verbose,
	}, nil
}

// FindProjectRoot walks up from start to find go.mod.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

// moduleName is the last element of the module path with any major version
// suffix removed.
func moduleName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if prefix, _, ok := module.SplitPathVersion(modulePath); ok {
		parts := strings.Split(prefix, "/")
		base = parts[len(parts)-1]
	}
	return base
}
