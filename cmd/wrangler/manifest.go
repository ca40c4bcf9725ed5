package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// projectManifest is an optional wrangler.toml discovered by walking
// parent directories. Flags always override its values.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package  packageConfig  `toml:"package"`
	Generate generateConfig `toml:"generate"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type generateConfig struct {
	Input     string   `toml:"input"`
	Output    string   `toml:"output"`
	Languages []string `toml:"languages"`
}

func findWranglerToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "wrangler.toml")
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

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findWranglerToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	return cfg, nil
}

// manifestInput resolves the [generate].input path relative to the
// manifest's directory.
func (m *projectManifest) manifestInput() string {
	in := strings.TrimSpace(m.Config.Generate.Input)
	if in == "" {
		return ""
	}
	return filepath.Join(m.Root, filepath.FromSlash(in))
}

func (m *projectManifest) manifestOutput() string {
	out := strings.TrimSpace(m.Config.Generate.Output)
	if out == "" {
		return ""
	}
	return filepath.Join(m.Root, filepath.FromSlash(out))
}
