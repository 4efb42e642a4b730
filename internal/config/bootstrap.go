package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnsureUserConfig returns the path of the user's config.yml inside dataDir,
// creating it from defaultPath (or the built-in defaults when defaultPath is
// missing) on first run.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		b, err := yaml.Marshal(&cfg)
		if err != nil {
			return "", err
		}
		return userPath, os.WriteFile(userPath, b, 0o644)
	}
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}

// ResolveDataPath makes a relative data path relative to baseDir.
func ResolveDataPath(cfg Config, baseDir string) string {
	if cfg.Data.Path == "" || filepath.IsAbs(cfg.Data.Path) {
		return cfg.Data.Path
	}
	return filepath.Join(baseDir, cfg.Data.Path)
}
