// Package config provides the configuration loader for memo.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// Load reads the configuration from the given working directory. A missing
// file is not an error; defaults apply.
func (l *FileConfigLoader) Load(cwd string) (*domain.Config, error) {
	filename := l.Filename
	if filename == "" {
		filename = "memo.yaml"
	}

	path := filepath.Join(cwd, filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults(cwd), nil
		}
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "loading config"), "path", path)
	}

	var file Memofile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "loading config"), "path", path)
	}

	cfg := defaults(cwd)
	if file.Root != "" {
		cfg.Root = file.Root
	}
	if file.Store != "" {
		cfg.StorePath = file.Store
	}
	if file.Digest != nil {
		cfg.Digest = *file.Digest
	}
	if file.Parallelism > 0 {
		cfg.Parallelism = file.Parallelism
	}

	return cfg, nil
}

// defaults returns the configuration used when memo.yaml is absent or
// leaves fields unset.
func defaults(cwd string) *domain.Config {
	return &domain.Config{
		Root:        cwd,
		StorePath:   domain.DefaultStorePath(),
		Digest:      true,
		Parallelism: runtime.NumCPU(),
	}
}
