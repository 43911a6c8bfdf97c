package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/qblog/go-mdrender/internal/fileutil"
	"github.com/qblog/go-mdrender/internal/yamlutil"
)

var configExtensions = []string{".yaml", ".yml"}

// LoadConfig loads a config from a file path or a bare config name. A bare
// name is searched in the working directory and then under
// <UserConfigDir>/go-mdrender. A missing file is always an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	path := nameOrPath
	if !looksLikePath(nameOrPath) {
		found, err := findConfig(nameOrPath)
		if err != nil {
			return nil, err
		}
		path = found
	}

	f, err := os.Open(path) // #nosec G304 -- config path is user-provided
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg := DefaultConfig()
	if err := yamlutil.Decode(f, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	if cfg.Variants == nil {
		cfg.Variants = map[string]VariantConfig{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func looksLikePath(s string) bool {
	if strings.ContainsAny(s, `/\`) {
		return true
	}
	ext := filepath.Ext(s)
	return ext == ".yaml" || ext == ".yml"
}

// searchPaths lists the candidates for a config name in lookup order.
func searchPaths(name string) []string {
	dirs := []string{""}
	if userDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userDir, AppDir))
	}

	var paths []string
	for _, dir := range dirs {
		for _, ext := range configExtensions {
			paths = append(paths, filepath.Join(dir, name+ext))
		}
	}
	return paths
}

func findConfig(name string) (string, error) {
	candidates := searchPaths(name)
	for _, p := range candidates {
		if fileutil.IsRegular(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(candidates, ", "))
}
