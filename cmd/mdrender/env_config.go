package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/qblog/go-mdrender/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDRENDER_CONFIG: config file name or path
	Variant    string // MDRENDER_VARIANT: renderer variant
	OutputDir  string // MDRENDER_OUTPUT_DIR: default output directory
	Workers    int    // MDRENDER_WORKERS: parallel workers
	Date       string // MDRENDER_DATE: standalone page date
	AssetPath  string // MDRENDER_ASSET_PATH: custom styles and templates
}

// knownEnvVars lists valid MDRENDER_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDRENDER_CONFIG":     true,
	"MDRENDER_VARIANT":    true,
	"MDRENDER_OUTPUT_DIR": true,
	"MDRENDER_WORKERS":    true,
	"MDRENDER_DATE":       true,
	"MDRENDER_ASSET_PATH": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MDRENDER_CONFIG"),
		Variant:    getenv("MDRENDER_VARIANT"),
		OutputDir:  getenv("MDRENDER_OUTPUT_DIR"),
		Date:       getenv("MDRENDER_DATE"),
		AssetPath:  getenv("MDRENDER_ASSET_PATH"),
	}

	// Invalid or non-positive values are ignored (auto).
	if workers := getenv("MDRENDER_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized MDRENDER_* variables.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, "MDRENDER_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the environment.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Variant != "" {
		cfg.DefaultVariant = env.Variant
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
