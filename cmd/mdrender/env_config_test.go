package main

// Notes:
// - loadEnvConfig: we test every variable and the worker count fallbacks.
// - warnUnknownEnvVars: we test typo detection and that other prefixes are
//   ignored.
// - applyEnvConfig: we test that set variables override config values and
//   empty ones leave them alone.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/qblog/go-mdrender/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment parsing
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"MDRENDER_CONFIG":     "work",
		"MDRENDER_VARIANT":    "github",
		"MDRENDER_OUTPUT_DIR": "out",
		"MDRENDER_WORKERS":    "4",
		"MDRENDER_DATE":       "auto:iso",
		"MDRENDER_ASSET_PATH": "/srv/assets",
	}
	got := loadEnvConfig(func(k string) string { return vars[k] })
	want := &envConfig{
		ConfigPath: "work",
		Variant:    "github",
		OutputDir:  "out",
		Workers:    4,
		Date:       "auto:iso",
		AssetPath:  "/srv/assets",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvConfig_Workers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  int
	}{
		{"", 0},
		{"8", 8},
		{"0", 0},
		{"-2", 0},
		{"many", 0},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			got := loadEnvConfig(func(k string) string {
				if k == "MDRENDER_WORKERS" {
					return tt.value
				}
				return ""
			})
			if got.Workers != tt.want {
				t.Errorf("Workers = %d, want %d", got.Workers, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"MDRENDER_VARIANT=github",
		"MDRENDER_VARIENT=github",
		"HOME=/root",
		"MDRENDERX=1",
	})

	out := buf.String()
	if !strings.Contains(out, "MDRENDER_VARIENT") {
		t.Errorf("expected warning for MDRENDER_VARIENT, got %q", out)
	}
	if strings.Contains(out, "MDRENDER_VARIANT ") || strings.Contains(out, "HOME") || strings.Contains(out, "MDRENDERX") {
		t.Errorf("unexpected warnings: %q", out)
	}
	if strings.Count(out, "warning:") != 1 {
		t.Errorf("want exactly one warning, got %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Precedence over the config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("overrides", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.DefaultVariant = "vuepress"
		cfg.Output.DefaultDir = "from-file"
		applyEnvConfig(&envConfig{Variant: "github", OutputDir: "from-env", AssetPath: "/a"}, cfg)

		if cfg.DefaultVariant != "github" || cfg.Output.DefaultDir != "from-env" || cfg.Assets.BasePath != "/a" {
			t.Errorf("applyEnvConfig() left %+v", cfg)
		}
	})

	t.Run("empty leaves config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.DefaultVariant = "github"
		cfg.Output.DefaultDir = "from-file"
		applyEnvConfig(&envConfig{}, cfg)

		if cfg.DefaultVariant != "github" || cfg.Output.DefaultDir != "from-file" {
			t.Errorf("applyEnvConfig() changed %+v", cfg)
		}
	})
}
