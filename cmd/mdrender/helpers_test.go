package main

// Notes:
// - Test infrastructure shared by the command tests. Not under test itself.

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/qblog/go-mdrender/internal/config"
)

// fixedNow is the clock used by test environments.
var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// testEnv returns an environment with captured output and no MDRENDER_*
// variables.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			var out []string
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		Config: config.DefaultConfig(),
	}
	return env, stdout, stderr
}

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// readFile returns the content of path.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
