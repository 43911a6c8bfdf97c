package fileutil_test

// Notes:
// - WriteFileAtomic's write/chmod/close failure branches are not covered:
//   triggering them needs platform-specific disk faults.

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/qblog/go-mdrender/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestIsMarkdown / TestHTMLName
// ---------------------------------------------------------------------------

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"post.md":        true,
		"post.markdown":  true,
		"POST.MD":        true,
		"dir/a.b.md":     true,
		"post.mdx":       false,
		"post.txt":       false,
		"md":             false,
		"notes.md.bak":   false,
		"post.markdown~": false,
	}
	for path, want := range tests {
		if got := fileutil.IsMarkdown(path); got != want {
			t.Errorf("IsMarkdown(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestHTMLName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"a/post.md":       "post.html",
		"post.markdown":   "post.html",
		"noext":           "noext.html",
		"dir/v1.2.md":     "v1.2.html",
		"dir.d/README.MD": "README.html",
	}
	for path, want := range tests {
		if got := fileutil.HTMLName(path); got != want {
			t.Errorf("HTMLName(%q) = %q, want %q", path, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.html")

	for _, content := range []string{"first", "second"} {
		if err := fileutil.WriteFileAtomic(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic(%q) error = %v", content, err)
		}
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "second" {
		t.Errorf("content = %q, want second", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want 1 (temp file left behind?)", len(entries))
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o644 {
			t.Errorf("perm = %o, want 644", perm)
		}
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.html")
	if err := fileutil.WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
		t.Error("WriteFileAtomic() error = nil, want error")
	}
}

func TestWriteFileAtomic_TargetIsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	if err := os.Mkdir(target, 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := fileutil.WriteFileAtomic(target, []byte("x"), 0o644); err == nil {
		t.Fatal("WriteFileAtomic() error = nil, want rename error")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the target dir", len(entries))
	}
}

// ---------------------------------------------------------------------------
// TestIsRegular
// ---------------------------------------------------------------------------

func TestIsRegular(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f.md")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := map[string]bool{
		file:                       true,
		dir:                        false,
		filepath.Join(dir, "nope"): false,
	}
	for path, want := range tests {
		if got := fileutil.IsRegular(path); got != want {
			t.Errorf("IsRegular(%q) = %v, want %v", path, got, want)
		}
	}
}
