// Package fileutil holds the small filesystem helpers shared by the CLI and
// the config loader.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// MarkdownExtensions are the source extensions the CLI renders.
var MarkdownExtensions = []string{".md", ".markdown"}

// IsMarkdown reports whether path has a Markdown extension, ignoring case.
func IsMarkdown(path string) bool {
	return slices.Contains(MarkdownExtensions, strings.ToLower(filepath.Ext(path)))
}

// HTMLName returns the base name of path with its extension replaced by .html.
func HTMLName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
}

// IsRegular reports whether path exists and is not a directory.
func IsRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// WriteFileAtomic writes content to a sibling temp file and renames it over
// path. Readers see either the old file or the complete new one.
func WriteFileAtomic(path string, content []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".mdrender-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
