package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/qblog/go-mdrender/internal/fileutil"
)

// FileToRender pairs a Markdown source with the HTML file it produces.
type FileToRender struct {
	InputPath  string
	OutputPath string
}

// outputLayout maps sources to targets. An empty dir writes next to each
// source; root, when set, is the walked directory whose tree is mirrored.
type outputLayout struct {
	dir  string
	root string
}

func (l outputLayout) target(src string) string {
	name := fileutil.HTMLName(src)
	switch {
	case l.dir == "":
		return filepath.Join(filepath.Dir(src), name)
	case l.root == "" && strings.EqualFold(filepath.Ext(l.dir), ".html"):
		return l.dir
	case l.root != "":
		if rel, err := filepath.Rel(l.root, filepath.Dir(src)); err == nil {
			return filepath.Join(l.dir, rel, name)
		}
	}
	return filepath.Join(l.dir, name)
}

// discoverFiles expands inputPath into render jobs. A file must carry a
// Markdown extension; a directory is walked, skipping hidden subdirectories
// and non-Markdown files.
func discoverFiles(inputPath, outputDir string) ([]FileToRender, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsMarkdown(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		layout := outputLayout{dir: outputDir}
		return []FileToRender{{InputPath: inputPath, OutputPath: layout.target(inputPath)}}, nil
	}

	layout := outputLayout{dir: outputDir, root: inputPath}
	var files []FileToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, walkErr error) error {
		switch {
		case walkErr != nil:
			return fmt.Errorf("scanning %s: %w", path, walkErr)
		case d.IsDir() && path != inputPath && strings.HasPrefix(d.Name(), "."):
			return filepath.SkipDir
		case d.IsDir() || !fileutil.IsMarkdown(path):
			return nil
		}
		files = append(files, FileToRender{InputPath: path, OutputPath: layout.target(path)})
		return nil
	})
	return files, err
}

// looksLikeMarkdown reports whether arg names a Markdown file.
func looksLikeMarkdown(arg string) bool {
	return !strings.HasPrefix(arg, "-") && fileutil.IsMarkdown(arg)
}
