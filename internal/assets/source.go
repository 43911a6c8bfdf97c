package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed styles/*.css templates/*.html
var embedded embed.FS

var embeddedSource = &Source{label: "embedded", fsys: embedded}

// Source is a tree of assets.
type Source struct {
	label string
	fsys  fs.FS
}

// Embedded returns the assets compiled into the binary.
func Embedded() *Source {
	return embeddedSource
}

// Dir opens dir as a Source. The directory stays open for the life of the
// process.
func Dir(dir string) (*Source, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}
	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return &Source{label: abs, fsys: root.FS()}, nil
}

// String names the source in errors and logs.
func (s *Source) String() string {
	return s.label
}

// Load reads the asset of the given kind and name.
func (s *Source) Load(kind Kind, name string) (string, error) {
	file, err := kind.file(name)
	if err != nil {
		return "", err
	}
	data, err := fs.ReadFile(s.fsys, file)
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", kind.notFound(), name)
	default:
		return "", fmt.Errorf("%w: %s %q in %s: %v", ErrAssetRead, kind, name, s.label, err)
	}
}

// Names lists the assets of a kind, sorted.
func (s *Source) Names(kind Kind) []string {
	dir, ext := "styles", ".css"
	if kind == Template {
		dir, ext = "templates", ".html"
	}
	matches, _ := fs.Glob(s.fsys, dir+"/*"+ext)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ext))
	}
	sort.Strings(names)
	return names
}
