package assets

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultStyleName is the theme used when a variant has no style of its own.
const DefaultStyleName = "vuepress"

// DocumentTemplateName is the template wrapping standalone documents.
const DocumentTemplateName = "document"

// Sentinel errors for asset operations.
var (
	ErrThemeNotFound    = errors.New("theme not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidName      = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid asset directory")
	ErrAssetRead        = errors.New("failed to read asset")
)

// Kind selects a class of assets.
type Kind int

const (
	Theme    Kind = iota // styles/{name}.css
	Template             // templates/{name}.html
)

func (k Kind) String() string {
	if k == Template {
		return "template"
	}
	return "theme"
}

// file returns the slash-separated path of name inside a source.
func (k Kind) file(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if k == Template {
		return "templates/" + name + ".html", nil
	}
	return "styles/" + name + ".css", nil
}

func (k Kind) notFound() error {
	if k == Template {
		return ErrTemplateNotFound
	}
	return ErrThemeNotFound
}

// ValidateName rejects empty names and names with separators or dots, so a
// name always maps to exactly one file of its kind.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Load reads a built-in asset.
func Load(kind Kind, name string) (string, error) {
	return embeddedSource.Load(kind, name)
}
