package assets

import "errors"

// Resolver loads assets from an optional directory, falling back to the
// embedded ones when the directory lacks an asset.
type Resolver struct {
	custom *Source // nil without a directory
}

// NewResolver creates a Resolver. An empty dir uses only embedded assets.
func NewResolver(dir string) (*Resolver, error) {
	r := &Resolver{}
	if dir != "" {
		src, err := Dir(dir)
		if err != nil {
			return nil, err
		}
		r.custom = src
	}
	return r, nil
}

// Custom reports whether a directory is configured.
func (r *Resolver) Custom() bool {
	return r.custom != nil
}

// Load reads an asset. Only "not found" from the directory falls back;
// invalid names and read failures are returned.
func (r *Resolver) Load(kind Kind, name string) (string, error) {
	if r.custom != nil {
		content, err := r.custom.Load(kind, name)
		if err == nil || !errors.Is(err, kind.notFound()) {
			return content, err
		}
	}
	return embeddedSource.Load(kind, name)
}

// LoadTheme loads the theme of a variant. Variants without a theme of their
// own get DefaultStyleName; the returned name is the theme actually used.
func (r *Resolver) LoadTheme(variant string) (css, name string, err error) {
	css, err = r.Load(Theme, variant)
	if err == nil {
		return css, variant, nil
	}
	if !errors.Is(err, ErrThemeNotFound) && !errors.Is(err, ErrInvalidName) {
		return "", "", err
	}
	css, err = r.Load(Theme, DefaultStyleName)
	if err != nil {
		return "", "", err
	}
	return css, DefaultStyleName, nil
}
