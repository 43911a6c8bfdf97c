package mdrender

import (
	"sync"
)

var (
	defaultOnce    sync.Once
	defaultFactory *Factory
)

// Default returns the process-wide Factory with the built-in variants.
func Default() *Factory {
	defaultOnce.Do(func() {
		f, err := NewFactory()
		if err != nil {
			// Built-in variants are fixed; failure is a programming error.
			panic(err)
		}
		defaultFactory = f
	})
	return defaultFactory
}

// GetRenderer returns the cached renderer for key from the default Factory.
func GetRenderer(key string) *Renderer {
	return Default().Get(key)
}

// Render renders text with the default Factory.
func Render(key, text string) string {
	return Default().Render(key, text)
}
