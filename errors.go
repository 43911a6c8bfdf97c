package mdrender

import "errors"

// Sentinel errors for library operations.
var (
	ErrRender = errors.New("markdown rendering failed")

	// Variant validation errors.
	ErrInvalidVariant = errors.New("invalid variant")
	ErrUnknownVariant = errors.New("unknown variant")

	// Standalone document errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrDocument         = errors.New("document assembly failed")

	// ErrClipboardUnavailable is logged when a copy runs without a clipboard.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)
