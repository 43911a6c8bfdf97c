package main

import (
	"errors"
	"os"
	"strings"

	"github.com/qblog/go-mdrender"
	"github.com/qblog/go-mdrender/internal/config"
	"github.com/qblog/go-mdrender/internal/dateutil"
	"github.com/qblog/go-mdrender/internal/hints"
)

// Exit codes for the mdrender CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("usage error")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrWriteHTML          = errors.New("failed to write HTML file")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrUnknownBlock       = errors.New("unknown code block id")
	ErrRenderFailed       = errors.New("rendering failed")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnknownBlock) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, mdrender.ErrInvalidVariant) ||
		errors.Is(err, mdrender.ErrUnknownVariant) ||
		errors.Is(err, mdrender.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var h []string
	var vErr *unknownVariantError
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		h = append(h, hints.ForConfigNotFound(triedPaths(err.Error())))
	case errors.As(err, &vErr):
		h = append(h, hints.ForUnknownVariant(vErr.available))
	case errors.Is(err, mdrender.ErrInvalidVariant):
		msg := err.Error()
		if strings.Contains(msg, "highlight style") {
			h = append(h, hints.ForHighlightStyle())
		}
		if strings.Contains(msg, "diagram server") {
			h = append(h, hints.ForDiagramServer())
		}
	case errors.Is(err, ErrUnknownBlock):
		h = append(h, hints.ForCopyID())
	case errors.Is(err, ErrWriteHTML):
		h = append(h, hints.ForOutputDirectory())
	}
	return hints.Format(h...)
}

// triedPaths extracts the searched locations from a config lookup error.
func triedPaths(msg string) []string {
	_, list, ok := strings.Cut(msg, "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
