// Package yamlutil is the single entry point to goccy/go-yaml. Config files
// are decoded strictly under a size cap; the variant listing is encoded in
// block style.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// MaxDocumentSize caps how many bytes Decode accepts.
var MaxDocumentSize int64 = 1 << 20

var (
	ErrNilDestination = errors.New("yamlutil: nil destination")
	ErrTooLarge       = errors.New("yamlutil: document exceeds size limit")
)

// Decode reads one YAML document from r into v. Unknown keys are errors.
// A blank document leaves v untouched.
func Decode(r io.Reader, v any) error {
	if v == nil {
		return ErrNilDestination
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return fmt.Errorf("yamlutil: read: %w", err)
	}
	if int64(len(data)) > MaxDocumentSize {
		return fmt.Errorf("%w (%d bytes)", ErrTooLarge, MaxDocumentSize)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Marshal encodes v with two-space indentation and indented sequences.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
