// Package plantuml encodes diagram sources into the compressed text form
// accepted by PlantUML servers in their URL path.
package plantuml

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
)

// DefaultServer renders payloads as SVG.
const DefaultServer = "https://www.plantuml.com/plantuml/svg/"

// MaxSourceSize caps the diagram source accepted by Encode. Larger payloads
// exceed what public servers accept in a URL.
const MaxSourceSize = 64 << 10

// alphabet is PlantUML's URL-safe base64 variant.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

var encoding = base64.NewEncoding(alphabet).WithPadding(base64.NoPadding)

var (
	ErrSourceTooLarge = errors.New("diagram source too large")
	ErrEncode         = errors.New("diagram encoding failed")
	ErrDecode         = errors.New("diagram decoding failed")
)

// Encoder turns diagram source into a URL payload.
type Encoder func(source []byte) (string, error)

// Encode deflates source and encodes it with the PlantUML alphabet. The
// final group is zero-filled to four characters, as the reference encoder
// does.
func Encode(source []byte) (string, error) {
	if len(source) > MaxSourceSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrSourceTooLarge, len(source), MaxSourceSize)
	}

	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if _, err := zw.Write(source); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}

	out := encoding.EncodeToString(buf.Bytes())
	if rem := len(out) % 4; rem != 0 {
		out += strings.Repeat("0", 4-rem)
	}
	return out, nil
}

// Decode reverses Encode.
func Decode(payload string) ([]byte, error) {
	raw, err := encoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	zr := flate.NewReader(bytes.NewReader(raw))
	defer func() { _ = zr.Close() }()

	data, err := io.ReadAll(io.LimitReader(zr, MaxSourceSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(data) > MaxSourceSize {
		return nil, fmt.Errorf("%w: %w", ErrDecode, ErrSourceTooLarge)
	}
	return data, nil
}

// URL joins a server base and a payload.
func URL(server, payload string) string {
	if server == "" {
		server = DefaultServer
	}
	if !strings.HasSuffix(server, "/") {
		server += "/"
	}
	return server + payload
}
