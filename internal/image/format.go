package image

import (
	"errors"
	"fmt"
	"strings"
)

// Format is an output encoding. The set is closed; the zero value is invalid.
type Format uint8

// Supported output formats.
const (
	FormatPNG Format = iota + 1
	FormatWebP
	FormatAVIF
	// FormatICO is the multi-resolution favicon container.
	FormatICO
)

// ErrUnsupportedFormat is returned for a format outside the closed set.
var ErrUnsupportedFormat = errors.New("unsupported format")

// RasterFormats are the per-size formats, in the order they are generated.
var RasterFormats = []Format{FormatPNG, FormatWebP, FormatAVIF}

var formatNames = map[Format]string{
	FormatPNG:  "png",
	FormatWebP: "webp",
	FormatAVIF: "avif",
	FormatICO:  "ico",
}

// String returns the lower-case format name, which is also the file extension.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", uint8(f))
}

// Ext returns the file extension including the leading dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

// IsRaster reports whether f is a single-image format usable per size.
func (f Format) IsRaster() bool {
	return f == FormatPNG || f == FormatWebP || f == FormatAVIF
}

// ParseFormat converts a name such as "webp" or ".PNG" into a Format.
func ParseFormat(s string) (Format, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
