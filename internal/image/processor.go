package image

import (
	"bytes"
	"fmt"
	"image"
	"io"

	_ "golang.org/x/image/webp" // register WebP decoder
)

// DetectFormat reads the first bytes from r to identify the image format.
// The returned reader replays the consumed bytes.
func DetectFormat(r io.Reader) (format Format, replay io.Reader, err error) {
	// 12 bytes covers every magic number we check.
	buf := make([]byte, 12)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return 0, nil, fmt.Errorf("reading header: %w", err)
	}
	buf = buf[:n]

	replay = io.MultiReader(bytes.NewReader(buf), r)

	if n >= 8 && string(buf[:8]) == "\x89PNG\r\n\x1a\n" {
		return FormatPNG, replay, nil
	}
	if n >= 12 && string(buf[:4]) == "RIFF" && string(buf[8:12]) == "WEBP" {
		return FormatWebP, replay, nil
	}
	if n >= 12 && string(buf[4:8]) == "ftyp" && (string(buf[8:12]) == "avif" || string(buf[8:12]) == "avis") {
		return FormatAVIF, replay, nil
	}
	if n >= 6 && buf[0] == 0 && buf[1] == 0 && buf[2] == 1 && buf[3] == 0 {
		return FormatICO, replay, nil
	}

	return 0, replay, fmt.Errorf("unrecognized image format")
}

// GetDimensions decodes only the image header to read width and height.
func GetDimensions(r io.Reader) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, fmt.Errorf("decoding image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
