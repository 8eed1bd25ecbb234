package image

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"
)

// EncodeFunc writes img to w in format f.
type EncodeFunc func(w io.Writer, img image.Image, f Format) error

// Encode writes img in format f. PNG and WebP are lossless. AVIF is encoded at
// maximum quality with 4:4:4 chroma, which is near-lossless: the YUV
// conversion can shift channel values by a few steps. ICO yields a
// single-frame container.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.DefaultCompression}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("encoding png: %w", err)
		}
	case FormatWebP:
		if err := webp.Encode(w, img, webp.Options{Quality: 100, Lossless: true, Method: 4}); err != nil {
			return fmt.Errorf("encoding webp: %w", err)
		}
	case FormatAVIF:
		opts := avif.Options{
			Quality:           100,
			QualityAlpha:      100,
			Speed:             6,
			ChromaSubsampling: image.YCbCrSubsampleRatio444,
		}
		if err := avif.Encode(w, img, opts); err != nil {
			return fmt.Errorf("encoding avif: %w", err)
		}
	case FormatICO:
		frame, err := encodeFrame(img)
		if err != nil {
			return err
		}
		return EncodeICO(w, [][]byte{frame})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	return nil
}

// encodeFrame produces a maximally compressed PNG for an ICO container.
func encodeFrame(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding ico frame: %w", err)
	}
	return buf.Bytes(), nil
}
