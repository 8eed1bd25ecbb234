package image

import (
	"errors"
	"fmt"
	"math"
)

// MaxDimension caps either side of a rendered image.
const MaxDimension = 8192

// ErrInvalidBox is returned for a target box that cannot be resolved.
var ErrInvalidBox = errors.New("invalid target box")

// Box is a target pixel box. A zero side is derived from the source aspect
// ratio; icons set both sides, logos exactly one.
type Box struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// Square returns an n x n box.
func Square(n int) Box { return Box{Width: n, Height: n} }

// Width returns a box with a fixed width and derived height.
func Width(n int) Box { return Box{Width: n} }

// Height returns a box with a fixed height and derived width.
func Height(n int) Box { return Box{Height: n} }

// Validate rejects negative, oversized, or fully unspecified boxes.
func (b Box) Validate() error {
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: negative side %dx%d", ErrInvalidBox, b.Width, b.Height)
	}
	if b.Width == 0 && b.Height == 0 {
		return fmt.Errorf("%w: no width or height", ErrInvalidBox)
	}
	if b.Width > MaxDimension || b.Height > MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidBox, b.Width, b.Height, MaxDimension)
	}
	return nil
}

// String formats the box as WxH, with "auto" for a derived side.
func (b Box) String() string {
	side := func(n int) string {
		if n == 0 {
			return "auto"
		}
		return fmt.Sprint(n)
	}
	return side(b.Width) + "x" + side(b.Height)
}

// Resolve computes the output pixel size for a source of srcW x srcH units.
func (b Box) Resolve(srcW, srcH float64) (int, int, error) {
	if err := b.Validate(); err != nil {
		return 0, 0, err
	}
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, fmt.Errorf("%w: source size %gx%g", ErrInvalidBox, srcW, srcH)
	}

	w, h := b.Width, b.Height
	switch {
	case w == 0:
		w = int(math.Round(float64(h) * srcW / srcH))
	case h == 0:
		h = int(math.Round(float64(w) * srcH / srcW))
	}
	w = max(w, 1)
	h = max(h, 1)
	if w > MaxDimension || h > MaxDimension {
		return 0, 0, fmt.Errorf("%w: resolved %dx%d exceeds %d", ErrInvalidBox, w, h, MaxDimension)
	}
	return w, h, nil
}

// fitContain returns the size and offset that scale a srcW x srcH image to fit
// inside boxW x boxH while preserving its aspect ratio, centered.
func fitContain(srcW, srcH float64, boxW, boxH int) (x, y, w, h float64) {
	ratio := math.Min(float64(boxW)/srcW, float64(boxH)/srcH)
	w = srcW * ratio
	h = srcH * ratio
	return (float64(boxW) - w) / 2, (float64(boxH) - h) / 2, w, h
}
