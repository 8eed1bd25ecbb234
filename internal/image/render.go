package image

import (
	"errors"
	"fmt"
	"image"
	"regexp"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"github.com/phantom-wg/phantom-www/internal/recolor"
)

var (
	// ErrNoViewBox is returned for SVG content without a usable viewBox.
	ErrNoViewBox = errors.New("svg has no usable viewBox")

	// ErrUnsupportedElement is returned for SVG content using elements the
	// vector renderer would skip, which would otherwise yield a blank image.
	ErrUnsupportedElement = errors.New("svg uses unsupported elements")
)

var unsupportedTag = regexp.MustCompile(`<(text|tspan|textPath|image|foreignObject|filter|mask|pattern)[\s/>]`)

// UnsupportedElements lists the distinct element names in svg that cannot be
// drawn, in order of first appearance.
func UnsupportedElements(svg string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range unsupportedTag.FindAllStringSubmatch(svg, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Render rasterizes svg into box, fit-contain on a transparent canvas. The
// vector pass runs at supersample times the target size and is then scaled
// down, which keeps edges clean at favicon sizes.
func Render(svg []byte, box Box, supersample int) (*image.NRGBA, error) {
	if supersample < 1 {
		supersample = 1
	}

	if names := UnsupportedElements(string(svg)); len(names) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedElement, strings.Join(names, ", "))
	}

	prepared := recolor.StripStyleBlocks(recolor.InlineClassFills(string(svg)))
	icon, err := oksvg.ReadIconStream(strings.NewReader(prepared), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parsing svg: %w", err)
	}

	vb := icon.ViewBox
	if vb.W <= 0 || vb.H <= 0 {
		return nil, ErrNoViewBox
	}

	w, h, err := box.Resolve(vb.W, vb.H)
	if err != nil {
		return nil, err
	}

	cw, ch := w*supersample, h*supersample
	x, y, dw, dh := fitContain(vb.W, vb.H, cw, ch)
	icon.SetTarget(x, y, dw, dh)

	canvas := image.NewRGBA(image.Rect(0, 0, cw, ch))
	scanner := rasterx.NewScannerGV(cw, ch, canvas, canvas.Bounds())
	icon.Draw(rasterx.NewDasher(cw, ch, scanner), 1.0)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if supersample == 1 {
		draw.Draw(dst, dst.Bounds(), canvas, image.Point{}, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	}
	return dst, nil
}
