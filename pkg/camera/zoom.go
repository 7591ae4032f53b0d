package camera

import (
	"image"
	"math"
)

// ZoomRect returns the centered crop of a w x h frame that shows it at
// the given magnification. Factors below 1 show the whole frame.
func ZoomRect(w, h int, factor float64) image.Rectangle {
	if factor <= 1 || math.IsNaN(factor) {
		return image.Rect(0, 0, w, h)
	}
	cw := int(math.Round(float64(w) / factor))
	ch := int(math.Round(float64(h) / factor))
	if cw < 1 {
		cw = 1
	}
	if ch < 1 {
		ch = 1
	}
	x := (w - cw) / 2
	y := (h - ch) / 2
	return image.Rect(x, y, x+cw, y+ch)
}

// Magnification converts a device zoom value into a digital crop factor.
// The device's minimum zoom shows the full sensor frame.
func Magnification(zoom, minZoom float64) float64 {
	if minZoom <= 0 {
		minZoom = 1
	}
	return zoom / minZoom
}
