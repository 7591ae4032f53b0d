package camera

import (
	"image"
	"testing"
)

func TestZoomRect(t *testing.T) {
	tests := []struct {
		w, h   int
		factor float64
		want   image.Rectangle
	}{
		{640, 480, 1, image.Rect(0, 0, 640, 480)},
		{640, 480, 0.5, image.Rect(0, 0, 640, 480)},
		{640, 480, 2, image.Rect(160, 120, 480, 360)},
		{640, 480, 4, image.Rect(240, 180, 400, 300)},
		{10, 10, 1000, image.Rect(4, 4, 5, 5)},
	}
	for _, tt := range tests {
		got := ZoomRect(tt.w, tt.h, tt.factor)
		if got != tt.want {
			t.Errorf("ZoomRect(%d, %d, %v) = %v, want %v", tt.w, tt.h, tt.factor, got, tt.want)
		}
	}
}

func TestMagnification(t *testing.T) {
	if got := Magnification(4, 2); got != 2 {
		t.Errorf("Magnification(4, 2) = %v, want 2", got)
	}
	if got := Magnification(3, 0); got != 3 {
		t.Errorf("Magnification(3, 0) = %v, want 3", got)
	}
}
