package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/intothevoid/drishti/pkg/gesture"
)

// CameraView shows the live camera feed and turns scrolling over it into
// pinch gestures. A session ends when the pointer leaves the view.
type CameraView struct {
	widget.BaseWidget

	image *canvas.Image
	bg    *canvas.Rectangle
	pinch *gesture.Pinch
}

// NewCameraView creates the live view. Pinch sessions go to h.
func NewCameraView(h gesture.PinchHandler) *CameraView {
	v := &CameraView{pinch: gesture.NewPinch(h)}
	v.ExtendBaseWidget(v)

	v.bg = canvas.NewRectangle(backgroundColor)
	v.image = canvas.NewImageFromImage(nil)
	v.image.FillMode = canvas.ImageFillContain
	v.image.ScaleMode = canvas.ImageScaleFastest
	return v
}

// UpdateFrame shows img. Safe from any goroutine; the swap happens on the
// Fyne thread and only the image is refreshed.
func (v *CameraView) UpdateFrame(img image.Image) {
	fyne.Do(func() {
		v.image.Image = img
		v.image.Refresh()
	})
}

// Frame returns the image currently shown.
func (v *CameraView) Frame() image.Image { return v.image.Image }

// Scrolled implements [fyne.Scrollable].
func (v *CameraView) Scrolled(ev *fyne.ScrollEvent) {
	v.pinch.Scroll(ev.Scrolled.DY)
}

// MouseIn implements [desktop.Hoverable].
func (v *CameraView) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements [desktop.Hoverable].
func (v *CameraView) MouseMoved(*desktop.MouseEvent) {}

// MouseOut ends the running pinch session.
func (v *CameraView) MouseOut() {
	v.pinch.End()
}

// CreateRenderer implements [fyne.Widget].
func (v *CameraView) CreateRenderer() fyne.WidgetRenderer {
	return &videoRenderer{v}
}

// videoRenderer draws the frame contain-fitted over a background that
// fills the rest of the widget.
type videoRenderer struct {
	v *CameraView
}

// Destroy implements [fyne.WidgetRenderer].
func (r *videoRenderer) Destroy() {}

// MinSize implements [fyne.WidgetRenderer].
func (r *videoRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

// Objects implements [fyne.WidgetRenderer].
func (r *videoRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.v.bg, r.v.image}
}

// Refresh implements [fyne.WidgetRenderer].
func (r *videoRenderer) Refresh() {
	r.v.image.Refresh()
}

func (r *videoRenderer) Layout(s fyne.Size) {
	r.v.bg.Resize(s)
	r.v.image.Resize(s)
}

var (
	_ fyne.Scrollable   = (*CameraView)(nil)
	_ desktop.Hoverable = (*CameraView)(nil)
)
