package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// ShutterButton is the round capture button. It is disabled while a capture
// is outstanding.
type ShutterButton struct {
	widget.DisableableWidget

	OnTapped func()
	circle   *canvas.Circle
}

func NewShutterButton(tapped func()) *ShutterButton {
	b := &ShutterButton{OnTapped: tapped}
	b.ExtendBaseWidget(b)

	b.circle = canvas.NewCircle(shutterFill)
	b.circle.StrokeColor = shutterRing
	b.circle.StrokeWidth = shutterBorder
	return b
}

// Tapped implements [fyne.Tappable].
func (b *ShutterButton) Tapped(*fyne.PointEvent) {
	if b.Disabled() || b.OnTapped == nil {
		return
	}
	b.OnTapped()
}

func (b *ShutterButton) CreateRenderer() fyne.WidgetRenderer {
	return &shutterRenderer{b: b}
}

type shutterRenderer struct {
	b *ShutterButton
}

func (r *shutterRenderer) Destroy() {}

func (r *shutterRenderer) MinSize() fyne.Size {
	return fyne.NewSize(shutterSize, shutterSize)
}

func (r *shutterRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.b.circle}
}

func (r *shutterRenderer) Refresh() {
	if r.b.Disabled() {
		r.b.circle.FillColor = shutterBusy
	} else {
		r.b.circle.FillColor = shutterFill
	}
	r.b.circle.Refresh()
}

func (r *shutterRenderer) Layout(size fyne.Size) {
	d := fyne.Min(size.Width, size.Height)
	r.b.circle.Resize(fyne.NewSize(d, d))
	r.b.circle.Move(fyne.NewPos((size.Width-d)/2, (size.Height-d)/2))
}

var _ fyne.Tappable = (*ShutterButton)(nil)
