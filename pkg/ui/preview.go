package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// PhotoPreview shows a captured photo with a single Retake action.
// It holds no state beyond what it was built with.
type PhotoPreview struct {
	widget.BaseWidget

	Path   string
	Image  *canvas.Image
	Retake *PillButton
	bg     *canvas.Rectangle
}

// NewPhotoPreview loads the photo at path through its file:// URI.
func NewPhotoPreview(path string, onRetake func()) *PhotoPreview {
	p := &PhotoPreview{Path: path}
	p.ExtendBaseWidget(p)

	p.bg = canvas.NewRectangle(backgroundColor)
	p.Image = canvas.NewImageFromURI(storage.NewFileURI(path))
	p.Image.FillMode = canvas.ImageFillContain
	p.Retake = NewPillButton(TextRetake, onRetake)
	return p
}

func (p *PhotoPreview) CreateRenderer() fyne.WidgetRenderer {
	return &previewRenderer{p: p}
}

type previewRenderer struct {
	p *PhotoPreview
}

func (r *previewRenderer) Destroy() {}

func (r *previewRenderer) MinSize() fyne.Size {
	b := r.p.Retake.MinSize()
	return fyne.NewSize(b.Width, b.Height*5)
}

func (r *previewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.p.bg, r.p.Image, r.p.Retake}
}

func (r *previewRenderer) Refresh() {
	r.p.Image.Refresh()
	r.p.Retake.Refresh()
}

// Layout centers the photo and button as one column, the photo taking
// previewHeight of the height.
func (r *previewRenderer) Layout(size fyne.Size) {
	r.p.bg.Resize(size)

	btn := r.p.Retake.MinSize()
	imgH := size.Height * previewHeight
	if room := size.Height - btn.Height - retakeTopMargin; imgH > room {
		imgH = fyne.Max(room, 0)
	}
	top := (size.Height - imgH - retakeTopMargin - btn.Height) / 2

	r.p.Image.Resize(fyne.NewSize(size.Width, imgH))
	r.p.Image.Move(fyne.NewPos(0, top))
	r.p.Retake.Resize(btn)
	r.p.Retake.Move(fyne.NewPos((size.Width-btn.Width)/2, top+imgH+retakeTopMargin))
}

// PillButton is a white rounded button with bold black text.
type PillButton struct {
	widget.BaseWidget

	OnTapped func()
	bg       *canvas.Rectangle
	label    *canvas.Text
}

func NewPillButton(text string, tapped func()) *PillButton {
	b := &PillButton{OnTapped: tapped}
	b.ExtendBaseWidget(b)

	b.bg = canvas.NewRectangle(retakeFill)
	b.bg.CornerRadius = retakeRadius
	b.label = canvas.NewText(text, retakeText)
	b.label.TextStyle = fyne.TextStyle{Bold: true}
	b.label.Alignment = fyne.TextAlignCenter
	return b
}

func (b *PillButton) Text() string { return b.label.Text }

// Tapped implements [fyne.Tappable].
func (b *PillButton) Tapped(*fyne.PointEvent) {
	if b.OnTapped != nil {
		b.OnTapped()
	}
}

func (b *PillButton) CreateRenderer() fyne.WidgetRenderer {
	return &pillRenderer{b: b}
}

type pillRenderer struct {
	b *PillButton
}

func (r *pillRenderer) Destroy() {}

func (r *pillRenderer) MinSize() fyne.Size {
	ts := r.b.label.MinSize()
	return fyne.NewSize(ts.Width+2*retakePadX, ts.Height+2*retakePadY)
}

func (r *pillRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.b.bg, r.b.label}
}

func (r *pillRenderer) Refresh() {
	r.b.bg.Refresh()
	r.b.label.Refresh()
}

func (r *pillRenderer) Layout(size fyne.Size) {
	r.b.bg.Resize(size)
	r.b.label.Resize(fyne.NewSize(size.Width-2*retakePadX, size.Height-2*retakePadY))
	r.b.label.Move(fyne.NewPos(retakePadX, retakePadY))
}

var _ fyne.Tappable = (*PillButton)(nil)
