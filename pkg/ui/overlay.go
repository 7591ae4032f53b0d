package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// LabelBadge is the rounded, translucent box showing the detected label.
type LabelBadge struct {
	widget.BaseWidget

	bg   *canvas.Rectangle
	text *canvas.Text
}

func NewLabelBadge(initial string) *LabelBadge {
	b := &LabelBadge{}
	b.ExtendBaseWidget(b)

	b.bg = canvas.NewRectangle(labelBgColor)
	b.bg.CornerRadius = labelRadius
	b.text = canvas.NewText(initial, textColor)
	b.text.TextSize = textSize
	b.text.Alignment = fyne.TextAlignCenter
	return b
}

// SetText replaces the label. Call on the Fyne thread.
func (b *LabelBadge) SetText(s string) {
	if b.text.Text == s {
		return
	}
	b.text.Text = s
	b.Refresh()
}

func (b *LabelBadge) Text() string { return b.text.Text }

func (b *LabelBadge) CreateRenderer() fyne.WidgetRenderer {
	return &badgeRenderer{b: b}
}

type badgeRenderer struct {
	b *LabelBadge
}

func (r *badgeRenderer) Destroy() {}

func (r *badgeRenderer) MinSize() fyne.Size {
	ts := r.b.text.MinSize()
	return fyne.NewSize(ts.Width+2*labelPadding, ts.Height+2*labelPadding)
}

func (r *badgeRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.b.bg, r.b.text}
}

func (r *badgeRenderer) Refresh() {
	r.b.text.Refresh()
	r.b.bg.Refresh()
}

func (r *badgeRenderer) Layout(size fyne.Size) {
	r.b.bg.Resize(size)
	r.b.bg.Move(fyne.NewPos(0, 0))
	r.b.text.Resize(fyne.NewSize(size.Width-2*labelPadding, size.Height-2*labelPadding))
	r.b.text.Move(fyne.NewPos(labelPadding, labelPadding))
}
