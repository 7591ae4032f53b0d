package ui

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"github.com/intothevoid/drishti/pkg/screen"
)

// Placeholder is a centered message on black, used when the camera
// cannot be shown.
type Placeholder struct {
	*fyne.Container
	Text string
}

func NewPlaceholder(text string) *Placeholder {
	t := canvas.NewText(text, textColor)
	t.TextSize = textSize
	t.Alignment = fyne.TextAlignCenter
	return &Placeholder{
		Container: container.NewStack(canvas.NewRectangle(backgroundColor), container.NewCenter(t)),
		Text:      text,
	}
}

// ScreenView renders a screen.Screen. Live widgets are built once and kept,
// so switching modes never interrupts the camera feed, and content is only
// replaced when the mode changes.
type ScreenView struct {
	s          *screen.Screen
	ctx        context.Context
	setContent func(fyne.CanvasObject)

	Camera  *CameraView
	Label   *LabelBadge
	Shutter *ShutterButton
	live    fyne.CanvasObject
}

// NewScreenView wires s to its widgets. setContent is called on the Fyne
// thread with the object for each new mode. Captures started from the
// shutter use ctx.
func NewScreenView(ctx context.Context, s *screen.Screen, setContent func(fyne.CanvasObject)) *ScreenView {
	v := &ScreenView{s: s, ctx: ctx, setContent: setContent}

	v.Camera = NewCameraView(s.Zoom)
	v.Label = NewLabelBadge(s.Labels.Text())
	v.Shutter = NewShutterButton(v.takePhoto)

	topInset := canvas.NewRectangle(color.Transparent)
	topInset.SetMinSize(fyne.NewSize(0, labelTop))
	bottomInset := canvas.NewRectangle(color.Transparent)
	bottomInset.SetMinSize(fyne.NewSize(0, shutterBottom))

	v.live = container.NewStack(
		v.Camera,
		container.NewVBox(topInset, container.NewCenter(v.Label)),
		container.NewVBox(layout.NewSpacer(), container.NewCenter(v.Shutter), bottomInset),
	)

	s.Labels.OnChange(func(text string) {
		fyne.Do(func() { v.Label.SetText(text) })
	})
	s.Capture.OnBusy(func(busy bool) {
		fyne.Do(func() {
			if busy {
				v.Shutter.Disable()
			} else {
				v.Shutter.Enable()
			}
		})
	})
	s.AddListener(func(_, next screen.Mode) {
		fyne.Do(func() { v.setContent(v.Render(next)) })
	})
	return v
}

// Render returns the object for mode m.
func (v *ScreenView) Render(m screen.Mode) fyne.CanvasObject {
	switch m {
	case screen.ModeNoPermission:
		return NewPlaceholder(TextPermissionRequired)
	case screen.ModeNoDevice:
		return NewPlaceholder(TextNoDevice)
	case screen.ModeReview:
		return NewPhotoPreview(v.s.PhotoPath(), v.s.Retake)
	case screen.ModeLive:
		return v.live
	default:
		return canvas.NewRectangle(backgroundColor)
	}
}

// takePhoto runs the capture off the Fyne thread.
func (v *ScreenView) takePhoto() {
	go v.s.Capture.Capture(v.ctx)
}
