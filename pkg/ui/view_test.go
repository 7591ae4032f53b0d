package ui

import (
	"context"
	"image"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/intothevoid/drishti/pkg/device"
	"github.com/intothevoid/drishti/pkg/permission"
	"github.com/intothevoid/drishti/pkg/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubShutter struct{ path string }

func (s stubShutter) TakePhoto(context.Context) (string, error) { return s.path, nil }

type recordingPinch struct {
	begins  int
	updates []float64
}

func (r *recordingPinch) Begin()               { r.begins++ }
func (r *recordingPinch) Update(scale float64) { r.updates = append(r.updates, scale) }

func newTestScreen(granted bool, hasDevice bool) *screen.Screen {
	return screen.New(screen.Options{
		Permission: permission.Static(granted),
		Selector: func() (device.Device, bool) {
			return device.Fallback(), hasDevice
		},
	})
}

func TestScreenView_RendersPlaceholders(t *testing.T) {
	test.NewTempApp(t)

	tests := []struct {
		granted, device bool
		want            string
	}{
		{false, true, TextPermissionRequired},
		{false, false, TextPermissionRequired},
		{true, false, TextNoDevice},
	}
	for _, tt := range tests {
		s := newTestScreen(tt.granted, tt.device)
		var content fyne.CanvasObject
		v := NewScreenView(context.Background(), s, func(o fyne.CanvasObject) { content = o })
		s.Mount(context.Background())

		obj := v.Render(s.Mode())
		p, ok := obj.(*Placeholder)
		require.True(t, ok, "mode %s rendered %T", s.Mode(), obj)
		assert.Equal(t, tt.want, p.Text)

		assert.Eventually(t, func() bool { return content != nil }, time.Second, 5*time.Millisecond)
	}
}

func TestScreenView_CaptureThenRetake(t *testing.T) {
	test.NewTempApp(t)

	s := newTestScreen(true, true)
	v := NewScreenView(context.Background(), s, func(fyne.CanvasObject) {})
	s.Mount(context.Background())
	require.Equal(t, screen.ModeLive, s.Mode())
	assert.Same(t, v.live, v.Render(screen.ModeLive))

	s.Capture.Attach(stubShutter{path: "/tmp/photo-test.jpg"})
	test.Tap(v.Shutter)
	require.Eventually(t, func() bool { return s.Mode() == screen.ModeReview }, time.Second, 5*time.Millisecond)

	preview, ok := v.Render(screen.ModeReview).(*PhotoPreview)
	require.True(t, ok)
	assert.Equal(t, "/tmp/photo-test.jpg", preview.Path)
	assert.Equal(t, TextRetake, preview.Retake.Text())

	test.Tap(preview.Retake)
	assert.Equal(t, screen.ModeLive, s.Mode())
	assert.Empty(t, s.PhotoPath())
}

func TestScreenView_LabelFollowsOverlay(t *testing.T) {
	test.NewTempApp(t)

	s := newTestScreen(true, true)
	v := NewScreenView(context.Background(), s, func(fyne.CanvasObject) {})
	assert.Equal(t, screen.DefaultLabel, v.Label.Text())

	s.Labels.Apply(screen.AnalysisResult{Seq: 1, Label: "Mug"})
	assert.Eventually(t, func() bool { return v.Label.Text() == "Mug" }, time.Second, 5*time.Millisecond)
}

func TestShutterButton_DisabledIgnoresTaps(t *testing.T) {
	test.NewTempApp(t)

	taps := 0
	b := NewShutterButton(func() { taps++ })
	test.Tap(b)
	b.Disable()
	test.Tap(b)
	b.Enable()
	test.Tap(b)
	assert.Equal(t, 2, taps)
}

func TestPhotoPreview_RetakeCallsBack(t *testing.T) {
	test.NewTempApp(t)

	called := 0
	p := NewPhotoPreview("/tmp/none.jpg", func() { called++ })
	test.Tap(p.Retake)
	test.Tap(p.Retake)
	assert.Equal(t, 2, called)
}

func TestCameraView_ScrollDrivesPinch(t *testing.T) {
	test.NewTempApp(t)

	rec := &recordingPinch{}
	v := NewCameraView(rec)
	v.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 10}})
	v.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 10}})

	assert.Equal(t, 1, rec.begins)
	require.Len(t, rec.updates, 2)
	assert.Greater(t, rec.updates[1], rec.updates[0])

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	v.UpdateFrame(img)
	assert.Eventually(t, func() bool { return v.Frame() == image.Image(img) }, time.Second, 5*time.Millisecond)
}

func TestCameraView_MouseOutEndsPinch(t *testing.T) {
	test.NewTempApp(t)

	rec := &recordingPinch{}
	v := NewCameraView(rec)
	v.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 10}})
	v.MouseOut()
	v.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 10}})

	assert.Equal(t, 2, rec.begins)
	require.Len(t, rec.updates, 2)
	assert.Equal(t, rec.updates[0], rec.updates[1], "new session scales from 1 again")
}

func TestLabelBadge_SetText(t *testing.T) {
	test.NewTempApp(t)

	b := NewLabelBadge("Detecting...")
	b.SetText("Keyboard")
	assert.Equal(t, "Keyboard", b.Text())
}
