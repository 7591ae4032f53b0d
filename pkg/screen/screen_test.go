package screen

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/intothevoid/drishti/pkg/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePermission struct {
	granted  bool
	answer   bool
	err      error
	requests int
}

func (p *fakePermission) Granted() bool { return p.granted }
func (p *fakePermission) Request(context.Context) (bool, error) {
	p.requests++
	if p.answer {
		p.granted = true
	}
	return p.answer, p.err
}

type fakeAlerter struct{ titles, messages []string }

func (a *fakeAlerter) Alert(title, message string) {
	a.titles = append(a.titles, title)
	a.messages = append(a.messages, message)
}

type fakeShutter struct {
	mu    sync.Mutex
	path  string
	err   error
	calls int
	block chan struct{}
}

func (f *fakeShutter) TakePhoto(context.Context) (string, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.path, f.err
}

var testDevice = device.Device{ID: 0, Position: device.PositionBack, Type: device.WideAngle, MinZoom: 1, MaxZoom: 8}

func withDevice() (device.Device, bool)    { return testDevice, true }
func withoutDevice() (device.Device, bool) { return device.Device{}, false }

func newScreen(perm Permission, alerter Alerter, sel Selector) *Screen {
	return New(Options{Permission: perm, Alerter: alerter, Selector: sel})
}

func TestResolvePrecedence(t *testing.T) {
	tests := []struct {
		granted, device bool
		path            string
		want            Mode
	}{
		{false, false, "", ModeNoPermission},
		{false, true, "", ModeNoPermission},
		{false, true, "/tmp/a.jpg", ModeNoPermission},
		{true, false, "", ModeNoDevice},
		{true, false, "/tmp/a.jpg", ModeNoDevice},
		{true, true, "", ModeLive},
		{true, true, "/tmp/a.jpg", ModeReview},
	}
	for _, tt := range tests {
		got := Resolve(tt.granted, tt.device, tt.path)
		if got != tt.want {
			t.Errorf("Resolve(%v, %v, %q) = %s, want %s", tt.granted, tt.device, tt.path, got, tt.want)
		}
	}
}

func TestMount_GrantedGoesLive(t *testing.T) {
	perm := &fakePermission{granted: true}
	s := newScreen(perm, nil, withDevice)
	assert.Equal(t, ModeInit, s.Mode())

	s.Mount(context.Background())

	assert.Equal(t, ModeLive, s.Mode())
	assert.Equal(t, 0, perm.requests, "no request when already granted")
	d, ok := s.Device()
	require.True(t, ok)
	assert.Equal(t, testDevice, d)
	assert.Equal(t, testDevice.MinZoom, s.Zoom.Current())
}

func TestMount_RequestsOnceAndAlertsOnDenial(t *testing.T) {
	perm := &fakePermission{}
	alerts := &fakeAlerter{}
	s := newScreen(perm, alerts, withDevice)

	s.Mount(context.Background())
	s.Mount(context.Background())
	s.Refresh()

	assert.Equal(t, 1, perm.requests)
	assert.Equal(t, []string{"Permission Denied"}, alerts.titles)
	assert.Equal(t, []string{"Camera access is required."}, alerts.messages)
	assert.Equal(t, ModeNoPermission, s.Mode())
}

func TestMount_RequestGranted(t *testing.T) {
	perm := &fakePermission{answer: true}
	alerts := &fakeAlerter{}
	s := newScreen(perm, alerts, withDevice)

	s.Mount(context.Background())

	assert.Equal(t, 1, perm.requests)
	assert.Empty(t, alerts.titles)
	assert.Equal(t, ModeLive, s.Mode())
}

func TestMount_RequestErrorCountsAsDenied(t *testing.T) {
	perm := &fakePermission{err: errors.New("dialog closed")}
	alerts := &fakeAlerter{}
	s := newScreen(perm, alerts, withDevice)

	s.Mount(context.Background())

	assert.Equal(t, ModeNoPermission, s.Mode())
	assert.Len(t, alerts.titles, 1)
}

func TestMount_NoDevice(t *testing.T) {
	s := newScreen(&fakePermission{granted: true}, nil, withoutDevice)
	s.Mount(context.Background())
	assert.Equal(t, ModeNoDevice, s.Mode())

	// gestures are ignored without a device
	s.Zoom.Begin()
	s.Zoom.Update(4)
	assert.Equal(t, 0.0, s.Zoom.Current())
}

func TestRefresh_PicksUpLaterGrantAndKeepsDevice(t *testing.T) {
	perm := &fakePermission{}
	calls := 0
	sel := func() (device.Device, bool) {
		calls++
		d := testDevice
		d.ID = calls
		return d, true
	}
	s := newScreen(perm, &fakeAlerter{}, sel)
	s.Mount(context.Background())
	require.Equal(t, ModeNoPermission, s.Mode())
	assert.Equal(t, 0, calls, "device is not opened without permission")

	perm.granted = true
	s.Refresh()
	assert.Equal(t, ModeLive, s.Mode())

	s.Refresh()
	d, _ := s.Device()
	assert.Equal(t, 1, d.ID)
	assert.Equal(t, 1, calls)
}

func TestCaptureAndRetake(t *testing.T) {
	s := newScreen(&fakePermission{granted: true}, nil, withDevice)
	var transitions []Mode
	s.AddListener(func(_, next Mode) { transitions = append(transitions, next) })
	s.Mount(context.Background())

	shutter := &fakeShutter{path: "/tmp/photo-1.jpg"}
	s.Capture.Attach(shutter)

	require.True(t, s.Capture.Capture(context.Background()))
	assert.Equal(t, ModeReview, s.Mode())
	assert.Equal(t, "/tmp/photo-1.jpg", s.PhotoPath())

	s.Retake()
	assert.Equal(t, ModeLive, s.Mode())
	assert.Empty(t, s.PhotoPath())

	s.Retake()
	assert.Equal(t, ModeLive, s.Mode())

	assert.Equal(t, []Mode{ModeLive, ModeReview, ModeLive}, transitions)
}

func TestCaptureWithoutCameraIsNoop(t *testing.T) {
	s := newScreen(&fakePermission{granted: true}, nil, withDevice)
	s.Mount(context.Background())

	assert.NotPanics(t, func() {
		assert.False(t, s.Capture.Capture(context.Background()))
	})
	assert.Equal(t, ModeLive, s.Mode())
	assert.Empty(t, s.PhotoPath())

	s.Capture.Attach(&fakeShutter{path: "/tmp/x.jpg"})
	s.Capture.Attach(nil)
	assert.False(t, s.Capture.Capture(context.Background()))
	assert.Equal(t, ModeLive, s.Mode())
}

func TestCaptureFailureStaysLive(t *testing.T) {
	s := newScreen(&fakePermission{granted: true}, nil, withDevice)
	s.Mount(context.Background())
	s.Capture.Attach(&fakeShutter{err: errors.New("sensor busy")})

	assert.False(t, s.Capture.Capture(context.Background()))
	assert.Equal(t, ModeLive, s.Mode())
	assert.False(t, s.Capture.Busy())
}

func TestCaptureIgnoresSecondTapWhileInFlight(t *testing.T) {
	s := newScreen(&fakePermission{granted: true}, nil, withDevice)
	s.Mount(context.Background())

	shutter := &fakeShutter{path: "/tmp/one.jpg", block: make(chan struct{})}
	s.Capture.Attach(shutter)

	var busy []bool
	var mu sync.Mutex
	s.Capture.OnBusy(func(b bool) {
		mu.Lock()
		busy = append(busy, b)
		mu.Unlock()
	})

	first := make(chan bool)
	go func() { first <- s.Capture.Capture(context.Background()) }()

	require.Eventually(t, s.Capture.Busy, time.Second, time.Millisecond)
	assert.False(t, s.Capture.Capture(context.Background()), "second tap must be ignored")

	close(shutter.block)
	assert.True(t, <-first)
	assert.Equal(t, 1, shutter.calls)
	assert.Equal(t, ModeReview, s.Mode())

	mu.Lock()
	assert.Equal(t, []bool{true, false}, busy)
	mu.Unlock()
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "review", ModeReview.String())
	assert.Equal(t, "no_device", ModeNoDevice.String())
	assert.Equal(t, "unknown", Mode(42).String())
}

func TestConcurrentMountAndRefreshSelectOnce(t *testing.T) {
	for i := 0; i < 20; i++ {
		var calls atomic.Int32
		slowOpen := func() (device.Device, bool) {
			calls.Add(1)
			time.Sleep(5 * time.Millisecond)
			return testDevice, true
		}
		s := newScreen(&fakePermission{granted: true}, nil, slowOpen)

		var wg sync.WaitGroup
		wg.Add(3)
		go func() { defer wg.Done(); s.Mount(context.Background()) }()
		go func() { defer wg.Done(); s.Refresh() }()
		go func() { defer wg.Done(); s.Refresh() }()
		wg.Wait()
		s.Refresh()

		require.Equal(t, int32(1), calls.Load(), "selector must run once")
		assert.Equal(t, ModeLive, s.Mode())
	}
}

func TestLiveOnlySamplesInLiveMode(t *testing.T) {
	s := newScreen(&fakePermission{granted: true}, nil, withDevice)
	always := func(time.Time) bool { return true }
	due := s.LiveOnly(always)
	now := time.Now()

	assert.False(t, due(now), "not sampled before mount")

	s.Mount(context.Background())
	assert.True(t, due(now))

	s.Capture.Attach(&fakeShutter{path: "/tmp/review.jpg"})
	require.True(t, s.Capture.Capture(context.Background()))
	assert.False(t, due(now), "not sampled while reviewing")

	s.Retake()
	assert.True(t, due(now))
	assert.False(t, s.LiveOnly(func(time.Time) bool { return false })(now))
}
