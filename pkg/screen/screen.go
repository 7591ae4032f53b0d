// Package screen holds the camera screen's behavior: permission gating,
// device selection, zoom, the label overlay and the capture/review flow.
// It has no UI or camera dependencies; pkg/ui and pkg/camera plug into it.
package screen

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/intothevoid/drishti/pkg/device"
)

// Mode is what the screen renders.
type Mode int

const (
	ModeInit Mode = iota
	ModeNoPermission
	ModeNoDevice
	ModeLive
	ModeReview
)

func (m Mode) String() string {
	switch m {
	case ModeInit:
		return "init"
	case ModeNoPermission:
		return "no_permission"
	case ModeNoDevice:
		return "no_device"
	case ModeLive:
		return "live"
	case ModeReview:
		return "review"
	default:
		return "unknown"
	}
}

// Resolve derives the mode. Missing permission wins over a missing device,
// and both win over live or review.
func Resolve(granted bool, hasDevice bool, photoPath string) Mode {
	switch {
	case !granted:
		return ModeNoPermission
	case !hasDevice:
		return ModeNoDevice
	case photoPath != "":
		return ModeReview
	default:
		return ModeLive
	}
}

// Permission is the OS-owned camera permission.
type Permission interface {
	Granted() bool
	Request(ctx context.Context) (bool, error)
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(title, message string)
}

// Selector picks the camera device. ok is false when none is available.
type Selector func() (d device.Device, ok bool)

// ModeListener is told about every mode change.
type ModeListener func(prev, next Mode)

// Options configure a Screen.
type Options struct {
	Permission Permission
	Alerter    Alerter
	Selector   Selector
	GestureMin float64
	GestureMax float64
	Logger     *slog.Logger
}

// Screen is the camera screen state machine:
// INIT -> LIVE <-> REVIEW, or INIT -> NO_PERMISSION / NO_DEVICE.
type Screen struct {
	// selectMu is held across the selector call, which may open a camera.
	selectMu sync.Mutex

	mu        sync.Mutex
	perm      Permission
	alerter   Alerter
	selector  Selector
	logger    *slog.Logger
	mounted   bool
	granted   bool
	dev       *device.Device
	photoPath string
	mode      Mode
	listeners []ModeListener

	Zoom    *ZoomController
	Labels  *LabelOverlay
	Capture *CaptureController
}

func New(opts Options) *Screen {
	if opts.GestureMin == 0 && opts.GestureMax == 0 {
		opts.GestureMin, opts.GestureMax = 1, 10
	}
	s := &Screen{
		perm:     opts.Permission,
		alerter:  opts.Alerter,
		selector: opts.Selector,
		logger:   opts.Logger,
		mode:     ModeInit,
		Zoom:     NewZoomController(opts.GestureMin, opts.GestureMax),
		Labels:   NewLabelOverlay(),
	}
	s.Capture = NewCaptureController(opts.Logger, s.showPhoto)
	return s
}

// AddListener registers l for mode changes.
func (s *Screen) AddListener(l ModeListener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Mount runs the permission gate and device selection. It issues at most one
// permission request, and blocks while that request is pending, so call it
// off the UI goroutine.
func (s *Screen) Mount(ctx context.Context) {
	s.mu.Lock()
	if s.mounted {
		s.mu.Unlock()
		return
	}
	s.mounted = true
	s.mu.Unlock()

	granted := s.perm != nil && s.perm.Granted()
	if !granted && s.perm != nil {
		ok, err := s.perm.Request(ctx)
		if err != nil && s.logger != nil {
			s.logger.Error("permission request failed", "error", err)
		}
		granted = ok
		if !granted {
			if s.logger != nil {
				s.logger.Warn("camera permission denied")
			}
			if s.alerter != nil {
				s.alerter.Alert("Permission Denied", "Camera access is required.")
			}
		}
	}

	s.mu.Lock()
	s.granted = granted
	s.mu.Unlock()
	s.Refresh()
}

// Refresh re-reads the permission and, if no device is selected yet,
// retries selection. The selected device never changes once set.
func (s *Screen) Refresh() {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	if s.perm != nil && s.perm.Granted() {
		s.granted = true
	}
	needDevice := s.granted && s.dev == nil && s.selector != nil
	s.mu.Unlock()

	if needDevice {
		s.selectDevice()
	}
	s.update()
}

func (s *Screen) selectDevice() {
	s.selectMu.Lock()
	defer s.selectMu.Unlock()

	s.mu.Lock()
	done := s.dev != nil
	s.mu.Unlock()
	if done {
		return
	}

	d, ok := s.selector()
	if !ok {
		if s.logger != nil {
			s.logger.Warn("no camera device found")
		}
		return
	}
	s.mu.Lock()
	s.dev = &d
	s.mu.Unlock()
	if s.logger != nil {
		s.logger.Info("camera device selected", "device", d.String())
	}
	s.Zoom.SetDevice(d)
}

// LiveOnly wraps due so frames are sampled only while the live view shows.
func (s *Screen) LiveOnly(due func(time.Time) bool) func(time.Time) bool {
	return func(now time.Time) bool {
		return s.Mode() == ModeLive && (due == nil || due(now))
	}
}

// Device returns the selected device.
func (s *Screen) Device() (device.Device, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return device.Device{}, false
	}
	return *s.dev, true
}

// Mode returns the current mode.
func (s *Screen) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// PhotoPath returns the photo under review, or "" in live mode.
func (s *Screen) PhotoPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photoPath
}

// Retake discards the reviewed photo reference and returns to live mode.
// The file itself is left on disk.
func (s *Screen) Retake() {
	s.mu.Lock()
	s.photoPath = ""
	s.mu.Unlock()
	s.update()
}

func (s *Screen) showPhoto(path string) {
	s.mu.Lock()
	s.photoPath = path
	s.mu.Unlock()
	s.update()
}

func (s *Screen) update() {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	prev := s.mode
	next := Resolve(s.granted, s.dev != nil, s.photoPath)
	s.mode = next
	listeners := append([]ModeListener(nil), s.listeners...)
	s.mu.Unlock()

	if prev == next {
		return
	}
	if s.logger != nil {
		s.logger.Debug("screen mode transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range listeners {
		l(prev, next)
	}
}
