package screen

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Shutter takes a still photo and returns the path of the written file.
type Shutter interface {
	TakePhoto(ctx context.Context) (string, error)
}

// CaptureController runs one capture at a time against the attached camera.
type CaptureController struct {
	mu       sync.Mutex
	shutter  Shutter
	inFlight atomic.Bool
	logger   *slog.Logger

	onCaptured func(path string)
	onBusy     func(busy bool)
}

// NewCaptureController reports successful captures to onCaptured.
func NewCaptureController(logger *slog.Logger, onCaptured func(path string)) *CaptureController {
	return &CaptureController{logger: logger, onCaptured: onCaptured}
}

// Attach sets the live camera. Passing nil detaches it.
func (c *CaptureController) Attach(s Shutter) {
	c.mu.Lock()
	c.shutter = s
	c.mu.Unlock()
}

// OnBusy registers fn to be told when a capture starts and finishes.
func (c *CaptureController) OnBusy(fn func(busy bool)) {
	c.mu.Lock()
	c.onBusy = fn
	c.mu.Unlock()
}

// Busy reports whether a capture is outstanding.
func (c *CaptureController) Busy() bool { return c.inFlight.Load() }

// Capture takes a photo. It is a no-op without an attached camera or while
// another capture is outstanding. Failures are logged and leave the screen
// untouched. Reports whether a photo was taken.
func (c *CaptureController) Capture(ctx context.Context) bool {
	c.mu.Lock()
	shutter, busyFn := c.shutter, c.onBusy
	c.mu.Unlock()

	if shutter == nil {
		return false
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		if c.logger != nil {
			c.logger.Debug("capture already in flight, ignoring")
		}
		return false
	}
	if busyFn != nil {
		busyFn(true)
	}
	defer func() {
		c.inFlight.Store(false)
		if busyFn != nil {
			busyFn(false)
		}
	}()

	path, err := shutter.TakePhoto(ctx)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("error taking photo", "error", err)
		}
		return false
	}
	if c.logger != nil {
		c.logger.Info("photo taken", "path", path)
	}
	if c.onCaptured != nil {
		c.onCaptured(path)
	}
	return true
}
