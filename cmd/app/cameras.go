package main

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/intothevoid/drishti/pkg/device"
	"github.com/intothevoid/drishti/pkg/screen"
	"golang.org/x/sync/errgroup"
)

var (
	errShuttingDown = errors.New("app is shutting down")
	errStreamOpen   = errors.New("a camera stream is already open")
)

// liveStream is the part of camera.VideoStream the app drives.
type liveStream interface {
	screen.Shutter
	screen.ZoomSink
	Run(ctx context.Context, due func(time.Time) bool, onFrame, onSample func(image.Image)) error
	Close()
}

// cameraHost owns the one camera stream. Nothing opens after Shutdown.
type cameraHost struct {
	ctx  context.Context
	g    *errgroup.Group
	open func(device.Device) (liveStream, error)

	mu     sync.Mutex
	stream liveStream
	closed bool
}

func newCameraHost(ctx context.Context, g *errgroup.Group, open func(device.Device) (liveStream, error)) *cameraHost {
	return &cameraHost{ctx: ctx, g: g, open: open}
}

// Start opens d and runs it in the host's group.
func (h *cameraHost) Start(d device.Device, run func(context.Context, liveStream) error) (liveStream, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || h.ctx.Err() != nil {
		return nil, errShuttingDown
	}
	if h.stream != nil {
		return nil, errStreamOpen
	}
	vs, err := h.open(d)
	if err != nil {
		return nil, err
	}
	h.stream = vs
	h.g.Go(func() error { return run(h.ctx, vs) })
	return vs, nil
}

// Shutdown waits for the group and closes the stream. Cancel the host's
// context first.
func (h *cameraHost) Shutdown() error {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	err := h.g.Wait()

	h.mu.Lock()
	if h.stream != nil {
		h.stream.Close()
		h.stream = nil
	}
	h.mu.Unlock()
	return err
}
