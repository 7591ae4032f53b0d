package screen

import (
	"sync"

	"github.com/intothevoid/drishti/pkg/device"
)

// ZoomSink receives zoom values. The camera stream implements it by storing
// the value where its frame loop reads it, so a gesture tick never rebuilds
// the widget tree.
type ZoomSink interface {
	SetZoom(z float64)
}

// ZoomController maps pinch scale onto the selected device's zoom range.
type ZoomController struct {
	mu         sync.Mutex
	dev        *device.Device
	gestureMin float64
	gestureMax float64
	current    float64
	start      float64 // baseline captured by Begin
	sink       ZoomSink
}

// NewZoomController creates a controller whose gesture domain is
// [gestureMin, gestureMax]. Gestures are ignored until a device is set.
func NewZoomController(gestureMin, gestureMax float64) *ZoomController {
	return &ZoomController{gestureMin: gestureMin, gestureMax: gestureMax}
}

// SetDevice binds the controller to a device and resets zoom to its minimum.
func (z *ZoomController) SetDevice(d device.Device) {
	z.mu.Lock()
	z.dev = &d
	z.current = d.MinZoom
	z.start = d.MinZoom
	sink, cur := z.sink, z.current
	z.mu.Unlock()

	if sink != nil {
		sink.SetZoom(cur)
	}
}

// SetSink attaches the live camera and pushes the current zoom to it.
func (z *ZoomController) SetSink(s ZoomSink) {
	z.mu.Lock()
	z.sink = s
	cur, ok := z.current, z.dev != nil
	z.mu.Unlock()

	if s != nil && ok {
		s.SetZoom(cur)
	}
}

// Begin starts a pinch session using the current zoom as its baseline.
func (z *ZoomController) Begin() {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.dev == nil {
		return
	}
	z.start = z.current
}

// Update applies the cumulative scale of the running pinch session.
func (z *ZoomController) Update(scale float64) {
	z.mu.Lock()
	if z.dev == nil {
		z.mu.Unlock()
		return
	}
	raw := z.start * scale
	z.current = Interpolate(raw, z.gestureMin, z.gestureMax, z.dev.MinZoom, z.dev.MaxZoom)
	sink, cur := z.sink, z.current
	z.mu.Unlock()

	if sink != nil {
		sink.SetZoom(cur)
	}
}

// Current returns the zoom last applied.
func (z *ZoomController) Current() float64 {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.current
}

// Interpolate maps x from [inMin, inMax] onto [outMin, outMax] and clamps the
// result to the output range.
func Interpolate(x, inMin, inMax, outMin, outMax float64) float64 {
	if x <= inMin || inMax <= inMin {
		return outMin
	}
	if x >= inMax {
		return outMax
	}
	return outMin + (x-inMin)*(outMax-outMin)/(inMax-inMin)
}
