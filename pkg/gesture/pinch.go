package gesture

import (
	"sync"
	"time"
)

const (
	// IdleGap ends a pinch session when no scroll arrives for this long.
	IdleGap = 250 * time.Millisecond
	// Sensitivity is the scale change per scrolled pixel.
	Sensitivity = 0.01
	minScale    = 0.05
)

// PinchHandler receives pinch sessions. Update gets the scale relative to the
// start of the session.
type PinchHandler interface {
	Begin()
	Update(scale float64)
}

// Pinch turns a stream of scroll deltas into pinch sessions, standing in for
// a two-finger pinch on desktops where only a wheel or trackpad is available.
type Pinch struct {
	mu      sync.Mutex
	handler PinchHandler
	scale   float64
	last    time.Time
	now     func() time.Time
}

func NewPinch(h PinchHandler) *Pinch {
	return &Pinch{handler: h, now: time.Now}
}

// Scroll feeds one scroll event. Positive dy zooms in.
func (p *Pinch) Scroll(dy float32) {
	p.mu.Lock()
	now := p.now()
	begin := p.last.IsZero() || now.Sub(p.last) > IdleGap
	if begin {
		p.scale = 1
	}
	p.last = now
	p.scale *= 1 + float64(dy)*Sensitivity
	if p.scale < minScale {
		p.scale = minScale
	}
	scale := p.scale
	h := p.handler
	p.mu.Unlock()

	if h == nil {
		return
	}
	if begin {
		h.Begin()
	}
	h.Update(scale)
}

// End closes the running session so the next scroll starts a new one.
func (p *Pinch) End() {
	p.mu.Lock()
	p.last = time.Time{}
	p.mu.Unlock()
}
