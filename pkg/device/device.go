package device

import "fmt"

// Camera positions.
const (
	PositionBack  = "back"
	PositionFront = "front"
)

// Physical sensor types, in the vocabulary used by the preference list.
const (
	UltraWideAngle = "ultra-wide-angle-camera"
	WideAngle      = "wide-angle-camera"
	Telephoto      = "telephoto-camera"
)

// Device is one selectable camera configuration. Zoom bounds are fixed for
// the lifetime of the screen.
type Device struct {
	ID       int     `yaml:"id"`
	Name     string  `yaml:"name"`
	Position string  `yaml:"position"`
	Type     string  `yaml:"type"`
	MinZoom  float64 `yaml:"min_zoom"`
	MaxZoom  float64 `yaml:"max_zoom"`
}

func (d Device) String() string {
	name := d.Name
	if name == "" {
		name = fmt.Sprintf("camera %d", d.ID)
	}
	return fmt.Sprintf("%s (%s, %s, zoom %.1f-%.1f)", name, d.Position, d.Type, d.MinZoom, d.MaxZoom)
}

// Fallback is the device assumed when nothing is configured: the first
// capture device, treated as a back-facing wide-angle camera.
func Fallback() Device {
	return Device{
		ID:       0,
		Name:     "default",
		Position: PositionBack,
		Type:     WideAngle,
		MinZoom:  1,
		MaxZoom:  8,
	}
}

// Select picks the device for the given position. Earlier entries in
// preference win; when no device matches any preferred type the first device
// at that position is returned. ok is false when nothing faces that way.
func Select(devices []Device, position string, preference []string) (Device, bool) {
	for _, want := range preference {
		for _, d := range devices {
			if d.Position == position && d.Type == want {
				return d, true
			}
		}
	}
	for _, d := range devices {
		if d.Position == position {
			return d, true
		}
	}
	return Device{}, false
}
