package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/intothevoid/drishti/pkg/device"
	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the camera screen.
// Fields may be loaded from a YAML file and overridden by command-line flags.
type Config struct {
	LogLevel   string           `yaml:"log_level"`
	Camera     CameraConfig     `yaml:"camera"`
	Zoom       ZoomConfig       `yaml:"zoom"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Capture    CaptureConfig    `yaml:"capture"`
	Permission PermissionConfig `yaml:"permission"`
}

// CameraConfig describes the devices on this machine and how to open them.
type CameraConfig struct {
	Position        string          `yaml:"position"`
	PhysicalDevices []string        `yaml:"physical_devices"`
	Devices         []device.Device `yaml:"devices"`
	Width           int             `yaml:"width"`
	Height          int             `yaml:"height"`
	PreviewFPS      int             `yaml:"preview_fps"`
}

// ZoomConfig is the gesture domain mapped onto the device zoom range.
type ZoomConfig struct {
	GestureMin float64 `yaml:"gesture_min"`
	GestureMax float64 `yaml:"gesture_max"`
}

// AnalysisConfig points at the image-labeling model. An empty Model disables
// frame analysis.
type AnalysisConfig struct {
	FPS       int       `yaml:"fps"`
	Workers   int       `yaml:"workers"`
	Model     string    `yaml:"model"`
	NetConfig string    `yaml:"config"`
	Labels    string    `yaml:"labels"`
	InputSize int       `yaml:"input_size"`
	Mean      []float64 `yaml:"mean"`
	Scale     float64   `yaml:"scale"`
	SwapRB    bool      `yaml:"swap_rb"`
	Softmax   bool      `yaml:"softmax"`
	TopK      int       `yaml:"top_k"`
}

type CaptureConfig struct {
	Dir string `yaml:"dir"`
}

type PermissionConfig struct {
	AssumeGranted bool `yaml:"assume_granted"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Camera: CameraConfig{
			Position:        device.PositionBack,
			PhysicalDevices: []string{device.UltraWideAngle, device.WideAngle, device.Telephoto},
			Devices:         []device.Device{device.Fallback()},
			Width:           640,
			Height:          480,
			PreviewFPS:      30,
		},
		Zoom: ZoomConfig{
			GestureMin: 1,
			GestureMax: 10,
		},
		Analysis: AnalysisConfig{
			FPS:       5,
			Workers:   1,
			InputSize: 224,
			Mean:      []float64{104, 117, 123},
			Scale:     1.0,
			SwapRB:    false,
			Softmax:   true,
			TopK:      5,
		},
		Capture: CaptureConfig{
			Dir: os.TempDir(),
		},
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "info"
	}
	if c.Camera.Position == "" {
		c.Camera.Position = device.PositionBack
	}
	if len(c.Camera.Devices) == 0 {
		c.Camera.Devices = []device.Device{device.Fallback()}
	}
	for i := range c.Camera.Devices {
		d := &c.Camera.Devices[i]
		if d.MinZoom <= 0 {
			d.MinZoom = 1
		}
		if d.MaxZoom < d.MinZoom {
			d.MaxZoom = d.MinZoom
		}
	}
	if c.Camera.Width <= 0 {
		c.Camera.Width = 640
	}
	if c.Camera.Height <= 0 {
		c.Camera.Height = 480
	}
	if c.Camera.PreviewFPS <= 0 {
		c.Camera.PreviewFPS = 30
	}
	if c.Zoom.GestureMin <= 0 {
		c.Zoom.GestureMin = 1
	}
	if c.Zoom.GestureMax <= c.Zoom.GestureMin {
		c.Zoom.GestureMax = c.Zoom.GestureMin + 9
	}
	if c.Analysis.FPS <= 0 {
		c.Analysis.FPS = 5
	}
	if c.Analysis.FPS > c.Camera.PreviewFPS {
		c.Analysis.FPS = c.Camera.PreviewFPS
	}
	if c.Analysis.Workers <= 0 {
		c.Analysis.Workers = 1
	}
	if c.Analysis.InputSize <= 0 {
		c.Analysis.InputSize = 224
	}
	if c.Analysis.Scale <= 0 {
		c.Analysis.Scale = 1.0
	}
	if c.Analysis.TopK <= 0 {
		c.Analysis.TopK = 5
	}
	if c.Capture.Dir == "" {
		c.Capture.Dir = os.TempDir()
	}
	return nil
}

// Load reads configuration from the given YAML file path. If the file does
// not exist it returns DefaultConfig(). On a decode error it returns defaults
// with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in YAML format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
