package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/intothevoid/drishti/pkg/device"
	"gocv.io/x/gocv"
)

// ErrNoFrame is returned by TakePhoto before the first frame has been read.
var ErrNoFrame = errors.New("no frame captured yet")

// Settings holds capture configuration for a VideoStream.
type Settings struct {
	Width      int
	Height     int
	PreviewFPS int
	PhotoDir   string
}

// VideoStream manages the webcam connection for the selected device.
type VideoStream struct {
	device device.Device
	cfg    Settings
	logger *slog.Logger
	webcam *gocv.VideoCapture
	frame  gocv.Mat // reused for every read
	zoom   atomic.Uint64

	// still is the last zoomed frame, kept for TakePhoto.
	mu    sync.Mutex
	still gocv.Mat
}

// Open initializes the camera behind d.
func Open(d device.Device, cfg Settings, logger *slog.Logger) (*VideoStream, error) {
	cam, err := gocv.VideoCaptureDevice(d.ID)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", d.ID, err)
	}
	if !cam.IsOpened() {
		cam.Close()
		return nil, fmt.Errorf("open camera %d: device not available", d.ID)
	}

	// Keep processing fast
	cam.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	cam.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))

	vs := &VideoStream{
		device: d,
		cfg:    cfg,
		logger: logger,
		webcam: cam,
		frame:  gocv.NewMat(),
		still:  gocv.NewMat(),
	}
	vs.SetZoom(d.MinZoom)
	return vs, nil
}

// SetZoom stores the zoom applied to the next frame. Safe from any goroutine.
func (vs *VideoStream) SetZoom(z float64) {
	vs.zoom.Store(math.Float64bits(z))
}

// Zoom returns the zoom currently applied.
func (vs *VideoStream) Zoom() float64 {
	return math.Float64frombits(vs.zoom.Load())
}

// Run reads frames until ctx is done. Every frame goes to onFrame; frames
// admitted by due go to onSample as well.
func (vs *VideoStream) Run(ctx context.Context, due func(time.Time) bool, onFrame, onSample func(image.Image)) error {
	fps := vs.cfg.PreviewFPS
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			img, err := vs.read()
			if err != nil {
				if vs.logger != nil {
					vs.logger.Debug("frame read failed", "error", err)
				}
				continue
			}
			if onFrame != nil {
				onFrame(img)
			}
			if onSample != nil && (due == nil || due(now)) {
				onSample(img)
			}
		}
	}
}

// read grabs one frame, applies digital zoom and keeps it for TakePhoto.
func (vs *VideoStream) read() (image.Image, error) {
	if !vs.webcam.Read(&vs.frame) {
		return nil, fmt.Errorf("cannot read frame")
	}
	if vs.frame.Empty() {
		return nil, fmt.Errorf("frame is empty")
	}

	w, h := vs.frame.Cols(), vs.frame.Rows()
	rect := ZoomRect(w, h, Magnification(vs.Zoom(), vs.device.MinZoom))

	zoomed := gocv.NewMat()
	if rect.Dx() == w && rect.Dy() == h {
		vs.frame.CopyTo(&zoomed)
	} else {
		region := vs.frame.Region(rect)
		gocv.Resize(region, &zoomed, image.Pt(w, h), 0, 0, gocv.InterpolationLinear)
		region.Close()
	}

	// GoCV Mat -> Go Image conversion for Fyne and the labeler
	img, err := zoomed.ToImage()
	if err != nil {
		zoomed.Close()
		return nil, err
	}

	vs.mu.Lock()
	vs.still.Close()
	vs.still = zoomed
	vs.mu.Unlock()
	return img, nil
}

// TakePhoto writes the current zoomed frame as a JPEG into the photo
// directory and returns its path.
func (vs *VideoStream) TakePhoto(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	vs.mu.Lock()
	if vs.still.Empty() {
		vs.mu.Unlock()
		return "", ErrNoFrame
	}
	shot := vs.still.Clone()
	vs.mu.Unlock()
	defer shot.Close()

	path := filepath.Join(vs.cfg.PhotoDir, "photo-"+uuid.NewString()+".jpg")
	if ok := gocv.IMWrite(path, shot); !ok {
		return "", fmt.Errorf("write photo %s", path)
	}
	return path, nil
}

// Device returns the device the stream was opened on.
func (vs *VideoStream) Device() device.Device { return vs.device }

func (vs *VideoStream) Close() {
	vs.webcam.Close()
	vs.frame.Close()
	vs.mu.Lock()
	vs.still.Close()
	vs.mu.Unlock()
}
