package vision

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/intothevoid/drishti/pkg/screen"
	"gocv.io/x/gocv"
)

// ErrNoModel is returned by NewClassifier when no model path is configured.
var ErrNoModel = errors.New("no labeling model configured")

// ClassifierConfig describes an image classification network and its input.
type ClassifierConfig struct {
	Model     string
	NetConfig string
	Labels    string
	InputSize int
	Mean      []float64
	Scale     float64
	SwapRB    bool
	Softmax   bool
	TopK      int
}

// Classifier labels whole frames with an OpenCV DNN classification model
// (Caffe, ONNX, TensorFlow; anything gocv.ReadNet accepts).
type Classifier struct {
	cfg    ClassifierConfig
	labels []string

	// gocv.Net is not safe for concurrent Forward calls.
	mu  sync.Mutex
	net gocv.Net
}

// NewClassifier loads the network and its label file.
func NewClassifier(cfg ClassifierConfig) (*Classifier, error) {
	if cfg.Model == "" {
		return nil, ErrNoModel
	}
	var labels []string
	if cfg.Labels != "" {
		var err error
		if labels, err = LoadLabels(cfg.Labels); err != nil {
			return nil, err
		}
	}

	net := gocv.ReadNet(cfg.Model, cfg.NetConfig)
	if net.Empty() {
		return nil, fmt.Errorf("load model %s", cfg.Model)
	}
	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		net.Close()
		return nil, fmt.Errorf("set backend: %w", err)
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		net.Close()
		return nil, fmt.Errorf("set target: %w", err)
	}

	if cfg.InputSize <= 0 {
		cfg.InputSize = 224
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1.0
	}
	return &Classifier{cfg: cfg, labels: labels, net: net}, nil
}

// Label implements screen.Labeler. Candidates are ordered best first.
func (c *Classifier) Label(frame image.Image) ([]screen.Candidate, error) {
	mat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return nil, fmt.Errorf("convert frame: %w", err)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("frame is empty")
	}

	mean := gocv.NewScalar(0, 0, 0, 0)
	if len(c.cfg.Mean) == 3 {
		mean = gocv.NewScalar(c.cfg.Mean[0], c.cfg.Mean[1], c.cfg.Mean[2], 0)
	}
	size := image.Pt(c.cfg.InputSize, c.cfg.InputSize)
	blob := gocv.BlobFromImage(mat, c.cfg.Scale, size, mean, c.cfg.SwapRB, false)
	defer blob.Close()

	c.mu.Lock()
	c.net.SetInput(blob, "")
	prob := c.net.Forward("")
	c.mu.Unlock()
	defer prob.Close()

	flat := prob.Reshape(1, 1)
	defer flat.Close()
	data, err := flat.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	scores := make([]float32, len(data))
	copy(scores, data)

	if c.cfg.Softmax {
		Softmax(scores)
	}
	return TopK(scores, c.labels, c.cfg.TopK), nil
}

func (c *Classifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.net.Close()
}

var _ screen.Labeler = (*Classifier)(nil)
