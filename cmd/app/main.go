package main

import (
	"context"
	"errors"
	"flag"
	"image"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"golang.org/x/sync/errgroup"

	"github.com/intothevoid/drishti/pkg/camera"
	"github.com/intothevoid/drishti/pkg/config"
	"github.com/intothevoid/drishti/pkg/device"
	"github.com/intothevoid/drishti/pkg/permission"
	"github.com/intothevoid/drishti/pkg/screen"
	"github.com/intothevoid/drishti/pkg/ui"
	"github.com/intothevoid/drishti/pkg/vision"
)

func main() {
	configPath := flag.String("config", "drishti.yaml", "path to the YAML config file")
	debug := flag.Bool("debug", false, "force debug logging")
	flag.Parse()

	// 1. Config and logger
	cfg, cfgErr := config.Load(*configPath)
	level := ParseLevel(cfg.LogLevel)
	if *debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if cfgErr != nil {
		logger.Warn("config load failed, using defaults", "path", *configPath, "error", cfgErr)
	}

	// 2. Setup the Fyne UI App
	myApp := app.NewWithID("io.github.intothevoid.drishti")
	window := myApp.NewWindow("Drishti")

	var perm screen.Permission = permission.NewPreferences(myApp.Preferences(), permission.DialogPrompt(window))
	if cfg.Permission.AssumeGranted {
		perm = permission.Static(true)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// 3. Image labeling
	classifier, err := vision.NewClassifier(vision.ClassifierConfig{
		Model:     cfg.Analysis.Model,
		NetConfig: cfg.Analysis.NetConfig,
		Labels:    cfg.Analysis.Labels,
		InputSize: cfg.Analysis.InputSize,
		Mean:      cfg.Analysis.Mean,
		Scale:     cfg.Analysis.Scale,
		SwapRB:    cfg.Analysis.SwapRB,
		Softmax:   cfg.Analysis.Softmax,
		TopK:      cfg.Analysis.TopK,
	})
	var analyzer *screen.Analyzer
	switch {
	case err == nil:
		defer classifier.Close()
		analyzer = screen.NewAnalyzer(classifier, logger)
	case errors.Is(err, vision.ErrNoModel):
	default:
		logger.Error("labeling model failed to load", "model", cfg.Analysis.Model, "error", err)
	}
	logger.Info("frame analysis", "available", analyzer != nil, "fps", cfg.Analysis.FPS, "workers", cfg.Analysis.Workers)

	// 4. Camera selection opens the stream and starts feeding the screen
	var (
		s    *screen.Screen
		view *ui.ScreenView
	)
	settings := camera.Settings{
		Width:      cfg.Camera.Width,
		Height:     cfg.Camera.Height,
		PreviewFPS: cfg.Camera.PreviewFPS,
		PhotoDir:   cfg.Capture.Dir,
	}
	cams := newCameraHost(ctx, g, func(d device.Device) (liveStream, error) {
		vs, err := camera.Open(d, settings, logger)
		if err != nil {
			return nil, err
		}
		return vs, nil
	})
	selectDevice := func() (device.Device, bool) {
		d, ok := device.Select(cfg.Camera.Devices, cfg.Camera.Position, cfg.Camera.PhysicalDevices)
		if !ok {
			return d, false
		}
		sampler := screen.NewFrameSampler(cfg.Analysis.FPS)
		var onSample func(image.Image)
		if analyzer != nil {
			onSample = func(img image.Image) { analyzer.Offer(img) }
		}
		vs, err := cams.Start(d, func(ctx context.Context, vs liveStream) error {
			return vs.Run(ctx, s.LiveOnly(sampler.Due), view.Camera.UpdateFrame, onSample)
		})
		if errors.Is(err, errShuttingDown) {
			return d, false
		}
		if err != nil {
			logger.Error("camera open failed", "device", d.String(), "error", err)
			return d, false
		}
		s.Zoom.SetSink(vs)
		s.Capture.Attach(vs)
		return d, true
	}

	s = screen.New(screen.Options{
		Permission: perm,
		Alerter:    permission.DialogAlerter{Window: window},
		Selector:   selectDevice,
		GestureMin: cfg.Zoom.GestureMin,
		GestureMax: cfg.Zoom.GestureMax,
		Logger:     logger,
	})
	view = ui.NewScreenView(ctx, s, window.SetContent)

	// 5. The frame analysis workers and the result pump
	if analyzer != nil {
		for i := 0; i < cfg.Analysis.Workers; i++ {
			g.Go(func() error { return analyzer.Run(ctx) })
		}
		g.Go(func() error { return s.Labels.Consume(ctx, analyzer.Results()) })
	}

	myApp.Lifecycle().SetOnStarted(func() {
		go s.Mount(ctx)
	})
	myApp.Lifecycle().SetOnEnteredForeground(func() {
		go s.Refresh()
	})

	// 6. Layout and Run
	window.SetContent(view.Render(s.Mode()))
	window.Resize(fyne.NewSize(480, 854))
	window.SetOnClosed(cancel)
	window.ShowAndRun()

	cancel()
	if err := cams.Shutdown(); err != nil {
		logger.Error("shutdown", "error", err)
	}
	if skipped := analyzerSkipped(analyzer); skipped > 0 {
		logger.Debug("frames skipped while labeling", "count", skipped)
	}
}

func analyzerSkipped(a *screen.Analyzer) uint64 {
	if a == nil {
		return 0
	}
	return a.Skipped()
}
