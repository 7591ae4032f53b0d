package screen

import (
	"context"
	"image"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"
)

// Candidate is one classification returned by a Labeler.
type Candidate struct {
	Label      string
	Confidence float32
}

// Labeler classifies a frame. Candidates are ordered best first.
type Labeler interface {
	Label(frame image.Image) ([]Candidate, error)
}

type sample struct {
	seq   uint64
	frame image.Image
}

// Analyzer labels sampled frames off the UI goroutine. Frames arrive through
// Offer and results leave through Results; nothing else is shared with the UI.
type Analyzer struct {
	labeler Labeler
	logger  *slog.Logger
	in      chan sample
	out     chan AnalysisResult
	seq     atomic.Uint64
	skipped atomic.Uint64
}

// NewAnalyzer creates an analyzer around l. Run must be started for offered
// frames to be accepted.
func NewAnalyzer(l Labeler, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		labeler: l,
		logger:  logger,
		in:      make(chan sample),
		out:     make(chan AnalysisResult, 4),
	}
}

// Offer hands frame to an idle worker. It never blocks: when every worker is
// busy the frame is skipped and false is returned.
func (a *Analyzer) Offer(frame image.Image) bool {
	if a == nil || frame == nil {
		return false
	}
	s := sample{seq: a.seq.Add(1), frame: frame}
	select {
	case a.in <- s:
		return true
	default:
		a.skipped.Add(1)
		return false
	}
}

// Results delivers labels in the order workers finish them.
func (a *Analyzer) Results() <-chan AnalysisResult { return a.out }

// Skipped reports how many offered frames found no idle worker.
func (a *Analyzer) Skipped() uint64 { return a.skipped.Load() }

// Run is one worker loop. Start several to label frames concurrently.
func (a *Analyzer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-a.in:
			r, ok := a.handle(s)
			if !ok {
				continue
			}
			select {
			case a.out <- r:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (a *Analyzer) handle(s sample) (r AnalysisResult, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			if a.logger != nil {
				a.logger.Error("labeler panic", "seq", s.seq, "error", rec, "stack", string(debug.Stack()))
			}
			ok = false
		}
	}()

	start := time.Now()
	candidates, err := a.labeler.Label(s.frame)
	if err != nil {
		if a.logger != nil {
			a.logger.Debug("labeling failed", "seq", s.seq, "error", err)
		}
		return AnalysisResult{}, false
	}
	if len(candidates) == 0 {
		return AnalysisResult{}, false
	}
	top := candidates[0]
	if a.logger != nil {
		a.logger.Debug("frame labeled", "seq", s.seq, "label", top.Label,
			"confidence", top.Confidence, "took", time.Since(start))
	}
	return AnalysisResult{Seq: s.seq, Label: top.Label}, top.Label != ""
}

// FrameSampler admits at most fps frames per second.
type FrameSampler struct {
	interval time.Duration
	last     time.Time
}

func NewFrameSampler(fps int) *FrameSampler {
	if fps <= 0 {
		fps = 1
	}
	return &FrameSampler{interval: time.Second / time.Duration(fps)}
}

// Due reports whether a frame seen at now should be sampled.
func (s *FrameSampler) Due(now time.Time) bool {
	if !s.last.IsZero() && now.Sub(s.last) < s.interval {
		return false
	}
	s.last = now
	return true
}
