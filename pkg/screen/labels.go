package screen

import (
	"context"
	"sync"
)

// DefaultLabel is shown until the first frame has been labeled.
const DefaultLabel = "Detecting..."

// AnalysisResult is the top label of one sampled frame. Seq increases with
// sampling order.
type AnalysisResult struct {
	Seq   uint64
	Label string
}

// LabelOverlay holds the text shown over the live preview.
type LabelOverlay struct {
	mu       sync.Mutex
	text     string
	lastSeq  uint64
	applied  bool
	onChange func(string)
}

func NewLabelOverlay() *LabelOverlay {
	return &LabelOverlay{text: DefaultLabel}
}

// OnChange registers fn to be called with the new text after each accepted
// result. fn runs on the caller of Apply; UI code marshals with fyne.Do.
func (o *LabelOverlay) OnChange(fn func(string)) {
	o.mu.Lock()
	o.onChange = fn
	o.mu.Unlock()
}

// Apply replaces the text with r.Label. Empty labels and results older than
// the last accepted one are ignored. Reports whether the text was replaced.
func (o *LabelOverlay) Apply(r AnalysisResult) bool {
	if r.Label == "" {
		return false
	}
	o.mu.Lock()
	if o.applied && r.Seq <= o.lastSeq {
		o.mu.Unlock()
		return false
	}
	o.text = r.Label
	o.lastSeq = r.Seq
	o.applied = true
	fn := o.onChange
	o.mu.Unlock()

	if fn != nil {
		fn(r.Label)
	}
	return true
}

// Text returns the label currently displayed.
func (o *LabelOverlay) Text() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.text
}

// Consume applies results until ctx is done or results is closed.
func (o *LabelOverlay) Consume(ctx context.Context, results <-chan AnalysisResult) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case r, ok := <-results:
			if !ok {
				return nil
			}
			o.Apply(r)
		}
	}
}
