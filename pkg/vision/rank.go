package vision

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/intothevoid/drishti/pkg/screen"
)

// ReadLabels reads one class name per line. Blank lines keep their index so
// the file lines up with the model's output vector.
func ReadLabels(r io.Reader) ([]string, error) {
	var labels []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		labels = append(labels, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return labels, nil
}

// LoadLabels reads a label file from disk.
func LoadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labels: %w", err)
	}
	defer f.Close()
	return ReadLabels(f)
}

// Softmax converts raw scores into probabilities in place.
func Softmax(scores []float32) {
	if len(scores) == 0 {
		return
	}
	hi := scores[0]
	for _, s := range scores[1:] {
		if s > hi {
			hi = s
		}
	}
	var sum float64
	for i, s := range scores {
		e := math.Exp(float64(s - hi))
		scores[i] = float32(e)
		sum += e
	}
	for i := range scores {
		scores[i] = float32(float64(scores[i]) / sum)
	}
}

// TopK returns the k best scoring classes, best first. Scores without a
// matching label are named by index.
func TopK(scores []float32, labels []string, k int) []screen.Candidate {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })
	if k > 0 && k < len(idx) {
		idx = idx[:k]
	}

	out := make([]screen.Candidate, 0, len(idx))
	for _, i := range idx {
		name := fmt.Sprintf("class %d", i)
		if i < len(labels) && labels[i] != "" {
			name = labels[i]
		}
		out = append(out, screen.Candidate{Label: name, Confidence: scores[i]})
	}
	return out
}
