// Package detect implements content-based scene boundary detection: a
// stateful single-pass algorithm that scores the visual change between
// consecutive frames and declares a cut when the score crosses a threshold.
package detect

import (
	"errors"
	"fmt"

	"github.com/awkrail/tiny-scene-detector/internal/domain/entity"
)

// ErrInvalidFrame reports a frame that cannot be scored, such as a mid-stream
// dimension change. The detection run that hit it cannot continue.
var ErrInvalidFrame = errors.New("invalid frame")

const (
	DefaultThreshold   = 27.0
	DefaultMinSceneLen = 15
)

// Weights controls how much each channel delta contributes to the content
// score. The score is the weighted average of the per-channel mean absolute
// pixel differences.
type Weights struct {
	Hue        float64
	Saturation float64
	Value      float64
}

// DefaultWeights weighs all three channels equally.
func DefaultWeights() Weights {
	return Weights{Hue: 1.0, Saturation: 1.0, Value: 1.0}
}

func (w Weights) sum() float64 {
	return w.Hue + w.Saturation + w.Value
}

func (w Weights) validate() error {
	if w.Hue < 0 || w.Saturation < 0 || w.Value < 0 {
		return fmt.Errorf("component weights must not be negative: %+v", w)
	}
	if w.sum() <= 0 {
		return fmt.Errorf("component weights must not all be zero: %+v", w)
	}
	return nil
}

// Options configures a ContentDetector. Immutable after construction.
type Options struct {
	// Threshold is the content score above which a cut is declared,
	// on a 0-255 scale.
	Threshold float64
	// MinSceneLen is the minimum number of frames between two cuts.
	MinSceneLen int
	Weights     Weights
}

func DefaultOptions() Options {
	return Options{
		Threshold:   DefaultThreshold,
		MinSceneLen: DefaultMinSceneLen,
		Weights:     DefaultWeights(),
	}
}

// CutEvent marks the frame where a new scene begins.
type CutEvent struct {
	FrameIndex int
	Score      float64
}

// ContentDetector decides, per incoming frame, whether a new scene begins at
// that frame. State is O(1) in frame count: only the previous frame's HSV
// planes and the last cut position survive between calls. One instance serves
// exactly one stream and must not be shared across goroutines.
type ContentDetector struct {
	opts    Options
	width   int
	height  int
	last    *hsvPlanes
	lastCut int
}

func NewContentDetector(opts Options) (*ContentDetector, error) {
	if opts.Threshold < 0 {
		return nil, fmt.Errorf("threshold must not be negative, got %f", opts.Threshold)
	}
	if opts.MinSceneLen < 0 {
		return nil, fmt.Errorf("min scene length must not be negative, got %d", opts.MinSceneLen)
	}
	if err := opts.Weights.validate(); err != nil {
		return nil, err
	}
	return &ContentDetector{opts: opts}, nil
}

// Process scores one frame against its predecessor and returns a CutEvent if
// a new scene begins at this frame, nil otherwise. Frames must arrive in
// increasing index order with constant dimensions. Detector state is only
// mutated after the frame passes validation.
func (d *ContentDetector) Process(f *entity.Frame) (*CutEvent, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrInvalidFrame)
	}
	if len(f.Pix) != f.Width*f.Height*3 {
		return nil, fmt.Errorf("%w: frame %d pixel buffer is %d bytes, want %d",
			ErrInvalidFrame, f.Index, len(f.Pix), f.Width*f.Height*3)
	}
	if d.last != nil && (f.Width != d.width || f.Height != d.height) {
		return nil, fmt.Errorf("%w: frame %d is %dx%d, stream started as %dx%d",
			ErrInvalidFrame, f.Index, f.Width, f.Height, d.width, d.height)
	}

	planes := extractHSV(f)

	// The first frame has no predecessor and can never be a cut.
	if d.last == nil {
		d.width = f.Width
		d.height = f.Height
		d.last = planes
		d.lastCut = f.Index
		return nil, nil
	}

	score := d.score(planes)
	d.last = planes

	if f.Index-d.lastCut < d.opts.MinSceneLen {
		return nil, nil
	}
	if score > d.opts.Threshold {
		d.lastCut = f.Index
		return &CutEvent{FrameIndex: f.Index, Score: score}, nil
	}
	return nil, nil
}

func (d *ContentDetector) score(cur *hsvPlanes) float64 {
	w := d.opts.Weights
	weighted := w.Hue*meanAbsDiff(cur.h, d.last.h) +
		w.Saturation*meanAbsDiff(cur.s, d.last.s) +
		w.Value*meanAbsDiff(cur.v, d.last.v)
	return weighted / w.sum()
}
