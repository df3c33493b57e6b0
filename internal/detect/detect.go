// Package detect defines the camera and inference contracts used to read an
// emotion from a face, and picks the dominant emotion from model scores.
package detect

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/justestif/go-spotify-mood-recommender/internal/emotion"
)

// DefaultThreshold is the score a dominant emotion must exceed to be accepted.
const DefaultThreshold = 0.3

var (
	// ErrSourceUnavailable is returned when the frame source cannot be started.
	ErrSourceUnavailable = errors.New("frame source unavailable")
	// ErrNoFrame is returned when the frame source yields no frame.
	ErrNoFrame = errors.New("no frame available")
)

// FrameSource produces camera frames.
type FrameSource interface {
	// Start opens the source and reports whether it is usable.
	Start() bool
	// ReadFrame returns the next frame, or false if none is available.
	ReadFrame() (image.Image, bool)
	// Stop releases the source. It is safe to call more than once.
	Stop()
}

// Scores maps emotion names to model confidence.
// A nil Scores means no face was found.
type Scores map[string]float64

// Inferrer scores the emotions visible in a frame.
type Inferrer interface {
	Infer(ctx context.Context, frame image.Image) (Scores, error)
}

// Detection is an accepted emotion reading.
type Detection struct {
	Emotion    emotion.Label `json:"emotion"`
	Confidence float64       `json:"confidence"`
	Scores     Scores        `json:"scores,omitempty"`
}

// Dominant returns the highest-scoring emotion if its score is strictly above
// threshold. Names are normalized first, so unknown names count as neutral.
// Ties go to the label that comes first in emotion.Labels().
func Dominant(scores Scores, threshold float64) (Detection, bool) {
	if len(scores) == 0 {
		return Detection{}, false
	}

	best := make(map[emotion.Label]float64, len(scores))
	for name, score := range scores {
		label := emotion.Normalize(name)
		if cur, ok := best[label]; !ok || score > cur {
			best[label] = score
		}
	}

	var (
		top   emotion.Label
		score float64
		found bool
	)
	for _, label := range emotion.Labels() {
		s, ok := best[label]
		if !ok {
			continue
		}
		if !found || s > score {
			top, score, found = label, s, true
		}
	}

	if !found || score <= threshold {
		return Detection{}, false
	}
	return Detection{Emotion: top, Confidence: score, Scores: scores}, true
}

// Detector reads a frame and turns it into a Detection.
type Detector struct {
	source    FrameSource
	inferrer  Inferrer
	threshold float64
	logger    *slog.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithThreshold overrides DefaultThreshold.
func WithThreshold(t float64) Option {
	return func(d *Detector) {
		d.threshold = t
	}
}

// WithLogger sets the detector logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Detector) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDetector creates a Detector over a frame source and an inferrer.
func NewDetector(source FrameSource, inferrer Inferrer, opts ...Option) *Detector {
	d := &Detector{
		source:    source,
		inferrer:  inferrer,
		threshold: DefaultThreshold,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start opens the frame source.
func (d *Detector) Start() error {
	if !d.source.Start() {
		return ErrSourceUnavailable
	}
	return nil
}

// Stop releases the frame source.
func (d *Detector) Stop() {
	d.source.Stop()
}

// Detect reads one frame and returns the dominant emotion in it.
// It returns false without an error when no face or no confident emotion is found.
func (d *Detector) Detect(ctx context.Context) (Detection, bool, error) {
	frame, ok := d.source.ReadFrame()
	if !ok || frame == nil {
		return Detection{}, false, ErrNoFrame
	}

	scores, err := d.inferrer.Infer(ctx, frame)
	if err != nil {
		return Detection{}, false, fmt.Errorf("inferring emotion: %w", err)
	}
	if scores == nil {
		d.logger.Debug("No face detected")
		return Detection{}, false, nil
	}

	det, ok := Dominant(scores, d.threshold)
	if !ok {
		d.logger.Debug("No confident emotion", "threshold", d.threshold)
	}
	return det, ok, nil
}
