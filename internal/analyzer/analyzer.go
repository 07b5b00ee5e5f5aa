// Package analyzer runs the per-tick vocal analysis: loudness and pitch of
// a sample window, then the note name and normalized note value derived
// from that pitch.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/0xlemi/vocalnote/internal/audio"
	"github.com/0xlemi/vocalnote/internal/logging"
	"github.com/0xlemi/vocalnote/internal/pitch"
)

// Errors
var (
	ErrReferenceAmplitude = errors.New("reference amplitude must be positive")
)

// Result is the outcome of analyzing one window
type Result struct {
	Pitch     float64 // Hz, 0 when no pitch was found
	Decibel   float64 // dB, never below pitch.SilenceFloor
	Note      string  // e.g. "A4", empty when the pitch matches no note
	NoteValue float64 // 0 or ordinal/12 of the note's pitch class
}

// Source supplies sample windows. audio.Capturer implementations satisfy it.
type Source interface {
	GetBuffer() (*audio.AudioBuffer, error)
}

// Sink receives one Result per analyzed window
type Sink interface {
	Publish(Result)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(Result)

// Publish calls f(r)
func (f SinkFunc) Publish(r Result) {
	f(r)
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithLogger sets the logger used by Run
func WithLogger(logger *log.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// Analyzer owns the pitch detector of one audio stream. It is not safe for
// concurrent use.
type Analyzer struct {
	detector           *pitch.Detector
	referenceAmplitude float64
	window             []float64
	logger             *log.Logger
}

// New creates an analyzer for a stream at sampleRate. Loudness is reported
// relative to referenceAmplitude.
func New(sampleRate int, referenceAmplitude float64, opts ...Option) (*Analyzer, error) {
	if referenceAmplitude <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrReferenceAmplitude, referenceAmplitude)
	}

	detector, err := pitch.NewDetector(sampleRate)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		detector:           detector,
		referenceAmplitude: referenceAmplitude,
		logger:             logging.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Analyze computes the four outputs for one window. Call it once per frame:
// the window also becomes the detector's context for the next call.
func (a *Analyzer) Analyze(samples []float32) Result {
	if cap(a.window) < len(samples) {
		a.window = make([]float64, len(samples))
	}
	a.window = a.window[:len(samples)]
	for i, s := range samples {
		a.window[i] = float64(s)
	}

	freq := a.detector.DetectPitch(a.window)
	note := pitch.GetNote(freq)

	return Result{
		Pitch:     freq,
		Decibel:   pitch.CalculateDecibel(a.window, a.referenceAmplitude),
		Note:      note,
		NoteValue: pitch.GetNoteMappingValue(note),
	}
}

// Run analyzes one window from src every interval and publishes the result
// to sink until ctx is done. Ticks where the source has no samples yet are
// skipped. Run returns nil on cancellation and an error if the source stops
// capturing.
func (a *Analyzer) Run(ctx context.Context, src Source, sink Sink, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.logger.Debug("analysis started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("analysis stopped")
			return nil
		case <-ticker.C:
		}

		buffer, err := src.GetBuffer()
		if errors.Is(err, audio.ErrNotCapturing) {
			return fmt.Errorf("read window: %w", err)
		}
		if err != nil {
			a.logger.Warn("read window", "err", err)
			continue
		}
		if buffer == nil || len(buffer.Samples) == 0 {
			continue
		}

		sink.Publish(a.Analyze(buffer.Samples))
	}
}

// LogSink logs every result with an audible pitch at debug level
func LogSink(logger *log.Logger) Sink {
	return SinkFunc(func(r Result) {
		if r.Pitch <= 100 {
			return
		}
		logger.Debug("analysis",
			"db", fmt.Sprintf("%.1f", r.Decibel),
			"freq", r.Pitch,
			"note", r.Note,
			"value", r.NoteValue,
		)
	})
}
