package audio

import (
	"errors"
	"math"
	"sync"
	"time"
)

// Errors
var (
	ErrAlreadyCapturing = errors.New("audio capture already started")
	ErrNotCapturing     = errors.New("audio capture not started")
)

// AudioBuffer represents a window of mono audio samples
type AudioBuffer struct {
	Samples    []float32
	SampleRate int
}

// Capturer defines the interface for audio capture
type Capturer interface {
	// Start begins audio capture
	Start() error

	// Stop ends audio capture
	Stop() error

	// GetBuffer returns the most recent window of samples
	GetBuffer() (*AudioBuffer, error)

	// IsCapturing returns true if currently capturing audio
	IsCapturing() bool

	// Mute silences captured windows for the given duration
	Mute(d time.Duration)
}

// MuteTimer tracks a scheduled mute. The zero value is unmuted and safe
// for concurrent use. Capturers embed it to implement Mute.
type MuteTimer struct {
	mu    sync.Mutex
	until time.Time
	now   func() time.Time
}

func (m *MuteTimer) clock() time.Time {
	if m.now != nil {
		return m.now()
	}
	return time.Now()
}

// Mute silences input until d from now. A later call replaces the deadline.
func (m *MuteTimer) Mute(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.until = m.clock().Add(d)
}

// IsMuted reports whether a scheduled mute is still running
func (m *MuteTimer) IsMuted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clock().Before(m.until)
}

// ToneCapturer produces a continuous sine wave in fixed-size windows, one
// window per GetBuffer call. It stands in for a microphone in offline runs
// and tests.
type ToneCapturer struct {
	MuteTimer

	isCapturing bool
	bufferSize  int
	sampleRate  int
	frequency   float64
	amplitude   float64
	position    int64 // index of the next sample
	mu          sync.Mutex
}

// NewToneCapturer creates a tone source
func NewToneCapturer(bufferSize, sampleRate int, frequency, amplitude float64) *ToneCapturer {
	return &ToneCapturer{
		bufferSize: bufferSize,
		sampleRate: sampleRate,
		frequency:  frequency,
		amplitude:  amplitude,
	}
}

// Start begins audio capture
func (c *ToneCapturer) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isCapturing {
		return ErrAlreadyCapturing
	}
	c.isCapturing = true
	return nil
}

// Stop ends audio capture
func (c *ToneCapturer) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isCapturing {
		return ErrNotCapturing
	}
	c.isCapturing = false
	return nil
}

// SetFrequency changes the tone without breaking sample continuity
func (c *ToneCapturer) SetFrequency(frequency float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frequency = frequency
}

// GetBuffer returns the next window of the tone
func (c *ToneCapturer) GetBuffer() (*AudioBuffer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isCapturing {
		return nil, ErrNotCapturing
	}

	buffer := &AudioBuffer{
		Samples:    make([]float32, c.bufferSize),
		SampleRate: c.sampleRate,
	}

	if !c.IsMuted() {
		step := 2 * math.Pi * c.frequency / float64(c.sampleRate)
		for i := range buffer.Samples {
			buffer.Samples[i] = float32(c.amplitude * math.Sin(step*float64(c.position+int64(i))))
		}
	}
	c.position += int64(c.bufferSize)

	return buffer, nil
}

// IsCapturing returns true if currently capturing audio
func (c *ToneCapturer) IsCapturing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isCapturing
}
