// Package mic captures the default input device through PortAudio. It needs
// cgo and the PortAudio C library; everything else under internal/ builds
// without them.
package mic

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/0xlemi/vocalnote/internal/audio"
)

// PortAudioCapturer captures mono input from the default device using PortAudio
type PortAudioCapturer struct {
	audio.MuteTimer

	isCapturing   bool
	stream        *portaudio.Stream
	buffer        *audio.AudioBuffer
	bufferSize    int
	sampleRate    int
	bufferMutex   sync.Mutex
	amplification float32 // Audio signal amplification factor
}

// NewPortAudioCapturer creates a new audio capturer using PortAudio. Each
// callback delivers exactly bufferSize samples, which become one analysis
// window.
func NewPortAudioCapturer(bufferSize, sampleRate int) (*PortAudioCapturer, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}

	return newPortAudioCapturer(bufferSize, sampleRate), nil
}

func newPortAudioCapturer(bufferSize, sampleRate int) *PortAudioCapturer {
	return &PortAudioCapturer{
		buffer: &audio.AudioBuffer{
			Samples:    make([]float32, 0, bufferSize),
			SampleRate: sampleRate,
		},
		bufferSize:    bufferSize,
		sampleRate:    sampleRate,
		amplification: 1.0,
	}
}

var _ audio.Capturer = (*PortAudioCapturer)(nil)

// Start begins audio capture
func (c *PortAudioCapturer) Start() error {
	if c.isCapturing {
		return audio.ErrAlreadyCapturing
	}

	// Open default input stream
	var err error
	c.stream, err = portaudio.OpenDefaultStream(
		1, // mono input
		0, // no output
		float64(c.sampleRate),
		c.bufferSize,
		c.processAudio,
	)
	if err != nil {
		return fmt.Errorf("open input stream: %w", err)
	}

	if err = c.stream.Start(); err != nil {
		c.stream.Close()
		return fmt.Errorf("start input stream: %w", err)
	}

	c.isCapturing = true
	return nil
}

// Stop ends audio capture and releases PortAudio
func (c *PortAudioCapturer) Stop() error {
	if !c.isCapturing {
		return audio.ErrNotCapturing
	}

	if err := c.stream.Stop(); err != nil {
		return fmt.Errorf("stop input stream: %w", err)
	}
	if err := c.stream.Close(); err != nil {
		return fmt.Errorf("close input stream: %w", err)
	}
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("terminate portaudio: %w", err)
	}

	c.isCapturing = false
	return nil
}

// processAudio is the PortAudio callback
func (c *PortAudioCapturer) processAudio(in, _ []float32) {
	c.bufferMutex.Lock()
	defer c.bufferMutex.Unlock()

	samples := c.buffer.Samples[:0]
	if c.IsMuted() {
		for range in {
			samples = append(samples, 0)
		}
	} else {
		for _, sample := range in {
			samples = append(samples, sample*c.amplification)
		}
	}
	c.buffer.Samples = samples
}

// GetBuffer returns a copy of the latest window
func (c *PortAudioCapturer) GetBuffer() (*audio.AudioBuffer, error) {
	if !c.isCapturing {
		return nil, audio.ErrNotCapturing
	}

	c.bufferMutex.Lock()
	defer c.bufferMutex.Unlock()

	bufferCopy := &audio.AudioBuffer{
		Samples:    make([]float32, len(c.buffer.Samples)),
		SampleRate: c.buffer.SampleRate,
	}
	copy(bufferCopy.Samples, c.buffer.Samples)

	return bufferCopy, nil
}

// IsCapturing returns true if currently capturing audio
func (c *PortAudioCapturer) IsCapturing() bool {
	return c.isCapturing
}

// SetAmplification sets the audio amplification factor
func (c *PortAudioCapturer) SetAmplification(factor float32) {
	c.bufferMutex.Lock()
	defer c.bufferMutex.Unlock()

	// Ensure amplification is positive
	if factor < 0.1 {
		factor = 0.1
	}

	c.amplification = factor
}
