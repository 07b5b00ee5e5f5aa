package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/0xlemi/vocalnote/internal/pitch"
)

// Validation errors
var (
	ErrSampleRate    = errors.New("invalid sample rate")
	ErrWindowSize    = errors.New("invalid window size")
	ErrReference     = errors.New("reference amplitude must be positive")
	ErrAmplification = errors.New("amplification must be positive")
	ErrTickInterval  = errors.New("tick interval must be positive")
)

// Config holds the runtime settings shared by all commands
type Config struct {
	// Audio settings
	SampleRate int
	WindowSize int // samples per analysis window

	// Reference amplitude for dB (0 dB when RMS equals this)
	ReferenceAmplitude float64

	// Input gain applied by the microphone capturer
	Amplification float64

	// How often one window is analyzed
	TickInterval time.Duration

	// How long the mute key silences input
	MuteDuration time.Duration

	LogLevel string
	LogFile  string
}

// Default returns the settings used when no flags are given
func Default() Config {
	return Config{
		SampleRate:         44100,
		WindowSize:         2048,
		ReferenceAmplitude: 0.1,
		Amplification:      5.0,
		TickInterval:       50 * time.Millisecond,
		MuteDuration:       5 * time.Second,
		LogLevel:           "info",
	}
}

// BindFlags registers a flag for every field, using the current values as defaults
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&c.SampleRate, "sample-rate", "r", c.SampleRate, "capture sample rate in Hz")
	fs.IntVarP(&c.WindowSize, "window", "w", c.WindowSize, "samples per analysis window")
	fs.Float64Var(&c.ReferenceAmplitude, "ref", c.ReferenceAmplitude, "reference amplitude for dB readings")
	fs.Float64VarP(&c.Amplification, "gain", "g", c.Amplification, "microphone amplification factor")
	fs.DurationVar(&c.TickInterval, "tick", c.TickInterval, "analysis interval")
	fs.DurationVar(&c.MuteDuration, "mute", c.MuteDuration, "how long the mute key silences input")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file")
}

// Validate checks that the settings can drive the analyzer
func (c Config) Validate() error {
	if c.SampleRate < pitch.MaxFrequency {
		return fmt.Errorf("%w: %d Hz, need at least %d", ErrSampleRate, c.SampleRate, pitch.MaxFrequency)
	}

	// The window has to cover the longest lag
	minWindow := c.SampleRate / pitch.MinFrequency
	if c.WindowSize < minWindow {
		return fmt.Errorf("%w: %d samples, need at least %d at %d Hz", ErrWindowSize, c.WindowSize, minWindow, c.SampleRate)
	}

	if c.ReferenceAmplitude <= 0 {
		return fmt.Errorf("%w: %g", ErrReference, c.ReferenceAmplitude)
	}
	if c.Amplification <= 0 {
		return fmt.Errorf("%w: %g", ErrAmplification, c.Amplification)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: %s", ErrTickInterval, c.TickInterval)
	}

	return nil
}
