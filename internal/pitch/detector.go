package pitch

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Errors
var (
	ErrSampleRateTooLow = errors.New("sample rate too low for pitch range")
)

const (
	// Analysis range, roughly B2 to B5
	MinFrequency = 120
	MaxFrequency = 1000

	// Lags scoring at least this fraction of the best score so far become
	// the reported lag
	secondaryRatio = 0.9

	// Best score must reach windowSize/noiseDivisor to count as a pitch
	noiseDivisor = 1000.0
)

// Detector estimates the fundamental frequency of consecutive sample windows
// by cross-correlating each window against lag-shifted copies of itself,
// using the previous window as left context.
//
// A Detector keeps the last window it saw and must not be shared between
// audio streams or called concurrently.
type Detector struct {
	sampleRate float64
	minOffset  int // lag of MaxFrequency
	maxOffset  int // lag of MinFrequency

	history []float64
}

// NewDetector creates a detector for the given sample rate
func NewDetector(sampleRate int) (*Detector, error) {
	minOffset := sampleRate / MaxFrequency
	maxOffset := sampleRate / MinFrequency
	if minOffset < 1 || minOffset > maxOffset {
		return nil, fmt.Errorf("%w: %d Hz", ErrSampleRateTooLow, sampleRate)
	}

	return &Detector{
		sampleRate: float64(sampleRate),
		minOffset:  minOffset,
		maxOffset:  maxOffset,
	}, nil
}

// MinOffset returns the shortest lag scanned (highest frequency)
func (d *Detector) MinOffset() int {
	return d.minOffset
}

// MaxOffset returns the longest lag scanned (lowest frequency). Windows
// shorter than this still work but lose resolution at the low end.
func (d *Detector) MaxOffset() int {
	return d.maxOffset
}

// DetectPitch returns the estimated pitch of window in Hz, or 0 when the
// window is silent or aperiodic. The window is remembered as context for
// the next call.
func (d *Detector) DetectPitch(window []float64) float64 {
	n := len(window)
	if len(d.history) != n {
		d.history = make([]float64, n)
	}

	var maxCorr float64
	var maxLag, secLag int

	// Low frequencies first
	for lag := d.maxOffset; lag >= d.minOffset; lag-- {
		corr := d.correlate(window, lag)

		if corr > maxCorr {
			maxCorr = corr
			maxLag = lag
		}
		// Threshold follows the running maximum, so the last lag to clear it wins
		if corr >= secondaryRatio*maxCorr {
			secLag = lag
		}
	}

	copy(d.history, window)

	if maxCorr < float64(n)/noiseDivisor || maxLag == 0 {
		return 0
	}
	if secLag == 0 {
		return 0
	}

	return d.sampleRate / float64(secLag)
}

// correlate sums window[i]*ref(i) where ref(i) is window[i-lag], falling back
// to the tail of the previous window when i-lag is negative. Reference
// samples older than the previous window count as zero.
func (d *Detector) correlate(window []float64, lag int) float64 {
	n := len(window)
	corr := 0.0

	if lag < n {
		corr += floats.Dot(window[lag:], window[:n-lag])
	}

	lo := max(0, lag-n)
	hi := min(lag, n)
	if lo < hi {
		corr += floats.Dot(window[lo:hi], d.history[n+lo-lag:n+hi-lag])
	}

	return corr
}
