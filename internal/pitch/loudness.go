package pitch

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// SilenceFloor is the lowest level CalculateDecibel reports
const SilenceFloor = -160.0

// CalculateDecibel returns the RMS level of window in dB relative to
// referenceAmplitude, clamped below at SilenceFloor. Empty windows and
// non-positive references report the floor.
func CalculateDecibel(window []float64, referenceAmplitude float64) float64 {
	if len(window) == 0 || referenceAmplitude <= 0 {
		return SilenceFloor
	}

	rms := math.Sqrt(floats.Dot(window, window) / float64(len(window)))
	db := 20 * math.Log10(rms/referenceAmplitude)
	if math.IsNaN(db) || db < SilenceFloor {
		return SilenceFloor
	}

	return db
}
