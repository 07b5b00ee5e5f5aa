package pitch

import "fmt"

// PitchClass is one chromatic note name with its frequency in the lowest
// modeled octave and its 1-based position in the scale.
type PitchClass struct {
	Name     string
	BaseFreq float64
	Ordinal  int
}

// Classification tolerance around every candidate frequency (Hz, any octave)
const noteTolerance = 5.0

// Octaves 0..8 are modeled
const numOctaves = 9

// Step between consecutive normalized note values
const chromaticStep = 1.0 / 12.0

// NoteTable lists the pitch classes in scan order. GetNote returns the first
// match, so the order decides ties between overlapping low-octave windows.
var NoteTable = []PitchClass{
	{Name: "C", BaseFreq: 16.35, Ordinal: 1},
	{Name: "C#", BaseFreq: 17.32, Ordinal: 2},
	{Name: "D", BaseFreq: 18.35, Ordinal: 3},
	{Name: "D#", BaseFreq: 19.45, Ordinal: 4},
	{Name: "E", BaseFreq: 20.60, Ordinal: 5},
	{Name: "F", BaseFreq: 21.83, Ordinal: 6},
	{Name: "F#", BaseFreq: 23.12, Ordinal: 7},
	{Name: "G", BaseFreq: 24.50, Ordinal: 8},
	{Name: "G#", BaseFreq: 25.96, Ordinal: 9},
	{Name: "A", BaseFreq: 27.50, Ordinal: 10},
	{Name: "A#", BaseFreq: 29.14, Ordinal: 11},
	{Name: "B", BaseFreq: 30.87, Ordinal: 12},
}

// GetNote returns the note name ("A4", "C#3", ...) whose candidate frequency
// lies within ±5 Hz of frequency, or "" when nothing matches.
func GetNote(frequency float64) string {
	if frequency <= 0 {
		return ""
	}

	for _, class := range NoteTable {
		candidate := class.BaseFreq
		for octave := 0; octave < numOctaves; octave++ {
			if frequency == candidate ||
				(frequency >= candidate-noteTolerance && frequency < candidate+noteTolerance) {
				return fmt.Sprintf("%s%d", class.Name, octave)
			}
			candidate *= 2
		}
	}

	return ""
}

// PitchClassOf strips the octave from a note name: "C#4" -> "C#", "A4" -> "A".
func PitchClassOf(note string) string {
	switch {
	case len(note) == 0:
		return ""
	case len(note) >= 2 && note[1] == '#':
		return note[:2]
	default:
		return note[:1]
	}
}

// GetNoteMappingValue maps a note name onto ordinal/12, ignoring the octave.
// Empty or unknown names map to 0.
func GetNoteMappingValue(note string) float64 {
	token := PitchClassOf(note)
	if token == "" {
		return 0
	}

	for _, class := range NoteTable {
		if class.Name == token {
			return float64(class.Ordinal) * chromaticStep
		}
	}

	return 0
}
