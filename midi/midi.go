package midi

import (
	"math"
	"strconv"
)

const (
	referenceNote = 69
	referenceFreq = 440.0
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Mtof converts a (possibly fractional) MIDI note number to Hz.
func Mtof(note float64) float64 {
	return referenceFreq * math.Pow(2, (note-referenceNote)/12)
}

// Ftom returns the nearest MIDI note for freq and the offset from it in
// cents, in [-50, 50).
func Ftom(freq float64) (int, float64) {
	midiNoteNumber := referenceNote + 12*math.Log2(freq/referenceFreq)
	rounded := math.Floor(midiNoteNumber + 0.5)
	return int(rounded), (midiNoteNumber - rounded) * 100
}

// NoteName uses sharps and puts middle C at C4, so 69 is A4.
func NoteName(note int) string {
	octave := floorDiv(note, 12) - 1
	return noteNames[note-floorDiv(note, 12)*12] + strconv.Itoa(octave)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
