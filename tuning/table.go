// Package tuning builds the read-only snapshot every exporter works from: the
// scale degrees, their ratios, and the resulting frequency of each of the 128
// MIDI keys.
package tuning

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jsphweid/tunesmith/constants"
	"github.com/jsphweid/tunesmith/line"
	"github.com/jsphweid/tunesmith/util"
)

var (
	ErrEmptyScale    = errors.New("scale has no degrees")
	ErrBaseNote      = errors.New("base MIDI note out of range")
	ErrBaseFrequency = errors.New("base frequency must be positive")

	// ErrNoTuningData is returned by every exporter when HasData is false.
	ErrNoTuningData = errors.New("no tuning data to export")
)

// Table must not be mutated while an export reads it.
type Table struct {
	// ScaleData[0] is the implied unison, the rest are the user's degrees.
	// The last degree is the period.
	ScaleData []line.Line

	// frequency ratio and cents of each scale degree, parallel to ScaleData
	TuningData  []float64
	DegreeCents []float64

	NoteCount     int
	BaseMidiNote  int
	BaseFrequency float64

	// Freq and Cents have one entry per MIDI key; Cents is relative to the
	// base key.
	Freq  []float64
	Cents []float64

	Filename    string
	Description string
}

// HasData reports whether the base key has a usable frequency, the one
// precondition every exporter checks.
func (t *Table) HasData() bool {
	if t == nil || t.BaseMidiNote < 0 || t.BaseMidiNote >= len(t.Freq) {
		return false
	}
	f := t.Freq[t.BaseMidiNote]
	return !math.IsNaN(f) && f > 0
}

// Build maps the scale onto the keyboard, repeating it every NoteCount-1
// keys around baseMidiNote.
func Build(degrees []line.Line, baseFrequency float64, baseMidiNote int, name string) (*Table, error) {
	if len(degrees) == 0 {
		return nil, ErrEmptyScale
	}
	if baseMidiNote < 0 || baseMidiNote >= constants.TuningMaxSize {
		return nil, fmt.Errorf("%w: %d", ErrBaseNote, baseMidiNote)
	}
	if math.IsNaN(baseFrequency) || baseFrequency <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrBaseFrequency, baseFrequency)
	}

	t := &Table{
		ScaleData:     append([]line.Line{line.Unison}, degrees...),
		BaseMidiNote:  baseMidiNote,
		BaseFrequency: baseFrequency,
		Filename:      SanitizeFilename(name),
		Description:   strings.TrimSpace(name),
	}
	t.NoteCount = len(t.ScaleData)

	for _, l := range t.ScaleData {
		t.TuningData = append(t.TuningData, l.Decimal())
		t.DegreeCents = append(t.DegreeCents, l.Cents())
	}

	size := t.NoteCount - 1
	period := t.TuningData[size]
	t.Freq = make([]float64, constants.TuningMaxSize)
	t.Cents = make([]float64, constants.TuningMaxSize)
	for i := range t.Freq {
		offset := i - baseMidiNote
		quotient := int(math.Floor(float64(offset) / float64(size)))
		remainder := util.Modulo(offset, size)
		t.Freq[i] = baseFrequency * t.TuningData[remainder] * math.Pow(period, float64(quotient))
		t.Cents[i] = line.DecimalToCents(t.Freq[i] / baseFrequency)
	}

	return t, nil
}

// SanitizeFilename drops characters that are not allowed in file names on
// common filesystems.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) || r < 0x20 {
			return -1
		}
		return r
	}, name)
	if name == "" {
		return "tuning"
	}
	return name
}
