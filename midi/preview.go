package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	previewVelocity = 100
	previewTempo    = 120
)

var previewClock = smf.MetricTicks(480)

// Preview builds a single track MIDI file that sends a tuning dump for freq
// and then plays the scale once upwards from baseKey, one quarter note per
// degree. Keys above 127 are dropped.
func Preview(name string, freq []float64, baseKey, degrees int) (*smf.SMF, error) {
	dump, err := TuningDump(0, name, freq)
	if err != nil {
		return nil, err
	}

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(name))
	track.Add(0, smf.MetaTempo(previewTempo))
	track.Add(0, dump)

	quarter := previewClock.Ticks4th()
	for key := baseKey; key <= baseKey+degrees && key < mtsKeys; key++ {
		track.Add(0, gomidi.NoteOn(0, uint8(key), previewVelocity))
		track.Add(quarter, gomidi.NoteOff(0, uint8(key)))
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = previewClock
	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("preview track: %w", err)
	}
	return s, nil
}

// PreviewBytes renders Preview as a standard MIDI file.
func PreviewBytes(name string, freq []float64, baseKey, degrees int) ([]byte, error) {
	s, err := Preview(name, freq, baseKey, degrees)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write preview: %w", err)
	}
	return buf.Bytes(), nil
}

// Read parses a standard MIDI file. The smf reader can panic on malformed
// input, https://github.com/gomidi/midi/issues/20
func Read(r io.Reader) (s *smf.SMF, e error) {
	defer func() {
		if msg, ok := recover().(string); ok {
			s, e = nil, errors.New(msg)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("parse midi file: %w", err)
	}
	return res, nil
}
