package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

var ErrNoTuningDump = errors.New("no tuning dump found")

// Dump is a decoded MIDI Tuning Standard bulk dump. Keys marked "no change"
// have a NaN frequency.
type Dump struct {
	Program uint8
	Name    string
	Freq    []float64
}

// MTSToFrequency is the inverse of FrequencyToMTS. It reports false for the
// 7F 7F 7F "no change" marker.
func MTSToFrequency(b [3]byte) (float64, bool) {
	if b == [3]byte{0x7F, 0x7F, 0x7F} {
		return math.NaN(), false
	}
	fraction := float64(int(b[1])<<7|int(b[2])) / 16384
	return Mtof(float64(b[0]) + fraction), true
}

// ParseTuningDump decodes a bulk dump with or without its F0/F7 framing.
func ParseTuningDump(data []byte) (*Dump, error) {
	data = bytes.TrimPrefix(data, []byte{0xF0})
	data = bytes.TrimSuffix(data, []byte{0xF7})

	const size = 5 + mtsNameLength + mtsKeys*3 + 1
	if len(data) != size || data[0] != sysExNonRealtime || data[2] != mtsSubID || data[3] != mtsBulkDump {
		return nil, ErrNoTuningDump
	}

	var checksum byte
	for _, b := range data[:size-1] {
		checksum ^= b
	}
	if checksum&0x7F != data[size-1] {
		return nil, fmt.Errorf("%w: bad checksum", ErrNoTuningDump)
	}

	dump := &Dump{
		Program: data[4],
		Name:    strings.TrimRight(string(data[5:5+mtsNameLength]), " "),
		Freq:    make([]float64, mtsKeys),
	}
	keys := data[5+mtsNameLength : size-1]
	for i := range dump.Freq {
		dump.Freq[i], _ = MTSToFrequency([3]byte{keys[i*3], keys[i*3+1], keys[i*3+2]})
	}
	return dump, nil
}

// ReadTuningDump returns the first bulk tuning dump in a standard MIDI file
// or in a raw .syx stream.
func ReadTuningDump(r io.Reader) (*Dump, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, []byte("MThd")) {
		return ParseTuningDump(data)
	}

	s, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	for _, track := range s.Tracks {
		for _, event := range track {
			var bt []byte
			if !event.Message.GetSysEx(&bt) {
				continue
			}
			if dump, err := ParseTuningDump(bt); err == nil {
				return dump, nil
			}
		}
	}
	return nil, ErrNoTuningDump
}
