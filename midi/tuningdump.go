package midi

import (
	"errors"
	"math"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI Tuning Standard bulk dump reply (non-real-time, sub-ids 08 01).
const (
	sysExNonRealtime = 0x7E
	sysExAllDevices  = 0x7F
	mtsSubID         = 0x08
	mtsBulkDump      = 0x01
	mtsNameLength    = 16
	mtsKeys          = 128
)

var ErrTuningDumpSize = errors.New("tuning dump needs exactly 128 frequencies")

// FrequencyToMTS encodes freq as a semitone plus a 14-bit fraction of a
// semitone. Frequencies below note 0 clamp to note 0; frequencies above the
// range clamp to the largest representable value (7F 7F 7E, since 7F 7F 7F
// means "no change").
func FrequencyToMTS(freq float64) [3]byte {
	note := referenceNote + 12*math.Log2(freq/referenceFreq)
	if math.IsNaN(note) || note < 0 {
		return [3]byte{0, 0, 0}
	}

	semitone := math.Floor(note)
	fraction := math.Round((note - semitone) * 16384)
	if fraction >= 16384 {
		semitone++
		fraction = 0
	}
	if semitone > 127 {
		return [3]byte{0x7F, 0x7F, 0x7E}
	}

	f := int(fraction)
	res := [3]byte{byte(semitone), byte(f >> 7), byte(f & 0x7F)}
	if res == [3]byte{0x7F, 0x7F, 0x7F} {
		res[2] = 0x7E
	}
	return res
}

// tuningDumpData is the SysEx body without the F0/F7 framing.
func tuningDumpData(program uint8, name string, freq []float64) ([]byte, error) {
	if len(freq) != mtsKeys {
		return nil, ErrTuningDumpSize
	}

	data := []byte{sysExNonRealtime, sysExAllDevices, mtsSubID, mtsBulkDump, program & 0x7F}

	padded := make([]byte, mtsNameLength)
	for i := range padded {
		padded[i] = ' '
	}
	for i := 0; i < len(name) && i < mtsNameLength; i++ {
		c := name[i]
		if c < 0x20 || c > 0x7E {
			c = '_'
		}
		padded[i] = c
	}
	data = append(data, padded...)

	for _, f := range freq {
		enc := FrequencyToMTS(f)
		data = append(data, enc[:]...)
	}

	var checksum byte
	for _, b := range data {
		checksum ^= b
	}
	data = append(data, checksum&0x7F)
	return data, nil
}

// TuningDump builds a MIDI Tuning Standard bulk dump for all 128 keys.
func TuningDump(program uint8, name string, freq []float64) (gomidi.Message, error) {
	data, err := tuningDumpData(program, name, freq)
	if err != nil {
		return nil, err
	}
	return gomidi.SysEx(data), nil
}
