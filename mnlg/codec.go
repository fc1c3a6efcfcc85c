package mnlg

import (
	"encoding/binary"
	"math"

	"github.com/jsphweid/tunesmith/constants"
	"github.com/jsphweid/tunesmith/util"
)

// CentsTableToBinary packs each entry as a whole semitone byte followed by
// the fractional semitone in 1/32768 steps, big endian. Entries are clamped
// to the range the librarian accepts.
func CentsTableToBinary(table []float64) []byte {
	data := make([]byte, len(table)*constants.MnlgEntrySize)
	for i, c := range table {
		if math.IsNaN(c) {
			c = 0
		}
		cents := util.Clamp(0, constants.MnlgMaxBinaryCents, c)
		// a fraction that rounds up to a full semitone carries into the byte
		units := int(math.Floor(cents/100*0x8000 + 0.5))

		entry := data[i*constants.MnlgEntrySize:]
		entry[0] = byte(units >> 15)
		binary.BigEndian.PutUint16(entry[1:3], uint16(units&0x7fff))
	}
	return data
}

// BinaryToCentsTable reverses CentsTableToBinary, up to its resolution.
func BinaryToCentsTable(data []byte) []float64 {
	res := make([]float64, 0, len(data)/constants.MnlgEntrySize)
	for i := 0; i+constants.MnlgEntrySize <= len(data); i += constants.MnlgEntrySize {
		whole := float64(data[i])
		fraction := float64(binary.BigEndian.Uint16(data[i+1:i+3])) / 0x8000
		res = append(res, (whole+fraction)*100)
	}
	return res
}
