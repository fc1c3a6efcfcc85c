package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("TUNESMITH_OUT_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

const AppTitle = "Tunesmith"

// number of MIDI keys every tuning table covers
const TuningMaxSize = 128

const (
	UnixNewline    = "\n"
	WindowsNewline = "\r\n"
)

const OctaveCents = 1200.0

// 'logue librarian binary tuning layout
const (
	MnlgOctaveSize = 12
	MnlgScaleSize  = 128
	MnlgMaxCents   = 1200

	// highest value the binary codec can hold (semitone 127, no fraction)
	MnlgMaxBinaryCents = 12700

	// 3 bytes per entry: semitone, fraction hi, fraction lo
	MnlgEntrySize = 3

	MnlgProgrammer = "ScaleWorkshop"
	MnlgProduct    = "minilogue"
)

type MnlgReference struct {
	Name string
	Int  int
	Freq float64
}

// Ordered so the closest-match scan is deterministic.
var MnlgHzRef = []MnlgReference{
	{Name: "a", Int: 6900, Freq: 440.0},
	{Name: "c", Int: 6000, Freq: 261.6255653005986},
}

var MnlgHzRefC = MnlgHzRef[1]
