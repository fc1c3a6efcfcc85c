// Package export turns a tuning table into the text files read by synths,
// trackers and tuning tools. Every function checks that the table has data
// for its base key and produces nothing otherwise.
package export

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jsphweid/tunesmith/constants"
	"github.com/jsphweid/tunesmith/line"
	"github.com/jsphweid/tunesmith/midi"
	"github.com/jsphweid/tunesmith/tuning"
)

var ErrNoTuningData = tuning.ErrNoTuningData

// now is swapped out by tests for a fixed TUN date.
var now = time.Now

func fixed(v float64, prec int) string {
	return line.ToFixed(v, prec)
}

// number prints a float the shortest way that reads back exactly.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func check(t *tuning.Table) error {
	if !t.HasData() {
		return ErrNoTuningData
	}
	return nil
}

// AnamarkTUN writes an AnaMark v2 .tun file with a legacy integer section,
// an exact section and a functional section describing the scale itself.
//
// http://www.mark-henning.de/files/am/Tuning_File_V2_Doc.pdf
func AnamarkTUN(t *tuning.Table, newline string) (string, error) {
	if err := check(t); err != nil {
		return "", err
	}

	var b strings.Builder
	w := func(parts ...string) {
		for _, p := range parts {
			b.WriteString(p)
		}
		b.WriteString(newline)
	}

	note0 := midi.Mtof(0)

	w("; VAZ Plus/AnaMark softsynth tuning file")
	w("; ", t.Description)
	w(";")
	w("; VAZ Plus section")
	w("[Tuning]")
	for i := 0; i < constants.TuningMaxSize; i++ {
		cents := line.DecimalToCents(t.Freq[i] / note0)
		w("note ", strconv.Itoa(i), "=", strconv.Itoa(int(cents)))
	}

	w()
	w("; AnaMark section")
	w("[Scale Begin]")
	w(`Format= "AnaMark-TUN"`)
	w("FormatVersion= 200")
	w(`FormatSpecs= "http://www.mark-henning.de/eternity/tuningspecs.html"`)
	w()
	w("[Info]")
	w(`Name= "`, t.Filename, `.tun"`)
	// the ID may not contain whitespace
	w(`ID= "`, strings.ReplaceAll(t.Filename, " ", ""), `.tun"`)
	w(`Filename= "`, t.Filename, `.tun"`)
	w(`Description= "`, t.Description, `"`)
	w(`Date= "`, now().UTC().Format("2006-01-02"), `"`)
	w(`Editor= "`, constants.AppTitle, `"`)
	w()
	w("[Exact Tuning]")
	for i := 0; i < constants.TuningMaxSize; i++ {
		cents := line.DecimalToCents(t.Freq[i] / note0)
		w("note ", strconv.Itoa(i), "= ", fixed(cents, 6))
	}

	w()
	w("[Functional Tuning]")
	for i := 1; i < t.NoteCount; i++ {
		cents := fixed(line.DecimalToCents(t.TuningData[i]), 6)
		if i == t.NoteCount-1 {
			w("note ", strconv.Itoa(i), `="#>-`, strconv.Itoa(i), " % ", cents, ` ~999"`)
		} else {
			w("note ", strconv.Itoa(i), `="#=0 % `, cents, `"`)
		}
	}

	w()
	w("; Set reference key to absolute frequency (not scale note but midi key)")
	w("note ", strconv.Itoa(t.BaseMidiNote), `="! `, fixed(t.BaseFrequency, 6), `"`)
	w("[Scale End]")

	return b.String(), nil
}

// ScalaSCL keeps ratios and cents as the user wrote them. N of edo and
// decimal degrees have no Scala spelling and are written as cents.
func ScalaSCL(t *tuning.Table, newline string) (string, error) {
	if err := check(t); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("! " + t.Filename + ".scl" + newline)
	b.WriteString("! Created using " + constants.AppTitle + newline)
	b.WriteString("!" + newline)
	if t.Description == "" {
		b.WriteString("Untitled tuning")
	} else {
		b.WriteString(t.Description)
	}
	b.WriteString(newline + " ")
	b.WriteString(strconv.Itoa(t.NoteCount-1) + newline)
	b.WriteString("!" + newline)

	for i := 1; i < t.NoteCount; i++ {
		b.WriteString(" ")
		typ := t.ScaleData[i].Type()
		if typ == line.NOfEdo || typ.IsDecimal() {
			b.WriteString(fixed(line.DecimalToCents(t.TuningData[i]), 6))
		} else {
			b.WriteString(t.ScaleData[i].String())
		}
		b.WriteString(newline)
	}

	return b.String(), nil
}

// ScalaKBM maps every degree linearly from the base key, with the base key
// also serving as the frequency reference.
func ScalaKBM(t *tuning.Table, newline string) (string, error) {
	if err := check(t); err != nil {
		return "", err
	}

	size := strconv.Itoa(t.NoteCount - 1)
	base := strconv.Itoa(t.BaseMidiNote)

	var b strings.Builder
	for _, l := range []string{
		"! Template for a keyboard mapping",
		"!",
		"! Size of map. The pattern repeats every so many keys:",
		size,
		"! First MIDI note number to retune:",
		"0",
		"! Last MIDI note number to retune:",
		"127",
		"! Middle note where the first entry of the mapping is mapped to:",
		base,
		"! Reference note for which frequency is given:",
		base,
		"! Frequency to tune the above note to",
		number(t.BaseFrequency),
		"! Scale degree to consider as formal octave (determines difference in pitch",
		"! between adjacent mapping patterns):",
		size,
		"! Mapping.",
		"! The numbers represent scale degrees mapped to keys. The first entry is for",
		"! the given middle note, the next for subsequent higher keys.",
		`! For an unmapped key, put in an "x". At the end, unmapped keys may be left out.`,
	} {
		b.WriteString(l + newline)
	}

	for i := 0; i < t.NoteCount-1; i++ {
		b.WriteString(strconv.Itoa(i) + newline)
	}

	return b.String(), nil
}

func MaxMSPColl(t *tuning.Table, newline string) (string, error) {
	if err := check(t); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("# Tuning file for Max/MSP coll objects. - Created using " + constants.AppTitle + newline)
	b.WriteString("# " + t.Description + newline)
	b.WriteString("#" + newline)
	for i := 0; i < constants.TuningMaxSize; i++ {
		b.WriteString(strconv.Itoa(i) + ", " + fixed(t.Freq[i], 7) + ";" + newline)
	}
	return b.String(), nil
}

func PdText(t *tuning.Table, newline string) (string, error) {
	if err := check(t); err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 0; i < constants.TuningMaxSize; i++ {
		b.WriteString(fixed(t.Freq[i], 7) + ";" + newline)
	}
	return b.String(), nil
}

// KontaktScript writes a KSP script that moves every key to its nearest
// 12-EDO key and bends it by the remaining offset. Keys that land outside
// the keyboard keep their default tuning.
func KontaktScript(t *tuning.Table, newline string) (string, error) {
	if err := check(t); err != nil {
		return "", err
	}

	size := strconv.Itoa(constants.TuningMaxSize)

	var b strings.Builder
	w := func(parts ...string) {
		for _, p := range parts {
			b.WriteString(p)
		}
		b.WriteString(newline)
	}

	w("{**************************************")
	w(t.Description)
	w("MIDI note ", strconv.Itoa(t.BaseMidiNote), " (", midi.NoteName(t.BaseMidiNote), ") = ", number(t.BaseFrequency), " Hz")
	w("Created using ", constants.AppTitle)
	w("****************************************}")
	w()
	w("on init")
	w("declare %keynum[", size, "]")
	w("declare %tune[", size, "]")
	w("declare $bend")
	w("declare $key")
	w()

	for i := 0; i < constants.TuningMaxSize; i++ {
		note, cents := midi.Ftom(t.Freq[i])
		key := strconv.Itoa(i)
		if note < 0 || note >= constants.TuningMaxSize {
			w("%keynum[", key, "] := ", key)
			w("%tune[", key, "] := 0")
		} else {
			// KSP tunes in millicents
			w("%keynum[", key, "] := ", strconv.Itoa(note))
			w("%tune[", key, "] := ", strconv.Itoa(int(cents*1000)))
		}
	}

	w("end on")
	w()
	w("on note")
	w("$key := %keynum[$EVENT_NOTE]")
	w("$bend := %tune[$EVENT_NOTE]")
	w("change_note ($EVENT_ID, $key)")
	w("change_tune ($EVENT_ID, $bend, 0)")
	w("end on")

	return b.String(), nil
}

// deflemaskNoteName pads two character names so every name is three wide,
// e.g. A4 becomes A-4.
func deflemaskNoteName(note int) string {
	name := midi.NoteName(note)
	if len(name) == 2 {
		return name[:1] + "-" + name[1:]
	}
	return name
}

// ReferenceDeflemask is a human readable list of note and E5 fine-tune
// effect values to type into Deflemask, e.g. a note 50 cents below A4 is
// entered as A-4 with E5 40. Deflemask only covers C#0 to B7 (MIDI 1-95).
//
// http://www.deflemask.com/manual.pdf
func ReferenceDeflemask(t *tuning.Table, newline string) (string, error) {
	if err := check(t); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(t.Description + newline)
	b.WriteString("Reference for Deflemask note input - generated by " + constants.AppTitle + newline)
	b.WriteString(newline)

	for i := 0; i < constants.TuningMaxSize; i++ {
		note, cents := midi.Ftom(t.Freq[i])
		if note < 1 || note > 95 {
			continue
		}

		// -100c is 00, 0c is 80, +100c is FF
		fine := strings.ToUpper(strconv.FormatInt(int64(math.Floor(128+cents*1.28+0.5)), 16))

		b.WriteString("[" + deflemaskNoteName(note) + " xx] [xx E5 " + fine + "]")
		b.WriteString(" ..... " + strconv.Itoa(i) + ": " + fixed(t.Freq[i], 2) + " Hz / " + fixed(t.Cents[i], 2) + " cents" + newline)
	}

	return b.String(), nil
}
