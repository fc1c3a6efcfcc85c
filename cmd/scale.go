package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/tunesmith/line"
	"github.com/jsphweid/tunesmith/tuning"
)

type scaleFlags struct {
	freq float64
	midi int
	name string
}

// readScale reads a scale from path, or stdin for "-". Files ending in .scl
// are read as Scala files and also yield their description.
func readScale(path string) (string, []line.Line, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", nil, err
		}
		defer f.Close()
		r = f
	}
	if strings.EqualFold(filepath.Ext(path), ".scl") {
		return tuning.ParseScala(r)
	}
	degrees, err := tuning.ParseScale(r)
	return "", degrees, err
}

// loadTable builds a table from a scale file, filling unset flags from the
// config. The name defaults to the Scala description, then to the file name
// without its extension.
func loadTable(path string, flags scaleFlags) (*tuning.Table, error) {
	description, degrees, err := readScale(path)
	if err != nil {
		return nil, err
	}

	freq := flags.freq
	if freq == 0 {
		freq = cfg.Tuning.BaseFrequency
	}
	midi := flags.midi
	if midi < 0 {
		midi = cfg.Tuning.BaseMidiNote
	}
	name := flags.name
	if name == "" {
		name = description
	}
	if name == "" && path != "-" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return tuning.Build(degrees, freq, midi, name)
}
