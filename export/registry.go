package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/jsphweid/tunesmith/constants"
	"github.com/jsphweid/tunesmith/midi"
	"github.com/jsphweid/tunesmith/mnlg"
	"github.com/jsphweid/tunesmith/tuning"
	"github.com/jsphweid/tunesmith/util"
)

var ErrUnknownFormat = errors.New("unknown export format")

const octetStream = "application/octet-stream"

type Options struct {
	Newline string

	// Mnlg builds the 'logue archives; nil uses mnlg.NewExporter(nil).
	Mnlg *mnlg.Exporter

	// SysExProgram is the tuning program number written into MTS dumps.
	SysExProgram uint8
}

func (o Options) newline() string {
	if o.Newline == "" {
		return constants.UnixNewline
	}
	return o.Newline
}

// Payload is everything a save sink needs to persist one export.
type Payload struct {
	Filename    string
	MimeType    string
	Data        []byte
	Diagnostics []error
}

type Format struct {
	Key         string
	Extension   string
	MimeType    string
	Description string

	write func(ctx context.Context, t *tuning.Table, opts Options) (*Payload, error)
}

func (f Format) Write(ctx context.Context, t *tuning.Table, opts Options) (*Payload, error) {
	return f.write(ctx, t, opts)
}

type textExporter func(t *tuning.Table, newline string) (string, error)

func textFormat(key, ext, description string, fn textExporter) Format {
	f := Format{Key: key, Extension: ext, MimeType: octetStream, Description: description}
	f.write = func(_ context.Context, t *tuning.Table, opts Options) (*Payload, error) {
		text, err := fn(t, opts.newline())
		if err != nil {
			return nil, err
		}
		return &Payload{Filename: t.Filename + ext, MimeType: f.MimeType, Data: []byte(text)}, nil
	}
	return f
}

func mnlgFormat(key, description string, mode mnlg.Mode) Format {
	return Format{
		Key:         key,
		Extension:   mode.Extension(),
		MimeType:    mnlg.MimeType,
		Description: description,
		write: func(ctx context.Context, t *tuning.Table, opts Options) (*Payload, error) {
			exporter := opts.Mnlg
			if exporter == nil {
				exporter = mnlg.NewExporter(nil)
			}
			var outcome mnlg.Outcome
			select {
			case outcome = <-exporter.ExportAsync(ctx, t, mode):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			if outcome.Err != nil {
				return nil, outcome.Err
			}
			res := outcome.Result
			return &Payload{
				Filename:    res.Filename,
				MimeType:    res.MimeType,
				Data:        res.Payload,
				Diagnostics: res.Diagnostics,
			}, nil
		},
	}
}

func sysExFormat() Format {
	return Format{
		Key:         "syx",
		Extension:   ".syx",
		MimeType:    octetStream,
		Description: "MIDI Tuning Standard bulk dump",
		write: func(_ context.Context, t *tuning.Table, opts Options) (*Payload, error) {
			if !t.HasData() {
				return nil, ErrNoTuningData
			}
			msg, err := midi.TuningDump(opts.SysExProgram, t.Filename, t.Freq)
			if err != nil {
				return nil, err
			}
			return &Payload{Filename: t.Filename + ".syx", MimeType: octetStream, Data: msg.Bytes()}, nil
		},
	}
}

func previewFormat() Format {
	return Format{
		Key:         "mid",
		Extension:   ".mid",
		MimeType:    "audio/midi",
		Description: "MIDI file with a tuning dump and one pass of the scale",
		write: func(_ context.Context, t *tuning.Table, _ Options) (*Payload, error) {
			if !t.HasData() {
				return nil, ErrNoTuningData
			}
			data, err := midi.PreviewBytes(t.Filename, t.Freq, t.BaseMidiNote, t.NoteCount-1)
			if err != nil {
				return nil, err
			}
			return &Payload{Filename: t.Filename + ".mid", MimeType: "audio/midi", Data: data}, nil
		},
	}
}

// Formats is keyed by the name used on the command line and in URLs.
var Formats = map[string]Format{}

func register(f Format) {
	Formats[f.Key] = f
}

func init() {
	register(textFormat("tun", ".tun", "AnaMark tuning file", AnamarkTUN))
	register(textFormat("scl", ".scl", "Scala scale", ScalaSCL))
	register(textFormat("kbm", ".kbm", "Scala keyboard mapping", ScalaKBM))
	register(textFormat("coll", ".txt", "Max/MSP coll frequency list", MaxMSPColl))
	register(textFormat("pd", ".txt", "Pure Data text frequency list", PdText))
	register(textFormat("kontakt", ".txt", "Kontakt tuning script", KontaktScript))
	register(textFormat("deflemask", ".txt", "Deflemask note reference", ReferenceDeflemask))
	register(mnlgFormat("mnlgtuns", "'logue scale tuning (128 keys)", mnlg.Scale))
	register(mnlgFormat("mnlgtuno", "'logue octave tuning (12 keys)", mnlg.Octave))
	register(sysExFormat())
	register(previewFormat())
}

func Lookup(key string) (Format, error) {
	f, ok := Formats[key]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, key)
	}
	return f, nil
}

// Keys returns the registered format keys in sorted order.
func Keys() []string {
	return util.SortedKeys(Formats)
}
