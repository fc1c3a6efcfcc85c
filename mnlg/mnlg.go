// Package mnlg writes tunings for Korg's 'logue Sound Librarian: a zip
// archive holding a packed cents table and two small XML descriptors.
//
// The librarian truncates cents to whole-cent precision on import; the
// archive itself keeps the full 1/32768 semitone resolution.
package mnlg

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/jsphweid/tunesmith/constants"
	"github.com/jsphweid/tunesmith/line"
	"github.com/jsphweid/tunesmith/tuning"
	"github.com/jsphweid/tunesmith/util"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"
)

var (
	ErrNoTuningData = tuning.ErrNoTuningData

	// ErrMalformedTableLength is reported as a diagnostic, never as the
	// export error: the table is zero padded and the export goes ahead.
	ErrMalformedTableLength = errors.New("cents table has the wrong length")

	ErrArchive = errors.New("could not assemble archive")
)

type Mode int

const (
	// Scale retunes all 128 keys.
	Scale Mode = iota
	// Octave retunes the 12 keys of one octave.
	Octave
)

func (m Mode) String() string {
	if m == Scale {
		return "scale"
	}
	return "octave"
}

func (m Mode) fileNameHeader() string {
	if m == Scale {
		return "TunS_000.TunS_"
	}
	return "TunO_000.TunO_"
}

func (m Mode) Extension() string {
	if m == Scale {
		return ".mnlgtuns"
	}
	return ".mnlgtuno"
}

func (m Mode) size() int {
	if m == Scale {
		return constants.MnlgScaleSize
	}
	return constants.MnlgOctaveSize
}

type Encoding int

const (
	Binary Encoding = iota
	Base64
)

const MimeType = "application/zip"

type Result struct {
	Filename string
	MimeType string
	Payload  []byte

	// CentsTable is what went into the binary, after offsetting and sizing.
	CentsTable []float64

	// Diagnostics holds recoverable problems, e.g. ErrMalformedTableLength.
	Diagnostics []error
}

type Exporter struct {
	Programmer string
	Product    string
	Encoding   Encoding

	// CompressionLevel is a flate level; 0 uses the default.
	CompressionLevel int

	Logger *zap.Logger
}

func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{
		Programmer: constants.MnlgProgrammer,
		Product:    constants.MnlgProduct,
		Logger:     logger,
	}
}

func (e *Exporter) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// ClosestReference picks the reference pitch nearest to freq in Hz. Ties go
// to the earlier entry.
func ClosestReference(freq float64) constants.MnlgReference {
	best := constants.MnlgHzRef[0]
	for _, ref := range constants.MnlgHzRef[1:] {
		if math.Abs(ref.Freq-freq) < math.Abs(best.Freq-freq) {
			best = ref
		}
	}
	return best
}

// BaseOffset is the table value the base key must hold, in the librarian's
// absolute cents (A4 = 6900).
func BaseOffset(baseFrequency float64) int {
	ref := ClosestReference(baseFrequency)
	return ref.Int + int(math.Floor(line.DecimalToCents(baseFrequency/ref.Freq)+0.5))
}

// CentsTable offsets the table's per-key cents into absolute librarian cents
// and sizes the result for mode. A result that had to be padded comes with
// an ErrMalformedTableLength diagnostic.
func CentsTable(t *tuning.Table, mode Mode) ([]float64, error) {
	offset := float64(BaseOffset(t.BaseFrequency))
	centsTable := make([]float64, 0, len(t.Cents))
	for _, c := range t.Cents {
		centsTable = append(centsTable, c+offset)
	}

	if mode == Scale {
		if len(centsTable) > constants.MnlgScaleSize {
			centsTable = centsTable[:constants.MnlgScaleSize]
		}
	} else {
		// normalize around C, keep one octave, and wrap flattened Cs
		cNote := t.BaseMidiNote / constants.MnlgOctaveSize * constants.MnlgOctaveSize
		end := util.Min(cNote+constants.MnlgOctaveSize, len(centsTable))
		if cNote > end {
			cNote = end
		}
		octave := make([]float64, 0, constants.MnlgOctaveSize)
		for _, c := range centsTable[cNote:end] {
			octave = append(octave, util.FloatModulo(c-float64(constants.MnlgHzRefC.Int), constants.MnlgMaxCents))
		}
		centsTable = octave
	}

	var diag error
	if size := mode.size(); len(centsTable) != size {
		diag = fmt.Errorf("%w: %s table has %d entries, padded to %d", ErrMalformedTableLength, mode, len(centsTable), size)
		centsTable = append(centsTable, make([]float64, size-len(centsTable))...)
	}
	return centsTable, diag
}

// Export builds the complete archive for t.
func (e *Exporter) Export(t *tuning.Table, mode Mode) (*Result, error) {
	if !t.HasData() {
		return nil, ErrNoTuningData
	}

	log := e.logger().With(zap.String("mode", mode.String()), zap.String("filename", t.Filename))

	res := &Result{
		Filename: t.Filename + mode.Extension(),
		MimeType: MimeType,
	}

	table, diag := CentsTable(t, mode)
	if diag != nil {
		log.Warn("padded mnlg cents table",
			zap.Int("expected", mode.size()),
			zap.Int("actual", len(t.Cents)),
			zap.Error(diag),
		)
		res.Diagnostics = append(res.Diagnostics, diag)
	}
	res.CentsTable = table

	archive, err := e.archive(t, mode, CentsTableToBinary(table))
	if err != nil {
		log.Error("mnlg archive failed", zap.Error(err))
		return nil, err
	}

	if e.Encoding == Base64 {
		encoded := make([]byte, base64.StdEncoding.EncodedLen(len(archive)))
		base64.StdEncoding.Encode(encoded, archive)
		archive = encoded
	}
	res.Payload = archive

	log.Debug("built mnlg archive", zap.Int("bytes", len(archive)))
	return res, nil
}

type Outcome struct {
	Result *Result
	Err    error
}

// ExportAsync runs Export in its own goroutine. The channel yields exactly
// one Outcome and is then closed.
func (e *Exporter) ExportAsync(ctx context.Context, t *tuning.Table, mode Mode) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		if err := ctx.Err(); err != nil {
			out <- Outcome{Err: err}
			return
		}
		res, err := e.Export(t, mode)
		out <- Outcome{Result: res, Err: err}
	}()
	return out
}

func (e *Exporter) archive(t *tuning.Table, mode Mode, bin []byte) ([]byte, error) {
	tuningInfo, err := tuningInfoXML(mode, e.Programmer, t.Filename)
	if err != nil {
		return nil, fmt.Errorf("%w: tuning info: %v", ErrArchive, err)
	}
	fileInfo, err := fileInfoXML(mode, e.Product)
	if err != nil {
		return nil, fmt.Errorf("%w: file info: %v", ErrArchive, err)
	}

	level := e.CompressionLevel
	if level == 0 {
		level = flate.DefaultCompression
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	header := mode.fileNameHeader()
	files := []struct {
		name string
		data []byte
	}{
		{header + "bin", bin},
		{header + "info", tuningInfo},
		{"FileInformation.xml", fileInfo},
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrArchive, f.name, err)
		}
		if _, err := w.Write(f.data); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrArchive, f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	return buf.Bytes(), nil
}
