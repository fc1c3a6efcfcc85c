package mnlg

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/jsphweid/tunesmith/constants"
	"github.com/jsphweid/tunesmith/line"
	"github.com/jsphweid/tunesmith/tuning"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func edo12(t *testing.T, baseFreq float64, baseMidi int) *tuning.Table {
	var degrees []line.Line
	for i := 1; i <= 12; i++ {
		degrees = append(degrees, line.NewNOfEdo(i, 12))
	}
	table, err := tuning.Build(degrees, baseFreq, baseMidi, "edo")
	require.NoError(t, err)
	return table
}

// rawTable has a usable base key and an arbitrary number of per-key cents.
func rawTable(size int) *tuning.Table {
	freq := make([]float64, constants.TuningMaxSize)
	freq[69] = 440
	return &tuning.Table{
		BaseFrequency: 440,
		BaseMidiNote:  69,
		Freq:          freq,
		Cents:         make([]float64, size),
		Filename:      "raw",
	}
}

func readArchive(t *testing.T, payload []byte) map[string][]byte {
	zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	require.NoError(t, err)
	files := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		files[f.Name] = data
	}
	return files
}

func TestClosestReference(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("a", ClosestReference(440).Name)
	assert.Equal("a", ClosestReference(400).Name)
	assert.Equal("c", ClosestReference(261).Name)
	assert.Equal("c", ClosestReference(100).Name)
}

func TestBaseOffset(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(6900, BaseOffset(440))
	assert.Equal(6000, BaseOffset(261.6255653005986))
	assert.Equal(7000, BaseOffset(440*1.0594630943592953))
}

func TestCentsTableScaleMode(t *testing.T) {
	assert := assert.New(t)
	table, diag := CentsTable(edo12(t, 440, 69), Scale)
	assert.NoError(diag)
	assert.Len(table, 128)
	for _, i := range []int{0, 60, 69, 127} {
		assert.InDelta(float64(i*100), table[i], 1e-6, fmt.Sprintf("key %d", i))
	}
}

func TestCentsTableTruncatesLongTables(t *testing.T) {
	table, diag := CentsTable(rawTable(130), Scale)
	assert.NoError(t, diag)
	assert.Len(t, table, 128)
}

func TestCentsTablePadsShortTables(t *testing.T) {
	assert := assert.New(t)
	table, diag := CentsTable(rawTable(100), Scale)
	assert.True(errors.Is(diag, ErrMalformedTableLength))
	assert.Len(table, 128)
	assert.Equal(6900.0, table[99])
	for i := 100; i < 128; i++ {
		assert.Equal(0.0, table[i])
	}
}

func TestCentsTableOctaveMode(t *testing.T) {
	assert := assert.New(t)
	table, diag := CentsTable(edo12(t, 261.6255653005986, 60), Octave)
	assert.NoError(diag)
	assert.Len(table, 12)
	assert.Equal(0.0, table[0])
	for i := 1; i < 12; i++ {
		assert.InDelta(float64(i*100), table[i], 1e-6)
	}
}

func TestCentsTableOctaveModeInTopOctave(t *testing.T) {
	table, diag := CentsTable(edo12(t, 440, 127), Octave)
	assert.True(t, errors.Is(diag, ErrMalformedTableLength))
	assert.Len(t, table, 12)
}

func TestCodec(t *testing.T) {
	assert := assert.New(t)
	data := CentsTableToBinary([]float64{0, 6900, 6950, 12700, 20000, -5, 99.99999999})
	assert.Equal([]byte{
		0, 0, 0,
		69, 0, 0,
		69, 0x40, 0,
		127, 0, 0,
		127, 0, 0,
		0, 0, 0,
		1, 0, 0,
	}, data)

	back := BinaryToCentsTable(data)
	assert.Len(back, 7)
	assert.InDelta(6950.0, back[2], 1e-9)

	in := []float64{1234.5678, 386.3137}
	for i, c := range BinaryToCentsTable(CentsTableToBinary(in)) {
		assert.InDelta(in[i], c, 100.0/0x8000)
	}
}

func TestDescriptorXML(t *testing.T) {
	assert := assert.New(t)
	info, err := tuningInfoXML(Scale, "ScaleWorkshop", "edo")
	require.NoError(t, err)
	assert.Equal(`<minilogue_TuneScaleInformation><Programmer>ScaleWorkshop</Programmer><Comment>edo</Comment></minilogue_TuneScaleInformation>`, string(info))

	fileInfo, err := fileInfoXML(Octave, "minilogue")
	require.NoError(t, err)
	assert.Equal(`<KorgMSLibrarian_Data><Product>minilogue</Product>`+
		`<Contents NumProgramData="0" NumPresetInformation="0" NumTuneScaleData="0" NumTuneOctData="1">`+
		`<TuneOctData><Information>TunO_000.TunO_info</Information><TuneOctBinary>TunO_000.TunO_bin</TuneOctBinary></TuneOctData>`+
		`</Contents></KorgMSLibrarian_Data>`, string(fileInfo))
}

func TestExportArchive(t *testing.T) {
	assert := assert.New(t)
	res, err := NewExporter(zap.NewNop()).Export(edo12(t, 440, 69), Scale)
	require.NoError(t, err)
	assert.Equal("edo.mnlgtuns", res.Filename)
	assert.Equal("application/zip", res.MimeType)
	assert.Empty(res.Diagnostics)

	files := readArchive(t, res.Payload)
	assert.Len(files, 3)
	assert.Len(files["TunS_000.TunS_bin"], 128*3)
	assert.Contains(string(files["TunS_000.TunS_info"]), "<Comment>edo</Comment>")
	assert.Contains(string(files["FileInformation.xml"]), `NumTuneScaleData="1"`)
	assert.Equal(byte(69), files["TunS_000.TunS_bin"][69*3])
}

func TestExportBase64(t *testing.T) {
	e := NewExporter(nil)
	e.Encoding = Base64
	res, err := e.Export(edo12(t, 440, 69), Octave)
	require.NoError(t, err)
	assert.Equal(t, "edo.mnlgtuno", res.Filename)

	raw, err := base64.StdEncoding.DecodeString(string(res.Payload))
	require.NoError(t, err)
	files := readArchive(t, raw)
	assert.Len(t, files["TunO_000.TunO_bin"], 12*3)
}

func TestExportFlagsPadding(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	res, err := NewExporter(zap.New(core)).Export(rawTable(100), Scale)
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)
	assert.True(t, errors.Is(res.Diagnostics[0], ErrMalformedTableLength))
	assert.Equal(t, 1, logs.FilterMessage("padded mnlg cents table").Len())
}

func TestExportWithoutData(t *testing.T) {
	table := edo12(t, 440, 69)
	table.Freq[69] = 0
	res, err := NewExporter(nil).Export(table, Scale)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrNoTuningData))
}

func TestExportArchiveFailure(t *testing.T) {
	e := NewExporter(nil)
	e.CompressionLevel = 42
	_, err := e.Export(edo12(t, 440, 69), Scale)
	assert.True(t, errors.Is(err, ErrArchive))
}

func TestExportAsync(t *testing.T) {
	e := NewExporter(nil)
	outcome := <-e.ExportAsync(context.Background(), edo12(t, 440, 69), Scale)
	require.NoError(t, outcome.Err)
	assert.Equal(t, "edo.mnlgtuns", outcome.Result.Filename)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outcome = <-e.ExportAsync(ctx, edo12(t, 440, 69), Scale)
	assert.True(t, errors.Is(outcome.Err, context.Canceled))
}
