package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/tunesmith/config"
	"github.com/jsphweid/tunesmith/logging"
	"github.com/jsphweid/tunesmith/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Setenv("HOME", t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeScale(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "just.scl.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestInvertCommand(t *testing.T) {
	out, err := run(t, "invert", "4:5:6")
	require.NoError(t, err)
	assert.Equal(t, "10:12:15\n", out)

	_, err = run(t, "invert", "4:5:x")
	assert.Error(t, err)
}

func TestLineCommands(t *testing.T) {
	assert := assert.New(t)

	out, err := run(t, "stack", "3/2", "4/3")
	require.NoError(t, err)
	assert.True(strings.HasPrefix(out, "2/1\t(ratio, 1200.000000 cents)"), out)

	out, err = run(t, "power", "3/2", "2")
	require.NoError(t, err)
	assert.True(strings.HasPrefix(out, "9/4\t"), out)

	out, err = run(t, "mod", "9/4")
	require.NoError(t, err)
	assert.True(strings.HasPrefix(out, "9/8\t"), out)
}

func TestExportCommand(t *testing.T) {
	scale := writeScale(t, "! just\n9/8\n5/4\n2/1\n")
	outDir := t.TempDir()

	out, err := run(t, "export", "scl", scale, "--out", outDir, "--name", "just")
	require.NoError(t, err)
	path := filepath.Join(outDir, "just.scl")
	assert.Equal(t, path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), " 3\n!\n 9/8\n 5/4\n 2/1\n")
}

func TestExportCommandRejectsUnknownFormat(t *testing.T) {
	_, err := run(t, "export", "wav", writeScale(t, "2/1\n"))
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	scale := writeScale(t, "3/2\n2/1\n")
	out, err := run(t, "inspect", scale)
	require.NoError(t, err)
	assert.Contains(t, out, "3/2")
	assert.Contains(t, out, "701.955001")
	assert.Contains(t, out, "1.500000")
}

func postLine(t *testing.T, op, body string) *httptest.ResponseRecorder {
	c := config.Default()
	req := httptest.NewRequest(http.MethodPost, "/line/"+op, strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(&c, logging.Nop()).ServeHTTP(rec, req)
	return rec
}

func TestLinePowerEndpointFallsBackToCents(t *testing.T) {
	assert := assert.New(t)

	rec := postLine(t, "power", `{"line":"3/2","power":40}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var res model.LineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal("cents", res.Type)
	assert.InDelta(28078.200035, res.Cents, 1e-5)

	rec = postLine(t, "power", `{"line":"3/2","power":4000}`)
	assert.Equal(http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(rec.Body.String(), "out of range")
}

func TestPowerCommandDoesNotOverflow(t *testing.T) {
	out, err := run(t, "power", "3/2", "40")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "28078.200035\t(cents, "), out)
}

func TestInspectReadsExportedScala(t *testing.T) {
	outDir := t.TempDir()
	_, err := run(t, "export", "scl", writeScale(t, "9/8\n5/4\n2/1\n"), "--out", outDir, "--name", "just")
	require.NoError(t, err)

	out, err := run(t, "inspect", filepath.Join(outDir, "just.scl"))
	require.NoError(t, err)
	assert.Contains(t, out, "just\n")
	assert.Contains(t, out, "9/8")
	assert.Contains(t, out, "386.313714")
}

func TestInspectReadsTuningDumps(t *testing.T) {
	outDir := t.TempDir()
	scale := writeScale(t, "9/8\n5/4\n2/1\n")
	for _, format := range []string{"syx", "mid"} {
		_, err := run(t, "export", format, scale, "--out", outDir, "--name", "just")
		require.NoError(t, err)

		out, err := run(t, "inspect", filepath.Join(outDir, "just."+format))
		require.NoError(t, err, format)
		assert.Contains(t, out, "just (program 0)", format)
		assert.Contains(t, out, "440.0000", format)
		// 9/8 above A4 is B4 plus 3.91 cents
		assert.Contains(t, out, "3.91", format)
	}
}
