package file

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/tunesmith/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload() *export.Payload {
	return &export.Payload{Filename: "just.scl", MimeType: "application/octet-stream", Data: []byte("! just.scl\n")}
}

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := NewDirSink(dir, nil).Save(context.Background(), payload())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "just.scl"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "! just.scl\n", string(data))
}

func TestDirSinkDefaultsToOutDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TUNESMITH_OUT_DIR", dir)
	assert.Equal(t, dir, NewDirSink("", nil).Dir)
}

func TestDirSinkStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	p := payload()
	p.Filename = "../escape.scl"
	path, err := NewDirSink(dir, nil).Save(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.scl"), path)
}

func TestDirSinkHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDirSink(t.TempDir(), nil).Save(ctx, payload())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResponseSink(t *testing.T) {
	assert := assert.New(t)
	w := httptest.NewRecorder()
	name, err := ResponseSink{W: w}.Save(context.Background(), payload())
	require.NoError(t, err)
	assert.Equal("just.scl", name)
	assert.Equal(200, w.Code)
	assert.Equal("application/octet-stream", w.Header().Get("Content-Type"))
	assert.Equal(`attachment; filename="just.scl"`, w.Header().Get("Content-Disposition"))
	assert.Equal("! just.scl\n", w.Body.String())
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	name, err := WriterSink{W: &buf}.Save(context.Background(), payload())
	require.NoError(t, err)
	assert.Equal(t, "just.scl", name)
	assert.Equal(t, "! just.scl\n", buf.String())
}
