package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/tunesmith/config"
	"github.com/jsphweid/tunesmith/mnlg"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	out := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TUNESMITH_OUT_DIR", out)

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.False(exists)
	assert.Equal(filepath.Join(home, ".config", "tunesmith", "config.toml"), resolved)
	assert.Equal(440.0, cfg.Tuning.BaseFrequency)
	assert.Equal(69, cfg.Tuning.BaseMidiNote)
	assert.Equal(out, cfg.Export.OutDir)
	assert.Equal("ScaleWorkshop", cfg.Export.MnlgProgrammer)
	assert.Equal("127.0.0.1:8080", cfg.Server.Bind)
	assert.Equal("info", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[tuning]
base_frequency = 432.0
base_midi_note = 60
newline = "Windows"

[export]
mnlg_encoding = "base64"
mnlg_programmer = "me"

[logging]
format = "json"
`)

	cfg, resolved, exists, err := config.Load(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.True(exists)
	assert.Equal(path, resolved)
	assert.Equal(432.0, cfg.Tuning.BaseFrequency)
	assert.Equal(60, cfg.Tuning.BaseMidiNote)
	assert.Equal("\r\n", cfg.Newline())
	assert.Equal("json", cfg.Logging.Format)

	e := cfg.MnlgExporter(nil)
	assert.Equal(mnlg.Base64, e.Encoding)
	assert.Equal("me", e.Programmer)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	for name, contents := range map[string]string{
		"midi note": "[tuning]\nbase_midi_note = 200\n",
		"frequency": "[tuning]\nbase_frequency = -1.0\n",
		"newline":   "[tuning]\nnewline = \"mac\"\n",
		"encoding":  "[export]\nmnlg_encoding = \"hex\"\n",
		"syntax":    "[tuning\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, _, err := config.Load(writeConfig(t, contents))
			assert.Error(t, err)
		})
	}
}

func TestSampleDecodesToDefaults(t *testing.T) {
	sample, err := config.Sample()
	require.NoError(t, err)

	var decoded config.Config
	require.NoError(t, toml.Unmarshal([]byte(sample), &decoded))
	assert.Equal(t, config.Default(), decoded)
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, config.CreateSample(path))

	cfg, _, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 69, cfg.Tuning.BaseMidiNote)
}
