package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/tunesmith/constants"
	"github.com/jsphweid/tunesmith/mnlg"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// Tuning holds the defaults used when a scale is exported without explicit
// base note settings.
type Tuning struct {
	BaseFrequency float64 `toml:"base_frequency"`
	BaseMidiNote  int     `toml:"base_midi_note"`
	Newline       string  `toml:"newline"` // "unix" or "windows"
}

type Export struct {
	OutDir         string `toml:"out_dir"`
	MnlgProgrammer string `toml:"mnlg_programmer"`
	MnlgEncoding   string `toml:"mnlg_encoding"` // "binary" or "base64"
}

type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Server struct {
	Bind           string   `toml:"bind"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

type Config struct {
	Tuning  Tuning  `toml:"tuning"`
	Export  Export  `toml:"export"`
	Logging Logging `toml:"logging"`
	Server  Server  `toml:"server"`
}

func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tunesmith/config.toml")
}

// Load reads the config at path, or the default location when path is
// empty. A missing file is not an error; defaults are used instead. It
// returns the resolved path and whether a file was read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return "", false, err
		}
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %q is a directory", expanded)
	}
	return expanded, true, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// Newline returns the line ending the text exporters should write.
func (c *Config) Newline() string {
	if c.Tuning.Newline == NewlineWindows {
		return constants.WindowsNewline
	}
	return constants.UnixNewline
}

// MnlgExporter returns an exporter carrying the [export] settings.
func (c *Config) MnlgExporter(logger *zap.Logger) *mnlg.Exporter {
	e := mnlg.NewExporter(logger)
	e.Programmer = c.Export.MnlgProgrammer
	if c.Export.MnlgEncoding == EncodingBase64 {
		e.Encoding = mnlg.Base64
	}
	return e
}

// Sample renders the default configuration as TOML.
func Sample() (string, error) {
	data, err := toml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("encode sample config: %w", err)
	}
	return string(data), nil
}

// CreateSample writes a sample configuration file to path.
func CreateSample(path string) error {
	sample, err := Sample()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
