package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jsphweid/tunesmith/constants"
)

func (c *Config) normalize() error {
	c.Tuning.Newline = strings.ToLower(strings.TrimSpace(c.Tuning.Newline))
	if c.Tuning.Newline == "" {
		c.Tuning.Newline = defaultNewline()
	}

	c.Export.MnlgEncoding = strings.ToLower(strings.TrimSpace(c.Export.MnlgEncoding))
	if c.Export.MnlgEncoding == "" {
		c.Export.MnlgEncoding = EncodingBinary
	}
	if strings.TrimSpace(c.Export.MnlgProgrammer) == "" {
		c.Export.MnlgProgrammer = constants.MnlgProgrammer
	}

	var err error
	if c.Export.OutDir, err = expandPath(strings.TrimSpace(c.Export.OutDir)); err != nil {
		return fmt.Errorf("export.out_dir: %w", err)
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	return nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if math.IsNaN(c.Tuning.BaseFrequency) || c.Tuning.BaseFrequency <= 0 {
		return errors.New("tuning.base_frequency must be positive")
	}
	if c.Tuning.BaseMidiNote < 0 || c.Tuning.BaseMidiNote >= constants.TuningMaxSize {
		return fmt.Errorf("tuning.base_midi_note must be between 0 and %d", constants.TuningMaxSize-1)
	}
	if c.Tuning.Newline != NewlineUnix && c.Tuning.Newline != NewlineWindows {
		return fmt.Errorf("tuning.newline must be %q or %q", NewlineUnix, NewlineWindows)
	}
	if c.Export.OutDir == "" {
		return errors.New("export.out_dir must be set")
	}
	if c.Export.MnlgEncoding != EncodingBinary && c.Export.MnlgEncoding != EncodingBase64 {
		return fmt.Errorf("export.mnlg_encoding must be %q or %q", EncodingBinary, EncodingBase64)
	}
	if strings.TrimSpace(c.Server.Bind) == "" {
		return errors.New("server.bind must be set")
	}
	return nil
}
