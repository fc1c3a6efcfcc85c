package config

import (
	"runtime"

	"github.com/jsphweid/tunesmith/constants"
)

const (
	NewlineUnix    = "unix"
	NewlineWindows = "windows"

	EncodingBinary = "binary"
	EncodingBase64 = "base64"

	defaultBaseFrequency = 440.0
	defaultBaseMidiNote  = 69
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultBind          = "127.0.0.1:8080"
)

func defaultNewline() string {
	if runtime.GOOS == "windows" {
		return NewlineWindows
	}
	return NewlineUnix
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tuning: Tuning{
			BaseFrequency: defaultBaseFrequency,
			BaseMidiNote:  defaultBaseMidiNote,
			Newline:       defaultNewline(),
		},
		Export: Export{
			OutDir:         constants.GetOutDir(),
			MnlgProgrammer: constants.MnlgProgrammer,
			MnlgEncoding:   EncodingBinary,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Server: Server{
			Bind:           defaultBind,
			AllowedOrigins: []string{"*"},
		},
	}
}
