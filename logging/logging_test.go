package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	assert := assert.New(t)

	logger, err := New("warn", "json")
	require.NoError(t, err)
	assert.True(logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(logger.Core().Enabled(zapcore.InfoLevel))

	logger, err = New("debug", "")
	require.NoError(t, err)
	assert.True(logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRejectsBadSettings(t *testing.T) {
	_, err := New("loud", "json")
	assert.Error(t, err)

	_, err = New("info", "xml")
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.False(t, Nop().Core().Enabled(zapcore.ErrorLevel))
}
