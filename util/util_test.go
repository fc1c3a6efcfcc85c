package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuloFollowsSignOfModulus(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(2, Modulo(-10, 12))
	assert.Equal(10, Modulo(10, 12))
	assert.Equal(0, Modulo(24, 12))
	assert.InDelta(1100.0, FloatModulo(-100.0, 1200.0), 1e-9)
	assert.InDelta(200.0, FloatModulo(1400.0, 1200.0), 1e-9)
}

func TestClamp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, Clamp(0, 127, -3))
	assert.Equal(127, Clamp(0, 127, 300))
	assert.Equal(1.5, Clamp(0.0, 2.0, 1.5))
}

func TestSortedKeysAndMin(t *testing.T) {
	assert := assert.New(t)
	m := map[string]int{"scl": 1, "kbm": 2, "tun": 3}
	assert.Equal([]string{"kbm", "scl", "tun"}, SortedKeys(m))
	assert.Equal(3, Min(3, 9))
}
