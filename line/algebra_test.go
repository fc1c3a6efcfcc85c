package line

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stack(a, b string) Line {
	return Stack(MustParse(a), MustParse(b))
}

func TestStackPreservesNotation(t *testing.T) {
	assert := assert.New(t)

	r := stack("3/2", "4/3")
	assert.Equal(Ratio, r.Type())
	assert.Equal("2/1", r.String())
	assert.Equal("81/64", stack("9/8", "9/8").String())

	e := stack("1\\3", "1\\4")
	assert.Equal(NOfEdo, e.Type())
	assert.Equal("7\\12", e.String())
	assert.Equal("1\\1", stack("7\\12", "5\\12").String())

	d := stack("1,5", "3/2")
	assert.Equal(Commadecimal, d.Type())
	assert.Equal("2,25", d.String())

	assert.Equal("1200.000000", stack("700.0", "500.0").String())
	assert.Equal("1401.955001", stack("3/2", "7\\12").String())
	assert.Equal(Cents, stack("3/2", "7\\12").Type())
}

func TestStackSelfZeroIsUnison(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("1/1", StackSelf(MustParse("3/2"), 0).String())

	e := StackSelf(MustParse("7\\12"), 0)
	deg, edo, ok := e.NOfEdo()
	assert.True(ok)
	assert.Equal(0, deg)
	assert.Equal(12, edo)
}

func TestStackSelf(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("9/4", StackSelf(MustParse("3/2"), 2).String())
	assert.Equal("4/9", StackSelf(MustParse("3/2"), -2).String())
	assert.Equal("21\\12", StackSelf(MustParse("7\\12"), 3).String())
	assert.Equal("2,25", StackSelf(MustParse("1,5"), 2).String())

	// non-integer and unsupported stacks scale cents by 1+k
	assert.Equal("1052.932501", StackSelf(MustParse("3/2"), 0.5).String())
	assert.Equal("2100.000000", StackSelf(MustParse("700.0"), 2).String())
}

func TestModulo(t *testing.T) {
	assert := assert.New(t)
	octave := MustParse("2/1")

	assert.Equal("9/8", Modulo(MustParse("9/4"), octave).String())
	assert.Equal("4/3", Modulo(MustParse("1/3"), octave).String())
	assert.Equal("3/2", Modulo(MustParse("3/2"), octave).String())
	assert.Equal(Ratio, Modulo(MustParse("9/4"), octave).Type())

	assert.Equal("2\\12", Modulo(MustParse("14\\12"), MustParse("12\\12")).String())
	assert.Equal("7\\12", Modulo(MustParse("7\\12"), MustParse("1\\1")).String())

	assert.Equal("300.000000", Modulo(MustParse("1500.0"), MustParse("1200.0")).String())
	assert.Equal("1100.000000", Modulo(MustParse("-100.0"), MustParse("1200.0")).String())
	assert.Equal("501.955001", Modulo(MustParse("3/1"), MustParse("7\\12")).String())

	unchanged := MustParse("5/4")
	assert.Equal(unchanged, Modulo(unchanged, MustParse("1/1")))
}

func TestReciprocal(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("2/3", Reciprocal(MustParse("3/2")).String())
	assert.Equal("-7\\12", Reciprocal(MustParse("7\\12")).String())
	assert.Equal("0,5", Reciprocal(MustParse("2,0")).String())
	assert.Equal("-700.000000", Reciprocal(MustParse("700")).String())
}

func TestStackSelfFallsBackToCentsOnOverflow(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("4052555153018976267/549755813888", StackSelf(MustParse("3/2"), 39).String())

	l := StackSelf(MustParse("3/2"), 40)
	assert.Equal(Cents, l.Type())
	assert.InDelta(40*MustParse("3/2").Cents(), l.Cents(), 1e-6)
	_, err := Parse(l.String())
	assert.NoError(err)

	l = StackSelf(MustParse("3/2"), -40)
	assert.Equal(Cents, l.Type())
	assert.InDelta(-40*MustParse("3/2").Cents(), l.Cents(), 1e-6)

	e := StackSelf(MustParse("7\\12"), 1<<62)
	assert.Equal(Cents, e.Type())
	assert.False(math.IsNaN(e.Cents()))
}

func TestStackLargeRatios(t *testing.T) {
	assert := assert.New(t)
	big := MustParse("4294967311/1")

	l := Stack(big, big)
	assert.Equal(Cents, l.Type())
	assert.InDelta(2*big.Cents(), l.Cents(), 1e-6)

	// cross reduction keeps results that fit
	assert.Equal("1/1", Stack(big, MustParse("1/4294967311")).String())

	e := Stack(MustParse("1\\4294967311"), MustParse("1\\4294967291"))
	assert.Equal(Cents, e.Type())
}

func TestModuloLandsInsideThePeriod(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("1/1", Modulo(MustParse("1000/1"), MustParse("10/1")).String())
	assert.Equal("1/1", Modulo(MustParse("8/1"), MustParse("2/1")).String())
	assert.Equal("3/2", Modulo(MustParse("243/2"), MustParse("3/1")).String())
}
