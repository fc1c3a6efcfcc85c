package line

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/jsphweid/tunesmith/constants"
)

func DecimalToCents(ratio float64) float64 {
	return constants.OctaveCents * math.Log2(ratio)
}

func CentsToDecimal(cents float64) float64 {
	return math.Pow(2, cents/constants.OctaveCents)
}

func CommadecimalToDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
}

// DecimalToCommadecimal always leaves a comma in the output so the result
// classifies as a commadecimal rather than as cents.
func DecimalToCommadecimal(ratio float64) string {
	s := strconv.FormatFloat(ratio, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		return s + ",0"
	}
	return strings.Replace(s, ".", ",", 1)
}

// ToFixed formats v with prec fractional digits. Exact ties round away from
// zero and zero is never printed negative, which is what the file formats'
// reference tools produce.
func ToFixed(v float64, prec int) string {
	if v == 0 {
		v = math.Abs(v)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', prec, 64)
	}

	// a float64 has at most 1074 fractional digits
	exact := new(big.Float).SetFloat64(v).Text('f', 1100)
	tail := exact[strings.IndexByte(exact, '.')+1+prec:]
	if tail[0] == '5' && strings.TrimRight(tail[1:], "0") == "" {
		v = math.Nextafter(v, math.Copysign(math.Inf(1), v))
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// Decimal returns the frequency ratio of the line.
func (l Line) Decimal() float64 {
	switch l.typ {
	case Ratio:
		return float64(l.num) / float64(l.den)
	case NOfEdo:
		return math.Pow(2, float64(l.num)/float64(l.den))
	case Decimal, Commadecimal:
		return l.value
	default:
		return CentsToDecimal(l.value)
	}
}

func (l Line) Cents() float64 {
	switch l.typ {
	case NOfEdo:
		return constants.OctaveCents * float64(l.num) / float64(l.den)
	case Cents:
		return l.value
	default:
		return DecimalToCents(l.Decimal())
	}
}
