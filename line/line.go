// Package line models one scale degree written in any of the notations a
// Scala-style scale accepts, and the arithmetic between them.
//
// A Line is a tagged value. Classification is driven purely by surface
// syntax:
//
//	3/2      ratio
//	7\12     n of edo (7 steps of 12-EDO)
//	1,5      commadecimal (a frequency ratio with a comma separator)
//	701.955  cents
//	700      cents
//
// Decimal lines are the programmatic counterpart of commadecimal ones; they
// print in comma notation and so read back as Commadecimal.
package line

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Type int

const (
	Cents Type = iota
	Ratio
	NOfEdo
	Decimal
	Commadecimal
)

func (t Type) String() string {
	switch t {
	case Ratio:
		return "ratio"
	case NOfEdo:
		return "n of edo"
	case Decimal:
		return "decimal"
	case Commadecimal:
		return "commadecimal"
	default:
		return "cents"
	}
}

// IsDecimal reports whether t is written as a plain frequency ratio.
func (t Type) IsDecimal() bool {
	return t == Decimal || t == Commadecimal
}

var ErrInvalidLine = errors.New("invalid line")

var (
	ratioPattern        = regexp.MustCompile(`^\d+/\d+$`)
	nOfEdoPattern       = regexp.MustCompile(`^-?\d+\\\d+$`)
	commadecimalPattern = regexp.MustCompile(`^(\d+,\d*|,\d+)$`)
	centsPattern        = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)$`)
)

// Classify never fails: anything that is not a ratio, n of edo or
// commadecimal is treated as cents.
func Classify(s string) Type {
	s = strings.TrimSpace(s)
	switch {
	case ratioPattern.MatchString(s):
		return Ratio
	case nOfEdoPattern.MatchString(s):
		return NOfEdo
	case commadecimalPattern.MatchString(s):
		return Commadecimal
	default:
		return Cents
	}
}

type Line struct {
	typ Type

	// Ratio: numerator/denominator. NOfEdo: degree/edo.
	num, den int

	// Cents: the cent value. Decimal family: the frequency ratio.
	value float64

	// surface text as written, empty for computed lines
	text string
}

var Unison = NewRatio(1, 1)

func Parse(s string) (Line, error) {
	s = strings.TrimSpace(s)
	switch Classify(s) {
	case Ratio:
		parts := strings.SplitN(s, "/", 2)
		n, err1 := strconv.Atoi(parts[0])
		d, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || n == 0 || d == 0 {
			return Line{}, fmt.Errorf("%w: ratio %q", ErrInvalidLine, s)
		}
		return Line{typ: Ratio, num: n, den: d, text: s}, nil
	case NOfEdo:
		parts := strings.SplitN(s, `\`, 2)
		deg, err1 := strconv.Atoi(parts[0])
		edo, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || edo == 0 {
			return Line{}, fmt.Errorf("%w: n of edo %q", ErrInvalidLine, s)
		}
		return Line{typ: NOfEdo, num: deg, den: edo, text: s}, nil
	case Commadecimal:
		v, err := CommadecimalToDecimal(s)
		if err != nil || v <= 0 {
			return Line{}, fmt.Errorf("%w: commadecimal %q", ErrInvalidLine, s)
		}
		return Line{typ: Commadecimal, value: v, text: s}, nil
	}

	if !centsPattern.MatchString(s) {
		return Line{}, fmt.Errorf("%w: %q", ErrInvalidLine, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Line{}, fmt.Errorf("%w: cents %q", ErrInvalidLine, s)
	}
	return Line{typ: Cents, value: v, text: s}, nil
}

func MustParse(s string) Line {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

func NewRatio(numerator, denominator int) Line {
	return Line{typ: Ratio, num: numerator, den: denominator}
}

func NewNOfEdo(degree, edo int) Line {
	return Line{typ: NOfEdo, num: degree, den: edo}
}

func NewDecimal(ratio float64) Line {
	return Line{typ: Decimal, value: ratio}
}

func NewCommadecimal(ratio float64) Line {
	return Line{typ: Commadecimal, value: ratio}
}

func NewCents(cents float64) Line {
	return Line{typ: Cents, value: cents}
}

func (l Line) Type() Type {
	return l.typ
}

// Ratio returns the numerator and denominator of a ratio line.
func (l Line) Ratio() (int, int, bool) {
	return l.num, l.den, l.typ == Ratio
}

// NOfEdo returns the degree and division size of an n of edo line.
func (l Line) NOfEdo() (int, int, bool) {
	return l.num, l.den, l.typ == NOfEdo
}

// String gives the line as it was written, or in its canonical notation for
// computed lines.
func (l Line) String() string {
	if l.text != "" {
		return l.text
	}
	switch l.typ {
	case Ratio:
		return strconv.Itoa(l.num) + "/" + strconv.Itoa(l.den)
	case NOfEdo:
		return strconv.Itoa(l.num) + `\` + strconv.Itoa(l.den)
	case Decimal, Commadecimal:
		return DecimalToCommadecimal(l.value)
	default:
		return ToFixed(l.value, 6)
	}
}

func (l Line) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Line) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseAll parses every entry, failing on the first invalid one.
func ParseAll(lines []string) ([]Line, error) {
	res := make([]Line, 0, len(lines))
	for i, s := range lines {
		l, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		res = append(res, l)
	}
	return res, nil
}
