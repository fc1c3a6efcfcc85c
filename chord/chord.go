package chord

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jsphweid/tunesmith/numbers"
)

var ErrInvalidChord = errors.New("invalid chord")

var chordPattern = regexp.MustCompile(`^(\d+:)+\d+$`)

// Parse reads a colon separated chord such as 4:5:6. Every tone must be a
// positive integer and there must be at least two of them.
func Parse(chordString string) ([]int, error) {
	if !chordPattern.MatchString(chordString) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidChord, chordString)
	}
	parts := strings.Split(chordString, ":")
	tones := make([]int, 0, len(parts))
	for _, p := range parts {
		tone, err := strconv.Atoi(p)
		if err != nil || tone == 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidChord, chordString)
		}
		tones = append(tones, tone)
	}
	return tones, nil
}

func CreateChordKey(tones []int) string {
	var res string
	for i, tone := range tones {
		res += fmt.Sprintf("%v", tone)
		if i < len(tones)-1 {
			res += ":"
		}
	}
	return res
}

// Invert reverses the order of the steps between adjacent tones, so 4:5:6
// (a major third then a minor third) becomes 10:12:15 (minor then major).
// The result is scaled to the smallest all-integer chord.
func Invert(chordString string) (string, error) {
	tones, err := Parse(chordString)
	if err != nil {
		return "", err
	}

	// step i goes from tones[i] to tones[i+1]
	steps := make([][2]int, 0, len(tones)-1)
	for i := 1; i < len(tones); i++ {
		steps = append(steps, [2]int{tones[i], tones[i-1]})
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}

	tooLarge := fmt.Errorf("%w: inverting %q", numbers.ErrOverflow, chordString)

	intervals := [][2]int{{1, 1}}
	denominators := make([]int, 0, len(steps))
	for i, step := range steps {
		sn, id := numbers.SimplifyRatio(step[0], intervals[i][1])
		in, sd := numbers.SimplifyRatio(intervals[i][0], step[1])
		n, nok := numbers.CheckedMul(sn, in)
		d, dok := numbers.CheckedMul(sd, id)
		if !nok || !dok {
			return "", tooLarge
		}
		n, d = numbers.SimplifyRatio(n, d)
		intervals = append(intervals, [2]int{n, d})
		denominators = append(denominators, d)
	}

	lcm, err := numbers.LCMArray(denominators)
	if err != nil {
		return "", tooLarge
	}

	inverted := make([]int, 0, len(intervals))
	for _, x := range intervals {
		tone, ok := numbers.CheckedMul(x[0], lcm/x[1])
		if !ok {
			return "", tooLarge
		}
		inverted = append(inverted, tone)
	}
	return CreateChordKey(inverted), nil
}
