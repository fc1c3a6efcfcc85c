package numbers

import (
	"errors"
	"math"
)

var ErrOverflow = errors.New("integer overflow")

// CheckedMul returns a*b and whether the product fits in an int.
func CheckedMul(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

func CheckedAdd(a, b int) (int, bool) {
	if (b > 0 && a > math.MaxInt-b) || (b < 0 && a < math.MinInt-b) {
		return 0, false
	}
	return a + b, true
}

// CheckedPow raises base to a non-negative exp.
func CheckedPow(base, exp int) (int, bool) {
	res := 1
	for i := 0; i < exp; i++ {
		var ok bool
		if res, ok = CheckedMul(res, base); !ok {
			return 0, false
		}
	}
	return res, true
}

func CheckedLCM(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	return CheckedMul(max(a, b)/GCD(a, b), min(a, b))
}
