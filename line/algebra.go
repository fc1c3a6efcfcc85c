package line

import (
	"math"

	"github.com/jsphweid/tunesmith/numbers"
	"github.com/jsphweid/tunesmith/util"
)

// centsResult mirrors what a user would get by typing the value back in:
// six fractional digits, read back as cents.
func centsResult(v float64) Line {
	s := ToFixed(v, 6)
	l, err := Parse(s)
	if err != nil {
		return NewCents(v)
	}
	return l
}

func commadecimalResult(v float64) Line {
	return NewCommadecimal(v)
}

// Reciprocal inverts the interval, keeping the notation.
func Reciprocal(l Line) Line {
	switch l.typ {
	case Ratio:
		return NewRatio(l.den, l.num)
	case NOfEdo:
		return NewNOfEdo(-l.num, l.den)
	case Decimal, Commadecimal:
		return commadecimalResult(1 / l.value)
	default:
		return centsResult(-l.value)
	}
}

// stackRatios multiplies two ratios. A product too large for an int is
// summed in cents instead.
func stackRatios(a, b Line) Line {
	an, bd := numbers.SimplifyRatio(a.num, b.den)
	bn, ad := numbers.SimplifyRatio(b.num, a.den)
	n, nok := numbers.CheckedMul(an, bn)
	d, dok := numbers.CheckedMul(ad, bd)
	if !nok || !dok {
		return centsResult(a.Cents() + b.Cents())
	}
	return NewRatio(numbers.SimplifyRatio(n, d))
}

func stackNOfEdos(a, b Line) Line {
	newEdo, ok := numbers.CheckedLCM(a.den, b.den)
	if !ok {
		return centsResult(a.Cents() + b.Cents())
	}
	x, xok := numbers.CheckedMul(newEdo/a.den, a.num)
	y, yok := numbers.CheckedMul(newEdo/b.den, b.num)
	newDegree, ok := numbers.CheckedAdd(x, y)
	if !xok || !yok || !ok {
		return centsResult(a.Cents() + b.Cents())
	}
	return NewNOfEdo(numbers.SimplifyRatio(newDegree, newEdo))
}

// Stack adds two intervals. Ratio pairs and n of edo pairs keep their
// notation, a decimal first operand yields a commadecimal, and every other
// combination is summed in cents.
func Stack(a, b Line) Line {
	switch {
	case a.typ == Ratio && b.typ == Ratio:
		return stackRatios(a, b)
	case a.typ == NOfEdo && b.typ == NOfEdo:
		return stackNOfEdos(a, b)
	case a.typ.IsDecimal():
		return commadecimalResult(a.Decimal() * b.Decimal())
	default:
		return centsResult(a.Cents() + b.Cents())
	}
}

// maxWholeStacks bounds the exponents handled in integer notation.
const maxWholeStacks = math.MaxInt32

// StackSelf stacks l on itself numStacks times, i.e. raises it to a power.
//
// Whole exponents keep ratio, n of edo and decimal notation; when the
// integer result would overflow, the exact power is given in cents instead.
// Anything else becomes cents(l) * (1 + numStacks); the extra stack is
// long-standing behaviour that exported scales depend on and is kept as is.
func StackSelf(l Line, numStacks float64) Line {
	whole := numStacks == math.Trunc(numStacks)
	if !whole || math.IsInf(numStacks, 0) {
		return centsResult(l.Cents() * (1 + numStacks))
	}
	if math.Abs(numStacks) > maxWholeStacks && l.typ != Decimal && l.typ != Commadecimal {
		return centsResult(l.Cents() * numStacks)
	}

	k := int(numStacks)
	switch l.typ {
	case Decimal, Commadecimal:
		return commadecimalResult(math.Pow(l.value, numStacks))
	case Ratio:
		if k == 0 {
			return Unison
		}
		n, d := l.num, l.den
		if k < 0 {
			n, d, k = d, n, -k
		}
		n, d = numbers.SimplifyRatio(n, d)
		pn, nok := numbers.CheckedPow(n, k)
		pd, dok := numbers.CheckedPow(d, k)
		if !nok || !dok {
			return centsResult(l.Cents() * numStacks)
		}
		return NewRatio(pn, pd)
	case NOfEdo:
		deg, ok := numbers.CheckedMul(l.num, k)
		if !ok {
			return centsResult(l.Cents() * numStacks)
		}
		return NewNOfEdo(deg, l.den)
	default:
		return centsResult(l.Cents() * (1 + numStacks))
	}
}

// Modulo reduces l into the period defined by modLine, e.g. octave
// reduction for a 2/1 modulus. Ratio and n of edo pairs keep their notation,
// everything else is reduced in cents. A zero-sized modulus leaves l as is.
func Modulo(l, modLine Line) Line {
	if modLine.Cents() == 0 {
		return l
	}

	switch {
	case l.typ == Ratio && modLine.typ == Ratio:
		mod := modLine.Decimal()
		periods := math.Floor(math.Log(l.Decimal()) / math.Log(mod))
		res := Stack(l, StackSelf(modLine, -periods))
		// the log quotient can land just off a whole number of periods
		if mod > 1 {
			if res.Decimal() >= mod {
				res = Stack(res, Reciprocal(modLine))
			} else if res.Decimal() < 1 {
				res = Stack(res, modLine)
			}
		}
		return res
	case l.typ == NOfEdo && modLine.typ == NOfEdo:
		lcmEdo, ok := numbers.CheckedLCM(l.den, modLine.den)
		if !ok {
			break
		}
		deg, dok := numbers.CheckedMul(l.num, lcmEdo/l.den)
		period, pok := numbers.CheckedMul(modLine.num, lcmEdo/modLine.den)
		if !dok || !pok {
			break
		}
		return NewNOfEdo(deg%period, lcmEdo)
	}
	return centsResult(util.FloatModulo(l.Cents(), modLine.Cents()))
}
