package util

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"
)

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func Clamp[A constraints.Ordered](min A, max A, value A) A {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Modulo is a modulo whose result takes the sign of the modulus.
func Modulo[A constraints.Integer](number A, modulo A) A {
	return ((number % modulo) + modulo) % modulo
}

func FloatModulo[A constraints.Float](number A, modulo A) A {
	n, m := float64(number), float64(modulo)
	return A(math.Mod(math.Mod(n, m)+m, m))
}

func Min[A constraints.Ordered](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}
