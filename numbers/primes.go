package numbers

import (
	"math"
	"math/big"
	"math/bits"
)

// primeCeiling bounds the prime table. Monzos only have room for table
// primes; everything else falls back to arithmetic on the number itself.
const primeCeiling = 10000

var primes = sieve(primeCeiling)

func sieve(limit int) []int {
	composite := make([]bool, limit)
	var res []int
	for i := 2; i < limit; i++ {
		if composite[i] {
			continue
		}
		res = append(res, i)
		for j := i * i; j < limit; j += i {
			composite[j] = true
		}
	}
	return res
}

// Prime returns the nth prime (0 is 2), or 0 past the end of the table.
func Prime(n int) int {
	if n < 0 || n >= len(primes) {
		return 0
	}
	return primes[n]
}

func PrimeCount() int {
	return len(primes)
}

func IsPrime(number int) bool {
	if number < 2 {
		return false
	}
	if number >= primeCeiling*primeCeiling {
		// exact below 2^64
		return big.NewInt(int64(number)).ProbablyPrime(0)
	}
	sqrtnum := int(math.Floor(math.Sqrt(float64(number))))
	for _, p := range primes {
		if p > sqrtnum {
			break
		}
		if number%p == 0 {
			return false
		}
	}
	return true
}

// PrevPrime returns the greatest prime <= number.
func PrevPrime(number int) int {
	if number < 2 {
		return 2
	}
	if number >= primes[len(primes)-1] {
		for !IsPrime(number) {
			number--
		}
		return number
	}
	i := 0
	for primes[i] <= number {
		i++
	}
	return primes[i-1]
}

// NextPrime returns the smallest prime > number. Past the table it steps
// through IsPrime, so it returns 0 only when no larger prime fits in an int.
func NextPrime(number int) int {
	if number < 2 {
		return 2
	}
	if number >= primes[len(primes)-1] {
		for c := number + 1; c > number; c++ {
			if IsPrime(c) {
				return c
			}
		}
		return 0
	}
	i := 0
	for primes[i] <= number {
		i++
	}
	return primes[i]
}

// ClosestPrime prefers the previous prime when both are equally far.
func ClosestPrime(number int) int {
	if number < 2 {
		return 2
	}
	if IsPrime(number) {
		return number
	}

	next := NextPrime(number)
	previous := PrevPrime(number)
	if abs(next-number) < abs(previous-number) {
		return next
	}
	return previous
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

func gcd64(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// pollardRho finds a non-trivial factor of the odd composite n.
func pollardRho(n uint64) uint64 {
	for c := uint64(1); ; c++ {
		f := func(v uint64) uint64 { return (mulMod(v, v, n) + c) % n }
		x, y, d := uint64(2), uint64(2), uint64(1)
		for d == 1 {
			x = f(x)
			y = f(f(y))
			if x > y {
				d = gcd64(x-y, n)
			} else {
				d = gcd64(y-x, n)
			}
		}
		if d != n {
			return d
		}
	}
}

// largestPrimeFactor handles what is left after dividing out the table
// primes, so n has no factor below primeCeiling.
func largestPrimeFactor(n int) int {
	if n < 2 || IsPrime(n) {
		return n
	}
	d := int(pollardRho(uint64(n)))
	return max(largestPrimeFactor(d), largestPrimeFactor(n/d))
}
