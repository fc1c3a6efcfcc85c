package numbers

// Monzo is a prime exponent vector: index 0 holds the power of 2, index 1
// the power of 3, and so on up to the highest prime present.
//
// The factorization of 1 is the empty (unity) Monzo rather than a vector of
// zeros. Callers that need a prime limit must treat it specially; see
// PrimeLimit.
type Monzo []int

func (m Monzo) IsUnity() bool {
	return m != nil && len(m) == 0
}

// PrimeFactors factors number against the prime table. Values below 1 have
// no factorization and return nil. A factor above the table does not fit a
// Monzo and is dropped; use Factorize to get it back.
func PrimeFactors(number int) Monzo {
	factors, _ := Factorize(number)
	return factors
}

// Factorize is PrimeFactors plus the cofactor left over once every table
// prime has been divided out. The cofactor is 1 when the Monzo is complete.
func Factorize(number int) (Monzo, int) {
	if number < 1 {
		return nil, 0
	}
	if number == 1 {
		return Monzo{}, 1
	}

	factors := Monzo{}
	n := number
	for i, p := range primes {
		if p > n {
			break
		}

		factors = append(factors, 0)

		for n%p == 0 {
			n /= p
			factors[i]++
		}
	}
	return factors, n
}

// PrimeLimit is the largest prime factor of number. 1 has prime limit 1.
func PrimeLimit(number int) int {
	factors, rest := Factorize(number)
	if rest > 1 {
		return largestPrimeFactor(rest)
	}
	if len(factors) == 0 {
		return 1
	}
	return primes[len(factors)-1]
}

func PrimeLimitOfRatio(numerator, denominator int) int {
	return max(PrimeLimit(numerator), PrimeLimit(denominator))
}

// PrimesOfRatio returns the ratio prime limit followed by the numerator and
// denominator limits.
func PrimesOfRatio(numerator, denominator int) [3]int {
	nlim, dlim := 1, 1
	if numerator != 1 {
		nlim = PrimeLimit(numerator)
	}
	if denominator != 1 {
		dlim = PrimeLimit(denominator)
	}
	return [3]int{max(nlim, dlim), nlim, dlim}
}

func GCD(a, b int) int {
	if a == 0 || b == 0 {
		return a + b
	} else if a == 1 || b == 1 {
		return 1
	} else if a == b {
		return a
	}
	return GCD(b, a%b)
}

func LCM(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	gcd := GCD(a, b)
	return max(a, b) / gcd * min(a, b)
}

// LCMArray is the least common multiple of all of nums. It fails with
// ErrOverflow when the result does not fit in an int.
func LCMArray(nums []int) (int, error) {
	lcm := 1
	for _, n := range nums {
		var ok bool
		if lcm, ok = CheckedLCM(lcm, n); !ok {
			return 0, ErrOverflow
		}
	}
	return lcm, nil
}

// SimplifyRatio reduces numerator/denominator by their GCD. A zero
// denominator with a zero numerator is the caller's problem.
func SimplifyRatio(numerator, denominator int) (int, int) {
	gcd := abs(GCD(numerator, denominator))
	if gcd == 0 {
		return numerator, denominator
	}
	return numerator / gcd, denominator / gcd
}
