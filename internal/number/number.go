// Package number implements the integer analysis behind the visualizer:
// primality by trial division and enumeration of factor pairs.
package number

import (
	"fmt"
	"sort"
)

// FactorPair is one way of arranging n unit squares into a rectangle.
// Columns × Rows always equals the analysed number.
type FactorPair struct {
	Columns int `json:"columns" yaml:"columns"`
	Rows    int `json:"rows" yaml:"rows"`
}

func (p FactorPair) String() string {
	return fmt.Sprintf("%d × %d", p.Columns, p.Rows)
}

// IsPrime reports whether n is prime. Values below 2 are never prime.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d <= n/d; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// FactorPairs returns every (columns, rows) arrangement of n with both sides >= 2,
// sorted ascending by columns. Each divisor appears exactly once as a column count.
// Primes and values below 4 yield an empty slice.
func FactorPairs(n int) []FactorPair {
	pairs := []FactorPair{}
	for d := 2; d <= n/d; d++ {
		if n%d != 0 {
			continue
		}
		q := n / d
		pairs = append(pairs, FactorPair{Columns: d, Rows: q})
		if d != q {
			pairs = append(pairs, FactorPair{Columns: q, Rows: d})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Columns < pairs[j].Columns
	})
	return pairs
}

// SmallestPrimeFactor returns the smallest prime dividing n, n itself when n is
// prime, and 0 for n < 2.
func SmallestPrimeFactor(n int) int {
	if n < 2 {
		return 0
	}
	for d := 2; d <= n/d; d++ {
		if n%d == 0 {
			return d
		}
	}
	return n
}

// PrimeFactors returns the prime factorization of n in ascending order,
// repeating each prime by its multiplicity.
func PrimeFactors(n int) []int {
	factors := []int{}
	for n >= 2 {
		p := SmallestPrimeFactor(n)
		factors = append(factors, p)
		n /= p
	}
	return factors
}
