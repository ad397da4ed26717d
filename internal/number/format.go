package number

import (
	"strconv"
	"strings"
)

// FormatFactorization renders prime factors compactly, grouping repeats as
// powers: [2 2 2 3] becomes "2^3 · 3". Returns "" for an empty slice.
func FormatFactorization(factors []int) string {
	var parts []string
	for i := 0; i < len(factors); {
		j := i
		for j < len(factors) && factors[j] == factors[i] {
			j++
		}
		part := strconv.Itoa(factors[i])
		if exp := j - i; exp > 1 {
			part += "^" + strconv.Itoa(exp)
		}
		parts = append(parts, part)
		i = j
	}
	return strings.Join(parts, " · ")
}
