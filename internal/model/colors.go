package model

// Colour is a CSS hex colour such as "#10B981".
type Colour string

// Fixed palette colours.
const (
	// ColourFallbackPrime tints any prime outside the known table.
	ColourFallbackPrime Colour = "#6366F1"
	// ColourNeutral fills grids whose column count is composite.
	ColourNeutral Colour = "#9CA3AF"
	// ColourCellBorder outlines every unit square.
	ColourCellBorder Colour = "#F1F5F9"
)

// knownPrimes lists the primes with a dedicated colour, in ascending order.
var knownPrimes = [...]int{2, 3, 5, 7, 11, 13, 17, 19}

// KnownPrimes returns the primes that have a dedicated colour.
func KnownPrimes() []int {
	out := make([]int, len(knownPrimes))
	copy(out, knownPrimes[:])
	return out
}

// ColourForPrime returns the table colour for p, or ColourFallbackPrime for
// any value outside the table. Callers only pass primes; non-primes are not
// an error and simply get the fallback.
func ColourForPrime(p int) Colour {
	switch p {
	case 2:
		return "#10B981" // emerald
	case 3:
		return "#FBBF24" // amber
	case 5:
		return "#8B5CF6" // violet
	case 7:
		return "#0EA5E9" // sky
	case 11:
		return "#EF4444" // red
	case 13:
		return "#22D3EE" // cyan
	case 17:
		return "#EC4899" // pink
	case 19:
		return "#84CC16" // lime
	default:
		return ColourFallbackPrime
	}
}

// IsKnownPrime reports whether p has a dedicated table colour.
func IsKnownPrime(p int) bool {
	for _, k := range knownPrimes {
		if k == p {
			return true
		}
	}
	return false
}
