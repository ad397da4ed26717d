package policy

import "github.com/amterp/stacks/internal/model"

// PrimeColour pairs a prime with its dedicated colour.
type PrimeColour struct {
	Prime  int          `json:"prime" yaml:"prime"`
	Colour model.Colour `json:"colour" yaml:"colour"`
}

// Palette describes every colour and size the policy can produce.
type Palette struct {
	Primes        []PrimeColour `json:"primes" yaml:"primes"`
	FallbackPrime model.Colour  `json:"fallback_prime" yaml:"fallback_prime"`
	Neutral       model.Colour  `json:"neutral" yaml:"neutral"`
	CellBorder    model.Colour  `json:"cell_border" yaml:"cell_border"`
	BaseCellSize  float64       `json:"base_cell_size" yaml:"base_cell_size"`
	Bands         []Band        `json:"bands" yaml:"bands"`
}

// Palette returns the legend for this policy.
func (p Policy) Palette() Palette {
	primes := model.KnownPrimes()
	entries := make([]PrimeColour, len(primes))
	for i, prime := range primes {
		entries[i] = PrimeColour{Prime: prime, Colour: model.ColourForPrime(prime)}
	}
	return Palette{
		Primes:        entries,
		FallbackPrime: model.ColourFallbackPrime,
		Neutral:       model.ColourNeutral,
		CellBorder:    model.ColourCellBorder,
		BaseCellSize:  p.BaseCellSize,
		Bands:         p.Bands(),
	}
}
