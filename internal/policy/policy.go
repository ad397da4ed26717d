// Package policy maps column counts to cell sizes and fill colours.
package policy

import (
	"math"

	stackserr "github.com/amterp/stacks/internal/errors"
	"github.com/amterp/stacks/internal/model"
	"github.com/amterp/stacks/internal/number"
)

// ScrollThreshold is the column count from which a grid is flagged as
// possibly needing horizontal scroll.
const ScrollThreshold = 10

// Band is one step of the cell-size function. MaxColumns of 0 means unbounded.
type Band struct {
	MinColumns int     `json:"min_columns" yaml:"min_columns"`
	MaxColumns int     `json:"max_columns,omitempty" yaml:"max_columns,omitempty"`
	Scale      float64 `json:"scale" yaml:"scale"`
}

// bands must stay sorted with non-increasing Scale.
var bands = []Band{
	{MinColumns: 0, MaxColumns: 8, Scale: 1},
	{MinColumns: 9, MaxColumns: 12, Scale: 0.75},
	{MinColumns: 13, MaxColumns: 20, Scale: 0.55},
	{MinColumns: 21, Scale: 0.4},
}

// Policy decides how large each unit square is and what colour a grid gets.
type Policy struct {
	BaseCellSize float64
}

// Default returns the policy with the standard base cell size.
func Default() Policy {
	return Policy{BaseCellSize: model.DefaultBaseCellSize}
}

// FromConfig builds a policy from the user's config.
func FromConfig(cfg *model.Config) Policy {
	if cfg == nil || cfg.BaseCellSize == 0 {
		return Default()
	}
	return Policy{BaseCellSize: cfg.BaseCellSize}
}

// Validate checks that the policy can produce positive cell sizes.
func (p Policy) Validate() error {
	if p.BaseCellSize <= 0 || math.IsNaN(p.BaseCellSize) || math.IsInf(p.BaseCellSize, 0) {
		return stackserr.InvalidField("base_cell_size", "must be a positive number")
	}
	return nil
}

// Bands returns a copy of the cell-size bands.
func (p Policy) Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

// CellSize returns the side length of a unit square in a grid with the given
// number of columns. Wider grids get smaller squares so overall width stays
// bounded.
func (p Policy) CellSize(columns int) float64 {
	for _, b := range bands {
		if b.MaxColumns == 0 || columns <= b.MaxColumns {
			return p.BaseCellSize * b.Scale
		}
	}
	return p.BaseCellSize * bands[len(bands)-1].Scale
}

// GridColour returns the fill for a grid with the given column count: the
// prime's colour when the count is prime, the neutral colour otherwise.
// A composite count never inherits the colour of one of its factors.
func (p Policy) GridColour(columns int) model.Colour {
	if number.IsPrime(columns) {
		return model.ColourForPrime(columns)
	}
	return model.ColourNeutral
}

// ScrollHint reports whether a grid this wide should be flagged for scrolling.
func (p Policy) ScrollHint(columns int) bool {
	return columns >= ScrollThreshold
}
