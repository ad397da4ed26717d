// Package layout turns a number into the blocks that visualize its factor
// structure. Rendering is pure: the same number and policy always produce
// the same layout, and nothing is cached between calls.
package layout

import (
	"github.com/amterp/stacks/internal/model"
	"github.com/amterp/stacks/internal/number"
	"github.com/amterp/stacks/internal/policy"
)

// Renderer builds layouts under a fixed sizing and colour policy.
type Renderer struct {
	policy policy.Policy
}

// NewRenderer creates a renderer for the given policy.
func NewRenderer(p policy.Policy) *Renderer {
	return &Renderer{policy: p}
}

// Policy returns the renderer's policy.
func (r *Renderer) Policy() policy.Policy {
	return r.policy
}

// Render builds the layout for n. Primes get a single marker block; every
// other value gets one labelled block per factor pair. Values below 2 are not
// rejected here and come back as an empty composite layout.
func (r *Renderer) Render(n int) *model.Layout {
	if number.IsPrime(n) {
		return r.renderPrime(n)
	}
	return r.renderComposite(n)
}

func (r *Renderer) renderPrime(n int) *model.Layout {
	colour := model.ColourForPrime(n)
	return &model.Layout{
		Number:       n,
		Mode:         model.ModePrime,
		PrimeFactors: []int{n},
		Blocks: []model.Block{{
			Marker: &model.PrimeMarker{Value: n, Colour: colour},
			Grid: model.GridDescriptor{
				Columns:    n,
				Rows:       1,
				CellSize:   r.policy.CellSize(n),
				Fill:       colour,
				ScrollHint: r.policy.ScrollHint(n),
			},
		}},
	}
}

func (r *Renderer) renderComposite(n int) *model.Layout {
	pairs := number.FactorPairs(n)
	blocks := make([]model.Block, 0, len(pairs))
	for _, pair := range pairs {
		label := model.FactorLabel{
			Left:  labelSide(pair.Columns),
			Right: labelSide(pair.Rows),
		}
		blocks = append(blocks, model.Block{
			Label: &label,
			Grid: model.GridDescriptor{
				Columns:    pair.Columns,
				Rows:       pair.Rows,
				CellSize:   r.policy.CellSize(pair.Columns),
				Fill:       r.policy.GridColour(pair.Columns),
				ScrollHint: r.policy.ScrollHint(pair.Columns),
			},
		})
	}
	return &model.Layout{
		Number:       n,
		Mode:         model.ModeComposite,
		PrimeFactors: number.PrimeFactors(n),
		Blocks:       blocks,
	}
}

func labelSide(v int) model.LabelSide {
	if !number.IsPrime(v) {
		return model.LabelSide{Value: v}
	}
	return model.LabelSide{Value: v, Prime: true, Colour: model.ColourForPrime(v)}
}
