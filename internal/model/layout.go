package model

import "fmt"

// Mode selects between the two top-level renderings.
type Mode string

const (
	// ModePrime renders a marker chip and a single-row grid.
	ModePrime Mode = "prime"
	// ModeComposite renders one labelled grid per factor pair.
	ModeComposite Mode = "composite"
)

// GridDescriptor fully determines one rendered rectangle of unit squares.
type GridDescriptor struct {
	Columns  int     `json:"columns" yaml:"columns"`
	Rows     int     `json:"rows" yaml:"rows"`
	CellSize float64 `json:"cell_size" yaml:"cell_size"`
	Fill     Colour  `json:"fill" yaml:"fill"`
	// ScrollHint marks grids wide enough that a viewer may need to scroll.
	// Presentation only; the grid data is unaffected.
	ScrollHint bool `json:"scroll_hint,omitempty" yaml:"scroll_hint,omitempty"`
}

// Cells returns the number of unit squares in the grid.
func (g GridDescriptor) Cells() int {
	return g.Columns * g.Rows
}

// Width returns the rendered width in cell-size units.
func (g GridDescriptor) Width() float64 {
	return float64(g.Columns) * g.CellSize
}

// Height returns the rendered height in cell-size units.
func (g GridDescriptor) Height() float64 {
	return float64(g.Rows) * g.CellSize
}

// LabelSide is one operand of a factor label. Prime sides are drawn as chips
// tinted with Colour; other sides are plain numerals and leave Colour empty.
type LabelSide struct {
	Value  int    `json:"value" yaml:"value"`
	Prime  bool   `json:"prime" yaml:"prime"`
	Colour Colour `json:"colour,omitempty" yaml:"colour,omitempty"`
}

// FactorLabel is the "columns × rows" caption above a composite grid.
type FactorLabel struct {
	Left  LabelSide `json:"left" yaml:"left"`
	Right LabelSide `json:"right" yaml:"right"`
}

func (l FactorLabel) String() string {
	return fmt.Sprintf("%d × %d", l.Left.Value, l.Right.Value)
}

// PrimeMarker is the standalone chip shown for a prime input.
type PrimeMarker struct {
	Value  int    `json:"value" yaml:"value"`
	Colour Colour `json:"colour" yaml:"colour"`
}

// Block is one visual unit of the layout. Composite blocks carry a Label,
// the prime block carries a Marker; never both.
type Block struct {
	Label  *FactorLabel   `json:"label,omitempty" yaml:"label,omitempty"`
	Marker *PrimeMarker   `json:"marker,omitempty" yaml:"marker,omitempty"`
	Grid   GridDescriptor `json:"grid" yaml:"grid"`
}

// Layout is the complete rendering of one number. It is rebuilt from
// scratch on every change and never persisted.
type Layout struct {
	Number       int     `json:"number" yaml:"number"`
	Mode         Mode    `json:"mode" yaml:"mode"`
	PrimeFactors []int   `json:"prime_factors" yaml:"prime_factors"`
	Blocks       []Block `json:"blocks" yaml:"blocks"`
}

// IsEmpty reports whether nothing would be drawn.
func (l *Layout) IsEmpty() bool {
	return l == nil || len(l.Blocks) == 0
}

// Grids returns the grid descriptors in display order.
func (l *Layout) Grids() []GridDescriptor {
	if l == nil {
		return nil
	}
	grids := make([]GridDescriptor, len(l.Blocks))
	for i, b := range l.Blocks {
		grids[i] = b.Grid
	}
	return grids
}

// LeadColour returns the fill of the first block, or the neutral colour
// when the layout is empty.
func (l *Layout) LeadColour() Colour {
	if l.IsEmpty() {
		return ColourNeutral
	}
	return l.Blocks[0].Grid.Fill
}
