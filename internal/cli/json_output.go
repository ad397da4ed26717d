package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/amterp/stacks/internal/model"
	"github.com/amterp/stacks/internal/number"
	"github.com/amterp/stacks/internal/policy"
	"gopkg.in/yaml.v3"
)

// LayoutOutput wraps a layout for machine-readable output.
type LayoutOutput struct {
	Number        int                 `json:"number" yaml:"number"`
	Prime         bool                `json:"prime" yaml:"prime"`
	Factorization string              `json:"factorization,omitempty" yaml:"factorization,omitempty"`
	FactorPairs   []number.FactorPair `json:"factor_pairs" yaml:"factor_pairs"`
	Layout        *model.Layout       `json:"layout" yaml:"layout"`
}

// NewLayoutOutput creates a LayoutOutput from a layout.
// FactorPairs is always an array, never null.
func NewLayoutOutput(l *model.Layout) LayoutOutput {
	return LayoutOutput{
		Number:        l.Number,
		Prime:         l.Mode == model.ModePrime,
		Factorization: number.FormatFactorization(l.PrimeFactors),
		FactorPairs:   number.FactorPairs(l.Number),
		Layout:        l,
	}
}

// PaletteOutput wraps the palette for machine-readable output.
type PaletteOutput struct {
	Palette policy.Palette `json:"palette" yaml:"palette"`
}

func printJson(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func printYaml(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
