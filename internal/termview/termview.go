// Package termview draws layouts for the terminal with lipgloss.
package termview

import (
	"fmt"
	"strings"

	"github.com/amterp/stacks/internal/model"
	"github.com/amterp/stacks/internal/number"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Options tune terminal output.
type Options struct {
	// Width clips rows of scroll-hinted grids. Zero disables clipping.
	Width int
	// BaseCellSize is the policy's base size; glyph width is derived from
	// each grid's cell size relative to it.
	BaseCellSize float64
}

var (
	colorMuted = lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"}
	styleMuted = lipgloss.NewStyle().Foreground(colorMuted)
	styleBold  = lipgloss.NewStyle().Bold(true)
)

var printer = message.NewPrinter(language.English)

// FormatNumber renders n with digit grouping, e.g. 1,000,003.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// Render draws the whole layout: a summary line followed by each block.
func Render(l *model.Layout, opts Options) string {
	if l == nil {
		return ""
	}
	var sections []string
	sections = append(sections, Summary(l))
	if l.IsEmpty() {
		return strings.Join(sections, "\n")
	}
	for _, b := range l.Blocks {
		sections = append(sections, renderBlock(b, opts))
	}
	return strings.Join(sections, "\n\n")
}

// Summary describes the layout in one line.
func Summary(l *model.Layout) string {
	n := styleBold.Render(FormatNumber(l.Number))
	switch {
	case l.Mode == model.ModePrime:
		return fmt.Sprintf("%s is prime", n)
	case l.IsEmpty():
		return fmt.Sprintf("%s has no factor pairs", n)
	default:
		pairs := "factor pairs"
		if len(l.Blocks) == 1 {
			pairs = "factor pair"
		}
		return fmt.Sprintf("%s = %s %s",
			n,
			number.FormatFactorization(l.PrimeFactors),
			styleMuted.Render(fmt.Sprintf("· %d %s", len(l.Blocks), pairs)))
	}
}

func renderBlock(b model.Block, opts Options) string {
	var head string
	switch {
	case b.Marker != nil:
		head = Chip(b.Marker.Value, b.Marker.Colour)
	case b.Label != nil:
		head = Label(*b.Label)
	}
	return lipgloss.JoinVertical(lipgloss.Left, head, Grid(b.Grid, opts))
}

// Chip renders a prime value inside a border tinted with its colour.
func Chip(value int, colour model.Colour) string {
	c := lipgloss.Color(string(colour))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Foreground(c).
		Bold(true).
		Padding(0, 1).
		Render(FormatNumber(value))
}

// Label renders "columns × rows", drawing prime sides as chips.
func Label(l model.FactorLabel) string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		side(l.Left),
		styleMuted.Render(" × "),
		side(l.Right),
	)
}

func side(s model.LabelSide) string {
	if s.Prime {
		return Chip(s.Value, s.Colour)
	}
	return FormatNumber(s.Value)
}

// Grid draws rows × columns unit squares in the grid's fill colour.
func Grid(g model.GridDescriptor, opts Options) string {
	row := strings.TrimRight(strings.Repeat(cellGlyph(g.CellSize, opts.BaseCellSize), g.Columns), " ")
	clipped := false
	if opts.Width > 0 && g.ScrollHint && runewidth.StringWidth(row) > opts.Width {
		row = runewidth.Truncate(row, opts.Width, "…")
		clipped = true
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(string(g.Fill)))
	rows := make([]string, g.Rows)
	for i := range rows {
		rows[i] = style.Render(row)
	}
	out := strings.Join(rows, "\n")
	if clipped {
		out += "\n" + styleMuted.Render(fmt.Sprintf("→ %d columns, clipped to fit", g.Columns))
	}
	return out
}

// cellGlyph maps a cell size onto terminal columns. Terminals can't scale
// glyphs, so the size bands collapse to three widths.
func cellGlyph(cellSize, base float64) string {
	if base <= 0 {
		base = model.DefaultBaseCellSize
	}
	ratio := cellSize / base
	switch {
	case ratio >= 0.75:
		return "██ "
	case ratio >= 0.5:
		return "█ "
	default:
		return "▪"
	}
}
