// Package svgview draws layouts as SVG documents.
package svgview

import (
	"fmt"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
	"github.com/amterp/stacks/internal/model"
)

const (
	margin      = 16
	blockGap    = 28
	headHeight  = 30
	headGap     = 10
	chipPadding = 12
	chipStroke  = 4
	digitWidth  = 10
	timesWidth  = 28
	fontSize    = 16
)

// Write renders l as a standalone SVG document.
func Write(w io.Writer, l *model.Layout) {
	blocks := measure(l)

	width, height := margin*2, margin*2
	for i, b := range blocks {
		width = max(width, b.width+margin*2)
		height += b.height
		if i > 0 {
			height += blockGap
		}
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title(title(l))

	y := margin
	for i, b := range blocks {
		if i > 0 {
			y += blockGap
		}
		drawBlock(canvas, b, width, y)
		y += b.height
	}
	canvas.End()
}

type measured struct {
	block  model.Block
	cell   int
	width  int
	height int
	headW  int
}

func measure(l *model.Layout) []measured {
	if l == nil {
		return nil
	}
	out := make([]measured, 0, len(l.Blocks))
	for _, b := range l.Blocks {
		cell := pixels(b.Grid.CellSize)
		m := measured{block: b, cell: cell}
		switch {
		case b.Marker != nil:
			m.headW = chipWidth(b.Marker.Value)
		case b.Label != nil:
			m.headW = sideWidth(b.Label.Left) + timesWidth + sideWidth(b.Label.Right)
		}
		m.width = max(m.headW, b.Grid.Columns*cell)
		m.height = headHeight + headGap + b.Grid.Rows*cell
		out = append(out, m)
	}
	return out
}

func drawBlock(canvas *svg.SVG, m measured, canvasWidth, y int) {
	b := m.block
	headX := (canvasWidth - m.headW) / 2
	switch {
	case b.Marker != nil:
		drawChip(canvas, headX, y, b.Marker.Value, b.Marker.Colour)
	case b.Label != nil:
		x := drawSide(canvas, headX, y, b.Label.Left)
		canvas.Text(x+timesWidth/2, y+headHeight/2+fontSize/3, "×",
			fmt.Sprintf("text-anchor:middle;font-size:%dpx;font-family:sans-serif;fill:#374151", fontSize))
		drawSide(canvas, x+timesWidth, y, b.Label.Right)
	}

	gridW := b.Grid.Columns * m.cell
	gx := (canvasWidth - gridW) / 2
	gy := y + headHeight + headGap
	canvas.Gstyle(fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", b.Grid.Fill, model.ColourCellBorder))
	for r := 0; r < b.Grid.Rows; r++ {
		for c := 0; c < b.Grid.Columns; c++ {
			canvas.Rect(gx+c*m.cell, gy+r*m.cell, m.cell, m.cell)
		}
	}
	canvas.Gend()
}

// drawSide draws one operand of a label and returns the x just past it.
func drawSide(canvas *svg.SVG, x, y int, s model.LabelSide) int {
	if s.Prime {
		drawChip(canvas, x, y, s.Value, s.Colour)
		return x + chipWidth(s.Value)
	}
	w := sideWidth(s)
	canvas.Text(x+w/2, y+headHeight/2+fontSize/3, strconv.Itoa(s.Value),
		fmt.Sprintf("text-anchor:middle;font-size:%dpx;font-family:sans-serif;fill:#374151", fontSize))
	return x + w
}

func drawChip(canvas *svg.SVG, x, y, value int, colour model.Colour) {
	w := chipWidth(value)
	canvas.Roundrect(x+chipStroke/2, y+chipStroke/2, w-chipStroke, headHeight-chipStroke,
		headHeight/2, headHeight/2,
		fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d", colour, chipStroke))
	canvas.Text(x+w/2, y+headHeight/2+fontSize/3, strconv.Itoa(value),
		fmt.Sprintf("text-anchor:middle;font-size:%dpx;font-weight:bold;font-family:sans-serif;fill:%s", fontSize, colour))
}

func chipWidth(value int) int {
	return len(strconv.Itoa(value))*digitWidth + chipPadding*2 + chipStroke
}

func sideWidth(s model.LabelSide) int {
	if s.Prime {
		return chipWidth(s.Value)
	}
	return len(strconv.Itoa(s.Value)) * digitWidth
}

// pixels rounds a cell size to whole pixels, never below one.
func pixels(size float64) int {
	return max(1, int(math.Round(size)))
}

func title(l *model.Layout) string {
	if l == nil {
		return "stacks"
	}
	if l.Mode == model.ModePrime {
		return fmt.Sprintf("%d is prime", l.Number)
	}
	return fmt.Sprintf("Factor pairs of %d", l.Number)
}
