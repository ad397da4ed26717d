package svgview

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/amterp/stacks/internal/layout"
	"github.com/amterp/stacks/internal/model"
	"github.com/amterp/stacks/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderSVG(t *testing.T, n int) string {
	t.Helper()
	var buf bytes.Buffer
	Write(&buf, layout.NewRenderer(policy.Default()).Render(n))
	out := buf.String()
	assertWellFormed(t, out)
	return out
}

func assertWellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err, "svg is not well-formed:\n%s", doc)
	}
}

func TestWrite_Composite(t *testing.T) {
	out := renderSVG(t, 16)

	// 48 unit squares plus one chip per prime label side (2 in 2×8 and 8×2)
	assert.Equal(t, 48+2, strings.Count(out, "<rect"))
	assert.Contains(t, out, "fill:"+string(model.ColourForPrime(2))+";stroke:"+string(model.ColourCellBorder))
	assert.Equal(t, 2, strings.Count(out, "fill:"+string(model.ColourNeutral)))
	assert.Contains(t, out, "<title>Factor pairs of 16</title>")
	assert.Contains(t, out, "×")
}

func TestWrite_Prime(t *testing.T) {
	out := renderSVG(t, 17)

	assert.Equal(t, 17+1, strings.Count(out, "<rect"))
	assert.Contains(t, out, "stroke:"+string(model.ColourForPrime(17))+";stroke-width:4")
	assert.NotContains(t, out, "stroke:"+string(model.ColourFallbackPrime))
	assert.NotContains(t, out, "×")
	assert.Contains(t, out, ">17</text>")
}

func TestWrite_PrimeOutsideTable(t *testing.T) {
	out := renderSVG(t, 23)

	assert.Equal(t, 23+1, strings.Count(out, "<rect"))
	assert.Contains(t, out, "stroke:"+string(model.ColourFallbackPrime)+";stroke-width:4")
	assert.Contains(t, out, ">23</text>")
}

func TestWrite_Empty(t *testing.T) {
	out := renderSVG(t, 1)
	assert.NotContains(t, out, "<rect")
	assert.Contains(t, out, "<svg")
}

func TestWrite_CanvasFitsWidestGrid(t *testing.T) {
	l := layout.NewRenderer(policy.Default()).Render(34)
	blocks := measure(l)
	require.NotEmpty(t, blocks)

	widest := 0
	for _, b := range blocks {
		widest = max(widest, b.block.Grid.Columns*b.cell)
	}
	out := renderSVG(t, 34)
	assert.Contains(t, out, `width="`+strconv.Itoa(widest+margin*2)+`"`)
}

func TestPixels(t *testing.T) {
	assert.Equal(t, 26, pixels(26))
	assert.Equal(t, 20, pixels(19.5))
	assert.Equal(t, 10, pixels(10.4))
	assert.Equal(t, 1, pixels(0.1))
}
