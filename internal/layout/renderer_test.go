package layout

import (
	"testing"

	"github.com/amterp/stacks/internal/model"
	"github.com/amterp/stacks/internal/number"
	"github.com/amterp/stacks/internal/policy"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer() *Renderer {
	return NewRenderer(policy.Default())
}

func TestRender_Sixteen(t *testing.T) {
	got := newTestRenderer().Render(16)

	require.Equal(t, model.ModeComposite, got.Mode)
	base := model.DefaultBaseCellSize
	want := []model.Block{
		{
			Label: &model.FactorLabel{
				Left:  model.LabelSide{Value: 2, Prime: true, Colour: model.ColourForPrime(2)},
				Right: model.LabelSide{Value: 8},
			},
			Grid: model.GridDescriptor{Columns: 2, Rows: 8, CellSize: base, Fill: model.ColourForPrime(2)},
		},
		{
			Label: &model.FactorLabel{
				Left:  model.LabelSide{Value: 4},
				Right: model.LabelSide{Value: 4},
			},
			Grid: model.GridDescriptor{Columns: 4, Rows: 4, CellSize: base, Fill: model.ColourNeutral},
		},
		{
			Label: &model.FactorLabel{
				Left:  model.LabelSide{Value: 8},
				Right: model.LabelSide{Value: 2, Prime: true, Colour: model.ColourForPrime(2)},
			},
			Grid: model.GridDescriptor{Columns: 8, Rows: 2, CellSize: base, Fill: model.ColourNeutral},
		},
	}
	if diff := cmp.Diff(want, got.Blocks); diff != "" {
		t.Errorf("Render(16) blocks mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{2, 2, 2, 2}, got.PrimeFactors)
}

func TestRender_SeventeenIsPrime(t *testing.T) {
	got := newTestRenderer().Render(17)

	require.Equal(t, model.ModePrime, got.Mode)
	require.Len(t, got.Blocks, 1)
	block := got.Blocks[0]
	assert.Nil(t, block.Label, "prime mode shows no factor label")
	require.NotNil(t, block.Marker)
	assert.Equal(t, 17, block.Marker.Value)

	want := model.GridDescriptor{
		Columns:    17,
		Rows:       1,
		CellSize:   policy.Default().CellSize(17),
		Fill:       model.ColourForPrime(17),
		ScrollHint: true,
	}
	if diff := cmp.Diff(want, block.Grid); diff != "" {
		t.Errorf("prime grid mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, block.Grid.Fill, block.Marker.Colour)
}

func TestRender_UnknownPrimeUsesFallback(t *testing.T) {
	got := newTestRenderer().Render(23)
	require.Equal(t, model.ModePrime, got.Mode)
	assert.Equal(t, model.ColourFallbackPrime, got.Blocks[0].Grid.Fill)
	assert.Equal(t, model.ColourFallbackPrime, got.Blocks[0].Marker.Colour)
}

func TestRender_Degenerate(t *testing.T) {
	r := newTestRenderer()
	for _, n := range []int{-5, 0, 1} {
		got := r.Render(n)
		assert.Equal(t, model.ModeComposite, got.Mode, "n=%d", n)
		assert.True(t, got.IsEmpty(), "n=%d", n)
		assert.Empty(t, got.PrimeFactors)
	}
}

func TestRender_CompositeInvariants(t *testing.T) {
	r := newTestRenderer()
	p := policy.Default()
	for n := 4; n <= 200; n++ {
		if number.IsPrime(n) {
			continue
		}
		got := r.Render(n)
		pairs := number.FactorPairs(n)
		require.Len(t, got.Blocks, len(pairs), "n=%d", n)
		for i, block := range got.Blocks {
			require.NotNil(t, block.Label, "n=%d", n)
			assert.Nil(t, block.Marker, "n=%d", n)
			assert.Equal(t, pairs[i].Columns, block.Grid.Columns)
			assert.Equal(t, pairs[i].Rows, block.Grid.Rows)
			assert.Equal(t, n, block.Grid.Cells())
			assert.Equal(t, p.CellSize(block.Grid.Columns), block.Grid.CellSize)
			assert.Equal(t, block.Grid.Columns >= 10, block.Grid.ScrollHint)
			assert.Equal(t, number.IsPrime(block.Label.Left.Value), block.Label.Left.Prime)
			assert.Equal(t, number.IsPrime(block.Label.Right.Value), block.Label.Right.Prime)
			if !block.Label.Right.Prime {
				assert.Empty(t, block.Label.Right.Colour)
			}
		}
	}
}

func TestRender_IsDeterministic(t *testing.T) {
	r := newTestRenderer()
	a, b := r.Render(120), r.Render(120)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("renders differ:\n%s", diff)
	}
	a.Blocks[0].Grid.Rows = 999
	assert.NotEqual(t, 999, r.Render(120).Blocks[0].Grid.Rows)
}

func TestRender_CustomBaseSize(t *testing.T) {
	r := NewRenderer(policy.Policy{BaseCellSize: 10})
	got := r.Render(30)
	for _, b := range got.Blocks {
		assert.LessOrEqual(t, b.Grid.CellSize, 10.0)
	}
	assert.Equal(t, policy.Policy{BaseCellSize: 10}, r.Policy())
}
