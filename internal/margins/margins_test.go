package margins

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestCompute_ZeroMarginPosition(t *testing.T) {
	m := Compute(DefaultSliders(), Letter)

	assert.InDelta(t, 0, m.Left, eps)
	assert.InDelta(t, 0, m.Right, eps)
	assert.InDelta(t, 0, m.Top, eps)
	assert.InDelta(t, 0, m.Bottom, eps)
}

func TestCompute_HalfPagePosition(t *testing.T) {
	m := Compute(Sliders{Top: 1, Left: 1, Bottom: 0, Right: 0}, Letter)

	assert.InDelta(t, 4.25, m.Left, eps)
	assert.InDelta(t, 4.25, m.Right, eps)
	assert.InDelta(t, 5.5, m.Top, eps)
	assert.InDelta(t, 5.5, m.Bottom, eps)
}

func TestCompute_LiteralExtremes(t *testing.T) {
	tests := []struct {
		name    string
		sliders Sliders
		want    Margins
	}{
		{
			name:    "all zero",
			sliders: Sliders{},
			want:    Margins{Left: 0, Top: 0, Bottom: 5.5, Right: 4.25},
		},
		{
			name:    "all one",
			sliders: Sliders{Top: 1, Left: 1, Bottom: 1, Right: 1},
			want:    Margins{Left: 4.25, Top: 5.5, Bottom: 0, Right: 0},
		},
		{
			name:    "quarter",
			sliders: Sliders{Top: 0.25, Left: 0.5, Bottom: 0.75, Right: 0.9},
			want:    Margins{Left: 2.125, Top: 1.375, Bottom: 1.375, Right: 0.425},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.sliders, Letter)
			assert.InDelta(t, tt.want.Left, got.Left, eps)
			assert.InDelta(t, tt.want.Right, got.Right, eps)
			assert.InDelta(t, tt.want.Top, got.Top, eps)
			assert.InDelta(t, tt.want.Bottom, got.Bottom, eps)
		})
	}
}

func TestCompute_Monotonic(t *testing.T) {
	prev := Compute(Sliders{}, Letter)
	for i := 1; i <= 100; i++ {
		v := float64(i) / 100
		cur := Compute(Sliders{Top: v, Left: v, Bottom: v, Right: v}, Letter)

		assert.GreaterOrEqual(t, cur.Top, prev.Top)
		assert.GreaterOrEqual(t, cur.Left, prev.Left)
		assert.LessOrEqual(t, cur.Bottom, prev.Bottom)
		assert.LessOrEqual(t, cur.Right, prev.Right)
		prev = cur
	}
}

func TestCompute_UsesPageSize(t *testing.T) {
	a4 := PageSizeFromPoints(595, 842)
	m := Compute(Sliders{Top: 1, Left: 1}, a4)

	assert.InDelta(t, 595.0/72/2, m.Left, eps)
	assert.InDelta(t, 842.0/72/2, m.Top, eps)
}

func TestSliders_Validate(t *testing.T) {
	require.NoError(t, DefaultSliders().Validate())
	require.NoError(t, Sliders{Top: 1, Left: 1}.Validate())

	err := Sliders{Top: 1.2}.Validate()
	require.ErrorIs(t, err, ErrSliderOutOfRange)
	assert.Contains(t, err.Error(), "top")

	err = Sliders{Right: math.NaN()}.Validate()
	require.ErrorIs(t, err, ErrSliderOutOfRange)
	assert.Contains(t, err.Error(), "right")
}

func TestSliders_ClampAndQuantize(t *testing.T) {
	s := Sliders{Top: -0.5, Left: 1.7, Bottom: math.NaN(), Right: 0.456}.Clamp()
	assert.Equal(t, Sliders{Top: 0, Left: 1, Bottom: 0, Right: 0.456}, s)

	q := Sliders{Top: 0.123, Left: 0.996, Bottom: 0.5, Right: 0.456}.Quantize()
	assert.InDelta(t, 0.12, q.Top, eps)
	assert.InDelta(t, 1.0, q.Left, eps)
	assert.InDelta(t, 0.5, q.Bottom, eps)
	assert.InDelta(t, 0.46, q.Right, eps)
}

func TestComputeGuides(t *testing.T) {
	g := ComputeGuides(DefaultSliders(), 464, 600)

	assert.InDelta(t, 0, g.Top, eps)
	assert.InDelta(t, 0, g.Left, eps)
	assert.InDelta(t, 600, g.Bottom, eps)
	assert.InDelta(t, 464, g.Right, eps)

	g = ComputeGuides(Sliders{Top: 1, Left: 1}, 464, 600)
	assert.InDelta(t, 293, g.Top, eps)
	assert.InDelta(t, 225, g.Left, eps)
	assert.InDelta(t, 312, g.Bottom, eps)
	assert.InDelta(t, 244, g.Right, eps)
}
