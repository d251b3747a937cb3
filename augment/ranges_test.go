// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nannigalaxy/audio-preprocessing/rng"
)

// fixed always draws the same index and records the bounds asked for.
type fixed struct {
	value  int
	bounds []int
}

func (f *fixed) IntN(n int) int {
	f.bounds = append(f.bounds, n)
	return min(f.value, n-1)
}

func TestRangeDraw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		r         Range
		value     int
		wantBound int
		want      float64
	}{
		{"shift low", Range{0.01, 0.50, 0.01}, 0, 50, 0.01},
		{"shift high", Range{0.01, 0.50, 0.01}, 49, 50, 0.50},
		{"pitch low", Range{-3, 3, 0.1}, 0, 61, -3},
		{"pitch middle", Range{-3, 3, 0.1}, 30, 61, 0},
		{"speed high", Range{0.7, 1.3, 0.1}, 6, 7, 1.3},
		{"voice", Range{0.60, 1.00, 0.01}, 40, 41, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &fixed{value: tt.value}
			assert.InDelta(t, tt.want, tt.r.Draw(src), 1e-9)
			assert.Equal(t, []int{tt.wantBound}, src.bounds)
		})
	}
}

func TestRangeDrawSinglePoint(t *testing.T) {
	t.Parallel()

	src := &fixed{}
	assert.InDelta(t, 0.5, Range{0.5, 0.5, 0.1}.Draw(src), 1e-12)
	assert.Equal(t, 0.5, Range{0.5, 0.9, 0}.Draw(src))
	assert.Equal(t, []int{1}, src.bounds)
}

func TestRangeDrawStaysOnGrid(t *testing.T) {
	t.Parallel()

	r := rng.New(5)
	g := Range{0.1, 0.4, 0.01}
	for range 500 {
		v := g.Draw(r)
		assert.GreaterOrEqual(t, v, 0.1-1e-9)
		assert.LessOrEqual(t, v, 0.4+1e-9)
		assert.InDelta(t, math.Round(v*100), v*100, 1e-6)
	}
}

func TestRangeValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Range{0, 1, 0.5}.Validate())
	assert.ErrorIs(t, Range{1, 0, 0.5}.Validate(), ErrInvalidRange)
	assert.ErrorIs(t, Range{0, 1, 0}.Validate(), ErrInvalidRange)
	assert.ErrorIs(t, Range{math.NaN(), 1, 0.1}.Validate(), ErrInvalidRange)

	assert.NoError(t, DefaultRanges().Validate())

	ranges := DefaultRanges()
	ranges.Speed.Min = 0
	assert.ErrorIs(t, ranges.Validate(), ErrInvalidRange)
}
