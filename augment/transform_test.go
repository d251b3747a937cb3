// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nannigalaxy/audio-preprocessing/internal/audiotest"
	"github.com/Nannigalaxy/audio-preprocessing/rng"
	"github.com/Nannigalaxy/audio-preprocessing/waveform"
)

func TestShiftSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    int
		dir  Direction
		want []float64
	}{
		{"right", 2, Right, []float64{0, 0, 1, 2, 3}},
		{"left", 2, Left, []float64{3, 4, 5, 0, 0}},
		{"zero", 0, Right, []float64{1, 2, 3, 4, 5}},
		{"whole", 5, Left, []float64{0, 0, 0, 0, 0}},
		{"beyond", 9, Right, []float64{0, 0, 0, 0, 0}},
		{"negative", -1, Left, []float64{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := audiotest.Ramp(5)
			assert.Equal(t, tt.want, ShiftSamples(in, tt.n, tt.dir))
			assert.Equal(t, audiotest.Ramp(5), in)
		})
	}
}

func TestDirectionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "Direction(7)", Direction(7).String())
}

func TestShiftTimeEnergy(t *testing.T) {
	t.Parallel()

	r := rng.New(11)
	for i := range 200 {
		w := audiotest.Noise(uint64(i), 1+i*7, 1)
		dir := Direction(i % 2)

		out := ShiftTime(w, 1000, 0.5, dir, r)
		require.Len(t, out, len(w))
		assert.LessOrEqual(t, waveform.Energy(out), waveform.Energy(w)+1e-9)
	}
}

func TestShiftTimeBound(t *testing.T) {
	t.Parallel()

	r := rng.New(3)
	w := audiotest.Ramp(100)
	for range 100 {
		out := ShiftTime(w, 100, 0.1, Right, r)
		zeros := 0
		for zeros < len(out) && out[zeros] == 0 {
			zeros++
		}
		assert.Less(t, zeros, 10)
	}

	assert.Equal(t, w, ShiftTime(w, 100, 0, Left, r))
}

func TestStretchSpeedLength(t *testing.T) {
	t.Parallel()

	w := audiotest.Sine(16000, 8000, 440, 0.5)
	for _, rate := range []float64{0.7, 0.8, 1, 1.2, 1.3} {
		out, err := StretchSpeed(w, rate)
		require.NoError(t, err)
		assert.Len(t, out, int(math.RoundToEven(8000/rate)), "rate %v", rate)
		assert.True(t, waveform.IsFinite(out))
	}
}

func TestStretchSpeedIdentity(t *testing.T) {
	t.Parallel()

	w := audiotest.Sine(16000, 6000, 300, 0.5)

	out, err := StretchSpeed(w, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, w, out, 1e-6)
}

func TestStretchSpeedShortInput(t *testing.T) {
	t.Parallel()

	out, err := StretchSpeed([]float64{0.1, 0.2, 0.3}, 1.5)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = StretchSpeed(nil, 0.5)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestStretchSpeedInvalidRate(t *testing.T) {
	t.Parallel()

	for _, rate := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := StretchSpeed([]float64{1, 2}, rate)
		assert.ErrorIs(t, err, ErrInvalidRate)
	}
}

func TestShiftPitch(t *testing.T) {
	t.Parallel()

	w := audiotest.Sine(16000, 8000, 440, 0.5)
	for _, semitones := range []float64{-3, -1.5, 0.1, 2, 3} {
		out, err := ShiftPitch(w, 16000, semitones)
		require.NoError(t, err)
		assert.Len(t, out, len(w))
		assert.True(t, waveform.IsFinite(out))
		assert.Greater(t, waveform.Energy(out), 0.0)
	}
}

func TestShiftPitchZero(t *testing.T) {
	t.Parallel()

	w := audiotest.Sine(16000, 6000, 300, 0.5)

	out, err := ShiftPitch(w, 16000, 0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, w, out, 1e-4)
}

func TestShiftPitchInvalidRate(t *testing.T) {
	t.Parallel()

	_, err := ShiftPitch([]float64{1}, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestMix(t *testing.T) {
	t.Parallel()

	voice := []float64{1, -1, 0.5, 0}
	bg := []float64{0.2, 0.4, -0.6, 1}

	out, err := Mix(voice, bg, 0.8, 0.25)
	require.NoError(t, err)
	for i := range out {
		assert.InDelta(t, 0.8*voice[i]+0.25*bg[i], out[i], 1e-12)
	}
	assert.Equal(t, []float64{1, -1, 0.5, 0}, voice)

	_, err = Mix(voice, bg[:3], 1, 1)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Mix([]float64{math.Inf(1)}, []float64{0}, 1, 1)
	assert.ErrorIs(t, err, ErrNonFinite)
}
