// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/Nannigalaxy/audio-preprocessing/audio"
	"github.com/Nannigalaxy/audio-preprocessing/rng"
	"github.com/Nannigalaxy/audio-preprocessing/spectral"
	"github.com/Nannigalaxy/audio-preprocessing/waveform"
)

const (
	stretchFFTSize = 2048
	stretchHop     = 512
)

// Direction is the way ShiftTime moves content.
type Direction int

const (
	// Left moves content earlier; the tail becomes silence.
	Left Direction = iota
	// Right moves content later; the head becomes silence.
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ShiftSamples moves w by n samples in dir. Samples pushed past the edge
// are dropped and the vacated region is zero.
func ShiftSamples(w []float64, n int, dir Direction) []float64 {
	out := make([]float64, len(w))
	n = min(max(n, 0), len(w))

	switch dir {
	case Right:
		copy(out[n:], w[:len(w)-n])
	default:
		copy(out[:len(w)-n], w[n:])
	}

	return out
}

// shiftLimit is the exclusive upper bound of a shift in samples.
func shiftLimit(sampleRate int, seconds float64) int {
	return max(int(math.Floor(float64(sampleRate)*seconds)), 0)
}

// ShiftTime shifts w in dir by a number of samples drawn uniformly from
// [0, floor(sampleRate*maxShiftSeconds)).
func ShiftTime(w []float64, sampleRate int, maxShiftSeconds float64, dir Direction, r rng.Source) []float64 {
	n := rng.Between(r, 0, shiftLimit(sampleRate, maxShiftSeconds))
	return ShiftSamples(w, n, dir)
}

// StretchSpeed plays w rate times faster without changing its pitch. The
// result holds round(len(w)/rate) samples.
func StretchSpeed(w []float64, rate float64) ([]float64, error) {
	if !(rate > 0) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}

	length := int(math.RoundToEven(float64(len(w)) / rate))
	if len(w) == 0 {
		return make([]float64, length), nil
	}

	window := spectral.Hann(stretchFFTSize)
	spec := spectral.STFT(w, window, stretchHop)
	out := spectral.ISTFT(spectral.PhaseVocoder(spec, rate, stretchHop), window, stretchHop, length)
	if !waveform.IsFinite(out) {
		return nil, ErrNonFinite
	}

	return out, nil
}

// ShiftPitch raises the pitch of w by semitones, which may be negative or
// fractional, keeping its duration.
func ShiftPitch(w []float64, sampleRate int, semitones float64) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidRate, sampleRate)
	}
	rate := math.Pow(2, -semitones/12)

	stretched, err := StretchSpeed(w, rate)
	if err != nil {
		return nil, err
	}

	src := audio.NewSliceSource(waveform.ToFloat32(stretched), sampleRate, 1)
	resampled, err := audio.ReadAll(audio.NewScaledResampler(src, rate))
	if err != nil {
		return nil, fmt.Errorf("resampling: %w", err)
	}

	out := waveform.Normalize(waveform.FromFloat32(resampled), len(w))
	if !waveform.IsFinite(out) {
		return nil, ErrNonFinite
	}

	return out, nil
}

// Mix returns voiceGain*voice + bgGain*bg.
func Mix(voice, bg []float64, voiceGain, bgGain float64) ([]float64, error) {
	if len(voice) != len(bg) {
		return nil, fmt.Errorf("%w: voice has %d samples, background %d", ErrShapeMismatch, len(voice), len(bg))
	}

	out := make([]float64, len(voice))
	floats.ScaleTo(out, voiceGain, voice)
	floats.AddScaled(out, bgGain, bg)
	if !waveform.IsFinite(out) {
		return nil, ErrNonFinite
	}

	return out, nil
}
