// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds fixtures shared by the package tests: synthetic
// waveforms, mock sources and in-memory WAV files.
package audiotest

import (
	"math"
	"math/rand/v2"
)

// Sine returns n samples of a sine tone.
func Sine(sampleRate, n int, freq, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}

	return out
}

// Noise returns n samples of uniform noise in [-amp, amp] from a fixed seed.
func Noise(seed uint64, n int, amp float64) []float64 {
	r := rand.New(rand.NewPCG(seed, seed+1))
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * (2*r.Float64() - 1)
	}

	return out
}

// Ramp returns 1, 2, ..., n as float64, handy for checking sample positions.
func Ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}

	return out
}

// PCM16 quantizes a waveform in [-1, 1] to 16-bit samples.
func PCM16(w []float64) []int16 {
	out := make([]int16, len(w))
	for i, v := range w {
		out[i] = int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
	}

	return out
}
