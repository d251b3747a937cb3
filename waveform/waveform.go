// SPDX-License-Identifier: EPL-2.0

// Package waveform holds helpers for mono float64 sample slices.
//
// Nothing here modifies its input; every function that returns a waveform
// returns a fresh slice.
package waveform

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Normalize returns a copy of w of length exactly n. Longer input is
// truncated to its first n samples and shorter input is right-padded with
// zeros. A negative n is treated as zero.
func Normalize(w []float64, n int) []float64 {
	n = max(n, 0)
	out := make([]float64, n)
	copy(out, w)

	return out
}

// Clone returns a copy of w.
func Clone(w []float64) []float64 {
	return Normalize(w, len(w))
}

// FromFloat32 widens decoder output.
func FromFloat32(s []float32) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}

	return out
}

// ToFloat32 narrows w for storage.
func ToFloat32(w []float64) []float32 {
	out := make([]float32, len(w))
	for i, v := range w {
		out[i] = float32(v)
	}

	return out
}

// Energy is the L1 norm of w, the sum of absolute sample values.
func Energy(w []float64) float64 {
	if len(w) == 0 {
		return 0
	}

	return floats.Norm(w, 1)
}

// IsFinite reports whether w holds no NaN or infinite samples.
func IsFinite(w []float64) bool {
	for _, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
