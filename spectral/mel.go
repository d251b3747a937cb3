// SPDX-License-Identifier: EPL-2.0

package spectral

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// HzToMel converts frequency to the HTK mel scale.
func HzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

// MelToHz inverts HzToMel.
func MelToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}

// MelFilterBank builds a bands × (nfft/2+1) matrix of triangular filters
// spaced evenly on the HTK mel scale between fmin and fmax. Each triangle
// is scaled by 2/(width in Hz) so every band has roughly unit area.
func MelFilterBank(sampleRate, nfft, bands int, fmin, fmax float64) *mat.Dense {
	bins := nfft/2 + 1

	fftFreqs := make([]float64, bins)
	floats.Span(fftFreqs, 0, float64(sampleRate)/2)

	melPoints := make([]float64, bands+2)
	floats.Span(melPoints, HzToMel(fmin), HzToMel(fmax))
	edges := make([]float64, len(melPoints))
	for i, m := range melPoints {
		edges[i] = MelToHz(m)
	}

	fb := mat.NewDense(bands, bins, nil)
	for b := range bands {
		lowWidth := edges[b+1] - edges[b]
		highWidth := edges[b+2] - edges[b+1]
		norm := 2 / (edges[b+2] - edges[b])

		for k, f := range fftFreqs {
			lower := (f - edges[b]) / lowWidth
			upper := (edges[b+2] - f) / highWidth
			if w := math.Min(lower, upper); w > 0 {
				fb.Set(b, k, w*norm)
			}
		}
	}

	return fb
}

// DCT returns the first rows rows of the orthonormal DCT-II matrix for
// vectors of length size.
func DCT(rows, size int) *mat.Dense {
	d := mat.NewDense(rows, size, nil)
	n := float64(size)
	for k := range rows {
		scale := math.Sqrt(2 / n)
		if k == 0 {
			scale = math.Sqrt(1 / n)
		}
		for i := range size {
			d.Set(k, i, scale*math.Cos(math.Pi*float64(k)*(2*float64(i)+1)/(2*n)))
		}
	}

	return d
}

// PowerToDB converts a power matrix to decibels relative to 1, flooring
// values at amin and clipping everything more than topDB below the peak.
// A non-positive topDB disables clipping. m is left untouched.
func PowerToDB(m mat.Matrix, amin, topDB float64) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 {
		return 10 * math.Log10(math.Max(amin, v))
	}, m)

	if topDB > 0 {
		floor := mat.Max(&out) - topDB
		out.Apply(func(_, _ int, v float64) float64 {
			return math.Max(v, floor)
		}, &out)
	}

	return &out
}
