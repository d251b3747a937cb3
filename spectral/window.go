// SPDX-License-Identifier: EPL-2.0

package spectral

import "math"

// Hann returns a periodic Hann window of length n, the variant suited to
// spectral analysis (w[0] = 0, w[n/2] = 1).
func Hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}

	return w
}

// PadReflect extends x by pad samples on both sides, mirroring about the
// edge samples without repeating them. Padding wider than the signal keeps
// reflecting back and forth. Signals shorter than two samples are padded
// with their single value, or zeros when empty.
func PadReflect(x []float64, pad int) []float64 {
	n := len(x)
	out := make([]float64, n+2*pad)

	switch n {
	case 0:
		return out
	case 1:
		for i := range out {
			out[i] = x[0]
		}
		return out
	}

	period := 2 * (n - 1)
	for i := range out {
		m := (i - pad) % period
		if m < 0 {
			m += period
		}
		if m >= n {
			m = period - m
		}
		out[i] = x[m]
	}

	return out
}

// windowSumSquare is the overlap-added squared window for frames frames,
// used to undo the window gain after synthesis.
func windowSumSquare(window []float64, frames, hop int) []float64 {
	nfft := len(window)
	out := make([]float64, nfft+hop*(frames-1))
	for t := range frames {
		start := t * hop
		for i, w := range window {
			out[start+i] += w * w
		}
	}

	return out
}
