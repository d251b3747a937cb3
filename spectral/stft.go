// SPDX-License-Identifier: EPL-2.0

package spectral

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/mat"

	"github.com/Nannigalaxy/audio-preprocessing/utils"
)

// Spectrogram is a frame-major complex STFT.
type Spectrogram [][]complex128

// Frames is the number of analysis frames.
func (s Spectrogram) Frames() int { return len(s) }

// Bins is the number of frequency bins per frame.
func (s Spectrogram) Bins() int {
	if len(s) == 0 {
		return 0
	}

	return len(s[0])
}

// FrameCount is the number of centered frames STFT produces for n samples.
func FrameCount(n, hop int) int {
	return 1 + n/hop
}

// STFT computes the centered short-time Fourier transform of x with a
// window of len(window) samples advanced by hop.
func STFT(x []float64, window []float64, hop int) Spectrogram {
	nfft := len(window)
	padded := PadReflect(x, nfft/2)
	frames := FrameCount(len(x), hop)
	bins := nfft/2 + 1

	spec := make(Spectrogram, frames)
	buf := make([]float64, nfft)
	for t := range spec {
		start := t * hop
		for i, w := range window {
			buf[i] = padded[start+i] * w
		}
		spec[t] = fft.FFTReal(buf)[:bins:bins]
	}

	return spec
}

// ISTFT inverts a centered STFT by weighted overlap-add, dividing out the
// summed squared window wherever it is not negligible. The result is
// trimmed or zero-padded to length samples.
func ISTFT(spec Spectrogram, window []float64, hop, length int) []float64 {
	nfft := len(window)
	frames := spec.Frames()
	if frames == 0 {
		return make([]float64, max(length, 0))
	}

	y := make([]float64, nfft+hop*(frames-1))
	full := make([]complex128, nfft)
	for t, bins := range spec {
		irfft(full, bins)
		start := t * hop
		for i, w := range window {
			y[start+i] += w * real(full[i])
		}
	}

	wss := windowSumSquare(window, frames, hop)
	for i, v := range wss {
		if v > tiny {
			y[i] /= v
		}
	}

	out := make([]float64, max(length, 0))
	start := nfft / 2
	if start < len(y) {
		copy(out, y[start:])
	}

	return out
}

// tiny is the smallest normal float32, the threshold below which the
// window normalization is skipped.
const tiny = 1.1754943508222875e-38

// irfft writes the inverse real FFT of the half spectrum bins into dst,
// which must hold 2*(len(bins)-1) values. The imaginary parts of the DC
// and Nyquist bins are ignored.
func irfft(dst []complex128, bins []complex128) {
	n := len(dst)
	half := n / 2
	for k := range dst {
		switch {
		case k == 0 || k == half:
			dst[k] = complex(real(bins[k]), 0)
		case k < half:
			dst[k] = bins[k]
		default:
			dst[k] = cmplx.Conj(bins[n-k])
		}
	}
	copy(dst, fft.IFFT(dst))
}

// Power returns |X|^2 as a bins × frames matrix.
func Power(spec Spectrogram) *mat.Dense {
	frames, bins := spec.Frames(), spec.Bins()
	out := mat.NewDense(max(bins, 1), max(frames, 1), nil)
	for t, frame := range spec {
		for k, v := range frame {
			re, im := real(v), imag(v)
			out.Set(k, t, re*re+im*im)
		}
	}

	return out
}

// PhaseVocoder time-scales spec by rate (rate > 1 is faster) while keeping
// the pitch. Magnitudes are interpolated linearly between neighbouring
// frames and phases are advanced by the measured instantaneous frequency.
func PhaseVocoder(spec Spectrogram, rate float64, hop int) Spectrogram {
	frames, bins := spec.Frames(), spec.Bins()
	if frames == 0 {
		return nil
	}
	nfft := 2 * (bins - 1)

	steps := int(math.Ceil(float64(frames) / rate))
	out := make(Spectrogram, 0, steps)

	advance := make([]float64, bins)
	acc := make([]float64, bins)
	for k := range bins {
		advance[k] = 2 * math.Pi * float64(hop) * float64(k) / float64(nfft)
		acc[k] = cmplx.Phase(spec[0][k])
	}

	zero := make([]complex128, bins)
	column := func(t int) []complex128 {
		if t < frames {
			return spec[t]
		}
		return zero
	}

	for i := range steps {
		step := float64(i) * rate
		t := int(step)
		alpha := step - float64(t)
		left, right := column(t), column(t+1)

		frame := make([]complex128, bins)
		for k := range bins {
			mag := utils.Lerp(cmplx.Abs(left[k]), cmplx.Abs(right[k]), alpha)
			frame[k] = cmplx.Rect(mag, acc[k])

			dphase := cmplx.Phase(right[k]) - cmplx.Phase(left[k]) - advance[k]
			dphase -= 2 * math.Pi * math.RoundToEven(dphase/(2*math.Pi))
			acc[k] += advance[k] + dphase
		}
		out = append(out, frame)
	}

	return out
}
