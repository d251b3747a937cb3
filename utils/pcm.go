// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// FloatToPCM16 converts a sample in [-1, 1] to signed 16-bit PCM.
// Out of range values are clamped.
func FloatToPCM16(x float64) int16 {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= 1:
		return math.MaxInt16
	case x <= -1:
		return -math.MaxInt16
	}

	return int16(x * math.MaxInt16)
}

// PCMScale returns the divisor that maps signed integer PCM of the given
// bit depth into [-1, 1). Unknown depths fall back to 16-bit.
func PCMScale(bitDepth int) float64 {
	switch bitDepth {
	case 8:
		return 1 << 7
	case 24:
		return 1 << 23
	case 32:
		return 1 << 31
	default:
		return 1 << 15
	}
}

// PCMToFloat32 converts integer PCM samples into dst using the scale for
// bitDepth. It returns the number of samples written.
func PCMToFloat32(dst []float32, src []int, bitDepth int) int {
	scale := PCMScale(bitDepth)
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float32(float64(src[i]) / scale)
	}

	return n
}
