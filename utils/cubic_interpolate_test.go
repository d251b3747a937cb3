// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
		tolerance      float32
	}{
		{name: "start returns y1", y0: 0, y1: 1, y2: 2, y3: 3, x: 0, want: 1, tolerance: 1e-6},
		{name: "end returns y2", y0: 0, y1: 1, y2: 2, y3: 3, x: 1, want: 2, tolerance: 1e-6},
		{name: "linear ramp midpoint", y0: 0, y1: 1, y2: 2, y3: 3, x: 0.5, want: 1.5, tolerance: 1e-6},
		{name: "constant signal", y0: 0.25, y1: 0.25, y2: 0.25, y3: 0.25, x: 0.7, want: 0.25, tolerance: 1e-6},
		{name: "symmetric around zero", y0: -1, y1: -0.5, y2: 0.5, y3: 1, x: 0.5, want: 0, tolerance: 1e-6},
		{name: "silence", x: 0.5, want: 0, tolerance: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if diff := float32(math.Abs(float64(got - tt.want))); diff > tt.tolerance {
				t.Errorf("CubicInterpolate() = %v, want %v (diff %v)", got, tt.want, diff)
			}
		})
	}
}

func TestCubicInterpolate_StaysNearSegment(t *testing.T) {
	t.Parallel()

	y0, y1, y2, y3 := float32(1), float32(2), float32(3), float32(4)
	for x := float32(0); x <= 1; x += 0.1 {
		got := CubicInterpolate(y0, y1, y2, y3, x)
		if got < y1-0.5 || got > y2+0.5 {
			t.Errorf("x=%v: got %v, outside [%v, %v]", x, got, y1-0.5, y2+0.5)
		}
	}
}

func TestLerp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b, t, want float64
	}{
		{a: 0, b: 10, t: 0, want: 0},
		{a: 0, b: 10, t: 1, want: 10},
		{a: 2, b: 4, t: 0.25, want: 2.5},
		{a: -1, b: 1, t: 0.5, want: 0},
	}

	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestCubicInterpolate_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = CubicInterpolate(0.5, 1.0, 0.8, 0.3, 0.5)
	})
	if allocs > 0 {
		t.Errorf("CubicInterpolate allocated %v times, want 0", allocs)
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	out := make([]float32, 8000)

	b.ReportAllocs()
	for range b.N {
		for j := range out {
			out[j] = CubicInterpolate(0.1, 0.5, 0.3, -0.2, float32(j%100)/100)
		}
	}
}
