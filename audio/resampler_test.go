// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/Nannigalaxy/audio-preprocessing/internal/audiotest"
)

func drain(t *testing.T, src Source, bufSize int) []float32 {
	t.Helper()

	buf := make([]float32, bufSize)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	resampler := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)

	if resampler.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", resampler.SampleRate())
	}
	if resampler.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", resampler.Channels())
	}
	if resampler.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", resampler.BufSize())
	}
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	ramp := audiotest.Ramp(300)
	src := audiotest.NewMockSource(8000, 1, len(ramp), func(frame, _ int) float32 {
		return float32(ramp[frame])
	})

	got := drain(t, NewResampler(src, 8000), 64)
	if len(got) != len(ramp) {
		t.Fatalf("len = %d, want %d", len(got), len(ramp))
	}
	for i := range got {
		if math.Abs(float64(got[i])-ramp[i]) > 1e-6 {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], ramp[i])
		}
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
		frames  int
		want    int
	}{
		{"44.1k to 16k", 44100, 16000, 44100, 16000},
		{"44.1k to 8k", 44100, 8000, 44100, 8000},
		{"8k to 16k", 8000, 16000, 8000, 16000},
		{"48k to 16k", 48000, 16000, 4800, 1600},
		{"rounds up", 3, 2, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, 1, tt.frames, 440)
			got := drain(t, NewResampler(src, tt.dstRate), 1024)
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestResampler_UpsampleInterpolates(t *testing.T) {
	t.Parallel()

	ramp := audiotest.Ramp(100)
	src := audiotest.NewMockSource(1000, 1, len(ramp), func(frame, _ int) float32 {
		return float32(ramp[frame])
	})

	got := drain(t, NewResampler(src, 2000), 256)
	if len(got) != 200 {
		t.Fatalf("len = %d, want 200", len(got))
	}

	// Even outputs land on source frames, odd ones between them.
	for i := 2; i < 190; i++ {
		want := ramp[i/2]
		if i%2 == 1 {
			want = (ramp[i/2] + ramp[i/2+1]) / 2
		}
		if math.Abs(float64(got[i])-want) > 1e-4 {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestResampler_ScaledStretchesLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scale float64
		want  int
	}{
		{0.5, 500},
		{2, 2000},
		{1.25, 1250},
	}

	for _, tt := range tests {
		src := audiotest.NewSineSource(16000, 1, 1000, 220)
		r := NewScaledResampler(src, tt.scale)
		if r.SampleRate() != 16000 {
			t.Errorf("scale %v: SampleRate() = %d, want source rate", tt.scale, r.SampleRate())
		}
		if got := len(drain(t, r, 333)); got != tt.want {
			t.Errorf("scale %v: len = %d, want %d", tt.scale, got, tt.want)
		}
	}
}

func TestResampler_StereoPreserved(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 4410, func(_, channel int) float32 {
		if channel == 0 {
			return 0.25
		}
		return -0.25
	})

	got := drain(t, NewResampler(src, 16000), 512)
	if len(got)%2 != 0 {
		t.Fatalf("odd sample count %d", len(got))
	}
	for i := 0; i < len(got); i += 2 {
		if math.Abs(float64(got[i]-0.25)) > 1e-5 || math.Abs(float64(got[i+1]+0.25)) > 1e-5 {
			t.Fatalf("frame %d = (%v, %v)", i/2, got[i], got[i+1])
		}
	}
}

func TestResampler_EOFIsSticky(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewConstantSource(8000, 1, 10, 0.5), 16000)
	drain(t, r, 64)

	for range 3 {
		n, err := r.ReadSamples(make([]float32, 16))
		if n != 0 || !errors.Is(err, io.EOF) {
			t.Fatalf("after EOF ReadSamples() = %d, %v", n, err)
		}
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 1, 0), 16000)
	n, err := r.ReadSamples(make([]float32, 16))
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = %d, %v, want 0, EOF", n, err)
	}
}

func TestResampler_Errors(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 2, 100), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("odd dst: err = %v, want ErrInvalidDstSize", err)
	}

	r = NewResampler(audiotest.NewSilentSource(8000, 1, 100), 0)
	if _, err := r.ReadSamples(make([]float32, 4)); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("zero rate: err = %v, want ErrInvalidRate", err)
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 10)
	if err := NewResampler(src, 16000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the source")
	}
}

func TestResampler_DownsampleAttenuatesNyquist(t *testing.T) {
	t.Parallel()

	// Alternating +-1 sits at the source Nyquist frequency.
	src := audiotest.NewMockSource(16000, 1, 1600, func(frame, _ int) float32 {
		if frame%2 == 0 {
			return 1
		}
		return -1
	})

	got := drain(t, NewResampler(src, 8000), 256)
	var peak float64
	for _, s := range got[10:] {
		peak = max(peak, math.Abs(float64(s)))
	}
	if peak >= 0.9 {
		t.Errorf("peak = %v, want attenuation below 0.9", peak)
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	buf := make([]float32, 4096)

	for b.Loop() {
		r := NewResampler(audiotest.NewSineSource(44100, 1, 44100, 440), 16000)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
