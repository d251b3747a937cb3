// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/Nannigalaxy/audio-preprocessing/utils"
)

// Resampler streams src at a new sample rate using Catmull-Rom cubic
// interpolation. It works on interleaved samples and keeps the channel
// count. When downsampling, frames pass through a one-pole low-pass
// before interpolation.
//
// For N source frames the stream yields ceil(N*dst/src) frames, the
// first of which is the first source frame.
type Resampler struct {
	src      Source
	channels int
	srcRate  float64
	convRate float64 // rate the interpolation targets
	dstRate  float64 // rate reported to readers

	// window[0] = t-1, window[1] = t0, window[2] = t+1, window[3] = t+2
	window   [4][]float32
	filled   [4]bool
	base     int // source index held in window[1]
	produced int
	primed   bool
	eof      bool

	frame []float32

	lowpass  bool
	alpha    float32
	state    []float32
	warmedUp bool
}

// NewResampler converts src to dstRate Hz. A non-positive rate yields a
// stream whose reads fail with ErrInvalidRate.
func NewResampler(src Source, dstRate int) *Resampler {
	return newResampler(src, float64(dstRate))
}

// NewScaledResampler stretches src so that it produces scale times as many
// frames, reporting the source's own sample rate. This is the resampling
// step of a pitch shift, where the target rate is fractional.
func NewScaledResampler(src Source, scale float64) *Resampler {
	r := newResampler(src, float64(src.SampleRate())*scale)
	r.dstRate = float64(src.SampleRate())
	return r
}

func newResampler(src Source, dstRate float64) *Resampler {
	channels := src.Channels()
	srcRate := float64(src.SampleRate())

	r := &Resampler{
		src:      src,
		channels: channels,
		srcRate:  srcRate,
		convRate: dstRate,
		dstRate:  dstRate,
		frame:    make([]float32, channels),
		lowpass:  srcRate > dstRate,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(math.Round(r.dstRate)) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// pull reads one source frame into dst. It reports false once the source
// is exhausted.
func (r *Resampler) pull(dst []float32) (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.frame)
	switch {
	case errors.Is(err, io.EOF):
		r.eof = true
	case err != nil:
		return false, fmt.Errorf("%w", err)
	}
	if n < r.channels {
		r.eof = true
		return false, nil
	}

	copy(dst, r.frame)
	if r.lowpass {
		if !r.warmedUp {
			copy(r.state, dst)
			r.warmedUp = true
		}
		for c := range dst {
			r.state[c] = r.alpha*dst[c] + (1-r.alpha)*r.state[c]
			dst[c] = r.state[c]
		}
	}

	return true, nil
}

// prime fills the window so that window[1] holds the first source frame.
// The frame before it is a copy of the first one.
func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.pull(r.window[1])
	if err != nil || !ok {
		return err
	}
	r.filled[1] = true
	copy(r.window[0], r.window[1])
	r.filled[0] = true

	for i := 2; i < len(r.window); i++ {
		ok, err := r.pull(r.window[i])
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		r.filled[i] = true
	}

	return nil
}

// advance slides the window one source frame forward.
func (r *Resampler) advance() error {
	oldest := r.window[0]
	copy(r.window[:3], r.window[1:])
	r.window[3] = oldest
	copy(r.filled[:3], r.filled[1:])

	ok, err := r.pull(r.window[3])
	if err != nil {
		return err
	}
	r.filled[3] = ok

	return nil
}

// ReadSamples produces interleaved samples at the output rate.
// len(dst) must be a multiple of Channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.srcRate <= 0 || r.convRate <= 0 {
		return 0, ErrInvalidRate
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0
	for written < frames {
		// Computed from the output index so rounding never accumulates.
		pos := float64(r.produced) * r.srcRate / r.convRate
		idx := int(pos)
		for r.base < idx && r.filled[1] {
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
			r.base++
		}
		if !r.filled[1] {
			return written * r.channels, io.EOF
		}

		// Past the tail the last real frame is held.
		y2 := r.window[2]
		if !r.filled[2] {
			y2 = r.window[1]
		}
		y3 := r.window[3]
		if !r.filled[3] {
			y3 = y2
		}

		x := float32(pos - float64(idx))
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], y2[c], y3[c], x)
		}

		written++
		r.produced++
	}

	return written * r.channels, nil
}
