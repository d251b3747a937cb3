// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// SliceSource serves an in-memory buffer of interleaved samples.
type SliceSource struct {
	samples    []float32
	sampleRate int
	channels   int
	pos        int
}

func NewSliceSource(samples []float32, sampleRate, channels int) *SliceSource {
	return &SliceSource{
		samples:    samples,
		sampleRate: sampleRate,
		channels:   max(channels, 1),
	}
}

func (s *SliceSource) SampleRate() int { return s.sampleRate }
func (s *SliceSource) Channels() int   { return s.channels }
func (s *SliceSource) BufSize() int    { return 4096 }
func (s *SliceSource) Close() error    { return nil }

func (s *SliceSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}

	whole := len(dst) - len(dst)%s.channels
	n := copy(dst[:whole], s.samples[s.pos:])
	s.pos += n
	if s.pos >= len(s.samples) {
		return n, io.EOF
	}

	return n, nil
}
