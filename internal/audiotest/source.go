// SPDX-License-Identifier: EPL-2.0

package audiotest

import "io"

// MockSource generates interleaved float32 audio on demand. It satisfies
// audio.Source without importing it, so every package can use it in tests.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	fn         func(frame, channel int) float32
	closed     bool
}

// NewMockSource returns a source of frames frames whose samples come from fn.
func NewMockSource(sampleRate, channels, frames int, fn func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		fn:         fn,
	}
}

// NewSilentSource is a MockSource of zeros.
func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

// NewConstantSource is a MockSource holding value on every channel.
func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

// NewSineSource is a MockSource playing the same sine tone on every channel.
func NewSineSource(sampleRate, channels, frames int, freq float64) *MockSource {
	tone := Sine(sampleRate, frames, freq, 1)
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(tone[frame])
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	remaining := m.frames - m.pos
	if remaining <= 0 {
		return 0, io.EOF
	}

	count := min(len(dst)/m.channels, remaining)
	for f := range count {
		for c := range m.channels {
			dst[f*m.channels+c] = m.fn(m.pos+f, c)
		}
	}
	m.pos += count

	if m.pos >= m.frames {
		return count * m.channels, io.EOF
	}

	return count * m.channels, nil
}
