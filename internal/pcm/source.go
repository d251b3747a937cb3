// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer decoders to audio.Source.
package pcm

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/Nannigalaxy/audio-preprocessing/utils"
)

const defaultBufSize = 4096

// Reader is the part of the go-audio wav and aiff decoders a Source needs.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source streams integer PCM from a Reader as float32 in [-1, 1).
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	bitDepth   int
	bias       int
	intBuf     *goaudio.IntBuffer
}

// NewSource wraps dec. Unsigned samples (8-bit WAV) are re-centered
// around zero before scaling.
func NewSource(dec Reader, bitDepth int, unsigned bool) *Source {
	format := dec.Format()
	s := &Source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   max(format.NumChannels, 1),
		bitDepth:   bitDepth,
	}
	if unsigned {
		s.bias = 1 << (bitDepth - 1)
	}

	return s
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}

	return defaultBufSize
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.dec.Format(),
			SourceBitDepth: s.bitDepth,
		}
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	data := s.intBuf.Data[:n]
	if s.bias != 0 {
		for i := range data {
			data[i] -= s.bias
		}
	}
	utils.PCMToFloat32(dst, data, s.bitDepth)

	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}

	return n, err
}

// Seekable returns r when it can seek, otherwise buffers it in memory.
// The go-audio decoders need to seek over chunk headers.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return bytes.NewReader(data), nil
}
