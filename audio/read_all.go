// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads bounds how many (0, nil) reads ReadAll tolerates before
// treating the stream as finished.
const maxEmptyReads = 16

// ReadAll drains src and returns every interleaved sample it produced.
func ReadAll(src Source) ([]float32, error) {
	size := max(src.BufSize(), 1024)
	size -= size % max(src.Channels(), 1)
	buf := make([]float32, size)

	var out []float32
	empty := 0
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		switch {
		case errors.Is(err, io.EOF):
			return out, nil
		case err != nil:
			return nil, fmt.Errorf("%w", err)
		case n == 0:
			empty++
			if empty >= maxEmptyReads {
				return out, nil
			}
		default:
			empty = 0
		}
	}
}

// ToMono brings src to sampleRate, averages its channels and returns the
// whole signal. src is closed before returning.
func ToMono(src Source, sampleRate int) ([]float32, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidRate
	}

	var stream Source = src
	if src.SampleRate() != sampleRate {
		stream = NewResampler(stream, sampleRate)
	}
	stream = NewMonoMixer(stream)

	samples, err := ReadAll(stream)
	closeErr := stream.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, closeErr
	}

	return samples, nil
}
