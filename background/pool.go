// SPDX-License-Identifier: EPL-2.0

// Package background keeps the noise clips mixed into augmented examples.
//
// A Pool is read-only after construction and may be shared between
// goroutines. Chunks and segments handed out are copies.
package background

import (
	"fmt"
	"path/filepath"

	"github.com/Nannigalaxy/audio-preprocessing/rng"
	"github.com/Nannigalaxy/audio-preprocessing/waveform"
)

// Decoder turns a file path into mono samples at the working rate.
type Decoder interface {
	DecodeWaveform(path string) ([]float64, int, error)
}

// Clip is one decoded background recording.
type Clip struct {
	Name    string
	Samples []float64
}

// Chunk is a window copied out of a clip.
type Chunk struct {
	Clip    string
	Offset  int
	Samples []float64
}

// Segment is one tile of a clip cut by Segments.
type Segment struct {
	Clip    string
	Index   int
	Offset  int
	Samples []float64
}

type Pool struct {
	clips []Clip
}

// New builds a pool from in-memory clips.
func New(clips []Clip) (*Pool, error) {
	if len(clips) == 0 {
		return nil, ErrEmptyPool
	}

	return &Pool{clips: append([]Clip(nil), clips...)}, nil
}

// Load decodes every path and builds a pool from the results. Clips are
// named after their file.
func Load(dec Decoder, paths []string) (*Pool, error) {
	if len(paths) == 0 {
		return nil, ErrEmptyPool
	}

	clips := make([]Clip, 0, len(paths))
	for _, path := range paths {
		samples, _, err := dec.DecodeWaveform(path)
		if err != nil {
			return nil, fmt.Errorf("loading background %s: %w", path, err)
		}
		clips = append(clips, Clip{Name: filepath.Base(path), Samples: samples})
	}

	return New(clips)
}

// Len is the number of clips.
func (p *Pool) Len() int { return len(p.clips) }

// Clips returns the pool contents. The sample slices are shared and must
// not be modified.
func (p *Pool) Clips() []Clip {
	return append([]Clip(nil), p.clips...)
}

// SampleChunk picks a clip uniformly among those holding at least n
// samples, then a start offset uniformly in [0, len-n), and returns a
// copy of the window. The clip index is drawn before the offset.
func (p *Pool) SampleChunk(r rng.Source, n int) (Chunk, error) {
	n = max(n, 0)

	eligible := make([]int, 0, len(p.clips))
	for i, c := range p.clips {
		if len(c.Samples) >= n {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return Chunk{}, fmt.Errorf("%w: need %d samples", ErrInsufficientLength, n)
	}

	clip := p.clips[eligible[r.IntN(len(eligible))]]
	offset := rng.Between(r, 0, len(clip.Samples)-n)

	return Chunk{
		Clip:    clip.Name,
		Offset:  offset,
		Samples: waveform.Clone(clip.Samples[offset : offset+n]),
	}, nil
}

// Segments tiles every clip, in pool order, into consecutive windows of n
// samples. A trailing partial window is kept at its natural length.
func (p *Pool) Segments(n int) []Segment {
	if n <= 0 {
		return nil
	}

	var out []Segment
	for _, c := range p.clips {
		for i, off := 0, 0; off < len(c.Samples); i, off = i+1, off+n {
			end := min(off+n, len(c.Samples))
			out = append(out, Segment{
				Clip:    c.Name,
				Index:   i,
				Offset:  off,
				Samples: waveform.Clone(c.Samples[off:end]),
			})
		}
	}

	return out
}
