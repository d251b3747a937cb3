// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/Nannigalaxy/audio-preprocessing/audio"
	"github.com/Nannigalaxy/audio-preprocessing/waveform"
)

// WaveformDecoder loads one file as mono samples at the working rate. It
// also reports the file's native sample rate.
type WaveformDecoder interface {
	DecodeWaveform(path string) ([]float64, int, error)
}

// FileDecoder decodes files from an afero filesystem with the decoder
// registered for their extension.
type FileDecoder struct {
	fs         afero.Fs
	registry   *audio.Registry
	sampleRate int
}

func NewFileDecoder(fsys afero.Fs, registry *audio.Registry, sampleRate int) *FileDecoder {
	return &FileDecoder{fs: fsys, registry: registry, sampleRate: sampleRate}
}

func (d *FileDecoder) DecodeWaveform(path string) ([]float64, int, error) {
	dec, ok := d.registry.ForPath(path)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := d.fs.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
	}
	native := src.SampleRate()

	samples, err := audio.ToMono(src, d.sampleRate)
	if err != nil {
		return nil, 0, fmt.Errorf("converting %s: %w", path, err)
	}

	return waveform.FromFloat32(samples), native, nil
}
