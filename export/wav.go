// SPDX-License-Identifier: EPL-2.0

package export

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Nannigalaxy/audio-preprocessing/dataset"
	"github.com/Nannigalaxy/audio-preprocessing/formats/wav"
)

// WriteWAVs writes every record as 16-bit mono WAV under dir, one folder
// per class, named after the record ID. It returns the written paths.
func WriteWAVs(fsys afero.Fs, dir string, records []dataset.Record, sampleRate int) ([]string, error) {
	paths := make([]string, 0, len(records))
	for _, r := range records {
		folder := filepath.Join(dir, r.Class)
		if err := fsys.MkdirAll(folder, 0o755); err != nil {
			return paths, fmt.Errorf("creating %s: %w", folder, err)
		}

		path := filepath.Join(folder, r.ID.String()+".wav")
		if err := writeWAV(fsys, path, r.Samples, sampleRate); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func writeWAV(fsys afero.Fs, path string, samples []float64, sampleRate int) error {
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := wav.WriteMono16(f, sampleRate, samples); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return f.Close()
}
