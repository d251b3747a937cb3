// SPDX-License-Identifier: EPL-2.0

package export

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Nannigalaxy/audio-preprocessing/pipeline"
)

const (
	TableFile    = "features.parquet"
	ManifestFile = "manifest.yaml"
	WAVDir       = "wav"
)

type Options struct {
	Dir         string
	Parquet     bool
	Manifest    bool
	WAV         bool
	Compression string
	Seed        uint64
	Pipeline    pipeline.Config
}

// Write stores the enabled artifacts of res under opts.Dir and returns the
// written paths.
func Write(fsys afero.Fs, res *pipeline.Result, opts Options) ([]string, error) {
	if err := fsys.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", opts.Dir, err)
	}

	var written []string

	if opts.Parquet {
		rows, err := Rows(res)
		if err != nil {
			return written, err
		}

		p := filepath.Join(opts.Dir, TableFile)
		f, err := fsys.Create(p)
		if err != nil {
			return written, err
		}
		if err := WriteParquet(f, rows, opts.Compression); err != nil {
			f.Close()
			return written, fmt.Errorf("writing %s: %w", p, err)
		}
		if err := f.Close(); err != nil {
			return written, err
		}
		written = append(written, p)
	}

	if opts.Manifest {
		p := filepath.Join(opts.Dir, ManifestFile)
		f, err := fsys.Create(p)
		if err != nil {
			return written, err
		}
		if err := WriteManifest(f, NewManifest(res, opts.Seed, opts.Pipeline)); err != nil {
			f.Close()
			return written, fmt.Errorf("writing %s: %w", p, err)
		}
		if err := f.Close(); err != nil {
			return written, err
		}
		written = append(written, p)
	}

	if opts.WAV {
		paths, err := WriteWAVs(fsys, filepath.Join(opts.Dir, WAVDir), res.Records, opts.Pipeline.SampleRate)
		written = append(written, paths...)
		if err != nil {
			return written, err
		}
	}

	return written, nil
}
