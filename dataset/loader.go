// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/Nannigalaxy/audio-preprocessing/background"
)

// LoaderConfig controls how much of the catalog is read.
type LoaderConfig struct {
	// MaxLength is the tile size, in samples, for background records.
	MaxLength int
	// PerClassLimit caps files per class and background tiles. Zero
	// means unlimited.
	PerClassLimit int
	// IncludeBackground emits tiles of the background pool as label 0.
	IncludeBackground bool
}

// Loader reads raw records from a Catalog. Samples are returned at their
// decoded length; length normalization happens during synthesis.
type Loader struct {
	catalog Catalog
	decoder WaveformDecoder
	cfg     LoaderConfig
	log     *zap.Logger
}

func NewLoader(catalog Catalog, decoder WaveformDecoder, cfg LoaderConfig, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loader{
		catalog: catalog,
		decoder: decoder,
		cfg:     cfg,
		log:     logger.With(zap.String("component", "loader")),
	}
}

// Classes enumerates the class folders and builds the label table.
func (l *Loader) Classes() (Classes, error) {
	folders, err := l.catalog.ClassFolders()
	if err != nil {
		return Classes{}, err
	}
	if len(folders) == 0 {
		return Classes{}, ErrNoClasses
	}

	return NewClasses(folders), nil
}

// Background decodes the background folder into a pool.
func (l *Loader) Background() (*background.Pool, error) {
	paths, err := l.catalog.BackgroundFiles()
	if err != nil {
		return nil, err
	}

	pool, err := background.Load(l.decoder, paths)
	if err != nil {
		return nil, err
	}
	l.log.Info("background pool loaded", zap.Int("clips", pool.Len()))

	return pool, nil
}

// Load returns the label table and the raw records: background tiles
// first, when enabled, then every class in label order with its files
// sorted by name. pool may be nil when background records are disabled.
func (l *Loader) Load(ctx context.Context, pool *background.Pool) (Classes, []Record, error) {
	classes, err := l.Classes()
	if err != nil {
		return Classes{}, nil, err
	}

	var records []Record
	if l.cfg.IncludeBackground {
		if pool == nil {
			return Classes{}, nil, background.ErrEmptyPool
		}

		segments := limit(pool.Segments(l.cfg.MaxLength), l.cfg.PerClassLimit)
		for _, seg := range segments {
			source := fmt.Sprintf("%s/%s@%d", BackgroundClass, seg.Clip, seg.Offset)
			records = append(records, NewRecord(source, seg.Samples, BackgroundLabel, BackgroundClass, 0, nil))
		}
		l.log.Info("class loaded",
			zap.String("class", BackgroundClass),
			zap.Int("label", BackgroundLabel),
			zap.Int("records", len(segments)))
	}

	for i, folder := range classes.Folders() {
		if err := ctx.Err(); err != nil {
			return Classes{}, nil, err
		}

		files, err := l.catalog.Files(folder)
		if err != nil {
			return Classes{}, nil, err
		}
		files = limit(files, l.cfg.PerClassLimit)

		label := i + 1
		for _, path := range files {
			samples, _, err := l.decoder.DecodeWaveform(path)
			if err != nil {
				return Classes{}, nil, err
			}
			source := folder + "/" + filepath.Base(path)
			records = append(records, NewRecord(source, samples, label, folder, 0, nil))
		}
		l.log.Info("class loaded",
			zap.String("class", folder),
			zap.Int("label", label),
			zap.Int("records", len(files)))
	}

	again, err := l.catalog.ClassFolders()
	if err != nil {
		return Classes{}, nil, err
	}
	if !slices.Equal(again, classes.Folders()) {
		return Classes{}, nil, ErrClassListingChanged
	}

	return classes, records, nil
}

func limit[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}

	return s
}
