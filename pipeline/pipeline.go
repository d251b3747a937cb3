// SPDX-License-Identifier: EPL-2.0

// Package pipeline runs dataset preparation end to end: load the class
// folders and background pool, synthesize augmented variants, and extract
// MFCC features for every record.
package pipeline

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/Nannigalaxy/audio-preprocessing/augment"
	"github.com/Nannigalaxy/audio-preprocessing/background"
	"github.com/Nannigalaxy/audio-preprocessing/dataset"
	"github.com/Nannigalaxy/audio-preprocessing/feature"
	"github.com/Nannigalaxy/audio-preprocessing/rng"
	"github.com/Nannigalaxy/audio-preprocessing/waveform"
)

type Config struct {
	SampleRate        int
	DurationSeconds   float64
	PerClassLimit     int
	IncludeBackground bool
	Workers           int

	// Augment enables variant synthesis. Without it only the clean
	// records are emitted.
	Augment           bool
	RandomFactor      int
	AugmentBackground bool
	Ranges            augment.Ranges

	Feature feature.Config
}

// DefaultConfig mirrors the reference preparation run: two seconds at
// 16 kHz, background class on, up to two variants per record.
func DefaultConfig() Config {
	const sampleRate = 16000

	return Config{
		SampleRate:        sampleRate,
		DurationSeconds:   2,
		IncludeBackground: true,
		Workers:           4,
		Augment:           true,
		RandomFactor:      3,
		AugmentBackground: true,
		Ranges:            augment.DefaultRanges(),
		Feature:           feature.DefaultConfig(sampleRate),
	}
}

// MaxLength is the length in samples every record is normalized to.
func (c Config) MaxLength() int {
	return int(math.Round(float64(c.SampleRate) * c.DurationSeconds))
}

func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	case !(c.DurationSeconds > 0) || c.MaxLength() <= 0:
		return fmt.Errorf("%w: duration %v", ErrInvalidConfig, c.DurationSeconds)
	case c.PerClassLimit < 0:
		return fmt.Errorf("%w: per class limit %d", ErrInvalidConfig, c.PerClassLimit)
	}

	if c.Augment {
		if err := c.synthesis().Validate(); err != nil {
			return err
		}
	}

	return c.extraction().Validate()
}

func (c Config) synthesis() augment.Config {
	return augment.Config{
		SampleRate:        c.SampleRate,
		MaxLength:         c.MaxLength(),
		RandomFactor:      c.RandomFactor,
		AugmentBackground: c.AugmentBackground,
		Ranges:            c.Ranges,
	}
}

func (c Config) extraction() feature.Config {
	fc := c.Feature
	fc.SampleRate = c.SampleRate
	return fc
}

// Result is the prepared dataset.
type Result struct {
	Classes dataset.Classes
	// Records are the emitted records, each clean record followed by its
	// variants.
	Records []dataset.Record
	Tensor  feature.Tensor
	// Labels is parallel to Records and to Tensor.Matrices.
	Labels []int
	Stats  augment.Stats
}

// ClassSummary counts the records of one class.
type ClassSummary struct {
	Class     string `yaml:"class"`
	Label     int    `yaml:"label"`
	Originals int    `yaml:"originals"`
	Augmented int    `yaml:"augmented"`
}

// Summary counts records per label, in label order.
func (r *Result) Summary() []ClassSummary {
	out := make([]ClassSummary, r.Classes.Len())
	for label, name := range r.Classes.Names() {
		out[label] = ClassSummary{Class: name, Label: label}
	}
	for _, rec := range r.Records {
		if rec.Label < 0 || rec.Label >= len(out) {
			continue
		}
		if rec.IsAugmented() {
			out[rec.Label].Augmented++
		} else {
			out[rec.Label].Originals++
		}
	}

	return out
}

type Pipeline struct {
	cfg     Config
	catalog dataset.Catalog
	decoder dataset.WaveformDecoder
	rng     rng.Source
	log     *zap.Logger
}

// New validates cfg. Every random draw of a run comes from r.
func New(cfg Config, catalog dataset.Catalog, decoder dataset.WaveformDecoder, r rng.Source, logger *zap.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		cfg:     cfg,
		catalog: catalog,
		decoder: decoder,
		rng:     r,
		log:     logger,
	}, nil
}

// Run prepares the dataset. The background pool is loaded, and must not
// be empty, whenever the background class or augmentation is enabled.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	log := p.log.With(zap.String("component", "pipeline"))
	loader := dataset.NewLoader(p.catalog, p.decoder, dataset.LoaderConfig{
		MaxLength:         p.cfg.MaxLength(),
		PerClassLimit:     p.cfg.PerClassLimit,
		IncludeBackground: p.cfg.IncludeBackground,
	}, p.log)

	var pool *background.Pool
	if p.cfg.IncludeBackground || p.cfg.Augment {
		var err error
		if pool, err = loader.Background(); err != nil {
			return nil, fmt.Errorf("loading background pool: %w", err)
		}
	}

	classes, raw, err := loader.Load(ctx, pool)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	log.Info("dataset loaded", zap.Int("classes", classes.Len()), zap.Int("records", len(raw)))

	records, stats, err := p.synthesize(ctx, pool, raw)
	if err != nil {
		return nil, fmt.Errorf("synthesizing: %w", err)
	}

	extractor, err := feature.New(p.cfg.extraction())
	if err != nil {
		return nil, err
	}
	tensor, labels, err := extractor.ExtractRecords(ctx, records, p.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("extracting features: %w", err)
	}

	shape := tensor.Shape()
	log.Info("features extracted",
		zap.Int("records", shape[0]),
		zap.Int("coefficients", shape[1]),
		zap.Int("frames", shape[2]))

	return &Result{
		Classes: classes,
		Records: records,
		Tensor:  tensor,
		Labels:  labels,
		Stats:   stats,
	}, nil
}

func (p *Pipeline) synthesize(ctx context.Context, pool *background.Pool, raw []dataset.Record) ([]dataset.Record, augment.Stats, error) {
	if !p.cfg.Augment {
		out := make([]dataset.Record, len(raw))
		for i, r := range raw {
			r.Samples = waveform.Normalize(r.Samples, p.cfg.MaxLength())
			out[i] = r
		}
		return out, augment.Stats{Clean: len(out)}, nil
	}

	synth, err := augment.New(p.cfg.synthesis(), pool, p.rng, p.log)
	if err != nil {
		return nil, augment.Stats{}, err
	}

	return synth.Synthesize(ctx, raw)
}
