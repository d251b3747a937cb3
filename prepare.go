// SPDX-License-Identifier: EPL-2.0

package preprocess

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/Nannigalaxy/audio-preprocessing/augment"
	"github.com/Nannigalaxy/audio-preprocessing/background"
	"github.com/Nannigalaxy/audio-preprocessing/config"
	"github.com/Nannigalaxy/audio-preprocessing/dataset"
	"github.com/Nannigalaxy/audio-preprocessing/export"
	"github.com/Nannigalaxy/audio-preprocessing/formats"
	"github.com/Nannigalaxy/audio-preprocessing/pipeline"
	"github.com/Nannigalaxy/audio-preprocessing/rng"
)

type Options struct {
	// Fs holds the dataset and receives the output. Defaults to the OS
	// filesystem.
	Fs     afero.Fs
	Logger *zap.Logger
	// S3 replaces the client built from the output.s3 settings.
	S3 export.ObjectPutter
}

func (o Options) withDefaults() Options {
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return o
}

// Report is the outcome of Prepare.
type Report struct {
	Result *pipeline.Result
	// Files lists every written artifact.
	Files []string
	// Uploaded is set when the artifacts were copied to S3.
	Uploaded bool
}

// Prepare runs the whole preparation described by cfg: load, augment,
// extract, write the enabled artifacts and upload them when a bucket is
// configured.
func Prepare(ctx context.Context, cfg config.Config, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	registry := formats.NewRegistry()
	catalog := dataset.NewDirCatalog(opts.Fs, cfg.DataDir, cfg.BackgroundFolder, registry)
	decoder := dataset.NewFileDecoder(opts.Fs, registry, cfg.SampleRate)

	p, err := pipeline.New(cfg.Pipeline(), catalog, decoder, rng.New(cfg.Seed), log)
	if err != nil {
		return nil, err
	}

	res, err := p.Run(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range res.Summary() {
		log.Info("class prepared",
			zap.String("class", s.Class),
			zap.Int("label", s.Label),
			zap.Int("originals", s.Originals),
			zap.Int("augmented", s.Augmented))
	}

	files, err := export.Write(opts.Fs, res, cfg.Export())
	if err != nil {
		return nil, fmt.Errorf("exporting: %w", err)
	}
	report := &Report{Result: res, Files: files}

	if cfg.Output.S3.Bucket == "" || len(files) == 0 {
		return report, nil
	}

	client := opts.S3
	if client == nil {
		if client, err = export.NewS3Client(ctx, cfg.Output.S3); err != nil {
			return nil, err
		}
	}
	up, err := export.NewS3Uploader(client, cfg.Output.S3.Bucket, cfg.Output.S3.Prefix, opts.Fs, log)
	if err != nil {
		return nil, err
	}
	if err := up.Upload(ctx, cfg.Output.Dir, files); err != nil {
		return nil, err
	}
	report.Uploaded = true

	return report, nil
}

// Classes returns the label table of the dataset at cfg.DataDir.
func Classes(fsys afero.Fs, cfg config.Config) (dataset.Classes, error) {
	catalog := dataset.NewDirCatalog(fsys, cfg.DataDir, cfg.BackgroundFolder, formats.NewRegistry())
	loader := dataset.NewLoader(catalog, nil, dataset.LoaderConfig{}, nil)

	return loader.Classes()
}

// Preview builds one augmented variant of the recording at voicePath, with
// noise drawn from the recordings at backgroundPaths. The result holds
// sample_rate × duration_seconds samples.
func Preview(fsys afero.Fs, cfg config.Config, voicePath string, backgroundPaths []string) ([]float64, dataset.Augmentation, error) {
	decoder := dataset.NewFileDecoder(fsys, formats.NewRegistry(), cfg.SampleRate)

	voice, _, err := decoder.DecodeWaveform(voicePath)
	if err != nil {
		return nil, dataset.Augmentation{}, err
	}
	pool, err := background.Load(decoder, backgroundPaths)
	if err != nil {
		return nil, dataset.Augmentation{}, err
	}

	pc := cfg.Pipeline()
	synth, err := augment.New(augment.Config{
		SampleRate:   pc.SampleRate,
		MaxLength:    pc.MaxLength(),
		RandomFactor: pc.RandomFactor,
		Ranges:       pc.Ranges,
	}, pool, rng.New(cfg.Seed), nil)
	if err != nil {
		return nil, dataset.Augmentation{}, err
	}

	return synth.Variant(voice)
}
