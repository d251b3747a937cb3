// SPDX-License-Identifier: EPL-2.0

package feature

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/Nannigalaxy/audio-preprocessing/spectral"
	"github.com/Nannigalaxy/audio-preprocessing/waveform"
)

// amin floors power values before the logarithm.
const amin = 1e-10

type Config struct {
	SampleRate   int     `mapstructure:"-" yaml:"sample_rate"`
	Coefficients int     `mapstructure:"coefficient_count" yaml:"coefficient_count"`
	Frames       int     `mapstructure:"frame_count" yaml:"frame_count"`
	FFTSize      int     `mapstructure:"fft_size" yaml:"fft_size"`
	HopLength    int     `mapstructure:"hop_length" yaml:"hop_length"`
	MelBands     int     `mapstructure:"mel_bands" yaml:"mel_bands"`
	TopDB        float64 `mapstructure:"top_db" yaml:"top_db"`
}

// DefaultConfig returns 20 coefficients over 35 frames from a 128-band
// mel spectrum with 2048-point frames spaced 1024 samples apart.
func DefaultConfig(sampleRate int) Config {
	return Config{
		SampleRate:   sampleRate,
		Coefficients: 20,
		Frames:       35,
		FFTSize:      2048,
		HopLength:    1024,
		MelBands:     128,
		TopDB:        80,
	}
}

func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidShape, c.SampleRate)
	case c.Coefficients <= 0 || c.Frames <= 0:
		return fmt.Errorf("%w: %d coefficients × %d frames", ErrInvalidShape, c.Coefficients, c.Frames)
	case c.MelBands < c.Coefficients:
		return fmt.Errorf("%w: %d mel bands cannot give %d coefficients", ErrInvalidShape, c.MelBands, c.Coefficients)
	case c.FFTSize < 2 || c.FFTSize%2 != 0:
		return fmt.Errorf("%w: fft size %d", ErrInvalidShape, c.FFTSize)
	case c.HopLength <= 0:
		return fmt.Errorf("%w: hop length %d", ErrInvalidShape, c.HopLength)
	}

	return nil
}

type Extractor struct {
	cfg    Config
	window []float64
	mel    *mat.Dense // bands × bins
	dct    *mat.Dense // coefficients × bands
}

func New(cfg Config) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Extractor{
		cfg:    cfg,
		window: spectral.Hann(cfg.FFTSize),
		mel:    spectral.MelFilterBank(cfg.SampleRate, cfg.FFTSize, cfg.MelBands, 0, float64(cfg.SampleRate)/2),
		dct:    spectral.DCT(cfg.Coefficients, cfg.MelBands),
	}, nil
}

// Config returns the configuration the extractor was built with.
func (e *Extractor) Config() Config { return e.cfg }

// Extract returns the Coefficients × Frames MFCC matrix of w.
func (e *Extractor) Extract(w []float64) (*mat.Dense, error) {
	if !waveform.IsFinite(w) {
		return nil, ErrNonFinite
	}

	power := spectral.Power(spectral.STFT(w, e.window, e.cfg.HopLength))

	var melSpec mat.Dense
	melSpec.Mul(e.mel, power)

	var mfcc mat.Dense
	mfcc.Mul(e.dct, spectral.PowerToDB(&melSpec, amin, e.cfg.TopDB))

	return FitFrames(&mfcc, e.cfg.Frames), nil
}

// FitFrames returns a copy of m with exactly frames columns. Missing
// columns are zero and extra ones are dropped from the right.
func FitFrames(m mat.Matrix, frames int) *mat.Dense {
	rows, cols := m.Dims()
	out := mat.NewDense(rows, frames, nil)

	keep := min(cols, frames)
	for i := range rows {
		for j := range keep {
			out.Set(i, j, m.At(i, j))
		}
	}

	return out
}

// ExtractAll extracts every waveform on up to workers goroutines. The
// result is in input order. The first failure cancels the rest.
func (e *Extractor) ExtractAll(ctx context.Context, waves [][]float64, workers int) ([]*mat.Dense, error) {
	out := make([]*mat.Dense, len(waves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, w := range waves {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			m, err := e.Extract(w)
			if err != nil {
				return fmt.Errorf("waveform %d: %w", i, err)
			}
			out[i] = m

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
