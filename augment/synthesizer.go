// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Nannigalaxy/audio-preprocessing/background"
	"github.com/Nannigalaxy/audio-preprocessing/dataset"
	"github.com/Nannigalaxy/audio-preprocessing/rng"
	"github.com/Nannigalaxy/audio-preprocessing/waveform"
)

// Secondary transform names stored in dataset.Augmentation.
const (
	TransformPitch = "pitch"
	TransformSpeed = "speed"
)

// minVariants is the lower bound of the per-record variant count.
const minVariants = 2

type Config struct {
	SampleRate int
	// MaxLength is the length in samples of every emitted waveform.
	MaxLength int
	// RandomFactor bounds the variant count, drawn from [2, RandomFactor).
	RandomFactor int
	// AugmentBackground also synthesizes variants of background records.
	AugmentBackground bool
	Ranges            Ranges
}

func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	case c.MaxLength <= 0:
		return fmt.Errorf("%w: max length %d", ErrInvalidConfig, c.MaxLength)
	case c.RandomFactor <= minVariants:
		return fmt.Errorf("%w: random factor %d must exceed %d", ErrInvalidConfig, c.RandomFactor, minVariants)
	}

	return c.Ranges.Validate()
}

// Stats counts what Synthesize emitted.
type Stats struct {
	Clean     int
	Augmented int
	Skipped   int
}

// Total is the number of emitted records.
func (s Stats) Total() int { return s.Clean + s.Augmented }

type Synthesizer struct {
	cfg  Config
	pool *background.Pool
	rng  rng.Source
	log  *zap.Logger
}

// New validates cfg and returns a synthesizer drawing noise from pool and
// randomness from r.
func New(cfg Config, pool *background.Pool, r rng.Source, logger *zap.Logger) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if pool == nil || pool.Len() == 0 {
		return nil, background.ErrEmptyPool
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Synthesizer{
		cfg:  cfg,
		pool: pool,
		rng:  r,
		log:  logger.With(zap.String("component", "synthesizer")),
	}, nil
}

// Synthesize emits, for every record in order, its clean version
// normalized to MaxLength followed by its augmented variants. Variants
// failing on a short pool or an unusable transform are logged and
// skipped. The context is checked between records.
func (s *Synthesizer) Synthesize(ctx context.Context, records []dataset.Record) ([]dataset.Record, Stats, error) {
	var stats Stats
	out := make([]dataset.Record, 0, len(records)*s.cfg.RandomFactor)

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		out = append(out, dataset.NewRecord(rec.Source, waveform.Normalize(rec.Samples, s.cfg.MaxLength), rec.Label, rec.Class, 0, nil))
		stats.Clean++

		if rec.Label == dataset.BackgroundLabel && !s.cfg.AugmentBackground {
			continue
		}

		count := rng.Between(s.rng, minVariants, s.cfg.RandomFactor)
		emitted := 0
		for i := range count {
			samples, aug, err := s.Variant(rec.Samples)
			switch {
			case err == nil:
			case errors.Is(err, background.ErrInsufficientLength),
				errors.Is(err, ErrNonFinite),
				errors.Is(err, ErrInvalidRate):
				s.log.Warn("variant skipped",
					zap.String("source", rec.Source),
					zap.Int("variant", i+1),
					zap.Error(err))
				stats.Skipped++
				continue
			default:
				return nil, stats, fmt.Errorf("augmenting %s: %w", rec.Source, err)
			}

			out = append(out, dataset.NewRecord(rec.Source, samples, rec.Label, rec.Class, i+1, &aug))
			stats.Augmented++
			emitted++
		}
		s.log.Debug("record synthesized",
			zap.String("source", rec.Source),
			zap.String("class", rec.Class),
			zap.Int("variants", emitted))
	}

	s.log.Info("synthesis finished",
		zap.Int("clean", stats.Clean),
		zap.Int("augmented", stats.Augmented),
		zap.Int("skipped", stats.Skipped),
		zap.Int("total", stats.Total()))

	return out, stats, nil
}

// Variant builds one augmented copy of voice and reports the parameters
// drawn for it. The result holds MaxLength samples.
func (s *Synthesizer) Variant(voice []float64) ([]float64, dataset.Augmentation, error) {
	var aug dataset.Augmentation

	chunk, err := s.pool.SampleChunk(s.rng, s.cfg.MaxLength)
	if err != nil {
		return nil, aug, err
	}
	aug.BackgroundClip = chunk.Clip
	aug.BackgroundOffset = chunk.Offset

	aug.ShiftSeconds = s.cfg.Ranges.MaxShift.Draw(s.rng)
	dir := Direction(s.rng.IntN(2))
	aug.Direction = dir.String()
	aug.ShiftSamples = rng.Between(s.rng, 0, shiftLimit(s.cfg.SampleRate, aug.ShiftSeconds))
	shifted := ShiftSamples(voice, aug.ShiftSamples, dir)

	var transformed []float64
	if dir == Right {
		aug.Transform = TransformPitch
		aug.Factor = s.cfg.Ranges.Pitch.Draw(s.rng)
		transformed, err = ShiftPitch(shifted, s.cfg.SampleRate, aug.Factor)
	} else {
		aug.Transform = TransformSpeed
		aug.Factor = s.cfg.Ranges.Speed.Draw(s.rng)
		transformed, err = StretchSpeed(shifted, aug.Factor)
	}
	if err != nil {
		return nil, aug, err
	}

	aug.BackgroundGain = s.cfg.Ranges.BackgroundGain.Draw(s.rng)
	aug.VoiceGain = s.cfg.Ranges.VoiceGain.Draw(s.rng)

	mixed, err := Mix(waveform.Normalize(transformed, s.cfg.MaxLength), chunk.Samples, aug.VoiceGain, aug.BackgroundGain)
	if err != nil {
		return nil, aug, err
	}

	return waveform.Normalize(mixed, s.cfg.MaxLength), aug, nil
}
