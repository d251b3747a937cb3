// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"fmt"
	"math"

	"github.com/Nannigalaxy/audio-preprocessing/rng"
)

// Range is a closed interval sampled on a grid of Step.
type Range struct {
	Min  float64 `mapstructure:"min" yaml:"min"`
	Max  float64 `mapstructure:"max" yaml:"max"`
	Step float64 `mapstructure:"step" yaml:"step"`
}

// Validate checks that the interval is finite, ordered and has a
// positive step.
func (g Range) Validate() error {
	for _, v := range []float64{g.Min, g.Max, g.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %+v", ErrInvalidRange, g)
		}
	}
	if g.Step <= 0 || g.Max < g.Min {
		return fmt.Errorf("%w: %+v", ErrInvalidRange, g)
	}

	return nil
}

// Draw picks a grid point of the range uniformly, both ends included.
func (g Range) Draw(r rng.Source) float64 {
	if g.Step <= 0 {
		return g.Min
	}

	lo := int(math.Round(g.Min / g.Step))
	hi := int(math.Round(g.Max / g.Step))

	return float64(rng.Between(r, lo, hi+1)) * g.Step
}

// Ranges holds the distribution of every drawn parameter.
type Ranges struct {
	MaxShift       Range `mapstructure:"max_shift" yaml:"max_shift"`
	Pitch          Range `mapstructure:"pitch" yaml:"pitch"`
	Speed          Range `mapstructure:"speed" yaml:"speed"`
	BackgroundGain Range `mapstructure:"background_gain" yaml:"background_gain"`
	VoiceGain      Range `mapstructure:"voice_gain" yaml:"voice_gain"`
}

// DefaultRanges returns shifts of up to half a second, pitch shifts of up
// to three semitones, speed changes of up to 30%, quiet background and
// mostly full voice.
func DefaultRanges() Ranges {
	return Ranges{
		MaxShift:       Range{Min: 0.01, Max: 0.50, Step: 0.01},
		Pitch:          Range{Min: -3, Max: 3, Step: 0.1},
		Speed:          Range{Min: 0.7, Max: 1.3, Step: 0.1},
		BackgroundGain: Range{Min: 0.10, Max: 0.40, Step: 0.01},
		VoiceGain:      Range{Min: 0.60, Max: 1.00, Step: 0.01},
	}
}

func (r Ranges) Validate() error {
	named := []struct {
		name string
		r    Range
	}{
		{"max_shift", r.MaxShift},
		{"pitch", r.Pitch},
		{"speed", r.Speed},
		{"background_gain", r.BackgroundGain},
		{"voice_gain", r.VoiceGain},
	}
	for _, n := range named {
		if err := n.r.Validate(); err != nil {
			return fmt.Errorf("%s: %w", n.name, err)
		}
	}
	if r.Speed.Min <= 0 {
		return fmt.Errorf("speed: %w: rates must be positive", ErrInvalidRange)
	}

	return nil
}
