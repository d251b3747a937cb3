// SPDX-License-Identifier: EPL-2.0

package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Nannigalaxy/audio-preprocessing/dataset"
	"github.com/Nannigalaxy/audio-preprocessing/pipeline"
)

type Manifest struct {
	Seed            uint64                  `yaml:"seed"`
	SampleRate      int                     `yaml:"sample_rate"`
	DurationSeconds float64                 `yaml:"duration_seconds"`
	Shape           []int                   `yaml:"shape,flow"`
	Totals          Totals                  `yaml:"totals"`
	Classes         []pipeline.ClassSummary `yaml:"classes"`
	Records         []ManifestRecord        `yaml:"records"`
}

type Totals struct {
	Clean     int `yaml:"clean"`
	Augmented int `yaml:"augmented"`
	Skipped   int `yaml:"skipped"`
	Records   int `yaml:"records"`
}

type ManifestRecord struct {
	ID           string                `yaml:"id"`
	Source       string                `yaml:"source"`
	Class        string                `yaml:"class"`
	Label        int                   `yaml:"label"`
	Variant      int                   `yaml:"variant"`
	Augmentation *dataset.Augmentation `yaml:"augmentation,omitempty"`
}

// NewManifest describes res. The run parameters are recorded so the
// dataset can be rebuilt.
func NewManifest(res *pipeline.Result, seed uint64, cfg pipeline.Config) Manifest {
	records := make([]ManifestRecord, len(res.Records))
	for i, r := range res.Records {
		records[i] = ManifestRecord{
			ID:           r.ID.String(),
			Source:       r.Source,
			Class:        r.Class,
			Label:        r.Label,
			Variant:      r.Variant,
			Augmentation: r.Augmentation,
		}
	}

	shape := res.Tensor.Shape()

	return Manifest{
		Seed:            seed,
		SampleRate:      cfg.SampleRate,
		DurationSeconds: cfg.DurationSeconds,
		Shape:           shape[:],
		Totals: Totals{
			Clean:     res.Stats.Clean,
			Augmented: res.Stats.Augmented,
			Skipped:   res.Stats.Skipped,
			Records:   len(res.Records),
		},
		Classes: res.Summary(),
		Records: records,
	}
}

// WriteManifest encodes m as YAML.
func WriteManifest(w io.Writer, m Manifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}

	return enc.Close()
}

// ReadManifest decodes a manifest written by WriteManifest.
func ReadManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	err := yaml.NewDecoder(r).Decode(&m)
	return m, err
}
