// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"strconv"

	"github.com/google/uuid"
)

// recordNamespace scopes record IDs to this module.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/Nannigalaxy/audio-preprocessing/records"))

// Augmentation lists every value drawn while building one augmented
// variant.
type Augmentation struct {
	ShiftSeconds     float64 `yaml:"shift_seconds"`
	ShiftSamples     int     `yaml:"shift_samples"`
	Direction        string  `yaml:"direction"`
	Transform        string  `yaml:"transform"`
	Factor           float64 `yaml:"factor"`
	BackgroundGain   float64 `yaml:"background_gain"`
	VoiceGain        float64 `yaml:"voice_gain"`
	BackgroundClip   string  `yaml:"background_clip"`
	BackgroundOffset int     `yaml:"background_offset"`
}

// Record is one example of the prepared dataset. Variant 0 is the clean
// recording; augmented copies are numbered from 1 and carry the
// parameters that produced them.
type Record struct {
	ID           uuid.UUID
	Source       string
	Samples      []float64
	Label        int
	Class        string
	Variant      int
	Augmentation *Augmentation
}

// RecordID derives a stable ID from the source name and variant number,
// so reruns with the same seed produce the same IDs.
func RecordID(source string, variant int) uuid.UUID {
	return uuid.NewSHA1(recordNamespace, []byte(source+"#"+strconv.Itoa(variant)))
}

// NewRecord builds a record and assigns its ID.
func NewRecord(source string, samples []float64, label int, class string, variant int, aug *Augmentation) Record {
	return Record{
		ID:           RecordID(source, variant),
		Source:       source,
		Samples:      samples,
		Label:        label,
		Class:        class,
		Variant:      variant,
		Augmentation: aug,
	}
}

// IsAugmented reports whether r is a synthesized variant.
func (r Record) IsAugmented() bool { return r.Variant > 0 }
