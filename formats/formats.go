// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into one audio.Registry.
package formats

import (
	"github.com/Nannigalaxy/audio-preprocessing/audio"
	"github.com/Nannigalaxy/audio-preprocessing/formats/aiff"
	"github.com/Nannigalaxy/audio-preprocessing/formats/mp3"
	"github.com/Nannigalaxy/audio-preprocessing/formats/vorbis"
	"github.com/Nannigalaxy/audio-preprocessing/formats/wav"
)

// NewRegistry returns a registry covering wav, mp3, ogg and aiff files.
func NewRegistry() *audio.Registry {
	registry := audio.NewRegistry()
	registry.Register(wav.Decoder{}, "wav", "wave")
	registry.Register(mp3.Decoder{}, "mp3")
	registry.Register(vorbis.Decoder{}, "ogg", "oga")
	registry.Register(aiff.Decoder{}, "aiff", "aif")

	return registry
}
