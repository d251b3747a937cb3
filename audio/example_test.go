// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"
	"io"

	"github.com/Nannigalaxy/audio-preprocessing/audio"
	"github.com/Nannigalaxy/audio-preprocessing/internal/audiotest"
)

// Example_resampler converts one second of 44.1 kHz audio to 16 kHz.
func Example_resampler() {
	source := audiotest.NewSineSource(44100, 1, 44100, 440.0)
	resampler := audio.NewResampler(source, 16000)

	samples, err := audio.ReadAll(resampler)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%d Hz, %d channel(s), %d samples\n", resampler.SampleRate(), resampler.Channels(), len(samples))
	// Output:
	// 16000 Hz, 1 channel(s), 16000 samples
}

// Example_toMono shows the decode chain used for dataset clips: resample,
// then fold to one channel.
func Example_toMono() {
	source := audiotest.NewSineSource(44100, 2, 44100, 440.0)

	samples, err := audio.ToMono(source, 8000)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%d samples, %.2f seconds\n", len(samples), float64(len(samples))/8000)
	// Output:
	// 8000 samples, 1.00 seconds
}

// Example_scaledResampler stretches a clip to 1.5 times its length while
// keeping its nominal rate.
func Example_scaledResampler() {
	source := audio.NewSliceSource(make([]float32, 1000), 16000, 1)
	stretched := audio.NewScaledResampler(source, 1.5)

	samples, _ := audio.ReadAll(stretched)
	fmt.Println(stretched.SampleRate(), len(samples))
	// Output:
	// 16000 1500
}

type nullDecoder struct{}

func (nullDecoder) Decode(r io.Reader) (audio.Source, error) {
	return audiotest.NewSilentSource(16000, 1, 1000), nil
}

// Example_registry looks decoders up by file extension.
func Example_registry() {
	registry := audio.NewRegistry()
	registry.Register(nullDecoder{}, "wav", ".WAVE")

	fmt.Println(registry.Supports("yes/0a7c2a8d_nohash_0.wav"))
	fmt.Println(registry.Supports("notes.txt"))
	fmt.Println(registry.Extensions())
	// Output:
	// true
	// false
	// [wav wave]
}
