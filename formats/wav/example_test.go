// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"fmt"

	"github.com/Nannigalaxy/audio-preprocessing/audio"
	"github.com/Nannigalaxy/audio-preprocessing/formats/wav"
	"github.com/Nannigalaxy/audio-preprocessing/internal/audiotest"
)

// Example_decoding decodes a 44.1 kHz stereo clip into 16 kHz mono.
func Example_decoding() {
	tone := audiotest.PCM16(audiotest.Sine(44100, 44100, 440, 0.5))
	stereo := make([]int16, 0, 2*len(tone))
	for _, s := range tone {
		stereo = append(stereo, s, s)
	}
	data := audiotest.WAV16(44100, 2, stereo)

	src, err := wav.Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%d Hz, %d channels\n", src.SampleRate(), src.Channels())

	samples, err := audio.ToMono(src, 16000)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%d mono samples\n", len(samples))
	// Output:
	// 44100 Hz, 2 channels
	// 16000 mono samples
}

// Example_errorNotWAV shows the sentinel returned for foreign data.
func Example_errorNotWAV() {
	_, err := wav.Decoder{}.Decode(bytes.NewReader([]byte("ID3 not a wave file")))
	fmt.Println(err)
	// Output:
	// not a WAV file
}
