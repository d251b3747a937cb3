// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/Nannigalaxy/audio-preprocessing/utils"
)

// WriteMono16 writes samples in [-1, 1] as a mono 16-bit PCM WAV.
// Out of range samples are clamped. The writer is left open.
func WriteMono16(w io.WriteSeeker, sampleRate int, samples []float64) error {
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, v := range samples {
		buf.Data[i] = int(utils.FloatToPCM16(v))
	}

	enc := gowav.NewEncoder(w, sampleRate, 16, 1, formatPCM)
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("%w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
