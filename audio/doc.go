// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives that turn encoded clips
// into fixed-rate mono waveforms.
//
// Every decoder and processor implements Source, a pull-based stream of
// interleaved float32 samples in [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Sources chain. A typical dataset clip goes through a decoder, a
// Resampler and a MonoMixer before ReadAll collects it:
//
//	dec, _ := registry.ForPath(path)
//	decoded, _ := dec.Decode(f)
//	stream := audio.NewMonoMixer(audio.NewResampler(decoded, 16000))
//	samples, err := audio.ReadAll(stream)
//
// ToMono wraps that chain and skips the Resampler when the rates match.
//
// # Resampling
//
// Resampler uses Catmull-Rom cubic interpolation over a four-frame window.
// Downsampling passes frames through a one-pole low-pass first. The output
// of N source frames holds ceil(N*dst/src) frames. NewScaledResampler
// accepts a fractional scale, which pitch shifting needs.
//
// # Registry
//
// Registry maps file extensions to decoders, case-insensitively:
//
//	registry := audio.NewRegistry()
//	registry.Register(wav.Decoder{}, "wav", "wave")
//	dec, ok := registry.ForPath("yes/clip.WAV")
//
// Reads return io.EOF once a stream is drained; the final read may carry
// samples alongside it.
package audio
