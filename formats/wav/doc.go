// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes RIFF/WAVE files on top of go-audio/wav.
//
// Decoder accepts integer PCM at 8, 16, 24 and 32 bits with any channel
// count and sample rate, including WAVE_FORMAT_EXTENSIBLE headers. Float
// and compressed encodings are rejected with ErrUnsupportedEncoding.
// Samples come out as float32 in [-1, 1).
//
//	src, err := wav.Decoder{}.Decode(f)
//	samples, err := audio.ToMono(src, 16000)
//
// WriteMono16 is the inverse used when exporting prepared waveforms. The
// go-audio encoder patches chunk sizes on Close, so it needs an
// io.WriteSeeker such as *os.File or an afero.File.
package wav
