// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files through github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so every Source from this package
// reports two channels even for mono recordings. Feed it through
// audio.MonoMixer (or audio.ToMono) to get one channel back.
package mp3
