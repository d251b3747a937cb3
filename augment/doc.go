// SPDX-License-Identifier: EPL-2.0

/*
Package augment synthesizes extra training examples from clean recordings.

Each variant shifts the recording in time, then either shifts its pitch or
changes its speed, and finally mixes it with a chunk of background noise.
The secondary transform follows the shift direction: a right shift is
followed by a pitch shift and a left shift by a speed change.

All randomness comes from the rng.Source handed to the Synthesizer, so a
seed reproduces the whole record sequence. The draws of one variant happen
in a fixed order:

	background clip, background offset,
	shift seconds, shift direction, shift samples,
	pitch or speed factor,
	background gain, voice gain

The transforms never modify their input.
*/
package augment
