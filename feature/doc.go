// SPDX-License-Identifier: EPL-2.0

/*
Package feature turns fixed-length waveforms into MFCC matrices.

An Extractor computes, per waveform:

	centered STFT (periodic Hann window, reflect padding)
	power spectrum
	HTK mel filterbank with area normalization
	power to decibels, clipped top_db below the peak
	orthonormal DCT-II, first Coefficients rows

and then fits the result to exactly Frames columns, zero-padding on the
right or truncating. With the default configuration a two second clip at
16 kHz yields 32 raw frames, so the last three of the 35 columns are zero.

An Extractor is read-only after New and may be shared between goroutines.
*/
package feature
