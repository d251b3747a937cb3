// SPDX-License-Identifier: EPL-2.0

// Package spectral implements the short-time Fourier machinery behind time
// stretching and MFCC extraction.
//
// Conventions follow the usual speech toolkits: frames are centered, the
// signal is reflect-padded by half an FFT on both sides, the analysis
// window is a periodic Hann window, and spectra keep nfft/2+1 bins. A
// spectrogram is stored frame-major: Spectrogram[t][k] is bin k of frame t.
package spectral
