// SPDX-License-Identifier: EPL-2.0

// Package preprocess prepares keyword-spotting datasets.
//
// A dataset is a directory with one folder per class and a reserved
// .background folder of noise recordings:
//
//	data/
//	  .background/  running_tap.wav, white_noise.wav, ...
//	  no/           0a2b400e.wav, ...
//	  yes/          0a7c2a8d.wav, ...
//
// Preparation loads every class, synthesizes augmented variants of each
// recording, and converts all of them into fixed-size MFCC matrices.
//
// # Quick Start
//
// The simplest way to prepare a dataset is Prepare with a loaded
// configuration:
//
//	v := config.New(afero.NewOsFs(), "kwsprep.yaml")
//	_ = config.ReadInConfig(v)
//	cfg, _ := config.Load(v)
//
//	report, err := preprocess.Prepare(ctx, cfg, preprocess.Options{})
//	// report.Result.Tensor has shape (records, 20, 35)
//
// # Labels
//
// Label 0 is the synthetic background class, built by tiling the noise
// recordings. Class folders, sorted by name, take labels 1, 2, ...
//
// # Augmentation
//
// Every recording is emitted once clean and then two or more times
// augmented. A variant is time shifted, then pitch shifted or sped up or
// slowed down, and finally mixed with a random chunk of background noise.
// The run is driven by a single seeded random stream, so the same seed
// and inputs give the same dataset.
//
// # Building Blocks
//
// For more control, use the subpackages directly:
//
//   - audio and formats: decoding wav, mp3, ogg and aiff, resampling and
//     down-mixing
//   - waveform: length normalization
//   - background: the noise pool
//   - augment: the transforms and the Synthesizer
//   - feature: MFCC extraction
//   - pipeline: load, synthesize and extract in one call
//   - export: Parquet, YAML, WAV and S3 output
//
// See the individual subpackages for more detailed documentation.
package preprocess
