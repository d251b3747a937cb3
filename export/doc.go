// SPDX-License-Identifier: EPL-2.0

// Package export persists a prepared dataset: a Parquet table with one
// row per record and its flattened MFCC matrix, a YAML manifest with the
// label table and every drawn augmentation parameter, optional WAV files
// grouped by class, and an upload of all of it to S3.
//
// Files are written through an afero.Fs so callers can target memory in
// tests and disk in production.
package export
