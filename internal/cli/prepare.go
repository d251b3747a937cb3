// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	preprocess "github.com/Nannigalaxy/audio-preprocessing"
	"github.com/Nannigalaxy/audio-preprocessing/dataset"
)

func (a *app) newPrepareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Augment a dataset and extract its features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := a.load()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			report, err := preprocess.Prepare(cmd.Context(), cfg, preprocess.Options{Fs: a.fs, Logger: logger})
			if err != nil {
				logger.Error("preparation failed", zap.Error(err))
				return err
			}

			out := cmd.OutOrStdout()
			res := report.Result
			printf(out, "%-6s %-20s %10s %10s\n", "LABEL", "CLASS", "ORIGINALS", "AUGMENTED")
			for _, s := range res.Summary() {
				printf(out, "%-6d %-20s %10d %10d\n", s.Label, s.Class, s.Originals, s.Augmented)
			}
			shape := res.Tensor.Shape()
			printf(out, "\nrecords: %d (skipped variants: %d)\n", res.Stats.Total(), res.Stats.Skipped)
			printf(out, "features: %d × %d × %d\n", shape[0], shape[1], shape[2])
			for _, f := range report.Files {
				if !isWAV(f) {
					printf(out, "wrote %s\n", f)
				}
			}
			if report.Uploaded {
				printf(out, "uploaded %d files to s3://%s/%s\n", len(report.Files), cfg.Output.S3.Bucket, cfg.Output.S3.Prefix)
			}

			return nil
		},
	}

	f := cmd.Flags()
	f.String("data-dir", "data", "dataset directory, one folder per class")
	f.String("background-folder", dataset.DefaultBackgroundFolder, "folder of background noise recordings")
	f.Uint64("seed", 2, "random seed")
	f.Int("sample-rate", 16000, "working sample rate in Hz")
	f.Float64("duration", 2, "example duration in seconds")
	f.Int("per-class-limit", 0, "maximum recordings per class, 0 for all")
	f.Bool("include-background", true, "emit background noise as label 0")
	f.Int("workers", 4, "parallel feature extraction workers")
	f.Bool("augment", true, "synthesize augmented variants")
	f.Int("random-factor", 3, "variants per record are drawn from [2, random-factor)")
	f.Bool("augment-background", true, "augment background records too")
	f.Int("coefficients", 20, "MFCC coefficients")
	f.Int("frames", 35, "MFCC frames")
	f.String("output-dir", "out", "output directory")
	f.Bool("parquet", true, "write the feature table")
	f.Bool("manifest", true, "write the YAML manifest")
	f.Bool("wav", false, "write every example as WAV")
	f.String("compression", "snappy", "parquet compression (snappy, zstd, gzip)")
	f.String("s3-bucket", "", "upload the output to this bucket")
	f.String("s3-prefix", "", "object key prefix")
	f.String("s3-region", "", "bucket region")
	f.String("s3-endpoint", "", "custom S3 endpoint, e.g. MinIO")
	f.Bool("s3-path-style", false, "use path-style bucket addressing")

	return cmd
}

func isWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}
