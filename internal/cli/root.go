// SPDX-License-Identifier: EPL-2.0

// Package cli implements the kwsprep command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Nannigalaxy/audio-preprocessing/config"
	"github.com/Nannigalaxy/audio-preprocessing/internal/logging"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	fs         afero.Fs
	v          *viper.Viper
	configFile string
	version    string
}

// NewRootCommand builds the command tree on top of fsys.
func NewRootCommand(fsys afero.Fs, version string) *cobra.Command {
	a := &app{fs: fsys, version: version}

	root := &cobra.Command{
		Use:   config.Name,
		Short: "Keyword-spotting dataset preparation",
		Long: `Prepare a labeled keyword-spotting dataset from a directory of class
folders: synthesize augmented variants of every recording (time shift,
pitch shift, speed change and background noise), normalize them to a
fixed duration and extract MFCC features.

Settings come from defaults, a kwsprep.yaml file, KWSPREP_ environment
variables and flags, in increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default searches ., ./configs and $HOME/.config/kwsprep)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", logging.FormatJSON, "log format (json, console)")

	root.AddCommand(
		a.newPrepareCommand(),
		a.newClassesCommand(),
		a.newAugmentCommand(),
		a.newVersionCommand(),
	)

	return root
}

// Execute runs the command line against the OS filesystem.
func Execute(version string) {
	if err := NewRootCommand(afero.NewOsFs(), version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level":          "log.level",
	"log-format":         "log.format",
	"data-dir":           "data_dir",
	"background-folder":  "background_folder",
	"seed":               "seed",
	"sample-rate":        "sample_rate",
	"duration":           "duration_seconds",
	"per-class-limit":    "per_class_sample_limit",
	"include-background": "include_background_class",
	"workers":            "workers",
	"augment":            "augment.enabled",
	"random-factor":      "augment.random_factor",
	"augment-background": "augment.background_records",
	"coefficients":       "feature.coefficient_count",
	"frames":             "feature.frame_count",
	"output-dir":         "output.dir",
	"parquet":            "output.parquet",
	"manifest":           "output.manifest",
	"wav":                "output.wav",
	"compression":        "output.compression",
	"s3-bucket":          "output.s3.bucket",
	"s3-prefix":          "output.s3.prefix",
	"s3-region":          "output.s3.region",
	"s3-endpoint":        "output.s3.endpoint",
	"s3-path-style":      "output.s3.path_style",
}

func (a *app) initConfig(cmd *cobra.Command) error {
	a.v = config.New(a.fs, a.configFile)
	if err := config.ReadInConfig(a.v); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	return bindFlags(cmd, a.v)
}

// bindFlags binds every flag with a configuration key, so a flag set on
// the command line wins over the file and the environment.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

func (a *app) load() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(a.v)
	if err != nil {
		return config.Config{}, nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return config.Config{}, nil, err
	}

	return cfg, logger.With(zap.String("app", config.Name)), nil
}

func (a *app) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", config.Name, a.version)
			return err
		},
	}
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
