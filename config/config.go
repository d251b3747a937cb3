// SPDX-License-Identifier: EPL-2.0

// Package config loads the settings of a preparation run from defaults, a
// YAML file, KWSPREP_ environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/Nannigalaxy/audio-preprocessing/augment"
	"github.com/Nannigalaxy/audio-preprocessing/dataset"
	"github.com/Nannigalaxy/audio-preprocessing/export"
	"github.com/Nannigalaxy/audio-preprocessing/feature"
	"github.com/Nannigalaxy/audio-preprocessing/internal/logging"
	"github.com/Nannigalaxy/audio-preprocessing/pipeline"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	Name      = "kwsprep"
	EnvPrefix = "KWSPREP"
)

type Config struct {
	DataDir                string         `mapstructure:"data_dir"`
	BackgroundFolder       string         `mapstructure:"background_folder"`
	Seed                   uint64         `mapstructure:"seed"`
	SampleRate             int            `mapstructure:"sample_rate"`
	DurationSeconds        float64        `mapstructure:"duration_seconds"`
	PerClassSampleLimit    int            `mapstructure:"per_class_sample_limit"`
	IncludeBackgroundClass bool           `mapstructure:"include_background_class"`
	Workers                int            `mapstructure:"workers"`
	Augment                AugmentConfig  `mapstructure:"augment"`
	Feature                feature.Config `mapstructure:"feature"`
	Output                 OutputConfig   `mapstructure:"output"`
	Log                    LogConfig      `mapstructure:"log"`
}

type AugmentConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RandomFactor      int  `mapstructure:"random_factor"`
	BackgroundRecords bool `mapstructure:"background_records"`

	augment.Ranges `mapstructure:",squash"`
}

type OutputConfig struct {
	Dir         string          `mapstructure:"dir"`
	Parquet     bool            `mapstructure:"parquet"`
	Manifest    bool            `mapstructure:"manifest"`
	WAV         bool            `mapstructure:"wav"`
	Compression string          `mapstructure:"compression"`
	S3          export.S3Config `mapstructure:"s3"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every key with its default value. Keys unknown to
// viper are invisible to environment lookups, so all of them are listed.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("background_folder", dataset.DefaultBackgroundFolder)
	v.SetDefault("seed", 2)
	v.SetDefault("sample_rate", 16000)
	v.SetDefault("duration_seconds", 2.0)
	v.SetDefault("per_class_sample_limit", 0)
	v.SetDefault("include_background_class", true)
	v.SetDefault("workers", 4)

	v.SetDefault("augment.enabled", true)
	v.SetDefault("augment.random_factor", 3)
	v.SetDefault("augment.background_records", true)
	ranges := augment.DefaultRanges()
	setRange(v, "augment.max_shift", ranges.MaxShift)
	setRange(v, "augment.pitch", ranges.Pitch)
	setRange(v, "augment.speed", ranges.Speed)
	setRange(v, "augment.background_gain", ranges.BackgroundGain)
	setRange(v, "augment.voice_gain", ranges.VoiceGain)

	fc := feature.DefaultConfig(0)
	v.SetDefault("feature.coefficient_count", fc.Coefficients)
	v.SetDefault("feature.frame_count", fc.Frames)
	v.SetDefault("feature.fft_size", fc.FFTSize)
	v.SetDefault("feature.hop_length", fc.HopLength)
	v.SetDefault("feature.mel_bands", fc.MelBands)
	v.SetDefault("feature.top_db", fc.TopDB)

	v.SetDefault("output.dir", "out")
	v.SetDefault("output.parquet", true)
	v.SetDefault("output.manifest", true)
	v.SetDefault("output.wav", false)
	v.SetDefault("output.compression", "snappy")
	v.SetDefault("output.s3.bucket", "")
	v.SetDefault("output.s3.prefix", "")
	v.SetDefault("output.s3.region", "")
	v.SetDefault("output.s3.endpoint", "")
	v.SetDefault("output.s3.path_style", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatJSON)
}

func setRange(v *viper.Viper, key string, r augment.Range) {
	v.SetDefault(key+".min", r.Min)
	v.SetDefault(key+".max", r.Max)
	v.SetDefault(key+".step", r.Step)
}

// New returns a viper instance reading from fsys with defaults and
// environment binding in place. An empty configFile searches the working
// directory, ./configs and the user config directory for kwsprep.yaml.
func New(fsys afero.Fs, configFile string) *viper.Viper {
	v := viper.New()
	v.SetFs(fsys)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	return v
}

// ReadInConfig reads the config file. A missing file is not an error when
// none was named explicitly.
func ReadInConfig(v *viper.Viper) error {
	err := v.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}

	return err
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.Feature.SampleRate = cfg.SampleRate

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir is empty", ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := logging.Config(c.Log.Level, c.Log.Format); err != nil {
		return fmt.Errorf("%w: log: %w", ErrInvalidConfig, err)
	}
	if _, err := export.Compression(c.Output.Compression); err != nil {
		return fmt.Errorf("%w: output: %w", ErrInvalidConfig, err)
	}
	if err := c.Pipeline().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Pipeline returns the pipeline settings.
func (c Config) Pipeline() pipeline.Config {
	fc := c.Feature
	fc.SampleRate = c.SampleRate

	return pipeline.Config{
		SampleRate:        c.SampleRate,
		DurationSeconds:   c.DurationSeconds,
		PerClassLimit:     c.PerClassSampleLimit,
		IncludeBackground: c.IncludeBackgroundClass,
		Workers:           c.Workers,
		Augment:           c.Augment.Enabled,
		RandomFactor:      c.Augment.RandomFactor,
		AugmentBackground: c.Augment.BackgroundRecords,
		Ranges:            c.Augment.Ranges,
		Feature:           fc,
	}
}

// Export returns the export settings.
func (c Config) Export() export.Options {
	return export.Options{
		Dir:         c.Output.Dir,
		Parquet:     c.Output.Parquet,
		Manifest:    c.Output.Manifest,
		WAV:         c.Output.WAV,
		Compression: c.Output.Compression,
		Seed:        c.Seed,
		Pipeline:    c.Pipeline(),
	}
}
