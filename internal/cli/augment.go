// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	preprocess "github.com/Nannigalaxy/audio-preprocessing"
	"github.com/Nannigalaxy/audio-preprocessing/formats/wav"
)

func (a *app) newAugmentCommand() *cobra.Command {
	var backgrounds []string

	cmd := &cobra.Command{
		Use:   "augment <input.{wav|mp3|ogg|aiff}> <output.wav>",
		Short: "Write one augmented variant of a recording",
		Long: `Decode a recording, apply one random augmentation with noise from the
given background files and write the result as 16-bit mono WAV. The same
seed always gives the same variant.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.load()
			if err != nil {
				return err
			}

			samples, aug, err := preprocess.Preview(a.fs, cfg, args[0], backgrounds)
			if err != nil {
				return err
			}

			f, err := a.fs.Create(args[1])
			if err != nil {
				return err
			}
			if err := wav.WriteMono16(f, cfg.SampleRate, samples); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", args[1], err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			printf(cmd.OutOrStdout(), "shift %s %d samples, %s %.2f, voice %.2f, background %.2f (%s@%d)\n",
				aug.Direction, aug.ShiftSamples, aug.Transform, aug.Factor,
				aug.VoiceGain, aug.BackgroundGain, aug.BackgroundClip, aug.BackgroundOffset)
			printf(cmd.OutOrStdout(), "wrote %s\n", args[1])

			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&backgrounds, "background", "b", nil, "background noise file (repeatable)")
	f.Uint64("seed", 2, "random seed")
	f.Int("sample-rate", 16000, "working sample rate in Hz")
	f.Float64("duration", 2, "output duration in seconds")
	_ = cmd.MarkFlagRequired("background")

	return cmd
}
