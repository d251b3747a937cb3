// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"github.com/spf13/cobra"

	preprocess "github.com/Nannigalaxy/audio-preprocessing"
	"github.com/Nannigalaxy/audio-preprocessing/dataset"
)

func (a *app) newClassesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Print the label table of a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := a.load()
			if err != nil {
				return err
			}

			classes, err := preprocess.Classes(a.fs, cfg)
			if err != nil {
				return err
			}
			for label, name := range classes.Names() {
				printf(cmd.OutOrStdout(), "%d\t%s\n", label, name)
			}

			return nil
		},
	}

	cmd.Flags().String("data-dir", "data", "dataset directory, one folder per class")
	cmd.Flags().String("background-folder", dataset.DefaultBackgroundFolder, "folder of background noise recordings")

	return cmd
}
