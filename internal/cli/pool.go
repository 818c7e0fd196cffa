package cli

import (
	"fmt"

	"image-judge/internal/app"
	"image-judge/internal/config"

	"github.com/spf13/cobra"
)

// NewPoolCmd groups image pool commands.
func NewPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Inspect image pools",
	}
	cmd.AddCommand(newPoolValidateCmd())
	return cmd
}

func newPoolValidateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate an image pool (the embedded pool by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			images, err := app.LoadPool(&config.Config{Quiz: config.QuizConfig{PoolFile: file}})
			if err != nil {
				return err
			}

			aiGenerated := 0
			for _, img := range images {
				if img.AIGenerated {
					aiGenerated++
				}
			}
			source := file
			if source == "" {
				source = "embedded pool"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d images OK (%d AI-generated, %d real)\n",
				source, len(images), aiGenerated, len(images)-aiGenerated)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to a YAML pool file")
	return cmd
}
