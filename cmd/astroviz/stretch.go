package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/astroviz/astroviz"
)

func newStretchCmd() *cobra.Command {
	var (
		output  string
		scaling scalingFlags
	)

	cmd := &cobra.Command{
		Use:   "stretch IMAGE",
		Short: "Scale a single image for display",
		Long: `Scale a single image for display and write it as 16-bit grayscale PNG.

The interval picks the display bounds from the data and the stretch shapes
the normalized intensities. The result shows faint structure that a direct
rendering of the raw data would bury.`,
		Example: `  astroviz stretch m31.tiff -o m31.png --interval zscale --stretch asinh --param 0.1
  astroviz stretch m31.tiff -o m31.png --interval percentile --percentile 99 --stretch log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			norm, err := scaling.normalizer()
			if err != nil {
				return err
			}
			grid, err := astroviz.LoadGrid(args[0])
			if err != nil {
				return err
			}

			stretched := norm.Apply(grid)
			img := stretched.Gray16Image(0, 1)

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := png.Encode(f, img); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", output, grid.Width(), grid.Height())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "stretched.png", "output PNG path")
	scaling.register(cmd)
	return cmd
}
