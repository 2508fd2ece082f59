package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astroviz/astroviz"
)

func newZScaleCmd() *cobra.Command {
	var (
		contrast float64
		nsamples int
	)

	cmd := &cobra.Command{
		Use:   "zscale IMAGE",
		Short: "Print the z-scale display bounds of an image",
		Long: `Compute and print the z-scale display bounds (vmin, vmax) of an image.

Useful for inspecting what the zscale interval would pick before composing,
or for feeding manual bounds to other tools.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, err := astroviz.LoadGrid(args[0])
			if err != nil {
				return err
			}
			iv := astroviz.NewZScaleInterval()
			if contrast > 0 {
				iv.Contrast = contrast
			}
			if nsamples > 0 {
				iv.NSamples = nsamples
			}
			vmin, vmax := iv.Limits(grid)
			fmt.Fprintf(cmd.OutOrStdout(), "vmin=%g vmax=%g\n", vmin, vmax)
			return nil
		},
	}

	cmd.Flags().Float64Var(&contrast, "contrast", 0, "zscale contrast (0 = default 0.25)")
	cmd.Flags().IntVar(&nsamples, "nsamples", 0, "zscale sample count (0 = default 1000)")
	return cmd
}
