package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/astroviz/astroviz"
)

// nan marks unset manual bounds; ManualInterval substitutes data extremes.
var nan = math.NaN()

func newRootCmd() *cobra.Command {
	var verbose int

	cmd := &cobra.Command{
		Use:   "astroviz",
		Short: "Scale and compose scientific images for display",
		Long: `astroviz maps raw scientific image data to display-ready images.

Single images are scaled with an interval (display bounds selection, e.g.
z-scale) and a stretch (asinh, log, sqrt, ...). Three images compose into an
RGB image with independent per-channel scaling or with the hue-preserving
Lupton asinh scheme.`,
		Version:       astroviz.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			switch {
			case verbose >= 2:
				level = slog.LevelDebug
			case verbose == 1:
				level = slog.LevelInfo
			}
			astroviz.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	cmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (-v info, -vv debug)")

	cmd.AddCommand(newComposeCmd())
	cmd.AddCommand(newStretchCmd())
	cmd.AddCommand(newZScaleCmd())
	return cmd
}

// scalingFlags are the interval/stretch options shared by the compose and
// stretch commands.
type scalingFlags struct {
	interval   string
	vmin       float64
	vmax       float64
	percentile float64
	contrast   float64
	nsamples   int
	stretch    string
	param      float64
}

func (f *scalingFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.interval, "interval", "minmax", "display bounds: minmax, manual, percentile, zscale")
	fl.Float64Var(&f.vmin, "vmin", nan, "lower display bound (manual interval)")
	fl.Float64Var(&f.vmax, "vmax", nan, "upper display bound (manual interval)")
	fl.Float64Var(&f.percentile, "percentile", 0, "central fraction to keep in percent (percentile interval)")
	fl.Float64Var(&f.contrast, "contrast", 0, "zscale contrast (0 = default 0.25)")
	fl.IntVar(&f.nsamples, "nsamples", 0, "zscale sample count (0 = default 1000)")
	fl.StringVar(&f.stretch, "stretch", "linear", "stretch: linear, sqrt, squared, power, powerdist, log, asinh, sinh")
	fl.Float64Var(&f.param, "param", 0, "stretch parameter (0 = each stretch's default)")
}

func (f *scalingFlags) normalizer() (astroviz.Normalizer, error) {
	iv, err := f.buildInterval()
	if err != nil {
		return astroviz.Normalizer{}, err
	}
	st, err := astroviz.ParseStretch(f.stretch, f.param)
	if err != nil {
		return astroviz.Normalizer{}, err
	}
	return astroviz.Normalizer{Interval: iv, Stretch: st}, nil
}

func (f *scalingFlags) buildInterval() (astroviz.Interval, error) {
	switch strings.ToLower(f.interval) {
	case "", "minmax":
		return astroviz.MinMaxInterval{}, nil
	case "manual":
		return astroviz.ManualInterval{Vmin: f.vmin, Vmax: f.vmax}, nil
	case "percentile":
		return astroviz.PercentileInterval{Percentile: f.percentile}, nil
	case "zscale":
		iv := astroviz.NewZScaleInterval()
		if f.contrast > 0 {
			iv.Contrast = f.contrast
		}
		if f.nsamples > 0 {
			iv.NSamples = f.nsamples
		}
		return iv, nil
	default:
		return nil, fmt.Errorf("unknown interval %q", f.interval)
	}
}

// savePixmap writes the pixmap in the format selected by the output
// extension.
func savePixmap(pm *astroviz.Pixmap, path string, jpegQuality int) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", "":
		return pm.SavePNG(path)
	case ".jpg", ".jpeg":
		return pm.SaveJPEG(path, jpegQuality)
	case ".tif", ".tiff":
		return pm.SaveTIFF(path)
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
}
