package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/astroviz/astroviz"
	"github.com/astroviz/astroviz/internal/config"
	"github.com/astroviz/astroviz/internal/watch"
)

func newComposeCmd() *cobra.Command {
	var (
		cfgPath       string
		output        string
		mode          string
		scaling       scalingFlags
		minimum       float64
		luptonStretch float64
		q             float64
		workers       int
		jpegQuality   int
		watchInputs   bool
	)

	cmd := &cobra.Command{
		Use:   "compose [RED GREEN BLUE]",
		Short: "Compose three images into an RGB image",
		Long: `Compose three single-channel images into an RGB image.

Channels are given either as three positional files (red, green, blue) with
shared scaling flags, or through a YAML config (--config) that can scale
each channel independently.

In rgb mode each channel is normalized on its own with the configured
interval and stretch. In lupton mode all channels share a per-pixel asinh
scale factor derived from their mean intensity, preserving the hue of
bright objects.`,
		Example: `  astroviz compose r.tiff g.tiff b.tiff -o out.png --interval zscale --stretch asinh
  astroviz compose --config composite.yaml
  astroviz compose --config composite.yaml --watch`,
		Args: cobra.RangeArgs(0, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			load := func() (*config.Config, error) {
				cfg, err := composeConfig(cmd, args, cfgPath, &scaling, mode, minimum, luptonStretch, q, workers)
				if err != nil {
					return nil, err
				}
				if output != "" {
					cfg.Output = output
				}
				if cfg.Output == "" {
					return nil, fmt.Errorf("no output path: pass --output or set output in the config")
				}
				return cfg, nil
			}

			run := func(cfg *config.Config) error {
				start := time.Now()
				pm, err := composeOnce(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				if err := savePixmap(pm, cfg.Output, jpegQuality); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d) in %s\n",
					cfg.Output, pm.Width(), pm.Height(), time.Since(start).Round(time.Millisecond))
				return nil
			}

			cfg, err := load()
			if err != nil {
				return err
			}
			if err := run(cfg); err != nil {
				return err
			}
			if !watchInputs {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			// The watch list is fixed at startup; config edits that move
			// the inputs need a restart.
			paths := cfg.Files()
			if cfgPath != "" {
				paths = append(paths, cfgPath)
			}
			err = watch.Files(ctx, paths, 0, func() {
				// Reload so config edits take effect on the re-render.
				fresh, err := load()
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "compose: %v\n", err)
					return
				}
				if err := run(fresh); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "compose: %v\n", err)
				}
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&cfgPath, "config", "c", "", "YAML composition config")
	fl.StringVarP(&output, "output", "o", "", "output image path (.png, .jpg, .tiff)")
	fl.StringVar(&mode, "mode", config.ModeRGB, "composition mode: rgb or lupton")
	scaling.register(cmd)
	fl.Float64Var(&minimum, "minimum", 0, "black point subtracted from all channels (lupton mode)")
	fl.Float64Var(&luptonStretch, "lupton-stretch", 0, "linear span in data units (lupton mode, 0 = default 5)")
	fl.Float64Var(&q, "q", 0, "asinh softening (lupton mode, 0 = default 8)")
	fl.IntVar(&workers, "workers", 0, "composition goroutines (0 = GOMAXPROCS)")
	fl.IntVar(&jpegQuality, "jpeg-quality", 0, "JPEG quality 1-100 (0 = encoder default)")
	fl.BoolVar(&watchInputs, "watch", false, "re-compose whenever an input or the config changes")

	return cmd
}

// composeConfig merges the config file and command line into one Config.
// Positional channel files and flags fill in whatever the file leaves
// unset; with no --config the flags describe everything.
func composeConfig(cmd *cobra.Command, args []string, cfgPath string, scaling *scalingFlags,
	mode string, minimum, luptonStretch, q float64, workers int) (*config.Config, error) {
	if cfgPath != "" {
		if len(args) != 0 {
			return nil, fmt.Errorf("pass either --config or three channel files, not both")
		}
		return config.Load(cfgPath)
	}
	if len(args) != 3 {
		return nil, fmt.Errorf("expected three channel files (red green blue), got %d", len(args))
	}

	// Fail on bad flag values here rather than after the channels load.
	if _, err := scaling.normalizer(); err != nil {
		return nil, err
	}

	ch := config.Channel{
		Interval: config.IntervalConfig{
			Type:       scaling.interval,
			Percentile: scaling.percentile,
			Contrast:   scaling.contrast,
			NSamples:   scaling.nsamples,
		},
		Stretch: config.StretchConfig{Type: scaling.stretch, A: scaling.param},
	}
	if scaling.interval == "manual" {
		ch.Interval.Vmin = &scaling.vmin
		ch.Interval.Vmax = &scaling.vmax
	}

	cfg := &config.Config{
		Mode:    mode,
		Workers: workers,
		Lupton: config.Lupton{
			Minimum: []float64{minimum},
			Stretch: luptonStretch,
			Q:       q,
		},
	}
	cfg.Channels.Red, cfg.Channels.Green, cfg.Channels.Blue = ch, ch, ch
	cfg.Channels.Red.File = args[0]
	cfg.Channels.Green.File = args[1]
	cfg.Channels.Blue.File = args[2]
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// composeOnce loads the three channels concurrently and composes them.
func composeOnce(ctx context.Context, cfg *config.Config) (*astroviz.Pixmap, error) {
	var grids [3]*astroviz.Grid
	g, _ := errgroup.WithContext(ctx)
	for i, path := range cfg.Files() {
		i, path := i, path
		g.Go(func() error {
			grid, err := astroviz.LoadGrid(path)
			if err != nil {
				return err
			}
			grids[i] = grid
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if cfg.Mode == config.ModeLupton {
		mins := cfg.Lupton.Minimums()
		return astroviz.MakeLuptonRGB(grids[0], grids[1], grids[2],
			astroviz.WithChannelMinimums(mins[0], mins[1], mins[2]),
			astroviz.WithLuptonStretch(cfg.Lupton.Stretch),
			astroviz.WithQ(cfg.Lupton.Q),
			astroviz.WithLuptonWorkers(cfg.Workers),
		)
	}

	var norms [3]astroviz.Normalizer
	for i, ch := range []config.Channel{cfg.Channels.Red, cfg.Channels.Green, cfg.Channels.Blue} {
		n, err := ch.Normalizer()
		if err != nil {
			return nil, err
		}
		norms[i] = n
	}
	return astroviz.MakeRGB(grids[0], grids[1], grids[2],
		astroviz.WithNormalizers(norms[0], norms[1], norms[2]),
		astroviz.WithWorkers(cfg.Workers),
	)
}
