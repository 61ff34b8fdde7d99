package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hexpanel/hexpanel/internal/cache/memo"
	"github.com/hexpanel/hexpanel/internal/core/model"
	"github.com/hexpanel/hexpanel/internal/grid"
	"github.com/hexpanel/hexpanel/internal/logger"
	"github.com/hexpanel/hexpanel/internal/panel"
	"github.com/hexpanel/hexpanel/internal/render"
	"github.com/hexpanel/hexpanel/internal/source/csvsource"
)

// set via ldflags during build
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hexpanel",
		Short: "hexpanel: tessellate stored polygons into H3 coverage/polyfill layers",
		RunE: func(cmd *cobra.Command, args []string) error {
			showVersion, _ := cmd.Flags().GetBool("version")
			if showVersion {
				fmt.Printf("hexpanel version %s (commit: %s, built: %s)\n", version, commit, date)
				return nil
			}
			return cmd.Help()
		},
	}

	cmd.Flags().BoolP("version", "v", false, "Show version information")
	cmd.AddCommand(newLayersCommand())

	return cmd
}

func newLayersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layers",
		Short: "Derive the coverage/polyfill layer sets for one scale and print them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			csvPath, _ := cmd.Flags().GetString("csv")
			rawScale, _ := cmd.Flags().GetString("scale")
			res, _ := cmd.Flags().GetInt("res")
			showShape, _ := cmd.Flags().GetBool("show-shape")

			scale, err := model.ParseScale(rawScale)
			if err != nil {
				return err
			}
			preset, ok := render.PresetFor(scale)
			if !ok {
				return fmt.Errorf("no view preset for scale %q", scale)
			}
			res, err = resolveRes(preset, res)
			if err != nil {
				return err
			}

			idx, err := grid.Detect()
			if err != nil {
				return err
			}

			src, err := csvsource.New(csvPath)
			if err != nil {
				return err
			}

			zl := logger.Build(logger.Config{Level: "warn", Component: "hexpanel"}, io.Discard)
			engine := panel.New(logger.NewSlog(&zl), src, idx, memo.NewMemory(8, time.Hour))

			payload, err := engine.Layers(cmd.Context(), model.LayersRequest{
				Scale:      scale,
				Resolution: res,
				ShowShape:  showShape,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		},
	}

	cmd.SilenceUsage = true

	cmd.Flags().String("csv", "data/h3_polygon_spherical.csv", "CSV dataset with scale_of_polygon and geog columns")
	cmd.Flags().String("scale", string(model.ScaleLocal), "Scale of polygon (Global|Local)")
	cmd.Flags().Int("res", presetRes, "H3 resolution (-1 uses the scale preset default)")
	cmd.Flags().Bool("show-shape", true, "Include the original shape outline layer")

	return cmd
}

// presetRes is the only sentinel for "use the scale preset default"; every
// other out-of-range value is rejected.
const presetRes = -1

func resolveRes(preset render.Preset, res int) (int, error) {
	if res == presetRes {
		return preset.DefaultRes, nil
	}
	if err := grid.ValidateResolution(res); err != nil {
		return 0, err
	}
	return preset.ClampRes(res), nil
}
