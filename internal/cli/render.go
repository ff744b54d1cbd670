package cli

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lineagekit/lineage/pkg/anim"
	"github.com/lineagekit/lineage/pkg/errors"
	"github.com/lineagekit/lineage/pkg/layout"
	"github.com/lineagekit/lineage/pkg/render"
)

const (
	formatPNG = "png"
	formatSVG = "svg"
)

// newRenderCmd creates the render command: a single static image of the
// fully revealed tree, either rasterized like a video frame or exported as
// graphviz SVG.
func newRenderCmd() *cobra.Command {
	var (
		input      string
		output     string
		configPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a static image of the family tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(output), ".")
			}
			if format != formatPNG && format != formatSVG {
				return errors.New(errors.ErrCodeInvalidInput, "unsupported format %q (png or svg)", format)
			}
			return runRender(cmd.Context(), input, output, configPath, format)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "family CSV file (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "tree.png", "output image file")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file (default: probe config.toml)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: png, svg (default: from output extension)")
	cmd.MarkFlagRequired("input")
	return cmd
}

func runRender(ctx context.Context, input, output, configPath, format string) error {
	p, err := loadPipeline(ctx, input, configPath)
	if err != nil {
		return err
	}

	switch format {
	case formatSVG:
		svg, err := layout.RenderSVG(ctx, p.fam, p.gens)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, svg, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
		}

	case formatPNG:
		actions, err := p.sequence()
		if err != nil {
			return err
		}
		// The last timeline frame is the completed tree.
		tl := anim.NewTimeline(actions, p.cfg.Animation)
		drawer := render.NewFrameDrawer(p.layout, p.fam, p.cfg)
		img := drawer.Draw(tl.StateAt(tl.FrameCount() - 1))

		f, err := os.Create(output)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create %s", output)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", output)
		}
		if err := f.Close(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
		}
	}

	printSuccess("Rendered %s", strings.ToUpper(format))
	printFile(output)
	printStats(p.fam.Len(), len(p.scenes), 0)
	return nil
}
