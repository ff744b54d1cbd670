package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lineagekit/lineage/pkg/anim"
	"github.com/lineagekit/lineage/pkg/encode"
	"github.com/lineagekit/lineage/pkg/render"
)

// videoOpts are the flags shared by the flow and animate commands.
type videoOpts struct {
	input      string
	output     string
	configPath string
	keepFrames bool
	ffmpegBin  string
}

func addVideoFlags(cmd *cobra.Command, opts *videoOpts, defaultOutput string) {
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "family CSV file (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultOutput, "output video file")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file (default: probe config.toml)")
	cmd.Flags().BoolVar(&opts.keepFrames, "keep-frames", false, "keep the intermediate frame files")
	cmd.Flags().StringVar(&opts.ffmpegBin, "ffmpeg", "", "ffmpeg binary to use (default: ffmpeg from PATH)")
	cmd.MarkFlagRequired("input")
}

// renderVideo runs the back half shared by both video commands: frames to a
// session-scoped temp dir, then ffmpeg.
func renderVideo(ctx context.Context, p *pipeline, tl *anim.Timeline, opts *videoOpts) error {
	logger := loggerFromContext(ctx)

	drawer := render.NewFrameDrawer(p.layout, p.fam, p.cfg)
	w, h := drawer.Size()
	logger.Debug("canvas", "width", w, "height", h, "frames", tl.FrameCount())

	framesDir := filepath.Join(os.TempDir(), "lineage-"+uuid.NewString())
	if !opts.keepFrames {
		defer os.RemoveAll(framesDir)
	}

	track := newProgress(logger)
	if err := writeFramesWithProgress(ctx, tl, drawer, framesDir); err != nil {
		return err
	}
	track.done(fmt.Sprintf("Rendered %d frames", tl.FrameCount()))

	spinner := newSpinner(ctx, "encoding video")
	spinner.Start()
	enc := encode.New(encode.WithBinary(opts.ffmpegBin))
	err := enc.Encode(ctx, filepath.Join(framesDir, render.FramePattern), opts.output, p.cfg.Animation.FPS)
	spinner.Stop()
	if err != nil {
		return err
	}

	printSuccess("Rendered %.1fs video", tl.Duration())
	printFile(opts.output)
	printStats(p.fam.Len(), len(p.scenes), tl.FrameCount())
	if opts.keepFrames {
		printInfo("frames kept in %s", framesDir)
	}
	return nil
}
