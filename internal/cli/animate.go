package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lineagekit/lineage/pkg/anim"
)

// newAnimateCmd creates the animate command: whole generations fade in one
// after another instead of person-by-person reveals.
func newAnimateCmd() *cobra.Command {
	var opts videoOpts

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Render the generation-fade video",
		Long:  `Render a video in which each generation of the family fades in as a group, oldest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnimate(cmd.Context(), &opts)
		},
	}

	addVideoFlags(cmd, &opts, "tree.mp4")
	return cmd
}

func runAnimate(ctx context.Context, opts *videoOpts) error {
	p, err := loadPipeline(ctx, opts.input, opts.configPath)
	if err != nil {
		return err
	}

	actions, err := p.fadeSequence()
	if err != nil {
		return err
	}
	tl := anim.NewFadeTimeline(actions, p.cfg.Animation)
	return renderVideo(ctx, p, tl, opts)
}
