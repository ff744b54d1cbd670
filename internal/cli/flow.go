package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lineagekit/lineage/pkg/anim"
)

// newFlowCmd creates the flow command: the line-by-line animation where
// people appear scene by scene and relationship lines grow between them.
func newFlowCmd() *cobra.Command {
	var opts videoOpts
	var lineDuration float64

	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Render the flow-animation video",
		Long:  `Render a video in which people appear in genealogical order and marriage and parent-child lines are drawn between them, one by one.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlow(cmd.Context(), &opts, lineDuration)
		},
	}

	addVideoFlags(cmd, &opts, "tree.mp4")
	cmd.Flags().Float64Var(&lineDuration, "line-duration", 0, "seconds per line animation (overrides config)")
	return cmd
}

func runFlow(ctx context.Context, opts *videoOpts, lineDuration float64) error {
	p, err := loadPipeline(ctx, opts.input, opts.configPath)
	if err != nil {
		return err
	}
	if lineDuration > 0 {
		p.cfg.Animation.LineDuration = lineDuration
	}

	actions, err := p.sequence()
	if err != nil {
		return err
	}
	tl := anim.NewTimeline(actions, p.cfg.Animation)
	return renderVideo(ctx, p, tl, opts)
}
