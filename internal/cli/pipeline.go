package cli

import (
	"context"

	"github.com/lineagekit/lineage/pkg/anim"
	"github.com/lineagekit/lineage/pkg/config"
	"github.com/lineagekit/lineage/pkg/family"
	"github.com/lineagekit/lineage/pkg/layout"
	"github.com/lineagekit/lineage/pkg/scene"
)

// pipeline holds the stages every command shares: loaded family, config,
// scene plan, and the placed layout.
type pipeline struct {
	fam    *family.Family
	cfg    config.Config
	gens   map[int]int
	scenes []scene.Scene
	layout *layout.GraphLayout
}

// loadPipeline runs the common front half of every command: config, CSV,
// scene planning, and graphviz layout.
func loadPipeline(ctx context.Context, inputPath, configPath string) (*pipeline, error) {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	fam, err := family.LoadCSV(inputPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded family", "people", fam.Len())

	gens, err := scene.Generations(fam)
	if err != nil {
		return nil, err
	}
	scenes, err := scene.Plan(fam)
	if err != nil {
		return nil, err
	}
	logger.Debug("planned scenes", "scenes", len(scenes))

	track := newProgress(logger)
	g, err := layout.Extract(ctx, fam, gens, float64(cfg.Style.Dimensions.DPI))
	if err != nil {
		return nil, err
	}
	if s := cfg.Style.Dimensions.NodeWidthScale; s != 1 {
		layout.ScaleNodeWidths(g, s)
	}
	track.done("Computed layout")
	logger.Debug("layout", "width", g.Width, "height", g.Height, "edges", len(g.Edges))

	return &pipeline{fam: fam, cfg: cfg, gens: gens, scenes: scenes, layout: g}, nil
}

// sequence builds the flow action sequence for the planned scenes.
func (p *pipeline) sequence() ([]anim.Action, error) {
	return anim.BuildSequence(p.fam, p.layout, p.scenes)
}

// fadeSequence builds the whole-generation sequence for the animate
// command.
func (p *pipeline) fadeSequence() ([]anim.Action, error) {
	return anim.BuildSequence(p.fam, p.layout, anim.GenerationScenes(p.fam, p.gens))
}
