package layout

import (
	"bytes"
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/lineagekit/lineage/pkg/errors"
	"github.com/lineagekit/lineage/pkg/family"
)

// formatPlain is Graphviz's plain text dump, the source of truth for node
// and edge coordinates.
const formatPlain = graphviz.Format("plain")

// Extract runs the dot layout engine over the family and returns pixel
// coordinates. scale converts layout inches to pixels (pass the configured
// DPI). Edge kinds are tagged and endpoints snapped to box borders before
// returning.
func Extract(ctx context.Context, f *family.Family, gens map[int]int, scale float64) (*GraphLayout, error) {
	plain, err := render(ctx, BuildDOT(f, gens), formatPlain)
	if err != nil {
		return nil, err
	}
	g, err := ParsePlain(string(plain), scale)
	if err != nil {
		return nil, err
	}
	for _, e := range g.Edges {
		if _, ok := g.Nodes[e.Tail]; !ok {
			return nil, errors.New(errors.ErrCodeLayoutEngine, "edge references unknown node %q", e.Tail)
		}
		if _, ok := g.Nodes[e.Head]; !ok {
			return nil, errors.New(errors.ErrCodeLayoutEngine, "edge references unknown node %q", e.Head)
		}
	}
	TagEdgeKinds(g)
	FixEndpoints(g)
	return g, nil
}

// RenderSVG lays out the family and renders it as a static SVG, useful for
// previewing the tree before committing to a video render.
func RenderSVG(ctx context.Context, f *family.Family, gens map[int]int) ([]byte, error) {
	return render(ctx, BuildDOT(f, gens), graphviz.SVG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutEngine, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutEngine, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutEngine, err, "run dot layout")
	}
	return buf.Bytes(), nil
}
