package render

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/lineagekit/lineage/pkg/anim"
	"github.com/lineagekit/lineage/pkg/config"
	"github.com/lineagekit/lineage/pkg/family"
	"github.com/lineagekit/lineage/pkg/layout"
)

// FrameDrawer paints one DrawState onto a canvas sized for the layout plus
// the configured padding on every side. The drawer itself is immutable, so
// one instance can serve concurrent Draw calls.
type FrameDrawer struct {
	layout *layout.GraphLayout
	fam    *family.Family
	cfg    config.Config
	width  int
	height int
}

// NewFrameDrawer precomputes the canvas geometry and loads the name font.
func NewFrameDrawer(g *layout.GraphLayout, f *family.Family, cfg config.Config) *FrameDrawer {
	padding := cfg.Style.Dimensions.Padding
	return &FrameDrawer{
		layout: g,
		fam:    f,
		cfg:    cfg,
		width:  int(g.Width) + 2*padding,
		height: int(g.Height) + 2*padding,
	}
}

// Size returns the canvas dimensions in pixels.
func (d *FrameDrawer) Size() (int, int) { return d.width, d.height }

// Draw renders one frame: background, then lines, then person blocks on
// top, matching the layered look of the final tree.
func (d *FrameDrawer) Draw(state anim.DrawState) image.Image {
	dc := gg.NewContext(d.width, d.height)
	// One face per context; truetype glyph caches are not goroutine safe.
	dc.SetFontFace(loadFace(float64(d.cfg.Style.Dimensions.FontSizeName)))

	dc.SetColor(d.cfg.Style.Colors.Background.Color())
	dc.Clear()

	for _, ls := range state.Lines {
		d.drawLine(dc, ls)
	}

	// Family order keeps overlapping draws deterministic.
	for _, p := range d.fam.People() {
		opacity, ok := state.Persons[p.ID]
		if !ok || opacity <= 0 {
			continue
		}
		if node, found := d.layout.Node(layout.PersonNode(p.ID)); found {
			d.drawPerson(dc, node, p, opacity)
		}
	}

	return dc.Image()
}

func (d *FrameDrawer) drawLine(dc *gg.Context, ls anim.LineState) {
	points := anim.Partial(ls.Line.Points, ls.Progress)
	if len(points) < 2 {
		return
	}

	colors := d.cfg.Style.Colors
	dims := d.cfg.Style.Dimensions
	if ls.Line.Kind == layout.KindMarriage {
		dc.SetColor(colors.MarriageLine.Color())
		dc.SetLineWidth(float64(dims.LineWidthMarriage))
	} else {
		dc.SetColor(colors.ChildLine.Color())
		dc.SetLineWidth(float64(dims.LineWidthChild))
	}
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	pad := float64(dims.Padding)
	dc.NewSubPath()
	dc.MoveTo(points[0].X+pad, points[0].Y+pad)
	for _, p := range points[1:] {
		dc.LineTo(p.X+pad, p.Y+pad)
	}
	dc.Stroke()
}

func (d *FrameDrawer) drawPerson(dc *gg.Context, node *layout.NodeLayout, p *family.Person, opacity float64) {
	colors := d.cfg.Style.Colors
	dims := d.cfg.Style.Dimensions

	fill := colors.FemaleFill
	border := colors.FemaleBorder
	if p.Sex == family.SexMale {
		fill = colors.MaleFill
		border = colors.MaleBorder
	}

	pad := float64(dims.Padding)
	x := node.Left() + pad
	y := node.Top() + pad

	dc.DrawRoundedRectangle(x, y, node.Width, node.Height, float64(dims.CornerRadius))
	setColorAlpha(dc, fill, opacity)
	dc.FillPreserve()
	setColorAlpha(dc, border, opacity)
	dc.SetLineWidth(float64(dims.BorderWidth))
	dc.Stroke()

	setColorAlpha(dc, colors.Text, opacity)
	dc.DrawStringAnchored(p.Name, node.CX+pad, node.CY+pad, 0.5, 0.5)
}

func setColorAlpha(dc *gg.Context, c config.RGB, opacity float64) {
	dc.SetRGBA(float64(c[0])/255, float64(c[1])/255, float64(c[2])/255, opacity)
}
