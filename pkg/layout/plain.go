package layout

import (
	"strconv"
	"strings"

	"github.com/lineagekit/lineage/pkg/errors"
)

// ParsePlain reads Graphviz plain output into a pixel-space layout.
//
// The plain format is line oriented:
//
//	graph scale width height
//	node name x y width height label style shape color fillcolor
//	edge tail head n x1 y1 .. xn yn [label xl yl] style color
//	stop
//
// Coordinates are inches with the Y axis pointing up; scale converts inches
// to pixels (scale = DPI) and flips Y so the origin lands at the top-left.
func ParsePlain(plain string, scale float64) (*GraphLayout, error) {
	g := &GraphLayout{Nodes: make(map[string]*NodeLayout)}

	for _, line := range strings.Split(strings.TrimSpace(plain), "\n") {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "graph":
			if len(parts) < 4 {
				return nil, errors.New(errors.ErrCodeLayoutEngine, "malformed graph line: %q", line)
			}
			w, err1 := strconv.ParseFloat(parts[2], 64)
			h, err2 := strconv.ParseFloat(parts[3], 64)
			if err1 != nil || err2 != nil {
				return nil, errors.New(errors.ErrCodeLayoutEngine, "malformed graph line: %q", line)
			}
			g.Width = w * scale
			g.Height = h * scale

		case "node":
			if len(parts) < 6 {
				return nil, errors.New(errors.ErrCodeLayoutEngine, "malformed node line: %q", line)
			}
			vals, err := parseFloats(parts[2:6])
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeLayoutEngine, err, "malformed node line: %q", line)
			}
			name := parts[1]
			g.Nodes[name] = &NodeLayout{
				Name:   name,
				CX:     vals[0] * scale,
				CY:     g.Height - vals[1]*scale,
				Width:  vals[2] * scale,
				Height: vals[3] * scale,
			}

		case "edge":
			if len(parts) < 4 {
				return nil, errors.New(errors.ErrCodeLayoutEngine, "malformed edge line: %q", line)
			}
			n, err := strconv.Atoi(parts[3])
			if err != nil || n < 1 || len(parts) < 4+2*n {
				return nil, errors.New(errors.ErrCodeLayoutEngine, "malformed edge line: %q", line)
			}
			vals, err := parseFloats(parts[4 : 4+2*n])
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeLayoutEngine, err, "malformed edge line: %q", line)
			}
			points := make([]Point, n)
			for i := 0; i < n; i++ {
				points[i] = Point{
					X: vals[2*i] * scale,
					Y: g.Height - vals[2*i+1]*scale,
				}
			}
			g.Edges = append(g.Edges, &EdgeLayout{
				Tail:   parts[1],
				Head:   parts[2],
				Points: points,
			})

		case "stop":
			return g, nil
		}
	}
	return g, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
