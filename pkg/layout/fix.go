package layout

import (
	"math"
	"strings"
)

// pointNodeMax: nodes smaller than this on both axes are treated as point
// junctions rather than boxes.
const pointNodeMax = 2

// TagEdgeKinds classifies every edge. An edge touching a couple junction is
// a marriage edge when its other end is one of the junction's spouses, and a
// parent-child edge otherwise. Person-to-person edges (lone parents) are
// always parent-child.
func TagEdgeKinds(g *GraphLayout) {
	for _, e := range g.Edges {
		e.Kind = classify(e)
	}
}

func classify(e *EdgeLayout) EdgeKind {
	junction, person := "", ""
	switch {
	case isCoupleName(e.Tail):
		junction, person = e.Tail, e.Head
	case isCoupleName(e.Head):
		junction, person = e.Head, e.Tail
	default:
		return KindParentChild
	}
	if id, ok := PersonID(person); ok && coupleHasSpouse(junction, id) {
		return KindMarriage
	}
	return KindParentChild
}

func isCoupleName(name string) bool {
	return strings.HasPrefix(name, "couple_")
}

func coupleHasSpouse(junction string, id int) bool {
	rest := strings.TrimPrefix(junction, "couple_")
	a, b, ok := strings.Cut(rest, "_")
	if !ok {
		return false
	}
	ida, okA := PersonID(a)
	idb, okB := PersonID(b)
	return (okA && ida == id) || (okB && idb == id)
}

// FixEndpoints moves every edge endpoint onto the border of its node.
// Graphviz clips endpoints against an elliptical approximation of the box,
// which leaves visible gaps when the boxes are drawn as rectangles. Each
// endpoint snaps to the center of the box side facing the adjacent polyline
// point; junction endpoints snap to the junction center. The head of a
// tagged parent-child edge always lands on the child's top-center, whatever
// direction the polyline arrives from.
func FixEndpoints(g *GraphLayout) {
	for _, e := range g.Edges {
		if len(e.Points) == 0 {
			continue
		}
		if tail, ok := g.Nodes[e.Tail]; ok {
			toward := e.Points[0]
			if len(e.Points) > 1 {
				toward = e.Points[1]
			}
			e.Points[0] = snapToBorder(tail, toward)
		}
		if head, ok := g.Nodes[e.Head]; ok {
			switch {
			case e.Kind == KindParentChild && !isPointNode(head):
				e.Points[len(e.Points)-1] = Point{X: head.CX, Y: head.Top()}
			default:
				toward := e.Points[len(e.Points)-1]
				if len(e.Points) > 1 {
					toward = e.Points[len(e.Points)-2]
				}
				e.Points[len(e.Points)-1] = snapToBorder(head, toward)
			}
		}
	}
}

func isPointNode(n *NodeLayout) bool {
	return n.Width < pointNodeMax && n.Height < pointNodeMax
}

// snapToBorder picks the side-center of node nearest the direction of
// toward. Point junctions collapse to their center.
func snapToBorder(node *NodeLayout, toward Point) Point {
	if isPointNode(node) {
		return node.Center()
	}

	dx := toward.X - node.CX
	dy := toward.Y - node.CY
	if math.Abs(dy) > math.Abs(dx) {
		if dy > 0 {
			return Point{X: node.CX, Y: node.Bottom()}
		}
		return Point{X: node.CX, Y: node.Top()}
	}
	if dx > 0 {
		return Point{X: node.Right(), Y: node.CY}
	}
	return Point{X: node.Left(), Y: node.CY}
}

// ScaleNodeWidths widens (or narrows) every box node around its center and
// re-snaps the edge endpoints. Junctions keep their size.
func ScaleNodeWidths(g *GraphLayout, factor float64) {
	for _, n := range g.Nodes {
		if n.Width >= pointNodeMax {
			n.Width *= factor
		}
	}
	FixEndpoints(g)
}
