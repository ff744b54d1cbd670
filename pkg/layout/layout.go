// Package layout computes pixel positions for a family tree.
//
// The tree is expressed as Graphviz DOT (one box per person plus a point
// junction per married couple), laid out with the dot engine, and read back
// from Graphviz's plain text dump. All coordinates in a [GraphLayout] are
// pixels with the origin at the top-left corner.
package layout

import (
	"fmt"
	"strconv"
)

// Point is a pixel coordinate, origin top-left.
type Point struct {
	X, Y float64
}

// NodeLayout is the placed bounding box of one graph node, stored as a
// center point plus extents.
type NodeLayout struct {
	Name   string
	CX, CY float64
	Width  float64
	Height float64
}

// Left returns the x of the node's left edge.
func (n *NodeLayout) Left() float64 { return n.CX - n.Width/2 }

// Right returns the x of the node's right edge.
func (n *NodeLayout) Right() float64 { return n.CX + n.Width/2 }

// Top returns the y of the node's top edge.
func (n *NodeLayout) Top() float64 { return n.CY - n.Height/2 }

// Bottom returns the y of the node's bottom edge.
func (n *NodeLayout) Bottom() float64 { return n.CY + n.Height/2 }

// Center returns the node's center point.
func (n *NodeLayout) Center() Point { return Point{X: n.CX, Y: n.CY} }

// EdgeKind distinguishes the two visual line styles.
type EdgeKind string

const (
	KindMarriage    EdgeKind = "marriage"
	KindParentChild EdgeKind = "parent-child"
)

// EdgeLayout is one routed edge: a polyline from the tail node to the head
// node. Points run tail to head.
type EdgeLayout struct {
	Tail   string
	Head   string
	Kind   EdgeKind
	Points []Point
}

// GraphLayout is the full placed graph in pixels.
type GraphLayout struct {
	Width  float64
	Height float64
	Nodes  map[string]*NodeLayout
	Edges  []*EdgeLayout
}

// Node looks up a placed node by name.
func (g *GraphLayout) Node(name string) (*NodeLayout, bool) {
	n, ok := g.Nodes[name]
	return n, ok
}

// PersonNode is the DOT node name for a person.
func PersonNode(id int) string { return strconv.Itoa(id) }

// CoupleNode is the DOT name of the invisible junction between two spouses.
// The lower ID always comes first so both spouses map to the same name.
func CoupleNode(a, b int) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("couple_%d_%d", a, b)
}

// PersonID parses a person node name back to its ID.
func PersonID(name string) (int, bool) {
	id, err := strconv.Atoi(name)
	if err != nil {
		return 0, false
	}
	return id, true
}
