// Package anim turns a scene order plus a placed layout into a timed
// animation: an ordered action sequence, and a pure frame to draw-state
// timeline over it.
package anim

import (
	"github.com/lineagekit/lineage/pkg/errors"
	"github.com/lineagekit/lineage/pkg/family"
	"github.com/lineagekit/lineage/pkg/layout"
	"github.com/lineagekit/lineage/pkg/scene"
)

// ActionType tags the two animation primitives.
type ActionType string

const (
	ActionAppear   ActionType = "appear"
	ActionDrawLine ActionType = "draw_line"
)

// Line is one animatable relationship line. Marriage lines are the two
// layout half-edges merged into a single polyline running spouse to spouse;
// parent-child lines keep their layout polyline. From/To are person IDs; for
// a child line fed by a junction, From is the lower-ID parent.
type Line struct {
	Kind   layout.EdgeKind
	From   int
	To     int
	Points []layout.Point
}

// Action is one step of the animation: either a group of people appearing,
// or a single line being drawn.
type Action struct {
	Type      ActionType
	PersonIDs []int // appear
	Line      *Line // draw_line
}

// BuildSequence merges the scene order with the layout into the ordered
// action list. Per scene: one Appear for the whole group, then the lines the
// group unlocks in person order, marriage before parent-child per person.
// Marriage lines are emitted once per couple, the moment both spouses are
// visible.
//
// The output depends only on the inputs; reruns produce identical sequences.
func BuildSequence(f *family.Family, g *layout.GraphLayout, scenes []scene.Scene) ([]Action, error) {
	var actions []Action
	shown := make(map[int]bool, f.Len())
	coupleDone := make(map[string]bool)

	for _, sc := range scenes {
		if len(sc) == 0 {
			continue
		}
		ids := make([]int, len(sc))
		copy(ids, sc)
		actions = append(actions, Action{Type: ActionAppear, PersonIDs: ids})
		for _, id := range sc {
			shown[id] = true
		}

		for _, id := range sc {
			p := f.Get(id)
			if p == nil {
				return nil, errors.New(errors.ErrCodeLayoutConsistency, "scene references unknown person %d", id)
			}
			if _, ok := g.Node(layout.PersonNode(id)); !ok {
				return nil, errors.New(errors.ErrCodeLayoutConsistency, "person %d has no layout node", id)
			}

			if sp := f.Spouse(id); sp != nil && shown[sp.ID] {
				key := layout.CoupleNode(id, sp.ID)
				if !coupleDone[key] {
					coupleDone[key] = true
					line, err := marriageLine(g, id, sp.ID)
					if err != nil {
						return nil, err
					}
					actions = append(actions, Action{Type: ActionDrawLine, Line: line})
				}
			}

			if len(p.ParentIDs) > 0 && allVisible(shown, p.ParentIDs) {
				lines, err := childLines(g, p)
				if err != nil {
					return nil, err
				}
				for _, line := range lines {
					actions = append(actions, Action{Type: ActionDrawLine, Line: line})
				}
			}
		}
	}
	return actions, nil
}

func allVisible(shown map[int]bool, ids []int) bool {
	for _, id := range ids {
		if !shown[id] {
			return false
		}
	}
	return true
}

// marriageLine merges the spouse-to-junction and junction-to-spouse layout
// edges into one polyline. The duplicated junction point is dropped so the
// line grows continuously from one spouse to the other.
func marriageLine(g *layout.GraphLayout, a, b int) (*Line, error) {
	if b < a {
		a, b = b, a
	}
	mid := layout.CoupleNode(a, b)

	first := findEdge(g, layout.PersonNode(a), mid)
	second := findEdge(g, mid, layout.PersonNode(b))
	if first == nil || second == nil {
		return nil, errors.New(errors.ErrCodeLayoutConsistency, "marriage edges for couple %d-%d missing from layout", a, b)
	}
	if len(first.Points) == 0 || len(second.Points) == 0 {
		return nil, errors.New(errors.ErrCodeLayoutConsistency, "marriage edges for couple %d-%d have no points", a, b)
	}

	points := make([]layout.Point, 0, len(first.Points)+len(second.Points)-1)
	points = append(points, first.Points...)
	points = append(points, second.Points[1:]...)

	return &Line{Kind: layout.KindMarriage, From: a, To: b, Points: points}, nil
}

// childLines collects the layout edges ending at the child: one junction
// edge for a married couple's child, or one edge per parent otherwise.
func childLines(g *layout.GraphLayout, child *family.Person) ([]*Line, error) {
	head := layout.PersonNode(child.ID)
	var lines []*Line
	for _, e := range g.Edges {
		if e.Head != head || e.Kind != layout.KindParentChild {
			continue
		}
		from := child.ParentIDs[0]
		if id, ok := layout.PersonID(e.Tail); ok {
			from = id
		} else if len(child.ParentIDs) > 1 && child.ParentIDs[1] < from {
			from = child.ParentIDs[1]
		}
		points := make([]layout.Point, len(e.Points))
		copy(points, e.Points)
		lines = append(lines, &Line{Kind: layout.KindParentChild, From: from, To: child.ID, Points: points})
	}
	if len(lines) == 0 {
		return nil, errors.New(errors.ErrCodeLayoutConsistency, "no parent-child edge for person %d in layout", child.ID)
	}
	return lines, nil
}

func findEdge(g *layout.GraphLayout, tail, head string) *layout.EdgeLayout {
	for _, e := range g.Edges {
		if e.Tail == tail && e.Head == head {
			return e
		}
	}
	return nil
}

// GenerationScenes folds the generation map into one scene per depth, people
// in family order. Feeding these to BuildSequence yields the whole-
// generation reveal used by the fade mode.
func GenerationScenes(f *family.Family, gens map[int]int) []scene.Scene {
	maxGen := 0
	for _, g := range gens {
		if g > maxGen {
			maxGen = g
		}
	}
	scenes := make([]scene.Scene, maxGen+1)
	for _, p := range f.People() {
		g := gens[p.ID]
		scenes[g] = append(scenes[g], p.ID)
	}
	out := scenes[:0]
	for _, sc := range scenes {
		if len(sc) > 0 {
			out = append(out, sc)
		}
	}
	return out
}
