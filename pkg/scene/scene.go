// Package scene computes the deterministic reveal order for a family.
//
// The planner walks the family breadth-first by generation: independent root
// couples first, then each generation's sibling groups followed by the
// spouses marrying into them. All tie-breaks follow family iteration order
// (CSV row order), so the same input always produces the same plan.
package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lineagekit/lineage/pkg/errors"
	"github.com/lineagekit/lineage/pkg/family"
)

// Scene is an ordered group of person IDs revealed together.
type Scene []int

// Generations assigns a generation depth to every person: parentless people
// are depth 0, a child sits one below its deepest parent, and spouses are
// leveled to the deeper of the pair.
//
// Returns STRUCTURAL_GRAPH when any person cannot be placed (a relationship
// cycle or an otherwise unresolvable parent chain).
func Generations(f *family.Family) (map[int]int, error) {
	gens := make(map[int]int, f.Len())
	for _, p := range f.People() {
		if len(p.ParentIDs) == 0 {
			gens[p.ID] = 0
		}
	}

	// Children: depth = max(parent depths) + 1, to a fixpoint. The pass
	// limit guards against pathological inputs; a clean run needs at most
	// one pass per generation.
	limit := f.Len() + 2
	for pass := 0; ; pass++ {
		if pass >= limit {
			return nil, errors.New(errors.ErrCodeStructuralGraph, "generation assignment did not converge after %d passes", pass)
		}
		changed := false
		for _, p := range f.People() {
			if len(p.ParentIDs) == 0 {
				continue
			}
			depth, ok := maxParentDepth(gens, p.ParentIDs)
			if !ok {
				continue
			}
			if g, assigned := gens[p.ID]; !assigned || g != depth+1 {
				gens[p.ID] = depth + 1
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	// Spouses: level each symmetric pair to the deeper of the two. The
	// adjustment only ever raises values, so it terminates.
	for pass := 0; ; pass++ {
		if pass >= limit {
			return nil, errors.New(errors.ErrCodeStructuralGraph, "spouse leveling did not converge after %d passes", pass)
		}
		changed := false
		for _, p := range f.People() {
			sp := f.Spouse(p.ID)
			if sp == nil {
				continue
			}
			ga, okA := gens[p.ID]
			gb, okB := gens[sp.ID]
			if !okA || !okB {
				continue
			}
			if ga < gb {
				gens[p.ID] = gb
				changed = true
			} else if gb < ga {
				gens[sp.ID] = ga
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	if unplaced := unplacedIDs(f, gens); len(unplaced) > 0 {
		return nil, errors.New(errors.ErrCodeStructuralGraph, "cannot place people %v: unresolved or cyclic parent chain", unplaced)
	}
	return gens, nil
}

func maxParentDepth(gens map[int]int, parentIDs []int) (int, bool) {
	depth := 0
	for _, pid := range parentIDs {
		g, ok := gens[pid]
		if !ok {
			return 0, false
		}
		if g > depth {
			depth = g
		}
	}
	return depth, true
}

func unplacedIDs(f *family.Family, gens map[int]int) []int {
	var out []int
	for _, p := range f.People() {
		if _, ok := gens[p.ID]; !ok {
			out = append(out, p.ID)
		}
	}
	return out
}

// Plan computes the full reveal order. Every person appears in exactly one
// scene:
//
//  1. Roots (parentless, not married into a deeper branch) each get a
//     single-person scene, immediately followed by their spouse's scene.
//  2. Per generation, each sibling group (children sharing the same parent
//     set, couples and lone parents alike) gets one scene, then each newly
//     revealed child's spouse gets a single-person scene.
//
// Returns STRUCTURAL_GRAPH when no progress can be made before everyone is
// revealed.
func Plan(f *family.Family) ([]Scene, error) {
	gens, err := Generations(f)
	if err != nil {
		return nil, err
	}

	var scenes []Scene
	shown := make(map[int]bool, f.Len())
	reveal := func(ids ...int) {
		scenes = append(scenes, Scene(ids))
		for _, id := range ids {
			shown[id] = true
		}
	}

	// Roots. A parentless person whose spouse has parents marries into a
	// later generation and is revealed there instead.
	for _, p := range f.People() {
		if len(p.ParentIDs) > 0 || shown[p.ID] {
			continue
		}
		sp := f.Spouse(p.ID)
		if sp != nil && len(sp.ParentIDs) > 0 {
			continue
		}
		reveal(p.ID)
		if sp != nil && !shown[sp.ID] {
			reveal(sp.ID)
		}
	}

	maxGen := 0
	for _, g := range gens {
		if g > maxGen {
			maxGen = g
		}
	}

	for gen := 0; gen <= maxGen; gen++ {
		// Sibling groups whose parents are all visible and whose deepest
		// parent sits in this generation.
		var keys []string
		groups := make(map[string][]int)
		for _, p := range f.People() {
			if shown[p.ID] || len(p.ParentIDs) == 0 {
				continue
			}
			if !allShown(shown, p.ParentIDs) {
				continue
			}
			depth, _ := maxParentDepth(gens, p.ParentIDs)
			if depth != gen {
				continue
			}
			key := parentKey(p.ParentIDs)
			if _, ok := groups[key]; !ok {
				keys = append(keys, key)
			}
			groups[key] = append(groups[key], p.ID)
		}

		var newChildren []int
		for _, key := range keys {
			reveal(groups[key]...)
			newChildren = append(newChildren, groups[key]...)
		}

		// Spouses marrying into the newly revealed children.
		for _, id := range newChildren {
			if sp := f.Spouse(id); sp != nil && !shown[sp.ID] {
				reveal(sp.ID)
			}
		}
	}

	if len(shown) != f.Len() {
		var left []int
		for _, p := range f.People() {
			if !shown[p.ID] {
				left = append(left, p.ID)
			}
		}
		return nil, errors.New(errors.ErrCodeStructuralGraph, "scene planning deadlock: people %v cannot be revealed", left)
	}
	return scenes, nil
}

func allShown(shown map[int]bool, ids []int) bool {
	for _, id := range ids {
		if !shown[id] {
			return false
		}
	}
	return true
}

// parentKey builds the sibling-group key: the sorted parent ID set.
func parentKey(parentIDs []int) string {
	ids := make([]int, len(parentIDs))
	copy(ids, parentIDs)
	sort.Ints(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}
