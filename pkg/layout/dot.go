package layout

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/lineagekit/lineage/pkg/family"
)

const (
	fillMale   = "lightblue"
	fillFemale = "lightpink"
)

// BuildDOT serializes the family as a Graphviz digraph. Each person is a
// rounded box; each symmetric couple gets an invisible point junction placed
// between the spouses on the same rank. Marriage edges run spouse to
// junction, child edges run junction (or lone parent) to child.
//
// gens is the generation map from the scene planner; people of the same
// generation share a rank so married-in spouses line up with their partners.
func BuildDOT(f *family.Family, gens map[int]int) string {
	var buf bytes.Buffer
	buf.WriteString("digraph family_tree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  splines=polyline;\n")
	buf.WriteString("  nodesep=0.8;\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  node [fontname=\"Helvetica\", fontsize=11, shape=box, style=\"filled,rounded\"];\n")
	buf.WriteString("\n")

	for _, p := range f.People() {
		fill := fillMale
		if p.Sex == family.SexFemale {
			fill = fillFemale
		}
		label := fmt.Sprintf("%s\\n%s", p.Name, p.BirthDate.Format("2006-01-02"))
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%s];\n", PersonNode(p.ID), label, fill)
	}
	buf.WriteString("\n")

	// Marriage junctions and the edges hanging off them.
	coupleKids := make(map[int]bool)
	seen := make(map[string]bool)
	for _, p := range f.People() {
		sp := f.Spouse(p.ID)
		if sp == nil {
			continue
		}
		mid := CoupleNode(p.ID, sp.ID)
		if seen[mid] {
			continue
		}
		seen[mid] = true

		a, b := p.ID, sp.ID
		if b < a {
			a, b = b, a
		}

		fmt.Fprintf(&buf, "  %q [label=\"\", shape=point, width=0.01, height=0.01];\n", mid)
		fmt.Fprintf(&buf, "  { rank=same; %q; %q; %q; }\n", PersonNode(a), mid, PersonNode(b))
		fmt.Fprintf(&buf, "  %q -> %q [dir=none];\n", PersonNode(a), mid)
		fmt.Fprintf(&buf, "  %q -> %q [dir=none];\n", mid, PersonNode(b))

		for _, child := range f.CoupleChildren(a, b) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", mid, PersonNode(child.ID))
			coupleKids[child.ID] = true
		}
	}

	// Children not covered by a junction get direct edges from each parent.
	for _, p := range f.People() {
		if len(p.ParentIDs) == 0 || coupleKids[p.ID] {
			continue
		}
		for _, pid := range p.ParentIDs {
			fmt.Fprintf(&buf, "  %q -> %q;\n", PersonNode(pid), PersonNode(p.ID))
		}
	}
	buf.WriteString("\n")

	// One rank group per generation.
	byGen := make(map[int][]int)
	for _, p := range f.People() {
		byGen[gens[p.ID]] = append(byGen[gens[p.ID]], p.ID)
	}
	levels := make([]int, 0, len(byGen))
	for g := range byGen {
		levels = append(levels, g)
	}
	sort.Ints(levels)
	for _, g := range levels {
		buf.WriteString("  { rank=same;")
		for _, id := range byGen[g] {
			fmt.Fprintf(&buf, " %q;", PersonNode(id))
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}
