// Package family provides the in-memory family graph model and its CSV loader.
//
// A [Family] is an arena of [Person] records keyed by integer ID. All
// relationships (parents, spouses) are stored as ID references resolved
// through the owning Family, never as object pointers, so irregular or even
// cyclic input data cannot create ownership cycles. Insertion order is
// preserved and mirrors CSV row order; downstream components use it for
// deterministic tie-breaking.
package family

import (
	"time"
)

// Sex is the recorded sex of a person, used for block styling.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// Person is a single family member.
//
// ParentIDs is typically 0-2 entries but not structurally bounded. SpouseID
// is nil for unmarried people. Meta holds values from unrecognized CSV
// columns.
type Person struct {
	ID        int
	Name      string
	BirthDate time.Time
	Sex       Sex
	ParentIDs []int
	SpouseID  *int
	Meta      map[string]string
}

// Family is the arena of people, preserving insertion order.
//
// The zero value is not usable; use [New].
type Family struct {
	byID  map[int]*Person
	order []int
}

// New returns an empty Family.
func New() *Family {
	return &Family{byID: make(map[int]*Person)}
}

// Add inserts a person. A person with a duplicate ID replaces the earlier
// entry in place, keeping the original position.
func (f *Family) Add(p *Person) {
	if _, ok := f.byID[p.ID]; !ok {
		f.order = append(f.order, p.ID)
	}
	f.byID[p.ID] = p
}

// Get returns the person with the given ID, or nil.
func (f *Family) Get(id int) *Person {
	return f.byID[id]
}

// Len returns the number of people.
func (f *Family) Len() int {
	return len(f.order)
}

// People returns all people in insertion order.
func (f *Family) People() []*Person {
	out := make([]*Person, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out
}

// IDs returns all person IDs in insertion order.
func (f *Family) IDs() []int {
	out := make([]int, len(f.order))
	copy(out, f.order)
	return out
}

// Spouse returns the spouse of the given person when a valid symmetric
// marriage reference exists, otherwise nil. An asymmetric pair (A references
// B but B does not reference A) is treated as unmarried.
func (f *Family) Spouse(id int) *Person {
	p := f.byID[id]
	if p == nil || p.SpouseID == nil {
		return nil
	}
	sp := f.byID[*p.SpouseID]
	if sp == nil || sp.SpouseID == nil || *sp.SpouseID != p.ID {
		return nil
	}
	return sp
}

// Parents returns the people listed as parents of the given person, in the
// order they are listed. Unresolvable IDs are skipped.
func (f *Family) Parents(id int) []*Person {
	p := f.byID[id]
	if p == nil {
		return nil
	}
	out := make([]*Person, 0, len(p.ParentIDs))
	for _, pid := range p.ParentIDs {
		if parent := f.byID[pid]; parent != nil {
			out = append(out, parent)
		}
	}
	return out
}

// Children returns every person that lists the given ID as a parent, in
// family iteration order.
func (f *Family) Children(id int) []*Person {
	var out []*Person
	for _, cid := range f.order {
		c := f.byID[cid]
		for _, pid := range c.ParentIDs {
			if pid == id {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// CoupleChildren returns the people that list both given IDs as parents, in
// family iteration order.
func (f *Family) CoupleChildren(a, b int) []*Person {
	var out []*Person
	for _, cid := range f.order {
		c := f.byID[cid]
		if containsID(c.ParentIDs, a) && containsID(c.ParentIDs, b) {
			out = append(out, c)
		}
	}
	return out
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
