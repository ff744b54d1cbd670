package scene

import (
	"reflect"
	"testing"
	"time"

	"github.com/lineagekit/lineage/pkg/errors"
	"github.com/lineagekit/lineage/pkg/family"
)

func mkPerson(id int, name string, sex family.Sex, parents []int, spouse int) *family.Person {
	p := &family.Person{
		ID:        id,
		Name:      name,
		BirthDate: time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
		Sex:       sex,
		ParentIDs: parents,
	}
	if spouse != 0 {
		p.SpouseID = &spouse
	}
	return p
}

// twoGenerations builds the canonical example: a root couple with two
// married children, and two grandchildren under the first child's couple.
func twoGenerations() *family.Family {
	f := family.New()
	f.Add(mkPerson(1, "Taro", family.SexMale, nil, 2))
	f.Add(mkPerson(2, "Hanako", family.SexFemale, nil, 1))
	f.Add(mkPerson(3, "Ichiro", family.SexMale, []int{1, 2}, 5))
	f.Add(mkPerson(4, "Yuki", family.SexFemale, []int{1, 2}, 6))
	f.Add(mkPerson(5, "Mika", family.SexFemale, nil, 3))
	f.Add(mkPerson(6, "Kenji", family.SexMale, nil, 4))
	f.Add(mkPerson(7, "Sora", family.SexFemale, []int{3, 5}, 0))
	f.Add(mkPerson(8, "Riku", family.SexMale, []int{3, 5}, 0))
	return f
}

func TestPlanTwoGenerations(t *testing.T) {
	scenes, err := Plan(twoGenerations())
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	want := []Scene{{1}, {2}, {3, 4}, {5}, {6}, {7, 8}}
	if !reflect.DeepEqual(scenes, want) {
		t.Errorf("Plan = %v, want %v", scenes, want)
	}
}

func TestPlanCoversEveryPersonOnce(t *testing.T) {
	f := twoGenerations()
	scenes, err := Plan(f)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	seen := map[int]int{}
	for _, s := range scenes {
		for _, id := range s {
			seen[id]++
		}
	}
	if len(seen) != f.Len() {
		t.Errorf("covered %d people, want %d", len(seen), f.Len())
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("person %d revealed %d times", id, n)
		}
	}
}

func TestPlanSinglePerson(t *testing.T) {
	f := family.New()
	f.Add(mkPerson(1, "Taro", family.SexMale, nil, 0))

	scenes, err := Plan(f)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if want := []Scene{{1}}; !reflect.DeepEqual(scenes, want) {
		t.Errorf("Plan = %v, want %v", scenes, want)
	}
}

func TestPlanIndependentRootFamilies(t *testing.T) {
	f := family.New()
	f.Add(mkPerson(1, "A", family.SexMale, nil, 2))
	f.Add(mkPerson(2, "B", family.SexFemale, nil, 1))
	f.Add(mkPerson(10, "C", family.SexMale, nil, 11))
	f.Add(mkPerson(11, "D", family.SexFemale, nil, 10))
	f.Add(mkPerson(3, "E", family.SexFemale, []int{1, 2}, 0))

	scenes, err := Plan(f)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	// Each root is followed directly by its spouse, in row order.
	want := []Scene{{1}, {2}, {10}, {11}, {3}}
	if !reflect.DeepEqual(scenes, want) {
		t.Errorf("Plan = %v, want %v", scenes, want)
	}
}

func TestPlanLoneParentChildren(t *testing.T) {
	f := family.New()
	f.Add(mkPerson(1, "A", family.SexFemale, nil, 0))
	f.Add(mkPerson(2, "B", family.SexMale, []int{1}, 0))
	f.Add(mkPerson(3, "C", family.SexFemale, []int{1}, 0))

	scenes, err := Plan(f)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	want := []Scene{{1}, {2, 3}}
	if !reflect.DeepEqual(scenes, want) {
		t.Errorf("Plan = %v, want %v", scenes, want)
	}
}

func TestPlanBlendedFamilySeparateGroups(t *testing.T) {
	// Children of the same couple group together; a half-sibling with a
	// different parent set gets its own scene.
	f := family.New()
	f.Add(mkPerson(1, "A", family.SexMale, nil, 2))
	f.Add(mkPerson(2, "B", family.SexFemale, nil, 1))
	f.Add(mkPerson(3, "C", family.SexMale, []int{1, 2}, 0))
	f.Add(mkPerson(4, "D", family.SexFemale, []int{1}, 0))

	scenes, err := Plan(f)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	want := []Scene{{1}, {2}, {3}, {4}}
	if !reflect.DeepEqual(scenes, want) {
		t.Errorf("Plan = %v, want %v", scenes, want)
	}
}

func TestPlanMarriedInSpouseIsNotRoot(t *testing.T) {
	// Person 5 has no parents but is married to a child of the root
	// couple, so they are revealed after their spouse, not as a root.
	f := family.New()
	f.Add(mkPerson(5, "Mika", family.SexFemale, nil, 3))
	f.Add(mkPerson(1, "Taro", family.SexMale, nil, 2))
	f.Add(mkPerson(2, "Hanako", family.SexFemale, nil, 1))
	f.Add(mkPerson(3, "Ichiro", family.SexMale, []int{1, 2}, 5))

	scenes, err := Plan(f)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	want := []Scene{{1}, {2}, {3}, {5}}
	if !reflect.DeepEqual(scenes, want) {
		t.Errorf("Plan = %v, want %v", scenes, want)
	}
}

func TestGenerationsLevelsSpouses(t *testing.T) {
	f := twoGenerations()
	gens, err := Generations(f)
	if err != nil {
		t.Fatalf("Generations: %v", err)
	}

	want := map[int]int{1: 0, 2: 0, 3: 1, 4: 1, 5: 1, 6: 1, 7: 2, 8: 2}
	if !reflect.DeepEqual(gens, want) {
		t.Errorf("Generations = %v, want %v", gens, want)
	}
}

func TestGenerationsCycleFails(t *testing.T) {
	// 1 and 2 are each other's parent; neither can be placed.
	f := family.New()
	f.Add(mkPerson(1, "A", family.SexMale, []int{2}, 0))
	f.Add(mkPerson(2, "B", family.SexFemale, []int{1}, 0))

	_, err := Generations(f)
	if err == nil {
		t.Fatal("expected error for parent cycle")
	}
	if !errors.Is(err, errors.ErrCodeStructuralGraph) {
		t.Errorf("code = %q, want STRUCTURAL_GRAPH", errors.GetCode(err))
	}

	if _, err := Plan(f); !errors.Is(err, errors.ErrCodeStructuralGraph) {
		t.Errorf("Plan code = %q, want STRUCTURAL_GRAPH", errors.GetCode(err))
	}
}

func TestPlanDeterministic(t *testing.T) {
	f := twoGenerations()
	first, err := Plan(f)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Plan(f)
		if err != nil {
			t.Fatalf("Plan: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, again, first)
		}
	}
}
