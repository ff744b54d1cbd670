package render

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lineagekit/lineage/pkg/anim"
	"github.com/lineagekit/lineage/pkg/config"
	"github.com/lineagekit/lineage/pkg/family"
	"github.com/lineagekit/lineage/pkg/layout"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Style.Dimensions.Padding = 20
	cfg.Style.Dimensions.FontSizeName = 12
	cfg.Style.Dimensions.LineWidthMarriage = 6
	cfg.Style.Dimensions.LineWidthChild = 4
	cfg.Style.Dimensions.BorderWidth = 2
	cfg.Style.Dimensions.CornerRadius = 4
	return cfg
}

func testFamily() *family.Family {
	f := family.New()
	spouse2, spouse1 := 2, 1
	f.Add(&family.Person{ID: 1, Name: "Taro", Sex: family.SexMale,
		BirthDate: time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC), SpouseID: &spouse2})
	f.Add(&family.Person{ID: 2, Name: "Hanako", Sex: family.SexFemale,
		BirthDate: time.Date(1942, 1, 1, 0, 0, 0, 0, time.UTC), SpouseID: &spouse1})
	return f
}

func testLayout() *layout.GraphLayout {
	return &layout.GraphLayout{
		Width:  200,
		Height: 100,
		Nodes: map[string]*layout.NodeLayout{
			"1": {Name: "1", CX: 50, CY: 50, Width: 60, Height: 40},
			"2": {Name: "2", CX: 150, CY: 50, Width: 60, Height: 40},
		},
	}
}

func marriageState(progress float64) anim.DrawState {
	return anim.DrawState{
		Persons: map[int]float64{1: 1, 2: 1},
		Lines: []anim.LineState{{
			Line: &anim.Line{
				Kind:   layout.KindMarriage,
				From:   1,
				To:     2,
				Points: []layout.Point{{X: 80, Y: 50}, {X: 120, Y: 50}},
			},
			Progress: progress,
		}},
	}
}

// colorClose tolerates the one-unit rounding that float color conversion
// introduces.
func colorClose(got color.Color, want config.RGB) bool {
	r, g, b, _ := got.RGBA()
	dr := int(r>>8) - want[0]
	dg := int(g>>8) - want[1]
	db := int(b>>8) - want[2]
	abs := func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	}
	return abs(dr) <= 1 && abs(dg) <= 1 && abs(db) <= 1
}

func TestFrameDrawerCanvasSize(t *testing.T) {
	d := NewFrameDrawer(testLayout(), testFamily(), testConfig())
	w, h := d.Size()
	if w != 240 || h != 140 {
		t.Errorf("Size = %dx%d, want 240x140 (layout + 2*padding)", w, h)
	}
}

func TestDrawBackgroundAndBlocks(t *testing.T) {
	cfg := testConfig()
	d := NewFrameDrawer(testLayout(), testFamily(), cfg)

	img := d.Draw(anim.DrawState{Persons: map[int]float64{1: 1}})

	// Corner is bare background.
	if got := img.At(0, 0); !colorClose(got, cfg.Style.Colors.Background) {
		t.Errorf("corner = %v, want background %v", got, cfg.Style.Colors.Background)
	}
	// Inside person 1's (male) block, above the name label.
	if got := img.At(50, 58); !colorClose(got, cfg.Style.Colors.MaleFill) {
		t.Errorf("block interior = %v, want male fill %v", got, cfg.Style.Colors.MaleFill)
	}
	// Person 2 is not in the state, so their block stays background.
	if got := img.At(170, 70); !colorClose(got, cfg.Style.Colors.Background) {
		t.Errorf("hidden block = %v, want background", got)
	}
}

func TestDrawFemaleFill(t *testing.T) {
	cfg := testConfig()
	d := NewFrameDrawer(testLayout(), testFamily(), cfg)

	// Sample above the name label; the antialiased glyphs blend fill and
	// text color at the block center.
	img := d.Draw(anim.DrawState{Persons: map[int]float64{2: 1}})
	if got := img.At(150, 58); !colorClose(got, cfg.Style.Colors.FemaleFill) {
		t.Errorf("block interior = %v, want female fill %v", got, cfg.Style.Colors.FemaleFill)
	}
}

func TestDrawMarriageLineProgress(t *testing.T) {
	cfg := testConfig()
	d := NewFrameDrawer(testLayout(), testFamily(), cfg)

	// Complete line passes through the gap midpoint.
	img := d.Draw(marriageState(1))
	if got := img.At(120, 70); !colorClose(got, cfg.Style.Colors.MarriageLine) {
		t.Errorf("line midpoint = %v, want marriage color", got)
	}

	// At progress 0.25 the line covers 10 of 40 px and has not reached
	// the midpoint yet.
	img = d.Draw(marriageState(0.25))
	if got := img.At(130, 70); !colorClose(got, cfg.Style.Colors.Background) {
		t.Errorf("beyond partial line = %v, want background", got)
	}
}

func TestWriteFrames(t *testing.T) {
	cfg := testConfig()
	cfg.Animation = config.Animation{
		FPS: 4, LineDuration: 0.5, PauseDuration: 0.25, FinalPause: 0.25,
	}

	actions := []anim.Action{
		{Type: anim.ActionAppear, PersonIDs: []int{1}},
		{Type: anim.ActionAppear, PersonIDs: []int{2}},
	}
	tl := anim.NewTimeline(actions, cfg.Animation)
	d := NewFrameDrawer(testLayout(), testFamily(), cfg)
	dir := filepath.Join(t.TempDir(), "frames")

	var calls atomic.Int64
	onFrame := func(done, total int) {
		calls.Add(1)
		if total != tl.FrameCount() {
			t.Errorf("onFrame total = %d, want %d", total, tl.FrameCount())
		}
	}
	if err := WriteFrames(context.Background(), tl, d, dir, onFrame); err != nil {
		t.Fatalf("WriteFrames: %v", err)
	}

	for frame := 0; frame < tl.FrameCount(); frame++ {
		path := filepath.Join(dir, fmt.Sprintf(FramePattern, frame))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("frame %d missing: %v", frame, err)
		}
	}
	if int(calls.Load()) != tl.FrameCount() {
		t.Errorf("onFrame called %d times, want %d", calls.Load(), tl.FrameCount())
	}
}

func TestWriteFramesCanceled(t *testing.T) {
	cfg := testConfig()
	cfg.Animation = config.Animation{FPS: 24, LineDuration: 0.5, PauseDuration: 0.3, FinalPause: 2}

	tl := anim.NewTimeline([]anim.Action{{Type: anim.ActionAppear, PersonIDs: []int{1}}}, cfg.Animation)
	d := NewFrameDrawer(testLayout(), testFamily(), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := WriteFrames(ctx, tl, d, t.TempDir(), nil); err == nil {
		t.Error("expected error from canceled context")
	}
}
