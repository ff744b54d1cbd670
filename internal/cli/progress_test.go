package cli

import (
	"strings"
	"testing"
)

func TestFrameProgressModelUpdate(t *testing.T) {
	m := frameProgressModel{total: 100}

	next, _ := m.Update(frameMsg{done: 40, total: 100})
	got, ok := next.(frameProgressModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	if got.done != 40 || got.total != 100 {
		t.Errorf("model = %+v, want done 40 of 100", got)
	}

	_, cmd := got.Update(framesDoneMsg{})
	if cmd == nil {
		t.Error("framesDoneMsg should quit the program")
	}
}

func TestFrameProgressModelView(t *testing.T) {
	m := frameProgressModel{done: 15, total: 30}
	view := m.View()
	if !strings.Contains(view, "frame 15/30") {
		t.Errorf("view %q should show the frame counter", view)
	}

	empty := frameProgressModel{}
	if v := empty.View(); !strings.Contains(v, "rendering") {
		t.Errorf("zero-total view %q should show a placeholder", v)
	}
}
