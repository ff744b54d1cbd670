package anim

import (
	"math"

	"github.com/lineagekit/lineage/pkg/config"
)

// LineState is one line at a point in time. Progress is the drawn fraction
// in [0, 1]; fully drawn lines stay at 1 for the rest of the timeline.
type LineState struct {
	Line     *Line
	Progress float64
}

// DrawState is everything visible at one frame. Persons maps person ID to
// opacity; the flow timing only ever produces 1, the fade timing ramps from
// 0 to 1. Absent IDs are invisible.
type DrawState struct {
	Persons map[int]float64
	Lines   []LineState
}

// span is the time slice one action occupies. animated is the moving part;
// the remainder of total is a hold.
type span struct {
	start    float64
	animated float64
	total    float64
}

// Timeline maps frame indices to draw states. It is immutable after
// construction: StateAt is pure and any frame can be queried independently,
// in any order.
type Timeline struct {
	actions  []Action
	spans    []span
	fps      int
	duration float64
}

// NewTimeline lays the flow timing over the action sequence: an Appear
// occupies the post-appear pause and the group becomes visible at the end of
// its span, a DrawLine animates over the line duration and then holds for
// the pause, and the final hold is appended after the last action.
func NewTimeline(actions []Action, a config.Animation) *Timeline {
	return build(actions, a, false)
}

// NewFadeTimeline is the generation-fade variant: Appear actions ramp
// opacity over the fade duration and hold until the scene duration elapses.
func NewFadeTimeline(actions []Action, a config.Animation) *Timeline {
	return build(actions, a, true)
}

func build(actions []Action, a config.Animation, fade bool) *Timeline {
	tl := &Timeline{actions: actions, fps: a.FPS, spans: make([]span, len(actions))}
	cursor := 0.0
	for i, act := range actions {
		sp := span{start: cursor}
		switch act.Type {
		case ActionAppear:
			if fade {
				sp.animated = a.FadeDuration
				sp.total = math.Max(a.SceneDuration, a.FadeDuration)
			} else {
				sp.total = a.PauseDuration
			}
		case ActionDrawLine:
			sp.animated = a.LineDuration
			sp.total = a.LineDuration + a.PauseDuration
		}
		tl.spans[i] = sp
		cursor += sp.total
	}
	tl.duration = cursor + a.FinalPause
	return tl
}

// Duration is the total timeline length in seconds.
func (t *Timeline) Duration() float64 { return t.duration }

// FPS returns the timeline's frame rate.
func (t *Timeline) FPS() int { return t.fps }

// FrameCount covers the whole timeline including the final hold. Frame
// indices run 0 to FrameCount()-1.
func (t *Timeline) FrameCount() int {
	return int(math.Round(t.duration*float64(t.fps))) + 1
}

// StateAt computes the draw state for one frame. Appearances are
// cumulative; a line is present once its span has started and its progress
// pins at 1 after the animated part ends.
func (t *Timeline) StateAt(frame int) DrawState {
	at := float64(frame) / float64(t.fps)
	state := DrawState{Persons: make(map[int]float64)}

	for i, act := range t.actions {
		sp := t.spans[i]
		switch act.Type {
		case ActionAppear:
			op := appearOpacity(sp, at)
			if op <= 0 {
				continue
			}
			for _, id := range act.PersonIDs {
				if op > state.Persons[id] {
					state.Persons[id] = op
				}
			}
		case ActionDrawLine:
			if at <= sp.start {
				continue
			}
			progress := 1.0
			if sp.animated > 0 {
				progress = clamp((at - sp.start) / sp.animated)
			}
			state.Lines = append(state.Lines, LineState{Line: act.Line, Progress: progress})
		}
	}
	return state
}

func appearOpacity(sp span, at float64) float64 {
	if sp.animated > 0 {
		return clamp((at - sp.start) / sp.animated)
	}
	if at >= sp.start+sp.total {
		return 1
	}
	return 0
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
