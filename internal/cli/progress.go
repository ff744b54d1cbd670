package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lineagekit/lineage/pkg/anim"
	"github.com/lineagekit/lineage/pkg/render"
)

// frameMsg carries rendered-frame counts from the worker pool into the UI.
type frameMsg struct {
	done  int
	total int
}

type framesDoneMsg struct{}

// frameProgressModel is the bubbletea model behind the frame-rendering bar.
type frameProgressModel struct {
	done  int
	total int
}

func (m frameProgressModel) Init() tea.Cmd { return nil }

func (m frameProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.done, m.total = msg.done, msg.total
		return m, nil
	case framesDoneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

const progressBarWidth = 30

func (m frameProgressModel) View() string {
	if m.total == 0 {
		return StyleDim.Render("rendering frames...") + "\n"
	}
	filled := m.done * progressBarWidth / m.total
	bar := styleBar.Render(strings.Repeat("█", filled)) +
		StyleDim.Render(strings.Repeat("░", progressBarWidth-filled))
	return fmt.Sprintf("%s %s\n", bar, StyleDim.Render(fmt.Sprintf("frame %d/%d", m.done, m.total)))
}

// writeFramesWithProgress renders the timeline into dir while showing a
// progress bar on stderr. Rendering drives the UI, not the other way
// around: the UI quitting early does not stop the render.
func writeFramesWithProgress(ctx context.Context, tl *anim.Timeline, d *render.FrameDrawer, dir string) error {
	p := tea.NewProgram(
		frameProgressModel{total: tl.FrameCount()},
		tea.WithOutput(os.Stderr),
		tea.WithContext(ctx),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- render.WriteFrames(ctx, tl, d, dir, func(done, total int) {
			p.Send(frameMsg{done: done, total: total})
		})
		p.Send(framesDoneMsg{})
	}()

	// UI errors (e.g. no TTY) are not render errors; the render result is
	// what counts.
	_, _ = p.Run()
	return <-errCh
}
