package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// Run starts the interactive picker and returns the final model. Width and
// height of 0 are taken from the terminal; StartKeys are replayed before the
// first frame.
func Run(cfg Config, width, height int, startKeys []string, opts ...tea.ProgramOption) (*Model, error) {
	m := NewModel(cfg)
	defer m.Stop()

	if width > 0 || height > 0 {
		runW, runH := width, height
		if runW <= 0 || runH <= 0 {
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				if runW <= 0 {
					runW = w
				}
				if runH <= 0 {
					runH = h
				}
			}
		}
		if runW <= 0 {
			runW = defaultSnapshotWidth
		}
		if runH <= 0 {
			runH = defaultSnapshotHeight
		}
		m.Update(tea.WindowSizeMsg{Width: runW, Height: runH})
		opts = append(opts, tea.WithWindowSize(runW, runH))
	}

	ApplyStartupKeys(m, startKeys)
	if m.Done() {
		return m, nil
	}

	prog := tea.NewProgram(m, opts...)
	if _, err := prog.Run(); err != nil {
		return m, err
	}
	return m, nil
}
