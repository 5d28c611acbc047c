package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/oakwood-commons/dialsel/pkg/selector"
)

const (
	defaultSnapshotWidth  = 80
	defaultSnapshotHeight = 24
)

// SnapshotConfig configures a non-interactive render of the picker.
type SnapshotConfig struct {
	Picker    Config
	Width     int
	Height    int
	StartKeys []string
}

// RenderSnapshot renders the picker after replaying StartKeys.
func RenderSnapshot(cfg SnapshotConfig) string {
	view, _ := Snapshot(cfg)
	return view
}

// Snapshot renders the picker and returns the model it settled on. Unless a
// scheduler is given, the typeahead window only elapses on "<Wait>".
func Snapshot(cfg SnapshotConfig) (string, *Model) {
	pc := cfg.Picker
	if pc.Scheduler == nil {
		pc.Scheduler = selector.NewManualScheduler()
	}
	m := NewModel(pc)
	defer m.Stop()

	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = defaultSnapshotWidth
	}
	if height <= 0 {
		height = defaultSnapshotHeight
	}
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	ApplyStartupKeys(m, cfg.StartKeys)

	view := m.Render()
	if pc.NoColor {
		view = ansi.Strip(view)
	}
	if cfg.Height > 0 {
		view = padSnapshotHeight(view, cfg.Height, cfg.Width)
	}
	return view, m
}

func padSnapshotHeight(view string, height, width int) string {
	if height <= 0 {
		return view
	}
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	if len(lines) >= height {
		return strings.Join(lines, "\n")
	}
	padLine := " "
	if width > 1 {
		padLine = strings.Repeat(" ", width)
	}
	for len(lines) < height {
		lines = append(lines, padLine)
	}
	return strings.Join(lines, "\n")
}
