// Package tui is the embedding API of the interactive country picker.
package tui

import (
	"io"
	"os"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/dialsel/internal/ui"
	"github.com/oakwood-commons/dialsel/pkg/country"
)

// defaultFallbackTermWidth is used when terminal size cannot be detected.
const defaultFallbackTermWidth = 120

// DetectTerminalSize returns the best-effort terminal width and height by probing
// stdout, stderr, and stdin, then falling back to the COLUMNS environment variable.
// If detection fails completely, returns (120, 24).
func DetectTerminalSize() (width int, height int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 24
}

// Result is the outcome of a picker session.
type Result struct {
	Country country.Country
	// Chosen is set when a country was picked with enter or a click.
	Chosen bool
	// Closed is set when the list was dismissed with escape or by losing focus.
	Closed bool
}

func resultOf(m *ui.Model) Result {
	var r Result
	if m == nil {
		return r
	}
	r.Country, r.Chosen = m.Chosen()
	r.Closed = m.Closed()
	return r
}

// Run starts the interactive picker. Host applications can pass optional
// tea.ProgramOption values to control IO.
func Run(cfg Config, opts ...tea.ProgramOption) (Result, error) {
	m, err := ui.Run(cfg.pickerConfig(), cfg.Width, cfg.Height, cfg.StartKeys, opts...)
	return resultOf(m), err
}

// RenderSnapshot renders the picker after replaying cfg.StartKeys and returns
// it as a string. The typeahead window only elapses on "<Wait>".
func RenderSnapshot(cfg Config) string {
	view, _ := Snapshot(cfg)
	return view
}

// Snapshot is RenderSnapshot that also reports the session outcome.
func Snapshot(cfg Config) (string, Result) {
	view, m := ui.Snapshot(ui.SnapshotConfig{
		Picker:    cfg.pickerConfig(),
		Width:     cfg.Width,
		Height:    cfg.Height,
		StartKeys: cfg.StartKeys,
	})
	return view, resultOf(m)
}

// WithIO returns tea.ProgramOptions to set custom input/output.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	opts := []tea.ProgramOption{}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}
