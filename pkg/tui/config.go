package tui

import (
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/dialsel/internal/ui"
	"github.com/oakwood-commons/dialsel/pkg/directory"
)

// Config holds host-provided settings for running the picker.
type Config struct {
	Title          string
	Countries      *directory.Directory // nil uses the built-in directory
	Selected       string               // iso2 of the initially selected country
	DialCodePrefix *string              // nil uses "+"; "" renders bare dial codes
	KeyMode        string               // "default" or "emacs"
	ThemeName      string               // theme from the embedded config (dark, light)
	Theme          *ui.Theme            // takes precedence over ThemeName
	NoColor        bool
	Width          int
	Height         int
	ListHeight     int           // visible rows; 0 uses the configured height
	SearchDebounce time.Duration // typeahead reset window; 0 uses 1.5s
	StartKeys      []string
	Logger         *logr.Logger
}

// DefaultConfig returns a baseline config with the same defaults as the CLI.
func DefaultConfig() Config {
	cfg := Config{
		Title:   "Select a country",
		KeyMode: string(ui.DefaultKeyMode),
	}
	embedded, err := ui.EmbeddedDefaultConfig()
	if err != nil {
		return cfg
	}
	if name := strings.TrimSpace(embedded.App.About.Name); name != "" {
		cfg.Title = name
	}
	cfg.Selected = embedded.UI.Selected
	cfg.DialCodePrefix = embedded.UI.DialCodePrefix
	cfg.ThemeName = embedded.UI.Theme
	cfg.ListHeight = embedded.UI.Height
	if embedded.UI.Keymap != "" {
		cfg.KeyMode = embedded.UI.Keymap
	}
	if d, err := embedded.UI.Debounce(); err == nil {
		cfg.SearchDebounce = d
	}
	return cfg
}

// pickerConfig resolves c into the model configuration. Unknown theme names
// and key modes fall back to the defaults so the picker can still start.
func (c Config) pickerConfig() ui.Config {
	pc := ui.Config{
		Countries:      c.Countries,
		Selected:       c.Selected,
		DialCodePrefix: c.DialCodePrefix,
		KeyMode:        ui.DefaultKeyMode,
		NoColor:        c.NoColor,
		Title:          c.Title,
		Height:         c.ListHeight,
		SearchDebounce: c.SearchDebounce,
		Logger:         c.Logger,
	}
	if ui.IsValidKeyMode(c.KeyMode) {
		pc.KeyMode = ui.KeyMode(c.KeyMode)
	}
	switch {
	case c.Theme != nil:
		th := *c.Theme
		pc.Theme = &th
	case c.ThemeName != "":
		if embedded, err := ui.EmbeddedDefaultConfig(); err == nil {
			if th, ok := ui.ResolveTheme(embedded, c.ThemeName); ok {
				pc.Theme = &th
			}
		}
	}
	return pc
}
