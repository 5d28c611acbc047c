package ui

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// ColorValue is a color as written in configuration: "#rrggbb" or an ANSI index.
type ColorValue string

// ThemeConfig is the YAML form of a Theme.
type ThemeConfig struct {
	TitleFG    ColorValue `yaml:"title_fg,omitempty"`
	FocusedFG  ColorValue `yaml:"focused_fg,omitempty"`
	FocusedBG  ColorValue `yaml:"focused_bg,omitempty"`
	SelectedFG ColorValue `yaml:"selected_fg,omitempty"`
	DialFG     ColorValue `yaml:"dial_fg,omitempty"`
	MutedFG    ColorValue `yaml:"muted_fg,omitempty"`
	SearchFG   ColorValue `yaml:"search_fg,omitempty"`
}

// AboutConfig describes the application.
type AboutConfig struct {
	Name        string `yaml:"name,omitempty"`
	Version     string `yaml:"version,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// AppConfig is the app: section.
type AppConfig struct {
	About AboutConfig `yaml:"about,omitempty"`
}

// UIConfig is the ui: section.
type UIConfig struct {
	Theme          string                 `yaml:"theme,omitempty"`
	Keymap         string                 `yaml:"keymap,omitempty"`
	DialCodePrefix *string                `yaml:"dial_code_prefix,omitempty"`
	SearchDebounce string                 `yaml:"search_debounce,omitempty"`
	Height         int                    `yaml:"height,omitempty"`
	Selected       string                 `yaml:"selected,omitempty"`
	Themes         map[string]ThemeConfig `yaml:"themes,omitempty"`
}

// ConfigFile is the full configuration document.
type ConfigFile struct {
	App AppConfig `yaml:"app"`
	UI  UIConfig  `yaml:"ui"`
}

// Debounce parses SearchDebounce; an empty value yields zero.
func (c UIConfig) Debounce() (time.Duration, error) {
	s := strings.TrimSpace(c.SearchDebounce)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("ui.search_debounce: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("ui.search_debounce must not be negative, got %s", s)
	}
	return d, nil
}

// Validate checks the values that have a closed set of choices.
func (c ConfigFile) Validate() error {
	if c.UI.Keymap != "" && !IsValidKeyMode(c.UI.Keymap) {
		return fmt.Errorf("ui.keymap %q is not one of %s", c.UI.Keymap, keyModeList())
	}
	if c.UI.Theme != "" {
		if _, ok := c.UI.Themes[c.UI.Theme]; !ok {
			return fmt.Errorf("ui.theme %q is not defined under ui.themes", c.UI.Theme)
		}
	}
	if c.UI.Height < 0 {
		return fmt.Errorf("ui.height must not be negative, got %d", c.UI.Height)
	}
	_, err := c.UI.Debounce()
	return err
}

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     ConfigFile
	embeddedConfigErr  error
)

// DefaultConfigYAML returns a copy of the embedded default config YAML bytes.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// EmbeddedDefaultConfig parses the embedded default configuration once.
func EmbeddedDefaultConfig() (ConfigFile, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = fmt.Errorf("embedded default config is empty")
			return
		}
		if err := yaml.Unmarshal(embeddedDefaultConfig, &embeddedConfig); err != nil {
			embeddedConfigErr = fmt.Errorf("decode embedded default config: %w", err)
			return
		}
		if embeddedConfig.UI.Themes == nil {
			embeddedConfig.UI.Themes = map[string]ThemeConfig{}
		}
	})
	return cloneConfig(embeddedConfig), embeddedConfigErr
}

func cloneConfig(c ConfigFile) ConfigFile {
	out := c
	if c.UI.DialCodePrefix != nil {
		p := *c.UI.DialCodePrefix
		out.UI.DialCodePrefix = &p
	}
	if c.UI.Themes != nil {
		out.UI.Themes = make(map[string]ThemeConfig, len(c.UI.Themes))
		for k, v := range c.UI.Themes {
			out.UI.Themes[k] = v
		}
	}
	return out
}
