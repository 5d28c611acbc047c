package ui

import (
	"image/color"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
)

// Theme defines the colors of the picker.
type Theme struct {
	TitleFG    color.Color // Title line
	FocusedFG  color.Color // Focused row foreground
	FocusedBG  color.Color // Focused row background
	SelectedFG color.Color // Selected-country marker and name
	DialFG     color.Color // Dial code column
	MutedFG    color.Color // Help footer and empty states
	SearchFG   color.Color // Typeahead buffer
}

// fallbackTheme is used when the embedded config cannot be read.
func fallbackTheme() Theme {
	return Theme{
		TitleFG:    lipgloss.Color("14"),
		FocusedFG:  lipgloss.Color("0"),
		FocusedBG:  lipgloss.Color("14"),
		SelectedFG: lipgloss.Color("11"),
		DialFG:     lipgloss.Color("248"),
		MutedFG:    lipgloss.Color("240"),
		SearchFG:   lipgloss.Color("13"),
	}
}

// ThemeFromConfig resolves a ThemeConfig; empty fields keep base values.
func ThemeFromConfig(tc ThemeConfig, base Theme) Theme {
	apply := func(v ColorValue, dst *color.Color) {
		if s := strings.TrimSpace(string(v)); s != "" {
			*dst = lipgloss.Color(s)
		}
	}
	out := base
	apply(tc.TitleFG, &out.TitleFG)
	apply(tc.FocusedFG, &out.FocusedFG)
	apply(tc.FocusedBG, &out.FocusedBG)
	apply(tc.SelectedFG, &out.SelectedFG)
	apply(tc.DialFG, &out.DialFG)
	apply(tc.MutedFG, &out.MutedFG)
	apply(tc.SearchFG, &out.SearchFG)
	return out
}

// ThemeNames lists the themes defined in cfg, sorted.
func ThemeNames(cfg ConfigFile) []string {
	names := make([]string, 0, len(cfg.UI.Themes))
	for name := range cfg.UI.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveTheme returns the named theme from cfg, or the embedded default
// theme when name is empty. Unknown names report false.
func ResolveTheme(cfg ConfigFile, name string) (Theme, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = cfg.UI.Theme
	}
	if name == "" {
		return fallbackTheme(), true
	}
	tc, ok := cfg.UI.Themes[name]
	if !ok {
		return fallbackTheme(), false
	}
	return ThemeFromConfig(tc, fallbackTheme()), true
}

// DefaultTheme returns the default theme of the embedded configuration.
func DefaultTheme() Theme {
	cfg, err := EmbeddedDefaultConfig()
	if err != nil {
		return fallbackTheme()
	}
	th, _ := ResolveTheme(cfg, "")
	return th
}

type styles struct {
	title    lipgloss.Style
	focused  lipgloss.Style
	selected lipgloss.Style
	dial     lipgloss.Style
	muted    lipgloss.Style
	search   lipgloss.Style
}

func newStyles(th Theme, noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{title: plain, focused: plain, selected: plain, dial: plain, muted: plain, search: plain}
	}
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(th.TitleFG),
		focused:  lipgloss.NewStyle().Foreground(th.FocusedFG).Background(th.FocusedBG),
		selected: lipgloss.NewStyle().Bold(true).Foreground(th.SelectedFG),
		dial:     lipgloss.NewStyle().Foreground(th.DialFG),
		muted:    lipgloss.NewStyle().Foreground(th.MutedFG),
		search:   lipgloss.NewStyle().Foreground(th.SearchFG),
	}
}
