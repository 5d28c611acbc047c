package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dialsel/internal/ui"
	"github.com/oakwood-commons/dialsel/pkg/settings"
)

// configLoader centralizes config loading so callers avoid duplicating merge logic.
type configLoader struct {
	defaultConfig func() ([]byte, error)
}

var cfgLoader = configLoader{defaultConfig: loadDefaultConfigYAML}

func loadMergedConfig(cfgPath string) (ui.ConfigFile, error) {
	return cfgLoader.loadMergedConfig(cfgPath)
}

func loadDefaultConfigYAML() ([]byte, error) {
	data := ui.DefaultConfigYAML()
	if len(data) == 0 {
		return nil, fmt.Errorf("embedded default config is empty")
	}
	return data, nil
}

// loadMergedConfig decodes the embedded defaults and merges cfgPath on top.
// Unknown keys in the user file are rejected.
func (l configLoader) loadMergedConfig(cfgPath string) (ui.ConfigFile, error) {
	var cfg ui.ConfigFile

	defaultData, err := l.defaultConfig()
	if err != nil {
		return cfg, fmt.Errorf("load default config: %w", err)
	}
	if err := yaml.Unmarshal(defaultData, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	if cfg.UI.Theme == "" || len(cfg.UI.Themes) == 0 {
		return cfg, fmt.Errorf("default config is missing required theme defaults")
	}

	if cfgPath != "" {
		data, err := os.ReadFile(cfgPath)
		if err != nil {
			return cfg, err
		}
		var user ui.ConfigFile
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&user); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("decode %s: %w", cfgPath, err)
		}
		cfg = mergeConfig(cfg, user)
	}

	if cfg.App.About.Version == "" {
		cfg.App.About.Version = settings.VersionInformation.BuildVersion
	}
	if err := cfg.Validate(); err != nil {
		if cfgPath != "" {
			return cfg, fmt.Errorf("%s: %w", cfgPath, err)
		}
		return cfg, err
	}
	return cfg, nil
}

// mergeConfig overlays the values set in override onto base.
func mergeConfig(base, override ui.ConfigFile) ui.ConfigFile {
	out := base
	if v := strings.TrimSpace(override.App.About.Name); v != "" {
		out.App.About.Name = v
	}
	if v := strings.TrimSpace(override.App.About.Version); v != "" {
		out.App.About.Version = v
	}
	if v := strings.TrimSpace(override.App.About.Description); v != "" {
		out.App.About.Description = v
	}

	o := override.UI
	if v := strings.TrimSpace(o.Theme); v != "" {
		out.UI.Theme = v
	}
	if v := strings.TrimSpace(o.Keymap); v != "" {
		out.UI.Keymap = v
	}
	if o.DialCodePrefix != nil {
		p := *o.DialCodePrefix
		out.UI.DialCodePrefix = &p
	}
	if v := strings.TrimSpace(o.SearchDebounce); v != "" {
		out.UI.SearchDebounce = v
	}
	if o.Height != 0 {
		out.UI.Height = o.Height
	}
	if v := strings.TrimSpace(o.Selected); v != "" {
		out.UI.Selected = v
	}
	if len(o.Themes) > 0 {
		themes := make(map[string]ui.ThemeConfig, len(base.UI.Themes)+len(o.Themes))
		for name, th := range base.UI.Themes {
			themes[name] = th
		}
		for name, th := range o.Themes {
			themes[name] = mergeThemeConfig(themes[name], th)
		}
		out.UI.Themes = themes
	}
	return out
}

func mergeThemeConfig(base, override ui.ThemeConfig) ui.ThemeConfig {
	pick := func(b, o ui.ColorValue) ui.ColorValue {
		if strings.TrimSpace(string(o)) != "" {
			return o
		}
		return b
	}
	return ui.ThemeConfig{
		TitleFG:    pick(base.TitleFG, override.TitleFG),
		FocusedFG:  pick(base.FocusedFG, override.FocusedFG),
		FocusedBG:  pick(base.FocusedBG, override.FocusedBG),
		SelectedFG: pick(base.SelectedFG, override.SelectedFG),
		DialFG:     pick(base.DialFG, override.DialFG),
		MutedFG:    pick(base.MutedFG, override.MutedFG),
		SearchFG:   pick(base.SearchFG, override.SearchFG),
	}
}

// resolveConfigPath returns the explicit configFile if set, otherwise the XDG path
// ($XDG_CONFIG_HOME/dialsel/config.yaml) or ~/.config/dialsel/config.yaml if present.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	candidate := ""
	if xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}
