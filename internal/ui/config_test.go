package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultConfig(t *testing.T) {
	cfg, err := EmbeddedDefaultConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "dialsel", cfg.App.About.Name)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "default", cfg.UI.Keymap)
	assert.Equal(t, "us", cfg.UI.Selected)
	assert.Equal(t, 12, cfg.UI.Height)
	require.NotNil(t, cfg.UI.DialCodePrefix)
	assert.Equal(t, "+", *cfg.UI.DialCodePrefix)
	assert.Equal(t, []string{"dark", "light"}, ThemeNames(cfg))

	d, err := cfg.UI.Debounce()
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d)
}

func TestEmbeddedDefaultConfigIsCopied(t *testing.T) {
	cfg, err := EmbeddedDefaultConfig()
	require.NoError(t, err)
	*cfg.UI.DialCodePrefix = "00"
	delete(cfg.UI.Themes, "dark")

	again, err := EmbeddedDefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, "+", *again.UI.DialCodePrefix)
	assert.Contains(t, again.UI.Themes, "dark")
}

func TestDefaultConfigYAMLRoundTrips(t *testing.T) {
	var cfg ConfigFile
	require.NoError(t, yaml.Unmarshal(DefaultConfigYAML(), &cfg))
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ConfigFile
		wantErr string
	}{
		{"empty", ConfigFile{}, ""},
		{"bad keymap", ConfigFile{UI: UIConfig{Keymap: "vim"}}, `ui.keymap "vim" is not one of default, emacs`},
		{"undefined theme", ConfigFile{UI: UIConfig{Theme: "neon"}}, `ui.theme "neon" is not defined`},
		{"negative height", ConfigFile{UI: UIConfig{Height: -1}}, "ui.height must not be negative"},
		{"bad debounce", ConfigFile{UI: UIConfig{SearchDebounce: "soon"}}, "ui.search_debounce"},
		{"negative debounce", ConfigFile{UI: UIConfig{SearchDebounce: "-1s"}}, "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolveTheme(t *testing.T) {
	cfg, err := EmbeddedDefaultConfig()
	require.NoError(t, err)

	light, ok := ResolveTheme(cfg, "light")
	require.True(t, ok)
	dark, ok := ResolveTheme(cfg, "")
	require.True(t, ok)
	assert.NotEqual(t, light.TitleFG, dark.TitleFG)

	_, ok = ResolveTheme(cfg, "neon")
	assert.False(t, ok)
}

func TestThemeFromConfigKeepsBase(t *testing.T) {
	base := fallbackTheme()
	th := ThemeFromConfig(ThemeConfig{TitleFG: "#ff0000"}, base)
	assert.NotEqual(t, base.TitleFG, th.TitleFG)
	assert.Equal(t, base.DialFG, th.DialFG)
}
