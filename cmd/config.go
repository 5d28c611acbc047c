package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dialsel/internal/formatter"
	"github.com/oakwood-commons/dialsel/internal/ui"
)

func newConfigCmd() *cobra.Command {
	var output string
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the merged configuration",
		Long:  "Print the embedded defaults merged with --config-file (or " + configHint() + ").",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out, err := renderConfig(cfg, output)
			if err != nil {
				return err
			}
			return writeString(cmd.OutOrStdout(), out)
		},
	}
	configCmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml|json")

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			var b strings.Builder
			for _, name := range ui.ThemeNames(cfg) {
				marker := "  "
				if name == cfg.UI.Theme {
					marker = "* "
				}
				b.WriteString(marker + name + "\n")
			}
			return writeString(cmd.OutOrStdout(), b.String())
		},
	}

	defaultsCmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the embedded default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeString(cmd.OutOrStdout(), string(ui.DefaultConfigYAML()))
		},
	}

	configCmd.AddCommand(themesCmd, defaultsCmd)
	return configCmd
}

func renderConfig(cfg ui.ConfigFile, output string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "", "yaml":
		return formatter.FormatYAML(cfg, formatter.YAMLFormatOptions{})
	case "json":
		return formatter.MarshalJSON(configJSON(cfg))
	default:
		return "", fmt.Errorf("unknown output format %q (want yaml or json)", output)
	}
}

// configJSON mirrors the YAML keys, which the config structs only tag for yaml.
func configJSON(cfg ui.ConfigFile) map[string]any {
	themes := make(map[string]any, len(cfg.UI.Themes))
	for name, th := range cfg.UI.Themes {
		themes[name] = map[string]string{
			"title_fg":    string(th.TitleFG),
			"focused_fg":  string(th.FocusedFG),
			"focused_bg":  string(th.FocusedBG),
			"selected_fg": string(th.SelectedFG),
			"dial_fg":     string(th.DialFG),
			"muted_fg":    string(th.MutedFG),
			"search_fg":   string(th.SearchFG),
		}
	}
	uiSection := map[string]any{
		"theme":           cfg.UI.Theme,
		"keymap":          cfg.UI.Keymap,
		"search_debounce": cfg.UI.SearchDebounce,
		"height":          cfg.UI.Height,
		"selected":        cfg.UI.Selected,
		"themes":          themes,
	}
	if cfg.UI.DialCodePrefix != nil {
		uiSection["dial_code_prefix"] = *cfg.UI.DialCodePrefix
	}
	return map[string]any{
		"app": map[string]any{
			"about": map[string]string{
				"name":        cfg.App.About.Name,
				"version":     cfg.App.About.Version,
				"description": cfg.App.About.Description,
			},
		},
		"ui": uiSection,
	}
}
