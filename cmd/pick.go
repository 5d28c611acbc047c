package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dialsel/internal/formatter"
	"github.com/oakwood-commons/dialsel/internal/ui"
	"github.com/oakwood-commons/dialsel/pkg/logger"
	"github.com/oakwood-commons/dialsel/pkg/tui"
)

type pickOptions struct {
	output     string
	selected   string
	prefix     string
	keymap     string
	theme      string
	listHeight int
	startKeys  []string
	snapshot   bool
	width      int
	height     int
}

type themeSelectionError struct {
	Selected  string
	Available []string
}

func (e themeSelectionError) Error() string {
	return fmt.Sprintf("unknown theme %q (available themes: %s)", e.Selected, strings.Join(e.Available, ", "))
}

func newPickCmd() *cobra.Command {
	o := &pickOptions{}
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a country interactively",
		Long: "Open the country list. Arrow keys move the focus, typing jumps to the first\n" +
			"country whose name starts with the typed text, enter picks and esc closes.\n" +
			"The picked country is printed on exit; nothing is printed when the list is closed.",
		Example: "  dialsel pick --selected pl\n" +
			"  dialsel pick --press 'ukr<CR>'\n" +
			"  dialsel pick --snapshot --width 60 --height 16 --press '<Down><Down>'",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPick(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", string(formatter.FormatJSON), formatHelp())
	f.StringVar(&o.selected, "selected", "", "iso2 of the initially selected country (default from config)")
	f.StringVar(&o.prefix, "prefix", "+", "prefix shown ahead of dial codes (default from config)")
	f.StringVar(&o.keymap, "keymap", "", "keybinding mode: default or emacs (default from config)")
	f.StringVar(&o.theme, "theme", "", "theme name (default from config; see 'dialsel config themes')")
	f.IntVar(&o.listHeight, "list-height", 0, "number of visible rows (default from config)")
	f.StringArrayVar(&o.startKeys, "press", nil, "Simulate keys on startup. Use <Key> for special keys (e.g. <Down>, <PgDn>, <CR>, <Esc>, <Blur>, <Wait>). Literal text types normally. Example: --press \"<Down>ukr<CR>\"")
	f.BoolVar(&o.snapshot, "snapshot", false, "render a single frame after --press and exit; honors --width/--height")
	f.IntVar(&o.width, "width", 0, "width in columns (affects snapshot and TUI layout)")
	f.IntVar(&o.height, "height", 0, "height in rows (affects snapshot and TUI layout)")
	return cmd
}

// pickerConfig builds the picker settings from the merged configuration and
// the flags given explicitly on the command line.
func pickerConfig(cmd *cobra.Command, cfg ui.ConfigFile, o *pickOptions) (tui.Config, error) {
	tc := tui.Config{
		Title:          cfg.App.About.Name,
		Selected:       cfg.UI.Selected,
		DialCodePrefix: cfg.UI.DialCodePrefix,
		KeyMode:        cfg.UI.Keymap,
		ThemeName:      cfg.UI.Theme,
		ListHeight:     cfg.UI.Height,
		StartKeys:      o.startKeys,
		Width:          o.width,
		Height:         o.height,
	}
	if d, err := cfg.UI.Debounce(); err == nil {
		tc.SearchDebounce = d
	}

	f := cmd.Flags()
	if f.Changed("selected") {
		tc.Selected = o.selected
	}
	if f.Changed("prefix") {
		p := o.prefix
		tc.DialCodePrefix = &p
	}
	if f.Changed("keymap") {
		if !ui.IsValidKeyMode(o.keymap) {
			return tc, fmt.Errorf("invalid --keymap %q (want default or emacs)", o.keymap)
		}
		tc.KeyMode = o.keymap
	}
	if f.Changed("list-height") {
		if o.listHeight < 0 {
			return tc, fmt.Errorf("--list-height must be non-negative, got %d", o.listHeight)
		}
		tc.ListHeight = o.listHeight
	}
	if f.Changed("theme") {
		tc.ThemeName = strings.TrimSpace(o.theme)
	}
	th, ok := ui.ResolveTheme(cfg, tc.ThemeName)
	if !ok {
		return tc, themeSelectionError{Selected: tc.ThemeName, Available: ui.ThemeNames(cfg)}
	}
	tc.Theme = &th
	return tc, nil
}

func runPick(cmd *cobra.Command, o *pickOptions) error {
	format, err := formatter.ParseFormat(o.output)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tc, err := pickerConfig(cmd, cfg, o)
	if err != nil {
		return err
	}
	dir, err := loadDirectory(cmd)
	if err != nil {
		return err
	}
	tc.Countries = dir
	tc.NoColor = colorDisabled(cmd)
	tc.Logger = logger.FromContext(cmd.Context())

	if o.snapshot {
		w, h := tui.DetectTerminalSize()
		size := resolveSnapshotSize(o.width, o.height, w, h)
		tc.Width, tc.Height = size.Width, size.Height
		view, _ := tui.Snapshot(tc)
		return writeString(cmd.OutOrStdout(), view)
	}

	opts, cleanup := getProgramOptions()
	defer cleanup()
	res, err := tui.Run(tc, opts...)
	if err != nil {
		return err
	}
	tc.Logger.V(1).Info("picker closed", "chosen", res.Chosen, logger.CountryKey, res.Country.ISO2)
	if !res.Chosen {
		return nil
	}
	out, err := formatter.RenderOne(res.Country, formatter.Options{
		Format:         format,
		DialCodePrefix: dialCodePrefix(cmd, cfg, o.prefix),
		NoColor:        tc.NoColor,
	})
	if err != nil {
		return err
	}
	return writeString(cmd.OutOrStdout(), out)
}
