// Package cmd implements the dialsel CLI.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dialsel/internal/filter"
	"github.com/oakwood-commons/dialsel/internal/ui"
	"github.com/oakwood-commons/dialsel/pkg/directory"
	"github.com/oakwood-commons/dialsel/pkg/logger"
	"github.com/oakwood-commons/dialsel/pkg/settings"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	run      *settings.Run
	logLevel int
	debug    bool
}

// NewRootCmd builds the command tree. Each call returns independent flag state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{run: settings.NewCliParams()}

	rootCmd := &cobra.Command{
		Use:           settings.CliBinaryName,
		Short:         getCLIShortHelp(),
		Long:          getCLILongHelp(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: "\n  dialsel list -o yaml --where 'dialCode == \"1\"'" +
			"\n  dialsel find iso2 pl" +
			"\n  dialsel guess +1787555" +
			"\n  dialsel pick --selected de --press 'uni<CR>' --snapshot",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := int8(opts.logLevel)
			if opts.debug {
				level = -1
			}
			opts.run.MinLogLevel = level
			lgr := logger.Get(level)
			lgr = logger.WithValues(lgr, logger.CommandKey, cmd.CommandPath())

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = logger.WithLogger(ctx, lgr)
			ctx = settings.IntoContext(ctx, opts.run)
			cmd.SetContext(ctx)
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.run.CountriesFile, "countries", "", "path to a JSON, YAML or TOML file of country tuples replacing the built-in list")
	pf.StringVar(&opts.run.Where, "where", "", "CEL predicate over name, iso2, dialCode, format, priority and areaCodes, e.g. 'dialCode.startsWith(\"4\")'")
	pf.StringVar(&opts.run.ConfigFile, "config-file", "", "path to a YAML config file (default $XDG_CONFIG_HOME/dialsel/config.yaml)")
	pf.IntVar(&opts.logLevel, "log-level", 0, "minimum log level: -1 debug, 0 info, 1 warn, 2 error")
	pf.BoolVar(&opts.debug, "debug", false, "shorthand for --log-level -1")
	pf.BoolVar(&opts.run.NoColor, "no-color", false, "disable color output")

	rootCmd.AddCommand(
		newListCmd(),
		newFindCmd(),
		newGuessCmd(),
		newBuildCmd(),
		newValidateCmd(),
		newPickCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI against os.Args.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

func runSettings(cmd *cobra.Command) *settings.Run {
	if r, ok := settings.FromContext(cmd.Context()); ok && r != nil {
		return r
	}
	return settings.NewCliParams()
}

// loadDirectory returns the active directory: the --countries file or the
// built-in list, narrowed by --where.
func loadDirectory(cmd *cobra.Command) (*directory.Directory, error) {
	run := runSettings(cmd)
	lgr := logger.FromContext(cmd.Context())

	dir := directory.Default()
	if run.CountriesFile != "" {
		loaded, err := directory.Load(run.CountriesFile)
		if err != nil {
			return nil, err
		}
		dir = loaded
		lgr.V(1).Info("loaded countries", "path", run.CountriesFile, "count", dir.Len())
	}
	if run.Where != "" {
		filtered, err := filter.Directory(dir, run.Where)
		if err != nil {
			return nil, err
		}
		lgr.V(1).Info("filtered countries", "where", run.Where, "count", filtered.Len())
		dir = filtered
	}
	return dir, nil
}

// loadConfig merges --config-file (or the XDG config) over the embedded defaults.
func loadConfig(cmd *cobra.Command) (ui.ConfigFile, error) {
	return loadMergedConfig(resolveConfigPath(runSettings(cmd).ConfigFile))
}

func getCLIShortHelp() string {
	cfg, err := loadMergedConfig("")
	if err != nil || cfg.App.About.Name == "" {
		return "country dial code directory and picker"
	}
	return fmt.Sprintf("%s - country dial code directory and picker", cfg.App.About.Name)
}

func getCLILongHelp() string {
	cfg, err := loadMergedConfig("")
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s %s\n\n%s\n\nConfiguration is read from --config-file or %s.",
		cfg.App.About.Name, cfg.App.About.Version, cfg.App.About.Description, configHint())
}

func configHint() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return "$XDG_CONFIG_HOME/" + settings.CliBinaryName + "/config.yaml"
	}
	return "~/.config/" + settings.CliBinaryName + "/config.yaml"
}
