package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/dialsel/internal/formatter"
	"github.com/oakwood-commons/dialsel/internal/ui"
	"github.com/oakwood-commons/dialsel/pkg/selector"
)

var stdoutIsTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorDisabled reports whether ANSI styling is off: --no-color, $NO_COLOR,
// or an output that is not a terminal.
func colorDisabled(cmd *cobra.Command) bool {
	if runSettings(cmd).NoColor {
		return true
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return !stdoutIsTerminal(cmd.OutOrStdout())
}

func formatHelp() string {
	names := make([]string, len(formatter.Formats))
	for i, f := range formatter.Formats {
		names[i] = string(f)
	}
	return "output format: " + strings.Join(names, "|")
}

// dialCodePrefix resolves --prefix against the configuration; the flag only
// wins when it was given explicitly.
func dialCodePrefix(cmd *cobra.Command, cfg ui.ConfigFile, flagValue string) string {
	if f := cmd.Flags().Lookup("prefix"); f != nil && f.Changed {
		return flagValue
	}
	if cfg.UI.DialCodePrefix != nil {
		return *cfg.UI.DialCodePrefix
	}
	return selector.DefaultDialCodePrefix
}

func writeString(w io.Writer, s string) error {
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}

// notFoundError is returned when a lookup matches no country.
type notFoundError struct {
	what string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("no country matches %s", e.what)
}
