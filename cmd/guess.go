package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dialsel/pkg/logger"
	"github.com/oakwood-commons/dialsel/pkg/resolver"
)

func newGuessCmd() *cobra.Command {
	o := &lookupOptions{}
	cmd := &cobra.Command{
		Use:   "guess NUMBER",
		Short: "Guess the country of a partially typed international number",
		Long: "Guess the country of an international number. Non-digits are ignored.\n" +
			"The longest matching dial code wins; countries sharing it are ranked by\n" +
			"area code, then priority, then directory order.",
		Example: "  dialsel guess +1787\n  dialsel guess '+44 20 7946' -o json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := loadDirectory(cmd)
			if err != nil {
				return err
			}
			c, ok := resolver.Guess(args[0], dir)
			lgr := logger.FromContext(cmd.Context())
			lgr.V(1).Info("guess", "input", args[0], "found", ok, logger.CountryKey, c.ISO2)
			if !ok {
				return &notFoundError{what: fmt.Sprintf("number %q", args[0])}
			}
			return o.print(cmd, c)
		},
	}
	o.register(cmd)
	return cmd
}
