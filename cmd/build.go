package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dialsel/internal/formatter"
	"github.com/oakwood-commons/dialsel/pkg/country"
)

type buildOptions struct {
	output    string
	format    string
	priority  int
	areaCodes []string
}

func newBuildCmd() *cobra.Command {
	o := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "build NAME ISO2 DIAL_CODE",
		Short: "Build and validate a country tuple",
		Long: "Build a country tuple from its fields and print it. Area codes require\n" +
			"a format and a priority; a priority requires a format.",
		Example: "  dialsel build Canada ca 1 --format '(...) ...-....' --priority 1 --area-code 204 --area-code 226",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := country.Country{Name: args[0], ISO2: args[1], DialCode: args[2]}
			f := cmd.Flags()
			if f.Changed("format") {
				c.Format = country.StringPtr(o.format)
			}
			if f.Changed("priority") {
				c.Priority = country.IntPtr(o.priority)
			}
			if f.Changed("area-code") {
				c.AreaCodes = o.areaCodes
			}
			format, err := formatter.ParseFormat(o.output)
			if err != nil {
				return err
			}
			if _, err := country.Build(c); err != nil {
				return err
			}
			out, err := formatter.RenderOne(c, formatter.Options{Format: format, NoColor: colorDisabled(cmd)})
			if err != nil {
				return err
			}
			return writeString(cmd.OutOrStdout(), out)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", string(formatter.FormatTuples), formatHelp())
	f.StringVar(&o.format, "format", "", "display format mask, dots stand for digits")
	f.IntVar(&o.priority, "priority", 0, "tie-break weight among countries sharing the dial code")
	f.StringArrayVar(&o.areaCodes, "area-code", nil, "area code (repeatable)")
	return cmd
}
