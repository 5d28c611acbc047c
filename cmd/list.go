package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dialsel/internal/formatter"
	"github.com/oakwood-commons/dialsel/internal/limiter"
)

type listOptions struct {
	output     string
	limit      limiter.Config
	prefix     string
	rowNumbers bool
	width      int
}

func newListCmd() *cobra.Command {
	o := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List countries in directory order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", string(formatter.FormatTable), formatHelp())
	f.IntVar(&o.limit.Limit, "limit", 0, "Limit total number of records displayed")
	f.IntVar(&o.limit.Offset, "offset", 0, "Skip the first N records")
	f.IntVar(&o.limit.Tail, "tail", 0, "Show the last N records (mutually exclusive with --limit; ignores --offset)")
	f.StringVar(&o.prefix, "prefix", "+", "prefix shown ahead of dial codes in the table (default from config)")
	f.BoolVar(&o.rowNumbers, "row-numbers", false, "number table rows")
	f.IntVar(&o.width, "width", 0, "table width in columns (0 detects the terminal)")
	return cmd
}

func runList(cmd *cobra.Command, o *listOptions) error {
	if err := o.limit.Validate(); err != nil {
		return err
	}
	format, err := formatter.ParseFormat(o.output)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dir, err := loadDirectory(cmd)
	if err != nil {
		return err
	}
	countries := limiter.Apply(o.limit, dir.Countries())
	return formatter.Write(cmd.OutOrStdout(), countries, formatter.Options{
		Format:         format,
		DialCodePrefix: dialCodePrefix(cmd, cfg, o.prefix),
		NoColor:        colorDisabled(cmd),
		Width:          o.width,
		RowNumbers:     o.rowNumbers,
	})
}
