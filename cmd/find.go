package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dialsel/internal/formatter"
	"github.com/oakwood-commons/dialsel/pkg/country"
	"github.com/oakwood-commons/dialsel/pkg/logger"
	"github.com/oakwood-commons/dialsel/pkg/resolver"
)

type lookupOptions struct {
	output string
	prefix string
	width  int
}

func (o *lookupOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", string(formatter.FormatTable), formatHelp())
	f.StringVar(&o.prefix, "prefix", "+", "prefix shown ahead of dial codes in the table (default from config)")
	f.IntVar(&o.width, "width", 0, "table width in columns (0 detects the terminal)")
}

func (o *lookupOptions) print(cmd *cobra.Command, c country.Country) error {
	format, err := formatter.ParseFormat(o.output)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out, err := formatter.RenderOne(c, formatter.Options{
		Format:         format,
		DialCodePrefix: dialCodePrefix(cmd, cfg, o.prefix),
		NoColor:        colorDisabled(cmd),
		Width:          o.width,
	})
	if err != nil {
		return err
	}
	return writeString(cmd.OutOrStdout(), out)
}

func newFindCmd() *cobra.Command {
	o := &lookupOptions{}
	cmd := &cobra.Command{
		Use:   "find FIELD VALUE",
		Short: "Find the first country whose field equals a value",
		Long: "Find the first country, in directory order, whose FIELD equals VALUE.\n" +
			"FIELD is one of name, iso2, dialCode, format or areaCodes. areaCodes takes\n" +
			"a comma separated list that must match the country's area codes exactly.",
		Example: "  dialsel find iso2 pl\n  dialsel find dialCode 44 -o json\n  dialsel find areaCodes 204,226,236",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, o, args[0], args[1])
		},
	}
	o.register(cmd)
	return cmd
}

func runFind(cmd *cobra.Command, o *lookupOptions, fieldArg, valueArg string) error {
	field, err := resolver.ParseField(fieldArg)
	if err != nil {
		return err
	}
	dir, err := loadDirectory(cmd)
	if err != nil {
		return err
	}

	var value any = valueArg
	if field == resolver.FieldAreaCodes {
		value = splitList(valueArg)
	}
	c, ok, err := resolver.Find(field, value, dir)
	if err != nil {
		return err
	}
	lgr := logger.FromContext(cmd.Context())
	lgr.V(1).Info("find", "field", string(field), "value", valueArg, "found", ok)
	if !ok {
		return &notFoundError{what: fmt.Sprintf("%s %q", field, valueArg)}
	}
	return o.print(cmd, c)
}

// splitList splits on commas and whitespace, dropping empty items.
func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if parts == nil {
		return []string{}
	}
	return parts
}
