package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dialsel/internal/formatter"
	"github.com/oakwood-commons/dialsel/internal/lint"
	"github.com/oakwood-commons/dialsel/pkg/logger"
)

type validateOptions struct {
	output       string
	skipMetadata bool
	strict       bool
}

func newValidateCmd() *cobra.Command {
	o := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Lint the active country directory",
		Long: "Check that every country builds into a tuple, that codes are well formed\n" +
			"and unique, and that dial codes agree with libphonenumber metadata.\n" +
			"Errors make the command fail; warnings only with --strict.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "text", "output format: text|json|yaml")
	f.BoolVar(&o.skipMetadata, "skip-metadata", false, "skip the libphonenumber cross-check")
	f.BoolVar(&o.strict, "strict", false, "fail on warnings too")
	return cmd
}

func runValidate(cmd *cobra.Command, o *validateOptions) error {
	dir, err := loadDirectory(cmd)
	if err != nil {
		return err
	}
	report := lint.Directory(dir, lint.Options{SkipMetadata: o.skipMetadata})
	errs := len(report.Errors())
	warnings := len(report.Findings) - errs

	lgr := logger.FromContext(cmd.Context())
	lgr.V(1).Info("validated directory", "countries", dir.Len(), "errors", errs, "warnings", warnings)

	var out string
	switch strings.ToLower(o.output) {
	case "", "text":
		var b strings.Builder
		for _, f := range report.Findings {
			b.WriteString(f.String())
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "checked %d countries: %d errors, %d warnings\n", dir.Len(), errs, warnings)
		out = b.String()
	case "json":
		out, err = formatter.MarshalJSON(report)
	case "yaml":
		out, err = formatter.FormatYAML(report, formatter.YAMLFormatOptions{})
	default:
		return fmt.Errorf("unknown output format %q (want one of text, json, yaml)", o.output)
	}
	if err != nil {
		return err
	}
	if err := writeString(cmd.OutOrStdout(), out); err != nil {
		return err
	}

	switch {
	case errs > 0:
		return fmt.Errorf("directory has %d errors", errs)
	case o.strict && warnings > 0:
		return fmt.Errorf("directory has %d warnings", warnings)
	}
	return nil
}
