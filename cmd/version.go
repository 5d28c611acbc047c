package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dialsel/internal/formatter"
	"github.com/oakwood-commons/dialsel/pkg/settings"
)

type versionOutput struct {
	settings.VersionInfo `yaml:",inline"`
	GoVersion            string `json:"goVersion" yaml:"goVersion"`
}

func newVersionCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print dialsel version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := versionOutput{VersionInfo: settings.VersionInformation, GoVersion: runtime.Version()}
			var (
				out string
				err error
			)
			switch strings.ToLower(output) {
			case "", "text":
				out = cliVersionString(v)
			case "json":
				out, err = formatter.MarshalJSON(v)
			case "yaml":
				out, err = formatter.FormatYAML(v, formatter.YAMLFormatOptions{})
			default:
				return fmt.Errorf("unknown output format %q (want one of text, json, yaml)", output)
			}
			if err != nil {
				return err
			}
			return writeString(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text|json|yaml")
	return cmd
}

func cliVersionString(v versionOutput) string {
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, v.GoVersion)
}
