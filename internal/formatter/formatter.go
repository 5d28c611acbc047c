// Package formatter renders country listings for the CLI.
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/oakwood-commons/dialsel/pkg/country"
)

// Format selects the output encoding.
type Format string

const (
	FormatTable      Format = "table"
	FormatJSON       Format = "json"
	FormatYAMLOutput Format = "yaml"
	FormatTOML       Format = "toml"
	FormatCSV        Format = "csv"
	FormatTuples     Format = "tuples"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatTable, FormatJSON, FormatYAMLOutput, FormatTOML, FormatCSV, FormatTuples}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatTable, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want one of %s)", s, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Options controls rendering.
type Options struct {
	Format Format
	// DialCodePrefix is shown ahead of dial codes in the table.
	DialCodePrefix string
	// NoColor disables ANSI styling in the table.
	NoColor bool
	// Width is the table width; 0 detects the terminal width.
	Width int
	// RowNumbers prefixes table rows with their position.
	RowNumbers bool
	Colors     TableColors
}

// Record is the encoded shape of one country.
type Record struct {
	Name      string   `json:"name" yaml:"name" toml:"name"`
	ISO2      string   `json:"iso2" yaml:"iso2" toml:"iso2"`
	DialCode  string   `json:"dialCode" yaml:"dialCode" toml:"dialCode"`
	Format    *string  `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
	Priority  *int     `json:"priority,omitempty" yaml:"priority,omitempty" toml:"priority,omitempty"`
	AreaCodes []string `json:"areaCodes,omitempty" yaml:"areaCodes,omitempty" toml:"areaCodes,omitempty"`
}

// NewRecord converts a country.
func NewRecord(c country.Country) Record {
	return Record{
		Name: c.Name, ISO2: c.ISO2, DialCode: c.DialCode,
		Format: c.Format, Priority: c.Priority, AreaCodes: c.AreaCodes,
	}
}

// Records converts a listing.
func Records(cs []country.Country) []Record {
	out := make([]Record, len(cs))
	for i, c := range cs {
		out[i] = NewRecord(c)
	}
	return out
}

// Write renders countries to w.
func Write(w io.Writer, countries []country.Country, opts Options) error {
	out, err := Render(countries, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Render renders countries to a string.
func Render(countries []country.Country, opts Options) (string, error) {
	switch opts.Format {
	case "", FormatTable:
		return renderTable(countries, opts), nil
	case FormatJSON:
		return MarshalJSON(Records(countries))
	case FormatYAMLOutput:
		return FormatYAML(Records(countries), YAMLFormatOptions{FlowSequences: true})
	case FormatTOML:
		b, err := toml.Marshal(map[string]any{"countries": Records(countries)})
		if err != nil {
			return "", fmt.Errorf("toml: %w", err)
		}
		return string(b), nil
	case FormatCSV:
		return renderCSV(countries)
	case FormatTuples:
		tuples := make([]country.Tuple, 0, len(countries))
		for _, c := range countries {
			t, err := country.Build(c)
			if err != nil {
				return "", err
			}
			tuples = append(tuples, t)
		}
		return MarshalJSON(tuples)
	default:
		return "", fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// RenderOne renders a single country. Structured formats emit an object
// rather than a one-element list.
func RenderOne(c country.Country, opts Options) (string, error) {
	switch opts.Format {
	case FormatJSON:
		return MarshalJSON(NewRecord(c))
	case FormatYAMLOutput:
		return FormatYAML(NewRecord(c), YAMLFormatOptions{FlowSequences: true})
	case FormatTOML:
		b, err := toml.Marshal(NewRecord(c))
		if err != nil {
			return "", fmt.Errorf("toml: %w", err)
		}
		return string(b), nil
	case FormatTuples:
		t, err := country.Build(c)
		if err != nil {
			return "", err
		}
		return MarshalJSON(t)
	default:
		return Render([]country.Country{c}, opts)
	}
}

// MarshalJSON encodes v as indented JSON without HTML escaping.
func MarshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("json: %w", err)
	}
	return buf.String(), nil
}

var csvHeader = []string{"name", "iso2", "dialCode", "format", "priority", "areaCodes"}

func renderCSV(countries []country.Country) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, c := range countries {
		prio := ""
		if c.Priority != nil {
			prio = strconv.Itoa(*c.Priority)
		}
		if err := w.Write([]string{c.Name, c.ISO2, c.DialCode, c.FormatOrEmpty(), prio, strings.Join(c.AreaCodes, " ")}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
