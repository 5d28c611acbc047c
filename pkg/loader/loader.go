// Package loader decodes JSON, YAML and TOML documents into generic Go
// values (maps, slices and scalars).
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a document encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var (
	tomlSectionPattern  = regexp.MustCompile(`^\s*\[{1,2}[a-zA-Z_][a-zA-Z0-9_.-]*\]{1,2}\s*$`)
	tomlKeyValuePattern = regexp.MustCompile(`^\s*[a-zA-Z_][a-zA-Z0-9_.-]*\s*=\s*.+$`)
)

// LoadData decodes input, detecting the format when f is FormatAuto.
func LoadData(input string, f Format) (any, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}
	if f == FormatAuto {
		f = Detect(input)
	}
	switch f {
	case FormatJSON:
		return loadJSON(input)
	case FormatTOML:
		return loadTOML(input)
	case FormatYAML:
		return loadYAML(input)
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
}

// LoadFile reads path and decodes it. The extension selects the format;
// unknown extensions fall back to detection.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadData(string(data), FormatFromPath(path))
}

// FormatFromPath maps a file extension to a Format.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatAuto
	}
}

// Detect guesses the format of input. TOML is checked before JSON because
// TOML section headers look like JSON arrays.
func Detect(input string) Format {
	trimmed := strings.TrimSpace(input)
	if isLikelyTOML(trimmed) {
		return FormatTOML
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if json.Valid([]byte(trimmed)) {
			return FormatJSON
		}
	}
	return FormatYAML
}

func loadJSON(input string) (any, error) {
	var data any
	if err := json.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return data, nil
}

func loadYAML(input string) (any, error) {
	var data any
	if err := yaml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return data, nil
}

func loadTOML(input string) (any, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return data, nil
}

// isLikelyTOML reports whether input has TOML section headers or is mostly
// key = value lines.
func isLikelyTOML(input string) bool {
	sections, pairs, nonEmpty := 0, 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSectionPattern.MatchString(line) {
			sections++
		}
		if tomlKeyValuePattern.MatchString(line) {
			pairs++
		}
	}
	if sections > 0 {
		return true
	}
	return nonEmpty > 0 && pairs > nonEmpty/2
}
