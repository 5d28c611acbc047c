// Package settings holds build metadata and the per-invocation run settings
// shared between the CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "dialsel"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo describes the running binary.
type VersionInfo struct {
	Commit       string `json:"commit" yaml:"commit"`
	BuildVersion string `json:"version" yaml:"version"`
	BuildTime    string `json:"buildTime" yaml:"buildTime"`
}

// Run holds settings for a single execution of the CLI.
type Run struct {
	MinLogLevel int8
	NoColor     bool
	// ConfigFile is the user configuration merged over the defaults.
	ConfigFile string
	// CountriesFile replaces the built-in directory.
	CountriesFile string
	// Where is a CEL predicate narrowing the directory.
	Where string
}

// NewCliParams returns the defaults used before flags are parsed.
func NewCliParams() *Run {
	return &Run{}
}

// HasDirectoryOverride reports whether the directory differs from the built-in one.
func (r *Run) HasDirectoryOverride() bool {
	return r != nil && (r.CountriesFile != "" || r.Where != "")
}
