// Package lint checks a country directory for records that cannot be built
// and for data that disagrees with libphonenumber metadata.
package lint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/oakwood-commons/dialsel/pkg/country"
	"github.com/oakwood-commons/dialsel/pkg/directory"
)

// Severity grades a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule identifies the check that produced a finding.
type Rule string

const (
	RuleBuild            Rule = "build"
	RuleRequired         Rule = "required"
	RuleDigits           Rule = "digits"
	RuleISO2Form         Rule = "iso2-form"
	RuleDuplicateISO2    Rule = "duplicate-iso2"
	RuleDuplicateName    Rule = "duplicate-name"
	RuleDuplicatePrio    Rule = "duplicate-priority"
	RuleUnknownRegion    Rule = "unknown-region"
	RuleDialCodeMismatch Rule = "dial-code-mismatch"
)

// Finding is a single lint result.
type Finding struct {
	Index    int      `json:"index" yaml:"index"`
	ISO2     string   `json:"iso2" yaml:"iso2"`
	Severity Severity `json:"severity" yaml:"severity"`
	Rule     Rule     `json:"rule" yaml:"rule"`
	Message  string   `json:"message" yaml:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s [%d %s] %s: %s", f.Severity, f.Index, f.ISO2, f.Rule, f.Message)
}

// Report collects findings in directory order.
type Report struct {
	Findings []Finding `json:"findings" yaml:"findings"`
}

// Errors returns the error-severity findings.
func (r Report) Errors() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// HasErrors reports whether any finding has error severity.
func (r Report) HasErrors() bool { return len(r.Errors()) > 0 }

// Options toggles the optional checks.
type Options struct {
	// SkipMetadata disables the libphonenumber cross-check.
	SkipMetadata bool
}

// Directory lints every record of dir.
func Directory(dir *directory.Directory, opts Options) Report {
	var r Report
	seenISO2 := map[string]int{}
	seenName := map[string]int{}
	type prioKey struct {
		dialCode string
		priority int
	}
	seenPrio := map[prioKey]int{}

	for i, c := range dir.All() {
		add := func(sev Severity, rule Rule, format string, args ...any) {
			r.Findings = append(r.Findings, Finding{
				Index: i, ISO2: c.ISO2, Severity: sev, Rule: rule,
				Message: fmt.Sprintf(format, args...),
			})
		}

		if _, err := country.Build(c); err != nil {
			add(SeverityError, RuleBuild, "%v", err)
		}
		if c.Name == "" {
			add(SeverityError, RuleRequired, "name is empty")
		}
		if c.ISO2 == "" {
			add(SeverityError, RuleRequired, "iso2 is empty")
		} else if !isISO2(c.ISO2) {
			add(SeverityWarning, RuleISO2Form, "iso2 %q is not two lowercase letters", c.ISO2)
		}
		if c.DialCode == "" {
			add(SeverityError, RuleRequired, "dial code is empty")
		} else if !isDigits(c.DialCode) {
			add(SeverityError, RuleDigits, "dial code %q has non-digits", c.DialCode)
		}
		for _, code := range c.AreaCodes {
			if !isDigits(code) {
				add(SeverityError, RuleDigits, "area code %q has non-digits", code)
			}
		}

		if c.ISO2 != "" {
			key := strings.ToLower(c.ISO2)
			if first, ok := seenISO2[key]; ok {
				add(SeverityError, RuleDuplicateISO2, "iso2 %q already used at index %d", c.ISO2, first)
			} else {
				seenISO2[key] = i
			}
		}
		if c.Name != "" {
			if first, ok := seenName[c.Name]; ok {
				add(SeverityWarning, RuleDuplicateName, "name %q already used at index %d", c.Name, first)
			} else {
				seenName[c.Name] = i
			}
		}
		if c.Priority != nil {
			key := prioKey{c.DialCode, *c.Priority}
			if first, ok := seenPrio[key]; ok {
				add(SeverityWarning, RuleDuplicatePrio, "priority %d for dial code %s already used at index %d", *c.Priority, c.DialCode, first)
			} else {
				seenPrio[key] = i
			}
		}

		if !opts.SkipMetadata && isISO2(c.ISO2) && isDigits(c.DialCode) {
			checkMetadata(c, add)
		}
	}
	return r
}

// checkMetadata compares the dial code with the region's calling code.
// Dial codes may extend the calling code with a leading area code (NANP
// members use "1268" for calling code 1).
func checkMetadata(c country.Country, add func(Severity, Rule, string, ...any)) {
	cc := phonenumbers.GetCountryCodeForRegion(strings.ToUpper(c.ISO2))
	if cc == 0 {
		add(SeverityWarning, RuleUnknownRegion, "region %q is unknown to libphonenumber", c.ISO2)
		return
	}
	if want := strconv.Itoa(cc); !strings.HasPrefix(c.DialCode, want) {
		add(SeverityWarning, RuleDialCodeMismatch, "dial code %s does not start with calling code %s", c.DialCode, want)
	}
}

func isISO2(s string) bool {
	return len(s) == 2 && s[0] >= 'a' && s[0] <= 'z' && s[1] >= 'a' && s[1] <= 'z'
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
