package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/dialsel/pkg/country"
	"github.com/oakwood-commons/dialsel/pkg/directory"
)

func rules(r Report) []Rule {
	out := make([]Rule, 0, len(r.Findings))
	for _, f := range r.Findings {
		out = append(out, f.Rule)
	}
	return out
}

func TestDefaultDirectoryHasNoErrors(t *testing.T) {
	r := Directory(directory.Default(), Options{})
	assert.False(t, r.HasErrors(), "%v", r.Errors())
}

func TestBuildInvariant(t *testing.T) {
	dir := directory.New(
		country.Country{Name: "A", ISO2: "aa", DialCode: "1", Priority: country.IntPtr(0)},
		country.Country{Name: "B", ISO2: "bb", DialCode: "1", Format: country.StringPtr(""), AreaCodes: []string{"2"}},
	)
	r := Directory(dir, Options{SkipMetadata: true})
	require.Len(t, r.Findings, 2)
	assert.Equal(t, RuleBuild, r.Findings[0].Rule)
	assert.Equal(t, 0, r.Findings[0].Index)
	assert.Contains(t, r.Findings[0].Message, "require format")
	assert.Equal(t, RuleBuild, r.Findings[1].Rule)
	assert.Contains(t, r.Findings[1].Message, "require priority")
	assert.True(t, r.HasErrors())
}

func TestRequiredAndDigits(t *testing.T) {
	dir := directory.New(
		country.Country{ISO2: "aa", DialCode: "1x"},
		country.Country{Name: "B", DialCode: ""},
		country.Country{Name: "C", ISO2: "cc", DialCode: "1", Format: country.StringPtr(""), Priority: country.IntPtr(0), AreaCodes: []string{"2a"}},
	)
	r := Directory(dir, Options{SkipMetadata: true})
	assert.Equal(t, []Rule{RuleRequired, RuleDigits, RuleRequired, RuleRequired, RuleDigits}, rules(r))
}

func TestDuplicates(t *testing.T) {
	dir := directory.New(
		country.Country{Name: "A", ISO2: "aa", DialCode: "9", Format: country.StringPtr(""), Priority: country.IntPtr(0)},
		country.Country{Name: "A", ISO2: "AA", DialCode: "9", Format: country.StringPtr(""), Priority: country.IntPtr(0)},
	)
	r := Directory(dir, Options{SkipMetadata: true})
	assert.Equal(t, []Rule{RuleISO2Form, RuleDuplicateISO2, RuleDuplicateName, RuleDuplicatePrio}, rules(r))
	assert.Equal(t, 1, r.Findings[1].Index)
	assert.Len(t, r.Errors(), 1)
}

func TestMetadataCrossCheck(t *testing.T) {
	dir := directory.New(
		country.Country{Name: "Ukraine", ISO2: "ua", DialCode: "48"},
		country.Country{Name: "Antigua and Barbuda", ISO2: "ag", DialCode: "1268"},
		country.Country{Name: "Nowhere", ISO2: "zz", DialCode: "999"},
	)
	r := Directory(dir, Options{})
	require.Len(t, r.Findings, 2)
	assert.Equal(t, RuleDialCodeMismatch, r.Findings[0].Rule)
	assert.Equal(t, SeverityWarning, r.Findings[0].Severity)
	assert.Contains(t, r.Findings[0].Message, "380")
	assert.Equal(t, RuleUnknownRegion, r.Findings[1].Rule)
	assert.Equal(t, "zz", r.Findings[1].ISO2)
	assert.False(t, r.HasErrors())
}

func TestFindingString(t *testing.T) {
	f := Finding{Index: 3, ISO2: "ua", Severity: SeverityWarning, Rule: RuleDialCodeMismatch, Message: "m"}
	assert.Equal(t, "warning [3 ua] dial-code-mismatch: m", f.String())
}
