package country

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFullTuple(t *testing.T) {
	c, err := Parse(Tuple{"Ukraine", "ua", "380", "(..) ... .. ..", 1, []any{"97", "63", "67", "50"}})
	require.NoError(t, err)
	assert.Equal(t, "Ukraine", c.Name)
	assert.Equal(t, "ua", c.ISO2)
	assert.Equal(t, "380", c.DialCode)
	require.NotNil(t, c.Format)
	assert.Equal(t, "(..) ... .. ..", *c.Format)
	require.NotNil(t, c.Priority)
	assert.Equal(t, 1, *c.Priority)
	assert.Equal(t, []string{"97", "63", "67", "50"}, c.AreaCodes)
}

func TestParseLeavesMissingFieldsUndefined(t *testing.T) {
	c, err := Parse(Tuple{"Ukraine", "ua", "380"})
	require.NoError(t, err)
	assert.Nil(t, c.Format)
	assert.Nil(t, c.Priority)
	assert.Nil(t, c.AreaCodes)
}

func TestParseDoesNotValidateInvariant(t *testing.T) {
	// priority without format is a valid shape; Build rejects it.
	c, err := Parse(Tuple{"Ukraine", "ua", "380", nil, 1})
	require.NoError(t, err)
	assert.Nil(t, c.Format)
	require.NotNil(t, c.Priority)
}

func TestParseShapeErrors(t *testing.T) {
	tests := []struct {
		name  string
		tuple Tuple
	}{
		{"too short", Tuple{"Ukraine", "ua"}},
		{"too long", Tuple{"Ukraine", "ua", "380", "..", 0, []any{}, "extra"}},
		{"name not string", Tuple{1, "ua", "380"}},
		{"dial code not string", Tuple{"Ukraine", "ua", 380}},
		{"priority not integer", Tuple{"Ukraine", "ua", "380", "..", "one"}},
		{"fractional priority", Tuple{"Ukraine", "ua", "380", "..", 1.5}},
		{"area codes not strings", Tuple{"Ukraine", "ua", "380", "..", 0, []any{97}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.tuple)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrShape)
		})
	}
}

func TestParseAnyNormalisesDecodedNumbers(t *testing.T) {
	c, err := ParseAny([]any{"Canada", "ca", "1", "(...) ...-....", float64(1), []any{"204", "226"}})
	require.NoError(t, err)
	assert.Equal(t, 1, *c.Priority)

	c, err = ParseAny([]any{"Canada", "ca", "1", "(...) ...-....", int64(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, *c.Priority)

	_, err = ParseAny("Canada")
	assert.ErrorIs(t, err, ErrShape)
}

func TestBuildFromParsedCountry(t *testing.T) {
	full := Tuple{"Ukraine", "ua", "380", "(..) ... .. ..", 1, []string{"97", "63", "67", "50"}}
	c, err := Parse(full)
	require.NoError(t, err)

	built, err := Build(c)
	require.NoError(t, err)
	assert.Equal(t, full, built)
}

func TestBuildMinimalLength(t *testing.T) {
	built, err := Build(Country{Name: "Ukraine", ISO2: "ua", DialCode: "380"})
	require.NoError(t, err)
	assert.Len(t, built, 3)

	built, err = Build(Country{Name: "Ukraine", ISO2: "ua", DialCode: "380", Format: StringPtr(".........")})
	require.NoError(t, err)
	assert.Equal(t, Tuple{"Ukraine", "ua", "380", "........."}, built)

	built, err = Build(Country{Name: "Ukraine", ISO2: "ua", DialCode: "380", Format: StringPtr(".."), Priority: IntPtr(0)})
	require.NoError(t, err)
	assert.Len(t, built, 5)
}

func TestBuildRejectsInvalidCountries(t *testing.T) {
	tests := []struct {
		name string
		c    Country
		rule Rule
	}{
		{
			name: "priority without format",
			c:    Country{Name: "Ukraine", ISO2: "ua", DialCode: "380", Priority: IntPtr(1)},
			rule: RuleFormatRequired,
		},
		{
			name: "area codes without format",
			c:    Country{Name: "Ukraine", ISO2: "ua", DialCode: "380", AreaCodes: []string{"1"}},
			rule: RuleFormatRequired,
		},
		{
			name: "area codes without priority",
			c:    Country{Name: "Ukraine", ISO2: "ua", DialCode: "380", Format: StringPtr("............"), AreaCodes: []string{"1"}},
			rule: RulePriorityRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built, err := Build(tt.c)
			require.Error(t, err)
			assert.Nil(t, built)
			assert.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.rule, verr.Rule)
			assert.Contains(t, verr.Error(), "ua")
		})
	}
}

func TestBuildAcceptsAnyFormatContent(t *testing.T) {
	// Only presence of a format is checked, not its relation to area codes.
	_, err := Build(Country{Name: "X", ISO2: "xx", DialCode: "1", Format: StringPtr(""), Priority: IntPtr(3), AreaCodes: []string{"123", "4"}})
	require.NoError(t, err)
}

func TestRoundTrip(t *testing.T) {
	tuples := []Tuple{
		{"Ukraine", "ua", "380"},
		{"Ukraine", "ua", "380", "(..) ... .. .."},
		{"Canada", "ca", "1", "(...) ...-....", 1},
		{"Canada", "ca", "1", "(...) ...-....", 1, []string{"204", "226"}},
	}
	for _, tuple := range tuples {
		c, err := Parse(tuple)
		require.NoError(t, err)
		built, err := Build(c)
		require.NoError(t, err)
		assert.Equal(t, tuple, built)

		again, err := Parse(built)
		require.NoError(t, err)
		assert.True(t, c.Equal(again), "%v != %v", c, again)
	}
}

func TestEqual(t *testing.T) {
	a := Country{Name: "Canada", ISO2: "ca", DialCode: "1", Format: StringPtr(".."), Priority: IntPtr(1), AreaCodes: []string{"204"}}
	b := a
	b.Format = StringPtr("..")
	assert.True(t, a.Equal(b))

	b.AreaCodes = []string{"226"}
	assert.False(t, a.Equal(b))

	c := a
	c.Priority = nil
	assert.False(t, a.Equal(c))

	undefined := Country{Name: "Canada", ISO2: "ca", DialCode: "1"}
	empty := undefined
	empty.AreaCodes = []string{}
	assert.False(t, undefined.Equal(empty), "defined empty area codes differ from undefined ones")
}

func TestMustBuildPanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		MustBuild(Country{Name: "X", ISO2: "xx", DialCode: "1", Priority: IntPtr(1)})
	})
}
