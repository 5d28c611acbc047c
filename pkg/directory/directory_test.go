package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/dialsel/pkg/country"
)

func TestDefaultDirectory(t *testing.T) {
	dir := Default()
	require.Greater(t, dir.Len(), 200)
	assert.Same(t, dir, Default(), "default directory is shared")

	first, ok := dir.At(0)
	require.True(t, ok)
	assert.Equal(t, "af", first.ISO2)

	last, ok := dir.At(dir.Len() - 1)
	require.True(t, ok)
	assert.Equal(t, "zw", last.ISO2)
}

func TestDefaultDirectoryIsBuildable(t *testing.T) {
	seen := map[string]bool{}
	for i, c := range Default().All() {
		assert.NotEmpty(t, c.Name, "country #%d", i)
		assert.Len(t, c.ISO2, 2, "country %s", c.Name)
		assert.False(t, seen[c.ISO2], "duplicate iso2 %s", c.ISO2)
		seen[c.ISO2] = true

		_, err := country.Build(c)
		assert.NoError(t, err, "country %s", c.ISO2)
	}
}

func TestAtOutOfRange(t *testing.T) {
	dir := Default()
	_, ok := dir.At(-1)
	assert.False(t, ok)
	_, ok = dir.At(dir.Len())
	assert.False(t, ok)

	var nilDir *Directory
	assert.Equal(t, 0, nilDir.Len())
	_, ok = nilDir.At(0)
	assert.False(t, ok)
}

func TestIndexOfISO2(t *testing.T) {
	dir := Default()
	idx := dir.IndexOfISO2("UA")
	require.GreaterOrEqual(t, idx, 0)
	c, _ := dir.At(idx)
	assert.Equal(t, "Ukraine", c.Name)

	assert.Equal(t, -1, dir.IndexOfISO2("zz"))
}

func TestAllStopsEarly(t *testing.T) {
	count := 0
	for range Default().All() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestCountriesReturnsCopy(t *testing.T) {
	dir := New(country.Country{Name: "Ukraine", ISO2: "ua", DialCode: "380"})
	list := dir.Countries()
	list[0].Name = "changed"

	c, _ := dir.At(0)
	assert.Equal(t, "Ukraine", c.Name)
}

func TestNewCopiesInput(t *testing.T) {
	input := []country.Country{{Name: "Ukraine", ISO2: "ua", DialCode: "380"}}
	dir := New(input...)
	input[0].Name = "changed"

	c, _ := dir.At(0)
	assert.Equal(t, "Ukraine", c.Name)
}

func TestSubsetsDoNotMutateDefault(t *testing.T) {
	before := Default().Len()

	only := Default().Only("us", "ua", "zz", "gb")
	require.Equal(t, 3, only.Len())
	var codes []string
	for _, c := range only.All() {
		codes = append(codes, c.ISO2)
	}
	assert.Equal(t, []string{"us", "ua", "gb"}, codes, "Only keeps the requested order")

	without := Default().Without("ua")
	assert.Equal(t, before-1, without.Len())
	assert.Equal(t, -1, without.IndexOfISO2("ua"))

	shared := Default().Subset(func(c country.Country) bool { return c.DialCode == "1" })
	assert.Greater(t, shared.Len(), 1)

	assert.Equal(t, before, Default().Len())
	assert.GreaterOrEqual(t, Default().IndexOfISO2("ua"), 0)
}

func TestFromTuples(t *testing.T) {
	dir, err := FromTuples([]country.Tuple{
		{"Ukraine", "ua", "380"},
		{"Poland", "pl", "48", "...-...-..."},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, dir.Len())

	_, err = FromTuples([]country.Tuple{{"Ukraine"}})
	require.ErrorIs(t, err, country.ErrShape)
	assert.ErrorContains(t, err, "country #0")
}

func TestFromAny(t *testing.T) {
	dir, err := FromAny(map[string]any{
		"countries": []any{[]any{"Ukraine", "ua", "380"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, dir.Len())

	_, err = FromAny(map[string]any{"other": 1})
	require.Error(t, err)

	_, err = FromAny("nope")
	require.Error(t, err)
}

func TestLoadFormats(t *testing.T) {
	tmp := t.TempDir()
	files := map[string]string{
		"c.json": `[["Ukraine", "ua", "380", "(..) ... .. ..", 1, ["97"]]]`,
		"c.yaml": "countries:\n  - [Ukraine, ua, \"380\", \"(..) ... .. ..\", 1, [\"97\"]]\n",
		"c.toml": `countries = [["Ukraine", "ua", "380", "(..) ... .. ..", 1, ["97"]]]`,
	}
	for name, body := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(tmp, name)
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

			dir, err := Load(path)
			require.NoError(t, err)
			c, ok := dir.At(0)
			require.True(t, ok)
			assert.Equal(t, 1, c.PriorityOr(-1))
			assert.Equal(t, []string{"97"}, c.AreaCodes)
		})
	}
}

func TestTuplesRoundTrip(t *testing.T) {
	tuples, err := Default().Tuples()
	require.NoError(t, err)
	again, err := FromTuples(tuples)
	require.NoError(t, err)
	require.Equal(t, Default().Len(), again.Len())
	for i, c := range Default().All() {
		other, _ := again.At(i)
		assert.True(t, c.Equal(other), "country %s", c.ISO2)
	}
}

func TestISO2MatchingIgnoresStoredCase(t *testing.T) {
	dir := New(
		country.Country{Name: "United States", ISO2: "US", DialCode: "1"},
		country.Country{Name: "Poland", ISO2: "pl", DialCode: "48"},
	)
	assert.Equal(t, 0, dir.IndexOfISO2("us"))
	assert.Equal(t, 0, dir.IndexOfISO2(" US "))
	assert.Equal(t, 1, dir.IndexOfISO2("PL"))

	without := dir.Without("us")
	require.Equal(t, 1, without.Len())
	c, _ := without.At(0)
	assert.Equal(t, "pl", c.ISO2)

	assert.Equal(t, 2, dir.Only("pl", "us").Len())
}

func TestOnlySkipsRepeatedCodes(t *testing.T) {
	only := Default().Only("us", "us", "US", "ua", "us")
	var codes []string
	for _, c := range only.All() {
		codes = append(codes, c.ISO2)
	}
	assert.Equal(t, []string{"us", "ua"}, codes)
}
