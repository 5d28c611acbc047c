// Package directory holds the ordered, immutable list of countries that
// lookups and the selection list operate on.
//
// Order is significant: it is the list order shown to users and the order in
// which lookups resolve ties between countries sharing a dial code.
package directory

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/oakwood-commons/dialsel/pkg/country"
	"github.com/oakwood-commons/dialsel/pkg/loader"
)

//go:embed countries.json
var embeddedCountries []byte

var (
	defaultOnce sync.Once
	defaultDir  *Directory
)

// Directory is an ordered, read-only sequence of countries. A Directory is
// never mutated after construction; derived views return new instances.
type Directory struct {
	countries []country.Country
}

// New returns a directory holding a copy of countries in the given order.
func New(countries ...country.Country) *Directory {
	return &Directory{countries: slices.Clone(countries)}
}

// FromTuples parses every tuple in order.
func FromTuples(tuples []country.Tuple) (*Directory, error) {
	countries := make([]country.Country, 0, len(tuples))
	for i, t := range tuples {
		c, err := country.Parse(t)
		if err != nil {
			return nil, fmt.Errorf("country #%d: %w", i, err)
		}
		countries = append(countries, c)
	}
	return &Directory{countries: countries}, nil
}

// FromAny builds a directory from a decoded document: either a list of
// tuples or a mapping with a "countries" key holding one.
func FromAny(doc any) (*Directory, error) {
	if m, ok := doc.(map[string]any); ok {
		inner, ok := m["countries"]
		if !ok {
			return nil, fmt.Errorf("document has no \"countries\" key")
		}
		doc = inner
	}
	list, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of country tuples, got %T", doc)
	}
	countries := make([]country.Country, 0, len(list))
	for i, v := range list {
		c, err := country.ParseAny(v)
		if err != nil {
			return nil, fmt.Errorf("country #%d: %w", i, err)
		}
		countries = append(countries, c)
	}
	return &Directory{countries: countries}, nil
}

// Load reads a JSON, YAML or TOML file of country tuples.
func Load(path string) (*Directory, error) {
	doc, err := loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load countries %s: %w", path, err)
	}
	dir, err := FromAny(doc)
	if err != nil {
		return nil, fmt.Errorf("load countries %s: %w", path, err)
	}
	return dir, nil
}

// Default returns the built-in directory. It is parsed once and shared.
func Default() *Directory {
	defaultOnce.Do(func() {
		var raw []any
		if err := json.Unmarshal(embeddedCountries, &raw); err != nil {
			panic(fmt.Sprintf("decode embedded countries: %v", err))
		}
		dir, err := FromAny(raw)
		if err != nil {
			panic(fmt.Sprintf("parse embedded countries: %v", err))
		}
		defaultDir = dir
	})
	return defaultDir
}

// Len returns the number of countries.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.countries)
}

// At returns the country at index i.
func (d *Directory) At(i int) (country.Country, bool) {
	if d == nil || i < 0 || i >= len(d.countries) {
		return country.Country{}, false
	}
	return d.countries[i], true
}

// All iterates countries in directory order.
func (d *Directory) All() iter.Seq2[int, country.Country] {
	return func(yield func(int, country.Country) bool) {
		if d == nil {
			return
		}
		for i, c := range d.countries {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Countries returns a copy of the ordered countries.
func (d *Directory) Countries() []country.Country {
	if d == nil {
		return nil
	}
	return slices.Clone(d.countries)
}

// IndexFunc returns the index of the first country satisfying pred, or -1.
func (d *Directory) IndexFunc(pred func(country.Country) bool) int {
	if d == nil {
		return -1
	}
	return slices.IndexFunc(d.countries, pred)
}

// IndexOfISO2 returns the index of the country with the given iso2, or -1.
// Matching is case-insensitive.
func (d *Directory) IndexOfISO2(iso2 string) int {
	iso2 = strings.TrimSpace(iso2)
	return d.IndexFunc(func(c country.Country) bool { return strings.EqualFold(c.ISO2, iso2) })
}

// Subset returns a new directory with the countries satisfying keep, in order.
func (d *Directory) Subset(keep func(country.Country) bool) *Directory {
	out := &Directory{}
	for _, c := range d.All() {
		if keep(c) {
			out.countries = append(out.countries, c)
		}
	}
	return out
}

// Only returns a new directory with the listed countries in the listed
// order. Unknown and repeated codes are skipped.
func (d *Directory) Only(iso2 ...string) *Directory {
	out := &Directory{}
	seen := make(map[int]struct{}, len(iso2))
	for _, code := range iso2 {
		idx := d.IndexOfISO2(code)
		if _, dup := seen[idx]; dup {
			continue
		}
		if c, ok := d.At(idx); ok {
			seen[idx] = struct{}{}
			out.countries = append(out.countries, c)
		}
	}
	return out
}

// Without returns a new directory omitting the listed countries.
func (d *Directory) Without(iso2 ...string) *Directory {
	drop := make(map[string]struct{}, len(iso2))
	for _, code := range iso2 {
		drop[strings.ToLower(strings.TrimSpace(code))] = struct{}{}
	}
	return d.Subset(func(c country.Country) bool {
		_, skip := drop[strings.ToLower(c.ISO2)]
		return !skip
	})
}

// Tuples builds every country back into its compact form.
func (d *Directory) Tuples() ([]country.Tuple, error) {
	out := make([]country.Tuple, 0, d.Len())
	for _, c := range d.All() {
		t, err := country.Build(c)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
