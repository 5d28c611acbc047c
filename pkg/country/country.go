// Package country defines the country record used throughout dialsel and its
// compact positional tuple form.
package country

import (
	"fmt"
	"math"
	"slices"
)

// Tuple positions.
const (
	posName = iota
	posISO2
	posDialCode
	posFormat
	posPriority
	posAreaCodes

	minTupleLen = posDialCode + 1
	maxTupleLen = posAreaCodes + 1
)

// Tuple is the compact form of a country: name, iso2, dialCode, and the
// optional format, priority and areaCodes. Trailing optional fields are
// omitted, so a tuple holds between 3 and 6 elements.
type Tuple []any

// Country is the structured form of a Tuple. Optional fields are nil when
// undefined; a defined empty Format is distinct from an absent one.
type Country struct {
	Name      string   `json:"name" yaml:"name"`
	ISO2      string   `json:"iso2" yaml:"iso2"`
	DialCode  string   `json:"dialCode" yaml:"dialCode"`
	Format    *string  `json:"format,omitempty" yaml:"format,omitempty"`
	Priority  *int     `json:"priority,omitempty" yaml:"priority,omitempty"`
	AreaCodes []string `json:"areaCodes,omitempty" yaml:"areaCodes,omitempty"`
}

// Parse maps positional tuple fields onto a Country. Only the shape of the
// tuple is checked; the format/priority invariant is enforced by Build.
func Parse(t Tuple) (Country, error) {
	if len(t) < minTupleLen || len(t) > maxTupleLen {
		return Country{}, &ShapeError{Position: -1, Reason: fmt.Sprintf("tuple length %d outside [%d, %d]", len(t), minTupleLen, maxTupleLen)}
	}

	var c Country
	var err error
	if c.Name, err = stringAt(t, posName); err != nil {
		return Country{}, err
	}
	if c.ISO2, err = stringAt(t, posISO2); err != nil {
		return Country{}, err
	}
	if c.DialCode, err = stringAt(t, posDialCode); err != nil {
		return Country{}, err
	}

	if len(t) > posFormat && t[posFormat] != nil {
		f, err := stringAt(t, posFormat)
		if err != nil {
			return Country{}, err
		}
		c.Format = &f
	}
	if len(t) > posPriority && t[posPriority] != nil {
		p, err := intAt(t, posPriority)
		if err != nil {
			return Country{}, err
		}
		c.Priority = &p
	}
	if len(t) > posAreaCodes && t[posAreaCodes] != nil {
		codes, err := stringsAt(t, posAreaCodes)
		if err != nil {
			return Country{}, err
		}
		c.AreaCodes = codes
	}
	return c, nil
}

// ParseAny parses a generically decoded value, usually a []any produced by a
// JSON, YAML or TOML decoder.
func ParseAny(v any) (Country, error) {
	switch t := v.(type) {
	case Tuple:
		return Parse(t)
	case []any:
		return Parse(Tuple(t))
	case []string:
		tuple := make(Tuple, len(t))
		for i, s := range t {
			tuple[i] = s
		}
		return Parse(tuple)
	default:
		return Country{}, &ShapeError{Position: -1, Reason: fmt.Sprintf("expected a list, got %T", v)}
	}
}

// Build converts a Country back into its minimal tuple. It fails with a
// *ValidationError when priority or area codes are set without a format, or
// area codes without a priority.
func Build(c Country) (Tuple, error) {
	if c.Format == nil && (c.Priority != nil || c.AreaCodes != nil) {
		return nil, &ValidationError{Rule: RuleFormatRequired, Country: c.ISO2}
	}
	if c.Priority == nil && c.AreaCodes != nil {
		return nil, &ValidationError{Rule: RulePriorityRequired, Country: c.ISO2}
	}

	t := Tuple{c.Name, c.ISO2, c.DialCode}
	if c.Format != nil {
		t = append(t, *c.Format)
	}
	if c.Priority != nil {
		t = append(t, *c.Priority)
	}
	if c.AreaCodes != nil {
		t = append(t, slices.Clone(c.AreaCodes))
	}
	return t, nil
}

// MustBuild is Build for static data known to be valid.
func MustBuild(c Country) Tuple {
	t, err := Build(c)
	if err != nil {
		panic(err)
	}
	return t
}

// Tuple is shorthand for Build(c).
func (c Country) Tuple() (Tuple, error) {
	return Build(c)
}

// Equal reports whether both countries define the same fields with the same values.
func (c Country) Equal(o Country) bool {
	if c.Name != o.Name || c.ISO2 != o.ISO2 || c.DialCode != o.DialCode {
		return false
	}
	if !equalPtr(c.Format, o.Format) || !equalPtr(c.Priority, o.Priority) {
		return false
	}
	if (c.AreaCodes == nil) != (o.AreaCodes == nil) {
		return false
	}
	return slices.Equal(c.AreaCodes, o.AreaCodes)
}

// HasFormat reports whether a format mask is defined.
func (c Country) HasFormat() bool { return c.Format != nil }

// FormatOrEmpty returns the format mask or "" when undefined.
func (c Country) FormatOrEmpty() string {
	if c.Format == nil {
		return ""
	}
	return *c.Format
}

// PriorityOr returns the priority or def when undefined.
func (c Country) PriorityOr(def int) int {
	if c.Priority == nil {
		return def
	}
	return *c.Priority
}

func (c Country) String() string {
	return fmt.Sprintf("%s (%s, %s)", c.Name, c.ISO2, c.DialCode)
}

// StringPtr and IntPtr help build optional fields in literals.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to i.
func IntPtr(i int) *int { return &i }

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func stringAt(t Tuple, pos int) (string, error) {
	s, ok := t[pos].(string)
	if !ok {
		return "", &ShapeError{Position: pos, Reason: fmt.Sprintf("expected string, got %T", t[pos])}
	}
	return s, nil
}

func intAt(t Tuple, pos int) (int, error) {
	switch n := t[pos].(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		if n > math.MaxInt32 {
			break
		}
		return int(n), nil
	case float64:
		if n == math.Trunc(n) && n >= math.MinInt32 && n <= math.MaxInt32 {
			return int(n), nil
		}
	}
	return 0, &ShapeError{Position: pos, Reason: fmt.Sprintf("expected integer, got %T(%v)", t[pos], t[pos])}
}

func stringsAt(t Tuple, pos int) ([]string, error) {
	switch v := t[pos].(type) {
	case []string:
		return slices.Clone(v), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, &ShapeError{Position: pos, Reason: fmt.Sprintf("expected list of strings, found %T", e)}
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, &ShapeError{Position: pos, Reason: fmt.Sprintf("expected list of strings, got %T", t[pos])}
}
