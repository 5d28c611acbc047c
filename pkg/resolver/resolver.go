// Package resolver looks countries up in a directory by field value and
// guesses the country of a partially typed international number.
package resolver

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/oakwood-commons/dialsel/pkg/country"
	"github.com/oakwood-commons/dialsel/pkg/directory"
)

// Field names a searchable country field.
type Field string

const (
	FieldName      Field = "name"
	FieldISO2      Field = "iso2"
	FieldDialCode  Field = "dialCode"
	FieldFormat    Field = "format"
	FieldPriority  Field = "priority"
	FieldAreaCodes Field = "areaCodes"
)

// ErrUnsupportedField is matched by every *UnsupportedFieldError.
var ErrUnsupportedField = errors.New("unsupported field")

// UnsupportedFieldError reports a lookup by a field that cannot identify a country.
type UnsupportedFieldError struct {
	Field Field
}

func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("field %q is not supported", string(e.Field))
}

func (e *UnsupportedFieldError) Is(target error) bool { return target == ErrUnsupportedField }

// ParseField maps a user-supplied field name onto a Field.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return FieldName, nil
	case "iso2":
		return FieldISO2, nil
	case "dialcode", "dial_code", "dial-code":
		return FieldDialCode, nil
	case "format":
		return FieldFormat, nil
	case "priority":
		return FieldPriority, nil
	case "areacodes", "area_codes", "area-codes":
		return FieldAreaCodes, nil
	}
	return "", &UnsupportedFieldError{Field: Field(s)}
}

// Find returns the first country in dir whose field equals value. A nil dir
// searches the default directory. Area codes compare as sequences ([]string).
// Looking up by priority fails with *UnsupportedFieldError: it is a
// tie-break weight, not an identity.
func Find(field Field, value any, dir *directory.Directory) (country.Country, bool, error) {
	match, err := matcher(field, value)
	if err != nil {
		return country.Country{}, false, err
	}
	if dir == nil {
		dir = directory.Default()
	}
	idx := dir.IndexFunc(match)
	if idx < 0 {
		return country.Country{}, false, nil
	}
	c, _ := dir.At(idx)
	return c, true, nil
}

// FindByISO2 looks a country up by its iso2 code.
func FindByISO2(iso2 string, dir *directory.Directory) (country.Country, bool) {
	c, ok, _ := Find(FieldISO2, iso2, dir)
	return c, ok
}

// FindByDialCode returns the first country with the given dial code.
func FindByDialCode(dialCode string, dir *directory.Directory) (country.Country, bool) {
	c, ok, _ := Find(FieldDialCode, dialCode, dir)
	return c, ok
}

func matcher(field Field, value any) (func(country.Country) bool, error) {
	switch field {
	case FieldName, FieldISO2, FieldDialCode, FieldFormat:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("field %q needs a string value, got %T", string(field), value)
		}
		return func(c country.Country) bool {
			switch field {
			case FieldName:
				return c.Name == s
			case FieldISO2:
				return c.ISO2 == s
			case FieldDialCode:
				return c.DialCode == s
			default:
				return c.Format != nil && *c.Format == s
			}
		}, nil
	case FieldAreaCodes:
		codes, ok := value.([]string)
		if !ok {
			return nil, fmt.Errorf("field %q needs a []string value, got %T", string(field), value)
		}
		return func(c country.Country) bool {
			return c.AreaCodes != nil && slices.Equal(c.AreaCodes, codes)
		}, nil
	default:
		return nil, &UnsupportedFieldError{Field: field}
	}
}

// Guess picks the country a partially typed international number belongs
// to. Non-digits in digits are ignored. The longest matching dial code wins;
// among countries sharing it, one whose area code prefixes the remaining
// digits wins, then the lowest priority (undefined ranks last), then
// directory order.
func Guess(digits string, dir *directory.Directory) (country.Country, bool) {
	digits = onlyDigits(digits)
	if digits == "" {
		return country.Country{}, false
	}
	if dir == nil {
		dir = directory.Default()
	}

	var (
		best      country.Country
		bestScore guessScore
		found     bool
	)
	for _, c := range dir.All() {
		if c.DialCode == "" || !strings.HasPrefix(digits, c.DialCode) {
			continue
		}
		score := scoreCandidate(c, digits[len(c.DialCode):])
		if !found || score.beats(bestScore) {
			best, bestScore, found = c, score, true
		}
	}
	return best, found
}

type guessScore struct {
	dialLen  int
	areaLen  int // length of the matching area code, 0 when none
	priority int
}

// beats is strict so earlier directory entries keep ties.
func (s guessScore) beats(o guessScore) bool {
	if s.dialLen != o.dialLen {
		return s.dialLen > o.dialLen
	}
	if s.areaLen != o.areaLen {
		return s.areaLen > o.areaLen
	}
	return s.priority < o.priority
}

func scoreCandidate(c country.Country, rest string) guessScore {
	score := guessScore{dialLen: len(c.DialCode), priority: c.PriorityOr(math.MaxInt)}
	for _, code := range c.AreaCodes {
		if code != "" && strings.HasPrefix(rest, code) && len(code) > score.areaLen {
			score.areaLen = len(code)
		}
	}
	return score
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
