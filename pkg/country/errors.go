package country

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("invalid country")
	// ErrShape is matched by every *ShapeError.
	ErrShape = errors.New("malformed country tuple")
)

// Rule names a construction invariant.
type Rule string

const (
	// RuleFormatRequired: priority and area codes need a format mask.
	RuleFormatRequired Rule = "format-required"
	// RulePriorityRequired: area codes need a priority.
	RulePriorityRequired Rule = "priority-required"
)

// ValidationError reports a Country that cannot be built into a tuple.
type ValidationError struct {
	Rule    Rule
	Country string // iso2 of the offending record, may be empty
}

func (e *ValidationError) Error() string {
	var msg string
	switch e.Rule {
	case RuleFormatRequired:
		msg = "priority and areaCodes require format to be set"
	case RulePriorityRequired:
		msg = "areaCodes require priority to be set"
	default:
		msg = string(e.Rule)
	}
	if e.Country != "" {
		return fmt.Sprintf("country %q: %s", e.Country, msg)
	}
	return msg
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ShapeError reports a tuple whose length or element types are wrong.
// Position is -1 when the tuple as a whole is malformed.
type ShapeError struct {
	Position int
	Reason   string
}

func (e *ShapeError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("malformed country tuple: %s", e.Reason)
	}
	return fmt.Sprintf("malformed country tuple at position %d: %s", e.Position, e.Reason)
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }
