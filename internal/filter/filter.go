// Package filter narrows a country directory with a CEL predicate.
//
// Expressions see one country at a time through the variables name, iso2,
// dialCode, format, priority and areaCodes. Optional fields report their
// zero value when undefined; hasFormat, hasPriority and hasAreaCodes tell
// the two cases apart.
//
//	dialCode == "1" && hasAreaCodes
//	name.startsWith("United")
//	iso2 in ["de", "at", "ch"]
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/dialsel/pkg/country"
	"github.com/oakwood-commons/dialsel/pkg/directory"
)

// ErrCompile is matched by every expression compilation failure.
var ErrCompile = errors.New("invalid filter expression")

// Predicate is a compiled filter expression.
type Predicate struct {
	expr string
	prg  cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("name", cel.StringType),
		cel.Variable("iso2", cel.StringType),
		cel.Variable("dialCode", cel.StringType),
		cel.Variable("format", cel.StringType),
		cel.Variable("hasFormat", cel.BoolType),
		cel.Variable("priority", cel.IntType),
		cel.Variable("hasPriority", cel.BoolType),
		cel.Variable("areaCodes", cel.ListType(cel.StringType)),
		cel.Variable("hasAreaCodes", cel.BoolType),
		celext.Strings(),
		celext.Lists(),
	)
}

// Compile parses and type-checks expr. The expression must yield a bool.
func Compile(expr string) (*Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrCompile)
	}
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: expression must be a bool, got %s", ErrCompile, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (p *Predicate) String() string { return p.expr }

// Match evaluates the predicate against c.
func (p *Predicate) Match(c country.Country) (bool, error) {
	out, _, err := p.prg.Eval(activation(c))
	if err != nil {
		return false, fmt.Errorf("eval error for %q: %w", c.ISO2, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("eval error for %q: non-bool result %v", c.ISO2, out.Value())
	}
	return b, nil
}

// Apply returns the subset of dir matching the predicate, in directory order.
func (p *Predicate) Apply(dir *directory.Directory) (*directory.Directory, error) {
	var firstErr error
	out := dir.Subset(func(c country.Country) bool {
		if firstErr != nil {
			return false
		}
		ok, err := p.Match(c)
		if err != nil {
			firstErr = err
			return false
		}
		return ok
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// Directory compiles expr and applies it to dir. An empty expression
// returns dir unchanged.
func Directory(dir *directory.Directory, expr string) (*directory.Directory, error) {
	if strings.TrimSpace(expr) == "" {
		return dir, nil
	}
	p, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return p.Apply(dir)
}

func activation(c country.Country) map[string]any {
	areaCodes := c.AreaCodes
	if areaCodes == nil {
		areaCodes = []string{}
	}
	return map[string]any{
		"name":         c.Name,
		"iso2":         c.ISO2,
		"dialCode":     c.DialCode,
		"format":       c.FormatOrEmpty(),
		"hasFormat":    c.HasFormat(),
		"priority":     int64(c.PriorityOr(0)),
		"hasPriority":  c.Priority != nil,
		"areaCodes":    areaCodes,
		"hasAreaCodes": c.AreaCodes != nil,
	}
}
