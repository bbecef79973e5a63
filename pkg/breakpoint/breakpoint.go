// Package breakpoint maps a viewport width to a value, typically a column count.
//
// Rules are evaluated in order and the first match wins, mirroring how a list
// of media queries is resolved:
//
//	rules := []breakpoint.Rule{
//	    breakpoint.MinWidth(1500, 5),
//	    breakpoint.MinWidth(1000, 4),
//	    breakpoint.MinWidth(600, 3),
//	}
//	cols := breakpoint.Resolve(1200, rules, 2) // 4
//
// A [Resolver] wraps the rules and is fed every viewport change. It reports
// a change only when the width crosses a breakpoint, so callers can push the
// new column count downstream without polling.
package breakpoint

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// Rule pairs a width predicate with the value it selects.
type Rule struct {
	// Query is the human-readable form, e.g. "(min-width: 1000px)".
	Query     string
	Predicate func(width float64) bool
	Value     int
}

// Matches reports whether the rule applies at width.
func (r Rule) Matches(width float64) bool {
	return r.Predicate != nil && r.Predicate(width)
}

// MinWidth matches viewports at least px wide.
func MinWidth(px float64, value int) Rule {
	return Rule{
		Query:     fmt.Sprintf("(min-width: %gpx)", px),
		Predicate: func(w float64) bool { return w >= px },
		Value:     value,
	}
}

// MaxWidth matches viewports at most px wide.
func MaxWidth(px float64, value int) Rule {
	return Rule{
		Query:     fmt.Sprintf("(max-width: %gpx)", px),
		Predicate: func(w float64) bool { return w <= px },
		Value:     value,
	}
}

var queryRe = regexp.MustCompile(`^\(\s*(min|max)-width\s*:\s*([0-9]+(?:\.[0-9]+)?)\s*(px)?\s*\)$`)

// Parse builds a rule from a single min-width or max-width media query.
func Parse(query string, value int) (Rule, error) {
	m := queryRe.FindStringSubmatch(strings.TrimSpace(query))
	if m == nil {
		return Rule{}, errors.New(errors.ErrCodeInvalidBreakpoint, "unsupported media query %q", query)
	}
	px, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Rule{}, errors.Wrap(errors.ErrCodeInvalidBreakpoint, err, "parse width in %q", query)
	}
	if m[1] == "min" {
		return MinWidth(px, value), nil
	}
	return MaxWidth(px, value), nil
}

// Resolve returns the value of the first rule matching width, or def.
func Resolve(width float64, rules []Rule, def int) int {
	for _, r := range rules {
		if r.Matches(width) {
			return r.Value
		}
	}
	return def
}

// DefaultRules are the column breakpoints of the mosaic grid.
func DefaultRules() []Rule {
	return []Rule{
		MinWidth(1500, 5),
		MinWidth(1000, 4),
		MinWidth(600, 3),
	}
}

// DefaultColumns applies when no rule matches.
const DefaultColumns = 2

// Resolver re-evaluates the rules whenever the viewport changes.
// It is not safe for concurrent use; feed it from the event loop.
type Resolver struct {
	rules   []Rule
	def     int
	width   float64
	value   int
	started bool
}

// NewResolver creates a resolver. The value is def until the first Update.
func NewResolver(rules []Rule, def int) *Resolver {
	return &Resolver{rules: rules, def: def, value: def}
}

// Update records a new viewport width. changed is true on the first call and
// whenever the resolved value differs from the previous one.
func (r *Resolver) Update(width float64) (value int, changed bool) {
	r.width = width
	v := Resolve(width, r.rules, r.def)
	changed = !r.started || v != r.value
	r.started = true
	r.value = v
	return v, changed
}

// Value returns the most recently resolved value.
func (r *Resolver) Value() int { return r.value }

// Width returns the most recently seen viewport width.
func (r *Resolver) Width() float64 { return r.width }
