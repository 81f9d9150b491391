// Package selector picks pattern files and derives categorical tags (scenario,
// tilt, polarization...) from their names through user supplied regular expressions.
package selector

import (
	"fmt"
	"regexp"
)

// compile anchors expr at the start of the input, like a prefix match
func compile(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)`)
	if err != nil {
		return nil, fmt.Errorf("invalid regular expression %q: %w", expr, err)
	}
	return re, nil
}

// ReFilter accepts the values matching one of the Allow expressions and none of the Deny ones
type ReFilter struct {
	allow []*regexp.Regexp
	deny  []*regexp.Regexp
}

func NewReFilter(allow, deny []string) (*ReFilter, error) {
	f := new(ReFilter)
	for _, expr := range allow {
		re, err := compile(expr)
		if err != nil {
			return nil, err
		}
		f.allow = append(f.allow, re)
	}
	for _, expr := range deny {
		re, err := compile(expr)
		if err != nil {
			return nil, err
		}
		f.deny = append(f.deny, re)
	}
	return f, nil
}

// Eval reports whether value passes the filter, deny rules win over allow rules
func (f *ReFilter) Eval(value string) bool {
	for _, re := range f.deny {
		if re.MatchString(value) {
			return false
		}
	}
	for _, re := range f.allow {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// Apply returns the values passing the filter, in order
func (f *ReFilter) Apply(values []string) []string {
	var result []string
	for _, v := range values {
		if f.Eval(v) {
			result = append(result, v)
		}
	}
	return result
}
