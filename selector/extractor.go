package selector

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// CaptureGroup is the name of the regexp group holding the extracted value
const CaptureGroup = "cg"

type PathPart int

const (
	FullPath PathPart = iota
	BaseName
	DirName
)

var PathParts = [...]string{
	"full",
	"basename",
	"dirname",
}

func (p PathPart) String() string {
	if int(p) < 0 || int(p) >= len(PathParts) {
		return "Unknown-PathPart"
	}
	return PathParts[p]
}

// ParsePathPart converts full|basename|dirname into a PathPart
func ParsePathPart(s string) (PathPart, error) {
	if s == "" {
		return FullPath, nil
	}
	for i, name := range PathParts {
		if strings.EqualFold(s, name) {
			return PathPart(i), nil
		}
	}
	return FullPath, fmt.Errorf("path part must be one of %v, got %q", PathParts, s)
}

// NameExtractor extracts a parameter out of a pattern name (usually its file path).
// With a nil Regexp the whole (pre processed) path part is the value.
type NameExtractor struct {
	Regexp      *regexp.Regexp
	PathPart    PathPart
	PreCapture  func(string) string
	PostCapture func(string) (interface{}, error)
}

// NewNameExtractor compiles expr, which must define a (?P<cg>...) group when not empty
func NewNameExtractor(expr string, part PathPart) (*NameExtractor, error) {
	e := &NameExtractor{PathPart: part}
	if expr == "" {
		return e, nil
	}
	re, err := compile(expr)
	if err != nil {
		return nil, err
	}
	if re.SubexpIndex(CaptureGroup) < 0 {
		return nil, fmt.Errorf("regular expression %q has no (?P<%s>...) group", expr, CaptureGroup)
	}
	e.Regexp = re
	return e, nil
}

func (e *NameExtractor) Extract(name string) (interface{}, error) {
	value := name
	switch e.PathPart {
	case BaseName:
		value = filepath.Base(name)
	case DirName:
		value = filepath.Dir(name)
	}
	if value == "" || value == "." {
		return nil, fmt.Errorf("invalid pattern name %q", name)
	}

	if e.PreCapture != nil {
		value = e.PreCapture(value)
	}

	if e.Regexp != nil {
		m := e.Regexp.FindStringSubmatch(value)
		if m == nil {
			return nil, fmt.Errorf("%q does not match %s", value, e.Regexp)
		}
		value = m[e.Regexp.SubexpIndex(CaptureGroup)]
	}

	if e.PostCapture == nil {
		return value, nil
	}
	result, err := e.PostCapture(value)
	if err != nil {
		return nil, fmt.Errorf("post processing %q: %w", value, err)
	}
	return result, nil
}

// NameSelector matches pre-existing parameter values against an expression built
// from the pattern name, for parameters that cannot be extracted from the name itself.
type NameSelector struct {
	// SelectRe returns the expression for a pattern name, "" when none applies
	SelectRe   func(name string) string
	PreCapture func(string) string
}

func (s *NameSelector) Select(name string, values []string) ([]string, error) {
	if s.SelectRe == nil {
		return nil, nil
	}
	expr := s.SelectRe(name)
	if expr == "" {
		return nil, nil
	}
	re, err := compile(expr)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, v := range values {
		if s.PreCapture != nil {
			v = s.PreCapture(v)
		}
		if re.MatchString(v) {
			result = append(result, v)
		}
	}
	return result, nil
}
