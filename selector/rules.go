package selector

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules is the yaml description of the source file filter, of the parameter
// extractors and of the parameter selectors
//
//	allow: ['.*Envelope_L1.*\.msi$']
//	deny: ['.*TypeApproval.*']
//	extractors:
//	  electrical_tilt:
//	    regexp: '.*etilt_offset=(?P<cg>-?\d+).*'
//	    path: basename
//	    lower: true
//	    type: int
//	  min_freq:
//	    header: FREQUENCY
//	    type: float
//	    offset: -100
//	select:
//	  scenario:
//	    - match: '.*SSB.*'
//	      values: 'BeamSets_.*'
type Rules struct {
	Allow      []string                 `yaml:"allow"`
	Deny       []string                 `yaml:"deny"`
	Extractors map[string]ExtractorRule `yaml:"extractors"`
	Select     map[string][]SelectRule  `yaml:"select"`
}

type ExtractorRule struct {
	Regexp string `yaml:"regexp"`
	Path   string `yaml:"path"`
	// Header reads the value of this header key instead of the pattern path
	Header string `yaml:"header"`
	Lower  bool   `yaml:"lower"`
	// Type converts the captured value: string (default), int or float
	Type string `yaml:"type"`
	// Offset is added to float values
	Offset float64 `yaml:"offset"`
	// Value replaces the captured value when not empty
	Value string `yaml:"value"`
}

// SelectRule applies to the patterns whose name matches Match: it selects the
// existing parameter values matching Values.
type SelectRule struct {
	Match  string `yaml:"match"`
	Values string `yaml:"values"`
}

// Extractor extracts a parameter from the relative path of a pattern, or from
// one of its header values when Header is set
type Extractor struct {
	*NameExtractor
	Header string
}

func (e *Extractor) ExtractFrom(path string, header map[string]string) (interface{}, error) {
	if e.Header == "" {
		return e.Extract(path)
	}
	value, ok := header[e.Header]
	if !ok {
		return nil, fmt.Errorf("no %s header", e.Header)
	}
	return e.Extract(value)
}

func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	return ParseRules(data)
}

func ParseRules(data []byte) (*Rules, error) {
	rules := new(Rules)
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("decoding rules: %w", err)
	}
	if len(rules.Allow) == 0 {
		rules.Allow = []string{".*"}
	}
	return rules, nil
}

func (r *Rules) Filter() (*ReFilter, error) {
	return NewReFilter(r.Allow, r.Deny)
}

// NameExtractors builds one extractor per configured rule
func (r *Rules) NameExtractors() (map[string]*Extractor, error) {
	result := make(map[string]*Extractor, len(r.Extractors))
	for name, rule := range r.Extractors {
		e, err := rule.build()
		if err != nil {
			return nil, fmt.Errorf("extractor %s: %w", name, err)
		}
		result[name] = &Extractor{NameExtractor: e, Header: rule.Header}
	}
	return result, nil
}

// NameSelectors builds one selector per parameter of the select section, the
// first rule matching a pattern name gives its values expression.
func (r *Rules) NameSelectors() (map[string]*NameSelector, error) {
	result := make(map[string]*NameSelector, len(r.Select))
	for param, rules := range r.Select {
		matchers := make([]*regexp.Regexp, len(rules))
		values := make([]string, len(rules))
		for i, rule := range rules {
			re, err := compile(rule.Match)
			if err != nil {
				return nil, fmt.Errorf("selector %s: %w", param, err)
			}
			if _, err := compile(rule.Values); err != nil {
				return nil, fmt.Errorf("selector %s: %w", param, err)
			}
			matchers[i], values[i] = re, rule.Values
		}
		result[param] = &NameSelector{
			SelectRe: func(name string) string {
				for i, re := range matchers {
					if re.MatchString(name) {
						return values[i]
					}
				}
				return ""
			},
		}
	}
	return result, nil
}

func (rule ExtractorRule) build() (*NameExtractor, error) {
	part, err := ParsePathPart(rule.Path)
	if err != nil {
		return nil, err
	}
	if rule.Header != "" {
		part = FullPath
	}
	e, err := NewNameExtractor(rule.Regexp, part)
	if err != nil {
		return nil, err
	}
	if rule.Lower {
		e.PreCapture = strings.ToLower
	}

	constant, offset := rule.Value, rule.Offset
	switch strings.ToLower(rule.Type) {
	case "", "string":
		if constant != "" {
			e.PostCapture = func(string) (interface{}, error) { return constant, nil }
		}
	case "int":
		e.PostCapture = func(s string) (interface{}, error) {
			if constant != "" {
				s = constant
			}
			return strconv.Atoi(s)
		}
	case "float":
		e.PostCapture = func(s string) (interface{}, error) {
			if constant != "" {
				s = constant
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, err
			}
			return v + offset, nil
		}
	default:
		return nil, fmt.Errorf("unknown type %q", rule.Type)
	}
	return e, nil
}
