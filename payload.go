package antmodel

import (
	"fmt"

	"github.com/wiless/antmodel/antenna"
	"github.com/wiless/antmodel/pap"
)

// PayloadExtractor derives one parameter from an analyzed pattern
type PayloadExtractor func(d *PatternData) (interface{}, error)

// Extract runs the extractor, a panic is reported as an error
func (e PayloadExtractor) Extract(d *PatternData) (value interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, err = nil, fmt.Errorf("payload extractor: %v", r)
		}
	}()
	return e(d)
}

// PapBoresight extracts the power weighted boresight of the PAP pattern of
// plane p, see pap.Pattern.BoresightDeg
func PapBoresight(p antenna.Plane, minGainDb float64) PayloadExtractor {
	return func(d *PatternData) (interface{}, error) {
		pattern := d.HPattern
		if p == antenna.Vertical {
			pattern = d.VPattern
		}
		return pattern.BoresightDeg(minGainDb)
	}
}

// HeaderField extracts a raw header value
func HeaderField(key string) PayloadExtractor {
	return func(d *PatternData) (interface{}, error) {
		v, ok := d.RawHeader[key]
		if !ok {
			return nil, fmt.Errorf("no %s header in %s", key, d.SrcFile)
		}
		return v, nil
	}
}

// DefaultPayload are the extractors reported for every pattern
var DefaultPayload = map[string]PayloadExtractor{
	"horizPapBoresightDeg": PapBoresight(antenna.Horizontal, pap.DefaultMinGainDb),
	"vertPapBoresightDeg":  PapBoresight(antenna.Vertical, pap.DefaultMinGainDb),
}

// ExtractPayload runs every extractor on d. Failing extractors are left out
// of the values and returned in errs.
func ExtractPayload(d *PatternData, extractors map[string]PayloadExtractor) (values map[string]interface{}, errs map[string]error) {
	values = make(map[string]interface{}, len(extractors))
	for name, e := range extractors {
		v, err := e.Extract(d)
		if err != nil {
			if errs == nil {
				errs = make(map[string]error)
			}
			errs[name] = err
			continue
		}
		values[name] = v
	}
	return values, errs
}
