// Package antmodel turns MSI antenna pattern files into beam parameters and
// PAP gain curves.
package antmodel

import (
	"fmt"
	"math"

	"github.com/wiless/antmodel/antenna"
	"github.com/wiless/antmodel/msi"
	"github.com/wiless/antmodel/pap"
)

// GainUnit is the unit of every boresight gain reported by PatternData
const GainUnit = "dBi"

// PatternData is the analysis record of one MSI file
type PatternData struct {
	SrcFile           string            `json:"srcFile" yaml:"srcFile"`
	Header            msi.Header        `json:"header" yaml:"header"`
	RawHeader         map[string]string `json:"rawHeader" yaml:"-"`
	BoresightGain     float64           `json:"boresightGain" yaml:"boresightGain"`
	BoresightGainUnit string            `json:"boresightGainUnit" yaml:"boresightGainUnit"`

	HBeamwidthDeg      int     `json:"horizBeamwidthDeg" yaml:"horizBeamwidthDeg"`
	VBeamwidthDeg      int     `json:"vertBeamwidthDeg" yaml:"vertBeamwidthDeg"`
	HBoresightDeg      int     `json:"horizBoresightDeg" yaml:"horizBoresightDeg"`
	VBoresightDeg      int     `json:"vertBoresightDeg" yaml:"vertBoresightDeg"`
	FrontToBackRatioDb float64 `json:"frontToBackRatioDb" yaml:"frontToBackRatioDb"`

	Horizontal antenna.Cut `json:"-" yaml:"-"`
	Vertical   antenna.Cut `json:"-" yaml:"-"`

	HPattern pap.Pattern `json:"horizPapPattern" yaml:"-"`
	VPattern pap.Pattern `json:"vertPapPattern" yaml:"-"`
}

// Cut returns the analysis of the cut-plane p
func (d *PatternData) Cut(p antenna.Plane) antenna.Cut {
	if p == antenna.Vertical {
		return d.Vertical
	}
	return d.Horizontal
}

// Document returns the PAP xml document of both cut-planes
func (d *PatternData) Document() *pap.Document {
	return pap.NewDocument(d.HPattern, d.VPattern)
}

// beamwidth prefers the width declared in the header over the analyzed one
func beamwidth(h msi.Header, p antenna.Plane, cut antenna.Cut) int {
	if w, ok := h.Width(p); ok {
		return int(math.RoundToEven(w))
	}
	return cut.Params.BeamwidthDeg
}

// NewPatternData analyzes both cut-planes of f
func NewPatternData(src string, f *msi.File, th antenna.Thresholds) (*PatternData, error) {
	header, err := f.DecodeHeader()
	if err != nil {
		return nil, err
	}
	gain, err := header.BoresightGain()
	if err != nil {
		return nil, err
	}

	d := &PatternData{
		SrcFile:           src,
		Header:            header,
		RawHeader:         f.Header,
		BoresightGain:     gain,
		BoresightGainUnit: GainUnit,
	}

	for _, p := range []antenna.Plane{antenna.Horizontal, antenna.Vertical} {
		cut, err := antenna.Analyze(f.Samples(p), th)
		if err != nil {
			return nil, fmt.Errorf("%s plane: %w", p, err)
		}
		pattern := pap.FromCurve(cut.Curve)
		if p == antenna.Vertical {
			d.Vertical, d.VPattern = cut, pattern
			d.VBeamwidthDeg = beamwidth(header, p, cut)
			d.VBoresightDeg = cut.Params.BoresightDeg
		} else {
			d.Horizontal, d.HPattern = cut, pattern
			d.HBeamwidthDeg = beamwidth(header, p, cut)
			d.HBoresightDeg = cut.Params.BoresightDeg
		}
	}
	d.FrontToBackRatioDb = d.Horizontal.Params.FrontToBackRatioDb
	return d, nil
}
