package antmodel

import (
	"gonum.org/v1/gonum/floats"
)

// Summary aggregates the results of a run
type Summary struct {
	Files  int `yaml:"files"`
	Failed int `yaml:"failed"`
	// Patterns whose horizontal (vertical) cut took the omni fallback
	HOmni int `yaml:"horizOmni"`
	VOmni int `yaml:"vertOmni"`
	// Pattern with the highest boresight gain
	BestFile          string  `yaml:"bestFile,omitempty"`
	BestGain          float64 `yaml:"bestGain,omitempty"`
	MeanHBeamwidthDeg float64 `yaml:"meanHorizBeamwidthDeg"`
	MeanVBeamwidthDeg float64 `yaml:"meanVertBeamwidthDeg"`
}

func Summarize(results []Result) Summary {
	var s Summary
	var names []string
	var gains, hbw, vbw []float64
	for _, r := range results {
		s.Files++
		if r.Err != nil || r.Data == nil {
			s.Failed++
			continue
		}
		if r.Data.Horizontal.Params.Omni {
			s.HOmni++
		}
		if r.Data.Vertical.Params.Omni {
			s.VOmni++
		}
		names = append(names, r.SrcFile)
		gains = append(gains, r.Data.BoresightGain)
		hbw = append(hbw, float64(r.Data.HBeamwidthDeg))
		vbw = append(vbw, float64(r.Data.VBeamwidthDeg))
	}
	if len(gains) == 0 {
		return s
	}
	best := floats.MaxIdx(gains)
	s.BestFile, s.BestGain = names[best], gains[best]
	n := float64(len(gains))
	s.MeanHBeamwidthDeg = floats.Sum(hbw) / n
	s.MeanVBeamwidthDeg = floats.Sum(vbw) / n
	return s
}
