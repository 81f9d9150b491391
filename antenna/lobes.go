package antenna

import (
	"math"

	"github.com/wiless/antmodel/geom"
	"github.com/wiless/vlib"
)

// LobeKey identifies a lobe by the sample indexes of its edges
type LobeKey struct {
	Start, End int
}

// Lobe is a contiguous angular region of elevated gain around one or more maxima
type Lobe struct {
	StartIndex        int           `json:"startIndex"`
	EndIndex          int           `json:"endIndex"`
	LobeStartDeg      float64       `json:"lobeStartDeg"`
	LobeEndDeg        float64       `json:"lobeEndDeg"`
	LobeWidthDeg      float64       `json:"lobeWidthDeg"`
	CenterDeg         float64       `json:"centerDeg"`
	CenterVersor      geom.Vector2D `json:"centerVersor"`
	BeamwidthStartDeg float64       `json:"beamwidthStartDeg"`
	BeamwidthEndDeg   float64       `json:"beamwidthEndDeg"`
	BeamwidthDeg      float64       `json:"beamwidthDeg"`
}

func (l Lobe) Key() LobeKey {
	return LobeKey{Start: l.StartIndex, End: l.EndIndex}
}

// LobeSet holds the lobes of a cut-plane in the order they were first detected
type LobeSet struct {
	GlobalMaxGainDb float64 `json:"globalMaxGainDb"`
	Step            float64 `json:"step"`
	Lobes           []Lobe  `json:"lobes"`
}

// Versors returns the center direction of every lobe
func (ls LobeSet) Versors() []geom.Vector2D {
	vectors := make([]geom.Vector2D, len(ls.Lobes))
	for i, l := range ls.Lobes {
		vectors[i] = l.CenterVersor
	}
	return vectors
}

// ExtractLobes finds the lobes around every sample whose gain is within the
// max tolerance of the global max gain.
func ExtractLobes(samples []Sample, th Thresholds) (LobeSet, error) {
	if err := validate(samples); err != nil {
		return LobeSet{}, err
	}

	gains := Gains(samples)
	n := len(gains)
	step := Step(n)
	r := ring{n: n}

	globalMax := vlib.Max(gains)
	maxThres := globalMax - th.MaxGainToleranceDb
	lobeEdge := globalMax - th.LobeGainFallDb
	bwEdge := globalMax - th.BeamwidthGainFallDb

	belowLobeEdge := func(i int) bool { return gains[i] < lobeEdge }
	atBwEdge := func(i int) bool { return gains[i] <= bwEdge }

	// when every sample is a max candidate the pattern is one full revolution
	// lobe, emitted once
	fullCircle := true
	for _, g := range gains {
		if g < maxThres {
			fullCircle = false
			break
		}
	}

	result := LobeSet{GlobalMaxGainDb: globalMax, Step: step}
	position := make(map[LobeKey]int)

	for iMax, g := range gains {
		if g < maxThres {
			continue
		}

		lobe := newLobe(step,
			r.scan(iMax, -1, belowLobeEdge),
			r.scan(iMax, +1, belowLobeEdge),
			r.scan(iMax, -1, atBwEdge),
			r.scan(iMax, +1, atBwEdge),
		)

		if pos, found := position[lobe.Key()]; found {
			result.Lobes[pos] = lobe
		} else {
			position[lobe.Key()] = len(result.Lobes)
			result.Lobes = append(result.Lobes, lobe)
		}

		if fullCircle {
			break
		}
	}
	return result, nil
}

func newLobe(step float64, lobeStart, lobeEnd, bwStart, bwEnd int) Lobe {
	angle := func(i int) float64 {
		return math.Mod(step*float64(i), 360)
	}

	l := Lobe{
		StartIndex:        lobeStart,
		EndIndex:          lobeEnd,
		LobeStartDeg:      angle(lobeStart),
		LobeEndDeg:        angle(lobeEnd),
		BeamwidthStartDeg: angle(bwStart),
		BeamwidthEndDeg:   angle(bwEnd),
	}
	l.LobeWidthDeg = MinBeamwidth(l.LobeStartDeg, l.LobeEndDeg)
	l.CenterDeg = math.Mod(l.LobeStartDeg+l.LobeWidthDeg/2, 360)
	l.CenterVersor = geom.Versor(l.CenterDeg)
	l.BeamwidthDeg = MinBeamwidth(l.BeamwidthStartDeg, l.BeamwidthEndDeg)
	return l
}
