package antenna

import (
	"fmt"
	"math"

	"github.com/wiless/antmodel/geom"
)

// Params are the beam-shape descriptors of one cut-plane
type Params struct {
	BoresightDeg       int     `json:"boresightDeg"`
	BeamwidthDeg       int     `json:"beamwidthDeg"`
	GlobalMaxGainDb    float64 `json:"globalMaxGainDb"`
	FrontToBackRatioDb float64 `json:"frontToBackRatioDb"`
	// Omni is set when no single dominant direction could be resolved
	Omni bool `json:"omni"`
}

func omniParams(globalMaxGainDb float64) Params {
	return Params{
		BoresightDeg:       0,
		BeamwidthDeg:       360,
		GlobalMaxGainDb:    globalMaxGainDb,
		FrontToBackRatioDb: 0,
		Omni:               true,
	}
}

// SynthesizeParams derives boresight, beamwidth and front-to-back ratio from
// the lobes extracted out of samples.
func SynthesizeParams(samples []Sample, lobes LobeSet, th Thresholds) (Params, error) {
	if err := validate(samples); err != nil {
		return Params{}, err
	}
	if len(lobes.Lobes) == 0 {
		return Params{}, fmt.Errorf("%w: no lobes", ErrMalformedPattern)
	}

	// lobes pointing in conflicting directions: no dominant direction
	vectors := lobes.Versors()
	if !geom.SameHalfPlaneTol(vectors, th.HalfPlaneEpsilon) {
		return omniParams(lobes.GlobalMaxGainDb), nil
	}

	iStart, iEnd, err := geom.AngleRangeBoundaries(vectors)
	if err != nil {
		return Params{}, err
	}
	startLobe := lobes.Lobes[iStart]
	endLobe := lobes.Lobes[iEnd]

	bwStart, bwEnd := startLobe.BeamwidthStartDeg, endLobe.BeamwidthEndDeg
	beamwidth := MinBeamwidth(bwStart, bwEnd)
	if beamwidth >= 180 || ccwSpan(bwStart, bwEnd) >= 180 {
		return omniParams(lobes.GlobalMaxGainDb), nil
	}

	gains := Gains(samples)
	n := len(gains)
	step := Step(n)
	r := ring{n: n}

	boresight := math.Mod(bwStart+math.RoundToEven(beamwidth/2), 360)
	iBoresight := r.at(int(math.RoundToEven(boresight / step)))
	boresight = Wrap0To360(float64(iBoresight) * step)

	// the boresight sample is looked up by index, its own angle must agree
	if got := r.at(int(math.RoundToEven(Wrap0To360(samples[iBoresight].AngleDeg) / step))); got != iBoresight {
		return Params{}, fmt.Errorf("%w: boresight %v falls on sample %d at %v degrees",
			ErrAmbiguousBoresight, boresight, iBoresight, samples[iBoresight].AngleDeg)
	}
	iBack := r.at(iBoresight + int(math.RoundToEven(float64(n)/2)))

	return Params{
		BoresightDeg:       int(math.RoundToEven(boresight)),
		BeamwidthDeg:       int(math.RoundToEven(beamwidth)),
		GlobalMaxGainDb:    lobes.GlobalMaxGainDb,
		FrontToBackRatioDb: math.RoundToEven(gains[iBoresight] - gains[iBack]),
	}, nil
}
