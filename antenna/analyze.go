package antenna

// Cut is the complete analysis of one cut-plane
type Cut struct {
	Lobes  LobeSet `json:"lobes"`
	Params Params  `json:"params"`
	Curve  Curve   `json:"curve"`
}

// Analyze runs the whole chain samples -> lobes -> params -> curve
func Analyze(samples []Sample, th Thresholds) (Cut, error) {
	lobes, err := ExtractLobes(samples, th)
	if err != nil {
		return Cut{}, err
	}
	params, err := SynthesizeParams(samples, lobes, th)
	if err != nil {
		return Cut{}, err
	}
	curve, err := ResampleCurve(samples)
	if err != nil {
		return Cut{}, err
	}
	return Cut{Lobes: lobes, Params: params, Curve: curve}, nil
}
