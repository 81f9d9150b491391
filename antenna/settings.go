package antenna

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/wiless/antmodel/geom"
)

// Thresholds holds the gain falls (dB, relative to the pattern max) used to
// detect lobes and measure beamwidths.
type Thresholds struct {
	// A sample is a lobe max candidate when within this tolerance of the global max
	MaxGainToleranceDb float64 `json:"maxGainToleranceDb" mapstructure:"max_gain_tolerance_db" yaml:"max_gain_tolerance_db"`
	// Gain fall at the lobe edge
	LobeGainFallDb float64 `json:"lobeGainFallDb" mapstructure:"lobe_gain_fall_db" yaml:"lobe_gain_fall_db"`
	// Gain fall at the beamwidth edge
	BeamwidthGainFallDb float64 `json:"beamwidthGainFallDb" mapstructure:"beamwidth_gain_fall_db" yaml:"beamwidth_gain_fall_db"`
	// Null threshold of the lobe versor sum in the half-plane test
	HalfPlaneEpsilon float64 `json:"halfPlaneEpsilon" mapstructure:"half_plane_epsilon" yaml:"half_plane_epsilon"`
}

func (t *Thresholds) SetDefault() {
	t.MaxGainToleranceDb = 1
	t.LobeGainFallDb = 2
	t.BeamwidthGainFallDb = 3
	t.HalfPlaneEpsilon = geom.ZeroThreshold
}

func NewThresholds() *Thresholds {
	result := new(Thresholds)
	result.SetDefault()
	return result
}

// Set overrides the thresholds present in the json string
func (t *Thresholds) Set(str string) error {
	if err := json.Unmarshal([]byte(str), t); err != nil {
		return fmt.Errorf("decoding thresholds: %w", err)
	}
	return t.Validate()
}

func (t Thresholds) Validate() error {
	values := map[string]float64{
		"maxGainToleranceDb":  t.MaxGainToleranceDb,
		"lobeGainFallDb":      t.LobeGainFallDb,
		"beamwidthGainFallDb": t.BeamwidthGainFallDb,
		"halfPlaneEpsilon":    t.HalfPlaneEpsilon,
	}
	for name, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("invalid threshold %s=%v", name, v)
		}
	}
	return nil
}
