// Package pap holds the serialized form of an analyzed cut-plane: a gain
// curve over [StartAngle, EndAngle] at Step degrees, as found in .pap files.
package pap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wiless/antmodel/antenna"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/floats"
)

// DefaultMinGainDb is the gain floor of BoresightDeg
const DefaultMinGainDb = -5.0

type Pattern struct {
	Inclination int    `json:"inclination"`
	Orientation int    `json:"orientation"`
	StartAngle  int    `json:"startAngle"`
	EndAngle    int    `json:"endAngle"`
	Step        int    `json:"step"`
	Gains       string `json:"gains"`
}

// FromCurve serializes a resampled curve
func FromCurve(c antenna.Curve) Pattern {
	return Pattern{
		StartAngle: c.StartAngle,
		EndAngle:   c.EndAngle,
		Step:       c.Step,
		Gains:      c.GainsString(),
	}
}

// Values parses the ';' separated gains
func (p Pattern) Values() (vlib.VectorF, error) {
	if strings.TrimSpace(p.Gains) == "" {
		return nil, fmt.Errorf("pap: no gains")
	}
	fields := strings.Split(p.Gains, ";")
	values := vlib.NewVectorF(len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("pap: gain %d: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}

// Angles lists the angle of every gain, StartAngle to EndAngle included
func (p Pattern) Angles() []float64 {
	if p.Step <= 0 {
		return nil
	}
	var angles []float64
	for a := p.StartAngle; a <= p.EndAngle; a += p.Step {
		angles = append(angles, float64(a))
	}
	return angles
}

// BoresightDeg estimates the boresight as the mean angle of the gains above
// minGainDb, weighted by their linear power.
func (p Pattern) BoresightDeg(minGainDb float64) (int, error) {
	gains, err := p.Values()
	if err != nil {
		return 0, err
	}
	angles := p.Angles()
	if len(angles) != len(gains) {
		return 0, fmt.Errorf("pap: %d gains for %d angles in [%d, %d] step %d",
			len(gains), len(angles), p.StartAngle, p.EndAngle, p.Step)
	}

	weights := make([]float64, len(gains))
	for i, g := range gains {
		if g >= minGainDb {
			weights[i] = vlib.InvDb(g)
		}
	}
	denom := floats.Sum(weights)
	if denom == 0 {
		return 0, fmt.Errorf("pap: no gain above %v dB", minGainDb)
	}
	return int(floats.Dot(weights, angles) / denom), nil
}
