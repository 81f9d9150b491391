package antenna

import (
	"math"
	"strconv"
	"strings"

	"github.com/wiless/vlib"
)

// Curve is a full revolution of gains phase referenced to -180 degrees
type Curve struct {
	StartAngle int          `json:"startAngle"`
	EndAngle   int          `json:"endAngle"`
	Step       int          `json:"step"`
	Gains      vlib.VectorF `json:"gains"`
}

// ResampleCurve rotates the gains by half a revolution so that index 0 is the
// sample at 180 degrees, i.e. the curve starts at -180.
func ResampleCurve(samples []Sample) (Curve, error) {
	if err := validate(samples); err != nil {
		return Curve{}, err
	}

	gains := Gains(samples)
	n := len(gains)
	r := ring{n: n}
	shift := int(math.RoundToEven(float64(n) / 2))

	rotated := vlib.NewVectorF(n)
	for j := range rotated {
		rotated[j] = gains[r.at(j-shift)]
	}

	step := Step(n)
	return Curve{
		StartAngle: -180,
		EndAngle:   int(math.RoundToEven(180 - step)),
		Step:       int(math.RoundToEven(step)),
		Gains:      rotated,
	}, nil
}

// Len returns the number of gains of the curve
func (c Curve) Len() int {
	return len(c.Gains)
}

// GainsString joins the gains with ';' in the shortest form that reads back
// exactly, whole values keep a ".0" fraction: -3.0;-0.5;1e-05
func (c Curve) GainsString() string {
	values := make([]string, len(c.Gains))
	for i, g := range c.Gains {
		values[i] = FormatGain(g)
	}
	return strings.Join(values, ";")
}

// FormatGain formats g in fixed notation for decimal exponents in [-4, 16),
// in exponent notation otherwise
func FormatGain(g float64) string {
	s := strconv.FormatFloat(g, 'e', -1, 64)
	exp, err := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return s
	}
	s = strconv.FormatFloat(g, 'f', -1, 64)
	if !strings.ContainsAny(s, ".nN") {
		s += ".0"
	}
	return s
}
