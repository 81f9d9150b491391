package antenna

import (
	"math"
)

// Wrap0To360 wraps the input angle to [0, 360)
func Wrap0To360(degree float64) float64 {
	degree = math.Mod(degree, 360)
	if degree < 0 {
		degree += 360
	}
	return degree
}

// Wrap0To180 wraps the input angle to its absolute offset from 0, in [0, 180]
func Wrap0To180(degree float64) float64 {
	degree = Wrap0To360(degree)
	if degree > 180 {
		degree = 360 - degree
	}
	return degree
}

// Wrap180To180 wraps the input angle to [-180, 180)
func Wrap180To180(degree float64) float64 {
	degree = Wrap0To360(degree + 180)
	return degree - 180
}

// MinBeamwidth returns the shorter of the two arcs between ang1 and ang2.
// Coinciding angles span the full circle (360), not 0.
func MinBeamwidth(ang1, ang2 float64) float64 {
	d12 := math.Abs(Wrap0To360(ang2) - Wrap0To360(ang1))
	if d12 == 0 {
		return 360
	}
	if d12 < 180 {
		return d12
	}
	return 360 - d12
}

// ccwSpan returns the arc swept going counter-clockwise from ang1 to ang2, in [0, 360)
func ccwSpan(ang1, ang2 float64) float64 {
	return Wrap0To360(ang2 - ang1)
}

// ElementPatternDb generates the relative gain of an antenna element at theta
// degrees away from its boresight, as in TR 37.840 / Report ITU-R M.2412:
// -min(12 (theta/theta3dB)^2, SLA)
func ElementPatternDb(theta, theta3dB, slaDb float64) float64 {
	theta = Wrap180To180(theta)
	return -math.Min(12.0*math.Pow(theta/theta3dB, 2.0), slaDb)
}

// ElementCut samples the element pattern pointing at boresight over a full
// revolution of n uniformly spaced angles starting at 0, as loss samples.
func ElementCut(n int, boresight, theta3dB, slaDb float64) []Sample {
	gains := make([]float64, n)
	step := 360.0 / float64(n)
	for i := range gains {
		gains[i] = ElementPatternDb(step*float64(i)-boresight, theta3dB, slaDb)
	}
	return SamplesFromGains(gains)
}
