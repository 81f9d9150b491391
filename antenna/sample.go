package antenna

import (
	"fmt"
	"math"

	"github.com/wiless/vlib"
)

// Sample is one measured point of a cut-plane: attenuation LossDb at AngleDeg
type Sample struct {
	AngleDeg float64 `json:"angle"`
	LossDb   float64 `json:"loss"`
}

// SamplesFromGains builds a uniformly spaced revolution (angle 0 first) from gains in dB
func SamplesFromGains(gains []float64) []Sample {
	samples := make([]Sample, len(gains))
	step := 360.0 / float64(len(gains))
	for i, g := range gains {
		samples[i] = Sample{AngleDeg: step * float64(i), LossDb: -g}
	}
	return samples
}

// Gains converts the stored losses into gains (dB)
func Gains(samples []Sample) vlib.VectorF {
	gains := vlib.NewVectorF(len(samples))
	for i, s := range samples {
		gains[i] = -s.LossDb
	}
	return gains
}

// Step returns the angular resolution of a revolution of n samples
func Step(n int) float64 {
	return 360.0 / float64(n)
}

// validate checks the samples describe a single revolution with increasing angles
func validate(samples []Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("%w: no samples", ErrMalformedPattern)
	}
	for i, s := range samples {
		if math.IsNaN(s.LossDb) || math.IsInf(s.LossDb, 0) {
			return fmt.Errorf("%w: sample %d has invalid loss %v", ErrMalformedPattern, i, s.LossDb)
		}
		if math.IsNaN(s.AngleDeg) || math.IsInf(s.AngleDeg, 0) {
			return fmt.Errorf("%w: sample %d has invalid angle %v", ErrMalformedPattern, i, s.AngleDeg)
		}
		if i > 0 && s.AngleDeg <= samples[i-1].AngleDeg {
			return fmt.Errorf("%w: angle %v at sample %d does not increase", ErrMalformedPattern, s.AngleDeg, i)
		}
	}
	if span := samples[len(samples)-1].AngleDeg - samples[0].AngleDeg; span >= 360 {
		return fmt.Errorf("%w: samples span %v degrees, more than one revolution", ErrMalformedPattern, span)
	}
	return nil
}
