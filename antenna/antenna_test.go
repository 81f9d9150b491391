package antenna_test

import (
	"errors"
	"math"
	"testing"

	"github.com/wiless/antmodel/antenna"
	"github.com/wiless/antmodel/geom"
)

// cosineCut is a single 20log10(cos) lobe pointing at boresight, floored at -60 dB
func cosineCut(n int, boresight float64) []antenna.Sample {
	gains := make([]float64, n)
	step := 360.0 / float64(n)
	for i := range gains {
		x := antenna.Wrap180To180(step*float64(i) - boresight)
		gains[i] = 20 * math.Log10(math.Max(math.Cos(x*math.Pi/180), 1e-3))
	}
	return antenna.SamplesFromGains(gains)
}

// maxCut combines several element patterns of the given 3dB width
func maxCut(n int, theta3dB float64, boresights ...float64) []antenna.Sample {
	gains := make([]float64, n)
	step := 360.0 / float64(n)
	for i := range gains {
		gains[i] = math.Inf(-1)
		for _, b := range boresights {
			gains[i] = math.Max(gains[i], antenna.ElementPatternDb(step*float64(i)-b, theta3dB, 30))
		}
	}
	return antenna.SamplesFromGains(gains)
}

func TestMinBeamwidth(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 0, 360},
		{123.5, 123.5, 360},
		{0, 360, 360},
		{0, 180, 180},
		{10, 350, 20},
		{350, 10, 20},
		{-10, 10, 20},
		{30, 100, 70},
	}
	for _, tt := range tests {
		if got := antenna.MinBeamwidth(tt.a, tt.b); got != tt.want {
			t.Errorf("MinBeamwidth(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	wrap360 := map[float64]float64{0: 0, 360: 0, -90: 270, 725: 5}
	for in, want := range wrap360 {
		if got := antenna.Wrap0To360(in); got != want {
			t.Errorf("Wrap0To360(%v) = %v, want %v", in, got, want)
		}
	}
	wrap180 := map[float64]float64{190: -170, 370: 10, -190: 170, 180: -180, 45: 45}
	for in, want := range wrap180 {
		if got := antenna.Wrap180To180(in); got != want {
			t.Errorf("Wrap180To180(%v) = %v, want %v", in, got, want)
		}
	}
	if got := antenna.Wrap0To180(-135); got != 135 {
		t.Errorf("Wrap0To180(-135) = %v, want 135", got)
	}
}

func TestAnalyzeCosineLobe(t *testing.T) {
	cut, err := antenna.Analyze(cosineCut(360, 45), *antenna.NewThresholds())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(cut.Lobes.Lobes) != 1 {
		t.Fatalf("expected a single lobe, got %d", len(cut.Lobes.Lobes))
	}
	lobe := cut.Lobes.Lobes[0]
	if lobe.Key() != (antenna.LobeKey{Start: 7, End: 83}) {
		t.Errorf("lobe key = %v, want {7 83}", lobe.Key())
	}
	if lobe.CenterDeg != 45 || lobe.LobeWidthDeg != 76 {
		t.Errorf("lobe center/width = %v/%v, want 45/76", lobe.CenterDeg, lobe.LobeWidthDeg)
	}

	p := cut.Params
	if p.Omni {
		t.Fatalf("cosine lobe reported omnidirectional")
	}
	if p.BoresightDeg != 45 {
		t.Errorf("boresight = %d, want 45", p.BoresightDeg)
	}
	// analytic half power width of a cos field pattern is 90 degrees
	if math.Abs(float64(p.BeamwidthDeg)-90) > 1 {
		t.Errorf("beamwidth = %d, want 90±1", p.BeamwidthDeg)
	}
	if p.FrontToBackRatioDb != 60 {
		t.Errorf("front to back = %v, want 60", p.FrontToBackRatioDb)
	}
	if p.GlobalMaxGainDb != 0 {
		t.Errorf("global max = %v, want 0", p.GlobalMaxGainDb)
	}
}

func TestAnalyzeElementPattern(t *testing.T) {
	tests := []struct {
		n         int
		boresight float64
		wantBore  int
		wantBw    int
		wantLobe  antenna.LobeKey
	}{
		{360, 100, 100, 66, antenna.LobeKey{Start: 73, End: 127}},
		{360, 350, 350, 66, antenna.LobeKey{Start: 323, End: 17}},
		{72, 100, 100, 70, antenna.LobeKey{Start: 14, End: 26}},
	}

	for _, tt := range tests {
		cut, err := antenna.Analyze(antenna.ElementCut(tt.n, tt.boresight, 65, 30), *antenna.NewThresholds())
		if err != nil {
			t.Fatalf("n=%d boresight=%v: %v", tt.n, tt.boresight, err)
		}
		if got := cut.Lobes.Lobes[0].Key(); got != tt.wantLobe {
			t.Errorf("n=%d boresight=%v: lobe %v, want %v", tt.n, tt.boresight, got, tt.wantLobe)
		}
		p := cut.Params
		if p.BoresightDeg != tt.wantBore || p.BeamwidthDeg != tt.wantBw || p.FrontToBackRatioDb != 30 {
			t.Errorf("n=%d boresight=%v: got %+v, want boresight %d beamwidth %d F/B 30",
				tt.n, tt.boresight, p, tt.wantBore, tt.wantBw)
		}
	}
}

func TestAnalyzeFlatPattern(t *testing.T) {
	gains := make([]float64, 360)
	for i := range gains {
		gains[i] = -3
	}
	samples := antenna.SamplesFromGains(gains)
	th := *antenna.NewThresholds()

	lobes, err := antenna.ExtractLobes(samples, th)
	if err != nil {
		t.Fatalf("ExtractLobes: %v", err)
	}
	if len(lobes.Lobes) != 1 {
		t.Fatalf("flat pattern should resolve to a single full circle lobe, got %d", len(lobes.Lobes))
	}
	if !geom.SameHalfPlane(lobes.Versors()) {
		t.Errorf("single versor must be in its own half plane")
	}
	if lobes.Lobes[0].BeamwidthDeg != 360 {
		t.Errorf("full circle beamwidth = %v, want 360", lobes.Lobes[0].BeamwidthDeg)
	}

	p, err := antenna.SynthesizeParams(samples, lobes, th)
	if err != nil {
		t.Fatalf("SynthesizeParams: %v", err)
	}
	want := antenna.Params{BoresightDeg: 0, BeamwidthDeg: 360, GlobalMaxGainDb: -3, Omni: true}
	if p != want {
		t.Errorf("got %+v, want %+v", p, want)
	}
}

func TestAnalyzeShallowPattern(t *testing.T) {
	// never falls below the lobe edge, but only 0..10 are max candidates
	gains := make([]float64, 360)
	for i := range gains {
		if i > 10 {
			gains[i] = -1.5
		}
	}
	cut, err := antenna.Analyze(antenna.SamplesFromGains(gains), *antenna.NewThresholds())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(cut.Lobes.Lobes) != 11 {
		t.Fatalf("expected one degenerate lobe per candidate, got %d", len(cut.Lobes.Lobes))
	}
	for i, l := range cut.Lobes.Lobes {
		if l.Key() != (antenna.LobeKey{Start: i, End: i}) {
			t.Errorf("lobe %d key = %v", i, l.Key())
		}
	}
	want := antenna.Params{BoresightDeg: 5, BeamwidthDeg: 10, GlobalMaxGainDb: 0, FrontToBackRatioDb: 2}
	if cut.Params != want {
		t.Errorf("got %+v, want %+v", cut.Params, want)
	}
}

func TestAnalyzeOmniFallbacks(t *testing.T) {
	tests := []struct {
		name       string
		boresights []float64
		lobes      int
	}{
		{"near antipodal pair", []float64{0, 179}, 2},
		{"cancelling triple", []float64{0, 120, 240}, 3},
	}

	for _, tt := range tests {
		cut, err := antenna.Analyze(maxCut(360, 20, tt.boresights...), *antenna.NewThresholds())
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if len(cut.Lobes.Lobes) != tt.lobes {
			t.Errorf("%s: %d lobes, want %d", tt.name, len(cut.Lobes.Lobes), tt.lobes)
		}
		p := cut.Params
		if !p.Omni || p.BoresightDeg != 0 || p.BeamwidthDeg != 360 || p.FrontToBackRatioDb != 0 {
			t.Errorf("%s: expected omnidirectional fallback, got %+v", tt.name, p)
		}
	}
}

func TestAnalyzeTwoLobesSameHalfPlane(t *testing.T) {
	cut, err := antenna.Analyze(maxCut(360, 20, 30, 70), *antenna.NewThresholds())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(cut.Lobes.Lobes) != 2 {
		t.Fatalf("expected two lobes, got %d", len(cut.Lobes.Lobes))
	}
	p := cut.Params
	if p.Omni || p.BoresightDeg != 50 || p.BeamwidthDeg != 60 || p.FrontToBackRatioDb != 18 {
		t.Errorf("got %+v, want boresight 50 beamwidth 60 F/B 18", p)
	}
}

func TestResampleCurve(t *testing.T) {
	gains := make([]float64, 360)
	for i := range gains {
		gains[i] = -float64(i) / 10
	}
	samples := antenna.SamplesFromGains(gains)

	curve, err := antenna.ResampleCurve(samples)
	if err != nil {
		t.Fatalf("ResampleCurve: %v", err)
	}
	if curve.Len() != len(samples) {
		t.Fatalf("curve has %d gains, want %d", curve.Len(), len(samples))
	}
	if curve.StartAngle != -180 || curve.EndAngle != 179 || curve.Step != 1 {
		t.Errorf("window = [%d, %d] step %d, want [-180, 179] step 1", curve.StartAngle, curve.EndAngle, curve.Step)
	}
	// index 0 is the original sample at 180 degrees
	if curve.Gains[0] != gains[180] {
		t.Errorf("curve[0] = %v, want gain at 180 = %v", curve.Gains[0], gains[180])
	}
	if curve.Gains[180] != gains[0] || curve.Gains[359] != gains[179] {
		t.Errorf("rotation mismatch: curve[180]=%v curve[359]=%v", curve.Gains[180], curve.Gains[359])
	}
}

func TestResampleCurveCoarse(t *testing.T) {
	curve, err := antenna.ResampleCurve(antenna.SamplesFromGains([]float64{0, -1, -2, -3, -4, -5, -6, -7}))
	if err != nil {
		t.Fatalf("ResampleCurve: %v", err)
	}
	if curve.Step != 45 || curve.EndAngle != 135 {
		t.Errorf("step/end = %d/%d, want 45/135", curve.Step, curve.EndAngle)
	}
	if got, want := curve.GainsString(), "-4.0;-5.0;-6.0;-7.0;0.0;-1.0;-2.0;-3.0"; got != want {
		t.Errorf("GainsString() = %q, want %q", got, want)
	}
}

func TestGainsString(t *testing.T) {
	curve := antenna.Curve{Gains: []float64{math.Copysign(0, -1), -3.5, 2, -0.25}}
	if got, want := curve.GainsString(), "-0.0;-3.5;2.0;-0.25"; got != want {
		t.Errorf("GainsString() = %q, want %q", got, want)
	}

	tests := map[float64]string{
		1e-05:           "1e-05",
		0.0001:          "0.0001",
		1.5e16:          "1.5e+16",
		123456789012345: "123456789012345.0",
		-12.75:          "-12.75",
	}
	for g, want := range tests {
		if got := antenna.FormatGain(g); got != want {
			t.Errorf("FormatGain(%v) = %q, want %q", g, got, want)
		}
	}
}

func TestMalformedPattern(t *testing.T) {
	th := *antenna.NewThresholds()
	tests := map[string][]antenna.Sample{
		"empty":          nil,
		"nan loss":       {{AngleDeg: 0, LossDb: math.NaN()}, {AngleDeg: 180, LossDb: 1}},
		"infinite angle": {{AngleDeg: 0, LossDb: 0}, {AngleDeg: math.Inf(1), LossDb: 1}},
		"not increasing": {{AngleDeg: 0, LossDb: 0}, {AngleDeg: 90, LossDb: 1}, {AngleDeg: 90, LossDb: 2}},
		"two turns":      {{AngleDeg: 0, LossDb: 0}, {AngleDeg: 180, LossDb: 1}, {AngleDeg: 360, LossDb: 2}},
	}
	for name, samples := range tests {
		if _, err := antenna.Analyze(samples, th); !errors.Is(err, antenna.ErrMalformedPattern) {
			t.Errorf("%s: expected ErrMalformedPattern, got %v", name, err)
		}
	}

	if _, err := antenna.SynthesizeParams(antenna.ElementCut(360, 0, 65, 30), antenna.LobeSet{}, th); !errors.Is(err, antenna.ErrMalformedPattern) {
		t.Errorf("empty lobe set: expected ErrMalformedPattern, got %v", err)
	}
}

func TestAmbiguousBoresight(t *testing.T) {
	// angles run -180..179 instead of 0..359, index 100 no longer sits at 100 degrees
	samples := antenna.ElementCut(360, 100, 65, 30)
	for i := range samples {
		samples[i].AngleDeg -= 180
	}
	if _, err := antenna.Analyze(samples, *antenna.NewThresholds()); !errors.Is(err, antenna.ErrAmbiguousBoresight) {
		t.Errorf("expected ErrAmbiguousBoresight, got %v", err)
	}
}

func TestThresholds(t *testing.T) {
	th := antenna.NewThresholds()
	if th.MaxGainToleranceDb != 1 || th.LobeGainFallDb != 2 || th.BeamwidthGainFallDb != 3 || th.HalfPlaneEpsilon != geom.ZeroThreshold {
		t.Fatalf("unexpected defaults %+v", th)
	}

	if err := th.Set(`{"beamwidthGainFallDb": 10}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if th.BeamwidthGainFallDb != 10 || th.LobeGainFallDb != 2 {
		t.Errorf("Set should only override present fields, got %+v", th)
	}
	if err := th.Set(`{"lobeGainFallDb": -1}`); err == nil {
		t.Errorf("negative threshold accepted")
	}
	if err := th.Set(`{`); err == nil {
		t.Errorf("broken json accepted")
	}

	// a 10 dB beamwidth widens the element pattern measure: 12(x/65)^2 <= 10 up to 59 degrees off
	th.SetDefault()
	th.BeamwidthGainFallDb = 10
	cut, err := antenna.Analyze(antenna.ElementCut(360, 180, 65, 30), *th)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if cut.Params.BeamwidthDeg != 120 || cut.Params.BoresightDeg != 180 {
		t.Errorf("10 dB beamwidth: got %+v, want boresight 180 beamwidth 120", cut.Params)
	}
}
