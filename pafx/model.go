// Package pafx packages analyzed patterns into a PAFX antenna model: a zip
// archive holding one PAP file per pattern and the antenna.paf AntennaModel
// document grouping them by scenario, virtual port and band.
package pafx

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	ms "github.com/mitchellh/mapstructure"
	"github.com/wiless/antmodel"
)

// CommentFingerprint prefixes the comment of every generated model
const CommentFingerprint = "[antmodel pafx]"

// ModelEntryName is the archive entry of the AntennaModel document
const ModelEntryName = "antenna.paf"

// Model holds the antenna wide fields of the AntennaModel document
type Model struct {
	// Archive file name, no archive is written when empty
	Filename       string  `json:"filename" mapstructure:"filename" yaml:"filename"`
	Version        string  `json:"version" mapstructure:"version" yaml:"version"`
	Name           string  `json:"name" mapstructure:"name" yaml:"name"`
	Type           string  `json:"type" mapstructure:"type" yaml:"type"`
	Comment        string  `json:"comment" mapstructure:"comment" yaml:"comment"`
	Manufacturer   string  `json:"manufacturer" mapstructure:"manufacturer" yaml:"manufacturer"`
	Cost           float64 `json:"cost" mapstructure:"cost" yaml:"cost"`
	CostUnit       string  `json:"costUnit" mapstructure:"cost_unit" yaml:"cost_unit"`
	LengthCm       float64 `json:"lengthCm" mapstructure:"length_cm" yaml:"length_cm"`
	WidthCm        float64 `json:"widthCm" mapstructure:"width_cm" yaml:"width_cm"`
	DepthCm        float64 `json:"depthCm" mapstructure:"depth_cm" yaml:"depth_cm"`
	WeightKg       float64 `json:"weightKg" mapstructure:"weight_kg" yaml:"weight_kg"`
	WindLoadFactor float64 `json:"windLoadFactor" mapstructure:"wind_load_factor" yaml:"wind_load_factor"`

	SupportsElectricalTilt      bool `json:"suppElecTilt" mapstructure:"supp_elec_tilt" yaml:"supp_elec_tilt"`
	SupportsElectricalAzimuth   bool `json:"suppElecAzimuth" mapstructure:"supp_elec_azimuth" yaml:"supp_elec_azimuth"`
	SupportsElectricalBeamwidth bool `json:"suppElecBeamwidth" mapstructure:"supp_elec_beamwidth" yaml:"supp_elec_beamwidth"`
	ContinuouslyAdjustableTilt  bool `json:"contAdjElecTilt" mapstructure:"cont_adj_elec_tilt" yaml:"cont_adj_elec_tilt"`

	ControllerName string `json:"controllerName" mapstructure:"controller_name" yaml:"controller_name"`
}

func (m *Model) SetDefault() {
	*m = Model{
		Version:                "7.4",
		Name:                   "Antenna",
		Type:                   "Cellular",
		CostUnit:               "USD",
		SupportsElectricalTilt: true,
		ControllerName:         "Controller 1",
	}
}

func NewModel() *Model {
	result := new(Model)
	result.SetDefault()
	return result
}

// Set overrides the fields present in the json string
func (m *Model) Set(str string) error {
	if err := json.Unmarshal([]byte(str), m); err != nil {
		return fmt.Errorf("decoding pafx model: %w", err)
	}
	return nil
}

// PatternType is the role of a pattern inside a virtual band
type PatternType int

const (
	UnknownPattern PatternType = iota
	Broadcast
	BeamformingElement
	BeamswitchingService
)

var PatternTypes = [...]string{
	"",
	"broadcast",
	"beamforming_element",
	"beamswitching_service",
}

func (p PatternType) String() string {
	if int(p) < 0 || int(p) >= len(PatternTypes) {
		return "Unknown-PatternType"
	}
	return PatternTypes[p]
}

func ParsePatternType(s string) (PatternType, error) {
	for i, name := range PatternTypes {
		if strings.EqualFold(s, name) {
			return PatternType(i), nil
		}
	}
	return UnknownPattern, fmt.Errorf("unknown pattern type %q", s)
}

// Tags are the categorical and numeric parameters of a pattern, decoded from
// the extracted parameters of a run
type Tags struct {
	Name        string `mapstructure:"name" yaml:"name"`
	Scenario    string `mapstructure:"scenario" yaml:"scenario,omitempty"`
	VPortName   string `mapstructure:"v_port_name" yaml:"vPortName,omitempty"`
	PatternType string `mapstructure:"pattern_type" yaml:"patternType,omitempty"`

	CenterFreq float64 `mapstructure:"center_freq" yaml:"centerFreq"`
	MinFreq    float64 `mapstructure:"min_freq" yaml:"minFreq"`
	MaxFreq    float64 `mapstructure:"max_freq" yaml:"maxFreq"`

	ElectricalTilt   int    `mapstructure:"electrical_tilt" yaml:"electricalTilt"`
	Polarization     string `mapstructure:"polarization" yaml:"polarization,omitempty"`
	PolarizationType string `mapstructure:"polarization_type" yaml:"polarizationType,omitempty"`

	VPortNumberOfPorts    int     `mapstructure:"v_port_number_of_ports" yaml:"vPortNumberOfPorts"`
	HorizNumberOfElements int     `mapstructure:"horiz_number_of_elements" yaml:"horizNumberOfElements"`
	HorizSepDistCm        float64 `mapstructure:"horiz_sep_dist_cm" yaml:"horizSepDistCm"`
	VertNumberOfElements  int     `mapstructure:"vert_number_of_elements" yaml:"vertNumberOfElements"`
	VertSepDistCm         float64 `mapstructure:"vert_sep_dist_cm" yaml:"vertSepDistCm"`

	BeamswitchingServiceName string  `mapstructure:"beamswitching_service_name" yaml:"beamswitchingServiceName,omitempty"`
	BeamswitchingHorizAngle  float64 `mapstructure:"beamswitching_horiz_angle" yaml:"beamswitchingHorizAngle"`
	BeamswitchingVertAngle   float64 `mapstructure:"beamswitching_vert_angle" yaml:"beamswitchingVertAngle"`
}

// Band is the virtual band key of the tags
func (t Tags) Band() string {
	return number(t.MinFreq) + "-" + number(t.MaxFreq)
}

// Pattern is one analyzed pattern of the model
type Pattern struct {
	Tags
	Type PatternType
	// Source path relative to the input folder
	SrcFile string
	// Archive entry of the PAP document
	EntryName string
	Data      *antmodel.PatternData

	// Scenarios and virtual ports the pattern is also attached to
	SelectedScenarios  []string
	SelectedVPortNames []string
}

// EntryName maps a source file to its PAP archive entry
func EntryName(src string) string {
	base := filepath.Base(filepath.FromSlash(src))
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".pap"
}

// NewPattern decodes the extracted parameters of an analyzed pattern. The name
// defaults to the NAME header of the pattern.
func NewPattern(src string, d *antmodel.PatternData, params map[string]interface{}) (*Pattern, error) {
	if d == nil {
		return nil, fmt.Errorf("pafx: %s has no pattern data", src)
	}
	p := &Pattern{SrcFile: src, EntryName: EntryName(src), Data: d}
	decoder, err := ms.NewDecoder(&ms.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &p.Tags,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(params); err != nil {
		return nil, fmt.Errorf("pafx: %s tags: %w", src, err)
	}
	if p.Name == "" {
		p.Name = d.Header.Name
	}
	if p.Type, err = ParsePatternType(p.PatternType); err != nil {
		return nil, fmt.Errorf("pafx: %s: %w", src, err)
	}
	return p, nil
}
