package pafx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/antmodel/antenna"
)

const (
	xsdNamespace = "http://www.w3.org/2001/XMLSchema"
	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"
)

// Number is a float written the way the PAP gains are
type Number float64

func number(v float64) string {
	return antenna.FormatGain(v)
}

func (n Number) MarshalText() ([]byte, error) {
	return []byte(number(float64(n))), nil
}

func (n *Number) UnmarshalText(text []byte) error {
	v, err := strconv.ParseFloat(string(text), 64)
	if err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

type nilValue struct {
	Nil string `xml:"xsi:nil,attr,omitempty"`
}

// Document is the AntennaModel xml root of the antenna.paf entry
type Document struct {
	XMLName        xml.Name `xml:"AntennaModel"`
	XSD            string   `xml:"xmlns:xsd,attr,omitempty"`
	XSI            string   `xml:"xmlns:xsi,attr,omitempty"`
	Version        string   `xml:"Version"`
	Name           string   `xml:"Name"`
	Type           string   `xml:"Type"`
	Comment        string   `xml:"Comment"`
	Manufacturer   string   `xml:"Manufacturer"`
	Cost           Number   `xml:"Cost"`
	CostUnit       string   `xml:"CostUnit"`
	LengthCm       Number   `xml:"LengthCm"`
	WidthCm        Number   `xml:"WidthCm"`
	DepthCm        Number   `xml:"DepthCm"`
	WeightKg       Number   `xml:"WeightKg"`
	WindLoadFactor Number   `xml:"WindLoadFactor"`
	QFactorDB      nilValue `xml:"QFactorDB"`
	UserData2      string   `xml:"UserData2"`
	Ports          struct{} `xml:"Ports"`

	Controllers []Controller    `xml:"ElectricalControllers>ElectricalController"`
	Patterns    []PatternEntry  `xml:"Patterns>Pattern"`
	Beamforming []Configuration `xml:"Beamforming>BeamformingConfiguration"`
}

type Controller struct {
	Uid                   int    `xml:"Uid"`
	Name                  string `xml:"Name"`
	SupportsRemoteControl bool   `xml:"SupportsRemoteControl"`
}

// PatternEntry describes one pattern and names its PAP entry
type PatternEntry struct {
	Name                       string  `xml:"Name"`
	Comment                    string  `xml:"Comment"`
	MinimumFrequencyMHz        Number  `xml:"MinimumFrequencyMHz"`
	MaximumFrequencyMHz        Number  `xml:"MaximumFrequencyMHz"`
	MeasurementFrequencyMHz    Number  `xml:"MeasurementFrequencyMHz"`
	Polarization               string  `xml:"Polarization"`
	PolarizationType           *string `xml:"PolarizationType"`
	ElectricalTiltDegrees      int     `xml:"ElectricalTiltDegrees"`
	ElectricalAzimuthDegrees   int     `xml:"ElectricalAzimuthDegrees"`
	ElectricalBeamwidthDegrees int     `xml:"ElectricalBeamwidthDegrees"`
	BoresightGain              Number  `xml:"BoresightGain"`
	BoresightGainUnit          string  `xml:"BoresightGainUnit"`
	HorizontalBeamwidthDegrees int     `xml:"HorizontalBeamwidthDegrees"`
	VerticalBeamwidthDegrees   int     `xml:"VerticalBeamwidthDegrees"`
	HorizontalBoresightDegrees int     `xml:"HorizontalBoresightDegrees"`
	VerticalBoresightDegrees   int     `xml:"VerticalBoresightDegrees"`
	FrontToBackRatioDB         Number  `xml:"FrontToBackRatioDB"`
	AntennaPatternsEntryName   string  `xml:"AntennaPatternsEntryName"`
}

// Configuration is the beamforming configuration of one scenario
type Configuration struct {
	Uid                            int          `xml:"Uid"`
	Name                           string       `xml:"Name"`
	HorizontalNumberOfElements     int          `xml:"HorizontalNumberOfElements"`
	HorizontalSeparationDistanceCm Number       `xml:"HorizontalSeparationDistanceCm"`
	VerticalNumberOfElements       int          `xml:"VerticalNumberOfElements"`
	VerticalSeparationDistanceCm   Number       `xml:"VerticalSeparationDistanceCm"`
	VirtualPorts                   virtualPorts `xml:"VirtualPorts"`
	IsBeamswitching                bool         `xml:"IsBeamswitching"`
}

type virtualPorts struct {
	Ports []*VirtualPort `xml:"VirtualPort"`
}

type VirtualPort struct {
	Uid              int          `xml:"Uid"`
	Name             string       `xml:"Name"`
	NumberOfPorts    int          `xml:"NumberOfPorts"`
	Polarization     string       `xml:"Polarization"`
	PolarizationType *string      `xml:"PolarizationType"`
	VirtualBands     virtualBands `xml:"VirtualBands"`
}

type virtualBands struct {
	Bands []*VirtualBand `xml:"VirtualBand"`
}

type VirtualBand struct {
	MinimumFrequencyMHz                  Number            `xml:"MinimumFrequencyMHz"`
	MaximumFrequencyMHz                  Number            `xml:"MaximumFrequencyMHz"`
	SupportsElectricalTilt               bool              `xml:"SupportsElectricalTilt"`
	SupportsElectricalAzimuth            bool              `xml:"SupportsElectricalAzimuth"`
	SupportsElectricalBeamwidth          bool              `xml:"SupportsElectricalBeamwidth"`
	ContinuouslyAdjustableElectricalTilt bool              `xml:"ContinuouslyAdjustableElectricalTilt"`
	Broadcast                            broadcastPatterns `xml:"AttachedBroadcastPatterns"`
	ElectricalControllerName             string            `xml:"ElectricalControllerName"`
	UseElectricalParameters              bool              `xml:"UseElectricalParametersForBeamswitchingServicePatterns"`
	Elements                             elementPatterns   `xml:"AttachedBeamformingElementPatterns"`
	Services                             servicePatterns   `xml:"AttachedBeamswitchingServicePatterns"`
}

type broadcastPatterns struct {
	Names []string `xml:"PatternName"`
}

type elementPatterns struct {
	Names []string `xml:"string"`
}

type servicePatterns struct {
	Services []*ServicePattern `xml:"BeamswitchingServicePattern"`
}

type ServicePattern struct {
	ServicePatternName string              `xml:"ServicePatternName"`
	Beams              []BeamswitchPattern `xml:"ServicePatterns>BeamswitchingPattern"`
}

type BeamswitchPattern struct {
	BeamID          int    `xml:"BeamID"`
	HorizontalAngle Number `xml:"HorizontalAngle"`
	VerticalAngle   Number `xml:"VerticalAngle"`
	PatternName     string `xml:"BeamswitchingPatternName"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// uidGen hands out the uids of one document, starting at 1
type uidGen int

func (g *uidGen) next() int {
	*g++
	return int(*g)
}

// builder keeps the scenario > virtual port > band groups in insertion order
type builder struct {
	model   *Model
	uids    uidGen
	configs []*Configuration
	index   map[string]*Configuration
	ports   map[string]map[string]*VirtualPort
	bands   map[string]map[string]map[string]*VirtualBand
}

func (b *builder) group(p *Pattern) *VirtualBand {
	c, ok := b.index[p.Scenario]
	if !ok {
		c = &Configuration{
			Uid:                            b.uids.next(),
			Name:                           p.Scenario,
			HorizontalNumberOfElements:     p.HorizNumberOfElements,
			HorizontalSeparationDistanceCm: Number(p.HorizSepDistCm),
			VerticalNumberOfElements:       p.VertNumberOfElements,
			VerticalSeparationDistanceCm:   Number(p.VertSepDistCm),
			IsBeamswitching:                true,
		}
		b.configs = append(b.configs, c)
		b.index[p.Scenario] = c
		b.ports[p.Scenario] = make(map[string]*VirtualPort)
		b.bands[p.Scenario] = make(map[string]map[string]*VirtualBand)
	}
	vp, ok := b.ports[p.Scenario][p.VPortName]
	if !ok {
		vp = &VirtualPort{
			Uid:              b.uids.next(),
			Name:             p.VPortName,
			NumberOfPorts:    p.VPortNumberOfPorts,
			Polarization:     p.Polarization,
			PolarizationType: optional(p.PolarizationType),
		}
		c.VirtualPorts.Ports = append(c.VirtualPorts.Ports, vp)
		b.ports[p.Scenario][p.VPortName] = vp
		b.bands[p.Scenario][p.VPortName] = make(map[string]*VirtualBand)
	}
	vb, ok := b.bands[p.Scenario][p.VPortName][p.Band()]
	if !ok {
		vb = &VirtualBand{
			MinimumFrequencyMHz:                  Number(p.MinFreq),
			MaximumFrequencyMHz:                  Number(p.MaxFreq),
			SupportsElectricalTilt:               b.model.SupportsElectricalTilt,
			SupportsElectricalAzimuth:            b.model.SupportsElectricalAzimuth,
			SupportsElectricalBeamwidth:          b.model.SupportsElectricalBeamwidth,
			ContinuouslyAdjustableElectricalTilt: b.model.ContinuouslyAdjustableTilt,
			ElectricalControllerName:             b.model.ControllerName,
			UseElectricalParameters:              true,
		}
		vp.VirtualBands.Bands = append(vp.VirtualBands.Bands, vb)
		b.bands[p.Scenario][p.VPortName][p.Band()] = vb
	}
	return vb
}

// attach adds p to the band, a pattern name is attached once per band
func attach(vb *VirtualBand, p *Pattern) {
	switch p.Type {
	case Broadcast:
		if !contains(vb.Broadcast.Names, p.Name) {
			vb.Broadcast.Names = append(vb.Broadcast.Names, p.Name)
		}
	case BeamformingElement:
		if !contains(vb.Elements.Names, p.Name) {
			vb.Elements.Names = append(vb.Elements.Names, p.Name)
		}
	case BeamswitchingService:
		var service *ServicePattern
		for _, s := range vb.Services.Services {
			if s.ServicePatternName == p.BeamswitchingServiceName {
				service = s
			}
		}
		if service == nil {
			service = &ServicePattern{ServicePatternName: p.BeamswitchingServiceName}
			vb.Services.Services = append(vb.Services.Services, service)
		}
		for _, beam := range service.Beams {
			if beam.PatternName == p.Name {
				return
			}
		}
		service.Beams = append(service.Beams, BeamswitchPattern{
			BeamID:          len(service.Beams) + 1,
			HorizontalAngle: Number(p.BeamswitchingHorizAngle),
			VerticalAngle:   Number(p.BeamswitchingVertAngle),
			PatternName:     p.Name,
		})
	default:
		log.Warnf("pafx: %s has no pattern type, not attached to %s", p.SrcFile, p.Band())
	}
}

// Build assembles the AntennaModel document of patterns. Patterns are grouped
// by their extracted scenario and virtual port, then attached to the groups of
// their selected scenarios and virtual ports.
func Build(m *Model, patterns []*Pattern) *Document {
	b := &builder{
		model: m,
		index: make(map[string]*Configuration),
		ports: make(map[string]map[string]*VirtualPort),
		bands: make(map[string]map[string]map[string]*VirtualBand),
	}
	d := &Document{
		XSD:            xsdNamespace,
		XSI:            xsiNamespace,
		Version:        m.Version,
		Name:           m.Name,
		Type:           m.Type,
		Comment:        CommentFingerprint + " - " + m.Comment,
		Manufacturer:   m.Manufacturer,
		Cost:           Number(m.Cost),
		CostUnit:       m.CostUnit,
		LengthCm:       Number(m.LengthCm),
		WidthCm:        Number(m.WidthCm),
		DepthCm:        Number(m.DepthCm),
		WeightKg:       Number(m.WeightKg),
		WindLoadFactor: Number(m.WindLoadFactor),
		QFactorDB:      nilValue{Nil: "true"},
		UserData2:      m.Name,
	}
	d.Controllers = []Controller{{Uid: b.uids.next(), Name: m.ControllerName, SupportsRemoteControl: true}}

	for _, p := range patterns {
		d.Patterns = append(d.Patterns, PatternEntry{
			Name:                       p.Name,
			MinimumFrequencyMHz:        Number(p.MinFreq),
			MaximumFrequencyMHz:        Number(p.MaxFreq),
			MeasurementFrequencyMHz:    Number(p.CenterFreq),
			Polarization:               p.Polarization,
			PolarizationType:           optional(p.PolarizationType),
			ElectricalTiltDegrees:      p.ElectricalTilt,
			BoresightGain:              Number(p.Data.BoresightGain),
			BoresightGainUnit:          p.Data.BoresightGainUnit,
			HorizontalBeamwidthDegrees: p.Data.HBeamwidthDeg,
			VerticalBeamwidthDegrees:   p.Data.VBeamwidthDeg,
			HorizontalBoresightDegrees: p.Data.HBoresightDeg,
			VerticalBoresightDegrees:   p.Data.VBoresightDeg,
			FrontToBackRatioDB:         Number(p.Data.FrontToBackRatioDb),
			AntennaPatternsEntryName:   p.EntryName,
		})
	}

	for _, p := range patterns {
		if p.Scenario == "" || p.VPortName == "" {
			if len(p.SelectedScenarios) == 0 && len(p.SelectedVPortNames) == 0 {
				log.Warnf("pafx: %s has no scenario or virtual port", p.SrcFile)
			}
			continue
		}
		attach(b.group(p), p)
	}

	for _, p := range patterns {
		if len(p.SelectedScenarios) == 0 && len(p.SelectedVPortNames) == 0 {
			continue
		}
		scenarios, ports := p.SelectedScenarios, p.SelectedVPortNames
		if p.Scenario != "" {
			scenarios = append(scenarios[:len(scenarios):len(scenarios)], p.Scenario)
		}
		if p.VPortName != "" {
			ports = append(ports[:len(ports):len(ports)], p.VPortName)
		}
		for _, scenario := range scenarios {
			for _, port := range ports {
				vb, ok := b.bands[scenario][port][p.Band()]
				if !ok {
					continue
				}
				attach(vb, p)
			}
		}
	}

	for _, c := range b.configs {
		d.Beamforming = append(d.Beamforming, *c)
	}
	return d
}

// Encode writes the document as indented utf-8 xml
func (d *Document) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("pafx: encoding: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func Decode(r io.Reader) (*Document, error) {
	d := new(Document)
	if err := xml.NewDecoder(r).Decode(d); err != nil {
		return nil, fmt.Errorf("pafx: decoding: %w", err)
	}
	return d, nil
}
