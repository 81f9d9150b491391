package pafx

import "strconv"

// TagValue is one value of a tag and the patterns carrying it
type TagValue struct {
	Value string   `yaml:"value"`
	Files []string `yaml:"files"`
}

// Tag lists the values of one tag in order of appearance
type Tag struct {
	Name   string     `yaml:"name"`
	Values []TagValue `yaml:"values"`
}

func (t *Tag) add(value, file string) {
	for i := range t.Values {
		if t.Values[i].Value == value {
			t.Values[i].Files = append(t.Values[i].Files, file)
			return
		}
	}
	t.Values = append(t.Values, TagValue{Value: value, Files: []string{file}})
}

// TagNames are the tags listed by ListTags, in order
var TagNames = [...]string{
	"scenario",
	"v_port_name",
	"pattern_type",
	"freq_band",
	"electrical_tilt",
	"polarization",
	"polarization_type",
	"v_port_number_of_ports",
	"horiz_number_of_elements",
	"horiz_sep_dist_cm",
	"vert_number_of_elements",
	"vert_sep_dist_cm",
}

func (t Tags) values() [len(TagNames)]string {
	return [...]string{
		t.Scenario,
		t.VPortName,
		t.PatternType,
		t.Band(),
		strconv.Itoa(t.ElectricalTilt),
		t.Polarization,
		t.PolarizationType,
		strconv.Itoa(t.VPortNumberOfPorts),
		strconv.Itoa(t.HorizNumberOfElements),
		number(t.HorizSepDistCm),
		strconv.Itoa(t.VertNumberOfElements),
		number(t.VertSepDistCm),
	}
}

// ListTags groups the source files of patterns by the value of every tag
func ListTags(patterns []*Pattern) []Tag {
	tags := make([]Tag, len(TagNames))
	for i, name := range TagNames {
		tags[i].Name = name
	}
	for _, p := range patterns {
		for i, v := range p.values() {
			tags[i].add(v, p.SrcFile)
		}
	}
	return tags
}
