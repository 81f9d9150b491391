package pap

import (
	"encoding/xml"
	"fmt"
	"io"
)

const (
	xsdNamespace = "http://www.w3.org/2001/XMLSchema"
	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"
)

// Document is the AntennaPatterns xml root of a .pap file
type Document struct {
	XMLName    xml.Name            `xml:"AntennaPatterns"`
	XSD        string              `xml:"xmlns:xsd,attr,omitempty"`
	XSI        string              `xml:"xmlns:xsi,attr,omitempty"`
	Horizontal []horizontalPattern `xml:"HorizontalPatterns>HorizontalPattern"`
	Vertical   []verticalPattern   `xml:"VerticalPatterns>VerticalPattern"`
}

type horizontalPattern struct {
	Inclination int    `xml:"Inclination"`
	StartAngle  int    `xml:"StartAngle"`
	EndAngle    int    `xml:"EndAngle"`
	Step        int    `xml:"Step"`
	Gains       string `xml:"Gains"`
}

type verticalPattern struct {
	Orientation int    `xml:"Orientation"`
	StartAngle  int    `xml:"StartAngle"`
	EndAngle    int    `xml:"EndAngle"`
	Step        int    `xml:"Step"`
	Gains       string `xml:"Gains"`
}

func NewDocument(horizontal, vertical Pattern) *Document {
	return &Document{
		XSD: xsdNamespace,
		XSI: xsiNamespace,
		Horizontal: []horizontalPattern{{
			Inclination: horizontal.Inclination,
			StartAngle:  horizontal.StartAngle,
			EndAngle:    horizontal.EndAngle,
			Step:        horizontal.Step,
			Gains:       horizontal.Gains,
		}},
		Vertical: []verticalPattern{{
			Orientation: vertical.Orientation,
			StartAngle:  vertical.StartAngle,
			EndAngle:    vertical.EndAngle,
			Step:        vertical.Step,
			Gains:       vertical.Gains,
		}},
	}
}

// Patterns returns the first horizontal and vertical patterns of the document
func (d *Document) Patterns() (horizontal, vertical Pattern, err error) {
	if len(d.Horizontal) == 0 || len(d.Vertical) == 0 {
		return horizontal, vertical, fmt.Errorf("pap: document needs a horizontal and a vertical pattern")
	}
	h, v := d.Horizontal[0], d.Vertical[0]
	horizontal = Pattern{Inclination: h.Inclination, StartAngle: h.StartAngle, EndAngle: h.EndAngle, Step: h.Step, Gains: h.Gains}
	vertical = Pattern{Orientation: v.Orientation, StartAngle: v.StartAngle, EndAngle: v.EndAngle, Step: v.Step, Gains: v.Gains}
	return horizontal, vertical, nil
}

// Encode writes the document as indented utf-8 xml
func (d *Document) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("pap: encoding: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func Decode(r io.Reader) (*Document, error) {
	d := new(Document)
	if err := xml.NewDecoder(r).Decode(d); err != nil {
		return nil, fmt.Errorf("pap: decoding: %w", err)
	}
	return d, nil
}
