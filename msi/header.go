package msi

import (
	"fmt"
	"strconv"
	"strings"

	ms "github.com/mitchellh/mapstructure"
	"github.com/wiless/antmodel/antenna"
)

// DBdToDBi is the gain of a half-wave dipole over an isotropic radiator
const DBdToDBi = 2.15

// Header holds the well known MSI header keys
type Header struct {
	Name         string   `mapstructure:"NAME" json:"name"`
	Make         string   `mapstructure:"MAKE" json:"make,omitempty"`
	Frequency    string   `mapstructure:"FREQUENCY" json:"frequency"`
	HWidth       *float64 `mapstructure:"H_WIDTH" json:"hWidth,omitempty"`
	VWidth       *float64 `mapstructure:"V_WIDTH" json:"vWidth,omitempty"`
	FrontToBack  *float64 `mapstructure:"FRONT_TO_BACK" json:"frontToBack,omitempty"`
	Gain         string   `mapstructure:"GAIN" json:"gain"`
	Tilt         string   `mapstructure:"TILT" json:"tilt,omitempty"`
	Polarization string   `mapstructure:"POLARIZATION" json:"polarization,omitempty"`
	Comment      string   `mapstructure:"COMMENT" json:"comment,omitempty"`
}

// DecodeHeader converts the raw header key/values into a Header
func (f *File) DecodeHeader() (Header, error) {
	var h Header
	decoder, err := ms.NewDecoder(&ms.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &h,
	})
	if err != nil {
		return h, err
	}
	if err := decoder.Decode(f.Header); err != nil {
		return h, fmt.Errorf("decoding msi header: %w", err)
	}
	return h, nil
}

// Width returns the beamwidth declared in the header for the cut-plane p, if any
func (h Header) Width(p antenna.Plane) (float64, bool) {
	w := h.HWidth
	if p == antenna.Vertical {
		w = h.VWidth
	}
	if w == nil || *w == 0 {
		return 0, false
	}
	return *w, true
}

// BoresightGain returns the GAIN header in dBi, converting from dBd when needed
func (h Header) BoresightGain() (float64, error) {
	fields := strings.Fields(h.Gain)
	if len(fields) == 0 {
		return 0, fmt.Errorf("missing GAIN header")
	}
	gain, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid GAIN %q: %w", h.Gain, err)
	}
	if len(fields) > 1 && strings.ToUpper(fields[1]) == "DBD" {
		gain += DBdToDBi
	}
	return gain, nil
}
