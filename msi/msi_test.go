package msi_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wiless/antmodel/antenna"
	"github.com/wiless/antmodel/msi"
)

const sampleMSI = `NAME AQQA 3500 T02
MAKE Nokia
FREQUENCY 3500
H_WIDTH 65
GAIN 17.5 dBd
TILT ELECTRICAL
COMMENT etilt_offset=2
HORIZONTAL 8
0	0.00
45	3.10
90	12.0
135	25.0
180	30.0
225	25.0
270	12.0
315	3.10

VERTICAL 8
0.0 0.0
45.0 10.0
90.0 30.0
135.0 30.0
180.0 30.0
225.0 30.0
270.0 30.0
315.0 10.0 extra
`

func TestParse(t *testing.T) {
	f, err := msi.Parse(strings.NewReader(sampleMSI))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := f.Header["NAME"]; got != "AQQA 3500 T02" {
		t.Errorf("NAME = %q", got)
	}
	if got := f.Header["HORIZONTAL"]; got != "8" {
		t.Errorf("HORIZONTAL = %q, want 8", got)
	}
	if len(f.Horizontal) != 8 || len(f.Vertical) != 8 {
		t.Fatalf("read %d/%d samples, want 8/8", len(f.Horizontal), len(f.Vertical))
	}
	if s := f.Horizontal[1]; s.AngleDeg != 45 || s.LossDb != 3.1 {
		t.Errorf("horizontal[1] = %+v", s)
	}
	if s := f.Samples(antenna.Vertical)[7]; s.AngleDeg != 315 || s.LossDb != 10 {
		t.Errorf("vertical[7] = %+v", s)
	}
	if f.Size != int64(len(sampleMSI)) {
		t.Errorf("Size = %d, want %d", f.Size, len(sampleMSI))
	}
}

func TestDecodeHeader(t *testing.T) {
	f, err := msi.Parse(strings.NewReader(sampleMSI))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	h, err := f.DecodeHeader()
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if h.Name != "AQQA 3500 T02" || h.Make != "Nokia" || h.Frequency != "3500" {
		t.Errorf("unexpected header %+v", h)
	}
	if w, ok := h.Width(antenna.Horizontal); !ok || w != 65 {
		t.Errorf("horizontal width = %v,%v want 65,true", w, ok)
	}
	if _, ok := h.Width(antenna.Vertical); ok {
		t.Errorf("vertical width should be missing")
	}

	gain, err := h.BoresightGain()
	if err != nil {
		t.Fatalf("BoresightGain: %v", err)
	}
	if gain != 17.5+msi.DBdToDBi {
		t.Errorf("gain = %v, want %v", gain, 17.5+msi.DBdToDBi)
	}
}

func TestBoresightGain(t *testing.T) {
	tests := []struct {
		gain    string
		want    float64
		wantErr bool
	}{
		{"18", 18, false},
		{"18 dBi", 18, false},
		{"15.85 DBD", 15.85 + msi.DBdToDBi, false},
		{"", 0, true},
		{"high dBi", 0, true},
	}
	for _, tt := range tests {
		got, err := msi.Header{Gain: tt.gain}.BoresightGain()
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: error = %v, wantErr %v", tt.gain, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: gain = %v, want %v", tt.gain, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"NAME x\nHORIZONTAL 2\n0 0\nninety 3\n",
		"NAME x\nVERTICAL 2\n0 zero\n",
	}
	for _, doc := range bad {
		if _, err := msi.Parse(strings.NewReader(doc)); err == nil {
			t.Errorf("expected an error parsing %q", doc)
		}
	}

	if _, err := msi.Parse(strings.NewReader("NAME x\nFREQUENCY 3.5 GHz\n")); err != nil {
		t.Fatalf("header only file: %v", err)
	}
	// headers the analysis does not read are kept verbatim
	f, _ := msi.Parse(strings.NewReader("FREQUENCY 3.5 GHz\n"))
	if h, err := f.DecodeHeader(); err != nil || h.Frequency != "3.5 GHz" {
		t.Errorf("frequency = %q, %v want 3.5 GHz", h.Frequency, err)
	}
	f, _ = msi.Parse(strings.NewReader("H_WIDTH wide\n"))
	if _, err := f.DecodeHeader(); err == nil {
		t.Errorf("expected a decode error for a non numeric H_WIDTH")
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pattern.msi")
	if err := os.WriteFile(path, []byte(strings.ReplaceAll(sampleMSI, "\n", "\r\n")), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := msi.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if f.Header["MAKE"] != "Nokia" || len(f.Horizontal) != 8 {
		t.Errorf("CRLF file parsed as %+v", f.Header)
	}

	if _, err := msi.ParseFile(filepath.Join(t.TempDir(), "missing.msi")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
