// Package msi reads antenna pattern files in the MSI (Planet) text format.
//
// An MSI file is a list of "KEY value" lines. The header lines come first,
// then a "HORIZONTAL n" line opens the horizontal cut and a "VERTICAL n" line
// opens the vertical cut; every line of a cut is an "angle loss" pair.
package msi

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/antmodel/antenna"
)

const (
	sectionHeader = iota
	sectionHorizontal
	sectionVertical
)

var lineRe = regexp.MustCompile(`([^ ]+?)[ \t]+?(.*)`)

// File is the raw content of an MSI file
type File struct {
	Header     map[string]string
	Horizontal []antenna.Sample
	Vertical   []antenna.Sample
	// Size is the number of bytes read
	Size int64
}

// Samples returns the loss samples of the cut-plane p
func (f *File) Samples(p antenna.Plane) []antenna.Sample {
	if p == antenna.Vertical {
		return f.Vertical
	}
	return f.Horizontal
}

// ParseFile opens and parses the MSI file at path
func ParseFile(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening msi file: %w", err)
	}
	defer fd.Close()

	f, err := Parse(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse reads an MSI document
func Parse(r io.Reader) (*File, error) {
	f := &File{Header: make(map[string]string)}
	section := sectionHeader

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		f.Size += int64(len(line)) + 1

		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value := splitLine(line)

		switch strings.ToUpper(key) {
		case "HORIZONTAL":
			section = sectionHorizontal
			f.Header["HORIZONTAL"] = value
			continue
		case "VERTICAL":
			section = sectionVertical
			f.Header["VERTICAL"] = value
			continue
		}

		if section == sectionHeader {
			f.Header[key] = value
			continue
		}

		sample, err := parseSample(key, value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		if section == sectionHorizontal {
			f.Horizontal = append(f.Horizontal, sample)
		} else {
			f.Vertical = append(f.Vertical, sample)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading msi: %w", err)
	}

	f.checkCount("HORIZONTAL", len(f.Horizontal))
	f.checkCount("VERTICAL", len(f.Vertical))
	return f, nil
}

// splitLine splits a line into its key and value, lines without a value keep
// an uppercased key
func splitLine(line string) (key, value string) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return strings.ToUpper(strings.TrimSpace(line)), ""
	}
	return m[1], strings.TrimSpace(m[2])
}

func parseSample(key, value string) (antenna.Sample, error) {
	angle, err := strconv.ParseFloat(strings.TrimSpace(key), 64)
	if err != nil {
		return antenna.Sample{}, fmt.Errorf("invalid angle %q: %w", key, err)
	}
	// some exporters append extra columns after the loss
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return antenna.Sample{}, fmt.Errorf("missing loss at angle %v", angle)
	}
	loss, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return antenna.Sample{}, fmt.Errorf("invalid loss %q at angle %v: %w", value, angle, err)
	}
	return antenna.Sample{AngleDeg: angle, LossDb: loss}, nil
}

// checkCount warns when the declared number of samples of a cut differs from what was read
func (f *File) checkCount(key string, got int) {
	declared, ok := f.Header[key]
	if !ok {
		return
	}
	fields := strings.Fields(declared)
	if len(fields) == 0 {
		return
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n == got {
		return
	}
	log.WithFields(log.Fields{"section": key, "declared": n, "read": got}).Warn("msi sample count mismatch")
}
