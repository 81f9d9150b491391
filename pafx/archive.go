package pafx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Write writes the zip archive of the model: the PAP document of every pattern
// followed by the antenna.paf AntennaModel document.
func Write(w io.Writer, m *Model, patterns []*Pattern) error {
	entries := make(map[string]string, len(patterns)+1)
	entries[ModelEntryName] = ""
	for _, p := range patterns {
		if prev, ok := entries[p.EntryName]; ok {
			return fmt.Errorf("pafx: %s and %s share the archive entry %s", prev, p.SrcFile, p.EntryName)
		}
		entries[p.EntryName] = p.SrcFile
	}

	zw := zip.NewWriter(w)
	for _, p := range patterns {
		fw, err := zw.Create(p.EntryName)
		if err != nil {
			return err
		}
		if err := p.Data.Document().Encode(fw); err != nil {
			return fmt.Errorf("pafx: %s: %w", p.EntryName, err)
		}
	}
	fw, err := zw.Create(ModelEntryName)
	if err != nil {
		return err
	}
	if err := Build(m, patterns).Encode(fw); err != nil {
		return err
	}
	return zw.Close()
}

// WriteFile writes the archive of the model in dir, under the model file name
func WriteFile(dir string, m *Model, patterns []*Pattern) (string, error) {
	fname := filepath.Join(dir, m.Filename)
	fid, err := os.Create(fname)
	if err != nil {
		return "", err
	}
	if err := Write(fid, m, patterns); err != nil {
		fid.Close()
		os.Remove(fname)
		return "", err
	}
	if err := fid.Close(); err != nil {
		return "", err
	}
	log.Infof("Wrote %d patterns in %s", len(patterns), fname)
	return fname, nil
}
