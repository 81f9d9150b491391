package antmodel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/antmodel/antenna"
	"github.com/wiless/antmodel/msi"
)

// MSIExtension is the extension SourceFiles looks for, case insensitive
const MSIExtension = ".msi"

// Analyzer analyzes MSI files with a shared set of thresholds
type Analyzer struct {
	Thresholds antenna.Thresholds `json:"thresholds" mapstructure:"thresholds"`
	// Number of files analyzed concurrently by AnalyzeAll
	Workers int `json:"workers" mapstructure:"workers"`
}

func (a *Analyzer) SetDefault() {
	a.Thresholds.SetDefault()
	a.Workers = runtime.NumCPU()
}

func NewAnalyzer() *Analyzer {
	result := new(Analyzer)
	result.SetDefault()
	return result
}

// Set overrides the settings present in the json string
func (a *Analyzer) Set(str string) error {
	if err := json.Unmarshal([]byte(str), a); err != nil {
		return fmt.Errorf("decoding analyzer settings: %w", err)
	}
	return a.Thresholds.Validate()
}

// Result is the outcome of analyzing one file, Data is nil when Err is set
type Result struct {
	SrcFile string
	Data    *PatternData
	Err     error
}

func (a *Analyzer) Analyze(src string, f *msi.File) (*PatternData, error) {
	d, err := NewPatternData(src, f, a.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return d, nil
}

func (a *Analyzer) AnalyzeFile(path string) (*PatternData, error) {
	f, err := msi.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return a.Analyze(path, f)
}

// AnalyzeAll analyzes files on a.Workers goroutines. Results are returned in
// the order of files; a failing file does not stop the others.
func (a *Analyzer) AnalyzeAll(files []string) []Result {
	results := make([]Result, len(files))
	workers := a.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(wid int) {
			defer wg.Done()
			for i := range jobs {
				log.Debugf("Analyzer %d: %s", wid, files[i])
				d, err := a.AnalyzeFile(files[i])
				if err != nil {
					log.Warnf("Analyzer %d: skipping %v", wid, err)
				}
				results[i] = Result{SrcFile: files[i], Data: d, Err: err}
			}
		}(w)
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

// Accept reports whether a path should be analyzed
type Accept interface {
	Eval(value string) bool
}

// SourceFiles lists the MSI files under dir, sorted. When filter is not nil
// only the paths (relative to dir) it accepts are kept.
func SourceFiles(dir string, filter Accept) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.EqualFold(filepath.Ext(path), MSIExtension) {
			return nil
		}
		if filter != nil {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			if !filter.Eval(filepath.ToSlash(rel)) {
				log.Debugf("SourceFiles: filtered out %s", rel)
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
