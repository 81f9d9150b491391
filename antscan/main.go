// Command antscan analyzes a folder of MSI antenna patterns, writes a PAP
// file per pattern and a yaml report of the extracted beam parameters.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/wiless/antmodel"
	"github.com/wiless/antmodel/pafx"
	"github.com/wiless/antmodel/selector"
	"github.com/wiless/vlib"
	"gopkg.in/yaml.v3"
)

var outdir string
var indir string

// ReportName is the run report written in outdir
const ReportName = "report.yaml"

// ReadConfig checks indir and outdir, outdir is created when missing
func ReadConfig() error {
	finfo, err := os.Stat(indir)
	if err != nil {
		return fmt.Errorf("input dir %s: %w", indir, err)
	}
	if !finfo.IsDir() {
		return fmt.Errorf("input dir %s is not a directory", indir)
	}
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return fmt.Errorf("output dir %s: %w", outdir, err)
	}
	return nil
}

// Entry is the report line of one pattern
type Entry struct {
	SrcFile    string                 `yaml:"srcFile"`
	PapFile    string                 `yaml:"papFile,omitempty"`
	Error      string                 `yaml:"error,omitempty"`
	Data       *antmodel.PatternData  `yaml:"data,omitempty"`
	Parameters map[string]interface{} `yaml:"parameters,omitempty"`
}

type Report struct {
	RunID    string           `yaml:"runId"`
	Created  time.Time        `yaml:"created"`
	Indir    string           `yaml:"indir"`
	Outdir   string           `yaml:"outdir"`
	Config   AppConfig        `yaml:"-"`
	Summary  antmodel.Summary `yaml:"summary"`
	Patterns []Entry          `yaml:"patterns"`
	// Total size of the analyzed sources
	Bytes uint64 `yaml:"bytes"`

	Tags     []pafx.Tag `yaml:"tags,omitempty"`
	PafxFile string     `yaml:"pafxFile,omitempty"`
}

// relPath is the slash separated path of src relative to indir, the path the
// selector rules apply to
func relPath(indir, src string) string {
	rel, err := filepath.Rel(indir, src)
	if err != nil {
		return filepath.ToSlash(src)
	}
	return filepath.ToSlash(rel)
}

// distinct lists the values of one tag over patterns, in order of appearance
func distinct(patterns []*pafx.Pattern, value func(*pafx.Pattern) string) []string {
	var result []string
	seen := make(map[string]bool)
	for _, p := range patterns {
		if v := value(p); v != "" && !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}

// selectTags fills the selected scenarios and virtual ports of the patterns
func selectTags(patterns []*pafx.Pattern, selectors map[string]*selector.NameSelector) error {
	scenarios := distinct(patterns, func(p *pafx.Pattern) string { return p.Scenario })
	ports := distinct(patterns, func(p *pafx.Pattern) string { return p.VPortName })
	for _, p := range patterns {
		var err error
		if s, ok := selectors["scenario"]; ok {
			if p.SelectedScenarios, err = s.Select(p.SrcFile, scenarios); err != nil {
				return fmt.Errorf("selecting scenarios of %s: %w", p.SrcFile, err)
			}
		}
		if s, ok := selectors["v_port_name"]; ok {
			if p.SelectedVPortNames, err = s.Select(p.SrcFile, ports); err != nil {
				return fmt.Errorf("selecting virtual ports of %s: %w", p.SrcFile, err)
			}
		}
	}
	return nil
}

// papName maps src under indir to its .pap file under outdir
func papName(indir, outdir, src string) string {
	rel, err := filepath.Rel(indir, src)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(src)
	}
	return filepath.Join(outdir, strings.TrimSuffix(rel, filepath.Ext(rel))+".pap")
}

func writePap(d *antmodel.PatternData, fname string) error {
	if err := os.MkdirAll(filepath.Dir(fname), 0o755); err != nil {
		return err
	}
	fid, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := d.Document().Encode(fid); err != nil {
		fid.Close()
		return err
	}
	return fid.Close()
}

// run analyzes every MSI file of indir and writes the outputs in outdir
func run(indir, outdir string, config AppConfig) (*Report, error) {
	var filter *selector.ReFilter
	var names map[string]*selector.Extractor
	var selectors map[string]*selector.NameSelector
	if config.Rules != "" {
		rules, err := selector.LoadRules(filepath.Join(indir, config.Rules))
		if err != nil {
			return nil, err
		}
		if filter, err = rules.Filter(); err != nil {
			return nil, err
		}
		if names, err = rules.NameExtractors(); err != nil {
			return nil, err
		}
		if selectors, err = rules.NameSelectors(); err != nil {
			return nil, err
		}
	}

	var files []string
	var err error
	if filter != nil {
		files, err = antmodel.SourceFiles(indir, filter)
	} else {
		files, err = antmodel.SourceFiles(indir, nil)
	}
	if err != nil {
		return nil, err
	}
	log.Infof("Found %d msi files in %s", len(files), indir)

	report := &Report{
		RunID:   uuid.New().String(),
		Created: time.Now().UTC(),
		Indir:   indir,
		Outdir:  outdir,
		Config:  config,
	}
	results := config.Analyzer.AnalyzeAll(files)
	var patterns []*pafx.Pattern
	for _, r := range results {
		if finfo, err := os.Stat(r.SrcFile); err == nil {
			report.Bytes += uint64(finfo.Size())
		}
		entry := Entry{SrcFile: r.SrcFile}
		if r.Err != nil {
			entry.Error = r.Err.Error()
			report.Patterns = append(report.Patterns, entry)
			continue
		}
		entry.Data = r.Data

		values, errs := antmodel.ExtractPayload(r.Data, antmodel.DefaultPayload)
		for name, err := range errs {
			log.Warnf("%s: %s: %v", r.SrcFile, name, err)
		}
		rel := relPath(indir, r.SrcFile)
		for name, e := range names {
			v, err := e.ExtractFrom(rel, r.Data.RawHeader)
			if err != nil {
				log.Debugf("%s: %s: %v", r.SrcFile, name, err)
				continue
			}
			values[name] = v
		}
		entry.Parameters = values
		if p, err := pafx.NewPattern(rel, r.Data, values); err != nil {
			log.Warnf("%s: %v", r.SrcFile, err)
		} else {
			patterns = append(patterns, p)
		}

		entry.PapFile = papName(indir, outdir, r.SrcFile)
		if err := writePap(r.Data, entry.PapFile); err != nil {
			return nil, fmt.Errorf("writing %s: %w", entry.PapFile, err)
		}
		if config.DumpJSON {
			vlib.SaveStructure(r.Data, strings.TrimSuffix(entry.PapFile, ".pap")+".json", true)
		}
		report.Patterns = append(report.Patterns, entry)
	}
	report.Summary = antmodel.Summarize(results)

	if len(patterns) > 0 {
		if err := selectTags(patterns, selectors); err != nil {
			return nil, err
		}
		report.Tags = pafx.ListTags(patterns)
		if config.Pafx.Filename != "" {
			if report.PafxFile, err = pafx.WriteFile(outdir, &config.Pafx, patterns); err != nil {
				return nil, fmt.Errorf("writing %s: %w", config.Pafx.Filename, err)
			}
		}
	}

	out, err := yaml.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outdir, ReportName), out, 0o644); err != nil {
		return nil, err
	}
	return report, nil
}

// printSummary prints one colored line per pattern and the run totals
func printSummary(r *Report) {
	ok := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()
	for _, e := range r.Patterns {
		if e.Error != "" {
			fmt.Printf("%s %s: %s\n", fail("FAIL"), e.SrcFile, e.Error)
			continue
		}
		d := e.Data
		fmt.Printf("%s %s: gain %.2f %s, H %d° @ %d°, V %d° @ %d°, F/B %.1f dB\n",
			ok("OK"), e.SrcFile, d.BoresightGain, d.BoresightGainUnit,
			d.HBeamwidthDeg, d.HBoresightDeg, d.VBeamwidthDeg, d.VBoresightDeg, d.FrontToBackRatioDb)
	}
	s := r.Summary
	color.Cyan("Run %s: %s files (%s), %s failed, %s/%s omni (H/V)",
		r.RunID, humanize.Comma(int64(s.Files)), humanize.Bytes(r.Bytes),
		humanize.Comma(int64(s.Failed)), humanize.Comma(int64(s.HOmni)), humanize.Comma(int64(s.VOmni)))
	if s.BestFile != "" {
		color.Cyan("Best gain %.2f dBi in %s", s.BestGain, s.BestFile)
	}
	printTags(r.Tags)
	if r.PafxFile != "" {
		color.Green("Wrote %s", r.PafxFile)
	}
}

// printTags prints the number of patterns carrying each tag value
func printTags(tags []pafx.Tag) {
	title := color.New(color.FgYellow).SprintFunc()
	for _, tag := range tags {
		fmt.Printf("\n[%s]:\n", title(tag.Name))
		for i, v := range tag.Values {
			value := v.Value
			if value == "" {
				value = "<none>"
			}
			fmt.Printf("  %2d. %-24s %s items\n", i+1, value, humanize.Comma(int64(len(v.Files))))
		}
	}
}

func main() {
	flag.StringVar(&outdir, "outdir", ".", "Directory where all the output files are generated..")
	flag.StringVar(&indir, "indir", ".", "Directory where all the input files are read..")
	help := flag.Bool("help", false, "prints this help")
	verbose := flag.Bool("v", false, "Print logs verbose mode")
	flag.Parse()

	if *help {
		flag.PrintDefaults()
		os.Exit(0)
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if err := ReadConfig(); err != nil {
		log.Fatal(err)
	}
	config := ReadAppConfig(indir)
	if level, err := log.ParseLevel(config.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.Infof("Current indir & outdir %s %s", indir, outdir)

	report, err := run(indir, outdir, config)
	if err != nil {
		log.Fatal(err)
	}
	printSummary(report)
	if report.Summary.Failed > 0 {
		os.Exit(1)
	}
}
