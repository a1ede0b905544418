package reportloader

import (
	"encoding/json"
	"path"
	"strings"

	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/errs"
)

// xccovReport mirrors the output of `xcrun xccov view --report --json`.
type xccovReport struct {
	LineCoverage float64       `json:"lineCoverage"`
	Targets      []xccovTarget `json:"targets"`
}

type xccovTarget struct {
	Name         string      `json:"name"`
	LineCoverage float64     `json:"lineCoverage"`
	Files        []xccovFile `json:"files"`
}

type xccovFile struct {
	Name         string          `json:"name"`
	Path         string          `json:"path"`
	LineCoverage float64         `json:"lineCoverage"`
	Functions    []xccovFunction `json:"functions"`
}

type xccovFunction struct {
	Name         string  `json:"name"`
	LineCoverage float64 `json:"lineCoverage"`
}

// Decode parses a report in either the xcov or the native xccov JSON shape.
func Decode(data []byte) (*core.CoverageReport, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, errs.Retrieval("coverage report is not valid JSON", err)
	}
	if _, ok := keys["lineCoverage"]; ok {
		return DecodeXccov(data)
	}
	if _, ok := keys["targets"]; ok {
		return DecodeXcov(data)
	}
	if _, ok := keys["coverage"]; ok {
		return DecodeXcov(data)
	}
	return nil, errs.Retrieval("coverage report has no coverage or targets", nil)
}

// DecodeXcov parses the report.json written by xcov.
func DecodeXcov(data []byte) (*core.CoverageReport, error) {
	var report core.CoverageReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, errs.Retrieval("malformed xcov report", err)
	}
	for i := range report.Targets {
		for j, f := range report.Targets[i].Files {
			if f.Name == "" && f.Location != "" {
				report.Targets[i].Files[j].Name = path.Base(f.Location)
			}
		}
	}
	return &report, nil
}

// DecodeXccov parses the native xccov JSON report.
func DecodeXccov(data []byte) (*core.CoverageReport, error) {
	var raw xccovReport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errs.Retrieval("malformed xccov report", err)
	}
	report := &core.CoverageReport{Coverage: raw.LineCoverage, Targets: make([]core.Target, 0, len(raw.Targets))}
	for _, t := range raw.Targets {
		target := core.Target{Name: t.Name, Coverage: t.LineCoverage, Files: make([]core.CoverageFile, 0, len(t.Files))}
		for _, f := range t.Files {
			file := core.CoverageFile{Name: f.Name, Location: f.Path, Coverage: f.LineCoverage}
			if file.Name == "" {
				file.Name = path.Base(f.Path)
			}
			for _, fn := range f.Functions {
				file.Functions = append(file.Functions, core.FunctionCoverage{Name: fn.Name, Coverage: fn.LineCoverage})
			}
			target.Files = append(target.Files, file)
		}
		report.Targets = append(report.Targets, target)
	}
	return report, nil
}

// SelectTargets keeps the targets named in include (all when empty) and drops those in exclude.
// Names match with or without the product extension, so "App" matches "App.app".
func SelectTargets(report *core.CoverageReport, include, exclude []string) {
	if len(include) == 0 && len(exclude) == 0 {
		return
	}
	kept := report.Targets[:0]
	for _, t := range report.Targets {
		if len(include) > 0 && !matchesTarget(include, t.Name) {
			continue
		}
		if matchesTarget(exclude, t.Name) {
			continue
		}
		kept = append(kept, t)
	}
	report.Targets = kept
}

func matchesTarget(names []string, target string) bool {
	trimmed := strings.TrimSuffix(target, path.Ext(target))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == target || n == trimmed {
			return true
		}
	}
	return false
}
