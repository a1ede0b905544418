// Package coverage restricts coverage reports to the files of a pull request
// and renders the outcome.
package coverage

import (
	"path"
	"strings"

	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/utils"
)

// Filter returns a copy of report holding only the files present in changed.
// Targets are kept even when none of their files changed. report is not modified.
func Filter(report *core.CoverageReport, changed core.ChangedFileSet, mode core.MatchMode, repoRoot string) *core.CoverageReport {
	out := report.Copy()
	if out == nil {
		return nil
	}
	var match func(core.CoverageFile) bool
	if mode == core.MatchBasename {
		match = basenameMatcher(changed)
	} else {
		match = pathMatcher(out, changed, repoRoot)
	}
	for i := range out.Targets {
		kept := make([]core.CoverageFile, 0, len(out.Targets[i].Files))
		for _, f := range out.Targets[i].Files {
			if match(f) {
				kept = append(kept, f)
			}
		}
		out.Targets[i].Files = kept
	}
	return out
}

// Identifier returns the repo-relative path used to compare f with changed files.
func Identifier(f core.CoverageFile, repoRoot string) string {
	if f.Location == "" {
		return f.Name
	}
	return utils.NormalizePath(f.Location, repoRoot)
}

func pathMatcher(report *core.CoverageReport, changed core.ChangedFileSet, repoRoot string) func(core.CoverageFile) bool {
	normalized := make(core.ChangedFileSet, len(changed))
	for p := range changed {
		normalized.Add(utils.NormalizePath(p, repoRoot))
	}
	foreign := foreignRoot(report, normalized, repoRoot)
	return func(f core.CoverageFile) bool {
		id := Identifier(f, repoRoot)
		if foreign != "" && strings.HasPrefix(id, foreign) {
			id = strings.TrimPrefix(id, foreign)
		}
		return normalized.Has(id)
	}
}

// foreignRoot infers the checkout directory of a report generated on another
// machine, whose absolute locations lie outside repoRoot. A candidate root is
// what remains of a location after removing a changed path from its end. The
// root is only used when exactly one candidate contains every foreign
// location, otherwise foreign locations never match. The returned root ends
// with a slash.
func foreignRoot(report *core.CoverageReport, changed core.ChangedFileSet, repoRoot string) string {
	var foreign []string
	candidates := map[string]struct{}{}
	for _, t := range report.Targets {
		for _, f := range t.Files {
			id := Identifier(f, repoRoot)
			if !path.IsAbs(id) {
				continue
			}
			foreign = append(foreign, id)
			for p := range changed {
				if strings.HasSuffix(id, "/"+p) {
					candidates[strings.TrimSuffix(id, p)] = struct{}{}
				}
			}
		}
	}
	root := ""
	for candidate := range candidates {
		if !containsAll(candidate, foreign) {
			continue
		}
		if root != "" {
			return ""
		}
		root = candidate
	}
	return root
}

func containsAll(root string, locations []string) bool {
	for _, l := range locations {
		if !strings.HasPrefix(l, root) {
			return false
		}
	}
	return true
}

func basenameMatcher(changed core.ChangedFileSet) func(core.CoverageFile) bool {
	names := make(core.ChangedFileSet, len(changed))
	for p := range changed {
		names.Add(path.Base(p))
	}
	return func(f core.CoverageFile) bool {
		name := f.Name
		if name == "" {
			name = path.Base(f.Location)
		}
		return names.Has(name)
	}
}
