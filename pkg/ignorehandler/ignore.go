// Package ignorehandler drops report files listed in a .xcovignore file or
// matched by the configured ignore globs.
package ignorehandler

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/LambdaTest/covgate/pkg/lumber"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ignoreHandler applies two rule sets. Entries follow xcov: an entry ignores a
// file whose name equals it, whose name matches it as a regular expression
// anchored at the end, or whose repo-relative path starts with it, ignoring
// case. Globs are doublestar patterns matched against the repo-relative path,
// and against the base name when they have no slash.
type ignoreHandler struct {
	names    map[string]struct{}
	regexps  []*regexp.Regexp
	prefixes []string
	globs    []string
	logger   lumber.Logger
}

// New reads the xcov ignore file at filePath and adds globs. A missing file
// yields a handler that applies the globs only.
func New(filePath string, globs []string, logger lumber.Logger) (core.IgnoreHandler, error) {
	h := &ignoreHandler{names: map[string]struct{}{}, logger: logger}
	data, err := os.ReadFile(filePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Debugf("ignore file %s not found", filePath)
	case err != nil:
		return nil, errs.Config(fmt.Sprintf("failed to read ignore file %s", filePath), err)
	default:
		if err := h.addEntries(data); err != nil {
			return nil, err
		}
	}
	if err := h.addGlobs(globs); err != nil {
		return nil, err
	}
	return h, nil
}

// Parse builds a handler from the YAML list of xcov ignore entries in data.
func Parse(data []byte, logger lumber.Logger) (core.IgnoreHandler, error) {
	h := &ignoreHandler{names: map[string]struct{}{}, logger: logger}
	if err := h.addEntries(data); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *ignoreHandler) addEntries(data []byte) error {
	var entries []string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return errs.Config("ignore file is not a YAML list of entries", err)
	}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		h.names[e] = struct{}{}
		h.prefixes = append(h.prefixes, strings.ToLower(strings.TrimPrefix(e, "./")))
		re, err := regexp.Compile(e + "$")
		if err != nil {
			// xcov would reject it too; the entry still works as a name or path
			h.logger.Warnf("ignore entry %q is not a regular expression, matching it literally", e)
			continue
		}
		h.regexps = append(h.regexps, re)
	}
	return nil
}

func (h *ignoreHandler) addGlobs(globs []string) error {
	for _, g := range globs {
		g = strings.TrimPrefix(strings.TrimSpace(g), "./")
		if g == "" {
			continue
		}
		if !doublestar.ValidatePattern(g) {
			return errs.Config(fmt.Sprintf("invalid ignore glob %q", g), nil)
		}
		h.globs = append(h.globs, g)
	}
	return nil
}

// ShouldIgnore reports whether the file at the repo-relative path p is ignored.
func (h *ignoreHandler) ShouldIgnore(p string) bool {
	p = strings.TrimPrefix(filepath.ToSlash(p), "./")
	base := path.Base(p)
	if _, ok := h.names[base]; ok {
		return true
	}
	for _, re := range h.regexps {
		if re.MatchString(base) {
			return true
		}
	}
	lower := strings.ToLower(p)
	for _, prefix := range h.prefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	for _, g := range h.globs {
		if ok, _ := doublestar.Match(g, p); ok {
			return true
		}
		if !strings.Contains(g, "/") {
			if ok, _ := doublestar.Match(g, base); ok {
				return true
			}
		}
	}
	return false
}

// Apply removes every ignored file from report in place.
func Apply(h core.IgnoreHandler, report *core.CoverageReport, relativize func(core.CoverageFile) string) int {
	removed := 0
	for i := range report.Targets {
		kept := report.Targets[i].Files[:0]
		for _, f := range report.Targets[i].Files {
			if h.ShouldIgnore(relativize(f)) {
				removed++
				continue
			}
			kept = append(kept, f)
		}
		report.Targets[i].Files = kept
	}
	return removed
}
