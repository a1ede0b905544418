// Package diffmanager figures out the files changed by a pull request
package diffmanager

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/LambdaTest/covgate/config"
	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/LambdaTest/covgate/pkg/gitmanager"
	"github.com/LambdaTest/covgate/pkg/lumber"
	"github.com/LambdaTest/covgate/pkg/requestutils"
	"github.com/waigani/diffparser"
)

const githubMaxRetries = 3

type diffManager struct {
	path   string
	logger lumber.Logger
}

// New returns the ChangeProvider selected by cfg.Changes.Source.
func New(ctx context.Context, cfg *config.Config, execManager core.ExecutionManager, logger lumber.Logger) (core.ChangeProvider, error) {
	switch cfg.Changes.Source {
	case core.ChangesGit:
		return gitmanager.NewGitChanges(cfg, execManager, logger), nil
	case core.ChangesGitHub:
		return gitmanager.NewGitHubClient(ctx, &cfg.GitHub, requestutils.DefaultPolicy(githubMaxRetries), logger)
	case core.ChangesDiff:
		return NewDiffManager(cfg.Changes.DiffFile, logger), nil
	default:
		return nil, errs.ErrUnsupportedChangeSource
	}
}

// NewDiffManager returns a ChangeProvider reading a unified diff from path.
func NewDiffManager(path string, logger lumber.Logger) core.ChangeProvider {
	return &diffManager{path: path, logger: logger}
}

// ChangedFiles parses the diff file. Deleted files are skipped, renamed files
// are reported under their new name.
func (dm *diffManager) ChangedFiles(ctx context.Context) (core.ChangedFileSet, error) {
	raw, err := os.ReadFile(dm.path)
	if err != nil {
		return nil, errs.Retrieval(fmt.Sprintf("failed to read diff file %s", dm.path), err)
	}
	return dm.parseDiff(string(raw))
}

func (dm *diffManager) parseDiff(raw string) (core.ChangedFileSet, error) {
	// the parser expects git style "diff " headers before any file section
	if strings.TrimSpace(raw) != "" && !strings.HasPrefix(raw, "diff ") && !strings.Contains(raw, "\ndiff ") {
		return nil, errs.Retrieval(fmt.Sprintf("diff %s has no git file headers", dm.path), nil)
	}
	diff, err := diffparser.Parse(raw)
	if err != nil {
		dm.logger.Errorf("failed to parse diff %s, error: %v", dm.path, err)
		return nil, errs.Retrieval("malformed diff", err)
	}
	renames := renameTargets(raw)
	changed := core.NewChangedFileSet()
	for i, f := range diff.Files {
		// a pure rename has no ---/+++ lines and parses as a deletion
		if target, ok := renames[i]; ok {
			changed.Add(target)
			continue
		}
		if f.Mode == diffparser.DELETED {
			continue
		}
		name := f.NewName
		if name == "" || name == "/dev/null" {
			name = f.OrigName
		}
		changed.Add(name)
	}
	if len(changed) == 0 {
		dm.logger.Warnf("diff %s has no added or modified files", dm.path)
	}
	return changed, nil
}

// renameTargets maps the index of each file section carrying a
// "rename to" header onto the new path.
func renameTargets(raw string) map[int]string {
	targets := make(map[int]string)
	section := -1
	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "diff "):
			section++
		case section >= 0 && strings.HasPrefix(line, "rename to "):
			targets[section] = strings.TrimSpace(strings.TrimPrefix(line, "rename to "))
		}
	}
	return targets
}
