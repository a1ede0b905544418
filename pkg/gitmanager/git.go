package gitmanager

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/LambdaTest/covgate/config"
	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/lumber"
	"golang.org/x/sync/errgroup"
)

const (
	gitBinary      = "git"
	defaultHeadRef = "HEAD"
	// renamed files count as modified under their new path
	filterModified = "MR"
	filterAdded    = "A"
)

type gitChanges struct {
	execManager core.ExecutionManager
	repoRoot    string
	baseRef     string
	headRef     string
	logger      lumber.Logger
}

// NewGitChanges returns a ChangeProvider reading the diff between the configured refs from the local checkout.
func NewGitChanges(cfg *config.Config, execManager core.ExecutionManager, logger lumber.Logger) core.ChangeProvider {
	head := cfg.Changes.HeadRef
	if head == "" {
		head = defaultHeadRef
	}
	return &gitChanges{
		execManager: execManager,
		repoRoot:    cfg.RepoRoot,
		baseRef:     cfg.Changes.BaseRef,
		headRef:     head,
		logger:      logger,
	}
}

// ChangedFiles returns the modified, renamed and added files between the merge base and head.
func (g *gitChanges) ChangedFiles(ctx context.Context) (core.ChangedFileSet, error) {
	bin, err := g.execManager.LookPath(gitBinary, "")
	if err != nil {
		return nil, err
	}
	var modified, added []string
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		modified, err = g.diff(ctx, bin, filterModified)
		return err
	})
	eg.Go(func() (err error) {
		added, err = g.diff(ctx, bin, filterAdded)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	g.logger.Debugf("git diff %s...%s: %d modified, %d added", g.baseRef, g.headRef, len(modified), len(added))
	changed := core.NewChangedFileSet(modified...)
	changed.Add(added...)
	return changed, nil
}

func (g *gitChanges) diff(ctx context.Context, bin, filter string) ([]string, error) {
	out, err := g.execManager.Output(ctx, core.CommandGit, g.repoRoot, bin,
		"diff", "--name-only", "--diff-filter="+filter, fmt.Sprintf("%s...%s", g.baseRef, g.headRef))
	if err != nil {
		return nil, err
	}
	var files []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			files = append(files, line)
		}
	}
	return files, scanner.Err()
}
