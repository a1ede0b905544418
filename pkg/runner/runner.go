// Package runner executes one coverage check from report to published summary.
package runner

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/LambdaTest/covgate/config"
	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/LambdaTest/covgate/pkg/lumber"
	"github.com/LambdaTest/covgate/pkg/service/coverage"
	"github.com/LambdaTest/covgate/pkg/utils"
)

// Runner wires the collaborators of a coverage check.
type Runner struct {
	cfg       *config.Config
	loader    core.ReportLoader
	changes   core.ChangeProvider
	publisher core.Publisher
	archiver  core.ArtifactManager
	logger    lumber.Logger
}

// Option customizes a Runner.
type Option func(*Runner)

// WithArchiver stores every evaluated run through a.
func WithArchiver(a core.ArtifactManager) Option {
	return func(r *Runner) {
		r.archiver = a
	}
}

// New returns a Runner.
func New(cfg *config.Config,
	loader core.ReportLoader,
	changes core.ChangeProvider,
	publisher core.Publisher,
	logger lumber.Logger,
	opts ...Option) *Runner {
	r := &Runner{cfg: cfg, loader: loader, changes: changes, publisher: publisher, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates the check and publishes the outcome. The returned error is
// non-nil only when the coverage threshold was not met.
func (r *Runner) Run(ctx context.Context) (*core.Summary, error) {
	runID := utils.GenerateUUID()
	logger := r.logger.WithFields(lumber.Fields{"run_id": runID})

	summary, filtered, err := r.evaluate(ctx)
	if err != nil {
		logger.Errorf("coverage check not run, kind: %s, error: %v", errs.KindOf(err), err)
		summary = coverage.ErrorSummary(err)
	}

	if perr := r.publisher.Publish(ctx, summary.Markdown); perr != nil {
		logger.Errorf("failed to publish coverage summary, error: %v", perr)
	}
	if !summary.Evaluated {
		return summary, nil
	}

	description := summary.Failure
	if summary.Passed {
		description = "Coverage check passed"
	}
	if serr := r.publisher.Signal(ctx, summary.Passed, description); serr != nil {
		logger.Errorf("failed to signal coverage result, error: %v", serr)
	}
	if r.archiver != nil {
		if _, aerr := r.archiver.Archive(ctx, runID, filtered, summary); aerr != nil {
			logger.Errorf("failed to archive coverage run, error: %v", aerr)
		}
	}
	if !summary.Passed {
		return summary, errs.ThresholdNotMet(*r.cfg.MinimumCoveragePercentage)
	}
	return summary, nil
}

// evaluate loads the report and the changed files and renders the summary.
// Panics raised by collaborators are returned as errors.
func (r *Runner) evaluate(ctx context.Context) (summary *core.Summary, filtered *core.CoverageReport, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Errorf("panic during coverage check: %v\n%s", p, debug.Stack())
			err = fmt.Errorf("%w: %v", errs.GenericErrRemark, p)
		}
	}()

	report, err := r.loader.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	changed, err := r.changes.ChangedFiles(ctx)
	if err != nil {
		return nil, nil, err
	}
	filtered = coverage.Filter(report, changed, r.cfg.MatchMode, r.cfg.RepoRoot)
	summary = coverage.Summarize(filtered, report, r.cfg.MinimumCoveragePercentage)
	r.logger.Infof("coverage %s across %d changed files, passed: %t",
		utils.Percent(report.Coverage), countFiles(filtered), summary.Passed)
	return summary, filtered, nil
}

func countFiles(report *core.CoverageReport) int {
	n := 0
	for _, t := range report.Targets {
		n += len(t.Files)
	}
	return n
}
