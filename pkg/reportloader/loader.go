// Package reportloader obtains coverage reports from xcov, xccov or disk.
package reportloader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/LambdaTest/covgate/config"
	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/LambdaTest/covgate/pkg/global"
	"github.com/LambdaTest/covgate/pkg/ignorehandler"
	"github.com/LambdaTest/covgate/pkg/lumber"
	"github.com/LambdaTest/covgate/pkg/utils"
	units "github.com/docker/go-units"
)

// base holds what every loader shares: limits, target selection and ignore rules.
type base struct {
	cfg           *config.Config
	execManager   core.ExecutionManager
	logger        lumber.Logger
	maxReportSize int64
}

// New returns the ReportLoader selected by cfg.Source.
func New(cfg *config.Config, execManager core.ExecutionManager, logger lumber.Logger) (core.ReportLoader, error) {
	size, err := units.FromHumanSize(cfg.MaxReportSize)
	if err != nil {
		return nil, errs.Config(fmt.Sprintf("invalid max_report_size %q", cfg.MaxReportSize), err)
	}
	b := base{cfg: cfg, execManager: execManager, logger: logger, maxReportSize: size}
	switch cfg.Source {
	case core.SourceXcov:
		return &xcovLoader{base: b}, nil
	case core.SourceXccov:
		return &xccovLoader{base: b}, nil
	case core.SourceFile:
		return &fileLoader{base: b}, nil
	default:
		return nil, errs.Config(fmt.Sprintf("unsupported report source %q", cfg.Source), nil)
	}
}

// readReport reads path, refusing files larger than the configured limit.
func (b *base) readReport(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errs.Retrieval(fmt.Sprintf("coverage report %s not found", path), err)
	}
	if err := b.checkSize(info.Size()); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Retrieval(fmt.Sprintf("failed to read coverage report %s", path), err)
	}
	if sum, err := utils.ComputeChecksum(path); err == nil {
		b.logger.Debugf("read coverage report %s (%s, sha256 %s)", path, units.HumanSize(float64(len(data))), sum)
	}
	return data, nil
}

func (b *base) checkSize(size int64) error {
	if b.maxReportSize > 0 && size > b.maxReportSize {
		return errs.Retrieval(fmt.Sprintf("coverage report is %s, larger than the limit of %s",
			units.HumanSize(float64(size)), units.HumanSize(float64(b.maxReportSize))), nil)
	}
	return nil
}

// finish applies target selection and the ignore file to a decoded report.
func (b *base) finish(report *core.CoverageReport, selectTargets bool) (*core.CoverageReport, error) {
	if selectTargets {
		SelectTargets(report, b.cfg.IncludeTargets, b.cfg.ExcludeTargets)
	}
	ignoreFile := b.cfg.IgnoreFilePath
	if ignoreFile == "" {
		ignoreFile = global.DefaultIgnoreFile
	}
	if !filepath.IsAbs(ignoreFile) && b.cfg.RepoRoot != "" {
		ignoreFile = filepath.Join(b.cfg.RepoRoot, ignoreFile)
	}
	handler, err := ignorehandler.New(ignoreFile, b.cfg.IgnoreGlobs, b.logger)
	if err != nil {
		return nil, err
	}
	removed := ignorehandler.Apply(handler, report, func(f core.CoverageFile) string {
		if f.Location == "" {
			return f.Name
		}
		return utils.NormalizePath(f.Location, b.cfg.RepoRoot)
	})
	b.logger.Debugf("loaded coverage report with %d targets, %d files ignored", len(report.Targets), removed)
	return report, nil
}
