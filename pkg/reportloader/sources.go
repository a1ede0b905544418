package reportloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/LambdaTest/covgate/pkg/fileutils"
	"github.com/LambdaTest/covgate/pkg/global"
)

const (
	xcovBinary  = "xcov"
	xcrunBinary = "xcrun"
)

type xcovLoader struct {
	base
}

// Load runs xcov with the pass-through options and decodes its json report.
func (l *xcovLoader) Load(ctx context.Context) (*core.CoverageReport, error) {
	bin, err := l.execManager.LookPath(xcovBinary, l.cfg.ToolPath)
	if err != nil {
		return nil, err
	}
	outDir, err := os.MkdirTemp("", "covgate-xcov-")
	if err != nil {
		return nil, errs.Retrieval("failed to create xcov output directory", err)
	}
	defer os.RemoveAll(outDir)

	if _, err := l.execManager.Output(ctx, core.CommandXcov, l.cfg.RepoRoot, bin, l.args(outDir)...); err != nil {
		return nil, err
	}
	data, err := l.readReport(filepath.Join(outDir, global.XcovReportFileName))
	if err != nil {
		return nil, err
	}
	report, err := DecodeXcov(data)
	if err != nil {
		return nil, err
	}
	// xcov applies include and exclude targets itself.
	return l.finish(report, false)
}

// args builds the xcov command line. Verbose output is never passed through.
func (l *xcovLoader) args(outDir string) []string {
	values := map[string]string{
		"scheme":                 l.cfg.Scheme,
		"workspace":              l.cfg.Workspace,
		"project":                l.cfg.Project,
		"derived_data_path":      l.cfg.DerivedDataPath,
		"xccov_file_direct_path": l.cfg.XccovFileDirectPath,
		"ignore_file_path":       l.cfg.IgnoreFilePath,
		"include_targets":        strings.Join(l.cfg.IncludeTargets, ","),
		"exclude_targets":        strings.Join(l.cfg.ExcludeTargets, ","),
	}
	var args []string
	for _, key := range global.XcovPassThroughOptions {
		if v := values[key]; v != "" {
			args = append(args, "--"+key, v)
		}
	}
	return append(args, "--output_directory", outDir, "--json_report", "--skip_slack")
}

type xccovLoader struct {
	base
}

// Load runs xccov against the result bundle and decodes the native report.
func (l *xccovLoader) Load(ctx context.Context) (*core.CoverageReport, error) {
	bin, err := l.execManager.LookPath(xcrunBinary, l.cfg.ToolPath)
	if err != nil {
		return nil, err
	}
	if ok, err := fileutils.CheckIfExists(l.cfg.XccovFileDirectPath); !ok {
		return nil, errs.Retrieval("xccov result bundle "+l.cfg.XccovFileDirectPath+" not found", err)
	}
	out, err := l.execManager.Output(ctx, core.CommandXccov, l.cfg.RepoRoot, bin,
		"xccov", "view", "--report", "--json", l.cfg.XccovFileDirectPath)
	if err != nil {
		return nil, err
	}
	if err := l.checkSize(int64(len(out))); err != nil {
		return nil, err
	}
	report, err := DecodeXccov(out)
	if err != nil {
		return nil, err
	}
	return l.finish(report, true)
}

type fileLoader struct {
	base
}

// Load decodes a previously generated report in either JSON shape.
func (l *fileLoader) Load(ctx context.Context) (*core.CoverageReport, error) {
	data, err := l.readReport(l.cfg.ReportPath)
	if err != nil {
		return nil, err
	}
	report, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return l.finish(report, true)
}
