package testutils

import (
	"os"
	"path"
	"runtime"
	"time"

	"github.com/LambdaTest/covgate/config"
	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/LambdaTest/covgate/pkg/global"
	"github.com/LambdaTest/covgate/pkg/lumber"
)

// Paths of the dummy data used by tests, relative to the repository root.
const (
	XcovReportPath  = "testutils/testdata/xcov_report.json"
	XccovReportPath = "testutils/testdata/xccov_report.json"
	PullRequestDiff = "testutils/testdata/pr.diff"
)

// getCurrentWorkingDir give the file path of the repository root
func getCurrentWorkingDir() (string, error) {
	_, filename, _, ok := runtime.Caller(1)
	if !ok {
		return "", errs.New("runtime.Calller(1) was unable to recover information")
	}
	return path.Join(path.Dir(filename), "../"), nil
}

// GetLogger returns a dummy lumber.Logger.
func GetLogger() (lumber.Logger, error) {
	logger, err := lumber.NewLogger(lumber.LoggingConfig{ConsoleLevel: lumber.Debug}, true, lumber.InstanceZapLogger)
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// GetConfig returns a config holding the defaults of a stdout publishing run.
func GetConfig() *config.Config {
	return &config.Config{
		Logger:        "zap",
		Port:          global.DefaultPort,
		Source:        core.SourceFile,
		ReportPath:    FixturePath(XcovReportPath),
		MatchMode:     core.MatchPath,
		Timeout:       time.Minute,
		MaxReportSize: global.DefaultMaxReportSize,
		Changes:       config.ChangesConfig{Source: core.ChangesGit, BaseRef: "origin/main", HeadRef: "HEAD"},
		Publisher:     config.PublisherConfig{Type: core.PublishStdout, Sticky: true},
	}
}

// FixturePath returns the absolute path of a file relative to the repository root.
func FixturePath(relativePath string) string {
	cwd, err := getCurrentWorkingDir()
	if err != nil {
		return relativePath
	}
	return path.Join(cwd, relativePath)
}

// LoadFile reads a file relative to the repository root.
func LoadFile(relativePath string) ([]byte, error) {
	return os.ReadFile(FixturePath(relativePath))
}

// SampleReport returns the report used across the coverage tests:
// target App with a.swift at 80% and b.swift at 40%, aggregate 60%.
func SampleReport() *core.CoverageReport {
	return &core.CoverageReport{
		Coverage: 0.6,
		Targets: []core.Target{{
			Name:     "App",
			Coverage: 0.6,
			Files: []core.CoverageFile{
				{Name: "a.swift", Location: "App/a.swift", Coverage: 0.8},
				{Name: "b.swift", Location: "App/b.swift", Coverage: 0.4},
			},
		}},
	}
}
