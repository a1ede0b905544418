package reportloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/LambdaTest/covgate/testutils"
	"github.com/LambdaTest/covgate/testutils/mocks"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	xcov, err := testutils.LoadFile(testutils.XcovReportPath)
	require.NoError(t, err)
	xccov, err := testutils.LoadFile(testutils.XccovReportPath)
	require.NoError(t, err)

	tests := []struct {
		name      string
		data      []byte
		coverage  float64
		targets   []string
		firstFile core.CoverageFile
		wantErr   error
	}{
		{
			name:     "xcov shape",
			data:     xcov,
			coverage: 0.6,
			targets:  []string{"App.app", "AppTests.xctest"},
			firstFile: core.CoverageFile{Name: "a.swift", Location: "App/a.swift", Coverage: 0.8, Functions: []core.FunctionCoverage{
				{Name: "AppDelegate.application(_:didFinishLaunchingWithOptions:)", Coverage: 1},
				{Name: "AppDelegate.applicationWillTerminate(_:)", Coverage: 0},
			}},
		},
		{
			name:     "xccov shape",
			data:     xccov,
			coverage: 0.6,
			targets:  []string{"App.app"},
			firstFile: core.CoverageFile{Name: "a.swift", Location: "/Users/ci/work/App/a.swift", Coverage: 0.8, Functions: []core.FunctionCoverage{
				{Name: "viewDidLoad()", Coverage: 1},
			}},
		},
		{name: "not json", data: []byte("<html>"), wantErr: errs.ErrRetrieval},
		{name: "unknown shape", data: []byte(`{"foo": 1}`), wantErr: errs.ErrRetrieval},
		{name: "malformed targets", data: []byte(`{"targets": "App"}`), wantErr: errs.ErrRetrieval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.data)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.coverage, got.Coverage, 1e-9)
			var names []string
			for _, target := range got.Targets {
				names = append(names, target.Name)
			}
			assert.Equal(t, tt.targets, names)
			if diff := cmp.Diff(tt.firstFile, got.Targets[0].Files[0]); diff != "" {
				t.Errorf("first file mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectTargets(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{"no selection", nil, nil, []string{"App.app", "AppTests.xctest", "Kit.framework"}},
		{"include by product name", []string{"App.app"}, nil, []string{"App.app"}},
		{"include by bare name", []string{"App", "Kit"}, nil, []string{"App.app", "Kit.framework"}},
		{"exclude", nil, []string{"AppTests"}, []string{"App.app", "Kit.framework"}},
		{"include and exclude", []string{"App", "Kit"}, []string{"Kit.framework"}, []string{"App.app"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &core.CoverageReport{Targets: []core.Target{{Name: "App.app"}, {Name: "AppTests.xctest"}, {Name: "Kit.framework"}}}
			SelectTargets(report, tt.include, tt.exclude)
			var names []string
			for _, target := range report.Targets {
				names = append(names, target.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestNew(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	execManager := new(mocks.ExecutionManager)

	cfg := testutils.GetConfig()
	cfg.MaxReportSize = "a lot"
	_, err = New(cfg, execManager, logger)
	assert.True(t, errors.Is(err, errs.ErrConfig))

	cfg = testutils.GetConfig()
	cfg.Source = "gcov"
	_, err = New(cfg, execManager, logger)
	assert.True(t, errors.Is(err, errs.ErrConfig))
}

func Test_fileLoader_Load(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	repo := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repo, ".xcovignore"), []byte("- .*b\\.swift\n"), 0o600))

	cfg := testutils.GetConfig()
	cfg.RepoRoot = repo
	cfg.ExcludeTargets = []string{"AppTests"}
	loader, err := New(cfg, new(mocks.ExecutionManager), logger)
	require.NoError(t, err)

	report, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Targets, 1)
	assert.Equal(t, "App.app", report.Targets[0].Name)
	require.Len(t, report.Targets[0].Files, 1)
	assert.Equal(t, "a.swift", report.Targets[0].Files[0].Name)
}

func Test_fileLoader_Errors(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)

	cfg := testutils.GetConfig()
	cfg.ReportPath = filepath.Join(t.TempDir(), "missing.json")
	loader, err := New(cfg, new(mocks.ExecutionManager), logger)
	require.NoError(t, err)
	_, err = loader.Load(context.Background())
	assert.True(t, errors.Is(err, errs.ErrRetrieval), "got %v", err)

	cfg = testutils.GetConfig()
	cfg.MaxReportSize = "100B"
	loader, err = New(cfg, new(mocks.ExecutionManager), logger)
	require.NoError(t, err)
	_, err = loader.Load(context.Background())
	assert.True(t, errors.Is(err, errs.ErrRetrieval), "got %v", err)
	assert.Contains(t, err.Error(), "larger than the limit")
}

func Test_xcovLoader_Load(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	fixture, err := testutils.LoadFile(testutils.XcovReportPath)
	require.NoError(t, err)

	cfg := testutils.GetConfig()
	cfg.Source = core.SourceXcov
	cfg.RepoRoot = t.TempDir()
	cfg.Scheme = "App"
	cfg.Workspace = "App.xcworkspace"
	cfg.ExcludeTargets = []string{"AppTests.xctest", "Pods"}
	cfg.Verbose = true
	threshold := 70
	cfg.MinimumCoveragePercentage = &threshold

	var gotArgs []string
	execManager := new(mocks.ExecutionManager)
	execManager.On("LookPath", "xcov", "").Return("/usr/local/bin/xcov", nil)
	execManager.On("Output", mock.Anything, core.CommandXcov, cfg.RepoRoot, "/usr/local/bin/xcov",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(func(_ context.Context, _ core.CommandType, _ string, _ string, args ...string) []byte {
			gotArgs = args
			// the output directory follows --output_directory
			for i, a := range args {
				if a == "--output_directory" {
					_ = os.WriteFile(filepath.Join(args[i+1], "report.json"), fixture, 0o600)
				}
			}
			return nil
		}, nil)

	loader, err := New(cfg, execManager, logger)
	require.NoError(t, err)
	report, err := loader.Load(context.Background())
	require.NoError(t, err)
	execManager.AssertExpectations(t)

	// xcov already applied target selection
	assert.Len(t, report.Targets, 2)
	assert.Equal(t, []string{
		"--scheme", "App",
		"--workspace", "App.xcworkspace",
		"--exclude_targets", "AppTests.xctest,Pods",
	}, gotArgs[:6])
	assert.Equal(t, []string{"--json_report", "--skip_slack"}, gotArgs[8:])
	assert.NotContains(t, gotArgs, "--minimum_coverage_percentage")
	assert.NotContains(t, gotArgs, "--verbose")
}

func Test_xcovLoader_ToolUnavailable(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	cfg := testutils.GetConfig()
	cfg.Source = core.SourceXcov

	execManager := new(mocks.ExecutionManager)
	execManager.On("LookPath", "xcov", "").Return("", errs.ToolUnavailable("xcov", errors.New("not found")))

	loader, err := New(cfg, execManager, logger)
	require.NoError(t, err)
	_, err = loader.Load(context.Background())
	assert.True(t, errors.Is(err, errs.ErrToolUnavailable))
	execManager.AssertNotCalled(t, "Output")
}

func Test_xcovLoader_MissingReport(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	cfg := testutils.GetConfig()
	cfg.Source = core.SourceXcov

	execManager := new(mocks.ExecutionManager)
	execManager.On("LookPath", "xcov", "").Return("/usr/local/bin/xcov", nil)
	execManager.On("Output", mock.Anything, core.CommandXcov, "", "/usr/local/bin/xcov",
		"--output_directory", mock.Anything, "--json_report", "--skip_slack").Return(nil, nil)

	loader, err := New(cfg, execManager, logger)
	require.NoError(t, err)
	_, err = loader.Load(context.Background())
	assert.True(t, errors.Is(err, errs.ErrRetrieval), "got %v", err)
}

func Test_xccovLoader_Load(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	fixture, err := testutils.LoadFile(testutils.XccovReportPath)
	require.NoError(t, err)

	bundle := filepath.Join(t.TempDir(), "Test.xcresult")
	require.NoError(t, os.Mkdir(bundle, 0o755))

	cfg := testutils.GetConfig()
	cfg.Source = core.SourceXccov
	cfg.XccovFileDirectPath = bundle
	cfg.IncludeTargets = []string{"App"}

	execManager := new(mocks.ExecutionManager)
	execManager.On("LookPath", "xcrun", "").Return("/usr/bin/xcrun", nil)
	execManager.On("Output", mock.Anything, core.CommandXccov, "", "/usr/bin/xcrun",
		"xccov", "view", "--report", "--json", bundle).Return(fixture, nil)

	loader, err := New(cfg, execManager, logger)
	require.NoError(t, err)
	report, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Targets, 1)
	assert.Len(t, report.Targets[0].Files, 2)
	execManager.AssertExpectations(t)
}

func Test_xccovLoader_Timeout(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	bundle := t.TempDir()

	cfg := testutils.GetConfig()
	cfg.Source = core.SourceXccov
	cfg.XccovFileDirectPath = bundle

	execManager := new(mocks.ExecutionManager)
	execManager.On("LookPath", "xcrun", "").Return("/usr/bin/xcrun", nil)
	execManager.On("Output", mock.Anything, core.CommandXccov, "", "/usr/bin/xcrun",
		"xccov", "view", "--report", "--json", bundle).
		Return(nil, errs.Retrieval("xccov timed out after 10m0s", context.DeadlineExceeded))

	loader, err := New(cfg, execManager, logger)
	require.NoError(t, err)
	_, err = loader.Load(context.Background())
	assert.True(t, errors.Is(err, errs.ErrRetrieval))
	assert.Contains(t, err.Error(), "timed out")
}
