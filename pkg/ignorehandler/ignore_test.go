package ignorehandler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/LambdaTest/covgate/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnore_XcovEntries(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	h, err := Parse([]byte("- .*Controller.*\n- .*Mock\\.swift\n- AppDelegate.swift\n- Pods\n- \"Legacy[\"\n"), logger)
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"App/MyController.swift", true},
		{"App/NetworkMock.swift", true},
		{"App/NetworkMocks.swift", false},
		{"App/AppDelegate.swift", true},
		{"Pods/Alamofire/Source/Request.swift", true},
		{"pods/Other.swift", true},
		{"App/PodsHelper.swift", false},
		{"Legacy[/Old.m", true},
		{"./App/Model/User.swift", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, h.ShouldIgnore(tt.path))
		})
	}
}

func TestShouldIgnore_Globs(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	h, err := New(filepath.Join(t.TempDir(), ".xcovignore"), []string{"Vendor/**", "*Generated.swift", "./App/Legacy/*.m"}, logger)
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"Vendor/Kit/Source/Request.swift", true},
		{"App/Model/UserGenerated.swift", true},
		{"App/Legacy/Old.m", true},
		{"App/Legacy/Nested/Old.m", false},
		{"App/VendorHelper.swift", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, h.ShouldIgnore(tt.path))
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)

	_, err = Parse([]byte("key: value"), logger)
	assert.ErrorIs(t, err, errs.ErrConfig)

	_, err = New(filepath.Join(t.TempDir(), ".xcovignore"), []string{"App/["}, logger)
	assert.ErrorIs(t, err, errs.ErrConfig)
}

func TestNew_MissingFile(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	h, err := New(filepath.Join(t.TempDir(), ".xcovignore"), nil, logger)
	require.NoError(t, err)
	assert.False(t, h.ShouldIgnore("App/a.swift"))
}

func TestApply(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), ".xcovignore")
	require.NoError(t, os.WriteFile(file, []byte("- .*Tests\\.swift\n"), 0o600))
	h, err := New(file, []string{"**/*Stub.swift"}, logger)
	require.NoError(t, err)

	report := &core.CoverageReport{Targets: []core.Target{{
		Name: "App",
		Files: []core.CoverageFile{
			{Name: "a.swift", Location: "App/a.swift"},
			{Name: "aTests.swift", Location: "AppTests/aTests.swift"},
			{Name: "NetStub.swift", Location: "App/Support/NetStub.swift"},
		},
	}}}
	removed := Apply(h, report, func(f core.CoverageFile) string { return f.Location })
	assert.Equal(t, 2, removed)
	require.Len(t, report.Targets[0].Files, 1)
	assert.Equal(t, "a.swift", report.Targets[0].Files[0].Name)
}
