package diffmanager

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/LambdaTest/covgate/testutils"
	"github.com/LambdaTest/covgate/testutils/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_diffManager_ChangedFiles(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)

	dm := NewDiffManager(testutils.FixturePath(testutils.PullRequestDiff), logger)
	changed, err := dm.ChangedFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.NewChangedFileSet("App/a.swift", "App/Renamed.swift", "App/c.swift"), changed)
	assert.False(t, changed.Has("App/old.swift"))
	assert.False(t, changed.Has("App/Legacy.swift"))
}

func Test_diffManager_MissingFile(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)

	_, err = NewDiffManager(filepath.Join(t.TempDir(), "pr.diff"), logger).ChangedFiles(context.Background())
	assert.True(t, errors.Is(err, errs.ErrRetrieval))
}

func TestNew(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	execManager := new(mocks.ExecutionManager)

	tests := []struct {
		name    string
		source  core.ChangeSource
		wantErr error
	}{
		{"git", core.ChangesGit, nil},
		{"github", core.ChangesGitHub, nil},
		{"diff", core.ChangesDiff, nil},
		{"unknown", "svn", errs.ErrUnsupportedChangeSource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testutils.GetConfig()
			cfg.Changes.Source = tt.source
			provider, err := New(context.Background(), cfg, execManager, logger)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, provider)
		})
	}
}

func Test_diffManager_parseDiff(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	dm := &diffManager{path: "pr.diff", logger: logger}

	changed, err := dm.parseDiff("")
	require.NoError(t, err)
	assert.Empty(t, changed)

	tests := []struct {
		name string
		raw  string
		want core.ChangedFileSet
	}{
		{
			name: "pure rename",
			raw: "diff --git a/App/Old.swift b/App/New.swift\nsimilarity index 100%\n" +
				"rename from App/Old.swift\nrename to App/New.swift\n",
			want: core.NewChangedFileSet("App/New.swift"),
		},
		{
			name: "rename with edits",
			raw: "diff --git a/App/Old.swift b/App/New.swift\nsimilarity index 90%\n" +
				"rename from App/Old.swift\nrename to App/New.swift\nindex 3b18e51..a4c2d2f 100644\n" +
				"--- a/App/Old.swift\n+++ b/App/New.swift\n@@ -1 +1,2 @@\n import UIKit\n+import Combine\n",
			want: core.NewChangedFileSet("App/New.swift"),
		},
		{
			name: "rename followed by deletion",
			raw: "diff --git a/App/Old.swift b/App/New.swift\nsimilarity index 100%\n" +
				"rename from App/Old.swift\nrename to App/New.swift\n" +
				"diff --git a/App/Gone.swift b/App/Gone.swift\ndeleted file mode 100644\nindex 9daeafb..0000000\n" +
				"--- a/App/Gone.swift\n+++ /dev/null\n@@ -1 +0,0 @@\n-struct Gone {}\n",
			want: core.NewChangedFileSet("App/New.swift"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dm.parseDiff(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = dm.parseDiff("--- a/App/a.swift\n+++ b/App/a.swift\n@@ -1 +1 @@\n-a\n+b\n")
	assert.True(t, errors.Is(err, errs.ErrRetrieval))
}
