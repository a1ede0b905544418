package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeChecksum(t *testing.T) {
	file := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(file, []byte("abc"), 0o600))

	got, err := ComputeChecksum(file)
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", got)

	_, err = ComputeChecksum(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestGenerateUUID(t *testing.T) {
	id := GenerateUUID()
	assert.Len(t, id, 32)
	assert.NotContains(t, id, "-")
	assert.NotEqual(t, id, GenerateUUID())
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		repoRoot string
		want     string
	}{
		{"empty", "", "/repo", ""},
		{"relative", "App/a.swift", "/repo", "App/a.swift"},
		{"dot prefix", "./App/../App/a.swift", "/repo", "App/a.swift"},
		{"absolute inside root", "/repo/App/a.swift", "/repo", "App/a.swift"},
		{"absolute outside root", "/other/App/a.swift", "/repo", "/other/App/a.swift"},
		{"dot dot named directory inside root", "/repo/..data/x.swift", "/repo", "..data/x.swift"},
		{"sibling of root", "/repo2/App/a.swift", "/repo", "/repo2/App/a.swift"},
		{"no root", "/repo/App/a.swift", "", "/repo/App/a.swift"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.path, tt.repoRoot))
		})
	}
}

func TestEscapesRoot(t *testing.T) {
	sep := string(filepath.Separator)
	assert.True(t, EscapesRoot(".."))
	assert.True(t, EscapesRoot(".."+sep+"other"))
	assert.False(t, EscapesRoot("..data"+sep+"x.swift"))
	assert.False(t, EscapesRoot("."))
	assert.False(t, EscapesRoot("App"+sep+"a.swift"))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "60.00%", Percent(0.6))
	assert.Equal(t, "0.00%", Percent(0))
	assert.Equal(t, "100.00%", Percent(1))
}
