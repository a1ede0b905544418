package utils

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ComputeChecksum computes the sha256 hash of the given file.
func ComputeChecksum(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

// GenerateUUID generates uuid v4 without dashes.
func GenerateUUID() string {
	uuidV4 := uuid.New() // panics on error
	return strings.ReplaceAll(uuidV4.String(), "-", "")
}

// NormalizePath returns p as a clean slash separated path relative to repoRoot.
// Absolute paths outside repoRoot are returned cleaned but otherwise unchanged.
func NormalizePath(p, repoRoot string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) && repoRoot != "" {
		root, err := filepath.Abs(repoRoot)
		if err == nil {
			if rel, err := filepath.Rel(root, p); err == nil && !EscapesRoot(rel) {
				p = rel
			}
		}
	}
	return strings.TrimPrefix(path.Clean(filepath.ToSlash(p)), "./")
}

// EscapesRoot reports whether rel, a path made relative with filepath.Rel, leaves its root.
func EscapesRoot(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Percent formats a ratio in [0,1] as a percentage with two decimals.
func Percent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}
