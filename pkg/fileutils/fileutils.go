package fileutils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/global"
	"github.com/LambdaTest/covgate/pkg/lumber"
	"github.com/LambdaTest/covgate/pkg/utils"
)

// WriteAtomic copies reader into the file named dst. The data is written to a
// temporary file in the same directory and renamed into place once synced.
func WriteAtomic(dst string, reader io.Reader) (err error) {
	if err = os.MkdirAll(filepath.Dir(dst), global.DirectoryPermissions); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, reader); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(global.FilePermissions); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

// CheckIfExists checks if file or directory exists in the given path.
func CheckIfExists(path string) (bool, error) {
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// localStore keeps archived artifacts in a directory on disk.
type localStore struct {
	dir    string
	logger lumber.Logger
}

// NewLocalStore returns a BlobStore rooted at dir.
func NewLocalStore(dir string, logger lumber.Logger) core.BlobStore {
	return &localStore{dir: dir, logger: logger}
}

// Create writes reader to dir/path. Paths escaping dir are rejected.
func (s *localStore) Create(ctx context.Context, path string, reader io.Reader, mimeType string) (string, error) {
	root, err := filepath.Abs(s.dir)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(root, filepath.FromSlash(path))
	if rel, err := filepath.Rel(root, dst); err != nil || utils.EscapesRoot(rel) {
		return "", fmt.Errorf("blob path %s escapes the archive directory", path)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := WriteAtomic(dst, reader); err != nil {
		s.logger.Errorf("failed to write %s blob to %s, error: %v", mimeType, dst, err)
		return "", err
	}
	return dst, nil
}
