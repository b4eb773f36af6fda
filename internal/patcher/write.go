//go:build !windows

package patcher

import (
	"path/filepath"

	"github.com/google/renameio/v2"
)

// WriteFileAtomic replaces path with data using a pending file in the same
// directory that is fsynced and renamed over the original. The pending file
// is removed if anything fails before the rename, so the original content is
// either fully replaced or untouched. Existing permission bits are kept, and
// an existing file that is not writable is left alone.
func WriteFileAtomic(path string, data []byte) error {
	if err := checkWritable(path); err != nil {
		return err
	}

	pendingFile, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return &IOError{Op: "create temp file for", Path: path, Err: err}
	}
	defer pendingFile.Cleanup() //nolint:errcheck // no-op after a successful replace

	if _, err := pendingFile.Write(data); err != nil {
		return &IOError{Op: "write", Path: pendingFile.Name(), Err: err}
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return &IOError{Op: "replace", Path: path, Err: err}
	}
	return nil
}
