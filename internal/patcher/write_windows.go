//go:build windows

package patcher

import (
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to a temp file beside path and renames it over
// the original. renameio does not support Windows, so this uses the plain
// temp file + rename pattern.
func WriteFileAtomic(path string, data []byte) error {
	if err := checkWritable(path); err != nil {
		return err
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &IOError{Op: "create temp file for", Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath) // Best effort cleanup
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return &IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &IOError{Op: "sync", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Op: "close", Path: tmpPath, Err: err}
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return &IOError{Op: "chmod", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &IOError{Op: "replace", Path: path, Err: err}
	}
	committed = true
	return nil
}
