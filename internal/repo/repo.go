// Package repo locates the git worktree that contains the working directory.
// Relative target paths are anchored at the worktree root so the tool behaves
// the same when invoked from any subdirectory of the project.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when start is not inside a git worktree.
var ErrNotRepository = errors.New("not a git repository")

// Root returns the worktree root of the repository containing start.
// If start is empty, the current working directory is used.
func Root(start string) (string, error) {
	if start == "" {
		var err error
		start, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
	}

	r, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%s: %w", start, ErrNotRepository)
		}
		return "", fmt.Errorf("opening repository at %s: %w", start, err)
	}

	worktree, err := r.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

// ResolvePath anchors a relative path at the repository root containing
// start, or at start itself when it is not inside a repository.
// Absolute paths are returned cleaned but otherwise unchanged.
func ResolvePath(path, start string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		start = cwd
	}

	base := start
	root, err := Root(start)
	switch {
	case err == nil:
		base = root
	case errors.Is(err, ErrNotRepository):
	default:
		return "", err
	}
	return filepath.Join(base, path), nil
}
