// Package workspace manages the scratch directory that holds converted
// assets for one scene.
//
// The directory is created lazily on the first [Workspace.Dir] call, so
// scenes that need no conversion never touch the filesystem. [Workspace.Close]
// removes it exactly once; a directory that has already disappeared is
// reported as a warning, never as an error.
package workspace

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fjscene/pkg/errors"
)

// pattern is the os.MkdirTemp name pattern for scratch directories.
const pattern = "fjscene-"

// Workspace is a lazily created scratch directory.
// It is not safe for concurrent use.
type Workspace struct {
	root    string
	path    string
	created bool
	removed bool
	logger  *log.Logger
}

// New returns a workspace that will be created under root, or under the
// system temporary directory if root is empty. Nothing is created yet.
func New(root string, logger *log.Logger) *Workspace {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Workspace{root: root, logger: logger}
}

// Dir returns the workspace directory, creating it on first use.
func (w *Workspace) Dir() (string, error) {
	if w.removed {
		return "", errors.New(errors.ErrCodeWorkspace, "workspace %s already removed", w.path)
	}
	if w.created {
		return w.path, nil
	}

	dir, err := os.MkdirTemp(w.root, pattern)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeWorkspace, err, "create temp directory")
	}
	w.path = dir
	w.created = true
	w.logger.Info("Creating temp directory", "path", dir)
	return dir, nil
}

// Path returns the directory path, or "" if it has not been created.
func (w *Workspace) Path() string { return w.path }

// Created reports whether the directory has been created.
func (w *Workspace) Created() bool { return w.created }

// Close removes the directory and its contents. It is a no-op if the
// directory was never created or was already closed. If the directory was
// removed by someone else, Close logs and returns a WORKSPACE_TEARDOWN
// warning; the error return is reserved for removal failures.
func (w *Workspace) Close() (warning *errors.Error, err error) {
	if !w.created || w.removed {
		return nil, nil
	}
	w.removed = true

	if _, statErr := os.Stat(w.path); os.IsNotExist(statErr) {
		warning = errors.New(errors.ErrCodeWorkspaceTeardown,
			"temp directory %s was removed while rendering", w.path)
		w.logger.Warn("No such file or directory; temp directory was removed while rendering", "path", w.path)
		return warning, nil
	}

	if err := os.RemoveAll(w.path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeWorkspace, err, "remove %s", w.path)
	}
	w.logger.Info("Deleting temp directory", "path", w.path)
	return nil, nil
}
