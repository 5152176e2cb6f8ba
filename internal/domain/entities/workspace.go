package entities

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	BaseRepoDirName            = "base-repo"
	BaseDependenciesDirName    = "base-dependencies"
	CurrentDependenciesDirName = "current-dependencies"

	workspacePattern = "depdiff-*"
	workspaceDirMode = 0o755
)

// Workspace is the directory tree owned by a single run. It is never reused
// and its removal is left to the runner.
type Workspace struct {
	Root                string
	BaseRepo            string
	BaseDependencies    string
	CurrentDependencies string
}

// NewWorkspace creates a fresh workspace below parent, or below the OS
// temporary directory when parent is empty.
func NewWorkspace(parent string) (*Workspace, error) {
	if parent == "" {
		parent = os.TempDir()
	}
	if err := os.MkdirAll(parent, workspaceDirMode); err != nil {
		return nil, fmt.Errorf("failed to create temp directory %q: %w", parent, err)
	}

	root, err := os.MkdirTemp(parent, workspacePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	workspace := &Workspace{
		Root:                root,
		BaseRepo:            filepath.Join(root, BaseRepoDirName),
		BaseDependencies:    filepath.Join(root, BaseDependenciesDirName),
		CurrentDependencies: filepath.Join(root, CurrentDependenciesDirName),
	}
	for _, dir := range []string{workspace.BaseRepo, workspace.BaseDependencies, workspace.CurrentDependencies} {
		if mkdirErr := os.MkdirAll(dir, workspaceDirMode); mkdirErr != nil {
			return nil, fmt.Errorf("failed to create %q: %w", dir, mkdirErr)
		}
	}
	return workspace, nil
}

// RevisionLabel names the revision built in workDir for log prefixes.
func RevisionLabel(workDir string) string {
	if workDir == "" {
		return "current"
	}
	return "base"
}
