//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rios0rios0/depdiff/internal/domain/repositories"
)

// DiffCall records one Diff invocation.
type DiffCall struct {
	ToolPath string
	OldPath  string
	NewPath  string
}

// StubDiffToolRepository installs nothing and diffs snapshots by comparing
// their contents: equal files produce no output.
type StubDiffToolRepository struct {
	InstallErr       error
	DiffErr          error
	InstalledVersion string
	InstalledDir     string
	DiffCalls        []DiffCall
}

var _ repositories.DiffToolRepository = (*StubDiffToolRepository)(nil)

func (s *StubDiffToolRepository) Install(_ context.Context, version, dir string) (string, error) {
	s.InstalledVersion = version
	s.InstalledDir = dir
	if s.InstallErr != nil {
		return "", s.InstallErr
	}
	return filepath.Join(dir, "dependency-tree-diff.jar"), nil
}

func (s *StubDiffToolRepository) Diff(_ context.Context, toolPath, oldPath, newPath string) (string, error) {
	s.DiffCalls = append(s.DiffCalls, DiffCall{ToolPath: toolPath, OldPath: oldPath, NewPath: newPath})
	if s.DiffErr != nil {
		return "", s.DiffErr
	}

	oldContent, err := os.ReadFile(oldPath)
	if err != nil {
		return "", err
	}
	newContent, err := os.ReadFile(newPath)
	if err != nil {
		return "", err
	}
	if string(oldContent) == string(newContent) {
		return "", nil
	}
	return "-" + string(oldContent) + "+" + string(newContent), nil
}
