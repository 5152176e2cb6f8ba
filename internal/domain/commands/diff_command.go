package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depdiff/internal/domain/entities"
	"github.com/rios0rios0/depdiff/internal/domain/repositories"
)

// Diff compares the current snapshots with their base counterparts.
type Diff interface {
	Execute(ctx context.Context, opts DiffOptions) ([]entities.DiffResult, error)
}

// DiffOptions points at the installed diff tool and both snapshot trees.
type DiffOptions struct {
	ToolPath   string
	CurrentDir string
	BaseDir    string
}

// DiffCommand walks the current snapshot tree and runs the diff tool against
// every snapshot that also exists for the base revision.
type DiffCommand struct {
	diffTool repositories.DiffToolRepository
}

// NewDiffCommand creates a new DiffCommand.
func NewDiffCommand(diffTool repositories.DiffToolRepository) *DiffCommand {
	return &DiffCommand{diffTool: diffTool}
}

// Execute returns the non-empty diffs in lexical path order. Snapshots present
// on one side only are skipped.
func (it *DiffCommand) Execute(ctx context.Context, opts DiffOptions) ([]entities.DiffResult, error) {
	var results []entities.DiffResult

	walkErr := filepath.WalkDir(opts.CurrentDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || filepath.Ext(path) != entities.SnapshotExtension {
			return nil
		}

		basePath := entities.CounterpartSnapshotPath(path, opts.BaseDir)
		if _, statErr := os.Stat(basePath); statErr != nil {
			if errors.Is(statErr, fs.ErrNotExist) {
				logger.Debugf("No base snapshot for %s", path)
				return nil
			}
			return statErr
		}

		output, diffErr := it.diffTool.Diff(ctx, opts.ToolPath, basePath, path)
		if diffErr != nil {
			return diffErr
		}
		if output == "" {
			return nil
		}

		results = append(results, entities.DiffResult{
			Project:       entities.ProjectFromSnapshotPath(path),
			Configuration: entities.ConfigurationFromSnapshotPath(path),
			Result:        output,
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to diff dependency snapshots: %w", walkErr)
	}

	logger.Infof("Found %d dependency difference(s)", len(results))
	return results, nil
}
