package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depdiff/internal/domain/entities"
	"github.com/rios0rios0/depdiff/internal/domain/repositories"
)

const (
	snapshotDirMode  = 0o755
	snapshotFileMode = 0o644
)

// Generate resolves the dependency trees of one revision into snapshot files.
type Generate interface {
	Execute(ctx context.Context, opts GenerateOptions) ([]entities.SnapshotOutcome, error)
}

// GenerateOptions selects the revision and where its snapshots go.
type GenerateOptions struct {
	Projects entities.ProjectOptions
	// OutDir receives <project>/<configuration>.txt files.
	OutDir string
	// WorkDir is the checkout to build; empty means the current directory.
	WorkDir string
}

// GenerateCommand lists the Gradle projects of a checkout and writes one
// snapshot per (project, configuration) pair.
type GenerateCommand struct {
	buildTool repositories.BuildToolRepository
	parser    entities.ProjectParser
}

// NewGenerateCommand creates a new GenerateCommand.
func NewGenerateCommand(
	buildTool repositories.BuildToolRepository,
	parser entities.ProjectParser,
) *GenerateCommand {
	return &GenerateCommand{
		buildTool: buildTool,
		parser:    parser,
	}
}

// Execute returns one outcome per attempted pair, in task then configuration
// order. A pair whose task fails is skipped; only listing failures, file
// system errors and cancellation stop the generation.
func (it *GenerateCommand) Execute(
	ctx context.Context,
	opts GenerateOptions,
) ([]entities.SnapshotOutcome, error) {
	label := entities.RevisionLabel(opts.WorkDir)

	output, err := it.buildTool.ListProjects(ctx, opts.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s projects: %w", label, err)
	}

	projects, err := entities.FilterProjects(
		it.parser.Parse(output),
		opts.Projects.IncludeProjectRegex,
		opts.Projects.ExcludeProjectRegex,
	)
	if err != nil {
		return nil, err
	}
	logger.Infof("[%s] Projects: %v", label, projects)

	tasks := entities.BuildTasks(projects, opts.Projects.IncludeRootProject)
	outcomes := make([]entities.SnapshotOutcome, 0, len(tasks)*len(opts.Projects.Configurations))

	for _, task := range tasks {
		project := entities.ProjectOf(task)
		if mkdirErr := os.MkdirAll(filepath.Join(opts.OutDir, project), snapshotDirMode); mkdirErr != nil {
			return nil, fmt.Errorf("failed to create snapshot directory: %w", mkdirErr)
		}

		for _, configuration := range opts.Projects.Configurations {
			outcome, snapshotErr := it.snapshot(ctx, label, opts, task, configuration)
			if snapshotErr != nil {
				return nil, snapshotErr
			}
			outcomes = append(outcomes, outcome)
		}
	}

	return outcomes, nil
}

func (it *GenerateCommand) snapshot(
	ctx context.Context,
	label string,
	opts GenerateOptions,
	task, configuration string,
) (entities.SnapshotOutcome, error) {
	project := entities.ProjectOf(task)
	outcome := entities.SnapshotOutcome{
		Project:       project,
		Configuration: configuration,
		Path:          entities.SnapshotPath(opts.OutDir, project, configuration),
	}

	logger.Infof("[%s] Resolving %s --configuration %s", label, task, configuration)
	result, err := it.buildTool.ResolveDependencies(ctx, opts.WorkDir, task, configuration)
	if err != nil {
		if ctx.Err() != nil {
			return outcome, ctx.Err()
		}
		logger.Warnf("[%s] Skipping %s (%s): %v", label, project, configuration, err)
		return outcome, nil
	}
	if !result.Succeeded() {
		logger.Warnf("[%s] Skipping %s (%s): exit code %d", label, project, configuration, result.ExitCode)
		logger.Debugf("[%s] %s", label, result.Stderr)
		return outcome, nil
	}
	logger.Debugf("[%s] %s", label, result.Stdout)

	if writeErr := os.WriteFile(outcome.Path, []byte(result.Stdout), snapshotFileMode); writeErr != nil {
		return outcome, fmt.Errorf("failed to write snapshot %q: %w", outcome.Path, writeErr)
	}
	outcome.Written = true
	return outcome, nil
}
