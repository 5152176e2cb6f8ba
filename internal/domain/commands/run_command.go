package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depdiff/internal/domain/entities"
	"github.com/rios0rios0/depdiff/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/depdiff/internal/infrastructure/repositories"
)

const defaultProvider = "github"

// Run is the interface for the run command (the whole action).
type Run interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		pr *entities.PullRequestContext,
		opts RunOptions,
	) (*RunResult, error)
}

// RunOptions holds runtime options for a single run.
type RunOptions struct {
	DryRun bool
}

// RunResult is what a run produced. ChecksURL is empty on dry runs.
type RunResult struct {
	Workspace *entities.Workspace
	Results   []entities.DiffResult
	Output    entities.ChecksOutput
	ChecksURL string
}

// HasDiff reports whether any dependency tree changed.
func (r *RunResult) HasDiff() bool {
	return len(r.Results) > 0
}

// RunCommand orchestrates the pipeline:
// clone base -> snapshot current and base -> diff -> report.
type RunCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
	vcs              repositories.VCSRepository
	diffTool         repositories.DiffToolRepository
	generate         Generate
	diff             Diff
	report           Report
}

// NewRunCommand creates a new RunCommand.
func NewRunCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	vcs repositories.VCSRepository,
	diffTool repositories.DiffToolRepository,
	generate Generate,
	diff Diff,
	report Report,
) *RunCommand {
	return &RunCommand{
		providerRegistry: providerRegistry,
		vcs:              vcs,
		diffTool:         diffTool,
		generate:         generate,
		diff:             diff,
		report:           report,
	}
}

// Execute runs the whole pipeline for pr. Any failure aborts the run before
// something is published.
func (it *RunCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	pr *entities.PullRequestContext,
	opts RunOptions,
) (*RunResult, error) {
	if pr == nil {
		return nil, entities.ErrNoPullRequest
	}
	if !opts.DryRun && settings.Token == "" {
		return nil, errors.New("no token configured; set the token input or GITHUB_TOKEN")
	}

	var provider repositories.ProviderRepository
	if !opts.DryRun {
		var err error
		provider, err = it.providerRegistry.Get(defaultProvider, settings.Token, pr.APIURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create provider: %w", err)
		}
	}

	workspace, err := entities.NewWorkspace(settings.Environment.RunnerTemp)
	if err != nil {
		return nil, err
	}
	logger.Infof("Workspace: %s", workspace.Root)

	toolPath, err := it.diffTool.Install(ctx, settings.ToolVersion, workspace.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to install dependency-tree-diff: %w", err)
	}

	if cloneErr := it.cloneBase(ctx, settings.Token, pr, workspace); cloneErr != nil {
		return nil, cloneErr
	}

	projects := settings.ProjectOptions()
	if _, genErr := it.generate.Execute(ctx, GenerateOptions{
		Projects: projects,
		OutDir:   workspace.CurrentDependencies,
	}); genErr != nil {
		return nil, genErr
	}
	if _, genErr := it.generate.Execute(ctx, GenerateOptions{
		Projects: projects,
		OutDir:   workspace.BaseDependencies,
		WorkDir:  workspace.BaseRepo,
	}); genErr != nil {
		return nil, genErr
	}

	results, err := it.diff.Execute(ctx, DiffOptions{
		ToolPath:   toolPath,
		CurrentDir: workspace.CurrentDependencies,
		BaseDir:    workspace.BaseDependencies,
	})
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		Workspace: workspace,
		Results:   results,
		Output:    entities.NewChecksOutput(results),
	}

	if opts.DryRun {
		logger.Info("[dry-run] Skipping report, check run output follows")
		logger.Info(result.Output.Summary)
		if result.Output.Text != nil {
			logger.Info(*result.Output.Text)
		}
		return result, nil
	}

	result.ChecksURL, err = it.report.Execute(ctx, provider, *pr, results, ReportOptions{
		PostPRComment: settings.PostPRComment,
		UpdatePRBody:  settings.UpdatePRBody,
		AssignLabel:   settings.AssignLabel,
		LabelName:     settings.LabelName,
	})
	if err != nil {
		return nil, err
	}
	logger.Infof("Report published: %s", result.ChecksURL)

	return result, nil
}

func (it *RunCommand) cloneBase(
	ctx context.Context,
	token string,
	pr *entities.PullRequestContext,
	workspace *entities.Workspace,
) error {
	gitURL, err := pr.GitURL(token)
	if err != nil {
		return err
	}
	if cloneErr := it.vcs.Clone(ctx, gitURL, pr.BaseRef, workspace.BaseRepo); cloneErr != nil {
		return cloneErr
	}
	if checkoutErr := it.vcs.Checkout(ctx, workspace.BaseRepo, pr.BaseSHA); checkoutErr != nil {
		return fmt.Errorf("failed to checkout base revision: %w", checkoutErr)
	}
	return nil
}
