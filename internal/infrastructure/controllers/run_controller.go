package controllers

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sethvargo/go-envconfig"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depdiff/internal/domain/commands"
	"github.com/rios0rios0/depdiff/internal/domain/entities"
	ghRepo "github.com/rios0rios0/depdiff/internal/infrastructure/repositories/github"
)

const appendFileMode = 0o644

// PullRequestLoader builds the pull request context from the runner environment.
type PullRequestLoader func(env entities.ActionsEnvironment) (*entities.PullRequestContext, error)

// RunController handles the "run" subcommand, the entry point of the action.
type RunController struct {
	command  commands.Run
	lookuper envconfig.Lookuper
	loadPR   PullRequestLoader
	stdout   io.Writer
}

// NewRunController creates a new RunController reading the process environment.
func NewRunController(command commands.Run) *RunController {
	return &RunController{
		command:  command,
		lookuper: envconfig.OsLookuper(),
		loadPR:   ghRepo.LoadPullRequestContext,
		stdout:   os.Stdout,
	}
}

// GetBind returns the Cobra command metadata for the run controller.
func (it *RunController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "run",
		Short: "Diff the Gradle dependencies of a pull request",
		Long: `Resolve the Gradle dependency trees of the pull request head and of its
base revision, diff them per project and configuration, and publish the
result as a check run (and optionally a comment, PR body block and label).

Inputs are read from the INPUT_* variables set by GitHub Actions and may be
overridden by a configuration file.`,
	}
}

// Execute runs the action. Failures are reported with the ::error:: workflow
// command and returned so the process exits non-zero.
func (it *RunController) Execute(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	err := it.run(cmd, dryRun)
	if err != nil {
		logger.Errorf("Run failed: %v", err)
		fmt.Fprintf(it.stdout, "::error::%s\n", escapeWorkflowData(err.Error()))
	}
	return err
}

func (it *RunController) run(cmd *cobra.Command, dryRun bool) error {
	settings, err := loadSettings(cmd, it.lookuper)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pr, err := it.loadPR(settings.Environment)
	if err != nil {
		return err
	}
	logger.Infof("Analyzing pull request #%d of %s/%s (%s...%s)",
		pr.Number, pr.Owner(), pr.Name(), pr.BaseSHA, pr.HeadSHA)

	result, err := it.command.Execute(cmd.Context(), settings, pr, commands.RunOptions{DryRun: dryRun})
	if err != nil {
		return err
	}

	return errors.Join(
		writeStepSummary(settings.Environment.StepSummary, result.Output),
		writeOutputs(settings.Environment.OutputPath, result),
	)
}

// writeStepSummary appends the check output to the job summary file, if any.
func writeStepSummary(path string, output entities.ChecksOutput) error {
	if path == "" {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("## " + output.Title + "\n\n")
	sb.WriteString(output.Summary + "\n")
	if output.Text != nil {
		sb.WriteString(*output.Text)
	}
	return appendToFile(path, sb.String())
}

// writeOutputs sets the has-diff and checks-url step outputs, if supported.
func writeOutputs(path string, result *commands.RunResult) error {
	if path == "" {
		return nil
	}
	content := fmt.Sprintf("has-diff=%s\nchecks-url=%s\n", strconv.FormatBool(result.HasDiff()), result.ChecksURL)
	return appendToFile(path, content)
}

func appendToFile(path, content string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, appendFileMode)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer file.Close()

	if _, writeErr := file.WriteString(content); writeErr != nil {
		return fmt.Errorf("failed to write %q: %w", path, writeErr)
	}
	return nil
}

// escapeWorkflowData escapes a workflow command message.
func escapeWorkflowData(message string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(message)
}
