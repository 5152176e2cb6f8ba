package gradle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depdiff/internal/domain/entities"
	"github.com/rios0rios0/depdiff/internal/domain/repositories"
)

const (
	gradleWrapper     = "./gradlew"
	projectsTask      = "projects"
	configurationFlag = "--configuration"
)

// BuildToolRepository runs the Gradle wrapper of the checked-out project.
type BuildToolRepository struct {
	wrapper string
}

// NewBuildToolRepository creates a BuildToolRepository using ./gradlew.
func NewBuildToolRepository() repositories.BuildToolRepository {
	return &BuildToolRepository{wrapper: gradleWrapper}
}

// ListProjects runs `./gradlew projects` and returns its standard output.
func (it *BuildToolRepository) ListProjects(ctx context.Context, workDir string) (string, error) {
	result, err := it.run(ctx, workDir, projectsTask)
	if err != nil {
		return "", err
	}
	if !result.Succeeded() {
		return "", fmt.Errorf(
			"'%s %s' exited with code %d: %s",
			it.wrapper, projectsTask, result.ExitCode, strings.TrimSpace(result.Stderr),
		)
	}
	return result.Stdout, nil
}

// ResolveDependencies runs `./gradlew <task> --configuration <configuration>`.
func (it *BuildToolRepository) ResolveDependencies(
	ctx context.Context,
	workDir, task, configuration string,
) (entities.ExecutionResult, error) {
	return it.run(ctx, workDir, task, configurationFlag, configuration)
}

// run executes the wrapper and reports non-zero exits through the result
// instead of an error.
func (it *BuildToolRepository) run(
	ctx context.Context,
	workDir string,
	args ...string,
) (entities.ExecutionResult, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, it.wrapper, args...)
	cmd.Dir = workDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := entities.ExecutionResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		result.ExitCode = exitErr.ExitCode()
		logger.Debugf("'%s %s' exited with code %d", it.wrapper, strings.Join(args, " "), result.ExitCode)
	default:
		return result, fmt.Errorf("failed to run '%s %s': %w", it.wrapper, strings.Join(args, " "), err)
	}

	return result, nil
}
