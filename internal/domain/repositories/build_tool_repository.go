package repositories

import (
	"context"

	"github.com/rios0rios0/depdiff/internal/domain/entities"
)

// BuildToolRepository runs the build tool. An empty workDir means the current
// checkout.
type BuildToolRepository interface {
	// ListProjects returns the raw project listing. A non-zero exit is an error.
	ListProjects(ctx context.Context, workDir string) (string, error)

	// ResolveDependencies prints the dependency tree of task for configuration.
	// A process that ran but exited non-zero is not an error: inspect the result.
	ResolveDependencies(
		ctx context.Context, workDir, task, configuration string,
	) (entities.ExecutionResult, error)
}
