//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/depdiff/internal/domain/entities"
	"github.com/rios0rios0/depdiff/internal/domain/repositories"
)

// ResolveCall records one ResolveDependencies invocation.
type ResolveCall struct {
	WorkDir       string
	Task          string
	Configuration string
}

// StubBuildToolRepository returns canned build tool output. Results are keyed
// by work directory, then by "task configuration".
type StubBuildToolRepository struct {
	ProjectsOutput map[string]string
	ListErr        error

	Results    map[string]map[string]entities.ExecutionResult
	ResolveErr map[string]error

	ListCalls    []string
	ResolveCalls []ResolveCall
}

var _ repositories.BuildToolRepository = (*StubBuildToolRepository)(nil)

func (s *StubBuildToolRepository) ListProjects(_ context.Context, workDir string) (string, error) {
	s.ListCalls = append(s.ListCalls, workDir)
	if s.ListErr != nil {
		return "", s.ListErr
	}
	return s.ProjectsOutput[workDir], nil
}

func (s *StubBuildToolRepository) ResolveDependencies(
	_ context.Context, workDir, task, configuration string,
) (entities.ExecutionResult, error) {
	s.ResolveCalls = append(s.ResolveCalls, ResolveCall{WorkDir: workDir, Task: task, Configuration: configuration})
	key := task + " " + configuration
	if err, ok := s.ResolveErr[key]; ok {
		return entities.ExecutionResult{}, err
	}
	if byKey, ok := s.Results[workDir]; ok {
		if result, found := byKey[key]; found {
			return result, nil
		}
	}
	return entities.ExecutionResult{Stdout: "+--- none\n"}, nil
}
