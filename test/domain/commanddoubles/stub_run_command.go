//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/depdiff/internal/domain/commands"
	"github.com/rios0rios0/depdiff/internal/domain/entities"
)

// StubRunCommand is a stub implementation of commands.Run.
type StubRunCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           *commands.RunResult
	LastSettings     *entities.Settings
	LastPullRequest  *entities.PullRequestContext
	LastOpts         commands.RunOptions
}

var _ commands.Run = (*StubRunCommand)(nil)

func (s *StubRunCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	pr *entities.PullRequestContext,
	opts commands.RunOptions,
) (*commands.RunResult, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastPullRequest = pr
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Result == nil {
		return &commands.RunResult{Output: entities.NewChecksOutput(nil)}, nil
	}
	return s.Result, nil
}
