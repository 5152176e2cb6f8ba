//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/depdiff/internal/domain/commands"
	"github.com/rios0rios0/depdiff/internal/domain/entities"
	"github.com/rios0rios0/depdiff/internal/domain/repositories"
)

// SpyReportCommand records what would have been published.
type SpyReportCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	ChecksURL        string
	LastProvider     repositories.ProviderRepository
	LastPullRequest  entities.PullRequestContext
	LastResults      []entities.DiffResult
	LastOpts         commands.ReportOptions
}

var _ commands.Report = (*SpyReportCommand)(nil)

func (s *SpyReportCommand) Execute(
	_ context.Context,
	provider repositories.ProviderRepository,
	pr entities.PullRequestContext,
	results []entities.DiffResult,
	opts commands.ReportOptions,
) (string, error) {
	s.ExecuteCallCount++
	s.LastProvider = provider
	s.LastPullRequest = pr
	s.LastResults = results
	s.LastOpts = opts
	return s.ChecksURL, s.ExecuteErr
}
