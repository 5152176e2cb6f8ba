//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/depdiff/internal/domain/commands"
	"github.com/rios0rios0/depdiff/internal/domain/entities"
)

// StubDiffCommand is a stub implementation of commands.Diff.
type StubDiffCommand struct {
	ExecuteErr error
	Results    []entities.DiffResult
	LastOpts   commands.DiffOptions
}

var _ commands.Diff = (*StubDiffCommand)(nil)

func (s *StubDiffCommand) Execute(_ context.Context, opts commands.DiffOptions) ([]entities.DiffResult, error) {
	s.LastOpts = opts
	return s.Results, s.ExecuteErr
}
