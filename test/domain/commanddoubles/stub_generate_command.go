//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/depdiff/internal/domain/commands"
	"github.com/rios0rios0/depdiff/internal/domain/entities"
)

// StubGenerateCommand is a stub implementation of commands.Generate.
type StubGenerateCommand struct {
	ExecuteErr error
	Outcomes   []entities.SnapshotOutcome
	Calls      []commands.GenerateOptions
}

var _ commands.Generate = (*StubGenerateCommand)(nil)

func (s *StubGenerateCommand) Execute(
	_ context.Context,
	opts commands.GenerateOptions,
) ([]entities.SnapshotOutcome, error) {
	s.Calls = append(s.Calls, opts)
	return s.Outcomes, s.ExecuteErr
}
