package controllers

import (
	"io"

	"github.com/sethvargo/go-envconfig"

	"github.com/rios0rios0/depdiff/internal/domain/commands"
)

// NewRunControllerWith creates a RunController with injected environment and output.
func NewRunControllerWith(
	command commands.Run,
	lookuper envconfig.Lookuper,
	loadPR PullRequestLoader,
	stdout io.Writer,
) *RunController {
	return &RunController{command: command, lookuper: lookuper, loadPR: loadPR, stdout: stdout}
}

// NewSnapshotControllerWith creates a SnapshotController with an injected environment.
func NewSnapshotControllerWith(command commands.Generate, lookuper envconfig.Lookuper) *SnapshotController {
	return &SnapshotController{command: command, lookuper: lookuper}
}

// EscapeWorkflowData exports escapeWorkflowData for testing.
var EscapeWorkflowData = escapeWorkflowData //nolint:gochecknoglobals // test export
