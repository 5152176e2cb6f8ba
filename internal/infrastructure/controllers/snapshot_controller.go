package controllers

import (
	"fmt"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depdiff/internal/domain/commands"
	"github.com/rios0rios0/depdiff/internal/domain/entities"
)

const defaultSnapshotDir = "build/dependency-snapshots"

// SnapshotController handles the "snapshot" subcommand: it writes the
// dependency snapshots of the current checkout, nothing else.
type SnapshotController struct {
	command  commands.Generate
	lookuper envconfig.Lookuper
}

// NewSnapshotController creates a new SnapshotController.
func NewSnapshotController(command commands.Generate) *SnapshotController {
	return &SnapshotController{
		command:  command,
		lookuper: envconfig.OsLookuper(),
	}
}

// GetBind returns the Cobra command metadata for the snapshot controller.
func (it *SnapshotController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "snapshot [out-dir]",
		Short: "Write the dependency snapshots of the current checkout",
		Long: `Resolve every selected project and configuration of the Gradle build in
the current directory and write one <project>/<configuration>.txt file per
pair into out-dir (default: ` + defaultSnapshotDir + `).`,
	}
}

// Execute generates the snapshots.
func (it *SnapshotController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, it.lookuper)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	outDir := defaultSnapshotDir
	if len(args) > 0 {
		outDir = args[0]
	}
	outDir, err = filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	outcomes, err := it.command.Execute(cmd.Context(), commands.GenerateOptions{
		Projects: settings.ProjectOptions(),
		OutDir:   outDir,
	})
	if err != nil {
		return err
	}

	written := 0
	for _, outcome := range outcomes {
		if outcome.Written {
			written++
			continue
		}
		logger.Warnf("No snapshot for %s (%s)", outcome.Project, outcome.Configuration)
	}
	logger.Infof("Wrote %d of %d snapshot(s) to %s", written, len(outcomes), outDir)
	return nil
}
