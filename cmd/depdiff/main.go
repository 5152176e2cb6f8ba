package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depdiff/internal"
	"github.com/rios0rios0/depdiff/internal/domain/entities"
)

const defaultControllerUse = "run"

func buildRootCommand(appContext *internal.AppInternal) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "depdiff",
		Short: "Gradle dependency diff for pull requests",
		Long: `Compares the resolved Gradle dependency trees of a pull request with
those of its base revision and reports the differences on GitHub.

Usage modes:
  depdiff                   Same as "depdiff run" (GitHub Actions entrypoint)
  depdiff run               Diff and report on the triggering pull request
  depdiff snapshot [dir]    Only write the snapshots of the current checkout`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Compute the diff but do not publish anything")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	addSubcommands(cmd, appContext)
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}

		if bind.Use == defaultControllerUse {
			rootCmd.RunE = rootRunner(ctrl)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func rootRunner(controller entities.Controller) func(*cobra.Command, []string) error {
	return func(command *cobra.Command, arguments []string) error {
		return controller.Execute(command, arguments)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" || os.Getenv("RUNNER_DEBUG") == "1" {
		logger.SetLevel(logger.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Inject controllers via DIG
	cobraRoot := buildRootCommand(injectAppContext())

	if err := cobraRoot.ExecuteContext(ctx); err != nil {
		stop()
		logger.Fatalf("Error executing 'depdiff': %s", err)
	}
}
