//go:build unit

package controllers_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depdiff/internal/domain/commands"
	"github.com/rios0rios0/depdiff/internal/domain/entities"
	"github.com/rios0rios0/depdiff/internal/infrastructure/controllers"
	"github.com/rios0rios0/depdiff/test/domain/commanddoubles"
)

func newCobraCommand(t *testing.T, configPath string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", configPath, "")
	cmd.Flags().Bool("dry-run", false, "")
	cmd.Flags().Bool("verbose", false, "")
	cmd.SetContext(context.Background())
	return cmd
}

func stubPullRequest(pr *entities.PullRequestContext, err error) controllers.PullRequestLoader {
	return func(_ entities.ActionsEnvironment) (*entities.PullRequestContext, error) {
		return pr, err
	}
}

func TestRunControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should run the command with the loaded settings and write outputs", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		summaryPath := filepath.Join(dir, "summary.md")
		outputPath := filepath.Join(dir, "output")
		text := "### :app\n"
		stub := &commanddoubles.StubRunCommand{Result: &commands.RunResult{
			Results:   []entities.DiffResult{{Project: ":app"}},
			Output:    entities.ChecksOutput{Title: entities.ChecksName, Summary: "changed\n", Text: &text},
			ChecksURL: "https://checks/1",
		}}
		lookuper := envconfig.MapLookuper(map[string]string{
			"INPUT_TOKEN":         "ghs_token",
			"INPUT_LABEL-NAME":    "deps",
			"GITHUB_STEP_SUMMARY": summaryPath,
			"GITHUB_OUTPUT":       outputPath,
		})
		pr := &entities.PullRequestContext{Number: 3}
		var stdout bytes.Buffer
		controller := controllers.NewRunControllerWith(stub, lookuper, stubPullRequest(pr, nil), &stdout)
		cmd := newCobraCommand(t, "")

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, stub.ExecuteCallCount)
		assert.Same(t, pr, stub.LastPullRequest)
		assert.Equal(t, "ghs_token", stub.LastSettings.Token)
		assert.Equal(t, "deps", stub.LastSettings.LabelName)
		assert.False(t, stub.LastOpts.DryRun)
		assert.Empty(t, stdout.String())

		summary, readErr := os.ReadFile(summaryPath)
		require.NoError(t, readErr)
		assert.Equal(t, "## "+entities.ChecksName+"\n\nchanged\n\n### :app\n", string(summary))
		outputs, readErr := os.ReadFile(outputPath)
		require.NoError(t, readErr)
		assert.Equal(t, "has-diff=true\nchecks-url=https://checks/1\n", string(outputs))
	})

	t.Run("should pass the dry-run flag", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubRunCommand{}
		controller := controllers.NewRunControllerWith(
			stub, envconfig.MapLookuper(nil), stubPullRequest(&entities.PullRequestContext{}, nil), &bytes.Buffer{},
		)
		cmd := newCobraCommand(t, "")
		require.NoError(t, cmd.Flags().Set("dry-run", "true"))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.True(t, stub.LastOpts.DryRun)
	})

	t.Run("should let the config file override the inputs", func(t *testing.T) {
		t.Parallel()

		// given
		configPath := filepath.Join(t.TempDir(), "depdiff.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("assign_label: true\nlabel_name: from-file\n"), 0o644))
		stub := &commanddoubles.StubRunCommand{}
		lookuper := envconfig.MapLookuper(map[string]string{"INPUT_LABEL-NAME": "from-env"})
		controller := controllers.NewRunControllerWith(
			stub, lookuper, stubPullRequest(&entities.PullRequestContext{}, nil), &bytes.Buffer{},
		)

		// when
		err := controller.Execute(newCobraCommand(t, configPath), nil)

		// then
		require.NoError(t, err)
		assert.True(t, stub.LastSettings.AssignLabel)
		assert.Equal(t, "from-file", stub.LastSettings.LabelName)
	})

	t.Run("should emit a workflow error when the event is not a pull request", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubRunCommand{}
		var stdout bytes.Buffer
		controller := controllers.NewRunControllerWith(
			stub, envconfig.MapLookuper(nil), stubPullRequest(nil, entities.ErrNoPullRequest), &stdout,
		)

		// when
		err := controller.Execute(newCobraCommand(t, ""), nil)

		// then
		require.ErrorIs(t, err, entities.ErrNoPullRequest)
		assert.Equal(t, 0, stub.ExecuteCallCount)
		assert.Contains(t, stdout.String(), "::error::")
	})

	t.Run("should emit a workflow error when the run fails", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubRunCommand{ExecuteErr: errors.New("clone failed\nauth")}
		var stdout bytes.Buffer
		controller := controllers.NewRunControllerWith(
			stub, envconfig.MapLookuper(nil), stubPullRequest(&entities.PullRequestContext{}, nil), &stdout,
		)

		// when
		err := controller.Execute(newCobraCommand(t, ""), nil)

		// then
		require.Error(t, err)
		assert.Equal(t, "::error::clone failed%0Aauth\n", stdout.String())
	})

	t.Run("should fail on invalid inputs before running", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubRunCommand{}
		lookuper := envconfig.MapLookuper(map[string]string{"INPUT_TOOL-VERSION": "latest"})
		var stdout bytes.Buffer
		controller := controllers.NewRunControllerWith(
			stub, lookuper, stubPullRequest(&entities.PullRequestContext{}, nil), &stdout,
		)

		// when
		err := controller.Execute(newCobraCommand(t, ""), nil)

		// then
		require.ErrorIs(t, err, entities.ErrInvalidToolVersion)
		assert.Equal(t, 0, stub.ExecuteCallCount)
	})
}

func TestEscapeWorkflowData(t *testing.T) {
	t.Parallel()

	t.Run("should escape percent signs and line breaks", func(t *testing.T) {
		t.Parallel()

		// when
		escaped := controllers.EscapeWorkflowData("100%\r\ndone")

		// then
		assert.Equal(t, "100%25%0D%0Adone", escaped)
	})
}
