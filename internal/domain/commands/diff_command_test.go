//go:build unit

package commands_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depdiff/internal/domain/commands"
	"github.com/rios0rios0/depdiff/internal/domain/entities"
	doubles "github.com/rios0rios0/depdiff/test/infrastructure/repositorydoubles"
)

func writeSnapshot(t *testing.T, root, project, configuration, content string) string {
	t.Helper()
	path := entities.SnapshotPath(root, project, configuration)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDiffCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should report only snapshots that differ", func(t *testing.T) {
		t.Parallel()

		// given
		current, base := t.TempDir(), t.TempDir()
		writeSnapshot(t, current, ":app", "runtimeClasspath", "lib:2.0")
		writeSnapshot(t, base, ":app", "runtimeClasspath", "lib:1.0")
		writeSnapshot(t, current, "root", "runtimeClasspath", "same")
		writeSnapshot(t, base, "root", "runtimeClasspath", "same")
		diffTool := &doubles.StubDiffToolRepository{}
		cmd := commands.NewDiffCommand(diffTool)

		// when
		results, err := cmd.Execute(context.Background(), commands.DiffOptions{
			ToolPath:   "/tmp/tool.jar",
			CurrentDir: current,
			BaseDir:    base,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.DiffResult{
			{Project: ":app", Configuration: "runtimeClasspath", Result: "-lib:1.0+lib:2.0"},
		}, results)
		require.Len(t, diffTool.DiffCalls, 2)
		assert.Equal(t, filepath.Join(base, ":app", "runtimeClasspath.txt"), diffTool.DiffCalls[0].OldPath)
		assert.Equal(t, filepath.Join(current, ":app", "runtimeClasspath.txt"), diffTool.DiffCalls[0].NewPath)
		assert.Equal(t, "/tmp/tool.jar", diffTool.DiffCalls[0].ToolPath)
	})

	t.Run("should skip snapshots missing on the base side", func(t *testing.T) {
		t.Parallel()

		// given
		current, base := t.TempDir(), t.TempDir()
		writeSnapshot(t, current, ":new-module", "runtimeClasspath", "lib:1.0")
		writeSnapshot(t, base, ":removed-module", "runtimeClasspath", "lib:1.0")
		diffTool := &doubles.StubDiffToolRepository{}
		cmd := commands.NewDiffCommand(diffTool)

		// when
		results, err := cmd.Execute(context.Background(), commands.DiffOptions{CurrentDir: current, BaseDir: base})

		// then
		require.NoError(t, err)
		assert.Empty(t, results)
		assert.Empty(t, diffTool.DiffCalls)
	})

	t.Run("should ignore files that are not snapshots", func(t *testing.T) {
		t.Parallel()

		// given
		current, base := t.TempDir(), t.TempDir()
		writeSnapshot(t, current, ":app", "runtimeClasspath", "a")
		require.NoError(t, os.WriteFile(filepath.Join(current, ":app", "notes.md"), []byte("x"), 0o644))
		writeSnapshot(t, base, ":app", "runtimeClasspath", "a")
		diffTool := &doubles.StubDiffToolRepository{}
		cmd := commands.NewDiffCommand(diffTool)

		// when
		_, err := cmd.Execute(context.Background(), commands.DiffOptions{CurrentDir: current, BaseDir: base})

		// then
		require.NoError(t, err)
		assert.Len(t, diffTool.DiffCalls, 1)
	})

	t.Run("should fail when the diff tool fails", func(t *testing.T) {
		t.Parallel()

		// given
		current, base := t.TempDir(), t.TempDir()
		writeSnapshot(t, current, ":app", "runtimeClasspath", "a")
		writeSnapshot(t, base, ":app", "runtimeClasspath", "b")
		diffTool := &doubles.StubDiffToolRepository{DiffErr: errors.New("java not found")}
		cmd := commands.NewDiffCommand(diffTool)

		// when
		_, err := cmd.Execute(context.Background(), commands.DiffOptions{CurrentDir: current, BaseDir: base})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "java not found")
	})

	t.Run("should locate exactly the snapshot the generator wrote", func(t *testing.T) {
		t.Parallel()

		// given
		current, base := t.TempDir(), t.TempDir()
		currentPath := writeSnapshot(t, current, ":a:b", "testRuntimeClasspath", "x")
		basePath := writeSnapshot(t, base, ":a:b", "testRuntimeClasspath", "y")

		// when
		counterpart := entities.CounterpartSnapshotPath(currentPath, base)

		// then
		assert.Equal(t, basePath, counterpart)
		assert.Equal(t, ":a:b", entities.ProjectFromSnapshotPath(counterpart))
		assert.Equal(t, "testRuntimeClasspath", entities.ConfigurationFromSnapshotPath(counterpart))
	})
}
