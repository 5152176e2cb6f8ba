//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depdiff/internal/domain/entities"
)

func TestSnapshotPaths(t *testing.T) {
	t.Parallel()

	t.Run("should round-trip between the two snapshot trees", func(t *testing.T) {
		t.Parallel()

		// given
		current := filepath.Join("tmp", "current-dependencies")
		base := filepath.Join("tmp", "base-dependencies")
		path := entities.SnapshotPath(current, ":app", "runtimeClasspath")

		// when
		counterpart := entities.CounterpartSnapshotPath(path, base)

		// then
		assert.Equal(t, filepath.Join(current, ":app", "runtimeClasspath.txt"), path)
		assert.Equal(t, entities.SnapshotPath(base, ":app", "runtimeClasspath"), counterpart)
		assert.Equal(t, ":app", entities.ProjectFromSnapshotPath(counterpart))
		assert.Equal(t, "runtimeClasspath", entities.ConfigurationFromSnapshotPath(counterpart))
	})

	t.Run("should report success only for exit code zero", func(t *testing.T) {
		t.Parallel()

		// then
		assert.True(t, entities.ExecutionResult{}.Succeeded())
		assert.False(t, entities.ExecutionResult{ExitCode: 1}.Succeeded())
	})
}

func TestNewWorkspace(t *testing.T) {
	t.Parallel()

	t.Run("should create a fresh tree under the parent", func(t *testing.T) {
		t.Parallel()

		// given
		parent := t.TempDir()

		// when
		first, err := entities.NewWorkspace(parent)
		require.NoError(t, err)
		second, err := entities.NewWorkspace(parent)
		require.NoError(t, err)

		// then
		assert.NotEqual(t, first.Root, second.Root)
		assert.Equal(t, parent, filepath.Dir(first.Root))
		for _, dir := range []string{first.BaseRepo, first.BaseDependencies, first.CurrentDependencies} {
			info, statErr := os.Stat(dir)
			require.NoError(t, statErr)
			assert.True(t, info.IsDir())
		}
		assert.Equal(t, "base-repo", filepath.Base(first.BaseRepo))
	})

	t.Run("should label revisions by working directory", func(t *testing.T) {
		t.Parallel()

		// then
		assert.Equal(t, "current", entities.RevisionLabel(""))
		assert.Equal(t, "base", entities.RevisionLabel("/tmp/base-repo"))
	})
}
