//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depdiff/internal/domain/entities"
)

func TestGradleProjectParserParse(t *testing.T) {
	t.Parallel()

	t.Run("should capture nested projects in order and skip the root", func(t *testing.T) {
		t.Parallel()

		// given
		output := `
------------------------------------------------------------
Root project 'sample'
------------------------------------------------------------

Root project 'sample'
+--- Project ':app'
|    \--- Project ':app:core'
\--- Project ':lib'
`
		parser := entities.NewGradleProjectParser()

		// when
		projects := parser.Parse(output)

		// then
		assert.Equal(t, []string{":app", ":app:core", ":lib"}, projects)
	})

	t.Run("should keep duplicates", func(t *testing.T) {
		t.Parallel()

		// when
		projects := entities.NewGradleProjectParser().Parse("Project ':a' Project ':a'")

		// then
		assert.Equal(t, []string{":a", ":a"}, projects)
	})

	t.Run("should return an empty list when nothing matches", func(t *testing.T) {
		t.Parallel()

		// when
		projects := entities.NewGradleProjectParser().Parse("BUILD SUCCESSFUL in 1s")

		// then
		assert.NotNil(t, projects)
		assert.Empty(t, projects)
	})
}

func TestFilterProjects(t *testing.T) {
	t.Parallel()

	projects := []string{":app", ":app-test", ":lib", ":lib-test"}

	t.Run("should keep everything without patterns", func(t *testing.T) {
		t.Parallel()

		// when
		result, err := entities.FilterProjects(projects, "", "")

		// then
		require.NoError(t, err)
		assert.Equal(t, projects, result)
	})

	t.Run("should apply include then exclude", func(t *testing.T) {
		t.Parallel()

		// when
		result, err := entities.FilterProjects(projects, "app", "test")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{":app"}, result)
	})

	t.Run("should match anywhere in the name", func(t *testing.T) {
		t.Parallel()

		// when
		result, err := entities.FilterProjects(projects, "", "-test")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{":app", ":lib"}, result)
	})

	t.Run("should return nothing when the include pattern matches nothing", func(t *testing.T) {
		t.Parallel()

		// when
		result, err := entities.FilterProjects(projects, "^:docs$", "")

		// then
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("should reject an invalid pattern", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.FilterProjects(projects, "(", "")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid include project regex")
	})
}

func TestBuildTasks(t *testing.T) {
	t.Parallel()

	t.Run("should put the root task first when included", func(t *testing.T) {
		t.Parallel()

		// when
		tasks := entities.BuildTasks([]string{":a", ":b"}, true)

		// then
		assert.Equal(t, []string{"dependencies", ":a:dependencies", ":b:dependencies"}, tasks)
	})

	t.Run("should leave the root task out when excluded", func(t *testing.T) {
		t.Parallel()

		// when
		tasks := entities.BuildTasks([]string{":a"}, false)

		// then
		assert.Equal(t, []string{":a:dependencies"}, tasks)
	})

	t.Run("should map every task back to its project", func(t *testing.T) {
		t.Parallel()

		// given
		projects := []string{":a", ":a:b"}

		// when
		tasks := entities.BuildTasks(projects, true)

		// then
		var back []string
		for _, task := range tasks {
			back = append(back, entities.ProjectOf(task))
		}
		assert.Equal(t, []string{"root", ":a", ":a:b"}, back)
	})
}
