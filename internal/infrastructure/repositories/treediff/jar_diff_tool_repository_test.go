//go:build unit

package treediff_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depdiff/internal/infrastructure/repositories/treediff"
)

func writeFakeJava(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "java")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

func TestDiffToolRepositoryInstall(t *testing.T) {
	t.Parallel()

	t.Run("should download the jar for the requested version", func(t *testing.T) {
		t.Parallel()

		// given
		var requested string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requested = r.URL.Path
			_, _ = w.Write([]byte("jar-bytes"))
		}))
		defer server.Close()
		repo := treediff.NewDiffToolRepositoryWith(server.URL+"/", "java")
		dir := t.TempDir()

		// when
		path, err := repo.Install(context.Background(), "1.2.1", dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, "/1.2.1/dependency-tree-diff.jar", requested)
		assert.Equal(t, filepath.Join(dir, "dependency-tree-diff.jar"), path)
		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "jar-bytes", string(content))
	})

	t.Run("should reuse a jar already present in the directory", func(t *testing.T) {
		t.Parallel()

		// given
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&calls, 1)
			_, _ = w.Write([]byte("fresh"))
		}))
		defer server.Close()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "dependency-tree-diff.jar"), []byte("cached"), 0o644))
		repo := treediff.NewDiffToolRepositoryWith(server.URL, "java")

		// when
		path, err := repo.Install(context.Background(), "1.2.1", dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
		content, _ := os.ReadFile(path)
		assert.Equal(t, "cached", string(content))
	})

	t.Run("should fail when the release does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()
		repo := treediff.NewDiffToolRepositoryWith(server.URL, "java")
		dir := t.TempDir()

		// when
		_, err := repo.Install(context.Background(), "9.9.9", dir)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
		assert.NoFileExists(t, filepath.Join(dir, "dependency-tree-diff.jar"))
	})
}

func TestDiffToolRepositoryDiff(t *testing.T) {
	t.Parallel()

	t.Run("should return the tool output", func(t *testing.T) {
		t.Parallel()

		// given
		java := writeFakeJava(t, `echo "$1 $2 $3 $4"`)
		repo := treediff.NewDiffToolRepositoryWith("http://unused", java)

		// when
		out, err := repo.Diff(context.Background(), "tool.jar", "old.txt", "new.txt")

		// then
		require.NoError(t, err)
		assert.Equal(t, "-jar tool.jar old.txt new.txt\n", out)
	})

	t.Run("should return an empty string when the trees are equal", func(t *testing.T) {
		t.Parallel()

		// given
		java := writeFakeJava(t, "exit 0")
		repo := treediff.NewDiffToolRepositoryWith("http://unused", java)

		// when
		out, err := repo.Diff(context.Background(), "tool.jar", "old.txt", "new.txt")

		// then
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("should fail with stderr when the tool exits non-zero", func(t *testing.T) {
		t.Parallel()

		// given
		java := writeFakeJava(t, "echo 'bad input' >&2; exit 2")
		repo := treediff.NewDiffToolRepositoryWith("http://unused", java)

		// when
		_, err := repo.Diff(context.Background(), "tool.jar", "old.txt", "new.txt")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exited with 2")
		assert.Contains(t, err.Error(), "bad input")
	})
}

func TestFields(t *testing.T) {
	t.Parallel()

	t.Run("should pair keys with values and drop a dangling key", func(t *testing.T) {
		t.Parallel()

		// when
		result := treediff.Fields([]interface{}{"url", "x", 3, "y", "dangling"})

		// then
		assert.Equal(t, "x", result["url"])
		assert.Equal(t, "y", result["3"])
		assert.NotContains(t, result, "dangling")
	})
}
