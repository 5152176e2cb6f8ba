package treediff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depdiff/internal/domain/repositories"
)

const (
	defaultReleaseURL = "https://github.com/JakeWharton/dependency-tree-diff/releases/download"
	jarName           = "dependency-tree-diff.jar"
	javaBinary        = "java"
	downloadRetries   = 3
	downloadTimeout   = 2 * time.Minute
)

// DiffToolRepository downloads the dependency-tree-diff jar and runs it with java.
type DiffToolRepository struct {
	releaseURL string
	java       string
	client     *retryablehttp.Client
}

// NewDiffToolRepository creates a DiffToolRepository pointed at the GitHub releases.
func NewDiffToolRepository() repositories.DiffToolRepository {
	return newDiffToolRepository(defaultReleaseURL, javaBinary)
}

func newDiffToolRepository(releaseURL, java string) *DiffToolRepository {
	client := retryablehttp.NewClient()
	client.RetryMax = downloadRetries
	client.HTTPClient.Timeout = downloadTimeout
	client.Logger = leveledLogger{}
	return &DiffToolRepository{
		releaseURL: strings.TrimSuffix(releaseURL, "/"),
		java:       java,
		client:     client,
	}
}

// Install downloads the jar for version into dir and returns its path.
// An already downloaded jar is reused.
func (it *DiffToolRepository) Install(ctx context.Context, version, dir string) (string, error) {
	toolPath := filepath.Join(dir, jarName)
	if info, err := os.Stat(toolPath); err == nil && info.Size() > 0 {
		logger.Debugf("Reusing %s", toolPath)
		return toolPath, nil
	}

	downloadURL := fmt.Sprintf("%s/%s/%s", it.releaseURL, version, jarName)
	logger.Infof("Downloading dependency-tree-diff %s", version)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := it.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download dependency-tree-diff: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code downloading %s: %d", downloadURL, resp.StatusCode)
	}

	if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
		return "", fmt.Errorf("failed to create %q: %w", dir, mkErr)
	}

	partial := toolPath + ".part"
	file, err := os.Create(partial)
	if err != nil {
		return "", fmt.Errorf("failed to create %q: %w", partial, err)
	}
	if _, copyErr := io.Copy(file, resp.Body); copyErr != nil {
		_ = file.Close()
		_ = os.Remove(partial)
		return "", fmt.Errorf("failed to write %q: %w", partial, copyErr)
	}
	if closeErr := file.Close(); closeErr != nil {
		return "", fmt.Errorf("failed to close %q: %w", partial, closeErr)
	}
	if renameErr := os.Rename(partial, toolPath); renameErr != nil {
		return "", fmt.Errorf("failed to move jar into place: %w", renameErr)
	}

	return toolPath, nil
}

// Diff runs `java -jar toolPath oldPath newPath` and returns its stdout.
// An empty string means both trees are equal.
func (it *DiffToolRepository) Diff(ctx context.Context, toolPath, oldPath, newPath string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, it.java, "-jar", toolPath, oldPath, newPath)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf(
				"dependency-tree-diff exited with %d: %s",
				exitErr.ExitCode(), strings.TrimSpace(stderr.String()),
			)
		}
		return "", fmt.Errorf("failed to run dependency-tree-diff: %w", err)
	}

	return stdout.String(), nil
}

// leveledLogger routes retryablehttp logs through logrus.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	logger.WithFields(fields(keysAndValues)).Error(msg)
}

func (leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.WithFields(fields(keysAndValues)).Debug(msg)
}

func (leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	logger.WithFields(fields(keysAndValues)).Debug(msg)
}

func (leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	logger.WithFields(fields(keysAndValues)).Warn(msg)
}

func fields(keysAndValues []interface{}) logger.Fields {
	result := logger.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		result[key] = keysAndValues[i+1]
	}
	return result
}
