package entities

import (
	"path/filepath"
	"strings"
)

// SnapshotExtension is the file extension of every persisted dependency tree.
const SnapshotExtension = ".txt"

// SnapshotOutcome records whether the dependency tree of one
// (project, configuration) pair was persisted. A pair whose task failed is
// reported with Written unset and no file on disk.
type SnapshotOutcome struct {
	Project       string
	Configuration string
	Path          string
	Written       bool
}

// ExecutionResult is the captured result of an external process that ran to
// completion, whatever its exit code.
type ExecutionResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Succeeded reports whether the process exited with code zero.
func (r ExecutionResult) Succeeded() bool {
	return r.ExitCode == 0
}

// SnapshotPath returns outDir/<project>/<configuration>.txt.
func SnapshotPath(outDir, project, configuration string) string {
	return filepath.Join(outDir, project, configuration+SnapshotExtension)
}

// CounterpartSnapshotPath keeps the last two segments of snapshotPath (project
// directory and configuration file) and rejoins them under otherDir.
func CounterpartSnapshotPath(snapshotPath, otherDir string) string {
	return filepath.Join(otherDir, ProjectFromSnapshotPath(snapshotPath), filepath.Base(snapshotPath))
}

// ProjectFromSnapshotPath returns the name of the directory holding the snapshot.
func ProjectFromSnapshotPath(snapshotPath string) string {
	return filepath.Base(filepath.Dir(snapshotPath))
}

// ConfigurationFromSnapshotPath returns the snapshot file name without extension.
func ConfigurationFromSnapshotPath(snapshotPath string) string {
	return strings.TrimSuffix(filepath.Base(snapshotPath), SnapshotExtension)
}
