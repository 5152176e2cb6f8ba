package repositories

import "context"

// DiffToolRepository wraps the external dependency tree diff tool.
type DiffToolRepository interface {
	// Install fetches the given tool version into dir and returns its path.
	Install(ctx context.Context, version, dir string) (string, error)
	// Diff compares two dependency trees. An empty string means no difference.
	Diff(ctx context.Context, toolPath, oldPath, newPath string) (string, error)
}
