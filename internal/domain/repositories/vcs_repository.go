package repositories

import "context"

// VCSRepository clones and checks out the base revision.
type VCSRepository interface {
	// Clone performs a shallow clone of branch from remoteURL into dir.
	Clone(ctx context.Context, remoteURL, branch, dir string) error
	// Checkout moves the working tree in dir to revision.
	Checkout(ctx context.Context, dir, revision string) error
}
