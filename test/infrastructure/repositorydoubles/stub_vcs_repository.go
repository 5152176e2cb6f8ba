//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/depdiff/internal/domain/repositories"
)

// SpyVCSRepository records clone and checkout calls.
type SpyVCSRepository struct {
	CloneErr    error
	CheckoutErr error

	ClonedURL     string
	ClonedBranch  string
	ClonedDir     string
	CheckedOutDir string
	CheckedOutRev string
}

var _ repositories.VCSRepository = (*SpyVCSRepository)(nil)

func (s *SpyVCSRepository) Clone(_ context.Context, remoteURL, branch, dir string) error {
	s.ClonedURL = remoteURL
	s.ClonedBranch = branch
	s.ClonedDir = dir
	return s.CloneErr
}

func (s *SpyVCSRepository) Checkout(_ context.Context, dir, revision string) error {
	s.CheckedOutDir = dir
	s.CheckedOutRev = revision
	return s.CheckoutErr
}
