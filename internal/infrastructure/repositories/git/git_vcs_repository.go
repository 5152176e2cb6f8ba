package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depdiff/internal/domain/repositories"
)

const (
	shallowDepth  = 1
	fetchedBranch = "refs/heads/depdiff-base"
)

// VCSRepository clones repositories with go-git, so no git binary is needed.
type VCSRepository struct {
	depth int
}

// NewVCSRepository creates a VCSRepository performing depth-1 clones.
func NewVCSRepository() repositories.VCSRepository {
	return &VCSRepository{depth: shallowDepth}
}

// Clone clones branch from remoteURL into dir. The URL may carry credentials,
// so it is never logged.
func (it *VCSRepository) Clone(ctx context.Context, remoteURL, branch, dir string) error {
	logger.Infof("Cloning base repository (branch %q) into %s", branch, dir)

	opts := &git.CloneOptions{
		URL:   remoteURL,
		Depth: it.depth,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		opts.SingleBranch = true
	}

	if _, err := git.PlainCloneContext(ctx, dir, false, opts); err != nil {
		return fmt.Errorf("failed to clone base repository: %w", err)
	}
	return nil
}

// Checkout checks out revision in the repository at dir. A commit missing
// from a shallow clone is fetched by hash first.
func (it *VCSRepository) Checkout(ctx context.Context, dir, revision string) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open repository %q: %w", dir, err)
	}

	hash := plumbing.NewHash(revision)
	_, commitErr := repo.CommitObject(hash)
	switch {
	case errors.Is(commitErr, plumbing.ErrObjectNotFound):
		logger.Infof("Commit %s is not in the clone, fetching it", revision)
		fetchErr := repo.FetchContext(ctx, &git.FetchOptions{
			RefSpecs: []gitconfig.RefSpec{gitconfig.RefSpec(fmt.Sprintf("+%s:%s", revision, fetchedBranch))},
			Depth:    it.depth,
		})
		if fetchErr != nil && !errors.Is(fetchErr, git.NoErrAlreadyUpToDate) {
			return fmt.Errorf("failed to fetch commit %s: %w", revision, fetchErr)
		}
	case commitErr != nil:
		return fmt.Errorf("failed to look up commit %s: %w", revision, commitErr)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	if checkoutErr := worktree.Checkout(&git.CheckoutOptions{Hash: hash, Force: true}); checkoutErr != nil {
		return fmt.Errorf("failed to checkout %s: %w", revision, checkoutErr)
	}
	return nil
}
