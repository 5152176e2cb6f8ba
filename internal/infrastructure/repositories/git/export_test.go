package git

import "github.com/rios0rios0/depdiff/internal/domain/repositories"

// NewFullCloneVCSRepository returns a VCSRepository cloning the whole history,
// which local file remotes require.
func NewFullCloneVCSRepository() repositories.VCSRepository {
	return &VCSRepository{depth: 0}
}
