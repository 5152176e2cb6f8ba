package treediff

import "github.com/rios0rios0/depdiff/internal/domain/repositories"

func NewDiffToolRepositoryWith(releaseURL, java string) repositories.DiffToolRepository {
	return newDiffToolRepository(releaseURL, java)
}

var Fields = fields
