package entities

import (
	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// Repository is re-exported from gitforge. Organization holds the owner login.
type Repository = gitforgeEntities.Repository
