package repositories

import (
	"go.uber.org/dig"

	gitRepo "github.com/rios0rios0/depdiff/internal/infrastructure/repositories/git"
	ghRepo "github.com/rios0rios0/depdiff/internal/infrastructure/repositories/github"
	gradleRepo "github.com/rios0rios0/depdiff/internal/infrastructure/repositories/gradle"
	treediffRepo "github.com/rios0rios0/depdiff/internal/infrastructure/repositories/treediff"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("github", ghRepo.NewProviderRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(gradleRepo.NewBuildToolRepository); err != nil {
		return err
	}
	if err := container.Provide(gitRepo.NewVCSRepository); err != nil {
		return err
	}
	if err := container.Provide(treediffRepo.NewDiffToolRepository); err != nil {
		return err
	}

	return nil
}
