package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
// Settings are not registered: they depend on flags read by the controllers.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewGradleProjectParser); err != nil {
		return err
	}
	return nil
}
