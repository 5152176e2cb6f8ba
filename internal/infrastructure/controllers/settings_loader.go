package controllers

import (
	"github.com/sethvargo/go-envconfig"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depdiff/internal/domain/entities"
)

// loadSettings reads the inputs from the environment and the configuration
// file given with --config, or the first one found in the default locations.
// The file is optional.
func loadSettings(cmd *cobra.Command, lookuper envconfig.Lookuper) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file, using action inputs only: %v", err)
		} else {
			configPath = found
		}
	}
	if configPath != "" {
		logger.Infof("Using config file: %s", configPath)
	}

	settings, err := entities.NewSettings(cmd.Context(), lookuper, configPath)
	if err != nil {
		return nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose || settings.Environment.Debug() {
		logger.SetLevel(logger.DebugLevel)
	}
	return settings, nil
}
