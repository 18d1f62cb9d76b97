package main

import (
	"fmt"

	"cattywampus/internal/config"
	"cattywampus/internal/logging"
	"cattywampus/internal/options"
)

// resolveOptions loads the configuration file and merges it with the flags.
// Warnings raised during resolution go to stderr because the run logger
// does not exist yet.
func resolveOptions(env *environment, cli options.CLIValues, configPath string) (options.Record, error) {
	file, resolvedPath, err := config.Load(configPath)
	if err != nil {
		return options.Record{}, fmt.Errorf("load config: %w", err)
	}
	return options.Resolve(options.Inputs{
		CLI:          cli,
		Config:       file,
		ConfigPath:   resolvedPath,
		Defaults:     config.Default(),
		DetectLocale: env.detectLocale,
		Logger:       logging.NewBootstrap(env.stderr),
	}), nil
}
