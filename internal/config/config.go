// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config reads the batch configuration from viper into an explicit
// types.Config. Every required key must be present and non-empty; a missing
// key is a startup error reported before any folder is touched.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/ficha-cadastral/pkg/types"
)

const (
	// EnvPrefix is prepended to environment overrides, e.g. FICHA_PATHS_INPUTFOLDER.
	EnvPrefix = "FICHA"

	defaultLogLevel      = "info"
	defaultLogMaxSizeMB  = 5
	defaultLogMaxBackups = 3
)

// ErrMissingKey reports a required section or key absent from the configuration.
var ErrMissingKey = errors.New("missing configuration key")

// Required lists the keys that must be set, in the order they are checked.
var Required = []string{
	"Paths.InputFolder",
	"Paths.OutputFolder",
	"Paths.ProcessedFolder",
	"Paths.ErrorFolder",
	"Paths.ExcelTemplate",
	"Settings.LogFile",
}

// Bind prepares v for environment overrides and optional-key defaults.
func Bind(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("Settings.LogLevel", defaultLogLevel)
	v.SetDefault("Settings.LogMaxSizeMB", defaultLogMaxSizeMB)
	v.SetDefault("Settings.LogMaxBackups", defaultLogMaxBackups)
}

// Load validates the required keys and builds a Config from v. All missing
// keys are reported together.
func Load(v *viper.Viper) (types.Config, error) {
	var missing []string
	for _, key := range Required {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return types.Config{}, fmt.Errorf("%w: %s", ErrMissingKey, strings.Join(missing, ", "))
	}

	cfg := types.Config{
		Paths: types.PathsConfig{
			InputFolder:     v.GetString("Paths.InputFolder"),
			OutputFolder:    v.GetString("Paths.OutputFolder"),
			ProcessedFolder: v.GetString("Paths.ProcessedFolder"),
			ErrorFolder:     v.GetString("Paths.ErrorFolder"),
			ExcelTemplate:   v.GetString("Paths.ExcelTemplate"),
		},
		Settings: types.SettingsConfig{
			LogFile:       v.GetString("Settings.LogFile"),
			LogLevel:      v.GetString("Settings.LogLevel"),
			LogMaxSizeMB:  v.GetInt("Settings.LogMaxSizeMB"),
			LogMaxBackups: v.GetInt("Settings.LogMaxBackups"),
		},
	}
	if cfg.Settings.LogLevel == "" {
		cfg.Settings.LogLevel = defaultLogLevel
	}
	if cfg.Settings.LogMaxSizeMB <= 0 {
		cfg.Settings.LogMaxSizeMB = defaultLogMaxSizeMB
	}
	if cfg.Settings.LogMaxBackups < 0 {
		cfg.Settings.LogMaxBackups = defaultLogMaxBackups
	}
	return cfg, nil
}
