// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ficha CLI, which turns CNPJ cards
// and state registration certificates into a filled registration sheet.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ficha-cadastral/internal/config"
	"github.com/pdiddy/ficha-cadastral/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Exit codes.
const (
	exitConfig = 1
	exitSetup  = 2
)

// exitError carries the process exit code for an error returned by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// configReadErr holds a failure to parse an existing config file. A missing
// file is not an error: every key may come from the environment.
var configReadErr error

// rootCmd is the base command for the ficha CLI.
var rootCmd = &cobra.Command{
	Use:   "ficha",
	Short: "Fill the registration sheet from CNPJ and state registration PDFs",
	Long: `ficha reads the PDFs in the configured input folder, identifies the CNPJ
registration card and the state registration (Inscrição Estadual) certificate,
extracts the company fields and writes them into a copy of the Excel template.
Source files are then moved to the processed or error folder.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./config.yaml or ~/.config/ficha/config.yaml)")
}

func initConfig() {
	configReadErr = nil
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ficha"))
		}
	}

	config.Bind(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			configReadErr = err
		}
		return
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
}

// loadConfig returns the validated configuration or an exitError with
// exitConfig.
func loadConfig() (types.Config, error) {
	if configReadErr != nil {
		return types.Config{}, &exitError{code: exitConfig, err: fmt.Errorf("reading config: %w", configReadErr)}
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return types.Config{}, &exitError{code: exitConfig, err: err}
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}
