// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors ~/.fefemon.yaml. Everything is optional; values
// only apply where the corresponding flag was not set explicitly.
type fileConfig struct {
	Port          string `yaml:"port"`
	Baud          int    `yaml:"baud"`
	URL           string `yaml:"url"`
	Username      string `yaml:"username"`
	QueryInterval string `yaml:"query_interval"` // Go duration string, e.g. "60s"
}

// loadConfigDefaults merges config file values under explicitly set
// flags. A missing default config file is fine; a file named with
// --config must exist.
func loadConfigDefaults(cmd *cobra.Command, args []string) error {
	path := configPath
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, ".fefemon.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	flags := cmd.Flags()
	if cfg.Port != "" && !flags.Changed("port") {
		portName = cfg.Port
	}
	if cfg.Baud != 0 && !flags.Changed("baud") {
		baudRate = cfg.Baud
	}
	if cfg.URL != "" && !flags.Changed("url") {
		wsURL = cfg.URL
	}
	if cfg.Username != "" && !flags.Changed("username") {
		wsUsername = cfg.Username
	}
	if cfg.QueryInterval != "" && !flags.Changed("query-interval") {
		d, err := time.ParseDuration(cfg.QueryInterval)
		if err != nil {
			return fmt.Errorf("invalid query_interval in %s: %w", path, err)
		}
		queryInterval = d
	}

	return nil
}
