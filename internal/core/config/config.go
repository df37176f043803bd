// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/boxworks/boxctl/internal/host"
	"github.com/spf13/viper"
)

type Config struct {
	Manager ManagerConfig `mapstructure:"manager"`
	Ssh     SshConfig     `mapstructure:"ssh"`
}

type ManagerConfig struct {
	DataDir     string `mapstructure:"dataDir"`
	ProcessName string `mapstructure:"processName"`
}

type SshConfig struct {
	RemoteUser string `mapstructure:"remoteUser"`
	Port       uint16 `mapstructure:"port"`
	Timeout    string `mapstructure:"timeout"`
}

const UserConfigFileName = "config.yaml"

var (
	//go:embed embed/default.config.yaml
	embeddedConfigFiles embed.FS

	embeddedConfigPath = "embed/default.config.yaml"
)

// Load reads the embedded base config and merges the user config from the boxctl dir on top, if present.
func Load(boxctlDir string) (*Config, error) {
	vConfig := viper.New()
	vConfig.SetConfigType("yaml")

	baseContent, err := embeddedConfigFiles.ReadFile(embeddedConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded config file: %w", err)
	}

	slog.Debug("Parsing embedded config file")

	if err := vConfig.ReadConfig(bytes.NewReader(baseContent)); err != nil {
		return nil, fmt.Errorf("failed to parse embedded config file: %w", err)
	}

	userConfigPath := filepath.Join(boxctlDir, UserConfigFileName)

	userContent, err := os.ReadFile(userConfigPath)
	if err == nil {
		slog.Debug("Merging user config file", "path", userConfigPath)

		if err := vConfig.MergeConfig(bytes.NewReader(userContent)); err != nil {
			return nil, fmt.Errorf("failed to merge user config file '%s': %w", userConfigPath, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read user config file '%s': %w", userConfigPath, err)
	}

	var config Config
	if err := vConfig.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	dataDir, err := host.ResolveTildePrefix(config.Manager.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tilde in manager data dir '%s': %w", config.Manager.DataDir, err)
	}
	config.Manager.DataDir = dataDir

	slog.Debug("Config loaded", "manager-data-dir", config.Manager.DataDir, "remote-user", config.Ssh.RemoteUser)

	return &config, nil
}

// SshTimeout parses the configured SSH timeout.
func (c *Config) SshTimeout() (time.Duration, error) {
	timeout, err := time.ParseDuration(c.Ssh.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid SSH timeout '%s' in config: %w", c.Ssh.Timeout, err)
	}
	return timeout, nil
}
