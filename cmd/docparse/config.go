// Package main wires the rst parser into a small cobra-based CLI:
// parse, directives, and diff subcommands over a shared configuration
// layer, following the teacher's config-file/env-var/flag precedence.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML sidecar shape (.docparse.yaml), analogous to
// the teacher's config.Config but for parser options instead of a
// monorepo path.
type fileConfig struct {
	TabWidth     int    `yaml:"tab_width"`
	IDPrefix     string `yaml:"id_prefix"`
	AutoIDPrefix string `yaml:"auto_id_prefix"`
	ReportLevel  string `yaml:"report_level"`
	HaltLevel    string `yaml:"halt_level"`
}

const (
	configFileName  = ".docparse.yaml"
	envVarConfigPath = "DOCPARSE_CONFIG"
)

// loadConfig loads the sidecar config following the same
// file/env-var precedence the teacher's config.LoadConfig uses:
// an explicit DOCPARSE_CONFIG path wins, then ./.docparse.yaml, then
// $HOME/.docparse.yaml. A missing file at every location is not an
// error; a file that exists but won't parse is.
func loadConfig() (*fileConfig, error) {
	cfg := &fileConfig{}

	path := resolveConfigPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func resolveConfigPath() string {
	if p := os.Getenv(envVarConfigPath); p != "" {
		return p
	}
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	homePath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath
	}
	return ""
}
