// Package config loads the phishctl configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the phishctl configuration.
type Config struct {
	ServerURL    string `yaml:"server_url" json:"server_url"`
	OutputFormat string `yaml:"output_format" json:"output_format"`
}

// Dir returns the phishctl state directory: ~/.phishguard
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".phishguard")
	}
	return filepath.Join(home, ".phishguard")
}

// DefaultPath returns the default config file path: ~/.phishguard/config.yaml
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the configuration from the given YAML file path.
// If the file does not exist, it returns a default Config with no error.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ServerURL:    "http://localhost:8000",
		OutputFormat: "table",
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		fmt.Fprintf(os.Stderr,
			"warning: config file %s has permissions %04o — expected 0600.\n",
			path, perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
